package models

import "time"

// QuizSession is one ordered attempt at a fixed list of questions.
// It is owned exclusively by the quiz manager; callers only ever see copies.
type QuizSession struct {
	ID                   string         `json:"id"`
	Questions            []Question     `json:"questions"`
	CurrentQuestionIndex int            `json:"currentQuestionIndex"`
	Answers              map[string]int `json:"answers"` // question id -> selected option index
	StartTime            time.Time      `json:"startTime"`
	EndTime              *time.Time     `json:"endTime,omitempty"`
	TimeLimit            *int           `json:"timeLimit,omitempty"` // minutes
	IsCompleted          bool           `json:"isCompleted"`
}

// CurrentQuestion returns the question at the current index, or nil for an
// empty session.
func (s *QuizSession) CurrentQuestion() *Question {
	if s == nil || len(s.Questions) == 0 {
		return nil
	}
	return &s.Questions[s.CurrentQuestionIndex]
}

// SessionProgress describes how far through a session the user is.
type SessionProgress struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// QuizResult is the derived outcome of a completed session. Scoring is
// computed on demand, never stored on the session itself.
type QuizResult struct {
	SessionID      string  `json:"sessionId"`
	TotalQuestions int     `json:"totalQuestions"`
	CorrectAnswers int     `json:"correctAnswers"`
	Score          int     `json:"score"`     // percentage, rounded
	TimeSpent      float64 `json:"timeSpent"` // minutes
	Subject        string  `json:"subject"`
	CompletedAt    string  `json:"completedAt"`
}
