package models

// Difficulty levels for questions.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question is a single multiple-choice question from the catalog.
// Questions are read-only: the catalog seeds them and nothing mutates them.
type Question struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"question"`
	Options       []string `json:"options"` // always four entries
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
	Difficulty    string   `json:"difficulty"` // "easy", "medium", "hard"
	Subject       string   `json:"subject"`
	Topic         string   `json:"topic"`
	IsPremium     bool     `json:"isPremium"`
}

// QuestionFilter narrows catalog queries.
type QuestionFilter struct {
	Subject    string
	Topic      string
	Difficulty string
	FreeOnly   bool // exclude premium-flagged questions
	Random     bool // ORDER BY RANDOM() instead of id
	Limit      int
	Offset     int
}
