package models

// SubjectProgress tallies attempts for a single subject.
type SubjectProgress struct {
	Attempted int `json:"attempted"`
	Correct   int `json:"correct"`
}

// QuizProgress aggregates results across sessions for the dashboard.
type QuizProgress struct {
	TotalAttempted int                        `json:"totalAttempted"`
	CorrectAnswers int                        `json:"correctAnswers"`
	Subjects       map[string]SubjectProgress `json:"subjects"`
	AverageScore   int                        `json:"averageScore"`
	StreakDays     int                        `json:"streakDays"`
	LastActiveDate string                     `json:"lastActiveDate,omitempty"` // "2006-01-02"
	LastSessionID  string                     `json:"lastSessionId,omitempty"`
}
