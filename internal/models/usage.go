package models

// FreeUsage tracks how many distinct questions a non-premium identity has
// viewed today. Re-viewing a question already in SessionQuestions is free.
// The record is reset lazily when ResetDate no longer matches the current day.
type FreeUsage struct {
	QuestionsUsed    int      `json:"questionsUsed"`
	QuestionsLimit   int      `json:"questionsLimit"`
	ResetDate        string   `json:"resetDate"` // calendar date, "2006-01-02"
	SessionQuestions []string `json:"sessionQuestions"`
}

// Seen reports whether the question was already charged today.
func (u *FreeUsage) Seen(questionID string) bool {
	for _, id := range u.SessionQuestions {
		if id == questionID {
			return true
		}
	}
	return false
}

// Remaining returns how many free questions are left today.
func (u *FreeUsage) Remaining() int {
	if u.QuestionsUsed >= u.QuestionsLimit {
		return 0
	}
	return u.QuestionsLimit - u.QuestionsUsed
}
