package progress

import (
	"context"
	"math"
	"time"

	"github.com/sandesh/prepquiz/internal/logger"
	"github.com/sandesh/prepquiz/internal/models"
	"github.com/sandesh/prepquiz/internal/store"
)

const dateLayout = "2006-01-02"

// Tracker aggregates quiz results for the dashboard: running totals,
// per-subject tallies, average score and the daily activity streak.
type Tracker struct {
	store store.Store
	now   func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source. Used by streak tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker creates a Tracker persisting through st.
func NewTracker(st store.Store, opts ...Option) *Tracker {
	t := &Tracker{store: st, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Progress returns the stored aggregate, or a zeroed one when nothing has
// been recorded yet.
func (t *Tracker) Progress(ctx context.Context) models.QuizProgress {
	var p models.QuizProgress
	if !t.store.Get(ctx, store.KeyQuizProgress, &p) {
		p = models.QuizProgress{Subjects: map[string]models.SubjectProgress{}}
	}
	if p.Subjects == nil {
		p.Subjects = map[string]models.SubjectProgress{}
	}
	return p
}

// Record folds a finished quiz result into the aggregate and persists it.
// Recording the same session twice is a no-op, so a finish request arriving
// after the countdown already completed the session cannot double-count.
func (t *Tracker) Record(ctx context.Context, result models.QuizResult) models.QuizProgress {
	log := logger.FromContext(ctx).WithPrefix("progress")

	p := t.Progress(ctx)
	if result.SessionID != "" && result.SessionID == p.LastSessionID {
		log.Debug("session %s already recorded, skipping", result.SessionID)
		return p
	}
	p.TotalAttempted += result.TotalQuestions
	p.CorrectAnswers += result.CorrectAnswers

	if result.Subject != "" {
		subject := p.Subjects[result.Subject]
		subject.Attempted += result.TotalQuestions
		subject.Correct += result.CorrectAnswers
		p.Subjects[result.Subject] = subject
	}

	if p.TotalAttempted > 0 {
		p.AverageScore = int(math.Round(100 * float64(p.CorrectAnswers) / float64(p.TotalAttempted)))
	}

	p.StreakDays = t.nextStreak(p)
	p.LastActiveDate = t.now().Format(dateLayout)
	p.LastSessionID = result.SessionID

	t.store.Put(ctx, store.KeyQuizProgress, p)
	log.Debug("progress recorded: attempted=%d, correct=%d, streak=%d", p.TotalAttempted, p.CorrectAnswers, p.StreakDays)
	return p
}

// nextStreak extends the streak when the last activity was yesterday, keeps
// it for a second result today, and restarts it otherwise.
func (t *Tracker) nextStreak(p models.QuizProgress) int {
	today := t.now().Format(dateLayout)
	yesterday := t.now().AddDate(0, 0, -1).Format(dateLayout)

	switch p.LastActiveDate {
	case today:
		if p.StreakDays == 0 {
			return 1
		}
		return p.StreakDays
	case yesterday:
		return p.StreakDays + 1
	default:
		return 1
	}
}
