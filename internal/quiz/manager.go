package quiz

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandesh/prepquiz/internal/errors"
	"github.com/sandesh/prepquiz/internal/event"
	"github.com/sandesh/prepquiz/internal/gate"
	"github.com/sandesh/prepquiz/internal/logger"
	"github.com/sandesh/prepquiz/internal/models"
)

// Manager drives a single quiz attempt: question order, answers, gating
// before each advance, and the optional countdown. It owns the session;
// callers only ever receive copies.
type Manager struct {
	mu        sync.Mutex
	gate      gate.UsageGate
	bus       *event.Bus
	tick      time.Duration
	session   *models.QuizSession
	timerStop chan struct{}
}

// Option configures a Manager.
type Option func(*Manager)

// WithTickInterval overrides the countdown tick interval. Used by tests;
// the default is one second.
func WithTickInterval(d time.Duration) Option {
	return func(m *Manager) { m.tick = d }
}

// NewManager creates a Manager that consults g before advancing and
// publishes session-changed events on bus.
func NewManager(g gate.UsageGate, bus *event.Bus, opts ...Option) *Manager {
	m := &Manager{
		gate: g,
		bus:  bus,
		tick: time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start replaces any existing session with a fresh one at question 0 and
// records the first question's view through the gate. The first view is
// charged without a cap check, mirroring how starting a new attempt has
// always behaved: an exhausted free user still sees question one.
// timeLimitMinutes may be nil for an untimed session.
func (m *Manager) Start(ctx context.Context, user *models.User, questions []models.Question, timeLimitMinutes *int) (models.QuizSession, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz")

	if len(questions) == 0 {
		return models.QuizSession{}, errors.NewValidationError("questions", "cannot start a quiz with no questions")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// A replaced session must not leave its countdown running.
	m.stopCountdownLocked()

	m.session = &models.QuizSession{
		ID:                   "quiz_" + uuid.NewString(),
		Questions:            questions,
		CurrentQuestionIndex: 0,
		Answers:              make(map[string]int),
		StartTime:            time.Now(),
		TimeLimit:            timeLimitMinutes,
		IsCompleted:          false,
	}

	m.gate.RecordView(ctx, user, questions[0].ID)

	if timeLimitMinutes != nil {
		m.startCountdownLocked(ctx, m.session.ID)
	}

	log.Info("quiz session started: id=%s, questions=%d", m.session.ID, len(questions))
	m.publishLocked()
	return m.snapshotLocked(), nil
}

// SubmitAnswer records the selected option for the current question,
// overwriting any prior answer. Out-of-range indices are accepted; they
// simply never match the correct answer when scoring.
func (m *Manager) SubmitAnswer(ctx context.Context, optionIndex int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return errors.NewNotFoundError("quiz session", "current")
	}
	if m.session.IsCompleted {
		return errors.NewValidationError("session", "session is already completed")
	}

	q := m.session.CurrentQuestion()
	m.session.Answers[q.ID] = optionIndex

	logger.FromContext(ctx).Debug("answer recorded: question=%s, option=%d", q.ID, optionIndex)
	m.publishLocked()
	return nil
}

// Advance moves to the next question if the gate permits it, or completes
// the session when there is no next question. A gate refusal leaves the
// session untouched and returns an UPGRADE_REQUIRED error.
func (m *Manager) Advance(ctx context.Context, user *models.User) error {
	log := logger.FromContext(ctx).WithPrefix("quiz")

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return errors.NewNotFoundError("quiz session", "current")
	}
	if m.session.IsCompleted {
		return errors.NewValidationError("session", "session is already completed")
	}

	nextIndex := m.session.CurrentQuestionIndex + 1
	if nextIndex >= len(m.session.Questions) {
		log.Info("last question answered, completing session: id=%s", m.session.ID)
		m.finishLocked(ctx)
		return nil
	}

	next := m.session.Questions[nextIndex]
	if !m.gate.CanAccess(ctx, user, next.ID) {
		log.Info("advance refused by usage gate: question=%s", next.ID)
		return errors.NewUpgradeRequiredError(next.ID)
	}

	m.gate.RecordView(ctx, user, next.ID)
	m.session.CurrentQuestionIndex = nextIndex
	m.publishLocked()
	return nil
}

// Retreat moves back one question. Answers for the revisited question are
// preserved and nothing is re-charged against the gate.
func (m *Manager) Retreat(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return errors.NewNotFoundError("quiz session", "current")
	}
	if m.session.CurrentQuestionIndex > 0 {
		m.session.CurrentQuestionIndex--
		m.publishLocked()
	}
	return nil
}

// Finish forces the session into its terminal completed state regardless of
// position. Finishing an already completed session is a no-op.
func (m *Manager) Finish(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return errors.NewNotFoundError("quiz session", "current")
	}
	m.finishLocked(ctx)
	return nil
}

// Snapshot returns a copy of the current session, or nil when none exists.
func (m *Manager) Snapshot() *models.QuizSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil
	}
	s := m.snapshotLocked()
	return &s
}

// Progress reports the 1-based position within the session.
func (m *Manager) Progress() models.SessionProgress {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil || len(m.session.Questions) == 0 {
		return models.SessionProgress{}
	}
	current := m.session.CurrentQuestionIndex + 1
	total := len(m.session.Questions)
	return models.SessionProgress{
		Current:    current,
		Total:      total,
		Percentage: int(math.Round(100 * float64(current) / float64(total))),
	}
}

// TimeRemaining returns the whole seconds left on the countdown, or 0 when
// the session is untimed, completed or absent.
func (m *Manager) TimeRemaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil || m.session.IsCompleted || m.session.TimeLimit == nil {
		return 0
	}
	limit := time.Duration(*m.session.TimeLimit) * time.Minute
	remaining := limit - time.Since(m.session.StartTime)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Seconds())
}

// CanProceed reports whether the gate currently permits the question at the
// cursor. The view layer uses this to decide between "next" and "upgrade".
func (m *Manager) CanProceed(ctx context.Context, user *models.User) bool {
	m.mu.Lock()
	q := (*models.Question)(nil)
	if m.session != nil {
		q = m.session.CurrentQuestion()
	}
	m.mu.Unlock()

	if q == nil {
		return false
	}
	return m.gate.CanAccess(ctx, user, q.ID)
}

// Result scores the session: one point per answer matching the question's
// correct option. Scoring is derived, never stored.
func (m *Manager) Result() (*models.QuizResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, errors.NewNotFoundError("quiz session", "current")
	}

	correct := 0
	for _, q := range m.session.Questions {
		if answer, ok := m.session.Answers[q.ID]; ok && answer == q.CorrectAnswer {
			correct++
		}
	}

	total := len(m.session.Questions)
	end := time.Now()
	if m.session.EndTime != nil {
		end = *m.session.EndTime
	}
	completedAt := ""
	if m.session.IsCompleted && m.session.EndTime != nil {
		completedAt = m.session.EndTime.Format(time.RFC3339)
	}

	return &models.QuizResult{
		SessionID:      m.session.ID,
		TotalQuestions: total,
		CorrectAnswers: correct,
		Score:          int(math.Round(100 * float64(correct) / float64(total))),
		TimeSpent:      end.Sub(m.session.StartTime).Minutes(),
		Subject:        m.session.Questions[0].Subject,
		CompletedAt:    completedAt,
	}, nil
}

func (m *Manager) snapshotLocked() models.QuizSession {
	s := *m.session
	s.Answers = make(map[string]int, len(m.session.Answers))
	for k, v := range m.session.Answers {
		s.Answers[k] = v
	}
	return s
}

func (m *Manager) finishLocked(ctx context.Context) {
	m.stopCountdownLocked()
	if m.session.IsCompleted {
		return
	}
	now := time.Now()
	m.session.IsCompleted = true
	m.session.EndTime = &now
	logger.FromContext(ctx).Info("quiz session completed: id=%s", m.session.ID)
	m.publishLocked()
}

func (m *Manager) publishLocked() {
	if m.bus != nil {
		m.bus.Publish(event.Event{Type: event.TypeSessionChanged, Payload: m.snapshotLocked()})
	}
}

// startCountdownLocked launches the 1-second countdown for the session with
// the given id. At most one countdown runs per live session; the previous
// one is always stopped first.
func (m *Manager) startCountdownLocked(ctx context.Context, sessionID string) {
	stop := make(chan struct{})
	m.timerStop = stop

	go func() {
		ticker := time.NewTicker(m.tick)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if m.countdownTick(ctx, sessionID) {
					return
				}
			}
		}
	}()
}

// countdownTick checks the deadline and returns true when the countdown
// should stop, auto-finishing the session on expiry.
func (m *Manager) countdownTick(ctx context.Context, sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	// The session this countdown was started for is gone or done.
	if m.session == nil || m.session.ID != sessionID || m.session.IsCompleted {
		return true
	}
	if m.session.TimeLimit == nil {
		return true
	}

	limit := time.Duration(*m.session.TimeLimit) * time.Minute
	if time.Since(m.session.StartTime) >= limit {
		logger.FromContext(ctx).Info("time limit reached, finishing session: id=%s", sessionID)
		m.finishLocked(ctx)
		return true
	}
	return false
}

func (m *Manager) stopCountdownLocked() {
	if m.timerStop != nil {
		close(m.timerStop)
		m.timerStop = nil
	}
}
