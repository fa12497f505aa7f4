package gate

import (
	"context"
	"time"

	"github.com/sandesh/prepquiz/internal/event"
	"github.com/sandesh/prepquiz/internal/logger"
	"github.com/sandesh/prepquiz/internal/models"
	"github.com/sandesh/prepquiz/internal/store"
)

const dateLayout = "2006-01-02"

// UsageGate enforces the daily cap on distinct free questions and exposes the
// live counter. Premium identities always pass.
type UsageGate interface {
	// Usage returns today's usage record, lazily resetting a stale one.
	Usage(ctx context.Context) models.FreeUsage
	// CanAccess reports whether the identity may view the question right now.
	CanAccess(ctx context.Context, user *models.User, questionID string) bool
	// RecordView charges one unit for a question not yet seen today and
	// returns the post-update record. No-op for premium identities and for
	// questions already charged today.
	RecordView(ctx context.Context, user *models.User, questionID string) models.FreeUsage
}

type usageGate struct {
	store store.Store
	limit int
	bus   *event.Bus
	now   func() time.Time
}

// Option configures a UsageGate.
type Option func(*usageGate)

// WithClock overrides the time source. Used by day-rollover tests.
func WithClock(now func() time.Time) Option {
	return func(g *usageGate) { g.now = now }
}

// New creates a UsageGate persisting usage through st, capped at limit
// distinct questions per calendar day.
func New(st store.Store, limit int, bus *event.Bus, opts ...Option) UsageGate {
	g := &usageGate{
		store: st,
		limit: limit,
		bus:   bus,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *usageGate) today() string {
	return g.now().Format(dateLayout)
}

func (g *usageGate) Usage(ctx context.Context) models.FreeUsage {
	log := logger.FromContext(ctx).WithPrefix("gate")

	var usage models.FreeUsage
	today := g.today()
	if g.store.Get(ctx, store.KeyFreeUsage, &usage) && usage.ResetDate == today {
		return usage
	}

	// Absent, unparseable or stale: start a fresh day.
	log.Debug("resetting free usage for %s", today)
	usage = models.FreeUsage{
		QuestionsUsed:    0,
		QuestionsLimit:   g.limit,
		ResetDate:        today,
		SessionQuestions: []string{},
	}
	g.store.Put(ctx, store.KeyFreeUsage, usage)
	return usage
}

func (g *usageGate) CanAccess(ctx context.Context, user *models.User, questionID string) bool {
	if user.Premium() {
		return true
	}

	usage := g.Usage(ctx)

	// Re-viewing an already charged question is always free.
	if usage.Seen(questionID) {
		return true
	}
	return usage.QuestionsUsed < usage.QuestionsLimit
}

func (g *usageGate) RecordView(ctx context.Context, user *models.User, questionID string) models.FreeUsage {
	log := logger.FromContext(ctx).WithPrefix("gate")

	usage := g.Usage(ctx)
	if user.Premium() {
		return usage
	}
	if usage.Seen(questionID) {
		return usage
	}

	usage.QuestionsUsed++
	usage.SessionQuestions = append(usage.SessionQuestions, questionID)
	g.store.Put(ctx, store.KeyFreeUsage, usage)

	log.Debug("question charged: id=%s, used=%d/%d", questionID, usage.QuestionsUsed, usage.QuestionsLimit)
	if usage.QuestionsUsed >= usage.QuestionsLimit {
		log.Info("daily free question limit reached: %d", usage.QuestionsLimit)
	}

	if g.bus != nil {
		g.bus.Publish(event.Event{Type: event.TypeUsageChanged, Payload: usage})
	}
	return usage
}
