package gate_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandesh/prepquiz/internal/event"
	"github.com/sandesh/prepquiz/internal/gate"
	"github.com/sandesh/prepquiz/internal/models"
	"github.com/sandesh/prepquiz/internal/store"
	"github.com/sandesh/prepquiz/internal/testutil/mocks"
)

func freeUser() *models.User {
	return &models.User{ID: "u1", Email: "free@example.com", SubscriptionTier: models.TierFree}
}

func premiumUser() *models.User {
	return &models.User{ID: "u2", Email: "paid@example.com", IsPremium: true, SubscriptionTier: models.TierPremium}
}

func TestUsage_FreshRecord(t *testing.T) {
	ctx := context.Background()
	g := gate.New(mocks.NewMemStore(), 10, nil)

	usage := g.Usage(ctx)

	assert.Equal(t, 0, usage.QuestionsUsed)
	assert.Equal(t, 10, usage.QuestionsLimit)
	assert.Empty(t, usage.SessionQuestions)
	assert.Equal(t, time.Now().Format("2006-01-02"), usage.ResetDate)
}

func TestUsage_DayRollover(t *testing.T) {
	ctx := context.Background()
	st := mocks.NewMemStore()

	yesterday := time.Now().AddDate(0, 0, -1)
	g := gate.New(st, 10, nil, gate.WithClock(func() time.Time { return yesterday }))
	g.RecordView(ctx, freeUser(), "q1")
	g.RecordView(ctx, freeUser(), "q2")
	require.Equal(t, 2, g.Usage(ctx).QuestionsUsed)

	// Same store read today: the stale record must be replaced.
	today := gate.New(st, 10, nil)
	usage := today.Usage(ctx)
	assert.Equal(t, 0, usage.QuestionsUsed)
	assert.Empty(t, usage.SessionQuestions)
}

func TestUsage_CorruptRecordTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	st := mocks.NewMemStore()
	st.SetRaw(store.KeyFreeUsage, "{not json")

	g := gate.New(st, 10, nil)
	usage := g.Usage(ctx)

	assert.Equal(t, 0, usage.QuestionsUsed)
	assert.Equal(t, 10, usage.QuestionsLimit)
}

func TestRecordView_CountsDistinctQuestions(t *testing.T) {
	ctx := context.Background()
	g := gate.New(mocks.NewMemStore(), 10, nil)
	user := freeUser()

	for i := 1; i <= 5; i++ {
		usage := g.RecordView(ctx, user, fmt.Sprintf("q%d", i))
		assert.Equal(t, i, usage.QuestionsUsed)
	}
	assert.Len(t, g.Usage(ctx).SessionQuestions, 5)
}

func TestRecordView_IdempotentPerQuestion(t *testing.T) {
	ctx := context.Background()
	g := gate.New(mocks.NewMemStore(), 10, nil)
	user := freeUser()

	first := g.RecordView(ctx, user, "q1")
	second := g.RecordView(ctx, user, "q1")

	assert.Equal(t, 1, first.QuestionsUsed)
	assert.Equal(t, first, second)
}

func TestRecordView_PremiumNoOp(t *testing.T) {
	ctx := context.Background()
	g := gate.New(mocks.NewMemStore(), 10, nil)

	usage := g.RecordView(ctx, premiumUser(), "q1")

	assert.Equal(t, 0, usage.QuestionsUsed)
	assert.Empty(t, usage.SessionQuestions)
}

func TestCanAccess_UnderAndOverCap(t *testing.T) {
	ctx := context.Background()
	g := gate.New(mocks.NewMemStore(), 2, nil)
	user := freeUser()

	assert.True(t, g.CanAccess(ctx, user, "q1"))
	g.RecordView(ctx, user, "q1")
	g.RecordView(ctx, user, "q2")

	// Cap reached: new questions are denied, seen ones stay free.
	assert.False(t, g.CanAccess(ctx, user, "q3"))
	assert.True(t, g.CanAccess(ctx, user, "q1"))
	assert.True(t, g.CanAccess(ctx, user, "q2"))
}

func TestCanAccess_PremiumAlwaysAllowed(t *testing.T) {
	ctx := context.Background()
	g := gate.New(mocks.NewMemStore(), 1, nil)

	for i := 0; i < 20; i++ {
		assert.True(t, g.CanAccess(ctx, premiumUser(), fmt.Sprintf("q%d", i)))
	}
}

func TestCanAccess_AnonymousIsFreeIdentity(t *testing.T) {
	ctx := context.Background()
	g := gate.New(mocks.NewMemStore(), 1, nil)

	g.RecordView(ctx, nil, "q1")
	assert.False(t, g.CanAccess(ctx, nil, "q2"))
}

func TestRecordView_PublishesUsageEvent(t *testing.T) {
	ctx := context.Background()
	bus := event.NewBus()
	g := gate.New(mocks.NewMemStore(), 10, bus)

	var events []event.Event
	bus.Subscribe(func(ev event.Event) { events = append(events, ev) })

	g.RecordView(ctx, freeUser(), "q1")
	g.RecordView(ctx, freeUser(), "q1") // idempotent, no second event

	require.Len(t, events, 1)
	assert.Equal(t, event.TypeUsageChanged, events[0].Type)
}

func TestRecordView_SurvivesFailingWrites(t *testing.T) {
	ctx := context.Background()
	st := mocks.NewMemStore()
	st.FailWrites = true
	g := gate.New(st, 10, nil)

	// Write failures are swallowed; the returned record is still the
	// computed one even though nothing persisted.
	usage := g.RecordView(ctx, freeUser(), "q1")
	assert.Equal(t, 1, usage.QuestionsUsed)
}
