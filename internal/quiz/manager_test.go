package quiz_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandesh/prepquiz/internal/errors"
	"github.com/sandesh/prepquiz/internal/event"
	"github.com/sandesh/prepquiz/internal/gate"
	"github.com/sandesh/prepquiz/internal/models"
	"github.com/sandesh/prepquiz/internal/quiz"
	"github.com/sandesh/prepquiz/internal/testutil/mocks"
)

func testQuestions(n int) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			ID:            fmt.Sprintf("q%d", i+1),
			Prompt:        fmt.Sprintf("question %d", i+1),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % 4,
			Difficulty:    models.DifficultyEasy,
			Subject:       "Civil Engineering",
			Topic:         "General",
		}
	}
	return questions
}

func newManager(t *testing.T, limit int) (*quiz.Manager, gate.UsageGate) {
	t.Helper()
	g := gate.New(mocks.NewMemStore(), limit, nil)
	return quiz.NewManager(g, nil), g
}

func freeUser() *models.User {
	return &models.User{ID: "u1", Email: "free@example.com", SubscriptionTier: models.TierFree}
}

func intPtr(v int) *int { return &v }

func TestStart_NewSessionAtFirstQuestion(t *testing.T) {
	ctx := context.Background()
	m, g := newManager(t, 10)

	session, err := m.Start(ctx, freeUser(), testQuestions(3), intPtr(60))
	require.NoError(t, err)

	assert.Equal(t, 0, session.CurrentQuestionIndex)
	assert.False(t, session.IsCompleted)
	assert.Empty(t, session.Answers)
	assert.Equal(t, "q1", session.CurrentQuestion().ID)

	// Starting charges the first question for a free user.
	assert.Equal(t, 1, g.Usage(ctx).QuestionsUsed)
}

func TestStart_EmptyQuestionListRejected(t *testing.T) {
	m, _ := newManager(t, 10)

	_, err := m.Start(context.Background(), freeUser(), nil, intPtr(60))
	require.Error(t, err)
}

func TestStart_FirstQuestionChargedWithoutCapCheck(t *testing.T) {
	// Observed behavior carried over from the original flow: the first
	// question of a new session is recorded before any cap check, so a
	// user with zero remaining free questions still gets question one.
	ctx := context.Background()
	m, g := newManager(t, 1)
	user := freeUser()

	g.RecordView(ctx, user, "other")
	require.False(t, g.CanAccess(ctx, user, "q1"))

	session, err := m.Start(ctx, user, testQuestions(2), intPtr(60))
	require.NoError(t, err)
	assert.Equal(t, "q1", session.CurrentQuestion().ID)
	assert.Equal(t, 2, g.Usage(ctx).QuestionsUsed)
}

func TestSubmitAnswer_OverwritesPriorAnswer(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, 10)

	_, err := m.Start(ctx, freeUser(), testQuestions(2), intPtr(60))
	require.NoError(t, err)

	require.NoError(t, m.SubmitAnswer(ctx, 1))
	require.NoError(t, m.SubmitAnswer(ctx, 3))

	session := m.Snapshot()
	assert.Equal(t, map[string]int{"q1": 3}, session.Answers)
}

func TestSubmitAnswer_OutOfRangeAccepted(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, 10)

	_, err := m.Start(ctx, freeUser(), testQuestions(1), intPtr(60))
	require.NoError(t, err)

	// Out-of-range indices are stored as-is and simply never score.
	require.NoError(t, m.SubmitAnswer(ctx, 99))

	require.NoError(t, m.Finish(ctx))
	result, err := m.Result()
	require.NoError(t, err)
	assert.Equal(t, 0, result.CorrectAnswers)
}

func TestAdvance_WalksAndCompletes(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, 10)
	user := freeUser()

	_, err := m.Start(ctx, user, testQuestions(3), intPtr(60))
	require.NoError(t, err)

	require.NoError(t, m.Advance(ctx, user))
	assert.Equal(t, 1, m.Snapshot().CurrentQuestionIndex)
	require.NoError(t, m.Advance(ctx, user))
	assert.Equal(t, 2, m.Snapshot().CurrentQuestionIndex)

	// Advancing past the last question completes the session.
	require.NoError(t, m.Advance(ctx, user))
	session := m.Snapshot()
	assert.True(t, session.IsCompleted)
	require.NotNil(t, session.EndTime)
	assert.Equal(t, 2, session.CurrentQuestionIndex)
}

func TestAdvance_RefusedByGateLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	m, g := newManager(t, 1)
	user := freeUser()

	_, err := m.Start(ctx, user, testQuestions(2), intPtr(60))
	require.NoError(t, err)
	require.Equal(t, 1, g.Usage(ctx).QuestionsUsed)

	err = m.Advance(ctx, user)
	require.Error(t, err)
	assert.True(t, errors.IsUpgradeRequired(err))

	session := m.Snapshot()
	assert.Equal(t, 0, session.CurrentQuestionIndex)
	assert.False(t, session.IsCompleted)
	assert.Equal(t, 1, g.Usage(ctx).QuestionsUsed)

	// Repeated attempts stay pinned at the first question.
	require.Error(t, m.Advance(ctx, user))
	assert.Equal(t, 0, m.Snapshot().CurrentQuestionIndex)
}

func TestRetreat_PreservesAnswersAndFloor(t *testing.T) {
	ctx := context.Background()
	m, g := newManager(t, 10)
	user := freeUser()

	_, err := m.Start(ctx, user, testQuestions(3), intPtr(60))
	require.NoError(t, err)
	require.NoError(t, m.SubmitAnswer(ctx, 0))
	require.NoError(t, m.Advance(ctx, user))
	usedAfterAdvance := g.Usage(ctx).QuestionsUsed

	require.NoError(t, m.Retreat(ctx))
	session := m.Snapshot()
	assert.Equal(t, 0, session.CurrentQuestionIndex)
	assert.Equal(t, map[string]int{"q1": 0}, session.Answers)
	// Going back never re-charges the gate.
	assert.Equal(t, usedAfterAdvance, g.Usage(ctx).QuestionsUsed)

	// Retreat at the first question is a no-op, never below zero.
	require.NoError(t, m.Retreat(ctx))
	assert.Equal(t, 0, m.Snapshot().CurrentQuestionIndex)
}

func TestFinish_TerminalAndIdempotent(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, 10)
	user := freeUser()

	_, err := m.Start(ctx, user, testQuestions(3), intPtr(60))
	require.NoError(t, err)

	require.NoError(t, m.Finish(ctx))
	session := m.Snapshot()
	require.True(t, session.IsCompleted)
	end := *session.EndTime

	// Finishing again keeps the original end time.
	require.NoError(t, m.Finish(ctx))
	assert.Equal(t, end, *m.Snapshot().EndTime)

	// A completed session refuses mutation.
	require.Error(t, m.SubmitAnswer(ctx, 1))
	require.Error(t, m.Advance(ctx, user))
}

func TestEndToEnd_ThreeQuestionRun(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, 10)
	user := freeUser()

	questions := testQuestions(3) // correct answers: 0, 1, 2
	_, err := m.Start(ctx, user, questions, intPtr(60))
	require.NoError(t, err)

	assert.True(t, m.CanProceed(ctx, user))
	require.NoError(t, m.SubmitAnswer(ctx, 0)) // correct

	require.NoError(t, m.Advance(ctx, user))
	assert.True(t, m.CanProceed(ctx, user))
	require.NoError(t, m.SubmitAnswer(ctx, 3)) // wrong

	require.NoError(t, m.Advance(ctx, user))
	assert.True(t, m.CanProceed(ctx, user))
	require.NoError(t, m.SubmitAnswer(ctx, 2)) // correct

	require.NoError(t, m.Advance(ctx, user))
	require.True(t, m.Snapshot().IsCompleted)

	result, err := m.Result()
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 2, result.CorrectAnswers)
	assert.Equal(t, 67, result.Score)
	assert.Equal(t, "Civil Engineering", result.Subject)
}

func TestProgress_Reporting(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, 10)
	user := freeUser()

	assert.Equal(t, models.SessionProgress{}, m.Progress())

	_, err := m.Start(ctx, user, testQuestions(4), intPtr(60))
	require.NoError(t, err)
	assert.Equal(t, models.SessionProgress{Current: 1, Total: 4, Percentage: 25}, m.Progress())

	require.NoError(t, m.Advance(ctx, user))
	assert.Equal(t, models.SessionProgress{Current: 2, Total: 4, Percentage: 50}, m.Progress())
}

func TestCountdown_ZeroMinutesAutoFinishes(t *testing.T) {
	ctx := context.Background()
	g := gate.New(mocks.NewMemStore(), 10, nil)
	m := quiz.NewManager(g, nil, quiz.WithTickInterval(5*time.Millisecond))

	_, err := m.Start(ctx, freeUser(), testQuestions(2), intPtr(0))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		s := m.Snapshot()
		return s != nil && s.IsCompleted
	}, time.Second, 5*time.Millisecond, "session should auto-finish on the first tick")

	assert.NotNil(t, m.Snapshot().EndTime)
	assert.Equal(t, 0, m.TimeRemaining())
}

func TestCountdown_StoppedWhenSessionReplaced(t *testing.T) {
	ctx := context.Background()
	g := gate.New(mocks.NewMemStore(), 10, nil)
	m := quiz.NewManager(g, nil, quiz.WithTickInterval(5*time.Millisecond))
	user := freeUser()

	_, err := m.Start(ctx, user, testQuestions(2), intPtr(0))
	require.NoError(t, err)

	// Replace with a generously timed session; the old countdown must not
	// complete it.
	replacement, err := m.Start(ctx, user, testQuestions(2), intPtr(60))
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	session := m.Snapshot()
	assert.Equal(t, replacement.ID, session.ID)
	assert.False(t, session.IsCompleted)
}

func TestTimeRemaining_Bounds(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, 10)
	user := freeUser()

	assert.Equal(t, 0, m.TimeRemaining())

	_, err := m.Start(ctx, user, testQuestions(1), intPtr(60))
	require.NoError(t, err)
	remaining := m.TimeRemaining()
	assert.Greater(t, remaining, 3500)
	assert.LessOrEqual(t, remaining, 3600)

	// Untimed sessions report zero.
	_, err = m.Start(ctx, user, testQuestions(1), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.TimeRemaining())
}

func TestStart_PublishesSessionEvent(t *testing.T) {
	ctx := context.Background()
	bus := event.NewBus()
	g := gate.New(mocks.NewMemStore(), 10, bus)
	m := quiz.NewManager(g, bus)

	var types []string
	bus.Subscribe(func(ev event.Event) { types = append(types, ev.Type) })

	_, err := m.Start(ctx, freeUser(), testQuestions(1), intPtr(60))
	require.NoError(t, err)

	assert.Contains(t, types, event.TypeSessionChanged)
	assert.Contains(t, types, event.TypeUsageChanged)
}
