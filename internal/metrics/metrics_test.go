package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/event"
)

func TestHandleEvent_XPEarned(t *testing.T) {
	c := NewEventMetricsCollector()
	before := testutil.ToFloat64(XPAwarded.WithLabelValues(domain.XPSourceQuest))
	cappedBefore := testutil.ToFloat64(XPCapped.WithLabelValues(domain.XPSourceQuest))

	require.NoError(t, c.HandleEvent(context.Background(), event.NewXPEarnedEvent("u1", domain.XPSourceQuest, 75, 75, "intro", 75)))
	require.NoError(t, c.HandleEvent(context.Background(), event.NewXPEarnedEvent("u1", domain.XPSourceQuest, 25, 105, "quiz", 100)))

	assert.Equal(t, before+100, testutil.ToFloat64(XPAwarded.WithLabelValues(domain.XPSourceQuest)))
	assert.Equal(t, cappedBefore+1, testutil.ToFloat64(XPCapped.WithLabelValues(domain.XPSourceQuest)))
}

func TestHandleEvent_Unlocks(t *testing.T) {
	c := NewEventMetricsCollector()
	ctx := context.Background()

	badge := testutil.ToFloat64(BadgesUnlocked.WithLabelValues("first_quest"))
	milestone := testutil.ToFloat64(MilestonesUnlocked.WithLabelValues("500"))
	level := testutil.ToFloat64(LevelUps.WithLabelValues("2"))

	require.NoError(t, c.HandleEvent(ctx, event.NewBadgeUnlockedEvent("u1", "first_quest")))
	require.NoError(t, c.HandleEvent(ctx, event.NewMilestoneUnlockedEvent("u1", 500, 520)))
	require.NoError(t, c.HandleEvent(ctx, event.NewLevelUpEvent("u1", 1, 2, 320)))

	assert.Equal(t, badge+1, testutil.ToFloat64(BadgesUnlocked.WithLabelValues("first_quest")))
	assert.Equal(t, milestone+1, testutil.ToFloat64(MilestonesUnlocked.WithLabelValues("500")))
	assert.Equal(t, level+1, testutil.ToFloat64(LevelUps.WithLabelValues("2")))
}

func TestHandleEvent_MapPayload(t *testing.T) {
	c := NewEventMetricsCollector()
	before := testutil.ToFloat64(SavingsChanges.WithLabelValues(domain.SavingsChangeDeleted))

	evt := event.Event{
		Type:    event.SavingsChanged,
		Payload: map[string]interface{}{"user_id": "u1", "change": domain.SavingsChangeDeleted},
	}
	require.NoError(t, c.HandleEvent(context.Background(), evt))

	assert.Equal(t, before+1, testutil.ToFloat64(SavingsChanges.WithLabelValues(domain.SavingsChangeDeleted)))
}

func TestHandleEvent_UndecodablePayload(t *testing.T) {
	c := NewEventMetricsCollector()
	before := testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.LevelUp)))

	evt := event.Event{Type: event.LevelUp, Payload: "not an object"}
	assert.NoError(t, c.HandleEvent(context.Background(), evt))

	assert.Equal(t, before+1, testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.LevelUp))))
}

func TestRegister_SubscribesToBus(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	before := testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.QuestCompleted)))
	require.NoError(t, bus.Publish(context.Background(), event.NewQuestCompletedEvent("u1", "intro", "budgeting", nil)))
	assert.Equal(t, before+1, testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.QuestCompleted))))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/v1/users/{userID}/progress", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	pattern := "/api/v1/users/{userID}/progress"
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, pattern, "418"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/abc/progress", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, pattern, "418")))
}

func TestMiddleware_ImplicitOKAndSize(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/healthz", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/healthz", "200")))
	assert.Equal(t, float64(0), testutil.ToFloat64(HTTPRequestsInFlight))
}
