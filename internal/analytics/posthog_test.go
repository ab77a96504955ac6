package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/event"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Enqueue(msg posthog.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockClient) Close() error {
	return m.Called().Error(0)
}

func fixedSink(client Client) *PostHogSink {
	s := NewPostHogSink(client)
	s.now = func() time.Time { return time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestHandleEvent_Captures(t *testing.T) {
	tests := []struct {
		name  string
		evt   event.Event
		props posthog.Properties
	}{
		{
			name: "xp earned",
			evt:  event.NewXPEarnedEvent("u1", domain.XPSourceQuest, 75, 75, "intro", 75),
			props: posthog.Properties{
				PropertySchema: event.EventSchemaVersion, PropertySource: "quest", PropertyAmount: 75, PropertyQuestID: "intro",
			},
		},
		{
			name:  "level up",
			evt:   event.NewLevelUpEvent("u1", 1, 2, 300),
			props: posthog.Properties{PropertySchema: event.EventSchemaVersion, PropertyLevel: 2, PropertyXPTotal: int64(300)},
		},
		{
			name:  "badge",
			evt:   event.NewBadgeUnlockedEvent("u1", "first_quest"),
			props: posthog.Properties{PropertySchema: event.EventSchemaVersion, PropertyBadgeID: "first_quest"},
		},
		{
			name:  "milestone",
			evt:   event.NewMilestoneUnlockedEvent("u1", 500, 500.04),
			props: posthog.Properties{PropertySchema: event.EventSchemaVersion, PropertyAmount: 500, PropertyImpactTotal: 500.04},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockClient)
			client.On("Enqueue", mock.Anything).Return(nil)

			require.NoError(t, fixedSink(client).HandleEvent(context.Background(), tt.evt))

			client.AssertNumberOfCalls(t, "Enqueue", 1)
			capture := client.Calls[0].Arguments.Get(0).(posthog.Capture)
			assert.Equal(t, "u1", capture.DistinctId)
			assert.Equal(t, string(tt.evt.Type), capture.Event)
			assert.Equal(t, tt.props, capture.Properties)
		})
	}
}

func TestHandleEvent_EnqueueFailureIsSwallowed(t *testing.T) {
	client := new(MockClient)
	client.On("Enqueue", mock.Anything).Return(errors.New("queue full"))

	err := fixedSink(client).HandleEvent(context.Background(), event.NewBadgeUnlockedEvent("u1", "level_5"))
	assert.NoError(t, err)
}

func TestHandleEvent_UnsupportedTypeIsSkipped(t *testing.T) {
	client := new(MockClient)

	err := fixedSink(client).HandleEvent(context.Background(), event.NewQuestCompletedEvent("u1", "q", "c", nil))
	assert.NoError(t, err)
	client.AssertNotCalled(t, "Enqueue", mock.Anything)
}

func TestHandleEvent_AnonymousUser(t *testing.T) {
	client := new(MockClient)
	client.On("Enqueue", mock.Anything).Return(nil)

	evt := event.Event{Type: event.BadgeUnlocked, Payload: map[string]interface{}{"badge_id": "x"}}
	require.NoError(t, fixedSink(client).HandleEvent(context.Background(), evt))

	capture := client.Calls[0].Arguments.Get(0).(posthog.Capture)
	assert.Equal(t, anonymousDistinctID, capture.DistinctId)
}

func TestRegister_OnlyAnalyticsEvents(t *testing.T) {
	client := new(MockClient)
	client.On("Enqueue", mock.Anything).Return(nil)
	bus := event.NewMemoryBus()
	fixedSink(client).Register(bus)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event.NewLevelUpEvent("u1", 1, 2, 300)))
	require.NoError(t, bus.Publish(ctx, event.NewQuestCompletedEvent("u1", "q", "c", nil)))

	client.AssertNumberOfCalls(t, "Enqueue", 1)
}

func TestClose(t *testing.T) {
	client := new(MockClient)
	client.On("Close").Return(errors.New("flush failed"))

	fixedSink(client).Close(context.Background())
	client.AssertExpectations(t)
}

func TestNopClient(t *testing.T) {
	var c Client = NopClient{}
	assert.NoError(t, c.Enqueue(posthog.Capture{}))
	assert.NoError(t, c.Close())
}
