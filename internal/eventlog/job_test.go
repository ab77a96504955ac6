package eventlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/moniyo/financequest/internal/database/memory"
	"github.com/moniyo/financequest/internal/repository"
)

func TestCleanupJob_PrunesPastRetention(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	svc := NewService(store, WithClock(func() time.Time { return fixedNow }))

	for i, age := range []time.Duration{91 * 24 * time.Hour, 89 * 24 * time.Hour, time.Hour} {
		assert.NoError(t, store.AppendActivity(ctx, repository.Activity{
			ID: string(rune('a' + i)), UserID: "u1", Type: "xp_earned", OccurredAt: fixedNow.Add(-age),
		}))
	}

	assert.NoError(t, NewCleanupJob(svc, 90).Process(ctx))

	left, err := store.ListActivity(ctx, "u1", 10)
	assert.NoError(t, err)
	assert.Len(t, left, 2)
}

func TestCleanupJob_ProcessError(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("PruneActivity", mock.Anything, mock.Anything).Return(int64(0), errors.New("timeout"))

	assert.Error(t, NewCleanupJob(NewService(mockRepo), 30).Process(context.Background()))
}
