package eventlog

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/moniyo/financequest/internal/repository"
)

// MockRepository is a testify mock of repository.EventLog
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) AppendActivity(ctx context.Context, a repository.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) ListActivity(ctx context.Context, userID string, limit int) ([]repository.Activity, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]repository.Activity), args.Error(1)
}

func (m *MockRepository) PruneActivity(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}
