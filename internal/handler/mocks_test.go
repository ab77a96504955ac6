package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/event"
	"github.com/moniyo/financequest/internal/progress"
	"github.com/moniyo/financequest/internal/repository"
)

// MockProgressService mocks the progress.Service interface
type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) InitProgress(ctx context.Context, userID string) (*domain.UserProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProgress), args.Error(1)
}

func (m *MockProgressService) GetProgress(ctx context.Context, userID, lang string) (*progress.ProgressView, error) {
	args := m.Called(ctx, userID, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*progress.ProgressView), args.Error(1)
}

func (m *MockProgressService) CompleteQuest(ctx context.Context, userID string, req progress.QuestCompletion) (*domain.QuestCompletionResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuestCompletionResult), args.Error(1)
}

func (m *MockProgressService) RecordSavings(ctx context.Context, userID string, in progress.SavingsInput) (*domain.SavingsChangeResult, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsChangeResult), args.Error(1)
}

func (m *MockProgressService) UpdateSavings(ctx context.Context, userID, eventID string, in progress.SavingsInput) (*domain.SavingsChangeResult, error) {
	args := m.Called(ctx, userID, eventID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsChangeResult), args.Error(1)
}

func (m *MockProgressService) DeleteSavings(ctx context.Context, userID, eventID string) (*domain.SavingsChangeResult, error) {
	args := m.Called(ctx, userID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsChangeResult), args.Error(1)
}

func (m *MockProgressService) ListSavings(ctx context.Context, userID string) ([]domain.SavingsEvent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavingsEvent), args.Error(1)
}

// MockEventLog mocks the eventlog.Service interface
type MockEventLog struct {
	mock.Mock
}

func (m *MockEventLog) Subscribe(bus event.Bus) error {
	return m.Called(bus).Error(0)
}

func (m *MockEventLog) RecentForUser(ctx context.Context, userID string, limit int) ([]repository.Activity, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Activity), args.Error(1)
}

func (m *MockEventLog) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}

// newTestRouter mounts the progress handlers the way the server does
func newTestRouter(h *ProgressHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Post(PatternUserProgress, h.HandleInitProgress)
		r.Get(PatternUserProgress, h.HandleGetProgress)
		r.Get(PatternUserActivity, h.HandleGetActivity)
		r.Post(PatternQuestComplete, h.HandleCompleteQuest)
		r.Get(PatternSavings, h.HandleListSavings)
		r.Post(PatternSavings, h.HandleRecordSavings)
		r.Put(PatternSavingsEvent, h.HandleUpdateSavings)
		r.Delete(PatternSavingsEvent, h.HandleDeleteSavings)
	})
	return r
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
