package handler

import (
	"net/http"

	"github.com/moniyo/financequest/internal/eventlog"
	"github.com/moniyo/financequest/internal/logger"
	"github.com/moniyo/financequest/internal/progress"
	"github.com/moniyo/financequest/internal/repository"
)

// Activity feed paging
const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// ProgressHandler serves the per-user progression endpoints
type ProgressHandler struct {
	service  progress.Service
	eventLog eventlog.Service
}

// NewProgressHandler creates a ProgressHandler. eventLog may be nil, in
// which case the activity endpoint returns an empty feed.
func NewProgressHandler(service progress.Service, eventLog eventlog.Service) *ProgressHandler {
	return &ProgressHandler{
		service:  service,
		eventLog: eventLog,
	}
}

// HandleInitProgress creates the progress document of a new account
// @Summary Create progress
// @Description Create the default progress document for a user
// @Tags progress
// @Produce json
// @Param userID path string true "User ID"
// @Success 201 {object} domain.UserProgress
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/users/{userID}/progress [post]
func (h *ProgressHandler) HandleInitProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, paramUserID, ErrMsgInvalidUserID)
	if !ok {
		return
	}

	p, err := h.service.InitProgress(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgInitProgressFailed, err)
		return
	}

	logger.FromContext(r.Context()).Info("Progress created", logger.AttrKeyUserID, userID)
	respondJSON(w, http.StatusCreated, p)
}

// HandleGetProgress returns the rendered progression state
// @Summary Get progress
// @Description Level, badges, milestones and savings impact of a user
// @Tags progress
// @Produce json
// @Param userID path string true "User ID"
// @Param lang query string false "Badge language (en, fr)"
// @Success 200 {object} progress.ProgressView
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{userID}/progress [get]
func (h *ProgressHandler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, paramUserID, ErrMsgInvalidUserID)
	if !ok {
		return
	}

	view, err := h.service.GetProgress(r.Context(), userID, requestLanguage(r))
	if err != nil {
		respondServiceError(w, r, ErrMsgGetProgressFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// ActivityResponse is the recent event feed of a user
type ActivityResponse struct {
	UserID string                `json:"user_id"`
	Events []repository.Activity `json:"events"`
}

// HandleGetActivity returns the latest logged progression events of a user
// @Summary Get activity
// @Description Latest progression events of a user, newest first
// @Tags progress
// @Produce json
// @Param userID path string true "User ID"
// @Param limit query int false "Maximum number of events (default 20, max 100)"
// @Success 200 {object} ActivityResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/users/{userID}/activity [get]
func (h *ProgressHandler) HandleGetActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, paramUserID, ErrMsgInvalidUserID)
	if !ok {
		return
	}
	limit, err := limitParam(r, defaultActivityLimit, maxActivityLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return
	}

	resp := ActivityResponse{UserID: userID, Events: []repository.Activity{}}
	if h.eventLog != nil {
		entries, err := h.eventLog.RecentForUser(r.Context(), userID, limit)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetActivityFailed, err)
			return
		}
		if entries != nil {
			resp.Events = entries
		}
	}
	respondJSON(w, http.StatusOK, resp)
}
