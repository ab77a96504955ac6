package handler

import (
	"net/http"

	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/progress"
)

// SavingsRequest is the body of savings create and update calls
type SavingsRequest struct {
	Amount   *float64 `json:"amount" validate:"required,gte=0"`
	Period   string   `json:"period" validate:"required,period"`
	Source   string   `json:"source,omitempty" validate:"omitempty,savings_source"`
	Verified bool     `json:"verified,omitempty"`
	QuestID  string   `json:"quest_id,omitempty" validate:"max=128"`
	Category string   `json:"category,omitempty" validate:"max=64"`
	Title    string   `json:"title,omitempty" validate:"max=200"`
}

func (req SavingsRequest) input() progress.SavingsInput {
	return progress.SavingsInput{
		Amount:   *req.Amount,
		Period:   req.Period,
		Source:   req.Source,
		Verified: req.Verified,
		QuestID:  req.QuestID,
		Category: req.Category,
		Title:    req.Title,
	}
}

// SavingsListResponse lists the savings events of a user
type SavingsListResponse struct {
	UserID string                `json:"user_id"`
	Events []domain.SavingsEvent `json:"events"`
}

// HandleRecordSavings records a savings event
// @Summary Record savings
// @Description Store a savings event, award XP and unlock milestones
// @Tags savings
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param request body SavingsRequest true "Savings event"
// @Success 201 {object} domain.SavingsChangeResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{userID}/savings [post]
func (h *ProgressHandler) HandleRecordSavings(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, paramUserID, ErrMsgInvalidUserID)
	if !ok {
		return
	}

	var req SavingsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Record savings"); err != nil {
		return
	}

	result, err := h.service.RecordSavings(r.Context(), userID, req.input())
	if err != nil {
		respondServiceError(w, r, ErrMsgRecordSavingsFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// HandleUpdateSavings edits a savings event
// @Summary Update savings
// @Tags savings
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param eventID path string true "Savings event ID"
// @Param request body SavingsRequest true "Savings event"
// @Success 200 {object} domain.SavingsChangeResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{userID}/savings/{eventID} [put]
func (h *ProgressHandler) HandleUpdateSavings(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, paramUserID, ErrMsgInvalidUserID)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, paramEventID, ErrMsgInvalidEventID)
	if !ok {
		return
	}

	var req SavingsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update savings"); err != nil {
		return
	}

	result, err := h.service.UpdateSavings(r.Context(), userID, eventID, req.input())
	if err != nil {
		respondServiceError(w, r, ErrMsgUpdateSavingsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleDeleteSavings removes a savings event
// @Summary Delete savings
// @Tags savings
// @Produce json
// @Param userID path string true "User ID"
// @Param eventID path string true "Savings event ID"
// @Success 200 {object} domain.SavingsChangeResult
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{userID}/savings/{eventID} [delete]
func (h *ProgressHandler) HandleDeleteSavings(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, paramUserID, ErrMsgInvalidUserID)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, paramEventID, ErrMsgInvalidEventID)
	if !ok {
		return
	}

	result, err := h.service.DeleteSavings(r.Context(), userID, eventID)
	if err != nil {
		respondServiceError(w, r, ErrMsgDeleteSavingsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleListSavings lists the savings events of a user, oldest first
// @Summary List savings
// @Tags savings
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} SavingsListResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{userID}/savings [get]
func (h *ProgressHandler) HandleListSavings(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, paramUserID, ErrMsgInvalidUserID)
	if !ok {
		return
	}

	events, err := h.service.ListSavings(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgListSavingsFailed, err)
		return
	}
	if events == nil {
		events = []domain.SavingsEvent{}
	}
	respondJSON(w, http.StatusOK, SavingsListResponse{UserID: userID, Events: events})
}
