package handler

import (
	"net/http"

	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/logger"
	"github.com/moniyo/financequest/internal/progress"
)

// CompleteQuestRequest is the optional body of a quest completion
type CompleteQuestRequest struct {
	Score *int `json:"score,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// HandleCompleteQuest awards a quest to a user
// @Summary Complete quest
// @Description Award quest XP, record its savings impact and unlock badges
// @Tags quests
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param questID path string true "Quest ID"
// @Param request body CompleteQuestRequest false "Quiz score"
// @Success 200 {object} domain.QuestCompletionResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/users/{userID}/quests/{questID}/complete [post]
func (h *ProgressHandler) HandleCompleteQuest(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, paramUserID, ErrMsgInvalidUserID)
	if !ok {
		return
	}
	questID, ok := pathID(w, r, paramQuestID, ErrMsgInvalidQuestID)
	if !ok {
		return
	}

	var req CompleteQuestRequest
	if err := DecodeOptionalRequest(r, w, &req, "Complete quest"); err != nil {
		return
	}

	result, err := h.service.CompleteQuest(r.Context(), userID, progress.QuestCompletion{
		QuestID: questID,
		Score:   req.Score,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgCompleteQuestFailed, err)
		return
	}

	logger.FromContext(r.Context()).Info("Quest completed via API",
		logger.AttrKeyUserID, userID, "quest_id", questID, "xp", result.XPGained, "level", result.Level)
	respondJSON(w, http.StatusOK, result)
}

// QuestLister lists the quest catalog
type QuestLister interface {
	All() []domain.Quest
	Version() string
}

// QuestCatalogResponse is the public quest catalog
type QuestCatalogResponse struct {
	Version string         `json:"version"`
	Quests  []domain.Quest `json:"quests"`
}

// HandleListQuests returns the quest catalog
// @Summary List quests
// @Tags quests
// @Produce json
// @Success 200 {object} QuestCatalogResponse
// @Router /api/v1/quests [get]
func HandleListQuests(catalog QuestLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, QuestCatalogResponse{
			Version: catalog.Version(),
			Quests:  catalog.All(),
		})
	}
}
