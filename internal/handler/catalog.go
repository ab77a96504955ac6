package handler

import (
	"net/http"

	"github.com/moniyo/financequest/internal/gamification"
)

// LevelEntry is one row of the level table
type LevelEntry struct {
	Level       int    `json:"level"`
	XPRequired  int64  `json:"xp_required"`
	NextLevelXP *int64 `json:"next_level_xp"`
}

// LevelsResponse is the public level and milestone table
type LevelsResponse struct {
	Levels     []LevelEntry `json:"levels"`
	Milestones []int        `json:"milestones"`
	DailyXPCap int          `json:"daily_xp_cap"`
}

// HandleGetLevels returns the level thresholds and milestone checkpoints
// @Summary Level table
// @Tags catalog
// @Produce json
// @Success 200 {object} LevelsResponse
// @Router /api/v1/levels [get]
func HandleGetLevels(engine *gamification.Engine, dailyXPCap int) http.HandlerFunc {
	thresholds := engine.LevelThresholds()
	levels := make([]LevelEntry, len(thresholds))
	for i, xp := range thresholds {
		levels[i] = LevelEntry{Level: i + 1, XPRequired: xp}
		if i+1 < len(thresholds) {
			next := thresholds[i+1]
			levels[i].NextLevelXP = &next
		}
	}
	resp := LevelsResponse{Levels: levels, Milestones: engine.Milestones(), DailyXPCap: dailyXPCap}

	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, resp)
	}
}

// BadgesResponse is the localized badge catalog
type BadgesResponse struct {
	Language string                   `json:"language"`
	Badges   []gamification.BadgeView `json:"badges"`
}

// HandleGetBadges returns the badge catalog in the requested language
// @Summary Badge catalog
// @Tags catalog
// @Produce json
// @Param lang query string false "Language (en, fr)"
// @Success 200 {object} BadgesResponse
// @Router /api/v1/badges [get]
func HandleGetBadges(engine *gamification.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pref := requestLanguage(r)
		respondJSON(w, http.StatusOK, BadgesResponse{
			Language: gamification.ResolveLanguage(pref),
			Badges:   engine.Catalog(pref),
		})
	}
}
