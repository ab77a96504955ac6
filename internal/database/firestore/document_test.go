package firestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moniyo/financequest/internal/domain"
)

func TestDecodeMilestones_LegacyMarkers(t *testing.T) {
	at := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	got, err := decodeMilestones(map[string]interface{}{
		"100":  true,
		"250":  at,
		"500":  false,
		"1000": nil,
	})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.True(t, got["100"].IsZero(), "legacy true marker is unlocked with no timestamp")
	assert.True(t, at.Equal(got["250"]))
}

func TestDecodeMilestones_RejectsUnknownType(t *testing.T) {
	_, err := decodeMilestones(map[string]interface{}{"100": 42})
	assert.Error(t, err)
}

func TestProgressFields_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	score := 90
	next := int64(700)
	p := &domain.UserProgress{
		UserID:  "u1",
		XPTotal: 405,
		Gamification: domain.Gamification{
			Level:       2,
			NextLevelXP: &next,
			Badges:      []string{"first_quest"},
			Milestones:  map[string]time.Time{"100": {}, "250": now},
			UpdatedAt:   now,
		},
		CompletedQuests: []domain.CompletedQuest{
			{QuestID: "cut-subscription", Category: "subscriptions", StarterPack: true, XP: 105, Score: &score, CompletedAt: now},
		},
		Streak:    domain.Streak{Current: 2, LastActiveDay: "2026-03-01"},
		CreatedAt: now,
	}

	fields := progressFields(p)
	assert.Equal(t, int64(405), fields[FieldXPTotal])

	g := fields[FieldGamification].(map[string]interface{})
	milestones := g["milestones"].(map[string]interface{})
	assert.Equal(t, true, milestones["100"], "zero time is written as the legacy marker")
	assert.Equal(t, now, milestones["250"])
	assert.Equal(t, int64(700), g["nextLevelXP"])

	quests := fields[FieldCompletedQuests].([]map[string]interface{})
	require.Len(t, quests, 1)
	assert.Equal(t, 90, quests[0]["score"])
}

func TestProgressFields_MaxLevelWritesNullNextXP(t *testing.T) {
	p := domain.NewUserProgress("u1", time.Now())
	p.Gamification.Badges = nil

	fields := progressFields(p)
	g := fields[FieldGamification].(map[string]interface{})
	assert.Nil(t, g["nextLevelXP"])
	assert.Equal(t, []string{}, g["badges"])
}

func TestProgressDoc_ToDomain(t *testing.T) {
	doc := progressDoc{
		XPTotal: 75,
		Gamification: gamificationDoc{
			Level:      0,
			Milestones: map[string]interface{}{"100": true},
		},
		CompletedQuests: []completedQuestDoc{{QuestID: "intro", XP: 75}},
	}

	p, err := doc.toDomain("u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, 1, p.Gamification.Level, "missing level defaults to 1")
	assert.NotNil(t, p.Gamification.Badges)
	assert.Contains(t, p.Gamification.Milestones, "100")
	assert.True(t, p.HasCompletedQuest("intro"))
}
