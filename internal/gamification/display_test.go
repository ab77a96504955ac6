package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLanguage(t *testing.T) {
	assert.Equal(t, "en", ResolveLanguage(""))
	assert.Equal(t, "en", ResolveLanguage("en-US"))
	assert.Equal(t, "fr", ResolveLanguage("fr"))
	assert.Equal(t, "fr", ResolveLanguage("fr-CA,fr;q=0.9,en;q=0.5"))
	assert.Equal(t, "en", ResolveLanguage("de"))
	assert.Equal(t, "en", ResolveLanguage("!!!"))
}

func TestCatalog(t *testing.T) {
	e := Default()
	views := e.Catalog("fr")
	require.Len(t, views, len(DefaultBadges()))

	assert.Equal(t, BadgeFirstQuest, views[0].ID)
	assert.Equal(t, "Premier pas", views[0].Name)
	assert.Equal(t, "fr", views[0].Language)
	assert.Equal(t, "Complete 1 quest", views[0].Criterion)
	for _, v := range views {
		assert.NotEmpty(t, v.Icon, v.ID)
		assert.NotEmpty(t, v.Color, v.ID)
	}
}

func TestBadgeViews_SkipsUnknownIDs(t *testing.T) {
	e := Default()
	views := e.BadgeViews([]string{BadgeLevel5, "retired_badge", BadgeFirstQuest}, "en")
	require.Len(t, views, 2)
	assert.Equal(t, BadgeLevel5, views[0].ID)
	assert.Equal(t, "Level 5", views[0].Name)
	assert.Equal(t, BadgeFirstQuest, views[1].ID)
}

func TestLocalized_FallsBackToEnglish(t *testing.T) {
	b := BadgeDefinition{ID: "x", Names: map[string]string{"en": "Name"}, Descriptions: map[string]string{"en": "Desc", "fr": ""}}
	v := b.View("fr")
	assert.Equal(t, "Name", v.Name)
	assert.Equal(t, "Desc", v.Description)
}
