package quest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/gamification"
	"github.com/moniyo/financequest/internal/validation"
)

func TestLoad_ShippedCatalog(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "configs", "quests", "catalog.json"))
	require.NoError(t, err)

	// Badge rules reference these quest ids
	for _, id := range []string{gamification.QuestIDCutSubscription, gamification.QuestIDAdjustTaxRate} {
		_, err := c.Get(id)
		assert.NoError(t, err, id)
	}

	starters := 0
	for _, q := range c.All() {
		if q.StarterPack {
			starters++
		}
	}
	assert.GreaterOrEqual(t, starters, 3, "starter_pack_finisher must be reachable")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"2","quests":[{"id":"a","title":"A","xp":10}]}`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2", c.Version())
	assert.Equal(t, 1, c.Len())
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr error
	}{
		{"empty", `{"quests":[]}`, ErrInvalidCatalog},
		{"missing id", `{"quests":[{"title":"x"}]}`, ErrInvalidCatalog},
		{"missing title", `{"quests":[{"id":"x"}]}`, ErrInvalidCatalog},
		{"duplicate", `{"quests":[{"id":"x","title":"X"},{"id":"x","title":"Y"}]}`, ErrDuplicateQuestID},
		{"bad period", `{"quests":[{"id":"x","title":"X","impact":{"amount":5,"period":"week"}}]}`, ErrInvalidCatalog},
		{"negative impact", `{"quests":[{"id":"x","title":"X","impact":{"amount":-5,"period":"month"}}]}`, ErrInvalidCatalog},
		{"unknown difficulty", `{"quests":[{"id":"x","title":"X","difficulty":"expert"}]}`, validation.ErrSchemaViolation},
		{"string xp", `{"quests":[{"id":"x","title":"X","xp":"ten"}]}`, validation.ErrSchemaViolation},
		{"no quests key", `{"version":"1"}`, ErrInvalidCatalog},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := Parse([]byte(`{`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCatalog)
}

func TestParse_SchemaErrorNamesLocation(t *testing.T) {
	_, err := Parse([]byte(`{"quests":[{"id":"a","title":"A"},{"id":"b","title":"B","impact":{"period":"week"}}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/quests/1/impact/period")
}

func TestCatalog_Get(t *testing.T) {
	c, err := NewCatalog(domain.QuestCatalogConfig{Quests: []domain.Quest{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B", Difficulty: domain.DifficultyAdvanced},
	}})
	require.NoError(t, err)

	q, err := c.Get("b")
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyAdvanced, q.Difficulty)

	_, err = c.Get("zzz")
	assert.ErrorIs(t, err, domain.ErrQuestNotFound)

	all := c.All()
	all[0].Title = "mutated"
	first, _ := c.Get("a")
	assert.Equal(t, "A", first.Title)
}
