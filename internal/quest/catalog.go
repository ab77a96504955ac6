// Package quest loads and serves the quest catalog.
package quest

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/validation"
)

//go:embed catalog.schema.json
var catalogSchemaJSON []byte

var catalogSchema = validation.MustCompile("quest_catalog.schema.json", catalogSchemaJSON)

// Sentinel errors for catalog loading
var (
	ErrDuplicateQuestID = errors.New("duplicate quest id")
	ErrInvalidCatalog   = errors.New("invalid quest catalog")
)

var validPeriods = map[string]bool{
	domain.PeriodMonth: true,
	domain.PeriodYear:  true,
}

// Catalog is an immutable, ordered set of quests
type Catalog struct {
	version string
	quests  []domain.Quest
	index   map[string]int
}

// Load reads and validates a catalog JSON file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quest catalog: %w", err)
	}
	return Parse(data)
}

// Parse checks catalog JSON against the catalog schema, then decodes and validates it
func Parse(data []byte) (*Catalog, error) {
	if err := catalogSchema.ValidateBytes(data); err != nil {
		if errors.Is(err, validation.ErrSchemaViolation) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}
		return nil, fmt.Errorf("failed to parse quest catalog: %w", err)
	}
	var cfg domain.QuestCatalogConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse quest catalog: %w", err)
	}
	return NewCatalog(cfg)
}

// NewCatalog validates cfg and builds a catalog from it
func NewCatalog(cfg domain.QuestCatalogConfig) (*Catalog, error) {
	if len(cfg.Quests) == 0 {
		return nil, fmt.Errorf("%w: no quests defined", ErrInvalidCatalog)
	}

	c := &Catalog{
		version: cfg.Version,
		quests:  make([]domain.Quest, 0, len(cfg.Quests)),
		index:   make(map[string]int, len(cfg.Quests)),
	}
	for i, q := range cfg.Quests {
		if q.ID == "" {
			return nil, fmt.Errorf("%w: quest at index %d has empty id", ErrInvalidCatalog, i)
		}
		if _, dup := c.index[q.ID]; dup {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateQuestID, q.ID)
		}
		if q.Title == "" {
			return nil, fmt.Errorf("%w: quest '%s' has empty title", ErrInvalidCatalog, q.ID)
		}
		if q.Impact != nil {
			if !validPeriods[q.Impact.Period] {
				return nil, fmt.Errorf("%w: quest '%s' has invalid impact period %q", ErrInvalidCatalog, q.ID, q.Impact.Period)
			}
			if q.Impact.Amount < 0 {
				return nil, fmt.Errorf("%w: quest '%s' has negative impact", ErrInvalidCatalog, q.ID)
			}
		}
		c.index[q.ID] = len(c.quests)
		c.quests = append(c.quests, q)
	}
	return c, nil
}

// Version returns the catalog version string
func (c *Catalog) Version() string {
	return c.version
}

// Get returns the quest with the given id or domain.ErrQuestNotFound
func (c *Catalog) Get(id string) (domain.Quest, error) {
	i, ok := c.index[id]
	if !ok {
		return domain.Quest{}, fmt.Errorf("%w: %s", domain.ErrQuestNotFound, id)
	}
	return c.quests[i], nil
}

// All returns the quests in catalog order
func (c *Catalog) All() []domain.Quest {
	return append([]domain.Quest(nil), c.quests...)
}

// Len returns the number of quests
func (c *Catalog) Len() int {
	return len(c.quests)
}
