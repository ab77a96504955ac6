package gamification

import (
	"errors"
	"fmt"
	"sort"
)

// Engine evaluates progression rules over a fixed set of tables.
// An Engine is immutable after construction and safe for concurrent use.
type Engine struct {
	levels     []int64
	milestones []int
	badges     []BadgeDefinition
	badgeIndex map[string]int
}

// Option configures an Engine
type Option func(*Engine)

// WithLevelThresholds replaces the level table
func WithLevelThresholds(thresholds []int64) Option {
	return func(e *Engine) {
		e.levels = append([]int64(nil), thresholds...)
	}
}

// WithMilestones replaces the milestone set
func WithMilestones(amounts []int) Option {
	return func(e *Engine) {
		e.milestones = append([]int(nil), amounts...)
	}
}

// WithBadges replaces the badge catalog
func WithBadges(badges []BadgeDefinition) Option {
	return func(e *Engine) {
		e.badges = append([]BadgeDefinition(nil), badges...)
	}
}

// NewEngine builds an engine from the default tables with the given overrides
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		levels:     append([]int64(nil), defaultLevelThresholds...),
		milestones: append([]int(nil), defaultMilestones...),
		badges:     DefaultBadges(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := validateLevels(e.levels); err != nil {
		return nil, err
	}

	sort.Ints(e.milestones)
	for i, m := range e.milestones {
		if m <= 0 {
			return nil, fmt.Errorf("milestone %d must be positive", m)
		}
		if i > 0 && e.milestones[i-1] == m {
			return nil, fmt.Errorf("duplicate milestone %d", m)
		}
	}

	e.badgeIndex = make(map[string]int, len(e.badges))
	for i, b := range e.badges {
		if b.ID == "" {
			return nil, errors.New("badge id is required")
		}
		if _, dup := e.badgeIndex[b.ID]; dup {
			return nil, fmt.Errorf("duplicate badge id %q", b.ID)
		}
		e.badgeIndex[b.ID] = i
	}

	return e, nil
}

func validateLevels(levels []int64) error {
	if len(levels) == 0 {
		return errors.New("level table is empty")
	}
	if levels[0] != 0 {
		return fmt.Errorf("level 1 threshold must be 0, got %d", levels[0])
	}
	for i := 1; i < len(levels); i++ {
		if levels[i] <= levels[i-1] {
			return fmt.Errorf("level thresholds must be strictly increasing at index %d", i)
		}
	}
	return nil
}

var defaultEngine = func() *Engine {
	e, err := NewEngine()
	if err != nil {
		panic(fmt.Sprintf("invalid default gamification tables: %v", err))
	}
	return e
}()

// Default returns the engine configured with the production tables
func Default() *Engine {
	return defaultEngine
}

// LevelThresholds returns a copy of the level table
func (e *Engine) LevelThresholds() []int64 {
	return append([]int64(nil), e.levels...)
}

// Milestones returns a copy of the milestone set in ascending order
func (e *Engine) Milestones() []int {
	return append([]int(nil), e.milestones...)
}

// MaxLevel is the highest tabulated level
func (e *Engine) MaxLevel() int {
	return len(e.levels)
}
