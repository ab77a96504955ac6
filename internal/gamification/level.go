package gamification

// LevelData describes where a cumulative XP total sits in the level table
type LevelData struct {
	Level            int     `json:"level"`
	CurrentLevelXP   int64   `json:"current_level_xp"`
	NextLevelXP      *int64  `json:"next_level_xp"`
	XPInCurrentLevel int64   `json:"xp_in_current_level"`
	XPNeededForNext  int64   `json:"xp_needed_for_next"`
	Progress         float64 `json:"progress"`
	// MaxLevel is set when no further level is tabulated. Progress is 100 in
	// that case and must be read as capped, not as an imminent level-up.
	MaxLevel bool `json:"max_level"`
}

// ComputeLevel determines the level for a cumulative XP total.
// Reaching a threshold exactly grants that level. Negative totals behave as 0.
func (e *Engine) ComputeLevel(xpTotal int64) LevelData {
	if xpTotal < 0 {
		xpTotal = 0
	}

	level := 1
	for i := len(e.levels) - 1; i >= 0; i-- {
		if xpTotal >= e.levels[i] {
			level = i + 1
			break
		}
	}

	data := LevelData{
		Level:            level,
		CurrentLevelXP:   e.levels[level-1],
		XPInCurrentLevel: xpTotal - e.levels[level-1],
	}

	if level >= len(e.levels) {
		data.Progress = 100
		data.MaxLevel = true
		return data
	}

	next := e.levels[level]
	data.NextLevelXP = &next
	data.XPNeededForNext = next - xpTotal
	data.Progress = float64(data.XPInCurrentLevel) / float64(next-data.CurrentLevelXP) * 100
	return data
}

// Level is a shorthand for ComputeLevel(xpTotal).Level
func (e *Engine) Level(xpTotal int64) int {
	return e.ComputeLevel(xpTotal).Level
}
