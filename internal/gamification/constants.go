package gamification

// XP award constants
const (
	// QuizBonusXP is added to quest XP when the quiz score reaches QuizBonusThreshold
	QuizBonusXP = 30

	// QuizBonusThreshold is the inclusive minimum quiz score (0-100) for the bonus
	QuizBonusThreshold = 80

	// SavingsQuestBonusXP is awarded for savings events that originate from a quest
	SavingsQuestBonusXP = 20

	// SavingsVerifiedBonusXP is awarded for verified savings events
	SavingsVerifiedBonusXP = 30

	// MonthlySavingsFloor is the minimum monthly amount that earns savings XP
	MonthlySavingsFloor = 5

	// YearlySavingsFloor is the minimum yearly amount that earns savings XP
	YearlySavingsFloor = 50
)

// Anti-cheat ceilings, enforced per calendar day by the dailycap package
const (
	// DailyXPCap is the maximum XP a user can earn per day
	DailyXPCap = 250

	// MaxImpactEventsPerDay is the number of savings events per day that earn XP
	MaxImpactEventsPerDay = 3
)

// Quest ids and markers referenced by badge rules
const (
	QuestIDCutSubscription = "cut-subscription"
	QuestIDAdjustTaxRate   = "adjust-tax-rate"

	quickWinTitleMarker = "quick win"
)

// Badge identifiers
const (
	BadgeFirstQuest          = "first_quest"
	BadgeStarterPackFinisher = "starter_pack_finisher"
	BadgeQuickWinDone        = "quickwin_done"
	BadgeImpact500           = "impact_500"
	BadgeImpact1K            = "impact_1k"
	BadgeConsistency7        = "consistency_7"
	BadgeCategorySpecialist  = "category_specialist"
	BadgeTaxOptimizer        = "tax_optimizer"
	BadgeLevel5              = "level_5"
	BadgeLevel10             = "level_10"
)

// DefaultLanguage is used when no requested locale matches the catalog
const DefaultLanguage = "en"

// defaultLevelThresholds is the cumulative XP floor of each level, index 0 = level 1
var defaultLevelThresholds = []int64{0, 300, 700, 1200, 1800, 2500, 3300, 4200, 5200, 6300}

// defaultMilestones are the annualized savings checkpoints in ascending order
var defaultMilestones = []int{100, 250, 500, 1000, 1500, 2500, 5000}

// difficultyXP is the fallback quest XP when the quest carries no explicit value
var difficultyXP = map[string]int{
	"beginner":     75,
	"intermediate": 120,
	"advanced":     180,
}
