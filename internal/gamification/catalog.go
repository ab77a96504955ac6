package gamification

// BadgeDefinition is a static badge catalog entry
type BadgeDefinition struct {
	ID           string            `json:"id"`
	Names        map[string]string `json:"names"`
	Descriptions map[string]string `json:"descriptions"`
	Icon         string            `json:"icon"`
	Color        string            `json:"color"`
	Criterion    Criterion         `json:"criterion"`
}

// DefaultBadges returns the production badge catalog in evaluation order
func DefaultBadges() []BadgeDefinition {
	return []BadgeDefinition{
		{
			ID:           BadgeFirstQuest,
			Names:        map[string]string{"en": "First Step", "fr": "Premier pas"},
			Descriptions: map[string]string{"en": "You completed your first quest.", "fr": "Tu as terminé ta première quête."},
			Icon:         "🎯",
			Color:        "#4F46E5",
			Criterion:    Criterion{Kind: CriterionCompletedQuests, Threshold: 1},
		},
		{
			ID:           BadgeStarterPackFinisher,
			Names:        map[string]string{"en": "Starter Pack Finisher", "fr": "Pack de démarrage terminé"},
			Descriptions: map[string]string{"en": "You finished three starter quests.", "fr": "Tu as terminé trois quêtes de démarrage."},
			Icon:         "🚀",
			Color:        "#0EA5E9",
			Criterion:    Criterion{Kind: CriterionStarterQuests, Threshold: 3},
		},
		{
			ID:           BadgeQuickWinDone,
			Names:        map[string]string{"en": "Quick Win", "fr": "Victoire rapide"},
			Descriptions: map[string]string{"en": "You banked your first quick win.", "fr": "Tu as décroché ta première victoire rapide."},
			Icon:         "⚡",
			Color:        "#F59E0B",
			Criterion:    Criterion{Kind: CriterionQuickWin},
		},
		{
			ID:           BadgeImpact500,
			Names:        map[string]string{"en": "Impact 500", "fr": "Impact 500"},
			Descriptions: map[string]string{"en": "Your savings reach 500 a year.", "fr": "Tes économies atteignent 500 par an."},
			Icon:         "💶",
			Color:        "#10B981",
			Criterion:    Criterion{Kind: CriterionAnnualImpact, Threshold: 500},
		},
		{
			ID:           BadgeImpact1K,
			Names:        map[string]string{"en": "Impact 1K", "fr": "Impact 1K"},
			Descriptions: map[string]string{"en": "Your savings reach 1,000 a year.", "fr": "Tes économies atteignent 1 000 par an."},
			Icon:         "💰",
			Color:        "#059669",
			Criterion:    Criterion{Kind: CriterionAnnualImpact, Threshold: 1000},
		},
		{
			ID:           BadgeConsistency7,
			Names:        map[string]string{"en": "Seven Day Streak", "fr": "Série de sept jours"},
			Descriptions: map[string]string{"en": "You stayed active for a full week.", "fr": "Tu es resté actif une semaine entière."},
			Icon:         "🔥",
			Color:        "#EF4444",
			Criterion:    Criterion{Kind: CriterionStreak, Threshold: 7},
		},
		{
			ID:           BadgeCategorySpecialist,
			Names:        map[string]string{"en": "Category Specialist", "fr": "Spécialiste"},
			Descriptions: map[string]string{"en": "Three savings in the same category.", "fr": "Trois économies dans la même catégorie."},
			Icon:         "🧭",
			Color:        "#8B5CF6",
			Criterion:    Criterion{Kind: CriterionCategoryEvents, Threshold: 3},
		},
		{
			ID:           BadgeTaxOptimizer,
			Names:        map[string]string{"en": "Tax Optimizer", "fr": "Optimiseur fiscal"},
			Descriptions: map[string]string{"en": "You adjusted your tax rate and it paid off.", "fr": "Tu as ajusté ton taux d'imposition et ça a payé."},
			Icon:         "🧾",
			Color:        "#64748B",
			Criterion:    Criterion{Kind: CriterionQuestAndImpact, QuestID: QuestIDAdjustTaxRate, Threshold: 100},
		},
		{
			ID:           BadgeLevel5,
			Names:        map[string]string{"en": "Level 5", "fr": "Niveau 5"},
			Descriptions: map[string]string{"en": "You reached level 5.", "fr": "Tu as atteint le niveau 5."},
			Icon:         "⭐",
			Color:        "#EAB308",
			Criterion:    Criterion{Kind: CriterionLevel, Threshold: 5},
		},
		{
			ID:           BadgeLevel10,
			Names:        map[string]string{"en": "Level 10", "fr": "Niveau 10"},
			Descriptions: map[string]string{"en": "You reached level 10.", "fr": "Tu as atteint le niveau 10."},
			Icon:         "🏆",
			Color:        "#CA8A04",
			Criterion:    Criterion{Kind: CriterionLevel, Threshold: 10},
		},
	}
}
