package main

import (
	"fmt"
	"os"

	"github.com/moniyo/financequest/internal/config"
	"github.com/moniyo/financequest/internal/gamification"
	"github.com/moniyo/financequest/internal/quest"
)

type CheckCatalogCommand struct{}

func (c *CheckCatalogCommand) Name() string {
	return "check-catalog"
}

func (c *CheckCatalogCommand) Description() string {
	return "Validate the quest catalog and preview XP per quest [path]"
}

func (c *CheckCatalogCommand) Run(args []string) error {
	path := os.Getenv("QUEST_CATALOG_PATH")
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		path = config.DefaultQuestCatalogPath
	}

	PrintHeader(fmt.Sprintf("Checking quest catalog (%s)", path))

	catalog, err := quest.Load(path)
	if err != nil {
		return err
	}

	engine := gamification.Default()
	starters := 0
	for _, q := range catalog.All() {
		if q.StarterPack {
			starters++
		}
		PrintInfo("%-28s %-14s %-12s %3d XP", q.ID, q.Category, q.Difficulty, engine.QuestXP(gamification.QuestXPInputFrom(q), nil))
	}

	if badge, ok := engine.Badge(gamification.BadgeStarterPackFinisher); ok && starters < badge.Criterion.Threshold {
		PrintWarning("only %d starter pack quests, starter_pack_finisher is unreachable", starters)
	}
	PrintSuccess("%d quests, catalog version %s", catalog.Len(), catalog.Version())
	return nil
}
