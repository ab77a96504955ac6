package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/moniyo/financequest/internal/quest"
)

// LoadQuestCatalog reads and validates the quest catalog file
func LoadQuestCatalog(path string) (*quest.Catalog, error) {
	catalog, err := quest.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadQuestCatalog, err)
	}
	slog.Info(LogMsgQuestCatalogLoaded, "path", path, "quests", catalog.Len(), "version", catalog.Version())
	return catalog, nil
}
