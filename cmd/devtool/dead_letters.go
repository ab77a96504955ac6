package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/moniyo/financequest/internal/config"
	"github.com/moniyo/financequest/internal/event"
)

type DeadLettersCommand struct{}

func (c *DeadLettersCommand) Name() string {
	return "dead-letters"
}

func (c *DeadLettersCommand) Description() string {
	return "Summarize undelivered events in the dead-letter file [path]"
}

func (c *DeadLettersCommand) Run(args []string) error {
	path := os.Getenv("DEAD_LETTER_PATH")
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		path = config.DefaultDeadLetterPath
	}

	PrintHeader(fmt.Sprintf("Dead letters (%s)", path))

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		PrintSuccess("No dead-letter file, nothing was dropped")
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := event.ReadDeadLetters(f)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		PrintSuccess("Dead-letter file is empty")
		return nil
	}

	for _, s := range event.SummarizeDeadLetters(entries) {
		PrintWarning("%s: %d event(s) between %s and %s",
			s.Type, s.Count, s.First.Format(time.RFC3339), s.Last.Format(time.RFC3339))
		if s.LastError != "" {
			PrintInfo("  last error: %s", s.LastError)
		}
	}
	PrintInfo("%d undelivered event(s) in total", len(entries))
	return nil
}
