package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/moniyo/financequest/internal/config"
)

const (
	waitForDBMaxRetries    = 30
	waitForDBRetryInterval = 2 * time.Second
	waitForDBPingTimeout   = 3 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	PrintHeader("Waiting for database...")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	connString := cfg.GetDBConnString()

	var lastErr error
	for i := 0; i < waitForDBMaxRetries; i++ {
		if lastErr = pingOnce(connString); lastErr == nil {
			PrintSuccess("Database is ready")
			return nil
		}
		PrintInfo("Database not ready (%d/%d): %v", i+1, waitForDBMaxRetries, lastErr)
		time.Sleep(waitForDBRetryInterval)
	}

	return fmt.Errorf("database failed to become ready after %d attempts: %w", waitForDBMaxRetries, lastErr)
}

func pingOnce(connString string) error {
	ctx, cancel := context.WithTimeout(context.Background(), waitForDBPingTimeout)
	defer cancel()

	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)
	return conn.Ping(ctx)
}
