package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	healthCheckTimeout = 5 * time.Second
	slowResponse       = time.Second
)

type HealthCheckCommand struct {
	client *http.Client
}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check liveness and readiness of a running server [base-url]"
}

func (c *HealthCheckCommand) Run(args []string) error {
	base := os.Getenv("APP_URL")
	if len(args) > 0 {
		base = args[0]
	}
	if base == "" {
		base = defaultAppURL
	}
	base = strings.TrimRight(base, "/")

	client := c.client
	if client == nil {
		client = &http.Client{Timeout: healthCheckTimeout}
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", base))

	for _, path := range []string{"/healthz", "/readyz"} {
		start := time.Now()
		status, err := probe(client, base+path)
		duration := time.Since(start)
		if err != nil {
			PrintError("%s: %v", path, err)
			return err
		}

		if duration > slowResponse {
			PrintWarning("%s: %s (slow response time %v)", path, status, duration)
		} else {
			PrintSuccess("%s: %s (%v)", path, status, duration)
		}
	}
	return nil
}

func probe(client *http.Client, url string) (string, error) {
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode != http.StatusOK {
		if body.Message != "" {
			return "", fmt.Errorf("status code %d: %s", resp.StatusCode, body.Message)
		}
		return "", fmt.Errorf("status code %d", resp.StatusCode)
	}
	return body.Status, nil
}
