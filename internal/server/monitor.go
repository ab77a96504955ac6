package server

import (
	"log/slog"
	"sync"
	"time"
)

type clientCounts struct {
	requests   int
	failedAuth int
}

// ClientMonitor counts requests and failed logins per client over a fixed
// window. Counts reset together when the window rolls over.
type ClientMonitor struct {
	mu          sync.Mutex
	clients     map[string]*clientCounts
	windowStart time.Time
	now         func() time.Time
}

// NewClientMonitor starts an empty counting window
func NewClientMonitor() *ClientMonitor {
	return &ClientMonitor{
		clients:     make(map[string]*clientCounts),
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// counts must be called with mu held
func (m *ClientMonitor) counts(ip string) *clientCounts {
	if now := m.now(); now.Sub(m.windowStart) > activityWindow {
		clear(m.clients)
		m.windowStart = now
	}
	c, ok := m.clients[ip]
	if !ok {
		c = &clientCounts{}
		m.clients[ip] = c
	}
	return c
}

// Allow records a request and reports whether ip is still under the limit
func (m *ClientMonitor) Allow(ip string) bool {
	m.mu.Lock()
	c := m.counts(ip)
	c.requests++
	n := c.requests
	m.mu.Unlock()

	if n <= maxRequestsPerWindow {
		return true
	}
	if (n-maxRequestsPerWindow)%highRateLogEvery == 1 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", n)
	}
	return false
}

// RecordFailedAuth counts a rejected API key and alerts once the client
// crosses the threshold
func (m *ClientMonitor) RecordFailedAuth(ip string) {
	m.mu.Lock()
	c := m.counts(ip)
	c.failedAuth++
	n := c.failedAuth
	m.mu.Unlock()

	if n >= failedAuthAlertCount {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", n)
	}
}
