package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommand struct {
	name string
	err  error
	args []string
}

func (f *fakeCommand) Name() string        { return f.name }
func (f *fakeCommand) Description() string { return "fake " + f.name }
func (f *fakeCommand) Run(args []string) error {
	f.args = args
	return f.err
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

func TestRegistry_ListSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeCommand{name: "zeta"})
	r.Register(&fakeCommand{name: "alpha"})

	names := []string{}
	for _, cmd := range r.List() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{"alpha", "zeta"}, names)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry()
	first := &fakeCommand{name: "dup"}
	second := &fakeCommand{name: "dup"}
	r.Register(first)
	r.Register(second)

	require.Len(t, r.List(), 1)
	got, ok := r.Get(" DUP ")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestRegistry_PrintHelpAligns(t *testing.T) {
	buf := captureOutput(t)
	r := NewRegistry()
	r.Register(&fakeCommand{name: "a"})
	r.Register(&fakeCommand{name: "longer"})
	r.PrintHelp()

	assert.Contains(t, buf.String(), "  a       fake a\n")
	assert.Contains(t, buf.String(), "  longer  fake longer\n")
}

func TestRun(t *testing.T) {
	buf := captureOutput(t)
	ok := &fakeCommand{name: "ok"}
	failing := &fakeCommand{name: "broken", err: errors.New("boom")}
	r := NewRegistry()
	r.Register(ok)
	r.Register(failing)

	assert.Equal(t, 0, run(r, []string{"ok", "a", "b"}))
	assert.Equal(t, []string{"a", "b"}, ok.args)

	assert.Equal(t, 1, run(r, []string{"broken"}))
	assert.Contains(t, buf.String(), "broken failed: boom")

	assert.Equal(t, 1, run(r, []string{"missing"}))
	assert.Contains(t, buf.String(), "Unknown command: missing")

	assert.Equal(t, 1, run(r, nil))
	assert.Contains(t, buf.String(), "Usage: devtool")
}

func TestDefaultRegistry(t *testing.T) {
	r := defaultRegistry()
	for _, name := range []string{"migrate", "wait-for-db", "health-check", "check-config", "check-catalog", "dead-letters"} {
		_, ok := r.Get(name)
		assert.True(t, ok, name)
	}
}

func TestMigrateCommand_RejectsUnknownSubcommand(t *testing.T) {
	cmd := &MigrateCommand{}
	assert.Error(t, cmd.Run(nil))
	assert.ErrorContains(t, cmd.Run([]string{"sideways"}), "unknown migrate subcommand")
}

func TestHealthCheckCommand(t *testing.T) {
	captureOutput(t)

	t.Run("healthy", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		}))
		defer srv.Close()

		assert.NoError(t, (&HealthCheckCommand{client: srv.Client()}).Run([]string{srv.URL + "/"}))
	})

	t.Run("not ready", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/readyz" {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"unavailable","message":"database connection failed"}`))
				return
			}
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		}))
		defer srv.Close()

		err := (&HealthCheckCommand{client: srv.Client()}).Run([]string{srv.URL})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
		assert.Contains(t, err.Error(), "database connection failed")
	})
}

func TestCheckCatalogCommand(t *testing.T) {
	buf := captureOutput(t)
	shipped := filepath.Join("..", "..", "configs", "quests", "catalog.json")

	require.NoError(t, (&CheckCatalogCommand{}).Run([]string{shipped}))
	assert.Contains(t, buf.String(), "cut-subscription")
	assert.NotContains(t, buf.String(), "unreachable")

	missing := filepath.Join(t.TempDir(), "missing.json")
	assert.Error(t, (&CheckCatalogCommand{}).Run([]string{missing}))
}

func TestCheckCatalogCommand_FewStarterQuests(t *testing.T) {
	buf := captureOutput(t)
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"t","quests":[{"id":"q1","title":"Q","category":"budgeting","starterPack":true}]}`), 0o600))

	require.NoError(t, (&CheckCatalogCommand{}).Run([]string{path}))
	assert.Contains(t, buf.String(), "starter_pack_finisher is unreachable")
}

func TestDeadLettersCommand(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		buf := captureOutput(t)
		require.NoError(t, (&DeadLettersCommand{}).Run([]string{filepath.Join(dir, "none.jsonl")}))
		assert.Contains(t, buf.String(), "nothing was dropped")
	})

	t.Run("summary", func(t *testing.T) {
		buf := captureOutput(t)
		path := filepath.Join(dir, "dl.jsonl")
		lines := `{"timestamp":"2026-03-01T00:00:00Z","event":{"type":"level_up"},"attempts":5,"last_error":"sink down"}
{"timestamp":"2026-03-02T00:00:00Z","event":{"type":"level_up"},"attempts":5,"last_error":"sink down"}
`
		require.NoError(t, os.WriteFile(path, []byte(lines), 0o600))

		require.NoError(t, (&DeadLettersCommand{}).Run([]string{path}))
		assert.Contains(t, buf.String(), "level_up: 2 event(s)")
		assert.Contains(t, buf.String(), "last error: sink down")
	})

	t.Run("corrupt file", func(t *testing.T) {
		captureOutput(t)
		path := filepath.Join(dir, "bad.jsonl")
		require.NoError(t, os.WriteFile(path, []byte("{oops\n"), 0o600))
		assert.Error(t, (&DeadLettersCommand{}).Run([]string{path}))
	})
}
