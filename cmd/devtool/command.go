package main

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"
)

const (
	defaultAppURL = "http://localhost:8080"
	appName       = "financequest"
)

// Command is one devtool subcommand
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry resolves subcommands by name
type Registry struct {
	byName map[string]Command
	names  []string
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Command)}
}

// Register adds cmd, replacing any command already registered under its name
func (r *Registry) Register(cmd Command) {
	name := cmd.Name()
	if _, exists := r.byName[name]; !exists {
		r.names = append(r.names, name)
		slices.Sort(r.names)
	}
	r.byName[name] = cmd
}

func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return cmd, ok
}

// List returns the commands in name order
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.names))
	for _, name := range r.names {
		cmds = append(cmds, r.byName[name])
	}
	return cmds
}

func (r *Registry) PrintHelp() {
	fmt.Fprintf(out, "Usage: devtool <command> [args...]\n\n%s operator commands:\n", appName)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, cmd := range r.List() {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Name(), cmd.Description())
	}
	_ = tw.Flush()
}

func defaultRegistry() *Registry {
	r := NewRegistry()
	for _, cmd := range []Command{
		&MigrateCommand{},
		&WaitForDBCommand{},
		&HealthCheckCommand{},
		&CheckConfigCommand{},
		&CheckCatalogCommand{},
		&DeadLettersCommand{},
	} {
		r.Register(cmd)
	}
	return r
}
