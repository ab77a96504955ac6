// Command devtool bundles operator tasks for the FinanceQuest service.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	os.Exit(run(defaultRegistry(), os.Args[1:]))
}

func run(r *Registry, args []string) int {
	if len(args) < 1 {
		r.PrintHelp()
		return 1
	}

	cmd, ok := r.Get(args[0])
	if !ok {
		PrintError("Unknown command: %s", args[0])
		r.PrintHelp()
		return 1
	}

	if err := cmd.Run(args[1:]); err != nil {
		PrintError("%s failed: %v", cmd.Name(), err)
		return 1
	}
	return 0
}
