// Package main is the admin CLI: migrations, demo data and operator reports.
package main

import (
	"os"

	"tutorcenter/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
