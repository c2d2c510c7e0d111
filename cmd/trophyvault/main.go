package main

import (
	"os"

	"github.com/MarinusJvRe/TrophyVault/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
