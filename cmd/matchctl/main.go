package main

import (
	"fmt"
	"os"

	"github.com/imadgeboyega/kiekky-matching/cmd/matchctl/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "matchctl",
		Short: "Offline tool for the Kiekky matching engine",
		Long:  "Score, analyze and build taste profiles from YAML or JSON fixture files",
	}

	rootCmd.AddCommand(commands.NewScoreCmd())
	rootCmd.AddCommand(commands.NewAnalyzeCmd())
	rootCmd.AddCommand(commands.NewTasteCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
