// Package main is the frenchvocabs entry point. The same binary serves
// the web UI and, re-executed by the job supervisor, runs the word and
// sentence generators.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// A missing .env file is fine; explicit environment wins anyway.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "frenchvocabs",
		Short: "French vocabulary and sentence generator",
		Long: `frenchvocabs drives a local Ollama endpoint to build French
learning material: level-graded vocabulary lists and DOCX documents with
meanings and example sentences.

Commands:
  serve      Run the web control surface
  words      Generate vocabulary batches
  sentences  Watch for word lists and build sentence documents`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newWordsCommand())
	rootCmd.AddCommand(newSentencesCommand())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "frenchvocabs %s\n", version)
		},
	}
}
