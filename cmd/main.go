// Package main provides the doccloud command: a word cloud web app and a one-shot renderer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "doccloud",
	Short: "Word clouds from PDF and Word documents",
	Long:  "doccloud extracts the text of an uploaded PDF or DOCX document and draws a word cloud of its most frequent words.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
