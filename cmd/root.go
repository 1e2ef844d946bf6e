// Package cmd defines the command-line interface for the chatbot service.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chatbot",
	Short: "Document chatbot backend",
	Long: `A retrieval-augmented chatbot backend.

PDF documents in the data directory are chunked, embedded and indexed
at startup. The HTTP API answers questions grounded in those documents
using a hosted Hugging Face model, with per-chat conversation history
kept in memory.

Running with no arguments starts the HTTP server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
