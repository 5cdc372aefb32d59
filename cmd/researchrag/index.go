// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shammeer-s/ResearchRAGAgent/internal/codeindex"
	"github.com/shammeer-s/ResearchRAGAgent/internal/embed"
	"github.com/shammeer-s/ResearchRAGAgent/internal/logger"
)

var indexCmd = &cobra.Command{
	Use:   "index <dir>",
	Short: "Embed a local codebase for retrieval during research",
	Long: `Index walks a source directory, splits matching files into overlapping
chunks, embeds each chunk, and stores the vectors in a local SQLite database.
Subsequent research queries retrieve the most similar chunks as code context.

Re-running index replaces the previous index.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := logger.New(viper.GetString("log.env"), viper.GetString("log.level"))
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer log.Sync()

		cfg := indexConfig()
		store, err := embed.NewSQLiteStore(cfg.IndexDir)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Reset(cmd.Context()); err != nil {
			return err
		}

		embedder := embed.NewOpenAIEmbedder(embeddingConfig())

		fmt.Fprintf(os.Stderr, "Indexing %s...\n", args[0])
		retriever, err := codeindex.Build(cmd.Context(), args[0], embedder, store, cfg, log)
		if err != nil {
			return err
		}
		if retriever == nil {
			fmt.Fprintln(os.Stderr, "No matching source files found; nothing indexed.")
			return nil
		}

		n, err := store.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Indexed %d chunks into %s\n", n, embed.IndexPath(cfg.IndexDir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
