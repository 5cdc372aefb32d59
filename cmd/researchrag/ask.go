// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/shammeer-s/ResearchRAGAgent/internal/llm"
	"github.com/shammeer-s/ResearchRAGAgent/internal/logger"
	"github.com/shammeer-s/ResearchRAGAgent/internal/pipeline"
	"github.com/shammeer-s/ResearchRAGAgent/internal/qa"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a follow-up question about the most recent report",
	Long: `Ask answers a follow-up question using only the most recent research report
as context. The report is loaded from the output directory written by the
research command. With --interactive, questions are read from stdin in a loop.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		interactive, _ := cmd.Flags().GetBool("interactive")
		outDir, _ := cmd.Flags().GetString("output")
		if outDir == "" {
			outDir = outputConfig().OutputDir
		}
		if len(args) == 0 && !interactive {
			return fmt.Errorf("provide a question or use --interactive")
		}

		outcome, err := loadOutcome(outDir)
		if err != nil {
			return err
		}

		log, err := logger.New(viper.GetString("log.env"), viper.GetString("log.level"))
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer log.Sync()

		client := llm.NewOpenAIClient(aiConfig(), log)
		session := qa.NewSession()
		session.SetReport(outcome.Report, outcome.Sources)

		if len(args) == 1 {
			fmt.Println(session.Ask(cmd.Context(), client, args[0]))
		}
		if interactive {
			runQALoop(cmd, client, session)
		}
		return nil
	},
}

// loadOutcome reads the persisted pipeline outcome from dir.
func loadOutcome(dir string) (pipeline.Outcome, error) {
	var outcome pipeline.Outcome
	data, err := os.ReadFile(filepath.Join(dir, outcomeFile))
	if err != nil {
		if os.IsNotExist(err) {
			return outcome, fmt.Errorf("no report found in %s; run 'researchrag research' first", dir)
		}
		return outcome, fmt.Errorf("reading outcome: %w", err)
	}
	if err := yaml.Unmarshal(data, &outcome); err != nil {
		return outcome, fmt.Errorf("decoding outcome: %w", err)
	}
	return outcome, nil
}

func init() {
	askCmd.Flags().BoolP("interactive", "i", false, "read follow-up questions from stdin in a loop")
	askCmd.Flags().StringP("output", "o", "", "output directory holding the report artifacts")

	rootCmd.AddCommand(askCmd)
}
