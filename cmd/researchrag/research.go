// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/shammeer-s/ResearchRAGAgent/internal/codeindex"
	"github.com/shammeer-s/ResearchRAGAgent/internal/embed"
	"github.com/shammeer-s/ResearchRAGAgent/internal/llm"
	"github.com/shammeer-s/ResearchRAGAgent/internal/logger"
	"github.com/shammeer-s/ResearchRAGAgent/internal/pipeline"
	"github.com/shammeer-s/ResearchRAGAgent/internal/qa"
	"github.com/shammeer-s/ResearchRAGAgent/internal/synthesis"
	"github.com/shammeer-s/ResearchRAGAgent/internal/websearch"
)

// outcomeFile holds the full pipeline outcome next to the rendered report, so
// the ask subcommand can answer follow-up questions in a later invocation.
const outcomeFile = "outcome.yaml"

var researchCmd = &cobra.Command{
	Use:   "research <query>",
	Short: "Research a topic and produce a reviewed, cited report",
	Long: `Research runs the full agent pipeline for one query: the router picks a
search strategy, the search agent gathers web evidence, the critic filters it,
the synthesis agent writes a cited report (pulling in local code context when
an index exists), and a supervisor reviews the report, triggering at most one
revision.

The rendered report is printed to stdout and written, together with the
pipeline outcome, under the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		interactive, _ := cmd.Flags().GetBool("interactive")
		asJSON, _ := cmd.Flags().GetBool("json")
		noCode, _ := cmd.Flags().GetBool("no-code")
		outDir, _ := cmd.Flags().GetString("output")
		if outDir == "" {
			outDir = outputConfig().OutputDir
		}

		log, err := logger.New(viper.GetString("log.env"), viper.GetString("log.level"))
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer log.Sync()

		client := llm.NewOpenAIClient(aiConfig(), log)
		provider := websearch.NewDuckDuckGo(searchConfig())

		var retriever *codeindex.Retriever
		if !noCode {
			retriever, err = openRetriever(cmd.Context())
			if err != nil {
				return err
			}
		}

		orch := &pipeline.Orchestrator{
			LLM:                  client,
			Provider:             provider,
			Retriever:            retriever,
			SearchCfg:            searchConfig(),
			SynthesisTemperature: aiConfig().SynthesisTemperature,
			Logger:               log,
		}

		outcome, err := orch.Run(cmd.Context(), args[0], os.Stderr)
		if err != nil {
			return err
		}

		rendered := synthesis.Render(outcome.Report, outcome.Sources)

		if asJSON {
			data, err := json.MarshalIndent(outcome, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding outcome: %w", err)
			}
			fmt.Println(string(data))
		} else {
			fmt.Println(rendered)
		}

		if err := writeArtifacts(outDir, rendered, outcome); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", filepath.Join(outDir, "report.md"))

		if interactive {
			session := qa.NewSession()
			session.SetReport(outcome.Report, outcome.Sources)
			runQALoop(cmd, client, session)
		}
		return nil
	},
}

// openRetriever loads the code retriever when an index database exists.
// A missing index is not an error: research proceeds on web evidence alone.
// An unreadable index IS an error, so a corrupt database is never mistaken
// for "not indexed yet".
func openRetriever(ctx context.Context) (*codeindex.Retriever, error) {
	cfg := indexConfig()
	if _, err := os.Stat(embed.IndexPath(cfg.IndexDir)); err != nil {
		return nil, nil
	}

	store, err := embed.NewSQLiteStore(cfg.IndexDir)
	if err != nil {
		return nil, fmt.Errorf("opening code index (re-run 'researchrag index' or use --no-code): %w", err)
	}
	n, err := store.Count(ctx)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("reading code index (re-run 'researchrag index' or use --no-code): %w", err)
	}
	if n == 0 {
		store.Close()
		return nil, nil
	}

	embedder := embed.NewOpenAIEmbedder(embeddingConfig())
	fmt.Fprintf(os.Stderr, "Code index loaded (%d chunks)\n", n)
	return codeindex.NewRetriever(embedder, store, cfg.TopK), nil
}

// writeArtifacts persists the rendered report and the full outcome under dir.
func writeArtifacts(dir, rendered string, outcome pipeline.Outcome) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "report.md"), []byte(rendered+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	data, err := yaml.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("encoding outcome: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, outcomeFile), data, 0o644); err != nil {
		return fmt.Errorf("writing outcome: %w", err)
	}
	return nil
}

// runQALoop reads follow-up questions from stdin until EOF or "exit".
func runQALoop(cmd *cobra.Command, client llm.Client, session *qa.Session) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprintln(os.Stderr, "Ask follow-up questions about the report (\"exit\" to quit).")
	for {
		fmt.Fprint(os.Stderr, "> ")
		if !scanner.Scan() {
			return
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if strings.EqualFold(question, "exit") || strings.EqualFold(question, "quit") {
			return
		}
		fmt.Println(session.Ask(cmd.Context(), client, question))
	}
}

func init() {
	researchCmd.Flags().BoolP("interactive", "i", false, "enter a follow-up question loop after the report")
	researchCmd.Flags().Bool("json", false, "print the full pipeline outcome as JSON instead of the report")
	researchCmd.Flags().Bool("no-code", false, "skip code retrieval even if an index exists")
	researchCmd.Flags().StringP("output", "o", "", "output directory for report artifacts")

	rootCmd.AddCommand(researchCmd)
}
