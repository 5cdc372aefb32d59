// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the researchrag CLI, a multi-agent
// research assistant: it classifies a query, gathers web evidence, filters
// it, optionally pulls context from a local code index, and synthesizes a
// cited report with a quality-review loop.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shammeer-s/ResearchRAGAgent/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if non-empty, else the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the researchrag CLI.
var rootCmd = &cobra.Command{
	Use:   "researchrag",
	Short: "Multi-agent research assistant with local code RAG",
	Long: `researchrag researches a topic with a team of specialized agents: a router
classifies the query, a search agent gathers web evidence, a critic filters
it for relevance, a synthesis agent writes a cited report, and a supervisor
reviews the result, triggering at most one revision.

Run "researchrag index <dir>" first to embed a local codebase; subsequent
research queries then pull matching code snippets into the report context.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./researchrag.yaml or ~/.config/researchrag/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("researchrag")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "researchrag"))
		}
	}

	viper.SetEnvPrefix("RESEARCHRAG")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
