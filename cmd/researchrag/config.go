// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

func setDefaults() {
	viper.SetDefault("ai.model", "mistral")
	viper.SetDefault("ai.base_url", "http://localhost:11434/v1")
	viper.SetDefault("ai.synthesis_temperature", 0.1)

	viper.SetDefault("search.timeout", 30*time.Second)
	viper.SetDefault("search.user_agent", "researchrag/0.1")
	viper.SetDefault("search.max_results", 5)
	viper.SetDefault("search.academic_sites", types.DefaultAcademicSites)

	viper.SetDefault("embedding.model", "nomic-embed-text")
	viper.SetDefault("embedding.base_url", "http://localhost:11434/v1")

	viper.SetDefault("index.extensions", types.DefaultExtensions)
	viper.SetDefault("index.exclude_globs", types.DefaultExcludeGlobs)
	viper.SetDefault("index.chunk_size", 1000)
	viper.SetDefault("index.chunk_overlap", 100)
	viper.SetDefault("index.top_k", 5)
	viper.SetDefault("index.index_dir", "index")

	viper.SetDefault("output.output_dir", "output/reports")

	viper.SetDefault("log.env", "local")
	viper.SetDefault("log.level", "")
}

func aiConfig() types.AIConfig {
	return types.AIConfig{
		Model:                viper.GetString("ai.model"),
		BaseURL:              viper.GetString("ai.base_url"),
		APIKey:               secretDefault("llm-api-key", viper.GetString("ai.api_key")),
		SynthesisTemperature: float32(viper.GetFloat64("ai.synthesis_temperature")),
	}
}

func searchConfig() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("search.timeout"),
			UserAgent: viper.GetString("search.user_agent"),
		},
		MaxResults:    viper.GetInt("search.max_results"),
		AcademicSites: viper.GetStringSlice("search.academic_sites"),
	}
}

func embeddingConfig() types.EmbeddingConfig {
	return types.EmbeddingConfig{
		Model:   viper.GetString("embedding.model"),
		BaseURL: viper.GetString("embedding.base_url"),
		APIKey:  secretDefault("embedding-api-key", viper.GetString("embedding.api_key")),
	}
}

func indexConfig() types.IndexConfig {
	return types.IndexConfig{
		Extensions:   viper.GetStringSlice("index.extensions"),
		ExcludeGlobs: viper.GetStringSlice("index.exclude_globs"),
		ChunkSize:    viper.GetInt("index.chunk_size"),
		ChunkOverlap: viper.GetInt("index.chunk_overlap"),
		TopK:         viper.GetInt("index.top_k"),
		IndexDir:     viper.GetString("index.index_dir"),
	}
}

func outputConfig() types.OutputConfig {
	return types.OutputConfig{
		OutputDir: viper.GetString("output.output_dir"),
	}
}
