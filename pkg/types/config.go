// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "researchrag/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds settings for stages that call the language model API.
type AIConfig struct {
	// Model is the chat model identifier (e.g. "mistral", "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// BaseURL is the OpenAI-compatible endpoint base URL. Empty means the
	// OpenAI default; an Ollama deployment uses "http://localhost:11434/v1".
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// APIKey is the authentication key for the API. Local endpoints such as
	// Ollama accept any non-empty value.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// SynthesisTemperature is the sampling temperature for report synthesis
	// (default 0.1). Routing, review, and follow-up answering always run at 0.
	SynthesisTemperature float32 `json:"synthesis_temperature" yaml:"synthesis_temperature"`
}

// SearchConfig holds settings for the evidence-gathering stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of web results to gather (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// AcademicSites lists site filters appended to academic queries as an
	// OR-disjunction (e.g. "site:arxiv.org").
	AcademicSites []string `json:"academic_sites" yaml:"academic_sites"`
}

// EmbeddingConfig holds settings for the embedding API used by the code index.
type EmbeddingConfig struct {
	// Model is the embedding model identifier (e.g. "nomic-embed-text").
	Model string `json:"model" yaml:"model"`

	// BaseURL is the OpenAI-compatible endpoint base URL.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// IndexConfig holds settings for code index construction and retrieval.
type IndexConfig struct {
	// Extensions lists the source-file extensions to index (e.g. ".py", ".go").
	Extensions []string `json:"extensions" yaml:"extensions"`

	// ExcludeGlobs lists glob patterns matched against every path segment;
	// matching files and directories are skipped (e.g. ".git", "*.pyc").
	ExcludeGlobs []string `json:"exclude_globs" yaml:"exclude_globs"`

	// ChunkSize is the target chunk size in bytes (default 1000).
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`

	// ChunkOverlap is the overlap between consecutive chunks in bytes
	// (default 100).
	ChunkOverlap int `json:"chunk_overlap" yaml:"chunk_overlap"`

	// TopK is the number of chunks returned per retrieval (default 5).
	TopK int `json:"top_k" yaml:"top_k"`

	// IndexDir is the directory holding the index database (default "index").
	IndexDir string `json:"index_dir" yaml:"index_dir"`
}

// OutputConfig holds settings for pipeline artifacts.
type OutputConfig struct {
	// OutputDir is the directory for the rendered report and source map
	// (default "output/reports").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// DefaultExtensions are the source-file extensions indexed when none are
// configured.
var DefaultExtensions = []string{".py", ".go", ".js", ".ts", ".java", ".rs", ".c", ".h", ".cpp", ".rb"}

// DefaultExcludeGlobs are the exclusion patterns applied when none are
// configured: version control, virtual environments, bytecode caches,
// dependency directories, IDE and OS metadata.
var DefaultExcludeGlobs = []string{
	".git",
	".venv",
	"venv",
	".idea",
	".vscode",
	"__pycache__",
	"node_modules",
	"vendor",
	"*.pyc",
	".DS_Store",
}

// DefaultAcademicSites are the trusted academic domain filters used for
// academic_research queries when none are configured.
var DefaultAcademicSites = []string{
	"site:arxiv.org",
	"site:jmlr.org",
	"site:dl.acm.org",
	"site:semanticscholar.org",
	"site:neurips.cc",
}
