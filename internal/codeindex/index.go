// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codeindex

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shammeer-s/ResearchRAGAgent/internal/embed"
	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

// NoContext is the code context handed to the synthesizer when no code index
// is available or retrieval returns nothing.
const NoContext = "No code retriever available."

// embedConcurrency bounds parallel embedding calls during a build.
const embedConcurrency = 4

// Retriever serves top-K similarity retrieval over a built code index.
// Read-only; safe for concurrent queries once built.
type Retriever struct {
	embedder embed.Embedder
	store    embed.Store
	topK     int
}

// NewRetriever wraps an embedder and a populated store.
func NewRetriever(embedder embed.Embedder, store embed.Store, topK int) *Retriever {
	if topK <= 0 {
		topK = 5
	}
	return &Retriever{embedder: embedder, store: store, topK: topK}
}

// Retrieve embeds the query and returns the topK most similar chunks. No
// relevance filtering is applied on top of the similarity ranking.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]types.CodeChunk, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	return r.store.Search(ctx, vector, r.topK)
}

// Build walks dir, chunks every matching source file, embeds the chunks into
// the store, and returns a Retriever over it. A directory with zero matching
// files returns (nil, nil): callers treat a nil Retriever as "no code
// context available", not an error. A missing directory is an error.
func Build(ctx context.Context, dir string, embedder embed.Embedder, store embed.Store, cfg types.IndexConfig, logger *zap.Logger) (*Retriever, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading code directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	files, err := collectFiles(ctx, dir, cfg)
	if err != nil {
		return nil, fmt.Errorf("collecting source files: %w", err)
	}
	if len(files) == 0 {
		logger.Info("no matching source files", zap.String("dir", dir))
		return nil, nil
	}

	var chunks []types.CodeChunk
	for _, f := range files {
		for _, c := range splitOverlapping(f.content, cfg.ChunkSize, cfg.ChunkOverlap) {
			chunks = append(chunks, types.CodeChunk{Content: c, SourcePath: f.path})
		}
	}

	logger.Info("chunked source files",
		zap.Int("files", len(files)),
		zap.Int("chunks", len(chunks)))

	vectors := make([][]float32, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			v, err := embedder.Embed(gctx, chunk.Content)
			if err != nil {
				return fmt.Errorf("embedding chunk from %s: %w", chunk.SourcePath, err)
			}
			vectors[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := store.Add(ctx, chunks, vectors); err != nil {
		return nil, fmt.Errorf("storing chunks: %w", err)
	}

	logger.Info("code index built", zap.Int("chunks", len(chunks)))
	return NewRetriever(embedder, store, cfg.TopK), nil
}

// FormatContext renders retrieved chunks into the code context block for the
// synthesis prompt, one file-path header per chunk.
func FormatContext(chunks []types.CodeChunk) string {
	if len(chunks) == 0 {
		return NoContext
	}
	parts := make([]string, len(chunks))
	for i, chunk := range chunks {
		parts[i] = fmt.Sprintf("File: %s\n\n%s", chunk.SourcePath, chunk.Content)
	}
	return strings.Join(parts, "\n---\n")
}
