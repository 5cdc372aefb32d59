// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package codeindex turns a source directory into a searchable semantic
// index: walk, filter, chunk, embed, store.
package codeindex

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

// readConcurrency bounds parallel file reads during collection.
const readConcurrency = 8

// sourceFile is one candidate file with its full text. Path is relative to
// the walked directory, slash-separated.
type sourceFile struct {
	path    string
	content string
}

// collectFiles walks dir recursively and loads every file whose extension is
// in cfg.Extensions and whose path clears the exclusion globs. File contents
// are read concurrently; order follows the walk.
func collectFiles(ctx context.Context, dir string, cfg types.IndexConfig) ([]sourceFile, error) {
	extensions := cfg.Extensions
	if len(extensions) == 0 {
		extensions = types.DefaultExtensions
	}
	globs := cfg.ExcludeGlobs
	if len(globs) == 0 {
		globs = types.DefaultExcludeGlobs
	}

	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extSet[ext] = true
	}

	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && matchesAny(globs, d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !extSet[filepath.Ext(p)] || matchesAny(globs, d.Name()) {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	files := make([]sourceFile, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(dir, p)
			if err != nil {
				rel = p
			}
			files[i] = sourceFile{
				path:    filepath.ToSlash(rel),
				content: string(data),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// matchesAny reports whether name matches one of the glob patterns. Patterns
// apply to individual path segments, so ".git" excludes the directory
// anywhere in the tree and "*.pyc" excludes bytecode files by base name.
func matchesAny(globs []string, name string) bool {
	for _, glob := range globs {
		if ok, err := path.Match(glob, name); err == nil && ok {
			return true
		}
		// Patterns written in the "**/x/*" style reduce to their segment.
		if trimmed := strings.TrimSuffix(strings.TrimPrefix(glob, "**/"), "/*"); trimmed != glob {
			if ok, err := path.Match(trimmed, name); err == nil && ok {
				return true
			}
		}
	}
	return false
}
