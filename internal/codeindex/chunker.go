// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codeindex

import "strings"

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 100
)

// splitOverlapping splits file content into overlapping chunks of roughly
// chunkSize bytes, carrying about overlap bytes from the end of each chunk
// into the next. Splitting is line-aware: a chunk boundary falls on a line
// boundary unless a single line exceeds chunkSize, in which case the line is
// hard-split. No semantic boundary detection beyond that.
func splitOverlapping(content string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if overlap < 0 {
		overlap = defaultChunkOverlap
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	if strings.TrimSpace(content) == "" {
		return nil
	}

	// Units are lines with their newlines kept, oversized lines hard-split.
	var units []string
	for _, line := range strings.SplitAfter(content, "\n") {
		for len(line) > chunkSize {
			units = append(units, line[:chunkSize])
			line = line[chunkSize:]
		}
		if line != "" {
			units = append(units, line)
		}
	}

	var (
		chunks    []string
		window    []string
		windowLen int
		fresh     int // units appended since the last emitted chunk
	)
	for _, u := range units {
		window = append(window, u)
		windowLen += len(u)
		fresh++
		if windowLen < chunkSize {
			continue
		}

		emit(&chunks, window)

		// Seed the next window with the trailing units that fit the overlap.
		var tailLen, keep int
		for i := len(window) - 1; i >= 0; i-- {
			if tailLen+len(window[i]) > overlap {
				break
			}
			tailLen += len(window[i])
			keep++
		}
		window = append([]string(nil), window[len(window)-keep:]...)
		windowLen = tailLen
		fresh = 0
	}

	// The final partial window only counts if it has content beyond the
	// overlap seed.
	if fresh > 0 {
		emit(&chunks, window)
	}
	return chunks
}

func emit(chunks *[]string, window []string) {
	chunk := strings.Join(window, "")
	if strings.TrimSpace(chunk) != "" {
		*chunks = append(*chunks, chunk)
	}
}
