// Package chunker splits policy text into overlapping chunks for
// indexing. Splitting prefers paragraph boundaries, then sentence
// boundaries, and falls back to a raw character cut only when neither
// fits inside the chunk window.
package chunker

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
)

// DefaultChunkSize is the default maximum chunk length in characters.
const DefaultChunkSize = 500

// DefaultOverlap is the default number of characters consecutive
// chunks share.
const DefaultOverlap = 50

// sentenceEnd matches a sentence terminator followed by whitespace.
var sentenceEnd = regexp.MustCompile(`[.!?]\s`)

// Splitter splits document content into bounded overlapping chunks.
type Splitter struct {
	chunkSize int
	overlap   int
}

// New creates a splitter. ChunkSize and Overlap must be positive with
// Overlap < ChunkSize; anything else is a configuration error.
func New(cfg domain.ChunkingSettings) (*Splitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: chunk_size=%d overlap=%d", err, cfg.ChunkSize, cfg.Overlap)
	}
	return &Splitter{chunkSize: cfg.ChunkSize, overlap: cfg.Overlap}, nil
}

// Split chunks the document text. Boundaries are deterministic for a
// given input and configuration. The chunks jointly cover the full
// text, each consecutive pair overlaps by exactly the configured
// overlap, and no chunk exceeds the chunk size; only the final chunk
// may be shorter.
func (s *Splitter) Split(doc domain.Document) ([]domain.Chunk, error) {
	text := doc.Content
	if len(text) == 0 {
		return nil, nil
	}

	var chunks []domain.Chunk
	start := 0
	position := 0

	for {
		limit := start + s.chunkSize
		if limit >= len(text) {
			chunks = append(chunks, s.newChunk(doc, position, start, len(text)))
			break
		}

		end := s.cutPoint(text, start, limit)
		chunks = append(chunks, s.newChunk(doc, position, start, end))

		// The next window begins exactly overlap characters before
		// this cut, which is what makes the pairwise overlap exact.
		// If that lands mid-rune, back up to the rune start; the
		// overlap widens by at most three bytes.
		next := end - s.overlap
		for next > start && !utf8.RuneStart(text[next]) {
			next--
		}
		if next <= start {
			// Overlap is narrower than one rune here; drop it for
			// this pair rather than stall.
			next = end
		}
		start = next
		position++
	}

	return chunks, nil
}

// cutPoint picks the chunk end inside (start+overlap, limit]: the last
// paragraph break if one fits, else the last sentence end, else the raw
// window limit. The lower bound keeps every cut ahead of the next
// window's start so splitting always makes progress.
func (s *Splitter) cutPoint(text string, start, limit int) int {
	minEnd := start + s.overlap + 1

	if p := lastParagraphBreak(text[start:limit]); p >= 0 {
		if end := start + p; end >= minEnd {
			return end
		}
	}

	window := text[start:limit]
	if matches := sentenceEnd.FindAllStringIndex(window, -1); len(matches) > 0 {
		for i := len(matches) - 1; i >= 0; i-- {
			// Cut just after the terminator; the whitespace opens the
			// next chunk.
			if end := start + matches[i][0] + 1; end >= minEnd {
				return end
			}
		}
	}

	// Raw cut. The window limit counts bytes, so it can land inside a
	// multi-byte rune; never split one.
	end := limit
	for end > start && !utf8.RuneStart(text[end]) {
		end--
	}
	if end < minEnd {
		for end = limit; end < len(text) && !utf8.RuneStart(text[end]); end++ {
		}
	}
	return end
}

// lastParagraphBreak returns the offset just past the last blank-line
// separator in window, or -1 if there is none.
func lastParagraphBreak(window string) int {
	for i := len(window) - 2; i >= 0; i-- {
		if window[i] == '\n' && window[i+1] == '\n' {
			return i + 2
		}
	}
	return -1
}

func (s *Splitter) newChunk(doc domain.Document, position, start, end int) domain.Chunk {
	return domain.Chunk{
		ID:         doc.ID + ":" + strconv.Itoa(position),
		DocumentID: doc.ID,
		Content:    doc.Content[start:end],
		Position:   position,
		CharStart:  start,
		CharEnd:    end,
	}
}
