package services

import (
	"errors"
	"strings"
	"time"

	"github.com/codyseavey/dataset-ingest/internal/models"
)

const (
	// MaxTranslatedLen caps translated_text regardless of configuration.
	MaxTranslatedLen = 2000

	// unknownModel is the sentinel used in dedup keys when no model is given.
	unknownModel = "unknown"
)

// ErrInvalidSourceText is returned when source_text is missing or
// whitespace-only. Surfaced to clients as 400 {"error":"Invalid source_text"}.
var ErrInvalidSourceText = errors.New("invalid source_text")

// Normalizer validates raw records and produces canonical entries.
// It is pure: no I/O, no shared state.
type Normalizer struct {
	maxSourceLen int
}

func NewNormalizer(maxSourceLen int) *Normalizer {
	if maxSourceLen <= 0 {
		maxSourceLen = 1000
	}
	return &Normalizer{maxSourceLen: maxSourceLen}
}

// Normalize canonicalizes a record: source_text is trimmed and truncated to
// the configured rune length, translated_text is truncated to MaxTranslatedLen,
// and a missing timestamp defaults to the current UTC time in RFC 3339.
func (n *Normalizer) Normalize(raw models.Record) (models.Entry, error) {
	source := strings.TrimSpace(raw.SourceText)
	if source == "" {
		return models.Entry{}, ErrInvalidSourceText
	}
	source = truncateRunes(source, n.maxSourceLen)

	ts := raw.Timestamp
	if ts == "" {
		ts = time.Now().UTC().Format(time.RFC3339)
	}

	return models.Entry{
		SourceText:     source,
		TranslatedText: truncateRunes(raw.TranslatedText, MaxTranslatedLen),
		Timestamp:      ts,
		Language:       raw.Language,
		Model:          raw.Model,
	}, nil
}

// DedupKey derives the duplicate-detection key for an entry: the model
// (or "unknown") joined with the already-trimmed, truncated source text.
// Records sharing a key within the cache window are duplicates regardless
// of their other fields.
func DedupKey(entry models.Entry) string {
	model := entry.Model
	if model == "" {
		model = unknownModel
	}
	return model + ":" + entry.SourceText
}

// truncateRunes shortens s to at most n runes. Truncation is rune-accurate
// so multi-byte text is never cut mid-character.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
