package extract

import (
	"context"
	"time"

	"github.com/joseph-ayodele/study-tracker/constants"
)

// TextExtractor is Stage 1: file -> plain text.
//
// Extraction is deliberately lenient: unsupported formats, unreadable files
// and undecodable content all yield empty text with a warning, never an
// error. Callers must treat empty text as "no signal", not as a failure.
type TextExtractor interface {
	Extract(ctx context.Context, path string, format constants.FileFormat) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text     string
	Pages    int
	Method   string // "pdf-text" | "docx-paragraphs" | "plain-text" | "none"
	Duration time.Duration
	Warnings []string
}
