package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	"github.com/joseph-ayodele/study-tracker/constants"
)

// Extractor dispatches on the declared format tag. No format sniffing: an
// unknown or image format returns empty text immediately (image OCR is out
// of scope; a scanned report card yields no signal).
type Extractor struct {
	log *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{log: logger}
}

func (e *Extractor) Extract(ctx context.Context, path string, format constants.FileFormat) (TextExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return TextExtractionResult{}, err
	}
	start := time.Now()

	var res TextExtractionResult
	switch format {
	case constants.FormatPDF:
		res.Method = "pdf-text"
		res.Text, res.Pages, res.Warnings = e.pdfToText(path)
	case constants.FormatDOCX:
		res.Method = "docx-paragraphs"
		res.Text, res.Warnings = e.docxToText(path)
	case constants.FormatText:
		res.Method = "plain-text"
		res.Text, res.Warnings = e.plainText(path)
	default:
		res.Method = "none"
	}
	res.Duration = time.Since(start)

	e.log.Debug("extract.done",
		"path", path,
		"format", string(format),
		"method", res.Method,
		"text_bytes", len(res.Text),
		"pages", res.Pages,
		"warnings", len(res.Warnings),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// plainText reads the file as UTF-8. Invalid byte sequences degrade to empty
// text like every other unextractable input, keeping one consistent policy
// across formats.
func (e *Extractor) plainText(path string) (string, []string) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", []string{fmt.Sprintf("read: %v", err)}
	}
	if !utf8.Valid(b) {
		e.log.Warn("extract.invalid_encoding", "path", path)
		return "", []string{"invalid UTF-8 encoding"}
	}
	return string(b), nil
}
