package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfToText extracts embedded text page by page, in page order. A page with
// no extractable text layer contributes nothing; per-page failures are
// recorded as warnings and the remaining pages are still read.
func (e *Extractor) pdfToText(path string) (string, int, []string) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, []string{fmt.Sprintf("open: %v", err)}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.log.Warn("extract.pdf.close", "path", path, "error", cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return "", 0, []string{fmt.Sprintf("stat: %v", err)}
	}
	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return "", 0, []string{fmt.Sprintf("pdf reader: %v", err)}
	}

	var b strings.Builder
	var warns []string
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			warns = append(warns, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		b.WriteString(text)
	}
	return b.String(), pages, warns
}
