package constants

import "strings"

// FileFormat is the declared format tag of an uploaded document.
type FileFormat string

const (
	FormatPDF   FileFormat = "PDF"
	FormatDOCX  FileFormat = "DOCX"
	FormatText  FileFormat = "TXT"
	FormatImage FileFormat = "IMAGE"
)

// AllowedExtensions holds the default allowed file extensions for document ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"docx": {},
	"txt":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension to its format tag.
// Unknown extensions map to "" — no format sniffing is attempted.
func MapExtToFormat(ext string) FileFormat {
	switch NormalizeExt(ext) {
	case "pdf":
		return FormatPDF
	case "docx":
		return FormatDOCX
	case "txt", "text":
		return FormatText
	case "jpg", "jpeg", "png":
		return FormatImage
	}
	return ""
}
