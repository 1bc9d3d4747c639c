package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// docxToText concatenates paragraph text from word/document.xml in document
// order, one paragraph per line. The token-stream walk tolerates runs nested
// inside hyperlinks and other containers.
func (e *Extractor) docxToText(path string) (string, []string) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", []string{fmt.Sprintf("open zip: %v", err)}
	}
	defer func() {
		if cerr := zr.Close(); cerr != nil {
			e.log.Warn("extract.docx.close", "path", path, "error", cerr)
		}
	}()

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", []string{"missing word/document.xml"}
	}

	rc, err := doc.Open()
	if err != nil {
		return "", []string{fmt.Sprintf("open document.xml: %v", err)}
	}
	defer rc.Close()

	text, err := paragraphText(rc)
	if err != nil {
		return "", []string{fmt.Sprintf("parse document.xml: %v", err)}
	}
	return text, nil
}

func paragraphText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	var para strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString(para.String())
				b.WriteString("\n")
				para.Reset()
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}
	return b.String(), nil
}
