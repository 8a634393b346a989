// Package document turns uploaded files into either structured scheme data
// (JSON, YAML) or plain text for extraction.
package document

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"eligo/pkg/platform/sentinel"
)

// Kind tells the load path what to do with a document's content.
type Kind string

const (
	KindJSON Kind = "json"
	KindYAML Kind = "yaml"
	KindText Kind = "text"
)

// Document is a decoded upload.
type Document struct {
	Name string
	Kind Kind
	// Content is the raw bytes for JSON/YAML and the extracted text otherwise.
	Content string
}

// PDFSupported reports whether PDF uploads can be read.
const PDFSupported = true

// Read decodes an upload by file extension. Unknown extensions are read as
// UTF-8 text.
func Read(filename string, data []byte) (Document, error) {
	doc := Document{Name: filename}
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".json":
		doc.Kind = KindJSON
		doc.Content = string(data)
	case ".yaml", ".yml":
		doc.Kind = KindYAML
		doc.Content = string(data)
	case ".docx":
		text, err := readDocx(data)
		if err != nil {
			return Document{}, fmt.Errorf("read %s: %w", filename, err)
		}
		doc.Kind = KindText
		doc.Content = text
	case ".pdf":
		text, err := readPDF(data)
		if err != nil {
			return Document{}, fmt.Errorf("read %s: %w", filename, err)
		}
		doc.Kind = KindText
		doc.Content = text
	default:
		doc.Kind = KindText
		doc.Content = string(bytes.ToValidUTF8(data, []byte("�")))
	}

	if strings.TrimSpace(doc.Content) == "" {
		return Document{}, fmt.Errorf("read %s: %w", filename, sentinel.ErrEmpty)
	}
	return doc, nil
}
