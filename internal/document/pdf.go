package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// readPDF returns the text of every page that yields any, one page per
// block. Pages that fail to decode are skipped.
func readPDF(data []byte) (text string, err error) {
	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("open pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		if s, ok := pageText(r.Page(i)); ok {
			pages = append(pages, s)
		}
	}
	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}

func pageText(p pdf.Page) (s string, ok bool) {
	defer func() {
		if recover() != nil {
			s, ok = "", false
		}
	}()
	if p.V.IsNull() {
		return "", false
	}
	s, err := p.GetPlainText(nil)
	if err != nil {
		return "", false
	}
	return s, true
}
