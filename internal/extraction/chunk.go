package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the rune budget of one extraction call.
const DefaultChunkSize = 12000

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// Chunk splits text into pieces of at most size runes, breaking on paragraph
// boundaries where possible. Order is preserved; blank input yields nil.
func Chunk(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		if curLen > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, para := range paragraphBreak.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		n := utf8.RuneCountInString(para)
		if n > size {
			flush()
			chunks = append(chunks, splitRunes(para, size)...)
			continue
		}
		sep := 0
		if curLen > 0 {
			sep = 2
		}
		if curLen+sep+n > size {
			flush()
			sep = 0
		}
		if sep > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(para)
		curLen += sep + n
	}
	flush()
	return chunks
}

func splitRunes(s string, size int) []string {
	runes := []rune(s)
	out := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		out = append(out, string(runes[start:end]))
	}
	return out
}
