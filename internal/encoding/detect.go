package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewUTF8Reader wraps r so its content reads as UTF-8 regardless of the
// original encoding. Catalog CSVs usually come out of Excel, which on
// Windows writes Latin-1/windows-1252; accents in product names arrive
// mangled without this.
//
// Detection: BOM first, then a UTF-8 validity check, then chardet as a
// heuristic, falling back to windows-1252.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if decoded, ok := bomReader(br, buf); ok {
		return decoded, nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	cm := detectCharmap(buf)
	if cm == nil {
		return br, nil
	}

	return transform.NewReader(br, cm.NewDecoder()), nil
}

// bomReader handles byte-order marks. The UTF-8 BOM is stripped; UTF-16
// BOMs select the matching decoder.
func bomReader(br *bufio.Reader, buf []byte) (io.Reader, bool) {
	switch {
	case bytes.HasPrefix(buf, []byte{0xEF, 0xBB, 0xBF}):
		_, _ = br.Discard(3)
		return br, true
	case bytes.HasPrefix(buf, []byte{0xFF, 0xFE}):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), true
	case bytes.HasPrefix(buf, []byte{0xFE, 0xFF}):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), true
	}

	return nil, false
}

// detectCharmap picks a single-byte decoder for the sampled bytes. A nil
// result means the content should pass through untouched (the sample only
// looked invalid because it was cut mid-rune).
func detectCharmap(buf []byte) *charmap.Charmap {
	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil {
		return charmap.Windows1252
	}

	switch result.Charset {
	case "UTF-8":
		return nil
	case "ISO-8859-15":
		return charmap.ISO8859_15
	default:
		// ISO-8859-1 and windows-1252 both land here; 1252 is the superset.
		return charmap.Windows1252
	}
}
