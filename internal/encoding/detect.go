// Package encoding normalizes uploaded text files to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffSize = 4096

// charset is what sniff settled on for an input.
type charset struct {
	name string
	dec  encoding.Encoding // Nil when the bytes are already UTF-8
	skip int               // Leading bytes to drop
}

var fallback = charset{name: "windows-1252", dec: charmap.Windows1252}

// NewUTF8Reader returns a reader that yields r decoded to UTF-8 and the name of the
// charset that was detected. A UTF-8 byte order mark is dropped.
//
// Detection order: byte order mark, valid UTF-8, chardet heuristics, Windows-1252.
func NewUTF8Reader(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	cs := sniff(head)
	if _, err := br.Discard(cs.skip); err != nil {
		return nil, "", fmt.Errorf("discard bom: %w", err)
	}

	if cs.dec == nil {
		return br, cs.name, nil
	}

	return transform.NewReader(br, cs.dec.NewDecoder()), cs.name, nil
}

func sniff(head []byte) charset {
	switch {
	case bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}):
		return charset{name: "UTF-8", skip: 3}
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE}):
		return charset{name: "UTF-16LE", dec: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)}
	case bytes.HasPrefix(head, []byte{0xFE, 0xFF}):
		return charset{name: "UTF-16BE", dec: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)}
	case utf8.Valid(head):
		return charset{name: "UTF-8"}
	}

	guess, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return fallback
	}

	// Spreadsheet exports from Spanish locales land in one of these.
	switch guess.Charset {
	case "UTF-8":
		return charset{name: "UTF-8"}
	case "ISO-8859-1", "windows-1252":
		return charset{name: guess.Charset, dec: charmap.Windows1252}
	case "ISO-8859-15":
		return charset{name: guess.Charset, dec: charmap.ISO8859_15}
	case "ISO-8859-9":
		return charset{name: guess.Charset, dec: charmap.ISO8859_9}
	}

	return fallback
}
