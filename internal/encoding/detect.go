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

const sniffLen = 4096

var boms = []struct {
	mark    []byte
	decoder func() *encoding.Decoder
}{
	{[]byte{0xEF, 0xBB, 0xBF}, nil},
	{[]byte{0xFF, 0xFE}, func() *encoding.Decoder {
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	}},
	{[]byte{0xFE, 0xFF}, func() *encoding.Decoder {
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	}},
}

// NewUTF8Reader returns a reader yielding r's content as UTF-8 without a BOM.
// History files are usually UTF-8 already, but ones edited by hand on Windows
// tend to come back with a BOM or in a legacy code page, and a JSON decoder
// rejects both.
//
// A UTF-8 BOM is dropped, UTF-16 is decoded, valid UTF-8 passes through, and
// anything else is guessed with chardet, falling back to Windows-1252.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(head, b.mark) {
			continue
		}

		if b.decoder == nil {
			_, _ = br.Discard(len(b.mark))
			return br, nil
		}

		return transform.NewReader(br, b.decoder()), nil
	}

	if len(head) == sniffLen {
		head = trimPartialRune(head)
	}

	if utf8.Valid(head) {
		return br, nil
	}

	dec := guessDecoder(head)
	if dec == nil {
		return br, nil
	}

	return transform.NewReader(br, dec), nil
}

// trimPartialRune drops a multibyte rune cut off at the end of a sniffed prefix.
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(b[i]) {
			continue
		}

		if !utf8.FullRune(b[i:]) {
			return b[:i]
		}

		break
	}

	return b
}

// guessDecoder returns nil when the sample reads as UTF-8.
func guessDecoder(sample []byte) *encoding.Decoder {
	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err == nil {
		switch result.Charset {
		case "UTF-8":
			return nil
		case "ISO-8859-9":
			return charmap.ISO8859_9.NewDecoder()
		case "ISO-8859-15":
			return charmap.ISO8859_15.NewDecoder()
		}
	}

	return charmap.Windows1252.NewDecoder()
}
