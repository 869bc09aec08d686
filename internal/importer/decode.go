package importer

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

var boms = []struct {
	mark []byte
	enc  encoding.Encoding
}{
	{[]byte{0xEF, 0xBB, 0xBF}, nil},
	{[]byte{0xFF, 0xFE}, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{[]byte{0xFE, 0xFF}, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// charsets maps chardet results to decoders. UTF-8 needs none.
var charsets = map[string]encoding.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
	"ISO-8859-15":  charmap.ISO8859_15,
	"windows-1250": charmap.Windows1250,
	"ISO-8859-2":   charmap.ISO8859_2,
}

// UTF8Reader returns r decoded to UTF-8. A byte order mark wins; otherwise
// valid UTF-8 passes through, then chardet guesses, then Windows-1252.
func UTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(head, b.mark) {
			continue
		}

		if b.enc == nil {
			_, _ = br.Discard(len(b.mark))
			return br, nil
		}

		return transform.NewReader(br, b.enc.NewDecoder()), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	if res, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if res.Charset == "UTF-8" {
			return br, nil
		}

		if enc, ok := charsets[res.Charset]; ok {
			return transform.NewReader(br, enc.NewDecoder()), nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}
