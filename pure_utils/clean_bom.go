package pure_utils

import (
	"bufio"
	"bytes"
	"io"
)

var utf8Bom = []byte{0xef, 0xbb, 0xbf}

// NewReaderWithoutBom skips a leading UTF-8 byte order mark if the stream
// starts with one. Spreadsheet exports routinely carry it, and it would
// otherwise end up glued to the first header name.
func NewReaderWithoutBom(r io.Reader) io.Reader {
	buf := bufio.NewReader(r)
	head, err := buf.Peek(len(utf8Bom))
	if err != nil {
		// not enough bytes
		return buf
	}
	if bytes.Equal(head, utf8Bom) {
		_, _ = buf.Discard(len(utf8Bom))
	}
	return buf
}
