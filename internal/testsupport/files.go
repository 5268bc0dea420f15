package testsupport

import (
	"bytes"
	"testing"
)

// Payload returns size bytes using a simple repeating pattern. A size <= 0
// yields a single byte.
func Payload(t testing.TB, size int) []byte {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	return bytes.Repeat([]byte{0x42}, size)
}

// CountingReader records how many bytes were pulled from it.
type CountingReader struct {
	R *bytes.Reader
	N int
}

// NewCountingReader wraps data.
func NewCountingReader(data []byte) *CountingReader {
	return &CountingReader{R: bytes.NewReader(data)}
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	c.N += n
	return n, err
}
