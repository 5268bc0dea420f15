package content

import (
	"errors"
	"fmt"
	"io"

	"zkcli/internal/zkerr"
)

// DefaultLimit matches ZooKeeper's default jute.maxbuffer.
const DefaultLimit = 0xfffff

// ErrNoContent reports that neither a literal nor piped input was supplied.
var ErrNoContent = errors.New("no content supplied")

// Source describes where a payload may come from.
type Source struct {
	Literal    *string
	Stdin      io.Reader
	StdinPiped bool
}

// Resolve returns the payload for src. limit <= 0 selects DefaultLimit.
func Resolve(src Source, limit int) ([]byte, error) {
	if src.Literal != nil {
		return []byte(*src.Literal), nil
	}
	if !src.StdinPiped || src.Stdin == nil {
		return nil, ErrNoContent
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	data, err := io.ReadAll(io.LimitReader(src.Stdin, int64(limit)+1))
	if err != nil {
		return nil, zkerr.Wrap(zkerr.ErrIO, "read", "stdin", err)
	}
	if len(data) > limit {
		return nil, zkerr.Wrap(zkerr.ErrPayloadTooLarge, "read", "stdin",
			fmt.Errorf("payload exceeds %d bytes", limit))
	}
	return data, nil
}
