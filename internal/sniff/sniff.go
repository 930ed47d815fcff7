// SPDX-License-Identifier: EPL-2.0

// Package sniff identifies audio containers from their leading bytes.
package sniff

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/h2non/filetype"

	"github.com/ik5/audxcode/audio"
)

// HeaderSize is the number of leading bytes inspected.
const HeaderSize = 4096

// Unknown is returned when no matcher recognizes the input.
const Unknown = ""

// Detect opens path and returns the extension tag of its content type, for
// example "wav" or "flac", or Unknown.
func Detect(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}
	defer f.Close()

	return DetectReader(f)
}

// DetectReader is Detect for an already opened stream. It consumes up to
// HeaderSize bytes of r.
func DetectReader(r io.Reader) (string, error) {
	head := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Unknown, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	return Match(head[:n]), nil
}

// Match returns the extension tag for an in-memory header.
func Match(head []byte) string {
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return Unknown
	}
	return kind.Extension
}
