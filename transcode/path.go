// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Path is the conversion route picked for a file pair.
type Path int

const (
	// NativeSameFormat converts WAV to WAV in process.
	NativeSameFormat Path = iota
	// NativeCrossFormat converts FLAC to WAV in process.
	NativeCrossFormat
	// ExternalFallback hands the conversion to ffmpeg.
	ExternalFallback
)

func (p Path) String() string {
	switch p {
	case NativeSameFormat:
		return "native-same-format"
	case NativeCrossFormat:
		return "native-cross-format"
	case ExternalFallback:
		return "external-fallback"
	}
	return fmt.Sprintf("Path(%d)", int(p))
}

// ChoosePath picks the route for a detected input type, the requested output
// extension and an optional output codec. Types and extensions compare
// case-insensitively and ignore a leading dot. Any codec forces the fallback.
func ChoosePath(detected, outputExt, outputCodec string) Path {
	in, out := normalize(detected), normalize(outputExt)
	if out != "wav" || outputCodec != "" {
		return ExternalFallback
	}

	switch in {
	case "wav":
		return NativeSameFormat
	case "flac":
		return NativeCrossFormat
	}
	return ExternalFallback
}

// Extension returns the lower-cased extension of path without its dot.
func Extension(path string) (string, error) {
	ext := normalize(filepath.Ext(path))
	if ext == "" {
		return "", fmt.Errorf("%w: file path has no extension: %q", ErrInvalidPath, path)
	}
	return ext, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
}
