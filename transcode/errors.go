// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPath    = errors.New("invalid path")
	ErrFallbackFailed = errors.New("external transcoder failed")
)

// FallbackError reports a non-zero exit of the external tool. It matches
// ErrFallbackFailed with errors.Is.
type FallbackError struct {
	ExitCode int
	// Stderr is the tool's diagnostic output, verbatim.
	Stderr string
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("%s: exit status %d\nstderr:\n%s", ErrFallbackFailed, e.ExitCode, e.Stderr)
}

func (e *FallbackError) Unwrap() error { return ErrFallbackFailed }
