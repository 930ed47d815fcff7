// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"

	"github.com/ik5/audxcode/audio"
)

// DefaultFFmpeg is the binary looked up in PATH when none is configured.
const DefaultFFmpeg = "ffmpeg"

// FFmpeg runs the external fallback conversion.
type FFmpeg struct {
	// Path of the binary, DefaultFFmpeg when empty.
	Path string
	Log  *slog.Logger
}

// Args maps opts one to one onto ffmpeg flags. The output is always
// overwritten.
func (f *FFmpeg) Args(in, out string, opts Options) []string {
	args := []string{"-i", in}
	if opts.Codec != "" {
		args = append(args, "-c:a", opts.Codec)
	}
	if opts.BitrateKbps > 0 {
		args = append(args, "-b:a", strconv.Itoa(opts.BitrateKbps)+"k")
	}
	if opts.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(opts.SampleRate))
	}
	if opts.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(opts.Channels))
	}
	if opts.Threads > 0 {
		args = append(args, "-threads", strconv.Itoa(opts.Threads))
	}
	if opts.QualityPreset != "" {
		args = append(args, "-preset", opts.QualityPreset)
	}
	return append(args, "-y", out)
}

// Run converts in to out. A missing binary is reported as
// audio.ErrUnsupportedFormat; a non-zero exit as *FallbackError.
func (f *FFmpeg) Run(in, out string, opts Options) error {
	log := f.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	name := f.Path
	if name == "" {
		name = DefaultFFmpeg
	}
	bin, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("%w: no fallback available: %w", audio.ErrUnsupportedFormat, err)
	}

	if opts.QualityPreset != "" {
		log.Warn("quality preset is codec specific and may not apply to every audio codec",
			slog.String("preset", opts.QualityPreset))
	}

	args := f.Args(in, out, opts)
	log.Debug("executing ffmpeg", slog.String("bin", bin), slog.Any("args", args))

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Error("ffmpeg failed",
				slog.Int("exit_code", exitErr.ExitCode()),
				slog.String("stderr", stderr.String()))
			return &FallbackError{ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return fmt.Errorf("%w: running %s: %w", audio.ErrIO, bin, err)
	}

	log.Debug("ffmpeg output", slog.String("stdout", stdout.String()))
	return nil
}
