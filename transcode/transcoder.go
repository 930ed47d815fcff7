// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mewkiz/pkg/pathutil"

	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/formats/flac"
	"github.com/ik5/audxcode/formats/wav"
	"github.com/ik5/audxcode/internal/sniff"
	"github.com/ik5/audxcode/parallel"
	"github.com/ik5/audxcode/pipeline"
)

type Config struct {
	// Engine resamples on the native paths, audio.PolyphaseEngine when nil.
	Engine audio.Engine
	// FFmpegPath is the fallback binary, DefaultFFmpeg when empty.
	FFmpegPath string
	Logger     *slog.Logger
}

// Result describes a finished conversion. Stats is zero for the fallback.
type Result struct {
	Path   Path
	Input  string
	Stats  pipeline.Stats
	Output audio.StreamSpec
}

type Transcoder struct {
	engine audio.Engine
	ffmpeg *FFmpeg
	log    *slog.Logger
}

func New(cfg Config) *Transcoder {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Transcoder{
		engine: cfg.Engine,
		ffmpeg: &FFmpeg{Path: cfg.FFmpegPath, Log: log},
		log:    log,
	}
}

// Transcode converts inPath into outPath. The input type is detected from
// content, the route picked by ChoosePath. A failed native run leaves the
// partial output file in place.
func (t *Transcoder) Transcode(inPath, outPath string, opts Options) (Result, error) {
	if opts.OutputExtension == "" {
		ext, err := Extension(outPath)
		if err != nil {
			return Result{}, err
		}
		opts.OutputExtension = ext
	}

	detected, err := sniff.Detect(inPath)
	if err != nil {
		return Result{}, err
	}

	route := ChoosePath(detected, opts.OutputExtension, opts.Codec)
	log := t.log.With(slog.String("input", pathutil.TrimExt(filepath.Base(inPath))))
	log.Info("transcode",
		slog.String("detected", detected),
		slog.String("output_ext", opts.OutputExtension),
		slog.String("path", route.String()),
	)

	res := Result{Path: route, Input: detected}
	switch route {
	case NativeSameFormat:
		res.Stats, res.Output, err = t.sameFormat(inPath, outPath, opts, log)
	case NativeCrossFormat:
		res.Stats, res.Output, err = t.crossFormat(inPath, outPath, opts, log)
	default:
		err = t.ffmpeg.Run(inPath, outPath, opts)
	}
	if err != nil {
		return res, fmt.Errorf("%s: %w", route, err)
	}

	log.Info("transcode done", slog.String("output", outPath))
	return res, nil
}

func (t *Transcoder) config(opts Options, log *slog.Logger) pipeline.Config {
	return pipeline.Config{
		ChunkSize: pipeline.DefaultChunkSize,
		Pool:      parallel.New(opts.Threads),
		Engine:    t.engine,
		Logger:    log,
	}
}

func (t *Transcoder) sameFormat(inPath, outPath string, opts Options, log *slog.Logger) (pipeline.Stats, audio.StreamSpec, error) {
	r, err := wav.Open(inPath)
	if err != nil {
		return pipeline.Stats{}, audio.StreamSpec{}, err
	}
	defer r.Close()

	out := opts.OutputSpec(r.Spec())
	w, err := wav.Create(outPath)
	if err != nil {
		return pipeline.Stats{}, out, err
	}
	defer w.Close()

	stats, err := pipeline.NewPCM16(t.config(opts, log)).Run(r, w, out)
	return stats, out, err
}

func (t *Transcoder) crossFormat(inPath, outPath string, opts Options, log *slog.Logger) (pipeline.Stats, audio.StreamSpec, error) {
	r, err := flac.Open(inPath)
	if err != nil {
		return pipeline.Stats{}, audio.StreamSpec{}, err
	}
	defer r.Close()

	out := opts.OutputSpec(r.Spec())
	w, err := wav.Create(outPath)
	if err != nil {
		return pipeline.Stats{}, out, err
	}
	defer w.Close()

	stats, err := pipeline.NewPCM32(t.config(opts, log)).Run(r, w, out)
	return stats, out, err
}
