// SPDX-License-Identifier: EPL-2.0

// Package inspect decodes a file once and reports its stream parameters and
// signal level.
package inspect

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mewkiz/pkg/pathutil"
	"gonum.org/v1/gonum/floats"

	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/internal/sniff"
)

// readFrames is the number of frames decoded per read.
const readFrames = 4096

// Report describes a probed file. Levels are in dBFS; silence reports
// negative infinity.
type Report struct {
	Name     string
	Type     string
	Spec     audio.StreamSpec
	Frames   int64
	Duration time.Duration
	PeakDBFS float64
	RMSDBFS  float64
}

func (r Report) String() string {
	return fmt.Sprintf("%s: %s, %s, %d frames (%s), peak %s, rms %s",
		r.Name, r.Type, r.Spec, r.Frames, r.Duration.Round(time.Millisecond), dbfs(r.PeakDBFS), dbfs(r.RMSDBFS))
}

func dbfs(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf dBFS"
	}
	return fmt.Sprintf("%.2f dBFS", v)
}

type Prober struct {
	registry *audio.Registry
	log      *slog.Logger
}

// New returns a Prober resolving decoders from registry. A nil logger
// discards output.
func New(registry *audio.Registry, log *slog.Logger) *Prober {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Prober{registry: registry, log: log}
}

// Probe detects the type of path from its content, falling back to its
// extension, and decodes it to the end.
func (p *Prober) Probe(path string) (Report, error) {
	kind, err := sniff.Detect(path)
	if err != nil {
		return Report{}, err
	}
	if kind == sniff.Unknown {
		kind = strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	}
	p.log.Debug("probe", slog.String("path", path), slog.String("type", kind))

	dec, ok := p.registry.Get(kind)
	if !ok {
		return Report{}, fmt.Errorf("%w: no decoder for %q", audio.ErrUnsupportedFormat, kind)
	}

	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return Report{}, err
	}
	defer src.Close()

	rep, err := Measure(src)
	if err != nil {
		return Report{}, err
	}
	rep.Name = pathutil.TrimExt(filepath.Base(path))
	rep.Type = kind

	return rep, nil
}

// Measure reads src to the end and reports its length and levels.
func Measure(src audio.Source) (Report, error) {
	spec := src.Spec()
	if err := spec.Validate(); err != nil {
		return Report{}, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}

	buf := make([]float32, readFrames*spec.Channels)
	wide := make([]float64, len(buf))

	var (
		samples int64
		peak    float64
		energy  float64
	)
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			x := wide[:n]
			for i, v := range buf[:n] {
				x[i] = float64(v)
			}
			peak = max(peak, floats.Norm(x, math.Inf(1)))
			energy += floats.Dot(x, x)
			samples += int64(n)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Report{}, err
		}
		if n == 0 {
			break
		}
	}

	rep := Report{
		Spec:     spec,
		Frames:   samples / int64(spec.Channels),
		PeakDBFS: toDB(peak),
		RMSDBFS:  math.Inf(-1),
	}
	rep.Duration = spec.Duration(rep.Frames)
	if samples > 0 {
		rep.RMSDBFS = toDB(math.Sqrt(energy / float64(samples)))
	}

	return rep, nil
}

func toDB(amplitude float64) float64 {
	if amplitude <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(amplitude)
}
