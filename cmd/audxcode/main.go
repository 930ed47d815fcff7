// Command audxcode converts audio files. WAV to WAV and FLAC to WAV run in
// process; every other pair is handed to ffmpeg.
//
//	audxcode -i in.flac -o out.wav -sample-rate 16000 -channels 1
//	audxcode -i in.wav -o out.mp3 -codec libmp3lame -bitrate 192
//	audxcode -probe in.ogg
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/mewkiz/pkg/osutil"

	"github.com/ik5/audxcode/formats"
	"github.com/ik5/audxcode/inspect"
	"github.com/ik5/audxcode/internal/config"
	"github.com/ik5/audxcode/internal/logging"
	"github.com/ik5/audxcode/transcode"
)

// verbosity counts repeated -v flags.
type verbosity int

func (v *verbosity) String() string   { return strconv.Itoa(int(*v)) }
func (v *verbosity) IsBoolFlag() bool { return true }

func (v *verbosity) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		*v++
	}
	return nil
}

type cliArgs struct {
	input, output string
	codec         string
	bitrate       int
	sampleRate    int
	channels      int
	qualityPreset string
	threads       int
	verbose       verbosity
	configPath    string
	probe         string
	set           map[string]bool
}

func parseArgs(args []string, stderr io.Writer) (*cliArgs, error) {
	var a cliArgs
	fs := flag.NewFlagSet("audxcode", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&a.input, "i", "", "input audio file")
	fs.StringVar(&a.input, "input", "", "input audio file")
	fs.StringVar(&a.output, "o", "", "output audio file, format taken from its extension")
	fs.StringVar(&a.output, "output", "", "output audio file, format taken from its extension")
	fs.StringVar(&a.codec, "codec", "", "output codec; forces ffmpeg")
	fs.IntVar(&a.bitrate, "bitrate", 0, "output bitrate in kbps (ffmpeg only)")
	fs.IntVar(&a.sampleRate, "sample-rate", 0, "output sample rate in Hz")
	fs.IntVar(&a.channels, "channels", 0, "output channel count")
	fs.StringVar(&a.qualityPreset, "quality-preset", "", "codec specific ffmpeg preset")
	fs.IntVar(&a.threads, "threads", 0, "worker count, 0 for all cores")
	fs.Var(&a.verbose, "v", "increase verbosity (repeatable)")
	fs.StringVar(&a.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&a.probe, "probe", "", "print stream parameters and levels of a file and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	a.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { a.set[f.Name] = true })

	if a.probe == "" && (a.input == "" || a.output == "") {
		fs.Usage()
		return nil, errors.New("both -i and -o are required")
	}
	for name, v := range map[string]int{"bitrate": a.bitrate, "sample-rate": a.sampleRate, "channels": a.channels, "threads": a.threads} {
		if v < 0 {
			return nil, fmt.Errorf("-%s cannot be negative, got %d", name, v)
		}
	}

	return &a, nil
}

func loadConfig(a *cliArgs) (*config.Config, error) {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return nil, err
		}
	}
	if a.set["threads"] {
		cfg.Transcode.Threads = a.threads
	}
	return cfg, nil
}

// validateInput mirrors what the converters need before any work starts.
func validateInput(path string) error {
	if !osutil.Exists(path) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("input path is not a file: %s", path)
	}
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	a, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	cfg, err := loadConfig(a)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	logger := logging.New(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Verbosity: int(a.verbose),
	}, stdout)
	logger.Info("audxcode started")

	if a.probe != "" {
		if err := validateInput(a.probe); err != nil {
			logger.Error("probe failed", slog.Any("error", err))
			return 1
		}
		rep, err := inspect.New(formats.NewRegistry(), logger).Probe(a.probe)
		if err != nil {
			logger.Error("probe failed", slog.String("path", a.probe), slog.Any("error", err))
			return 1
		}
		fmt.Fprintln(stdout, rep)
		return 0
	}

	if err := validateInput(a.input); err != nil {
		logger.Error("invalid input", slog.Any("error", err))
		return 1
	}
	ext, err := transcode.Extension(a.output)
	if err != nil {
		logger.Error("invalid output", slog.Any("error", err))
		return 1
	}

	engine, err := cfg.Transcode.ResamplerEngine()
	if err != nil {
		logger.Error("invalid engine", slog.Any("error", err))
		return 1
	}

	t := transcode.New(transcode.Config{
		Engine:     engine,
		FFmpegPath: cfg.FFmpeg.Path,
		Logger:     logger,
	})

	opts := transcode.Options{
		OutputExtension: ext,
		Codec:           a.codec,
		BitrateKbps:     a.bitrate,
		SampleRate:      a.sampleRate,
		Channels:        a.channels,
		QualityPreset:   a.qualityPreset,
		Threads:         cfg.Transcode.Threads,
	}

	res, err := t.Transcode(a.input, a.output, opts)
	if err != nil {
		logger.Error("error during transcoding", slog.Any("error", err))
		return 1
	}

	logger.Info("audio transcoding completed successfully",
		slog.String("path", res.Path.String()),
		slog.Int64("output_frames", res.Stats.OutputFrames),
	)
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
