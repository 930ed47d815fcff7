// SPDX-License-Identifier: EPL-2.0

// Package transcode picks and runs a conversion route for a pair of files.
//
// # Routes
//
// ChoosePath decides from the detected input type, the output extension and
// the requested codec:
//
//	input   output   codec   route
//	wav     wav      -       NativeSameFormat
//	flac    wav      -       NativeCrossFormat
//	any     any      set     ExternalFallback
//	other   any      -       ExternalFallback
//
// Comparisons ignore case and a leading dot. The input type comes from the
// file content, so a FLAC file named in.wav still takes the FLAC route.
//
// # Native Routes
//
// Both native routes stream through package pipeline in chunks of
// pipeline.DefaultChunkSize frames and write 16-bit PCM WAV. Options
// SampleRate and Channels override the input's values; Codec, BitrateKbps and
// QualityPreset do not apply.
//
//	t := transcode.New(transcode.Config{Logger: logger})
//	res, err := t.Transcode("in.flac", "out.wav", transcode.Options{SampleRate: 16000})
//	fmt.Println(res.Path, res.Stats.OutputFrames)
//
// # Fallback
//
// Every other pair is handed to ffmpeg, with the options mapped one to one
// onto its flags:
//
//	ffmpeg -i IN [-c:a CODEC] [-b:a Nk] [-ar RATE] [-ac CH] [-threads N] [-preset P] -y OUT
//
// A missing binary is reported as audio.ErrUnsupportedFormat. A non-zero exit
// is a *FallbackError carrying the exit code and stderr verbatim:
//
//	var fe *transcode.FallbackError
//	if errors.As(err, &fe) {
//	    fmt.Fprint(os.Stderr, fe.Stderr)
//	}
//
// A failed run leaves any partial output in place.
package transcode
