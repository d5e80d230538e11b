// Package tpzip provides a high-performance, space-efficient compressor
// for streams of financial trade records serialized as comma-separated
// text lines.
//
// tpzip reshapes each trade field into a small-magnitude residual using an
// online predictor, then Huffman-codes each of the nine fields with its
// own canonical code table. Both stages are reproduced losslessly during
// decompression.
//
// # Basic usage
//
//	import (
//	    "github.com/tpzip/tpzip"
//	    "github.com/tpzip/tpzip/format"
//	)
//
//	if _, err := tpzip.CompressFile("trades.csv", "trades.tpz"); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := tpzip.DecompressFile("trades.tpz", "trades.out.csv", format.EnvelopeNone); err != nil {
//	    log.Fatal(err)
//	}
//
// # Package structure
//
// This package is a thin wrapper over codec (the two-pass encoder and
// single-pass decoder) and compress (the optional outer envelope codec).
// For fine-grained control — a custom flush threshold, or streaming
// directly against an io.Writer — use those packages directly.
package tpzip

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/tpzip/tpzip/codec"
	"github.com/tpzip/tpzip/compress"
	"github.com/tpzip/tpzip/errs"
	"github.com/tpzip/tpzip/format"
	"github.com/tpzip/tpzip/internal/options"
)

// Option configures CompressFile.
type Option = options.Option[*config]

type config struct {
	envelope       format.EnvelopeKind
	flushThreshold int
}

// WithEnvelope wraps the finished tpzip stream in an additional,
// general-purpose compression pass (§11 of SPEC_FULL.md). The same
// envelope kind must be passed to DecompressFile for the matching file,
// since the wire format carries no self-describing envelope tag.
func WithEnvelope(kind format.EnvelopeKind) Option {
	return options.NoError(func(c *config) { c.envelope = kind })
}

// WithFlushThreshold overrides the encoder's pass-2 flush boundary. See
// codec.WithFlushThreshold.
func WithFlushThreshold(n int) Option {
	return options.NoError(func(c *config) { c.flushThreshold = n })
}

// CompressFile compresses the CSV file at inputPath into outputPath. It
// returns the encoder's per-field header statistics, for a caller that
// wants to print a verbose report; the zero value's FieldHeaderSizes is nil
// for the empty-input shortcut.
//
// A zero-byte input produces a zero-byte output and returns nil; no core
// logic runs (§1, §8 scenario 4).
func CompressFile(inputPath, outputPath string, opts ...Option) (codec.EncodeStats, error) {
	cfg := config{envelope: format.EnvelopeNone, flushThreshold: 0}
	if err := options.Apply(&cfg, opts...); err != nil {
		return codec.EncodeStats{}, err
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return codec.EncodeStats{}, fmt.Errorf("%w: %v", errs.ErrInputRead, err)
	}
	if info.Size() == 0 {
		return codec.EncodeStats{}, os.WriteFile(outputPath, nil, 0o644)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return codec.EncodeStats{}, fmt.Errorf("%w: %v", errs.ErrOutputWrite, err)
	}
	defer out.Close()

	var encodeOpts []codec.EncodeOption
	if cfg.flushThreshold > 0 {
		encodeOpts = append(encodeOpts, codec.WithFlushThreshold(cfg.flushThreshold))
	}

	if cfg.envelope == format.EnvelopeNone {
		return codec.Encode(inputPath, out, encodeOpts...)
	}

	var raw bytes.Buffer
	stats, err := codec.Encode(inputPath, &raw, encodeOpts...)
	if err != nil {
		return codec.EncodeStats{}, err
	}

	envelope, err := compress.New(cfg.envelope)
	if err != nil {
		return codec.EncodeStats{}, err
	}
	wrapped, err := envelope.Compress(raw.Bytes())
	if err != nil {
		return codec.EncodeStats{}, fmt.Errorf("%w: %v", errs.ErrOutputWrite, err)
	}
	if _, err := out.Write(wrapped); err != nil {
		return codec.EncodeStats{}, fmt.Errorf("%w: %v", errs.ErrOutputWrite, err)
	}
	return stats, nil
}

// DecompressFile decompresses the tpzip file at inputPath into outputPath.
// envelope must match the kind CompressFile used to produce inputPath.
//
// A zero-byte input produces a zero-byte output and returns nil.
func DecompressFile(inputPath, outputPath string, envelope format.EnvelopeKind) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInputRead, err)
	}
	if info.Size() == 0 {
		return os.WriteFile(outputPath, nil, 0o644)
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInputRead, err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrOutputWrite, err)
	}
	defer out.Close()

	var src io.Reader = in
	if envelope != format.EnvelopeNone {
		raw, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrInputRead, err)
		}
		codecImpl, err := compress.New(envelope)
		if err != nil {
			return err
		}
		unwrapped, err := codecImpl.Decompress(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrCorruptStream, err)
		}
		src = bytes.NewReader(unwrapped)
	}

	return codec.Decode(src, out)
}
