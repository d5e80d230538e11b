package compress

import (
	"fmt"

	"github.com/tpzip/tpzip/errs"
	"github.com/tpzip/tpzip/format"
)

// Compressor compresses a byte slice and returns the compressed result.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte slice previously produced by the
// matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression for one envelope
// algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// Stats reports the outcome of wrapping a file in an envelope codec, for
// the CLI's verbose report.
type Stats struct {
	Algorithm      format.EnvelopeKind
	OriginalSize   int64
	CompressedSize int64
}

// Ratio returns CompressedSize / OriginalSize (0 if OriginalSize is 0).
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}
	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage (0-100).
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.Ratio()) * 100.0
}

// New returns the Codec for kind.
func New(kind format.EnvelopeKind) (Codec, error) {
	switch kind {
	case format.EnvelopeNone:
		return NewNoOpCompressor(), nil
	case format.EnvelopeZstd:
		return NewZstdCompressor(), nil
	case format.EnvelopeS2:
		return NewS2Compressor(), nil
	case format.EnvelopeLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownEnvelope, kind)
	}
}
