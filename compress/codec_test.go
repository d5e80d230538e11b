package compress

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tpzip/tpzip/errs"
	"github.com/tpzip/tpzip/format"
)

func TestNew_AllKinds(t *testing.T) {
	kinds := []format.EnvelopeKind{format.EnvelopeNone, format.EnvelopeLZ4, format.EnvelopeS2, format.EnvelopeZstd}
	for _, k := range kinds {
		codec, err := New(k)
		require.NoErrorf(t, err, "kind %s", k)
		require.NotNilf(t, codec, "kind %s", k)
	}
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New(format.EnvelopeKind(0xFF))
	require.ErrorIs(t, err, errs.ErrUnknownEnvelope)
}

func TestCodecs_RoundTrip(t *testing.T) {
	data := []byte("GEM8-GEU8,F,A,0,60303042,60303043,-0.14,115\nGEM8-GEU8,F,A,0,60303200,60303260,16,120\n")

	kinds := []format.EnvelopeKind{format.EnvelopeNone, format.EnvelopeLZ4, format.EnvelopeS2, format.EnvelopeZstd}
	for _, k := range kinds {
		codec, err := New(k)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoErrorf(t, err, "kind %s", k)

		decompressed, err := codec.Decompress(compressed)
		require.NoErrorf(t, err, "kind %s", k)
		require.Equalf(t, data, decompressed, "kind %s", k)
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	kinds := []format.EnvelopeKind{format.EnvelopeNone, format.EnvelopeLZ4, format.EnvelopeS2, format.EnvelopeZstd}
	for _, k := range kinds {
		codec, err := New(k)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoErrorf(t, err, "kind %s", k)

		decompressed, err := codec.Decompress(compressed)
		require.NoErrorf(t, err, "kind %s", k)
		require.Empty(t, decompressed)
	}
}

func TestStats_RatioAndSavings(t *testing.T) {
	s := Stats{Algorithm: format.EnvelopeZstd, OriginalSize: 1000, CompressedSize: 250}
	require.InDelta(t, 0.25, s.Ratio(), 0.0001)
	require.InDelta(t, 75.0, s.SpaceSavings(), 0.0001)
}

func TestStats_ZeroOriginalSize(t *testing.T) {
	s := Stats{OriginalSize: 0}
	require.Equal(t, 0.0, s.Ratio())
}
