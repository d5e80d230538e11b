package tpzip

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tpzip/tpzip/format"
)

func writeCSV(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "trades.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestCompressDecompressFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	csv := "GEM8-GEU8,F,A,0,60303042,60303043,-0.14,115\n" +
		"SPZ8-SPH9,C,B,1,60303100,60303150,500,10\n"
	in := writeCSV(t, dir, csv)
	compressed := filepath.Join(dir, "trades.tpz")
	out := filepath.Join(dir, "trades.out.csv")

	stats, err := CompressFile(in, compressed)
	require.NoError(t, err)
	require.Equal(t, uint64(2), stats.NumTrades)
	require.Len(t, stats.FieldHeaderSizes, 9)
	require.NoError(t, DecompressFile(compressed, out, format.EnvelopeNone))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, csv, string(got))
}

func TestCompressDecompressFile_WithEnvelope(t *testing.T) {
	dir := t.TempDir()
	csv := "GEM8-GEU8,F,A,0,60303042,60303043,-0.14,115\n"
	in := writeCSV(t, dir, csv)
	compressed := filepath.Join(dir, "trades.tpz")
	out := filepath.Join(dir, "trades.out.csv")

	_, err := CompressFile(in, compressed, WithEnvelope(format.EnvelopeZstd))
	require.NoError(t, err)
	require.NoError(t, DecompressFile(compressed, out, format.EnvelopeZstd))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, csv, string(got))
}

func TestCompressFile_EmptyInputProducesEmptyOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeCSV(t, dir, "")
	compressed := filepath.Join(dir, "trades.tpz")

	stats, err := CompressFile(in, compressed)
	require.NoError(t, err)
	require.Nil(t, stats.FieldHeaderSizes)

	info, err := os.Stat(compressed)
	require.NoError(t, err)
	require.Equal(t, int64(0), info.Size())
}

func TestDecompressFile_EmptyInputProducesEmptyOutput(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.tpz")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	out := filepath.Join(dir, "trades.out.csv")

	require.NoError(t, DecompressFile(empty, out, format.EnvelopeNone))

	info, err := os.Stat(out)
	require.NoError(t, err)
	require.Equal(t, int64(0), info.Size())
}
