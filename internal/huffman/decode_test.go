package huffman

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tpzip/tpzip/errs"
	"github.com/tpzip/tpzip/internal/bitio"
)

func TestDecode_RoundTrip(t *testing.T) {
	counts := map[byte]uint64{'a': 4, 'b': 2, 'c': 1, 'd': 1}
	table, err := Build(counts, 8, byteLess)
	require.NoError(t, err)
	dec := Invert(table)

	symbols := []byte{'a', 'a', 'b', 'c', 'd', 'a'}

	packer := bitio.NewPacker()
	for _, s := range symbols {
		packer.Append(table[s])
	}
	out := packer.Finish()

	u := bitio.NewUnpacker(bytes.NewReader(out))
	for i, want := range symbols {
		got, err := Decode(u, dec)
		require.NoErrorf(t, err, "symbol %d", i)
		require.Equalf(t, want, got, "symbol %d", i)
	}
}

func TestDecode_ZeroLengthTable(t *testing.T) {
	table, err := Build(map[byte]uint64{'z': 3}, 3, byteLess)
	require.NoError(t, err)
	dec := Invert(table)

	u := bitio.NewUnpacker(bytes.NewReader(nil))
	got, err := Decode(u, dec)
	require.NoError(t, err)
	require.Equal(t, byte('z'), got)
}

func TestDecode_CorruptStream(t *testing.T) {
	// A genuine canonical table is complete (Kraft equality), so every
	// maximal-length prefix resolves to a symbol; CorruptStream only
	// guards against a table a corrupted header reconstructed wrong.
	// Build one directly to exercise that guard.
	dec := DecodeTable[byte]{entries: map[string]byte{string([]byte{0, 0}): 'a'}, maxLen: 2}

	u := bitio.NewUnpacker(bytes.NewReader([]byte{0xFF, 0xFF, 0xFF}))
	_, err := Decode(u, dec)
	require.ErrorIs(t, err, errs.ErrCorruptStream)
}
