package huffman

import (
	"github.com/tpzip/tpzip/errs"
	"github.com/tpzip/tpzip/internal/bitio"
)

// Decode reads bits one at a time from u, accumulating them into a prefix,
// until the prefix matches an entry in table — the canonical rule of
// §4.5 step 3. A zero-length table entry (the degenerate single-symbol
// case) is returned immediately without reading any bits.
//
// Decode reports errs.ErrCorruptStream if the accumulated prefix grows
// past the longest code in the table without matching, which can only
// happen against a corrupted or truncated stream since canonical tables
// are complete and prefix-free by construction.
func Decode[T comparable](u *bitio.Unpacker, table DecodeTable[T]) (T, error) {
	var zero T

	if sym, ok := table.ZeroLengthSymbol(); ok {
		return sym, nil
	}

	prefix := make([]byte, 0, table.maxLen)
	for {
		bit, err := u.ReadBit()
		if err != nil {
			return zero, err
		}

		prefix = append(prefix, bit)
		if sym, ok := table.entries[string(prefix)]; ok {
			return sym, nil
		}
		if len(prefix) >= table.maxLen {
			return zero, errs.ErrCorruptStream
		}
	}
}

// FromLengths rebuilds a canonical encode table directly from
// (symbol, length) records in any order — the form the decoder
// reconstructs from the header's symbol/prefix_length pairs (§6) — by
// sorting them into canonical (length, symbol) order and assigning codes.
// It is the header-driven counterpart to Build, which derives the same
// records from a frequency count.
func FromLengths[T comparable](records []SymbolLength[T], less func(a, b T) bool) Table[T] {
	return assignCanonicalCodes(records, less)
}
