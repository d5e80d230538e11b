package huffman

import (
	"sort"

	"github.com/tpzip/tpzip/errs"
	"github.com/tpzip/tpzip/internal/bitio"
)

// SymbolLength pairs a symbol with its Huffman code length, the unit a
// canonical table is built from (§3, §4.2).
type SymbolLength[T comparable] struct {
	Symbol T
	Length int
}

// Table is the encode-side canonical code table: symbol to bit sequence.
type Table[T comparable] map[T]bitio.Bits

// Build runs the full canonical-Huffman procedure of §4.2 over counts
// (every value must be > 0) and returns the symbol-to-bits encode table.
// It returns errs.ErrEmptyHuffmanTable if counts is empty: a table needs
// at least one symbol to assign a code to. Every call site in codec
// already special-cases the zero-trade stream before reaching Build, so
// this is a defensive guard against ever calling it on an empty field.
//
// total is the sum of counts, used only to convert counts into the
// frequencies the priority-queue algorithm weighs nodes by; the resulting
// code lengths are invariant to this normalization (scaling every weight
// by the same constant cannot change which pair is smallest at each step).
//
// less must impose the symbol type's natural total order — lexicographic
// byte order for strings and the [2]byte exchange/newline pair, numeric
// order for the signed-integer fields.
func Build[T comparable](counts map[T]uint64, total uint64, less func(a, b T) bool) (Table[T], error) {
	if len(counts) == 0 {
		return nil, errs.ErrEmptyHuffmanTable
	}

	leaves := make([]node[T], 0, len(counts))
	for sym, count := range counts {
		leaves = append(leaves, node[T]{weight: float64(count) / float64(total), symbol: sym, isLeaf: true})
	}

	// Deterministic input order: ties in weight break on symbol order, so
	// repeated builds over the same counts produce the same tree shape.
	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].weight != leaves[j].weight {
			return leaves[i].weight < leaves[j].weight
		}
		return less(leaves[i].symbol, leaves[j].symbol)
	})

	lengths := codeLengths(leaves)

	records := make([]SymbolLength[T], 0, len(lengths))
	for sym, length := range lengths {
		records = append(records, SymbolLength[T]{Symbol: sym, Length: length})
	}

	return assignCanonicalCodes(records, less), nil
}

// assignCanonicalCodes performs step 4 of §4.2: place (symbol, length)
// records in (length ascending, symbol ascending) order, then assign codes
// starting from the all-zeros bit string of the smallest length,
// incrementing between successive symbols and left-shifting (appending
// zeros on the right) whenever length increases.
func assignCanonicalCodes[T comparable](records []SymbolLength[T], less func(a, b T) bool) Table[T] {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Length != records[j].Length {
			return records[i].Length < records[j].Length
		}
		return less(records[i].Symbol, records[j].Symbol)
	})

	table := make(Table[T], len(records))

	if len(records) == 0 {
		return table
	}

	// Degenerate case: the sole symbol has length 0 and consumes no bits.
	if records[0].Length == 0 {
		table[records[0].Symbol] = bitio.Bits{}
		return table
	}

	code := make(bitio.Bits, records[0].Length)
	for i, rec := range records {
		if i > 0 {
			code = bitio.Increment(code)
			if rec.Length > len(code) {
				code = bitio.PadTo(code, rec.Length)
			}
		}

		assigned := make(bitio.Bits, len(code))
		copy(assigned, code)
		table[rec.Symbol] = assigned
	}

	return table
}

// DecodeTable is the decode-side bit-sequence-to-symbol map, keyed by the
// bit sequence's string form (see bitsKey). Because canonical codes are
// complete and prefix-free, accumulating read bits into the same string
// form and probing this map after every bit is guaranteed to match
// exactly one entry, at the correct code length (§4.5 step 3).
type DecodeTable[T comparable] struct {
	entries map[string]T
	maxLen  int
}

// Size returns the number of distinct symbols in the table.
func (d DecodeTable[T]) Size() int {
	return len(d.entries)
}

// ZeroLengthSymbol reports the table's single symbol when it was built
// from exactly one distinct input symbol (the degenerate case of §4.2),
// whose code consumes zero bits.
func (d DecodeTable[T]) ZeroLengthSymbol() (T, bool) {
	if len(d.entries) == 1 {
		if sym, ok := d.entries[""]; ok {
			return sym, true
		}
	}

	var zero T

	return zero, false
}

// Invert builds the decode-side bit-sequence-to-symbol map from an encode
// table. The two are guaranteed mutual inverses because canonical codes
// are constructed to be unique per symbol.
func Invert[T comparable](table Table[T]) DecodeTable[T] {
	inv := DecodeTable[T]{entries: make(map[string]T, len(table))}
	for sym, bits := range table {
		inv.entries[bitsKey(bits)] = sym
		if len(bits) > inv.maxLen {
			inv.maxLen = len(bits)
		}
	}

	return inv
}

// bitsKey turns a bit sequence into a comparable map key.
func bitsKey(bits bitio.Bits) string {
	b := make([]byte, len(bits))
	copy(b, bits)

	return string(b)
}
