// Package codec implements the two-pass encoder and single-pass decoder of
// §4.4 and §4.5: the wire format header, the nine per-field canonical
// Huffman tables, and the predictor-driven residual encoding tying
// internal/bitio, internal/huffman, internal/predictor and internal/trade
// together.
package codec

import "github.com/tpzip/tpzip/internal/huffman"

// EncodeTables holds the nine encode-side canonical tables pass 1 builds
// and pass 2 consumes, one per trade field in the fixed wire order of §6.
type EncodeTables struct {
	Symbol          huffman.Table[string]
	ExchangeNewline huffman.Table[[2]byte]
	Side            huffman.Table[byte]
	Condition       huffman.Table[byte]
	SendTime        huffman.Table[int64]
	ReceiveTimeDiff huffman.Table[int64]
	Price           huffman.Table[int32]
	PriceOverflow   huffman.Table[string]
	Quantity        huffman.Table[int32]
}

// DecodeTables holds the nine decode-side tables the decoder reconstructs
// from the header before decoding any trade.
type DecodeTables struct {
	Symbol          huffman.DecodeTable[string]
	ExchangeNewline huffman.DecodeTable[[2]byte]
	Side            huffman.DecodeTable[byte]
	Condition       huffman.DecodeTable[byte]
	SendTime        huffman.DecodeTable[int64]
	ReceiveTimeDiff huffman.DecodeTable[int64]
	Price           huffman.DecodeTable[int32]
	PriceOverflow   huffman.DecodeTable[string]
	Quantity        huffman.DecodeTable[int32]
}

func lessString(a, b string) bool { return a < b }
func lessByte(a, b byte) bool     { return a < b }
func lessInt64(a, b int64) bool   { return a < b }
func lessInt32(a, b int32) bool   { return a < b }

// lessExchangeNewline imposes the lexicographic pair order §9's open
// question on pair symbols requires: compare the exchange byte first, the
// newline marker byte as a tiebreaker.
func lessExchangeNewline(a, b [2]byte) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}
