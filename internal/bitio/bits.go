// Package bitio implements the MSB-first bit packer and unpacker described
// in §4.1: an append-only sequence of bits that packs into bytes with the
// first-appended bit in the most-significant position, plus the companion
// bit-string increment used by canonical Huffman code assignment.
package bitio

// Bits is an ordered sequence of bits, one bit per element (0 or 1), in the
// order they were or will be appended: Bits[0] is the first bit written,
// landing in the most-significant position of the first byte.
//
// This is the representation canonical Huffman codes are built and
// compared in (§4.2); it trades a byte of memory per bit for code that
// reads exactly like the spec's own bit-sequence language. Codes in this
// format never exceed a few dozen bits in practice (the number of distinct
// symbols in any one field's table bounds the deepest code), so the
// overhead is immaterial next to the clarity.
type Bits []byte

// Increment treats bits as a big-endian binary integer and adds one.
// A carry out of the top bit grows the sequence by prepending a 1, per the
// canonical-Huffman "next code" rule in §4.1.
//
// Applying Increment to an empty sequence is undefined by the spec; this
// implementation follows the carry rule to its natural conclusion and
// returns a single 1 bit.
func Increment(bits Bits) Bits {
	out := make(Bits, len(bits))
	copy(out, bits)

	for i := len(out) - 1; i >= 0; i-- {
		if out[i] == 0 {
			out[i] = 1
			return out
		}
		out[i] = 0
	}

	// Carried past the top bit.
	grown := make(Bits, len(out)+1)
	grown[0] = 1
	copy(grown[1:], out)

	return grown
}

// PadTo returns bits left-shifted (zero-extended on the right) to length n.
// It panics if n < len(bits); used when canonicalization moves from one
// code length to the next (§4.2 step 4).
func PadTo(bits Bits, n int) Bits {
	if n < len(bits) {
		panic("bitio: PadTo to a shorter length")
	}
	if n == len(bits) {
		return bits
	}

	out := make(Bits, n)
	copy(out, bits)

	return out
}
