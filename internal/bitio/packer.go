package bitio

import "github.com/tpzip/tpzip/internal/pool"

// Packer appends ordered bit sequences into a byte buffer, first-appended
// bit in the most-significant position of the first byte, as required by
// §4.1. It is the write side of the wire format's payload section.
type Packer struct {
	buf           *pool.ByteBuffer
	partial       byte // bits accumulated for the next, not-yet-full byte
	bitsInPartial int  // 0-7 valid bits currently in partial
}

// NewPacker creates a Packer backed by a pooled byte buffer.
func NewPacker() *Packer {
	return &Packer{buf: pool.GetPackerBuffer()}
}

// Append appends an ordered sequence of bits (each element 0 or 1).
func (p *Packer) Append(bits Bits) {
	for _, b := range bits {
		p.partial = (p.partial << 1) | (b & 1)
		p.bitsInPartial++
		if p.bitsInPartial == 8 {
			p.buf.MustWrite([]byte{p.partial})
			p.partial = 0
			p.bitsInPartial = 0
		}
	}
}

// NumFullBytes returns the number of fully packed bytes accumulated so far
// (excluding any partial final byte).
func (p *Packer) NumFullBytes() int {
	return p.buf.Len()
}

// TakeBytes returns the complete bytes accumulated so far and clears them
// from the packer, leaving any partial final byte in place — its bit
// offset within the byte is unaffected, since the partial byte lives
// outside the buffer that TakeBytes drains.
func (p *Packer) TakeBytes() []byte {
	out := make([]byte, p.buf.Len())
	copy(out, p.buf.Bytes())
	p.buf.Reset()

	return out
}

// Bytes returns the current byte buffer, including a zero-padded partial
// final byte if one is pending. The padding bits occupy the low-order
// positions, per §4.1.
func (p *Packer) Bytes() []byte {
	full := p.buf.Bytes()
	if p.bitsInPartial == 0 {
		out := make([]byte, len(full))
		copy(out, full)

		return out
	}

	out := make([]byte, len(full)+1)
	copy(out, full)
	out[len(full)] = p.partial << (8 - p.bitsInPartial)

	return out
}

// Finish returns the final bytes (the full bytes plus any zero-padded
// partial byte, as Bytes does) and releases the backing buffer to the
// pool. The packer must not be used after Finish.
func (p *Packer) Finish() []byte {
	out := p.Bytes()
	pool.PutPackerBuffer(p.buf)
	p.buf = nil

	return out
}
