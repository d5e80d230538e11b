package bitio

import (
	"bufio"
	"io"
)

// ChunkSize is the read-buffer size used by Unpacker, matching the
// encoder's 1 MiB flush threshold (§4.4, §4.5).
const ChunkSize = 1 << 20 // 1 MiB

// Unpacker reads bits MSB-first from an underlying byte stream, the
// inverse of Packer. It buffers reads in ChunkSize-byte chunks so the
// decoder never makes a syscall per bit.
type Unpacker struct {
	r         *bufio.Reader
	cur       byte
	bitsLeft  int // valid, unread bits remaining in cur (0 means cur is exhausted)
	bitsTaken int64
}

// NewUnpacker wraps r for bit-at-a-time MSB-first reads.
func NewUnpacker(r io.Reader) *Unpacker {
	return &Unpacker{r: bufio.NewReaderSize(r, ChunkSize)}
}

// ReadBit returns the next bit in the stream, or io.EOF/io.ErrUnexpectedEOF
// once the stream is exhausted.
func (u *Unpacker) ReadBit() (byte, error) {
	if u.bitsLeft == 0 {
		b, err := u.r.ReadByte()
		if err != nil {
			return 0, err
		}
		u.cur = b
		u.bitsLeft = 8
	}

	u.bitsLeft--
	u.bitsTaken++
	bit := (u.cur >> u.bitsLeft) & 1

	return bit, nil
}

// BitsRead returns the total number of bits consumed so far.
func (u *Unpacker) BitsRead() int64 {
	return u.bitsTaken
}
