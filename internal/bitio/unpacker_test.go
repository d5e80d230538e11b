package bitio

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnpacker_ReadsMSBFirst(t *testing.T) {
	u := NewUnpacker(bytes.NewReader([]byte{0xD9, 0x65, 0xC0}))

	want := Bits{1, 1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 1}
	for i, w := range want {
		bit, err := u.ReadBit()
		require.NoError(t, err)
		require.Equalf(t, w, bit, "bit %d", i)
	}
}

func TestUnpacker_EOFAtEnd(t *testing.T) {
	u := NewUnpacker(bytes.NewReader([]byte{0xFF}))
	for i := 0; i < 8; i++ {
		_, err := u.ReadBit()
		require.NoError(t, err)
	}
	_, err := u.ReadBit()
	require.ErrorIs(t, err, io.EOF)
}

func TestUnpacker_BitsRead(t *testing.T) {
	u := NewUnpacker(bytes.NewReader([]byte{0xFF, 0xFF}))
	for i := 0; i < 10; i++ {
		_, err := u.ReadBit()
		require.NoError(t, err)
	}
	require.Equal(t, int64(10), u.BitsRead())
}

func TestRoundTripPackerUnpacker(t *testing.T) {
	p := NewPacker()
	bits := Bits{1, 1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 1}
	p.Append(bits)
	out := p.Finish()

	u := NewUnpacker(bytes.NewReader(out))
	for i, w := range bits {
		bit, err := u.ReadBit()
		require.NoError(t, err)
		require.Equalf(t, w, bit, "bit %d", i)
	}
}
