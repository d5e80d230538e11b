package bitio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIncrement_NoCarry(t *testing.T) {
	require.Equal(t, Bits{1, 0, 0}, Increment(Bits{0, 1, 1}))
}

func TestIncrement_Carry(t *testing.T) {
	require.Equal(t, Bits{1, 0, 0, 0}, Increment(Bits{1, 1, 1}))
}

func TestIncrement_DoesNotMutateInput(t *testing.T) {
	in := Bits{0, 1, 1}
	out := Increment(in)
	out[0] = 9
	require.Equal(t, Bits{0, 1, 1}, in)
}

func TestPadTo(t *testing.T) {
	require.Equal(t, Bits{1, 0, 0, 0, 0}, PadTo(Bits{1, 0}, 5))
	require.Equal(t, Bits{1, 0}, PadTo(Bits{1, 0}, 2))
}
