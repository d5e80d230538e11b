// Package endian provides the byte-order engine used by the header codec.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder into a single EndianEngine interface, so
// one value offers both the Put*/Uint* calls (which tpzip's header codec
// uses, over fixed-size scratch arrays) and the Append* calls.
//
// The wire format fixes little-endian explicitly rather than deferring to
// whatever the host happens to use: compressed files produced on a
// little-endian host and decoded on a big-endian one would otherwise
// silently reconstruct the wrong trade values. GetLittleEndianEngine is the
// only engine tpzip's header codec calls; GetBigEndianEngine and the
// native-endianness probes are not used by the codec and are exercised
// only by this package's own tests.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into one interface, satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether engine uses the host's byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return CheckEndianness() == binary.ByteOrder(engine)
}

// GetLittleEndianEngine returns the engine used for every tpzip header field.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine. No tpzip codec path
// uses it; only this package's tests do.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
