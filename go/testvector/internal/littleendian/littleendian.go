package littleendian

import (
	"errors"
)

var ErrOutOfRange = errors.New("littleendian: Given integer is out of encodable range.")

// Encode4BytesLittleEndianUint encodes a length prefix. n must fit in 32 bits.
func Encode4BytesLittleEndianUint(n int) ([4]byte, error) {
	if n < 0 || uint64(n) > 0xffffffff {
		return [4]byte{}, ErrOutOfRange
	}

	return [4]byte{
		byte(n & 0xff),
		byte((n >> 8) & 0xff),
		byte((n >> 16) & 0xff),
		byte((n >> 24) & 0xff),
	}, nil
}

func Decode4BytesLittleEndianUint(b [4]byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// Encode4BytesLittleEndianInt encodes n in two's complement.
func Encode4BytesLittleEndianInt(n int32) [4]byte {
	u := uint32(n)
	return [4]byte{
		byte(u & 0xff),
		byte((u >> 8) & 0xff),
		byte((u >> 16) & 0xff),
		byte((u >> 24) & 0xff),
	}
}

func Decode4BytesLittleEndianInt(b [4]byte) int32 {
	return int32(Decode4BytesLittleEndianUint(b))
}
