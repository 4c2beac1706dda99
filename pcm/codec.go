// SPDX-License-Identifier: EPL-2.0

package pcm

import "encoding/binary"

// Sample widths in bytes for the PCM layouts the player handles.
const (
	Width8  = 1
	Width16 = 2
	Width24 = 3
	Width32 = 4
)

// FullScale returns the magnitude of a full-scale sample at the given width.
// Unknown widths use the 16-bit value, matching the decode fallback.
func FullScale(width int) float32 {
	switch width {
	case Width8:
		return 128
	case Width16:
		return 32768
	case Width24:
		return 8388608
	case Width32:
		return 2147483648
	default:
		return 32768
	}
}

// OutputWidth maps a source sample width to the width used when encoding for
// the output device. There is no 3-byte encode path: 24-bit samples are
// carried in 32-bit slots with their numeric values unchanged. Unrecognized
// widths take the 16-bit fallback.
func OutputWidth(width int) int {
	switch width {
	case Width8, Width16, Width32:
		return width
	case Width24:
		return Width32
	default:
		return Width16
	}
}

// DecodedWidth returns the number of input bytes consumed per sample when
// decoding at the given width (unknown widths decode as 16-bit).
func DecodedWidth(width int) int {
	switch width {
	case Width8, Width16, Width24, Width32:
		return width
	default:
		return Width16
	}
}

// BytesToFloat32 interprets raw little-endian interleaved PCM bytes as
// float32 samples in the integer scale of the given width (a full-scale
// 16-bit sample becomes ±32768, not ±1). Trailing bytes that do not form a
// complete sample are ignored.
func BytesToFloat32(data []byte, width int) []float32 {
	return AppendFloat32(make([]float32, 0, len(data)/DecodedWidth(width)), data, width)
}

// AppendFloat32 is BytesToFloat32 appending into dst to avoid allocation.
func AppendFloat32(dst []float32, data []byte, width int) []float32 {
	switch width {
	case Width8:
		for _, b := range data {
			dst = append(dst, float32(int8(b)))
		}
	case Width24:
		count := len(data) / 3
		for i := range count {
			dst = append(dst, float32(signExtend24(data[3*i], data[3*i+1], data[3*i+2])))
		}
	case Width32:
		count := len(data) / 4
		for i := range count {
			dst = append(dst, float32(int32(binary.LittleEndian.Uint32(data[4*i:]))))
		}
	default:
		// Width16 and the documented unknown-width fallback.
		count := len(data) / 2
		for i := range count {
			dst = append(dst, float32(int16(binary.LittleEndian.Uint16(data[2*i:]))))
		}
	}

	return dst
}

// signExtend24 rebuilds a signed 32-bit value from one little-endian 3-byte
// sample. A naive zero pad turns negative samples into large positive ones;
// the top byte must be all ones whenever bit 7 of b2 is set.
func signExtend24(b0, b1, b2 byte) int32 {
	v := uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16
	if b2&0x80 != 0 {
		v |= 0xFF000000
	}

	return int32(v)
}

// Float32ToBytes encodes samples (in integer scale, see BytesToFloat32) back
// to little-endian PCM bytes. Width 24 emits 4-byte samples per OutputWidth.
func Float32ToBytes(samples []float32, width int) []byte {
	out := make([]byte, len(samples)*OutputWidth(width))
	PutBytes(out, samples, width)

	return out
}

// PutBytes encodes samples into dst, which must hold at least
// len(samples)*OutputWidth(width) bytes. Values outside the integer range of
// the emitted width are clamped. Returns the number of bytes written.
//
// PutBytes does not allocate; it is safe on the output callback path.
func PutBytes(dst []byte, samples []float32, width int) int {
	switch width {
	case Width8:
		for i, s := range samples {
			dst[i] = byte(clampInt8(s))
		}

		return len(samples)
	case Width24, Width32:
		for i, s := range samples {
			binary.LittleEndian.PutUint32(dst[4*i:], uint32(clampInt32(s)))
		}

		return len(samples) * 4
	default:
		// Width16 and the unknown-width fallback.
		for i, s := range samples {
			binary.LittleEndian.PutUint16(dst[2*i:], uint16(clampInt16(s)))
		}

		return len(samples) * 2
	}
}

func clampInt8(s float32) int8 {
	if s > 127 {
		return 127
	}
	if s < -128 {
		return -128
	}

	return int8(s)
}

func clampInt16(s float32) int16 {
	if s > 32767 {
		return 32767
	}
	if s < -32768 {
		return -32768
	}

	return int16(s)
}

func clampInt32(s float32) int32 {
	// 2147483647 rounds up to 2^31 as float32, so compare against the
	// largest float32 below it.
	if s >= 2147483520 {
		return 2147483647
	}
	if s < -2147483648 {
		return -2147483648
	}

	return int32(s)
}
