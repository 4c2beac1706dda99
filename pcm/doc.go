// SPDX-License-Identifier: EPL-2.0

// Package pcm converts raw interleaved PCM byte buffers to and from float32
// sample arrays for sample widths of 1, 2, 3 and 4 bytes.
//
// # Sample Scale
//
// Unlike the normalized [-1, 1] representation used by the format decoders,
// this package keeps samples in the integer scale of their width: a
// full-scale positive 16-bit sample decodes to 32767.0. The playback engine
// scales these values for volume and casts them straight back to integers,
// so a round trip through the codec at unity volume is lossless.
//
// # Width Policy
//
// Each width is an explicit, named branch so behavior per width can be
// pinned by tests:
//
//   - 1, 2, 4 bytes: direct reinterpret-and-widen of int8/int16/int32.
//   - 3 bytes: decode requires manual sign extension (see below); there is
//     no 3-byte encode path: 24-bit audio is emitted as 32-bit samples
//     with unchanged numeric values. OutputWidth reports this mapping.
//   - any other width: both directions silently fall back to the 16-bit
//     branch. This is documented recovery behavior, not an error.
//
// # 24-bit Sign Extension
//
// A 3-byte little-endian sample is copied into the low three bytes of a
// 32-bit word; when bit 7 of the most significant source byte is set, the
// top byte is filled with ones before reinterpreting as int32:
//
//	0xFF 0xFF 0x80  ->  0xFF80FFFF  ->  -8323073
//	0x00 0x00 0x7F  ->  0x007F0000  ->   8323072
//
// Zero padding instead of sign filling would corrupt every negative sample.
package pcm
