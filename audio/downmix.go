// SPDX-License-Identifier: EPL-2.0

package audio

// DownmixMono reduces interleaved multi-channel frames in src to mono by
// arithmetic mean, writing one sample per frame into dst. Returns the number
// of frames written. dst must hold len(src)/channels samples.
//
// The function does not allocate; the playback callback uses it to produce
// the analyzer's input from the frames it just emitted.
func DownmixMono(dst, src []float32, channels int) int {
	if channels <= 1 {
		return copy(dst, src)
	}

	frames := len(src) / channels
	if frames > len(dst) {
		frames = len(dst)
	}

	invChannels := float32(1.0) / float32(channels)

	switch channels {
	case 2: // Stereo (most common)
		for f := range frames {
			idx := f << 1
			dst[f] = (src[idx] + src[idx+1]) * 0.5
		}
	case 4: // Quad
		for f := range frames {
			idx := f << 2
			sum := src[idx] + src[idx+1] + src[idx+2] + src[idx+3]
			dst[f] = sum * 0.25
		}
	default: // Generic path
		for f := range frames {
			sum := float32(0)
			baseIdx := f * channels
			for c := range channels {
				sum += src[baseIdx+c]
			}
			dst[f] = sum * invChannels
		}
	}

	return frames
}
