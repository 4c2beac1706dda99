// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile indicates the input is not a valid WAV file
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrOnlyPCMSupported indicates a compressed or non-PCM WAV layout
	ErrOnlyPCMSupported = errors.New("only PCM WAV is supported")

	// ErrUnsupportedBitDepth indicates a bit depth other than 8/16/24/32
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")

	// ErrUnsupportedWavLayout indicates an unsupported WAV file structure
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")

	// ErrInvalidWhence indicates an invalid seek whence value
	ErrInvalidWhence = errors.New("invalid seek whence")

	// ErrNegativeOffset indicates a seek before the start of data
	ErrNegativeOffset = errors.New("negative seek offset")
)
