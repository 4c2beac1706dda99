// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the file is not a valid AIFF file
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedBitDepth indicates a bit depth other than 8/16/24/32
	ErrUnsupportedBitDepth = errors.New("unsupported AIFF bit depth")

	// ErrUnsupportedAiffLayout indicates an unsupported AIFF layout
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")

	// ErrInvalidWhence indicates an invalid seek whence value
	ErrInvalidWhence = errors.New("invalid seek whence")

	// ErrNegativeOffset indicates a seek before the start of data
	ErrNegativeOffset = errors.New("negative seek offset")
)
