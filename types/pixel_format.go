// pixel_format.go defines the raw video pixel-format tokens.

package types

import (
	"strings"
)

// PixelFormat is the textual token of a raw video pixel format, as it appears
// in the "format" field of a capability description.
type PixelFormat string

func (pf PixelFormat) String() string {
	return string(pf)
}

const (
	PixelFormatUnknown PixelFormat = "unknown"

	// PixelFormatBGRx is a packed 4-bytes-per-pixel format: B, G, R, unused.
	PixelFormatBGRx PixelFormat = "BGRx"

	// PixelFormatGRAY8 is a single byte of luma per pixel.
	PixelFormatGRAY8 PixelFormat = "GRAY8"
)

// PixelFormatInfo describes the memory layout of a pixel format.
type PixelFormatInfo struct {
	Planes        uint
	BytesPerPixel [4]uint
}

var pixelFormatInfos = map[PixelFormat]PixelFormatInfo{
	PixelFormatBGRx:  {Planes: 1, BytesPerPixel: [4]uint{4}},
	PixelFormatGRAY8: {Planes: 1, BytesPerPixel: [4]uint{1}},
}

// Info returns the layout of the format; the second value is false if the
// format is not known.
func (pf PixelFormat) Info() (PixelFormatInfo, bool) {
	info, ok := pixelFormatInfos[pf]
	return info, ok
}

// PixelFormatFromToken matches the token exactly, as caps tokens are
// case-sensitive.
func PixelFormatFromToken(s string) PixelFormat {
	if _, ok := pixelFormatInfos[PixelFormat(s)]; ok {
		return PixelFormat(s)
	}
	return PixelFormatUnknown
}

// PixelFormatFromString is case-insensitive, so "bgrx" and "gray8" are
// accepted. It is meant for user input, not for caps.
func PixelFormatFromString(s string) PixelFormat {
	for pf := range pixelFormatInfos {
		if strings.EqualFold(string(pf), s) {
			return pf
		}
	}
	return PixelFormatUnknown
}
