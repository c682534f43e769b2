// Package avframe connects libav frames to the transform host, so that
// decoded video can be filtered by elements.
package avframe

import (
	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/rgb2gray/types"
)

func PixelFormatFromAstiav(pixFmt astiav.PixelFormat) (types.PixelFormat, bool) {
	switch pixFmt {
	case astiav.PixelFormatBgr0:
		return types.PixelFormatBGRx, true
	case astiav.PixelFormatGray8:
		return types.PixelFormatGRAY8, true
	default:
		return types.PixelFormatUnknown, false
	}
}

func PixelFormatToAstiav(pixFmt types.PixelFormat) (astiav.PixelFormat, bool) {
	switch pixFmt {
	case types.PixelFormatBGRx:
		return astiav.PixelFormatBgr0, true
	case types.PixelFormatGRAY8:
		return astiav.PixelFormatGray8, true
	default:
		return astiav.PixelFormatNone, false
	}
}
