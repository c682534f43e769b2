package avframe

import (
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/rgb2gray/caps"
	"github.com/xaionaro-go/rgb2gray/types"
	"github.com/xaionaro-go/rgb2gray/video"
)

// CapsFromFrame returns the fixed caps describing the frame. libav frames do
// not carry a frame rate, so it has to be provided.
func CapsFromFrame(f *astiav.Frame, frameRate types.Rational) (caps.Caps, error) {
	pixFmt, ok := PixelFormatFromAstiav(f.PixelFormat())
	if !ok {
		return nil, fmt.Errorf("pixel format %s is not supported", f.PixelFormat())
	}
	info, err := video.NewInfo(pixFmt, f.Width(), f.Height(), frameRate)
	if err != nil {
		return nil, fmt.Errorf("unable to describe the frame: %w", err)
	}
	return info.Caps(), nil
}
