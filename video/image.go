package video

import (
	"fmt"
	"image"

	"github.com/xaionaro-go/rgb2gray/types"
)

// ToImage converts the frame into a Go image. GRAY8 frames are wrapped
// without copying.
func (f *Frame) ToImage() (image.Image, error) {
	rect := image.Rect(0, 0, f.Info.Width, f.Info.Height)
	switch f.Info.Format {
	case types.PixelFormatGRAY8:
		return &image.Gray{
			Pix:    f.PlaneData(0),
			Stride: f.PlaneStride(0),
			Rect:   rect,
		}, nil
	case types.PixelFormatBGRx:
		img := image.NewRGBA(rect)
		data, stride := f.PlaneData(0), f.PlaneStride(0)
		for y := 0; y < f.Info.Height; y++ {
			src := data[y*stride : y*stride+f.Info.Width*4]
			dst := img.Pix[y*img.Stride : y*img.Stride+f.Info.Width*4]
			for x := 0; x < len(src); x += 4 {
				dst[x+0] = src[x+2]
				dst[x+1] = src[x+1]
				dst[x+2] = src[x+0]
				dst[x+3] = 0xff
			}
		}
		return img, nil
	default:
		return nil, fmt.Errorf("conversion of %s to an image is not supported", f.Info.Format)
	}
}
