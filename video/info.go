// info.go derives the memory layout of a raw video frame from fixed caps.

// Package video describes raw video frames: their layout (Info) and the
// mapping of caller-supplied byte buffers onto it (Frame).
package video

import (
	"fmt"
	"math"

	"github.com/xaionaro-go/rgb2gray/caps"
	"github.com/xaionaro-go/rgb2gray/types"
)

// MaxPlanes is the maximal amount of planes a frame may have.
const MaxPlanes = 4

// DefaultStrideAlign is the row alignment (in bytes) applied to every plane.
const DefaultStrideAlign = 4

// Info is a concrete video format: the pixel format, the dimensions and the
// resulting plane layout.
type Info struct {
	Format    types.PixelFormat
	Width     int
	Height    int
	FrameRate types.Rational
	Planes    int
	Stride    [MaxPlanes]int
	Offset    [MaxPlanes]int
	Size      int
}

func NewInfo(
	format types.PixelFormat,
	width, height int,
	frameRate types.Rational,
) (Info, error) {
	formatInfo, ok := format.Info()
	if !ok {
		return Info{}, fmt.Errorf("unsupported pixel format %q", format)
	}
	if width <= 0 || height <= 0 {
		return Info{}, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if !frameRate.IsValid() {
		return Info{}, fmt.Errorf("invalid frame rate %s", frameRate)
	}

	info := Info{
		Format:    format,
		Width:     width,
		Height:    height,
		FrameRate: frameRate,
		Planes:    int(formatInfo.Planes),
	}
	size := 0
	for plane := 0; plane < info.Planes; plane++ {
		rowBytes := uint64(width) * uint64(formatInfo.BytesPerPixel[plane])
		stride := roundUp(rowBytes, DefaultStrideAlign)
		planeSize := stride * uint64(height)
		if stride > math.MaxInt32 || uint64(size)+planeSize > math.MaxInt32 {
			return Info{}, fmt.Errorf("frame %dx%d of %s is too large", width, height, format)
		}
		info.Stride[plane] = int(stride)
		info.Offset[plane] = size
		size += int(planeSize)
	}
	info.Size = size
	return info, nil
}

func roundUp(v uint64, align uint64) uint64 {
	return (v + align - 1) / align * align
}

// InfoFromCaps resolves fixed caps into a concrete layout. It fails if the
// caps do not describe exactly one raw video format.
func InfoFromCaps(c caps.Caps) (Info, error) {
	if len(c) != 1 {
		return Info{}, fmt.Errorf("expected exactly one structure, got %d", len(c))
	}
	s := c[0]
	if s.Name != caps.MediaTypeRawVideo {
		return Info{}, fmt.Errorf("unexpected media type %q", s.Name)
	}

	formatValue, ok := s.Get("format")
	if !ok {
		return Info{}, fmt.Errorf("no format")
	}
	formatStr, ok := formatValue.(caps.String)
	if !ok {
		return Info{}, fmt.Errorf("format is not fixed: %s", formatValue)
	}
	format := types.PixelFormatFromToken(string(formatStr))
	if format == types.PixelFormatUnknown {
		return Info{}, fmt.Errorf("unknown format %q", formatStr)
	}

	width, err := fixedInt(s, "width")
	if err != nil {
		return Info{}, err
	}
	height, err := fixedInt(s, "height")
	if err != nil {
		return Info{}, err
	}

	frameRate := types.Rational{Num: 0, Den: 1}
	if v, ok := s.Get("framerate"); ok {
		f, ok := v.(caps.Fraction)
		if !ok {
			return Info{}, fmt.Errorf("framerate is not fixed: %s", v)
		}
		frameRate = types.Rational(f)
	}

	return NewInfo(format, width, height, frameRate)
}

func fixedInt(s caps.Structure, name string) (int, error) {
	v, ok := s.Get(name)
	if !ok {
		return 0, fmt.Errorf("no %s", name)
	}
	i, ok := v.(caps.Int)
	if !ok {
		return 0, fmt.Errorf("%s is not fixed: %s", name, v)
	}
	return int(i), nil
}

// Caps returns the fixed caps describing this format.
func (info Info) Caps() caps.Caps {
	return caps.Caps{caps.NewStructure(caps.MediaTypeRawVideo,
		caps.Field{Name: "format", Value: caps.String(info.Format)},
		caps.Field{Name: "width", Value: caps.Int(info.Width)},
		caps.Field{Name: "height", Value: caps.Int(info.Height)},
		caps.Field{Name: "framerate", Value: caps.Fraction(info.FrameRate)},
	)}
}

func (info Info) String() string {
	return fmt.Sprintf("%s %dx%d@%s (stride %d, size %d)", info.Format, info.Width, info.Height, info.FrameRate, info.Stride[0], info.Size)
}
