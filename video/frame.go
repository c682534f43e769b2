package video

import (
	"fmt"
)

type ErrBufferTooSmall struct {
	Have int
	Want int
}

func (e ErrBufferTooSmall) Error() string {
	return fmt.Sprintf("buffer is too small: %d < %d", e.Have, e.Want)
}

type ErrInvalidLayout struct {
	Plane  int
	Reason string
}

func (e ErrInvalidLayout) Error() string {
	return fmt.Sprintf("invalid layout of plane %d: %s", e.Plane, e.Reason)
}

// Frame is a byte buffer mapped under an Info. It does not own the buffer.
type Frame struct {
	Info Info
	Data []byte
}

// MapFrame checks that buf can hold a frame of the given layout and maps it.
func MapFrame(info Info, buf []byte) (*Frame, error) {
	if info.Planes <= 0 || info.Planes > MaxPlanes {
		return nil, ErrInvalidLayout{Reason: fmt.Sprintf("plane count %d", info.Planes)}
	}
	formatInfo, ok := info.Format.Info()
	if !ok {
		return nil, ErrInvalidLayout{Reason: fmt.Sprintf("unknown format %q", info.Format)}
	}
	if len(buf) < info.Size {
		return nil, ErrBufferTooSmall{Have: len(buf), Want: info.Size}
	}
	for plane := 0; plane < info.Planes; plane++ {
		rowBytes := info.Width * int(formatInfo.BytesPerPixel[plane])
		if info.Stride[plane] < rowBytes {
			return nil, ErrInvalidLayout{Plane: plane, Reason: fmt.Sprintf("stride %d is less than a row (%d bytes)", info.Stride[plane], rowBytes)}
		}
		end := info.Offset[plane] + info.Stride[plane]*info.Height
		if info.Offset[plane] < 0 || end > info.Size {
			return nil, ErrInvalidLayout{Plane: plane, Reason: fmt.Sprintf("plane [%d:%d] is out of the frame size %d", info.Offset[plane], end, info.Size)}
		}
	}
	return &Frame{
		Info: info,
		Data: buf[:info.Size],
	}, nil
}

func (f *Frame) PlaneData(plane int) []byte {
	start := f.Info.Offset[plane]
	return f.Data[start : start+f.Info.Stride[plane]*f.Info.Height]
}

func (f *Frame) PlaneStride(plane int) int {
	return f.Info.Stride[plane]
}
