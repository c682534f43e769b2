package avframe

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/asticode/go-astikit"
	"github.com/xaionaro-go/rgb2gray/caps"
	"github.com/xaionaro-go/rgb2gray/element"
	"github.com/xaionaro-go/rgb2gray/host"
	"github.com/xaionaro-go/rgb2gray/logger"
	"github.com/xaionaro-go/rgb2gray/types"
	"github.com/xaionaro-go/rgb2gray/video"
	"github.com/xaionaro-go/xsync"
)

// Filter runs an element over libav video frames, renegotiating whenever the
// geometry or the pixel format of the incoming frames changes.
type Filter struct {
	Host       *host.Host
	FrameRate  types.Rational
	Downstream *caps.Caps

	Locker    xsync.Mutex
	inputCaps caps.Caps
	outInfo   video.Info
	closer    *astikit.Closer
}

var _ types.Closer = (*Filter)(nil)

func NewFilter(
	ctx context.Context,
	e element.Transform,
	frameRate types.Rational,
	downstream *caps.Caps,
) *Filter {
	f := &Filter{
		Host:       host.New(ctx, e),
		FrameRate:  frameRate,
		Downstream: downstream,
		closer:     astikit.NewCloser(),
	}
	f.closer.Add(func() {
		if err := f.Host.Stop(ctx); err != nil {
			logger.Errorf(ctx, "unable to stop %s: %v", f.Host, err)
		}
	})
	return f
}

func (f *Filter) String() string {
	return fmt.Sprintf("AVFrameFilter(%s)", f.Host.Element)
}

// Process returns a new frame with the result; the caller owns it and has
// to Free it.
func (f *Filter) Process(
	ctx context.Context,
	src *astiav.Frame,
) (_ret *astiav.Frame, _err error) {
	logger.Tracef(ctx, "Process")
	defer func() { logger.Tracef(ctx, "/Process: %v", _err) }()
	return xsync.DoA2R2(xsync.WithNoLogging(ctx, true), &f.Locker, f.processLocked, ctx, src)
}

func (f *Filter) processLocked(
	ctx context.Context,
	src *astiav.Frame,
) (*astiav.Frame, error) {
	if src == nil {
		return nil, fmt.Errorf("nil frame")
	}

	inputCaps, err := CapsFromFrame(src, f.FrameRate)
	if err != nil {
		return nil, err
	}
	if !inputCaps.Equal(f.inputCaps) {
		logger.Debugf(ctx, "input format changed: %s -> %s", f.inputCaps, inputCaps)
		outputCaps, err := f.Host.Negotiate(ctx, inputCaps, f.Downstream)
		if err != nil {
			f.inputCaps = nil
			return nil, fmt.Errorf("unable to negotiate: %w", err)
		}
		outInfo, err := video.InfoFromCaps(outputCaps)
		if err != nil {
			f.inputCaps = nil
			return nil, fmt.Errorf("unable to resolve output caps %s: %w", outputCaps, err)
		}
		f.inputCaps = inputCaps
		f.outInfo = outInfo
	}

	in, err := src.Data().Bytes(video.DefaultStrideAlign)
	if err != nil {
		return nil, element.ErrBufferMapping{Err: fmt.Errorf("unable to copy the frame data: %w", err)}
	}

	out, err := f.Host.Process(ctx, in)
	if err != nil {
		return nil, err
	}

	dst, err := f.allocOutput()
	if err != nil {
		return nil, err
	}
	if err := dst.Data().SetBytes(out, video.DefaultStrideAlign); err != nil {
		dst.Free()
		return nil, element.ErrBufferMapping{Writable: true, Err: fmt.Errorf("unable to set the frame data: %w", err)}
	}
	dst.SetPts(src.Pts())
	return dst, nil
}

func (f *Filter) allocOutput() (*astiav.Frame, error) {
	pixFmt, ok := PixelFormatToAstiav(f.outInfo.Format)
	if !ok {
		return nil, element.ErrUnsupportedOutputFormat{Format: f.outInfo.Format}
	}
	dst := astiav.AllocFrame()
	dst.SetWidth(f.outInfo.Width)
	dst.SetHeight(f.outInfo.Height)
	dst.SetPixelFormat(pixFmt)
	if err := dst.AllocBuffer(0); err != nil {
		dst.Free()
		return nil, fmt.Errorf("unable to allocate the output frame buffer: %w", err)
	}
	return dst, nil
}

func (f *Filter) Close(ctx context.Context) error {
	return f.closer.Close()
}
