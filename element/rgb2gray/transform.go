package rgb2gray

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/rgb2gray/element"
	"github.com/xaionaro-go/rgb2gray/internal"
	"github.com/xaionaro-go/rgb2gray/logger"
	"github.com/xaionaro-go/rgb2gray/types"
	"github.com/xaionaro-go/rgb2gray/video"
	"github.com/xaionaro-go/xsync"
)

// Transform writes the grayscale version of the BGRx frame in into out,
// according to the negotiated formats. Only the first width pixels of each
// row are written; row padding of out is left as is.
func (e *RGB2Gray) Transform(
	ctx context.Context,
	in []byte,
	out []byte,
) (_err error) {
	ctx = e.ctx(ctx)
	logger.Tracef(ctx, "Transform")
	defer func() { logger.Tracef(ctx, "/Transform: %v", _err) }()

	s := e.getState()
	if s == nil {
		logger.Errorf(ctx, "have no state yet")
		return element.ErrNotNegotiated{}
	}
	e.counters.Received.Increment(uint64(len(in)))
	defer func() {
		if _err != nil {
			e.counters.Failed.Increment(uint64(len(in)))
		}
	}()

	internal.Assert(ctx, s.In.Format == types.PixelFormatBGRx, s.In.Format)
	switch s.Out.Format {
	case types.PixelFormatBGRx, types.PixelFormatGRAY8:
	default:
		err := element.ErrUnsupportedOutputFormat{Format: s.Out.Format}
		logger.Errorf(ctx, "%v", err)
		internal.Assert(ctx, !abortOnContractViolation, err)
		return err
	}

	settings := e.Settings(xsync.WithNoLogging(ctx, true))

	inFrame, err := video.MapFrame(s.In, in)
	if err != nil {
		logger.Errorf(ctx, "failed to map input buffer readable: %v", err)
		return element.ErrBufferMapping{Err: err}
	}
	outFrame, err := video.MapFrame(s.Out, out)
	if err != nil {
		logger.Errorf(ctx, "failed to map output buffer writable: %v", err)
		return element.ErrBufferMapping{Writable: true, Err: err}
	}

	if err := convertFrame(inFrame, outFrame, settings); err != nil {
		logger.Errorf(ctx, "unable to convert the frame: %v", err)
		return err
	}

	e.counters.Processed.Increment(uint64(len(in)))
	e.counters.Generated.Increment(uint64(outFrame.Info.Size))
	return nil
}

func convertFrame(
	inFrame, outFrame *video.Frame,
	settings Settings,
) error {
	width := inFrame.Info.Width
	inStride := inFrame.PlaneStride(0)
	inData := inFrame.PlaneData(0)
	outStride := outFrame.PlaneStride(0)
	outData := outFrame.PlaneData(0)

	var outPixelSize int
	switch outFrame.Info.Format {
	case types.PixelFormatBGRx:
		// the sink asked for BGRx (it does not support GRAY8)
		outPixelSize = 4
		if len(outData)%4 != 0 {
			return element.ErrBufferMapping{Writable: true, Err: fmt.Errorf("output plane size %d is not a multiple of 4", len(outData))}
		}
	case types.PixelFormatGRAY8:
		outPixelSize = 1
	default:
		return element.ErrUnsupportedOutputFormat{Format: outFrame.Info.Format}
	}

	if len(inData)%4 != 0 {
		return element.ErrBufferMapping{Err: fmt.Errorf("input plane size %d is not a multiple of 4", len(inData))}
	}
	if len(outData)/outStride != len(inData)/inStride {
		return element.ErrBufferMapping{Writable: true, Err: fmt.Errorf("row count mismatch: %d != %d", len(outData)/outStride, len(inData)/inStride)}
	}
	inLineBytes := width * 4
	outLineBytes := width * outPixelSize
	if inLineBytes > inStride {
		return element.ErrBufferMapping{Err: fmt.Errorf("input row of %d bytes does not fit the stride %d", inLineBytes, inStride)}
	}
	if outLineBytes > outStride {
		return element.ErrBufferMapping{Writable: true, Err: fmt.Errorf("output row of %d bytes does not fit the stride %d", outLineBytes, outStride)}
	}

	rows := len(inData) / inStride
	for y := 0; y < rows; y++ {
		inLine := inData[y*inStride : y*inStride+inLineBytes]
		outLine := outData[y*outStride : y*outStride+outLineBytes]
		if outPixelSize == 4 {
			for x := 0; x < width; x++ {
				gray := bgrxToGray(inLine[x*4:x*4+4], settings.Shift, settings.Invert)
				outLine[x*4+0] = gray
				outLine[x*4+1] = gray
				outLine[x*4+2] = gray
			}
		} else {
			for x := 0; x < width; x++ {
				outLine[x] = bgrxToGray(inLine[x*4:x*4+4], settings.Shift, settings.Invert)
			}
		}
	}
	return nil
}
