package rgb2gray

import (
	"context"

	"github.com/xaionaro-go/rgb2gray/caps"
	"github.com/xaionaro-go/rgb2gray/element"
	"github.com/xaionaro-go/rgb2gray/logger"
	"github.com/xaionaro-go/rgb2gray/types"
)

// TransformCaps maps caps across the element.
//
// Given src (downstream) caps, the element needs BGRx of the same geometry
// upstream. Given sink (upstream) caps, it can offer GRAY8 or BGRx of the same
// geometry downstream; GRAY8 is listed first.
func (e *RGB2Gray) TransformCaps(
	ctx context.Context,
	direction element.PadDirection,
	in caps.Caps,
	filter *caps.Caps,
) (_ret caps.Caps) {
	ctx = e.ctx(ctx)
	logger.Tracef(ctx, "TransformCaps")
	defer func() { logger.Tracef(ctx, "/TransformCaps: %s", _ret) }()

	var other caps.Caps
	switch direction {
	case element.PadDirectionSrc:
		other = withFormat(in, types.PixelFormatBGRx)
	case element.PadDirectionSink:
		other = append(
			withFormat(in, types.PixelFormatGRAY8),
			withFormat(in, types.PixelFormatBGRx)...,
		)
	default:
		logger.Errorf(ctx, "unexpected pad direction: %s", direction)
		return nil
	}

	logger.Debugf(ctx, "transformed caps from %s to %s in direction %s", in, other, direction)

	if filter == nil {
		return other
	}
	return filter.Intersect(other)
}

func withFormat(in caps.Caps, format types.PixelFormat) caps.Caps {
	result := in.Copy()
	for idx := range result {
		result[idx].Set("format", caps.String(format))
	}
	return result
}
