package rgb2gray

import (
	"context"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-ng/xatomic"
	"github.com/xaionaro-go/rgb2gray/caps"
	"github.com/xaionaro-go/rgb2gray/logger"
	"github.com/xaionaro-go/rgb2gray/video"
)

// state is the negotiated pair of formats. It is never modified after being
// published; renegotiation publishes a new one.
type state struct {
	In  video.Info
	Out video.Info
}

func (e *RGB2Gray) getState() *state {
	return xatomic.LoadPointer(&e.state)
}

// SetCaps resolves both sides into concrete layouts and replaces the current
// configuration. Caps outside the pad templates, or with differing
// dimensions, are refused.
func (e *RGB2Gray) SetCaps(
	ctx context.Context,
	in, out caps.Caps,
) (_ret bool) {
	ctx = e.ctx(ctx)
	logger.Tracef(ctx, "SetCaps")
	defer func() { logger.Tracef(ctx, "/SetCaps: %v", _ret) }()

	inInfo, err := video.InfoFromCaps(in)
	if err != nil {
		logger.Debugf(ctx, "unable to parse input caps %s: %v", in, err)
		return false
	}
	outInfo, err := video.InfoFromCaps(out)
	if err != nil {
		logger.Debugf(ctx, "unable to parse output caps %s: %v", out, err)
		return false
	}
	if !in.CanIntersect(sinkCaps) {
		logger.Debugf(ctx, "input caps %s are not acceptable: %s", in, sinkCaps)
		return false
	}
	if !out.CanIntersect(srcCaps) {
		logger.Debugf(ctx, "output caps %s are not producible: %s", out, srcCaps)
		return false
	}
	if inInfo.Width != outInfo.Width || inInfo.Height != outInfo.Height {
		logger.Debugf(ctx, "the element does not scale: %dx%d -> %dx%d", inInfo.Width, inInfo.Height, outInfo.Width, outInfo.Height)
		return false
	}

	s := &state{In: inInfo, Out: outInfo}
	logger.Debugf(ctx, "configured for caps %s to %s", in, out)
	if logger.TraceEnabled {
		logger.Tracef(ctx, "state: %s", spew.Sdump(s))
	}
	xatomic.StorePointer(&e.state, s)
	return true
}

// Stop drops the configuration; it is safe to call any number of times.
func (e *RGB2Gray) Stop(ctx context.Context) error {
	ctx = e.ctx(ctx)
	xatomic.StorePointer(&e.state, (*state)(nil))
	logger.Infof(ctx, "Stopped")
	return nil
}

// UnitSize returns the size of a frame described by the fixed caps. It does
// not depend on the current configuration.
func (e *RGB2Gray) UnitSize(
	ctx context.Context,
	c caps.Caps,
) (uint, bool) {
	info, err := video.InfoFromCaps(c)
	if err != nil {
		logger.Debugf(e.ctx(ctx), "unable to get the unit size of %s: %v", c, err)
		return 0, false
	}
	return uint(info.Size), true
}
