// rgb2gray.go defines the RGB2Gray element and its registration.

// Package rgb2gray implements a video filter converting packed BGRx frames
// into grayscale, emitted either as GRAY8 or as gray-valued BGRx, with a
// tunable wrapping brightness shift and an inversion switch.
package rgb2gray

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/rgb2gray/element"
	"github.com/xaionaro-go/rgb2gray/logger"
	"github.com/xaionaro-go/rgb2gray/types"
	"github.com/xaionaro-go/xsync"
)

const ElementName = "rsrgb2gray"

type RGB2Gray struct {
	SettingsLocker xsync.Mutex
	settings       Settings

	// state is nil until SetCaps succeeds and after Stop.
	state *state

	counters types.FrameCounters
}

var (
	_ element.Transform     = (*RGB2Gray)(nil)
	_ element.PropertyOwner = (*RGB2Gray)(nil)
)

func New(ctx context.Context) *RGB2Gray {
	return &RGB2Gray{
		settings: DefaultSettings(),
	}
}

// Register makes the element available in the registry as ElementName.
func Register(ctx context.Context, r *element.Registry) error {
	return r.Register(ctx, ElementName, element.RankNone, func(ctx context.Context) element.Transform {
		return New(ctx)
	})
}

func (e *RGB2Gray) String() string {
	s := e.Settings(context.Background())
	return fmt.Sprintf("RGB2Gray(shift=%d, invert=%t)", s.Shift, s.Invert)
}

func (e *RGB2Gray) Metadata() element.Metadata {
	return element.Metadata{
		LongName:       "RGB-GRAY Converter",
		Classification: "Filter/Effect/Converter/Video",
		Description:    "Converts RGB to GRAY or grayscale RGB",
		Author:         "rgb2gray authors",
	}
}

// Stats returns the counters of the frames passed to Transform.
func (e *RGB2Gray) Stats() types.FrameStatistics {
	return e.counters.ToStats()
}

func (e *RGB2Gray) ctx(ctx context.Context) context.Context {
	return logger.CtxWithElement(ctx, ElementName)
}
