package rgb2gray

import (
	"math"

	"github.com/xaionaro-go/rgb2gray/caps"
	"github.com/xaionaro-go/rgb2gray/element"
	"github.com/xaionaro-go/rgb2gray/types"
)

var (
	anyDimension = caps.IntRange{Min: 0, Max: math.MaxInt32}
	anyFrameRate = caps.FractionRange{
		Min: types.Rational{Num: 0, Den: 1},
		Max: types.Rational{Num: math.MaxInt32, Den: 1},
	}

	// srcCaps is what the element may produce: gray-valued BGRx or GRAY8.
	srcCaps = rawVideoCaps(caps.StringList{
		string(types.PixelFormatBGRx),
		string(types.PixelFormatGRAY8),
	})

	// sinkCaps is what the element accepts: BGRx only.
	sinkCaps = rawVideoCaps(caps.String(types.PixelFormatBGRx))
)

func rawVideoCaps(format caps.Value) caps.Caps {
	return caps.Caps{caps.NewStructure(caps.MediaTypeRawVideo,
		caps.Field{Name: "format", Value: format},
		caps.Field{Name: "width", Value: anyDimension},
		caps.Field{Name: "height", Value: anyDimension},
		caps.Field{Name: "framerate", Value: anyFrameRate},
	)}
}

func SrcTemplate() element.PadTemplate {
	return element.PadTemplate{
		Name:      "src",
		Direction: element.PadDirectionSrc,
		Presence:  element.PadPresenceAlways,
		Caps:      srcCaps.Copy(),
	}
}

func SinkTemplate() element.PadTemplate {
	return element.PadTemplate{
		Name:      "sink",
		Direction: element.PadDirectionSink,
		Presence:  element.PadPresenceAlways,
		Caps:      sinkCaps.Copy(),
	}
}

func (e *RGB2Gray) Templates() []element.PadTemplate {
	return []element.PadTemplate{SrcTemplate(), SinkTemplate()}
}
