package element

import (
	"fmt"

	"github.com/xaionaro-go/rgb2gray/caps"
)

type PadDirection int

const (
	PadDirectionUnknown = PadDirection(iota)
	PadDirectionSrc
	PadDirectionSink
)

func (d PadDirection) String() string {
	switch d {
	case PadDirectionUnknown:
		return "unknown"
	case PadDirectionSrc:
		return "src"
	case PadDirectionSink:
		return "sink"
	default:
		return fmt.Sprintf("unexpected_direction_%d", int(d))
	}
}

func (d PadDirection) Opposite() PadDirection {
	switch d {
	case PadDirectionSrc:
		return PadDirectionSink
	case PadDirectionSink:
		return PadDirectionSrc
	default:
		return PadDirectionUnknown
	}
}

type PadPresence int

const (
	PadPresenceAlways = PadPresence(iota)
	PadPresenceSometimes
	PadPresenceRequest
)

type PadTemplate struct {
	Name      string
	Direction PadDirection
	Presence  PadPresence
	Caps      caps.Caps
}

// TemplateByDirection returns a copy of the first template of the given direction.
func TemplateByDirection(templates []PadTemplate, direction PadDirection) (PadTemplate, bool) {
	for _, t := range templates {
		if t.Direction == direction {
			t.Caps = t.Caps.Copy()
			return t, true
		}
	}
	return PadTemplate{}, false
}
