// element.go defines the contract between a pipeline host and a transform element.

// Package element defines what a transform element looks like from the
// pipeline host's point of view, and how elements are registered.
package element

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/rgb2gray/caps"
)

// Transform is an element with exactly one input (sink) and one output (src)
// pad, producing one output buffer per input buffer.
//
// The host calls TransformCaps while negotiating, SetCaps once both sides
// are fixed, then Transform per buffer and finally Stop. SetCaps and Stop
// are never called concurrently with Transform.
type Transform interface {
	fmt.Stringer

	Metadata() Metadata
	Templates() []PadTemplate

	// TransformCaps returns what the element can accept or produce on the
	// opposite pad of direction, given caps on the direction pad. If filter
	// is not nil the result is intersected with it.
	TransformCaps(ctx context.Context, direction PadDirection, c caps.Caps, filter *caps.Caps) caps.Caps

	// SetCaps configures the element for the given fixed caps. It returns
	// false (and keeps the previous configuration) if the caps cannot be
	// resolved into concrete formats.
	SetCaps(ctx context.Context, in, out caps.Caps) bool

	// UnitSize returns the size of one buffer described by the given caps.
	UnitSize(ctx context.Context, c caps.Caps) (uint, bool)

	Transform(ctx context.Context, in []byte, out []byte) error

	Stop(ctx context.Context) error
}

type Metadata struct {
	LongName       string
	Classification string
	Description    string
	Author         string
}
