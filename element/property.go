package element

import (
	"context"
)

// Property describes a runtime parameter of an element.
type Property struct {
	Name    string
	Nick    string
	Blurb   string
	Min     any
	Max     any
	Default any
}

// PropertyOwner is implemented by elements with runtime parameters that may be
// set by name, e.g. from a command line.
type PropertyOwner interface {
	Properties() []Property
	SetProperty(ctx context.Context, name string, value any) error
	Property(ctx context.Context, name string) (any, error)
}
