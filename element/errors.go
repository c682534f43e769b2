package element

import (
	"errors"
	"fmt"

	"github.com/xaionaro-go/rgb2gray/types"
)

// ErrNotConfigured is matched (with errors.Is) by ErrNotNegotiated.
var ErrNotConfigured = errors.New("not configured")

// ErrNegotiation means no format could be agreed on. The host may try other
// formats or fail the link.
type ErrNegotiation struct {
	Reason string
}

func (e ErrNegotiation) Error() string {
	return fmt.Sprintf("negotiation failed: %s", e.Reason)
}

// ErrNotNegotiated is returned by Transform when it is called outside of the
// SetCaps..Stop window. It is a sequencing bug in the host.
type ErrNotNegotiated struct{}

func (ErrNotNegotiated) Error() string {
	return "not negotiated: have no state yet"
}

func (ErrNotNegotiated) Is(target error) bool {
	return target == ErrNotConfigured
}

// ErrBufferMapping means a buffer cannot be read or written under the
// negotiated layout. It is a per-buffer error.
type ErrBufferMapping struct {
	Writable bool
	Err      error
}

func (e ErrBufferMapping) Error() string {
	mode := "readable"
	if e.Writable {
		mode = "writable"
	}
	return fmt.Sprintf("unable to map the buffer %s: %v", mode, e.Err)
}

func (e ErrBufferMapping) Unwrap() error {
	return e.Err
}

// ErrUnsupportedOutputFormat means negotiation ended with an output format
// the element has no conversion for. This is a bug in the element.
type ErrUnsupportedOutputFormat struct {
	Format types.PixelFormat
}

func (e ErrUnsupportedOutputFormat) Error() string {
	return fmt.Sprintf("unsupported output format %q", e.Format)
}

type ErrUnknownProperty struct {
	Name string
}

func (e ErrUnknownProperty) Error() string {
	return fmt.Sprintf("unknown property %q", e.Name)
}

type ErrInvalidPropertyValue struct {
	Name  string
	Value any
	Err   error
}

func (e ErrInvalidPropertyValue) Error() string {
	return fmt.Sprintf("invalid value %v (%T) of property %q: %v", e.Value, e.Value, e.Name, e.Err)
}

func (e ErrInvalidPropertyValue) Unwrap() error {
	return e.Err
}

type ErrAlreadyRegistered struct {
	Name string
}

func (e ErrAlreadyRegistered) Error() string {
	return fmt.Sprintf("element %q is already registered", e.Name)
}

type ErrNotRegistered struct {
	Name string
}

func (e ErrNotRegistered) Error() string {
	return fmt.Sprintf("element %q is not registered", e.Name)
}
