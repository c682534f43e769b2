package rgb2gray

import (
	"context"
	"fmt"
	"strconv"

	"github.com/xaionaro-go/rgb2gray/element"
	"github.com/xaionaro-go/rgb2gray/logger"
	"github.com/xaionaro-go/xsync"
)

const (
	PropertyInvert = "invert"
	PropertyShift  = "shift"

	DefaultInvert = false
	DefaultShift  = uint8(0)
)

// Settings are the runtime parameters, read once per transformed frame.
type Settings struct {
	// Shift is added to the gray value, wrapping around at 256.
	Shift uint8

	// Invert replaces the gray value v with 255-v after shifting.
	Invert bool
}

func DefaultSettings() Settings {
	return Settings{
		Shift:  DefaultShift,
		Invert: DefaultInvert,
	}
}

func (e *RGB2Gray) Settings(ctx context.Context) Settings {
	return xsync.DoR1(ctx, &e.SettingsLocker, func() Settings {
		return e.settings
	})
}

func (e *RGB2Gray) Shift(ctx context.Context) uint8 {
	return e.Settings(ctx).Shift
}

func (e *RGB2Gray) Invert(ctx context.Context) bool {
	return e.Settings(ctx).Invert
}

func (e *RGB2Gray) SetShift(ctx context.Context, shift uint8) {
	ctx = e.ctx(ctx)
	e.SettingsLocker.Do(ctx, func() {
		logger.Infof(ctx, "changing shift from %d to %d", e.settings.Shift, shift)
		e.settings.Shift = shift
	})
}

func (e *RGB2Gray) SetInvert(ctx context.Context, invert bool) {
	ctx = e.ctx(ctx)
	e.SettingsLocker.Do(ctx, func() {
		logger.Infof(ctx, "changing invert from %t to %t", e.settings.Invert, invert)
		e.settings.Invert = invert
	})
}

func (e *RGB2Gray) Properties() []element.Property {
	return []element.Property{
		{
			Name:    PropertyInvert,
			Nick:    "Invert",
			Blurb:   "Invert grayscale output",
			Default: DefaultInvert,
		},
		{
			Name:    PropertyShift,
			Nick:    "Shift",
			Blurb:   "Shift grayscale output (wrapping around)",
			Min:     uint8(0),
			Max:     uint8(255),
			Default: DefaultShift,
		},
	}
}

// SetProperty sets a property by name; string values are parsed, which is
// what command-line hosts pass.
func (e *RGB2Gray) SetProperty(
	ctx context.Context,
	name string,
	value any,
) error {
	switch name {
	case PropertyInvert:
		v, err := parseInvert(value)
		if err != nil {
			return element.ErrInvalidPropertyValue{Name: name, Value: value, Err: err}
		}
		e.SetInvert(ctx, v)
		return nil
	case PropertyShift:
		v, err := parseShift(value)
		if err != nil {
			return element.ErrInvalidPropertyValue{Name: name, Value: value, Err: err}
		}
		e.SetShift(ctx, v)
		return nil
	default:
		return element.ErrUnknownProperty{Name: name}
	}
}

func (e *RGB2Gray) Property(
	ctx context.Context,
	name string,
) (any, error) {
	switch name {
	case PropertyInvert:
		return e.Invert(ctx), nil
	case PropertyShift:
		return e.Shift(ctx), nil
	default:
		return nil, element.ErrUnknownProperty{Name: name}
	}
}

func parseInvert(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	default:
		return false, fmt.Errorf("expected a bool")
	}
}

func parseShift(value any) (uint8, error) {
	var v int64
	switch value := value.(type) {
	case uint8:
		return value, nil
	case int:
		v = int64(value)
	case int64:
		v = value
	case uint:
		if value > 255 {
			return 0, fmt.Errorf("out of range [0, 255]")
		}
		v = int64(value)
	case uint32:
		v = int64(value)
	case string:
		var err error
		v, err = strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("expected an integer")
	}
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("out of range [0, 255]")
	}
	return uint8(v), nil
}
