// host.go implements a minimal driver for a single transform element.

// Package host drives one element.Transform the way a pipeline host would:
// it negotiates formats, commits them, sizes buffers and feeds frames.
package host

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/rgb2gray/caps"
	"github.com/xaionaro-go/rgb2gray/element"
	"github.com/xaionaro-go/rgb2gray/logger"
	"github.com/xaionaro-go/rgb2gray/types"
	"github.com/xaionaro-go/xsync"
)

type negotiated struct {
	InputCaps   caps.Caps
	OutputCaps  caps.Caps
	InUnitSize  uint
	OutUnitSize uint
}

type Host struct {
	Element element.Transform

	// Locker serializes negotiation and stop against processing, as the
	// element requires.
	Locker     xsync.Mutex
	negotiated *negotiated
	counters   types.FrameCounters
}

var _ types.Closer = (*Host)(nil)

func New(
	ctx context.Context,
	e element.Transform,
) *Host {
	return &Host{
		Element: e,
	}
}

func (h *Host) String() string {
	return fmt.Sprintf("Host(%s)", h.Element)
}

// Negotiate agrees on the output format for the fixed input caps. If
// downstream is not nil, the output must also satisfy it; among the
// candidates the first one wins.
func (h *Host) Negotiate(
	ctx context.Context,
	inputCaps caps.Caps,
	downstream *caps.Caps,
) (_ret caps.Caps, _err error) {
	logger.Tracef(ctx, "Negotiate")
	defer func() { logger.Tracef(ctx, "/Negotiate: %s %v", _ret, _err) }()
	return xsync.DoA3R2(ctx, &h.Locker, h.negotiateLocked, ctx, inputCaps, downstream)
}

func (h *Host) negotiateLocked(
	ctx context.Context,
	inputCaps caps.Caps,
	downstream *caps.Caps,
) (caps.Caps, error) {
	if !inputCaps.IsFixed() {
		return nil, element.ErrNegotiation{Reason: fmt.Sprintf("input caps are not fixed: %s", inputCaps)}
	}

	sink, ok := element.TemplateByDirection(h.Element.Templates(), element.PadDirectionSink)
	if !ok {
		return nil, fmt.Errorf("element %s has no sink pad template", h.Element)
	}
	if !inputCaps.CanIntersect(sink.Caps) {
		return nil, element.ErrNegotiation{Reason: fmt.Sprintf("input caps %s are not accepted by %s", inputCaps, sink.Caps)}
	}

	candidates := h.Element.TransformCaps(ctx, element.PadDirectionSink, inputCaps, downstream)
	if candidates.IsEmpty() {
		return nil, element.ErrNegotiation{Reason: fmt.Sprintf("no output format for %s", inputCaps)}
	}
	outputCaps := candidates.Fixate()
	logger.Debugf(ctx, "output candidates: %s; picked: %s", candidates, outputCaps)

	inSize, ok := h.Element.UnitSize(ctx, inputCaps)
	if !ok {
		return nil, element.ErrNegotiation{Reason: fmt.Sprintf("unable to get the unit size of %s", inputCaps)}
	}
	outSize, ok := h.Element.UnitSize(ctx, outputCaps)
	if !ok {
		return nil, element.ErrNegotiation{Reason: fmt.Sprintf("unable to get the unit size of %s", outputCaps)}
	}

	if !h.Element.SetCaps(ctx, inputCaps, outputCaps) {
		return nil, element.ErrNegotiation{Reason: fmt.Sprintf("%s refused %s -> %s", h.Element, inputCaps, outputCaps)}
	}

	h.negotiated = &negotiated{
		InputCaps:   inputCaps.Copy(),
		OutputCaps:  outputCaps,
		InUnitSize:  inSize,
		OutUnitSize: outSize,
	}
	logger.Infof(ctx, "negotiated %s -> %s (%d -> %d bytes per frame)", inputCaps, outputCaps, inSize, outSize)
	return outputCaps.Copy(), nil
}

// Process transforms one input frame into a newly allocated output frame.
func (h *Host) Process(
	ctx context.Context,
	in []byte,
) (_ret []byte, _err error) {
	logger.Tracef(ctx, "Process")
	defer func() { logger.Tracef(ctx, "/Process: %v", _err) }()
	return xsync.DoA2R2(xsync.WithNoLogging(ctx, true), &h.Locker, h.processLocked, ctx, in)
}

func (h *Host) processLocked(
	ctx context.Context,
	in []byte,
) ([]byte, error) {
	h.counters.Received.Increment(uint64(len(in)))
	out, err := h.transformLocked(ctx, in)
	if err != nil {
		h.counters.Failed.Increment(uint64(len(in)))
		return nil, err
	}
	h.counters.Processed.Increment(uint64(len(in)))
	h.counters.Generated.Increment(uint64(len(out)))
	return out, nil
}

func (h *Host) transformLocked(
	ctx context.Context,
	in []byte,
) ([]byte, error) {
	n := h.negotiated
	if n == nil {
		return nil, element.ErrNotNegotiated{}
	}
	if uint(len(in)) != n.InUnitSize {
		return nil, element.ErrBufferMapping{Err: fmt.Errorf("expected a frame of %d bytes, got %d", n.InUnitSize, len(in))}
	}
	out := make([]byte, n.OutUnitSize)
	if err := h.Element.Transform(ctx, in, out); err != nil {
		return nil, fmt.Errorf("%s: unable to transform: %w", h.Element, err)
	}
	return out, nil
}

func (h *Host) InputCaps(ctx context.Context) caps.Caps {
	return xsync.DoR1(ctx, &h.Locker, func() caps.Caps {
		if h.negotiated == nil {
			return nil
		}
		return h.negotiated.InputCaps.Copy()
	})
}

func (h *Host) OutputCaps(ctx context.Context) caps.Caps {
	return xsync.DoR1(ctx, &h.Locker, func() caps.Caps {
		if h.negotiated == nil {
			return nil
		}
		return h.negotiated.OutputCaps.Copy()
	})
}

// InputUnitSize returns the size of an input frame, or 0 if not negotiated.
func (h *Host) InputUnitSize(ctx context.Context) uint {
	return xsync.DoR1(ctx, &h.Locker, func() uint {
		if h.negotiated == nil {
			return 0
		}
		return h.negotiated.InUnitSize
	})
}

func (h *Host) Stats() types.FrameStatistics {
	return h.counters.ToStats()
}

// Stop ends the stream; frames are refused until the next Negotiate.
func (h *Host) Stop(ctx context.Context) error {
	return xsync.DoR1(ctx, &h.Locker, func() error {
		h.negotiated = nil
		return h.Element.Stop(ctx)
	})
}

func (h *Host) Close(ctx context.Context) error {
	return h.Stop(ctx)
}
