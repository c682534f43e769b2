//go:build !debug_trace
// +build !debug_trace

package logger

import (
	"context"
)

// TraceEnabled reports whether Tracef emits anything in this build.
const TraceEnabled = false

// Tracef is compiled out unless the debug_trace build tag is set: it sits on
// the per-frame path.
func Tracef(ctx context.Context, format string, args ...any) {}
