// Package internal holds helpers shared across the module but not exported.
package internal

import (
	"context"

	"github.com/xaionaro-go/rgb2gray/logger"
)

// Assert panics (through the logger, so the failure is recorded) when
// mustBeTrue is false. It is used for programmer errors only.
func Assert(
	ctx context.Context,
	mustBeTrue bool,
	extraArgs ...any,
) {
	if mustBeTrue {
		return
	}

	logger.Panic(ctx, "assertion failed", extraArgs)
	panic("assertion failed")
}
