// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package container

import (
	"github.com/kcad/plantmodel/internal/plog"
	"github.com/kcad/plantmodel/tessellate"
)

// NoForcedColor means "forced_color" is unset (spec.md 6.4): every
// group keeps reporting its own material id.
const NoForcedColor int32 = -1

// Options controls a parse (spec.md 6.4).
type Options struct {
	// ObjectName restricts events to the sub-trees rooted at every
	// group with this exact name. Empty means no filter.
	ObjectName string

	// ForcedColor, when not NoForcedColor, overrides every group's
	// reported material id.
	ForcedColor int32

	// Scale multiplies every primitive matrix's rotation/scale basis
	// (spec.md 4.2, "Scaling"); it does not touch the translation
	// column or group translations, which follow their own mm->m
	// conversion.
	Scale float32

	// IgnoreAttributes skips opening the attribute side-car file
	// entirely, even if one exists.
	IgnoreAttributes bool

	// MaxSideSize and MinSides are tessellator resolution controls
	// (spec.md 6.4); the container parser itself never tessellates —
	// TessellateOptions packages them for whatever Sink chooses to
	// call the tessellate package.
	MaxSideSize float32
	MinSides    int

	// Logger receives parser diagnostics (resync events, skipped
	// attribute blocks). A nil Logger defaults to a warn-level stderr
	// logger.
	Logger plog.Logger
}

// DefaultOptions returns the options a bare CLI invocation would use:
// no object filter, no forced color, unit scale, attributes read,
// tessellator defaults.
func DefaultOptions() Options {
	return Options{
		ForcedColor: NoForcedColor,
		Scale:       1,
		MaxSideSize: 0.1,
		MinSides:    8,
	}
}

// TessellateOptions packages the resolution controls for a Sink that
// wants to call the tessellate package.
func (o Options) TessellateOptions() tessellate.Options {
	return tessellate.Options{MaxSideSize: o.MaxSideSize, MinSides: o.MinSides}
}

func (o Options) logger() *plog.Helper {
	if o.Logger == nil {
		return plog.Default()
	}
	return plog.NewHelper(o.Logger)
}
