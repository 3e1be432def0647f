package corkboard

import "math"

// ResizeContext describes one resize step handed to each SizeConstraint.
type ResizeContext struct {
	// Start is the item's rectangle when the resize began.
	Start Rect
	// Edges are the edges being dragged.
	Edges Edges
}

// SizeConstraint adjusts a proposed size during a resize. Implementations
// must return a positive size; the caller re-anchors the position.
type SizeConstraint interface {
	Constrain(ctx ResizeContext, w, h float64) (float64, float64)
}

// AspectRatio locks width/height to a ratio. With Preserve the ratio the item
// had at resize start is used; otherwise Ratio (1 when zero).
type AspectRatio struct {
	Ratio    float64
	Preserve bool
}

// Constrain implements SizeConstraint. Dragging only the top or bottom edge
// derives the width from the height; every other grab derives the height
// from the width.
func (a AspectRatio) Constrain(ctx ResizeContext, w, h float64) (float64, float64) {
	ratio := a.Ratio
	if a.Preserve && ctx.Start.Width > 0 && ctx.Start.Height > 0 {
		ratio = ctx.Start.Width / ctx.Start.Height
	}
	if ratio <= 0 {
		ratio = 1
	}
	horizontal := ctx.Edges&(EdgeLeft|EdgeRight) != 0
	if !horizontal {
		return h * ratio, h
	}
	return w, w / ratio
}

// MinSize enforces a minimum width and height. When both dimensions must
// grow it scales them together so a ratio fixed by an earlier constraint
// survives.
type MinSize struct {
	Width, Height float64
}

// Constrain implements SizeConstraint.
func (m MinSize) Constrain(_ ResizeContext, w, h float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return math.Max(w, m.Width), math.Max(h, m.Height)
	}
	k := 1.0
	if m.Width > 0 && w < m.Width {
		k = math.Max(k, m.Width/w)
	}
	if m.Height > 0 && h < m.Height {
		k = math.Max(k, m.Height/h)
	}
	return w * k, h * k
}

func defaultConstraints(opts Options) []SizeConstraint {
	return []SizeConstraint{
		AspectRatio{Ratio: 1, Preserve: opts.PreserveAspect},
		MinSize{Width: opts.MinItemWidth, Height: opts.MinItemHeight},
	}
}
