package corkboard

import (
	"fmt"
	"math"
)

// resizeSession holds the state of one resize gesture on an item.
type resizeSession struct {
	item  *Item
	start Rect
	edges Edges
	// delta is the cumulative pointer movement in canvas units.
	delta Vec2
	// velocity is the most recent pointer speed in canvas units per second.
	velocity Vec2
}

// MoveItem translates it by a screen-space delta. The delta is divided by
// the canvas scale so the item tracks the pointer at any zoom. A settle still
// running on it stops where it is.
func (b *Board) MoveItem(it *Item, dx, dy float64) {
	b.cancelSettle(it)
	it.X += dx / b.scale
	it.Y += dy / b.scale
	b.Invalidate()
}

// beginResize starts a resize of it from the given edges.
func (b *Board) beginResize(it *Item, edges Edges) *resizeSession {
	b.cancelSettle(it)
	return &resizeSession{item: it, start: it.Bounds(), edges: edges}
}

// resizeBy advances a resize by a screen-space pointer delta observed over
// dt seconds.
func (b *Board) resizeBy(s *resizeSession, dx, dy float64, dt float32) {
	cdx, cdy := dx/b.scale, dy/b.scale
	s.delta.X += cdx
	s.delta.Y += cdy
	if dt > 0 {
		s.velocity = Vec2{X: cdx / float64(dt), Y: cdy / float64(dt)}
	}
	b.applyResize(s, s.delta)
}

// applyResize sets the item's rectangle to the session's start rectangle
// grown by delta on the grabbed edges, run through the constraint chain.
// The edges opposite the grabbed ones stay where they were.
func (b *Board) applyResize(s *resizeSession, delta Vec2) {
	r := s.start
	w, h := r.Width, r.Height
	switch {
	case s.edges.Has(EdgeLeft):
		w -= delta.X
	case s.edges.Has(EdgeRight):
		w += delta.X
	}
	switch {
	case s.edges.Has(EdgeTop):
		h -= delta.Y
	case s.edges.Has(EdgeBottom):
		h += delta.Y
	}

	ctx := ResizeContext{Start: r, Edges: s.edges}
	for _, c := range b.constraints {
		w, h = c.Constrain(ctx, w, h)
	}

	x, y := r.X, r.Y
	if s.edges.Has(EdgeLeft) {
		x = r.Right() - w
	}
	if s.edges.Has(EdgeTop) {
		y = r.Bottom() - h
	}

	it := s.item
	it.X, it.Y = x, y
	it.Width, it.Height = w, h
	it.Label = sizeLabel(w*b.scale, h*b.scale)
	b.Invalidate()
}

// sizeLabel formats an on-screen size readout, e.g. "320×240".
func sizeLabel(w, h float64) string {
	return fmt.Sprintf("%d×%d", int(math.Round(w)), int(math.Round(h)))
}

// resizeEdges returns the edges of the selected item under the window-local
// point (sx, sy), or 0 if the point is not within the resize margin of any
// edge.
func (b *Board) resizeEdges(it *Item, sx, sy float64) Edges {
	x0, y0 := b.CanvasToScreen(it.X, it.Y)
	x1, y1 := b.CanvasToScreen(it.X+it.Width, it.Y+it.Height)
	if sx < x0 || sx > x1 || sy < y0 || sy > y1 {
		return 0
	}
	m := b.opts.ResizeMargin
	// Keep a grabbable interior on tiny items.
	m = math.Min(m, math.Min(x1-x0, y1-y0)/3)

	var e Edges
	if sx-x0 <= m {
		e |= EdgeLeft
	} else if x1-sx <= m {
		e |= EdgeRight
	}
	if sy-y0 <= m {
		e |= EdgeTop
	} else if y1-sy <= m {
		e |= EdgeBottom
	}
	return e
}
