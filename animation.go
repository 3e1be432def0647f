package corkboard

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Speeds below this (canvas units per second) end a resize without inertia.
const inertiaMinSpeed = 120.0

// inertiaReach is the fraction of one second of release velocity the size
// keeps travelling before it settles.
const inertiaReach = 0.25

// resizeSettle continues a released resize along its throw and eases it to
// rest. The overshoot easing lets the item pass its target and come back.
type resizeSettle struct {
	session *resizeSession
	tweenX  *gween.Tween
	tweenY  *gween.Tween
	doneX   bool
	doneY   bool
}

// Done reports whether both axes have settled.
func (r *resizeSettle) Done() bool {
	return r.doneX && r.doneY
}

// update advances the settle by dt seconds and applies the eased size.
func (r *resizeSettle) update(b *Board, dt float32) {
	d := r.session.delta
	if !r.doneX {
		val, done := r.tweenX.Update(dt)
		d.X = float64(val)
		r.doneX = done
	}
	if !r.doneY {
		val, done := r.tweenY.Update(dt)
		d.Y = float64(val)
		r.doneY = done
	}
	r.session.delta = d
	b.applyResize(r.session, d)
}

// endResize finishes a resize. Fast releases start a settle when inertia is
// enabled; the rest stop where the pointer left them.
func (b *Board) endResize(s *resizeSession) {
	if !b.opts.Inertia {
		return
	}
	v := s.velocity
	if math.Hypot(v.X, v.Y) < inertiaMinSpeed {
		return
	}
	from := s.delta
	to := Vec2{X: from.X + v.X*inertiaReach, Y: from.Y + v.Y*inertiaReach}
	d := b.opts.InertiaDuration
	b.settles = append(b.settles, &resizeSettle{
		session: s,
		tweenX:  gween.New(float32(from.X), float32(to.X), d, ease.OutBack),
		tweenY:  gween.New(float32(from.Y), float32(to.Y), d, ease.OutBack),
	})
}

// updateSettles advances every active settle and drops finished ones.
func (b *Board) updateSettles(dt float32) {
	if len(b.settles) == 0 {
		return
	}
	live := b.settles[:0]
	for _, r := range b.settles {
		r.update(b, dt)
		if !r.Done() {
			live = append(live, r)
		}
	}
	for i := len(live); i < len(b.settles); i++ {
		b.settles[i] = nil
	}
	b.settles = live
}

// cancelSettle stops any settle running on it, so a new grab wins.
func (b *Board) cancelSettle(it *Item) {
	live := b.settles[:0]
	for _, r := range b.settles {
		if r.session.item != it {
			live = append(live, r)
		}
	}
	for i := len(live); i < len(b.settles); i++ {
		b.settles[i] = nil
	}
	b.settles = live
}

// Settling reports whether any item is still easing after a resize release.
func (b *Board) Settling() bool {
	return len(b.settles) > 0
}
