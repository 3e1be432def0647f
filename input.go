package corkboard

import (
	"io/fs"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Per-frame input ---

// pointerSample is the mouse state for one frame.
type pointerSample struct {
	// Window-local position.
	x, y float64
	// Position on the desktop.
	screenX, screenY float64
	pressed          bool
	button           MouseButton
}

// inputReader polls the platform for one frame of input.
type inputReader interface {
	pointer() pointerSample
	wheel() float64
	modifiers() KeyModifiers
	pastePressed() bool
	droppedFiles() fs.FS
}

// ebitenInput reads from Ebitengine's input state.
type ebitenInput struct{}

func (ebitenInput) pointer() pointerSample {
	mx, my := ebiten.CursorPosition()
	wx, wy := ebiten.WindowPosition()
	p := pointerSample{
		x: float64(mx), y: float64(my),
		screenX: float64(wx + mx), screenY: float64(wy + my),
	}
	// Priority order matches the button captured at press time.
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		p.pressed, p.button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		p.pressed, p.button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		p.pressed, p.button = true, MouseButtonMiddle
	}
	return p
}

func (ebitenInput) wheel() float64 {
	_, dy := ebiten.Wheel()
	return dy
}

func (ebitenInput) modifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

func (in ebitenInput) pastePressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyV) && in.modifiers()&ModCtrl != 0
}

func (ebitenInput) droppedFiles() fs.FS {
	return ebiten.DroppedFiles()
}

// --- Gesture state ---

// pointerGesture is the transient state of one press/move/release cycle.
type pointerGesture struct {
	state  GestureState
	down   bool
	button MouseButton

	startLocal  Vec2
	startScreen Vec2
	last        Vec2

	// target is the item under the press, nil for the background.
	target *Item
	// edges is non-zero when the press landed on a resize edge of target.
	edges  Edges
	resize *resizeSession

	// windowDrag survives the release so the context menu that follows a
	// secondary-button drag can be suppressed.
	windowDrag bool
}

// --- Input processing ---

// processInput is called from Board.update to handle one frame of input.
// Injected events take priority over the platform.
func (b *Board) processInput(dt float32) {
	if b.processInjectedInput(dt) {
		return
	}
	if b.input == nil {
		return
	}
	in := b.input
	if fsys := in.droppedFiles(); fsys != nil {
		b.Drop(fsys)
	}
	if in.pastePressed() {
		b.host.Paste()
	}
	p := in.pointer()
	if w := in.wheel(); w != 0 {
		b.zoomAt(p.x, p.y, w)
	}
	b.processPointer(p, dt)
}

// processPointer runs the gesture state machine for one pointer sample.
func (b *Board) processPointer(p pointerSample, dt float32) {
	g := &b.gesture
	switch {
	case p.pressed && !g.down:
		b.pointerDown(p)
	case !p.pressed && g.down:
		// A release away from the last sample carries a final move.
		if p.x != g.last.X || p.y != g.last.Y {
			b.pointerMove(p, dt)
		}
		b.pointerUp(p)
	case p.pressed && g.down:
		if p.x != g.last.X || p.y != g.last.Y {
			b.pointerMove(p, dt)
		}
	}
}

func (b *Board) pointerDown(p pointerSample) {
	g := &b.gesture
	g.down = true
	g.button = p.button
	g.startLocal = Vec2{X: p.x, Y: p.y}
	g.startScreen = Vec2{X: p.screenX, Y: p.screenY}
	g.last = g.startLocal
	g.windowDrag = false
	g.edges = 0
	g.resize = nil
	g.state = GesturePressed

	b.host.RecordWindowSize(b.viewW, b.viewH)

	cx, cy := b.ScreenToCanvas(p.x, p.y)
	g.target = b.HitTest(cx, cy)
	if p.button == MouseButtonLeft && b.ResizeEnabled() && g.target == b.selected {
		g.edges = b.resizeEdges(b.selected, p.x, p.y)
	}
	b.log.Debug("pointer down", "button", p.button, "x", p.x, "y", p.y, "edges", g.edges)
}

func (b *Board) pointerMove(p pointerSample, dt float32) {
	g := &b.gesture
	dx, dy := p.x-g.last.X, p.y-g.last.Y
	g.last = Vec2{X: p.x, Y: p.y}

	switch g.button {
	case MouseButtonRight:
		g.state = GestureWindowDrag
		b.host.MoveWindow(int(p.screenX), int(p.screenY), g.startLocal)
		g.windowDrag = true
	case MouseButtonMiddle:
		g.state = GesturePanning
		t := b.translate
		b.bridge.UpdateTranslate(Vec2{X: t.X + dx, Y: t.Y + dy})
	case MouseButtonLeft:
		switch {
		case g.edges != 0 && g.target != nil:
			if g.resize == nil {
				g.state = GestureResizing
				g.resize = b.beginResize(g.target, g.edges)
			}
			b.resizeBy(g.resize, dx, dy, dt)
		case g.target != nil:
			if g.state != GestureDragging {
				g.state = GestureDragging
				b.Select(g.target, true)
			}
			b.MoveItem(g.target, dx, dy)
		}
	}
}

func (b *Board) pointerUp(p pointerSample) {
	g := &b.gesture

	if g.windowDrag {
		dx := p.screenX - g.startScreen.X
		dy := p.screenY - g.startScreen.Y
		if math.Sqrt(dx*dx+dy*dy) < b.opts.WindowDragThreshold {
			g.windowDrag = false
		}
	}

	switch g.button {
	case MouseButtonLeft:
		switch g.state {
		case GestureResizing:
			b.endResize(g.resize)
		case GesturePressed:
			cx, cy := b.ScreenToCanvas(p.x, p.y)
			hit := b.HitTest(cx, cy)
			if g.target != nil && hit == g.target {
				b.Select(g.target, false)
			} else if g.target == nil && hit == nil && b.initialized && !g.windowDrag {
				b.ClearSelection()
			}
		}
	case MouseButtonRight:
		if g.windowDrag {
			g.windowDrag = false
		} else {
			b.host.ShowContextMenu()
		}
	}

	b.log.Debug("pointer up", "button", p.button, "state", g.state.String())
	g.down = false
	g.state = GestureIdle
	g.target = nil
	g.edges = 0
	g.resize = nil
}

// zoomAt scales the canvas by ZoomStep per wheel notch, keeping the canvas
// point under (sx, sy) fixed on screen.
func (b *Board) zoomAt(sx, sy, notches float64) {
	next := b.scale * math.Pow(b.opts.ZoomStep, notches)
	next = math.Max(b.opts.MinScale, math.Min(b.opts.MaxScale, next))
	if next == b.scale {
		return
	}
	cx, cy := b.ScreenToCanvas(sx, sy)
	if err := b.bridge.UpdateScale(next); err != nil {
		b.log.Warn("zoom", "err", err)
		return
	}
	b.bridge.UpdateTranslate(Vec2{X: sx - cx*next, Y: sy - cy*next})
}
