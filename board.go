package corkboard

import (
	"io"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// Options configures a Board. Start from DefaultOptions and override fields.
type Options struct {
	// WindowDragThreshold is the distance in screen pixels under which a
	// secondary-button drag is reclassified as a click on release.
	WindowDragThreshold float64
	// ResizeMargin is the screen-space band around the selected item's
	// edges that starts a resize instead of a move.
	ResizeMargin float64
	// MinItemWidth and MinItemHeight bound resizes, in canvas units.
	MinItemWidth  float64
	MinItemHeight float64
	// PreserveAspect keeps the ratio an item had when a resize started.
	// When false the base 1:1 ratio is locked.
	PreserveAspect bool
	// Inertia continues a resize along the release velocity and settles it.
	Inertia bool
	// InertiaDuration is the settle time in seconds.
	InertiaDuration float32
	// MinScale, MaxScale and ZoomStep control wheel zoom.
	MinScale float64
	MaxScale float64
	ZoomStep float64
	// ScreenshotDir receives PNGs queued with Board.Screenshot.
	ScreenshotDir string

	// Loader decodes item sources. Nil uses FileLoader.
	Loader TextureLoader
	// Host receives outbound bridge requests. Nil drops them.
	Host Host
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns the stock interaction settings.
func DefaultOptions() Options {
	return Options{
		WindowDragThreshold: 10,
		ResizeMargin:        8,
		MinItemWidth:        10,
		MinItemHeight:       10,
		PreserveAspect:      true,
		Inertia:             true,
		InertiaDuration:     0.35,
		MinScale:            0.1,
		MaxScale:            8,
		ZoomStep:            1.1,
		ScreenshotDir:       "screenshots",
	}
}

// Board is the top-level object that owns the item registry, canvas
// transform, selection, gesture state and the host bridge. All methods other
// than Bridge.Deliver must be called from the update goroutine.
type Board struct {
	opts  Options
	log   *slog.Logger
	debug bool

	initialized bool
	scale       float64
	translate   Vec2
	items       []*Item
	placeholder bool

	// Selection
	selected      *Item
	resizeEnabled bool

	// Transform
	constraints []SizeConstraint
	settles     []*resizeSettle

	// Input
	input       inputReader
	gesture     pointerGesture
	injectQueue []syntheticEvent
	script      *ScriptRunner

	// Bridge
	host   Host
	bridge *Bridge
	loader TextureLoader

	// Render
	dirty           bool
	redraws         int
	canvas          *ebiten.Image
	viewW, viewH    int
	screenshotQueue []string
	shots           int
}

// NewBoard creates an empty board at scale 1 showing the empty-canvas
// placeholder. Zero numeric options fall back to DefaultOptions.
func NewBoard(opts Options) *Board {
	opts = opts.withDefaults()
	b := &Board{
		opts:        opts,
		log:         opts.Logger,
		scale:       1,
		placeholder: true,
		loader:      opts.Loader,
		host:        opts.Host,
		input:       ebitenInput{},
		dirty:       true,
	}
	if b.log == nil {
		b.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if b.loader == nil {
		b.loader = FileLoader{}
	}
	if b.host == nil {
		b.host = NopHost{}
	}
	b.constraints = defaultConstraints(opts)
	b.bridge = newBridge(b)
	return b
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.WindowDragThreshold <= 0 {
		o.WindowDragThreshold = d.WindowDragThreshold
	}
	if o.ResizeMargin <= 0 {
		o.ResizeMargin = d.ResizeMargin
	}
	if o.MinItemWidth <= 0 {
		o.MinItemWidth = d.MinItemWidth
	}
	if o.MinItemHeight <= 0 {
		o.MinItemHeight = d.MinItemHeight
	}
	if o.InertiaDuration <= 0 {
		o.InertiaDuration = d.InertiaDuration
	}
	if o.MinScale <= 0 {
		o.MinScale = d.MinScale
	}
	if o.MaxScale < o.MinScale {
		o.MaxScale = d.MaxScale
	}
	if o.ZoomStep <= 1 {
		o.ZoomStep = d.ZoomStep
	}
	if o.ScreenshotDir == "" {
		o.ScreenshotDir = d.ScreenshotDir
	}
	return o
}

// Bridge returns the page-side API surface of the host bridge.
func (b *Board) Bridge() *Bridge {
	return b.bridge
}

// SetHost replaces the receiver of outbound bridge requests.
func (b *Board) SetHost(h Host) {
	if h == nil {
		h = NopHost{}
	}
	b.host = h
}

// SetLogger replaces the board's logger.
func (b *Board) SetLogger(l *slog.Logger) {
	if l != nil {
		b.log = l
	}
}

// SetConstraints replaces the resize constraint chain. Constraints run in
// order on every resize step.
func (b *Board) SetConstraints(cs ...SizeConstraint) {
	b.constraints = cs
}

// Scale returns the global canvas zoom factor.
func (b *Board) Scale() float64 {
	return b.scale
}

// Translate returns the canvas pan offset in screen pixels.
func (b *Board) Translate() Vec2 {
	return b.translate
}

// Initialized reports whether the first drop has happened. Background clicks
// only clear the selection after that.
func (b *Board) Initialized() bool {
	return b.initialized
}

// Gesture returns the current state of the pointer gesture machine.
func (b *Board) Gesture() GestureState {
	return b.gesture.state
}

// SetViewport records the window's logical size, reported to the host on
// every pointer press.
func (b *Board) SetViewport(w, h int) {
	if w != b.viewW || h != b.viewH {
		b.viewW, b.viewH = w, h
		b.Invalidate()
	}
}

// Invalidate marks the canvas for recomposition on the next Draw.
func (b *Board) Invalidate() {
	b.dirty = true
}

// Update drains bridge messages, processes input and advances resize
// inertia. Call it once per tick.
func (b *Board) Update() error {
	b.update(float32(1.0 / float64(ebiten.TPS())))
	return nil
}

func (b *Board) update(dt float32) {
	b.bridge.drain()
	if b.script != nil {
		b.script.step(b)
	}
	b.processInput(dt)
	b.updateSettles(dt)
}

// ScreenToCanvas converts window-local screen coordinates to canvas units.
func (b *Board) ScreenToCanvas(sx, sy float64) (float64, float64) {
	return (sx - b.translate.X) / b.scale, (sy - b.translate.Y) / b.scale
}

// CanvasToScreen converts canvas units to window-local screen coordinates.
func (b *Board) CanvasToScreen(cx, cy float64) (float64, float64) {
	return cx*b.scale + b.translate.X, cy*b.scale + b.translate.Y
}

// markInitialized runs the one-time setup of the first drop.
func (b *Board) markInitialized() {
	if b.initialized {
		return
	}
	b.initialized = true
	b.log.Debug("board initialized")
}
