package corkboard

import "strings"

// Vec2 is a 2D vector used for positions, offsets and deltas throughout the API.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// ItemKind distinguishes how an item's source is presented.
type ItemKind uint8

const (
	KindImage ItemKind = iota // still image (png, jpeg, gif, webp, bmp, data URL)
	KindVideo                 // video, shown as a poster frame
)

// String returns "image" or "video".
func (k ItemKind) String() string {
	if k == KindVideo {
		return "video"
	}
	return "image"
}

// KindForSource classifies a source by extension. Only a ".mp4" suffix is a
// video; everything else, data URLs included, is an image.
func KindForSource(source string) ItemKind {
	if strings.HasSuffix(source, ".mp4") {
		return KindVideo
	}
	return KindImage
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// GestureState is the state of the pointer gesture machine.
type GestureState uint8

const (
	GestureIdle       GestureState = iota // no button held
	GesturePressed                        // button held, no movement yet
	GestureDragging                       // primary button moving an item
	GestureResizing                       // primary button dragging an edge of the selected item
	GestureWindowDrag                     // secondary button moving the window
	GesturePanning                        // middle button panning the canvas
)

func (g GestureState) String() string {
	switch g {
	case GestureIdle:
		return "idle"
	case GesturePressed:
		return "pressed"
	case GestureDragging:
		return "dragging"
	case GestureResizing:
		return "resizing"
	case GestureWindowDrag:
		return "window-drag"
	case GesturePanning:
		return "panning"
	default:
		return "unknown"
	}
}

// Edges is a bitmask of rectangle edges grabbed by a resize gesture.
type Edges uint8

const (
	EdgeLeft Edges = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// Has reports whether all edges in e are set.
func (e Edges) Has(o Edges) bool { return e&o == o }
