package corkboard

import (
	"image"
	"io/fs"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// Placeholder dimensions for items whose source could not be decoded.
const (
	placeholderImageW = 320
	placeholderImageH = 240
	placeholderVideoW = 320
	placeholderVideoH = 180
)

// Item is a placed image or video. Geometry is in canvas units; the board's
// scale and translate map it to the screen.
type Item struct {
	ID     uuid.UUID
	Source string
	Kind   ItemKind

	// Translation of the item's top-left corner.
	X, Y float64
	// Current size.
	Width, Height float64

	// Label is the on-item size readout written while resizing.
	Label string

	index    int
	selected bool

	img     image.Image
	texture *ebiten.Image
}

// Index returns the item's paint index. Higher paints in front.
// It always equals the item's position in Board.Items.
func (it *Item) Index() int {
	return it.index
}

// Selected reports whether the item carries the selection marker.
func (it *Item) Selected() bool {
	return it.selected
}

// Bounds returns the item's rectangle in canvas units.
func (it *Item) Bounds() Rect {
	return Rect{X: it.X, Y: it.Y, Width: it.Width, Height: it.Height}
}

// Image returns the decoded source image, or nil for videos and sources that
// failed to load.
func (it *Item) Image() image.Image {
	return it.img
}

// newItem builds an item with its natural size taken from img.
func newItem(source string, kind ItemKind, img image.Image) *Item {
	it := &Item{ID: uuid.New(), Source: source, Kind: kind, img: img}
	switch {
	case img != nil:
		b := img.Bounds()
		it.Width, it.Height = float64(b.Dx()), float64(b.Dy())
	case kind == KindVideo:
		it.Width, it.Height = placeholderVideoW, placeholderVideoH
	default:
		it.Width, it.Height = placeholderImageW, placeholderImageH
	}
	return it
}

// --- Registry ---

// AddItem places a new item for source, classifying it by extension.
// The item paints in front of every existing item.
func (b *Board) AddItem(source string) *Item {
	return b.AddItemKind(source, KindForSource(source))
}

// AddItemKind places a new item with an explicit kind. The source is loaded
// through the board's TextureLoader; a failed load still registers the item
// with a placeholder size.
func (b *Board) AddItemKind(source string, kind ItemKind) *Item {
	var img image.Image
	if b.loader != nil {
		var err error
		img, err = b.loader.Load(source, kind)
		if err != nil {
			b.log.Warn("load item source", "source", source, "kind", kind.String(), "err", err)
		}
	}
	return b.register(newItem(source, kind, img))
}

// AddItemFS places an item read from fsys, as handed over by a file drop.
func (b *Board) AddItemFS(fsys fs.FS, name string) *Item {
	kind := KindForSource(name)
	var img image.Image
	if kind == KindImage {
		var err error
		img, err = decodeFile(fsys, name)
		if err != nil {
			b.log.Warn("load dropped file", "name", name, "err", err)
		}
	}
	return b.register(newItem(name, kind, img))
}

// register appends it at the next sequential paint index.
func (b *Board) register(it *Item) *Item {
	b.placeholder = false
	it.index = len(b.items)
	b.items = append(b.items, it)
	b.log.Debug("item added", "id", it.ID, "source", it.Source, "kind", it.Kind.String(), "index", it.index)
	b.Invalidate()
	return it
}

// Items returns the registry in paint order. The returned slice MUST NOT be
// mutated by the caller.
func (b *Board) Items() []*Item {
	return b.items
}

// Len returns the number of placed items.
func (b *Board) Len() int {
	return len(b.items)
}

// ItemAt returns the item at the given paint index.
func (b *Board) ItemAt(index int) *Item {
	return b.items[index]
}

// ShowsPlaceholder reports whether the empty-canvas placeholder is visible.
// It disappears with the first item and never comes back.
func (b *Board) ShowsPlaceholder() bool {
	return b.placeholder
}

// HitTest returns the topmost item containing the canvas point (x, y),
// or nil if the point is over the background.
func (b *Board) HitTest(x, y float64) *Item {
	// Iterate backward (reverse paint order): topmost item first.
	for i := len(b.items) - 1; i >= 0; i-- {
		if b.items[i].Bounds().Contains(x, y) {
			return b.items[i]
		}
	}
	return nil
}
