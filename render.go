package corkboard

import (
	"image/color"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const placeholderText = "Drop images or videos here"

var (
	backgroundColor = color.RGBA{R: 0x1c, G: 0x1b, B: 0x22, A: 0xff}
	missingFill     = color.RGBA{R: 0x3a, G: 0x39, B: 0x44, A: 0xff}
	selectionColor  = color.RGBA{R: 0x4c, G: 0x9a, B: 0xff, A: 0xff}
)

const (
	selectionStroke = 2
	handleSize      = 6
)

// Draw blits the composed canvas to screen, recomposing it first if the
// board was invalidated since the last Draw.
func (b *Board) Draw(screen *ebiten.Image) {
	sb := screen.Bounds()
	w, h := sb.Dx(), sb.Dy()
	if w == 0 || h == 0 {
		return
	}
	if b.canvas == nil || b.canvas.Bounds().Dx() != w || b.canvas.Bounds().Dy() != h {
		if b.canvas != nil {
			b.canvas.Deallocate()
		}
		b.canvas = ebiten.NewImage(w, h)
		b.dirty = true
	}
	if b.dirty || b.Settling() {
		b.compose(b.canvas)
		b.dirty = false
		b.redraws++
	}
	b.flushScreenshots(b.canvas)
	screen.DrawImage(b.canvas, nil)
	b.drawDebug(screen)
}

// Redraws returns how many times the canvas has been recomposed.
func (b *Board) Redraws() int {
	return b.redraws
}

// compose paints the whole canvas into dst in paint order.
func (b *Board) compose(dst *ebiten.Image) {
	dst.Fill(backgroundColor)
	if b.placeholder {
		ebitenutil.DebugPrintAt(dst, placeholderText, 16, 16)
		return
	}
	for _, it := range b.items {
		b.drawItem(dst, it)
	}
}

func (b *Board) drawItem(dst *ebiten.Image, it *Item) {
	x, y := b.CanvasToScreen(it.X, it.Y)
	w, h := it.Width*b.scale, it.Height*b.scale

	if tex := it.textureImage(); tex != nil {
		tb := tex.Bounds()
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(w/float64(tb.Dx()), h/float64(tb.Dy()))
		op.GeoM.Translate(x, y)
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(tex, &op)
	} else {
		vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), missingFill, false)
		ebitenutil.DebugPrintAt(dst, it.Kind.String()+": "+filepath.Base(it.Source), int(x)+4, int(y+h)-20)
	}

	if !it.selected {
		return
	}
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), selectionStroke, selectionColor, false)
	if b.resizeEnabled {
		for _, c := range [4][2]float64{{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h}} {
			vector.DrawFilledRect(dst,
				float32(c[0]-handleSize/2), float32(c[1]-handleSize/2),
				handleSize, handleSize, selectionColor, false)
		}
	}
	if it.Label != "" {
		ebitenutil.DebugPrintAt(dst, it.Label, int(x)+4, int(y)+4)
	}
}

// textureImage uploads the decoded image on first use.
func (it *Item) textureImage() *ebiten.Image {
	if it.texture == nil && it.img != nil {
		it.texture = ebiten.NewImageFromImage(it.img)
	}
	return it.texture
}
