package corkboard

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// SetDebugMode enables or disables the debug overlay. When enabled, Draw
// prints the canvas transform, gesture state and redraw count on top of the
// canvas every frame.
func (b *Board) SetDebugMode(enabled bool) {
	b.debug = enabled
}

// debugLine summarizes the interaction state for the overlay.
func (b *Board) debugLine() string {
	sel := "none"
	if b.selected != nil {
		sel = fmt.Sprintf("#%d", b.selected.index)
	}
	return fmt.Sprintf("scale %.2f | pan %.0f,%.0f | items %d | selected %s | resize %t | gesture %s | redraws %d",
		b.scale, b.translate.X, b.translate.Y, len(b.items), sel, b.ResizeEnabled(), b.gesture.state, b.redraws)
}

// drawDebug prints the overlay in the bottom-left corner of screen.
func (b *Board) drawDebug(screen *ebiten.Image) {
	if !b.debug {
		return
	}
	fps := fmt.Sprintf("FPS %.1f | TPS %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	ebitenutil.DebugPrintAt(screen, fps, 8, screen.Bounds().Dy()-36)
	ebitenutil.DebugPrintAt(screen, b.debugLine(), 8, screen.Bounds().Dy()-20)
}
