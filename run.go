package corkboard

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
}

// Run opens a window and drives b until the window closes. It wires inbound
// window-position events to the real window unless the caller already set
// Bridge.SetWindowPosition.
func Run(b *Board, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1024
	}
	if cfg.Height <= 0 {
		cfg.Height = 768
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if b.bridge.SetWindowPosition == nil {
		b.bridge.SetWindowPosition = ebiten.SetWindowPosition
	}
	return ebiten.RunGame(&game{board: b})
}

// game adapts a Board to ebiten.Game.
type game struct {
	board *Board
}

func (g *game) Update() error {
	return g.board.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.board.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.board.SetViewport(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
