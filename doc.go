// Package corkboard is an infinite pinboard canvas for [Ebitengine]: drop
// images and videos onto a window, then move, resize, reorder and select
// them on a pannable, zoomable surface.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	board := corkboard.NewBoard(corkboard.DefaultOptions())
//	board.DropPaths("photo.png", "clip.mp4")
//	corkboard.Run(board, corkboard.RunConfig{
//		Title: "Corkboard", Width: 1024, Height: 768,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Board.Update], [Board.Draw] and [Board.SetViewport] directly.
//
// # Interaction
//
// A primary-button tap on an item selects it and enables resizing; tapping
// it again deselects it. Dragging an item moves it immediately and brings it
// to the front. Dragging an edge or corner of the selected item resizes it
// with its aspect ratio kept and a minimum size enforced; the constraint
// chain is replaceable with [Board.SetConstraints]. The wheel zooms around
// the cursor and the middle button pans. A secondary-button drag moves the
// window itself; a secondary click asks the host for a context menu.
//
// All geometry is kept in canvas units. Pointer deltas are divided by the
// canvas scale before they touch an item, so items track the pointer at any
// zoom.
//
// # Host bridge
//
// [Bridge] is the only surface a privileged host sees: UpdateScale,
// UpdateTranslate, ToggleResize, and Deliver for inbound clipboard and
// window-position events. Outbound requests (paste, context menu, window
// size, window move) go to a [Host]. [LocalHost] serves them in process;
// package hostlink carries the same traffic over a websocket.
//
// The board is single-threaded: only [Bridge.Deliver] may be called from
// other goroutines. Delivered events are applied on the next Update.
//
// [Ebitengine]: https://ebitengine.org
package corkboard
