package corkboard

import "io/fs"

type syntheticKind uint8

const (
	syntheticPointer syntheticKind = iota
	syntheticWheel
	syntheticPaste
	syntheticDrop
)

// syntheticEvent is a single injected input event. Injected pointer events
// use window-local coordinates; the window is taken to sit at the desktop
// origin, so screen coordinates equal local ones.
type syntheticEvent struct {
	kind    syntheticKind
	pointer pointerSample
	wheel   float64
	files   fs.FS
}

// InjectPress queues a press of button at (x, y). The event is consumed on
// the next Update.
func (b *Board) InjectPress(x, y float64, button MouseButton) {
	b.injectQueue = append(b.injectQueue, syntheticEvent{
		kind:    syntheticPointer,
		pointer: pointerSample{x: x, y: y, screenX: x, screenY: y, pressed: true, button: button},
	})
}

// InjectMove queues a move to (x, y) with the most recently injected button
// held down. Use it between InjectPress and InjectRelease to simulate a drag.
func (b *Board) InjectMove(x, y float64) {
	b.injectQueue = append(b.injectQueue, syntheticEvent{
		kind:    syntheticPointer,
		pointer: pointerSample{x: x, y: y, screenX: x, screenY: y, pressed: true, button: b.lastInjectedButton()},
	})
}

// InjectRelease queues a release at (x, y).
func (b *Board) InjectRelease(x, y float64) {
	b.injectQueue = append(b.injectQueue, syntheticEvent{
		kind:    syntheticPointer,
		pointer: pointerSample{x: x, y: y, screenX: x, screenY: y, button: b.lastInjectedButton()},
	})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two updates.
func (b *Board) InjectClick(x, y float64, button MouseButton) {
	b.InjectPress(x, y, button)
	b.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves and a release at (toX, toY), which carries the final
// move. Minimum frames is 2.
func (b *Board) InjectDrag(fromX, fromY, toX, toY float64, frames int, button MouseButton) {
	if frames < 2 {
		frames = 2
	}
	b.InjectPress(fromX, fromY, button)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		b.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	b.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel turn of notches at (x, y). Positive zooms in.
func (b *Board) InjectWheel(x, y, notches float64) {
	b.injectQueue = append(b.injectQueue, syntheticEvent{
		kind:    syntheticWheel,
		pointer: pointerSample{x: x, y: y, screenX: x, screenY: y},
		wheel:   notches,
	})
}

// InjectPaste queues a Ctrl+V.
func (b *Board) InjectPaste() {
	b.injectQueue = append(b.injectQueue, syntheticEvent{kind: syntheticPaste})
}

// InjectDrop queues a file drop of every file at the root of fsys.
func (b *Board) InjectDrop(fsys fs.FS) {
	b.injectQueue = append(b.injectQueue, syntheticEvent{kind: syntheticDrop, files: fsys})
}

// Pending returns the number of injected events not yet consumed.
func (b *Board) Pending() int {
	return len(b.injectQueue)
}

func (b *Board) lastInjectedButton() MouseButton {
	for i := len(b.injectQueue) - 1; i >= 0; i-- {
		if b.injectQueue[i].kind == syntheticPointer {
			return b.injectQueue[i].pointer.button
		}
	}
	return b.gesture.button
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same paths as platform input. Returns true if an event was
// consumed, in which case platform input is skipped this frame.
func (b *Board) processInjectedInput(dt float32) bool {
	if len(b.injectQueue) == 0 {
		return false
	}
	evt := b.injectQueue[0]
	copy(b.injectQueue, b.injectQueue[1:])
	b.injectQueue[len(b.injectQueue)-1] = syntheticEvent{}
	b.injectQueue = b.injectQueue[:len(b.injectQueue)-1]

	switch evt.kind {
	case syntheticPointer:
		b.processPointer(evt.pointer, dt)
	case syntheticWheel:
		b.zoomAt(evt.pointer.x, evt.pointer.y, evt.wheel)
	case syntheticPaste:
		b.host.Paste()
	case syntheticDrop:
		b.Drop(evt.files)
	}
	return true
}
