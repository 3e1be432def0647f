package corkboard

import "testing"

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"invalid JSON", `{"steps": [`},
		{"no steps", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "tap"}]}`},
		{"unknown button", `{"steps": [{"action": "click", "button": "back"}]}`},
	}
	for _, tt := range tests {
		if _, err := LoadScript([]byte(tt.json)); err == nil {
			t.Errorf("%s: LoadScript succeeded", tt.name)
		}
	}
}

// runScript attaches src and updates until it has finished.
func runScript(t *testing.T, b *Board, src string) {
	t.Helper()
	r, err := LoadScript([]byte(src))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	b.SetScript(r)
	for i := 0; !r.Done(); i++ {
		if i > 200 {
			t.Fatal("script did not finish")
		}
		b.update(testDT)
	}
	flush(t, b)
}

func TestScriptDropAndClick(t *testing.T) {
	b, _ := newTestBoard(t, quietOptions(), nil)
	runScript(t, b, `{"steps": [
		{"action": "drop", "paths": ["a.png", "b.png"]},
		{"action": "click", "x": 50, "y": 50},
		{"action": "wait", "frames": 2}
	]}`)

	if b.Len() != 2 || !b.Initialized() {
		t.Fatalf("items = %d, initialized %v", b.Len(), b.Initialized())
	}
	sel := b.Selected()
	if sel == nil || sel.Source != "b.png" {
		t.Fatalf("selected = %v, want the topmost item b.png", sel)
	}
}

func TestScriptDragAndWheel(t *testing.T) {
	b, _ := newTestBoard(t, quietOptions(), nil)
	runScript(t, b, `{"steps": [
		{"action": "drop", "paths": ["a.png"]},
		{"action": "drag", "fromX": 50, "fromY": 50, "toX": 150, "toY": 100, "frames": 4},
		{"action": "wheel", "x": 0, "y": 0, "notches": 1}
	]}`)

	it := b.ItemAt(0)
	if !approx(it.X, 100) || !approx(it.Y, 50) {
		t.Fatalf("item at (%v, %v), want (100, 50)", it.X, it.Y)
	}
	if !approx(b.Scale(), 1.1) {
		t.Fatalf("Scale() = %v, want 1.1", b.Scale())
	}
}

func TestScriptContextMenu(t *testing.T) {
	b, h := newTestBoard(t, quietOptions(), nil)
	runScript(t, b, `{"steps": [
		{"action": "click", "button": "right", "x": 10, "y": 10},
		{"action": "paste"}
	]}`)
	if h.count(ChannelContextMenu) != 1 || h.count(ChannelPaste) != 1 {
		t.Fatalf("host calls = %+v", h.calls)
	}
}
