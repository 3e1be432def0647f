package corkboard

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
)

func TestUpdateScale(t *testing.T) {
	tests := []struct {
		scale   float64
		wantErr bool
	}{
		{2, false},
		{0.5, false},
		{0, true},
		{-1, true},
		{math.NaN(), true},
	}
	for _, tt := range tests {
		b, _ := newTestBoard(t, quietOptions(), nil)
		err := b.Bridge().UpdateScale(tt.scale)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidScale) {
				t.Errorf("UpdateScale(%v) err = %v, want ErrInvalidScale", tt.scale, err)
			}
			if b.Scale() != 1 {
				t.Errorf("UpdateScale(%v) changed scale to %v", tt.scale, b.Scale())
			}
			continue
		}
		if err != nil || b.Scale() != tt.scale {
			t.Errorf("UpdateScale(%v) = %v, scale %v", tt.scale, err, b.Scale())
		}
	}
}

func TestBridgeToggleResize(t *testing.T) {
	b, _ := newTestBoard(t, quietOptions(), nil)
	b.Select(b.AddItem("a.png"), false)
	b.Bridge().ToggleResize(false)
	if b.ResizeEnabled() {
		t.Fatal("bridge ToggleResize(false) ignored")
	}
	b.Bridge().ToggleResize(true)
	if !b.ResizeEnabled() {
		t.Fatal("bridge ToggleResize(true) ignored")
	}
}

func TestDeliverClipboard(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		source   string
		wantKind ItemKind
	}{
		{"file path", `{"type":"filePath","filePath":"/pics/a.png"}`, "/pics/a.png", KindImage},
		{"video path", `{"type":"filePath","filePath":"/clips/b.mp4"}`, "/clips/b.mp4", KindVideo},
		{"data URL", `{"type":"dataURL","dataURL":"data:image/png;base64,AAAA"}`, "data:image/png;base64,AAAA", KindImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBoard(t, quietOptions(), nil)
			if err := b.Bridge().Deliver(ChannelClipboard, []byte(tt.payload)); err != nil {
				t.Fatalf("Deliver: %v", err)
			}
			if b.Len() != 0 {
				t.Fatal("delivery applied before Update")
			}
			b.update(testDT)
			if b.Len() != 1 {
				t.Fatalf("items = %d, want 1", b.Len())
			}
			it := b.ItemAt(0)
			if it.Source != tt.source || it.Kind != tt.wantKind {
				t.Fatalf("item = %s (%v), want %s (%v)", it.Source, it.Kind, tt.source, tt.wantKind)
			}
			if b.Initialized() {
				t.Error("paste should not initialize the board")
			}
		})
	}
}

func TestDeliverRejects(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		payload string
		want    error
	}{
		{"malformed JSON", ChannelClipboard, `{"type":`, ErrClipboardPayload},
		{"unknown type", ChannelClipboard, `{"type":"html","filePath":"/a.png"}`, ErrClipboardPayload},
		{"empty path", ChannelClipboard, `{"type":"filePath"}`, ErrClipboardPayload},
		{"wrong field for type", ChannelClipboard, `{"type":"dataURL","filePath":"/a.png"}`, ErrClipboardPayload},
		{"unknown channel", "open-devtools", `{}`, ErrUnknownChannel},
		{"outbound channel", ChannelPaste, ``, ErrUnknownChannel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBoard(t, quietOptions(), nil)
			err := b.Bridge().Deliver(tt.channel, []byte(tt.payload))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Deliver err = %v, want %v", err, tt.want)
			}
			b.update(testDT)
			if b.Len() != 0 {
				t.Fatal("rejected delivery added an item")
			}
		})
	}
}

func TestDeliverWindowPosition(t *testing.T) {
	b, _ := newTestBoard(t, quietOptions(), nil)
	if err := b.Bridge().Deliver(ChannelWindowPos, []byte(`{"x":1}`)); err != nil {
		t.Fatalf("Deliver without SetWindowPosition: %v", err)
	}
	b.update(testDT)

	var got []Vec2
	b.Bridge().SetWindowPosition = func(x, y int) { got = append(got, Vec2{X: float64(x), Y: float64(y)}) }
	if err := b.Bridge().Deliver(ChannelWindowPos, []byte(`{"x":120,"y":-40}`)); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if err := b.Bridge().Deliver(ChannelWindowPos, []byte(`not json`)); err == nil {
		t.Fatal("malformed window position accepted")
	}
	b.update(testDT)
	if len(got) != 1 || got[0] != (Vec2{X: 120, Y: -40}) {
		t.Fatalf("SetWindowPosition calls = %v", got)
	}
}

func TestDeliverKeepsOrder(t *testing.T) {
	b, _ := newTestBoard(t, quietOptions(), nil)
	for _, p := range []string{"a.png", "b.mp4", "c.png"} {
		msg := fmt.Sprintf(`{"type":"filePath","filePath":%q}`, p)
		if err := b.Bridge().Deliver(ChannelClipboard, []byte(msg)); err != nil {
			t.Fatal(err)
		}
	}
	b.update(testDT)
	for i, want := range []string{"a.png", "b.mp4", "c.png"} {
		if got := b.ItemAt(i).Source; got != want {
			t.Errorf("item %d = %s, want %s", i, got, want)
		}
	}
}

func TestDeliverConcurrent(t *testing.T) {
	b, _ := newTestBoard(t, quietOptions(), nil)
	const senders, each = 8, 5
	var wg sync.WaitGroup
	for s := 0; s < senders; s++ {
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			for i := 0; i < each; i++ {
				msg := fmt.Sprintf(`{"type":"filePath","filePath":"/s%d/%d.png"}`, s, i)
				if err := b.Bridge().Deliver(ChannelClipboard, []byte(msg)); err != nil {
					t.Error(err)
				}
			}
		}(s)
	}
	wg.Wait()
	b.update(testDT)
	if b.Len() != senders*each {
		t.Fatalf("items = %d, want %d", b.Len(), senders*each)
	}
	checkContiguous(t, b)
}
