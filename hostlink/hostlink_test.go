package hostlink

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phanxgames/corkboard"
)

const waitFor = 2 * time.Second

type call struct {
	name   string
	ints   []int
	origin corkboard.Vec2
}

type recordingHost struct {
	calls chan call
}

func newRecordingHost() *recordingHost {
	return &recordingHost{calls: make(chan call, 16)}
}

func (h *recordingHost) Paste()           { h.calls <- call{name: "paste"} }
func (h *recordingHost) ShowContextMenu() { h.calls <- call{name: "menu"} }
func (h *recordingHost) RecordWindowSize(w, ht int) {
	h.calls <- call{name: "size", ints: []int{w, ht}}
}
func (h *recordingHost) MoveWindow(x, y int, origin corkboard.Vec2) {
	h.calls <- call{name: "move", ints: []int{x, y}, origin: origin}
}

func (h *recordingHost) next(t *testing.T) call {
	t.Helper()
	select {
	case c := <-h.calls:
		return c
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for host call")
		return call{}
	}
}

type delivery struct {
	channel string
	payload string
}

type recordingSink struct {
	got chan delivery
}

func newRecordingSink() *recordingSink {
	return &recordingSink{got: make(chan delivery, 16)}
}

func (s *recordingSink) Deliver(channel string, payload []byte) error {
	s.got <- delivery{channel, string(payload)}
	return nil
}

func startLink(t *testing.T) (*Server, *recordingHost, *Client, *recordingSink) {
	t.Helper()
	host := newRecordingHost()
	srv := NewServer(host, nil)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	client, sink := dialLink(t, ts)
	return srv, host, client, sink
}

// dialLink connects a new canvas to ts.
func dialLink(t *testing.T, ts *httptest.Server) (*Client, *recordingSink) {
	t.Helper()
	sink := newRecordingSink()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + Path
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	client, err := Dial(ctx, url, sink, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), waitFor)
		defer cancel()
		_ = client.Close(ctx)
	})
	return client, sink
}

func TestClientRequestsReachHost(t *testing.T) {
	_, host, client, _ := startLink(t)

	client.Paste()
	client.ShowContextMenu()
	client.RecordWindowSize(800, 600)
	client.MoveWindow(900, 500, corkboard.Vec2{X: 30, Y: 12})

	if c := host.next(t); c.name != "paste" {
		t.Fatalf("call 0 = %+v, want paste", c)
	}
	if c := host.next(t); c.name != "menu" {
		t.Fatalf("call 1 = %+v, want menu", c)
	}
	if c := host.next(t); c.name != "size" || c.ints[0] != 800 || c.ints[1] != 600 {
		t.Fatalf("call 2 = %+v, want size 800x600", c)
	}
	c := host.next(t)
	if c.name != "move" || c.ints[0] != 900 || c.ints[1] != 500 || c.origin != (corkboard.Vec2{X: 30, Y: 12}) {
		t.Fatalf("call 3 = %+v, want move", c)
	}
}

func TestServerEventsReachSink(t *testing.T) {
	srv, host, client, sink := startLink(t)

	// The peer is registered once the server has read a request from it.
	client.Paste()
	host.next(t)

	payload := `{"type":"filePath","filePath":"/tmp/a.png"}`
	if err := srv.Deliver(corkboard.ChannelClipboard, []byte(payload)); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	select {
	case d := <-sink.got:
		if d.channel != corkboard.ChannelClipboard || d.payload != payload {
			t.Fatalf("sink got %+v", d)
		}
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for event")
	}
}

func TestServerDeliverWithoutPeers(t *testing.T) {
	srv := NewServer(nil, nil)
	if err := srv.Deliver(corkboard.ChannelClipboard, []byte("{}")); !errors.Is(err, ErrNoPeers) {
		t.Fatalf("Deliver err = %v, want ErrNoPeers", err)
	}
}

func TestDispatchRejects(t *testing.T) {
	srv := NewServer(newRecordingHost(), nil)
	tests := []struct {
		name string
		env  Envelope
		want error
	}{
		{"unknown channel", Envelope{Channel: "open-devtools"}, corkboard.ErrUnknownChannel},
		{"missing size args", Envelope{Channel: corkboard.ChannelWindowSize, Args: []json.RawMessage{json.RawMessage("800")}}, nil},
		{"bad move origin", Envelope{Channel: corkboard.ChannelMoveWindow, Args: []json.RawMessage{
			json.RawMessage("1"), json.RawMessage("2"), json.RawMessage(`"nope"`),
		}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := srv.dispatch(nil, tt.env)
			if err == nil {
				t.Fatal("dispatch succeeded")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEnvelopeDecode(t *testing.T) {
	env, err := NewEnvelope(corkboard.ChannelMoveWindow, 10, 20, corkboard.Vec2{X: 1.5, Y: 2})
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	var x, y int
	var origin corkboard.Vec2
	if err := env.Decode(&x, &y, &origin); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if x != 10 || y != 20 || origin != (corkboard.Vec2{X: 1.5, Y: 2}) {
		t.Fatalf("decoded %d %d %+v", x, y, origin)
	}

	ev, err := eventEnvelope(corkboard.ChannelClipboard, []byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("eventEnvelope: %v", err)
	}
	p, err := eventPayload(ev)
	if err != nil || string(p) != `{"a":1}` {
		t.Fatalf("eventPayload = %q, %v", p, err)
	}
}

func TestClientCloseStopsLoops(t *testing.T) {
	_, _, client, _ := startLink(t)
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	if err := client.Close(ctx); err != nil && !strings.Contains(err.Error(), "closed") {
		t.Fatalf("Close: %v", err)
	}
	select {
	case <-client.Done():
	default:
		t.Fatal("Done not closed after Close")
	}
	// Sends after close are dropped without blocking.
	client.Paste()
}

func TestWindowMoveAnswersRequester(t *testing.T) {
	srv := NewServer(nil, nil)
	srv.SetHost(corkboard.NewLocalHost(srv, nil))
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	mover, moverSink := dialLink(t, ts)
	_, otherSink := dialLink(t, ts)
	deadline := time.Now().Add(waitFor)
	for srv.Peers() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("peers = %d, want 2", srv.Peers())
		}
		time.Sleep(5 * time.Millisecond)
	}

	mover.MoveWindow(900, 500, corkboard.Vec2{X: 30, Y: 12})
	select {
	case d := <-moverSink.got:
		var pos corkboard.Vec2
		if err := json.Unmarshal([]byte(d.payload), &pos); err != nil {
			t.Fatal(err)
		}
		if d.channel != corkboard.ChannelWindowPos || pos != (corkboard.Vec2{X: 870, Y: 488}) {
			t.Fatalf("mover got %+v", d)
		}
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for window position")
	}

	// Broadcasts still reach both; the first thing the other canvas sees
	// must be the clipboard event, not the window move.
	payload := `{"type":"filePath","filePath":"/tmp/a.png"}`
	if err := srv.Deliver(corkboard.ChannelClipboard, []byte(payload)); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	select {
	case d := <-otherSink.got:
		if d.channel != corkboard.ChannelClipboard {
			t.Fatalf("other canvas got %+v, want only the clipboard event", d)
		}
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for clipboard event")
	}
}
