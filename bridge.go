package corkboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Bridge channel names. Outbound requests go from the canvas to the host;
// inbound events go from the host to the canvas.
const (
	ChannelPaste       = "handle-paste"         // outbound, no args
	ChannelContextMenu = "show-context-menu"    // outbound, no args
	ChannelWindowSize  = "record-window-size"   // outbound, width and height
	ChannelMoveWindow  = "move-electron-window" // outbound, screen x, screen y, press origin
	ChannelClipboard   = "clipboard"            // inbound, ClipboardPayload JSON
	ChannelWindowPos   = "window-position"      // inbound, Vec2 JSON of the new window origin
)

// Clipboard payload type tags.
const (
	ClipboardFilePath = "filePath"
	ClipboardDataURL  = "dataURL"
)

var (
	// ErrInvalidScale is returned by UpdateScale for non-positive scales.
	ErrInvalidScale = errors.New("corkboard: scale must be positive")
	// ErrClipboardPayload is returned for clipboard messages that cannot be
	// decoded or carry an unknown type.
	ErrClipboardPayload = errors.New("corkboard: invalid clipboard payload")
	// ErrUnknownChannel is returned when an inbound message names a channel
	// the canvas does not handle.
	ErrUnknownChannel = errors.New("corkboard: unknown bridge channel")
)

// Host is the privileged side of the bridge. Every call is a fire-and-forget
// request; implementations must not block the update goroutine.
type Host interface {
	Paste()
	ShowContextMenu()
	RecordWindowSize(width, height int)
	MoveWindow(screenX, screenY int, origin Vec2)
}

// Deliverer accepts inbound bridge events. Bridge implements it on the canvas
// side; hostlink.Server implements it to push events to remote canvases.
type Deliverer interface {
	Deliver(channel string, payload []byte) error
}

// NopHost drops every request.
type NopHost struct{}

func (NopHost) Paste() {}
func (NopHost) ShowContextMenu() {}
func (NopHost) RecordWindowSize(width, height int) {}
func (NopHost) MoveWindow(screenX, screenY int, origin Vec2) {}

// ClipboardPayload is the JSON carried by the clipboard channel.
type ClipboardPayload struct {
	Type     string `json:"type"`
	FilePath string `json:"filePath,omitempty"`
	DataURL  string `json:"dataURL,omitempty"`
}

// Source returns the item source named by the payload's type tag.
func (p ClipboardPayload) Source() (string, error) {
	var src string
	switch p.Type {
	case ClipboardFilePath:
		src = p.FilePath
	case ClipboardDataURL:
		src = p.DataURL
	default:
		return "", fmt.Errorf("%w: type %q", ErrClipboardPayload, p.Type)
	}
	if src == "" {
		return "", fmt.Errorf("%w: empty %s", ErrClipboardPayload, p.Type)
	}
	return src, nil
}

// ParseClipboard decodes a clipboard channel message.
func ParseClipboard(msg []byte) (ClipboardPayload, error) {
	var p ClipboardPayload
	if err := json.Unmarshal(msg, &p); err != nil {
		return ClipboardPayload{}, fmt.Errorf("%w: %w", ErrClipboardPayload, err)
	}
	if _, err := p.Source(); err != nil {
		return ClipboardPayload{}, err
	}
	return p, nil
}

// inboundMessage is a decoded inbound event waiting for the update goroutine.
type inboundMessage struct {
	channel   string
	clipboard ClipboardPayload
	windowPos Vec2
}

// Bridge is the restricted API the canvas exposes to the host: exactly
// UpdateScale, UpdateTranslate and ToggleResize, plus Deliver for inbound
// events.
type Bridge struct {
	board *Board

	// SetWindowPosition applies inbound window-position events. Nil leaves
	// the window where it is.
	SetWindowPosition func(x, y int)

	mu    sync.Mutex
	inbox []inboundMessage
}

func newBridge(b *Board) *Bridge {
	return &Bridge{board: b}
}

// UpdateScale overwrites the canvas zoom factor.
func (br *Bridge) UpdateScale(scale float64) error {
	if !(scale > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}
	br.board.scale = scale
	br.board.Invalidate()
	return nil
}

// UpdateTranslate overwrites the canvas pan offset.
func (br *Bridge) UpdateTranslate(t Vec2) {
	br.board.translate = t
	br.board.Invalidate()
}

// ToggleResize delegates to the board's resize toggle.
func (br *Bridge) ToggleResize(enabled bool) {
	br.board.ToggleResize(enabled)
}

// Deliver decodes an inbound event and queues it for the next Update. It is
// safe to call from any goroutine. Decoding errors are returned and nothing
// is queued.
func (br *Bridge) Deliver(channel string, payload []byte) error {
	msg := inboundMessage{channel: channel}
	switch channel {
	case ChannelClipboard:
		p, err := ParseClipboard(payload)
		if err != nil {
			return err
		}
		msg.clipboard = p
	case ChannelWindowPos:
		if err := json.Unmarshal(payload, &msg.windowPos); err != nil {
			return fmt.Errorf("decode %s: %w", channel, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
	}
	br.mu.Lock()
	br.inbox = append(br.inbox, msg)
	br.mu.Unlock()
	return nil
}

// drain applies queued inbound events in arrival order. Called from
// Board.update.
func (br *Bridge) drain() {
	br.mu.Lock()
	msgs := br.inbox
	br.inbox = nil
	br.mu.Unlock()

	for _, m := range msgs {
		switch m.channel {
		case ChannelClipboard:
			src, _ := m.clipboard.Source()
			br.board.AddItem(src)
		case ChannelWindowPos:
			if br.SetWindowPosition != nil {
				br.SetWindowPosition(int(m.windowPos.X), int(m.windowPos.Y))
			}
		}
	}
}
