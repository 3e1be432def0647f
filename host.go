package corkboard

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
)

// LocalHost is a Host that serves the bridge from the host side. Paste reads
// the system clipboard; MoveWindow computes the new window origin. Both
// answer through the Deliverer, which is either the canvas's own Bridge (same
// process) or a hostlink.Server (separate process).
type LocalHost struct {
	sink Deliverer
	log  *slog.Logger

	// ReadClipboard returns the clipboard text. Defaults to the system
	// clipboard.
	ReadClipboard func() (string, error)
	// OnContextMenu is called for every context-menu request.
	OnContextMenu func()

	reads sync.WaitGroup

	mu          sync.Mutex
	windowW     int
	windowH     int
	sizeReports int
}

// NewLocalHost creates a host answering through sink.
func NewLocalHost(sink Deliverer, log *slog.Logger) *LocalHost {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LocalHost{sink: sink, log: log, ReadClipboard: clipboard.ReadAll}
}

// Paste reads the clipboard in the background and, when it holds a data URL
// or the path of an existing file, delivers a clipboard event.
func (h *LocalHost) Paste() {
	h.reads.Add(1)
	go func() {
		defer h.reads.Done()
		h.paste()
	}()
}

// Wait blocks until every clipboard read started by Paste has finished.
func (h *LocalHost) Wait() {
	h.reads.Wait()
}

func (h *LocalHost) paste() {
	text, err := h.ReadClipboard()
	if err != nil {
		h.log.Warn("read clipboard", "err", err)
		return
	}
	p, ok := ClassifyClipboard(text)
	if !ok {
		h.log.Debug("clipboard holds no pasteable item")
		return
	}
	msg, err := json.Marshal(p)
	if err != nil {
		h.log.Error("encode clipboard payload", "err", err)
		return
	}
	if err := h.sink.Deliver(ChannelClipboard, msg); err != nil {
		h.log.Warn("deliver clipboard", "err", err)
	}
}

// ShowContextMenu calls OnContextMenu. Building the menu itself is left to
// the embedding application.
func (h *LocalHost) ShowContextMenu() {
	h.log.Debug("context menu requested")
	if h.OnContextMenu != nil {
		h.OnContextMenu()
	}
}

// RecordWindowSize stores the last reported window size.
func (h *LocalHost) RecordWindowSize(width, height int) {
	h.mu.Lock()
	h.windowW, h.windowH = width, height
	h.sizeReports++
	h.mu.Unlock()
}

// WindowSize returns the last reported window size and how many reports
// have arrived.
func (h *LocalHost) WindowSize() (width, height, reports int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.windowW, h.windowH, h.sizeReports
}

// MoveWindow places the window so that the point grabbed at press time stays
// under the cursor.
func (h *LocalHost) MoveWindow(screenX, screenY int, origin Vec2) {
	h.MoveWindowTo(h.sink, screenX, screenY, origin)
}

// MoveWindowTo is MoveWindow answering through reply instead of the host's
// sink, for hosts serving several canvases.
func (h *LocalHost) MoveWindowTo(reply Deliverer, screenX, screenY int, origin Vec2) {
	pos := Vec2{X: float64(screenX) - origin.X, Y: float64(screenY) - origin.Y}
	msg, err := json.Marshal(pos)
	if err != nil {
		h.log.Error("encode window position", "err", err)
		return
	}
	if err := reply.Deliver(ChannelWindowPos, msg); err != nil {
		h.log.Warn("deliver window position", "err", err)
	}
}

// ClassifyClipboard turns clipboard text into a payload. Data URLs become
// dataURL payloads; paths (or file:// URLs) of existing files become
// filePath payloads. Anything else is not pasteable.
func ClassifyClipboard(text string) (ClipboardPayload, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ClipboardPayload{}, false
	}
	if strings.HasPrefix(text, "data:") {
		return ClipboardPayload{Type: ClipboardDataURL, DataURL: text}, true
	}
	// Multi-line selections from file managers carry one path per line.
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}
	path := text
	if u, err := url.Parse(text); err == nil && u.Scheme == "file" {
		path = u.Path
	}
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		return ClipboardPayload{Type: ClipboardFilePath, FilePath: path}, true
	}
	return ClipboardPayload{}, false
}
