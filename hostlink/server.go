package hostlink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/phanxgames/corkboard"
)

const writeWait = 5 * time.Second

// ErrNoPeers is returned by Server.Deliver when no canvas is connected.
var ErrNoPeers = errors.New("hostlink: no connected canvas")

// peer is one connected canvas. gorilla/websocket allows one concurrent
// writer per connection.
type peer struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (p *peer) write(env Envelope) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteJSON(env)
}

// Deliver sends an event to this canvas only.
func (p *peer) Deliver(channel string, payload []byte) error {
	env, err := eventEnvelope(channel, payload)
	if err != nil {
		return err
	}
	return p.write(env)
}

// windowReplier is a Host that can answer a window move to the canvas that
// asked for it. corkboard.LocalHost implements it.
type windowReplier interface {
	MoveWindowTo(reply corkboard.Deliverer, screenX, screenY int, origin corkboard.Vec2)
}

// Server is the host side of the link. It dispatches canvas requests to a
// corkboard.Host and implements corkboard.Deliverer by pushing events to
// every connected canvas.
type Server struct {
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	host  corkboard.Host
	peers map[*peer]struct{}
	srv   *http.Server
}

// NewServer creates a server dispatching to host. A nil host drops requests
// until SetHost is called.
func NewServer(host corkboard.Host, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if host == nil {
		host = corkboard.NopHost{}
	}
	return &Server{
		log:   log,
		host:  host,
		peers: make(map[*peer]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// SetHost replaces the request handler. Hosts that answer through the
// server itself are created after it, hence the setter.
func (s *Server) SetHost(h corkboard.Host) {
	if h == nil {
		h = corkboard.NopHost{}
	}
	s.mu.Lock()
	s.host = h
	s.mu.Unlock()
}

// ServeHTTP upgrades the request and serves one canvas until it disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		s.log.Warn("bridge upgrade", "remote", r.RemoteAddr, "err", err)
		return
	}
	p := &peer{conn: conn}
	s.mu.Lock()
	s.peers[p] = struct{}{}
	s.mu.Unlock()
	s.log.Info("canvas connected", "remote", r.RemoteAddr)

	defer func() {
		s.mu.Lock()
		delete(s.peers, p)
		s.mu.Unlock()
		_ = conn.Close()
		s.log.Info("canvas disconnected", "remote", r.RemoteAddr)
	}()

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("bridge read", "remote", r.RemoteAddr, "err", err)
			}
			return
		}
		if err := s.dispatch(p, env); err != nil {
			s.log.Warn("bridge request", "channel", env.Channel, "err", err)
		}
	}
}

// dispatch routes one canvas request to the host. Window moves are answered
// to the requesting canvas only.
func (s *Server) dispatch(from *peer, env Envelope) error {
	s.mu.Lock()
	h := s.host
	s.mu.Unlock()

	switch env.Channel {
	case corkboard.ChannelPaste:
		h.Paste()
	case corkboard.ChannelContextMenu:
		h.ShowContextMenu()
	case corkboard.ChannelWindowSize:
		var w, ht int
		if err := env.Decode(&w, &ht); err != nil {
			return err
		}
		h.RecordWindowSize(w, ht)
	case corkboard.ChannelMoveWindow:
		var x, y int
		var origin corkboard.Vec2
		if err := env.Decode(&x, &y, &origin); err != nil {
			return err
		}
		if r, ok := h.(windowReplier); ok && from != nil {
			r.MoveWindowTo(from, x, y, origin)
			return nil
		}
		h.MoveWindow(x, y, origin)
	default:
		return fmt.Errorf("%w: %q", corkboard.ErrUnknownChannel, env.Channel)
	}
	return nil
}

// Deliver pushes an event to every connected canvas. Replies to one canvas
// go through dispatch instead.
func (s *Server) Deliver(channel string, payload []byte) error {
	env, err := eventEnvelope(channel, payload)
	if err != nil {
		return err
	}
	s.mu.Lock()
	peers := make([]*peer, 0, len(s.peers))
	for p := range s.peers {
		peers = append(peers, p)
	}
	s.mu.Unlock()

	if len(peers) == 0 {
		return ErrNoPeers
	}
	var errs []error
	for _, p := range peers {
		if err := p.write(env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Peers returns the number of connected canvases.
func (s *Server) Peers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.peers)
}

// ListenAndServe serves the bridge on addr until Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle(Path, s)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	s.log.Info("bridge listening", "addr", addr, "path", Path)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve bridge: %w", err)
	}
	return nil
}

// Shutdown stops accepting canvases and closes the connected ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	peers := make([]*peer, 0, len(s.peers))
	for p := range s.peers {
		peers = append(peers, p)
	}
	s.mu.Unlock()

	closeMsg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "host shutting down")
	for _, p := range peers {
		_ = p.conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(writeWait))
		_ = p.conn.Close()
	}
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
