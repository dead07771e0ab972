// Package ws exposes the simulation to a rendering collaborator over
// websocket: the server streams body transforms and placement previews as
// JSON and accepts point/select/confirm commands. One goroutine owns the
// session; connection readers forward commands over a channel.
package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"blockstack/internal/camera"
	"blockstack/internal/config"
	"blockstack/internal/game"
	"blockstack/internal/profiling"
	"blockstack/internal/registry"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	viewportWidth  = 1280
	viewportHeight = 720
)

type command struct {
	conn *SafeWriter
	msg  interface{}
}

// Server is the websocket viewer endpoint.
type Server struct {
	cfg      config.Config
	session  *game.Session
	cam      *camera.Camera
	log      *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*SafeWriter]struct{}

	commands chan command
	tick     uint64
}

func NewServer(cfg config.Config, session *game.Session, logger *log.Logger) *Server {
	return &Server{
		cfg:     cfg,
		session: session,
		cam:     camera.New(viewportWidth, viewportHeight),
		log:     logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:  make(map[*SafeWriter]struct{}),
		commands: make(chan command, 64),
	}
}

// ListenAndServe runs the HTTP listener and the simulation loop until the
// context is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	srv := &http.Server{Addr: s.cfg.Viewer.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	go s.run(ctx)

	s.log.Info("viewer listening", "addr", s.cfg.Viewer.Addr)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// run is the single goroutine that touches the session. The session's
// ticker drives the steps; queued commands are applied after each step, so
// every reply observes post-step state.
func (s *Server) run(ctx context.Context) {
	broadcastEvery := time.Duration(s.cfg.Viewer.UpdateIntervalMS) * time.Millisecond
	lastBroadcast := time.Now()

	s.session.Run(ctx, s.cfg.Viewer.TickRate, func() {
		s.drainCommands()
		s.tick++
		if time.Since(lastBroadcast) >= broadcastEvery {
			s.broadcastState()
			lastBroadcast = time.Now()
		}
	})
}

func (s *Server) drainCommands() {
	for {
		select {
		case cmd := <-s.commands:
			s.apply(cmd)
		default:
			return
		}
	}
}

func (s *Server) apply(cmd command) {
	switch msg := cmd.msg.(type) {
	case *PointMessage:
		ray, ok := s.cam.ScreenRay(msg.X, msg.Y)
		if !ok {
			cmd.conn.WriteJSON(hiddenPreview())
			return
		}
		p := s.session.PointAt(ray)
		if p == nil {
			cmd.conn.WriteJSON(hiddenPreview())
			return
		}
		cmd.conn.WriteJSON(&PreviewMessage{
			Type:    MessageTypePreview,
			Visible: true,
			Center:  [3]float32{p.Center.X(), p.Center.Y(), p.Center.Z()},
			Valid:   p.Valid,
			OnBlock: p.Candidate.OnBlock,
		})

	case *SelectMessage:
		if err := s.session.SelectBlock(msg.Block); err != nil {
			cmd.conn.WriteJSON(&RejectedMessage{Type: MessageTypeRejected, Reason: err.Error()})
		}

	case *ConfirmMessage:
		b, err := s.session.Confirm()
		if err != nil {
			cmd.conn.WriteJSON(&RejectedMessage{Type: MessageTypeRejected, Reason: err.Error()})
			return
		}
		s.broadcast(&PlacedMessage{
			Type:   MessageTypePlaced,
			ID:     b.ID,
			Block:  b.BlockType,
			Placed: s.session.Placed(),
			Height: s.session.World().MaxHeight(),
		})

	case *CancelMessage:
		s.session.Cancel()
		cmd.conn.WriteJSON(hiddenPreview())

	case *ResetMessage:
		s.session.Reset()
		s.broadcastState()

	case *PingMessage:
		cmd.conn.WriteJSON(&PongMessage{Type: MessageTypePong, ClientTime: msg.ClientTime})
	}
}

func hiddenPreview() *PreviewMessage {
	return &PreviewMessage{Type: MessageTypePreview}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "err", err)
		return
	}
	writer := NewSafeWriter(conn)

	s.mu.Lock()
	s.clients[writer] = struct{}{}
	s.mu.Unlock()
	s.log.Info("viewer connected", "remote", conn.RemoteAddr())

	if err := writer.WriteJSON(s.welcome()); err != nil {
		s.drop(writer)
		return
	}

	for {
		_, data, err := writer.ReadMessage()
		if err != nil {
			s.drop(writer)
			return
		}
		msg, err := ParseMessage(data)
		if err != nil {
			s.log.Warn("bad message", "err", err)
			writer.WriteJSON(&RejectedMessage{Type: MessageTypeRejected, Reason: err.Error()})
			continue
		}
		s.commands <- command{conn: writer, msg: msg}
	}
}

func (s *Server) welcome() *WelcomeMessage {
	names := registry.Names()
	items := make([]CatalogueItem, 0, len(names))
	for _, name := range names {
		def, _ := registry.Get(name)
		items = append(items, CatalogueItem{
			Name:        def.Name,
			HalfExtents: [3]float32{def.HalfExtents.X(), def.HalfExtents.Y(), def.HalfExtents.Z()},
			Color:       def.Color,
		})
	}
	return &WelcomeMessage{
		Type:       MessageTypeWelcome,
		Blocks:     items,
		GridSize:   s.cfg.Placement.GridSize,
		BuildHalf:  s.cfg.Placement.BuildableHalfExtent,
		GroundHalf: s.cfg.Ground.HalfExtents,
	}
}

func (s *Server) broadcastState() {
	defer profiling.Track("ws.broadcast")()
	s.broadcast(&StateMessage{
		Type:      MessageTypeState,
		Tick:      s.tick,
		MaxHeight: s.session.World().MaxHeight(),
		Bodies:    s.session.World().Snapshot(),
	})
}

func (s *Server) broadcast(v interface{}) {
	s.mu.Lock()
	writers := make([]*SafeWriter, 0, len(s.clients))
	for w := range s.clients {
		writers = append(writers, w)
	}
	s.mu.Unlock()

	for _, w := range writers {
		if err := w.WriteJSON(v); err != nil {
			s.drop(w)
		}
	}
}

func (s *Server) drop(w *SafeWriter) {
	s.mu.Lock()
	_, known := s.clients[w]
	delete(s.clients, w)
	s.mu.Unlock()
	if known {
		w.Close()
		s.log.Info("viewer disconnected")
	}
}
