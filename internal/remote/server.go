// Package remote serves the particle network over a websocket. Each client
// gets its own scene; the browser reports pointer and size changes and
// receives one JSON frame of draw commands per tick.
package remote

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/particlenet/internal/config"
	"github.com/san-kum/particlenet/internal/loop"
	"github.com/san-kum/particlenet/internal/scene"
	"github.com/san-kum/particlenet/internal/surface"
)

const writeWait = 2 * time.Second

// Message is sent by the client.
type Message struct {
	Type string  `json:"type"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
	W    int     `json:"w,omitempty"`
	H    int     `json:"h,omitempty"`
}

// Frame is sent to the client after every tick.
type Frame struct {
	Frame int `json:"frame"`
	Links int `json:"links"`
	*surface.CommandList
}

type Server struct {
	cfg      *config.Config
	upgrader websocket.Upgrader
	sessions atomic.Int64
}

func NewServer(cfg *config.Config) *Server {
	return &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1 << 16,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Sessions reports how many clients are connected.
func (s *Server) Sessions() int { return int(s.sessions.Load()) }

// Handler serves the viewer page on / and the socket on /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(indexHTML))
	})
	mux.Handle("/ws", s)
	return mux
}

// ServeHTTP upgrades the request and runs a session until the client leaves.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		var herr websocket.HandshakeError
		if !errors.As(err, &herr) {
			log.Println(err)
		}
		return
	}
	s.sessions.Add(1)
	defer s.sessions.Add(-1)

	if err := s.session(r.Context(), conn); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("session %s: %v", r.RemoteAddr, err)
	}
}

func (s *Server) session(parent context.Context, conn *websocket.Conn) error {
	defer conn.Close()
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	cl := surface.NewCommandList()
	sched := loop.NewTickerScheduler(s.cfg.FPS)
	sc, err := scene.New(s.cfg, cl, nil, sched)
	if err != nil {
		return err
	}

	var writeErr error
	sc.Loop.AddObserver(loop.ObserverFunc(func(st loop.FrameStats) {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(Frame{Frame: st.Frame, Links: st.Links, CommandList: cl}); err != nil {
			writeErr = err
			cancel()
		}
	}))

	go s.read(conn, sched, sc, cancel)

	sc.Loop.Start()
	err = sched.Run(ctx)
	sc.Loop.Stop()
	if writeErr != nil {
		return writeErr
	}
	return err
}

// read forwards client messages onto the scheduler goroutine.
func (s *Server) read(conn *websocket.Conn, sched *loop.TickerScheduler, sc *scene.Scene, cancel context.CancelFunc) {
	defer cancel()
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("error: %v", err)
			}
			return
		}
		apply, ok := s.handler(msg, sc)
		if !ok {
			log.Printf("ignoring message %q", msg.Type)
			continue
		}
		if !sched.Post(apply) {
			return
		}
	}
}

func (s *Server) handler(msg Message, sc *scene.Scene) (func(), bool) {
	switch msg.Type {
	case "pointer":
		return func() { sc.Tracker.Move(msg.X, msg.Y) }, true
	case "leave":
		r := sc.Field.Params().MouseRadius * 10
		return func() { sc.Tracker.Move(-r, -r) }, true
	case "resize":
		if msg.W <= 0 || msg.H <= 0 {
			return nil, false
		}
		return func() { sc.Manager.OnResize(msg.W, msg.H) }, true
	}
	return nil, false
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	log.Printf("serving particlenet on %s", addr)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}
