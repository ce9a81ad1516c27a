package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/keypanel/probe/internal/session"
)

// WSHandler upgrades HTTP requests to WebSocket and runs a panel session
// over each connection. Event bytes travel in binary frames; the greeting
// is sent as a single binary frame.
type WSHandler struct {
	reporter session.Reporter
	upgrader websocket.Upgrader
}

func NewWSHandler(r session.Reporter) *WSHandler {
	h := &WSHandler{reporter: r}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  64,
		WriteBufferSize: 64,
		CheckOrigin:     checkOrigin,
	}
	return h
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	// The HTTP server already runs each request on its own goroutine.
	session.New(&wsStream{conn: conn}, "ws:"+r.RemoteAddr, h.reporter).Run()
}

// checkOrigin accepts non-browser clients and pages served from loopback.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	if parsed.Host == r.Host {
		return true
	}
	host := parsed.Hostname()
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(strings.Trim(host, "[]"))
	return ip != nil && ip.IsLoopback()
}

// wsStream presents a WebSocket connection as a byte stream. Reads run
// across frame boundaries; every Write is one binary frame.
type wsStream struct {
	conn *websocket.Conn
	cur  io.Reader
}

func (s *wsStream) Read(p []byte) (int, error) {
	for {
		if s.cur == nil {
			mt, r, err := s.conn.NextReader()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
					return 0, io.EOF
				}
				return 0, err
			}
			if mt != websocket.BinaryMessage && mt != websocket.TextMessage {
				continue
			}
			s.cur = r
		}

		n, err := s.cur.Read(p)
		if errors.Is(err, io.EOF) {
			s.cur = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (s *wsStream) Write(p []byte) (int, error) {
	if err := s.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *wsStream) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return s.conn.Close()
}

// ListenAndServeWS serves h at path on addr until ctx ends.
func ListenAndServeWS(ctx context.Context, addr, path string, h http.Handler) error {
	mux := http.NewServeMux()
	mux.Handle(path, h)

	srv := &http.Server{Addr: addr, Handler: mux}
	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	})
	defer stop()

	log.Printf("WebSocket listening on ws://%s%s", addr, path)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
