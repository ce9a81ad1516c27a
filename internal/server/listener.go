// Package server accepts panel connections and hands each one to its own
// session goroutine.
package server

import (
	"context"
	"errors"
	"log"
	"net"
	"sync"
	"time"

	"github.com/keypanel/probe/internal/session"
)

const maxAcceptDelay = time.Second

// Listener binds a TCP address and runs one session per accepted
// connection. It keeps no per-connection state.
type Listener struct {
	addr     string
	reporter session.Reporter
	logger   *log.Logger

	ready     chan struct{}
	readyOnce sync.Once
	bound     net.Addr
}

func NewListener(addr string, r session.Reporter) *Listener {
	return &Listener{
		addr:     addr,
		reporter: r,
		logger:   log.Default(),
		ready:    make(chan struct{}),
	}
}

// SetLogger redirects the listener's own notices. It must be called before
// Serve.
func (l *Listener) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	l.logger = logger
}

// Ready is closed once the listener is bound and its readiness notice is
// logged. Later calls to Serve leave it closed.
func (l *Listener) Ready() <-chan struct{} {
	return l.ready
}

// Addr returns the address bound by the first Serve. It is nil until Ready
// is closed.
func (l *Listener) Addr() net.Addr {
	return l.bound
}

// ListenAndServe binds the configured address and serves until ctx ends.
func (l *Listener) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return err
	}
	return l.Serve(ctx, ln)
}

// Serve accepts on ln until ctx is done, which closes ln and returns nil.
// Running sessions are left alone; they end when their client does.
func (l *Listener) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	l.logger.Printf("Listening on %s", ln.Addr())
	l.readyOnce.Do(func() {
		l.bound = ln.Addr()
		close(l.ready)
	})

	var delay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			// Back off on errors such as EMFILE instead of spinning.
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else {
				delay = min(delay*2, maxAcceptDelay)
			}
			l.logger.Printf("accept error: %v (retry in %v)", err, delay)
			time.Sleep(delay)
			continue
		}
		delay = 0

		s := session.New(conn, conn.RemoteAddr().String(), l.reporter)
		go s.Run()
	}
}
