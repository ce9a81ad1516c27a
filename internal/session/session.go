// Package session runs the endpoint side of the panel protocol for a single
// connection: greet, then decode inbound bytes until the client goes away.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/keypanel/probe/internal/protocol"
)

type flusher interface {
	Flush() error
}

// Session owns one client stream for its whole lifetime. Sessions share
// nothing with each other.
type Session struct {
	conn     io.ReadWriteCloser
	remote   string
	reporter Reporter
}

// New creates a session over conn. remote labels every report. A nil r
// reports through the standard logger.
func New(conn io.ReadWriteCloser, remote string, r Reporter) *Session {
	if r == nil {
		r = NewLogReporter(nil)
	}
	return &Session{
		conn:     conn,
		remote:   remote,
		reporter: r,
	}
}

// Remote returns the label the session reports under.
func (s *Session) Remote() string {
	return s.remote
}

// Run greets the client and decodes its bytes until EOF. A clean EOF
// returns nil. Any other fault is reported once as a disconnection and
// returned; it never escapes as a panic. The stream is closed on return.
func (s *Session) Run() (err error) {
	defer s.conn.Close()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("session panic: %v", p)
		}
		if err != nil {
			s.reporter.Disconnected(s.remote, err)
		}
	}()

	s.reporter.Connected(s.remote)
	if err := s.greet(); err != nil {
		return err
	}
	s.reporter.Awaiting(s.remote)

	return s.readLoop()
}

func (s *Session) greet() error {
	n, err := io.WriteString(s.conn, protocol.Greeting)
	if err != nil {
		return fmt.Errorf("send greeting: %w", err)
	}
	if n != len(protocol.Greeting) {
		return fmt.Errorf("send greeting: %w", io.ErrShortWrite)
	}
	if f, ok := s.conn.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush greeting: %w", err)
		}
	}
	return nil
}

func (s *Session) readLoop() error {
	r := bufio.NewReader(s.conn)
	for {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read event: %w", err)
		}

		ev, err := protocol.Decode(b)
		if err != nil {
			return err
		}
		s.reporter.Event(s.remote, ev)

		runtime.Gosched()
	}
}
