package tui

import (
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keypanel/probe/internal/protocol"
)

const outboxSize = 64

var errOutboxFull = errors.New("send queue full, key dropped")

// outbox is the single writer for one connection. Batches go out in the
// order they were queued and never interleave on the wire.
type outbox struct {
	conn    Conn
	queue   chan []protocol.Event
	results chan tea.Msg

	done      chan struct{}
	closeOnce sync.Once
}

func newOutbox(conn Conn) *outbox {
	o := &outbox{
		conn:    conn,
		queue:   make(chan []protocol.Event, outboxSize),
		results: make(chan tea.Msg, outboxSize),
		done:    make(chan struct{}),
	}
	go o.run()
	return o
}

func (o *outbox) run() {
	defer close(o.results)
	for {
		select {
		case <-o.done:
			return
		case evs := <-o.queue:
			var msg tea.Msg = sentMsg{out: o, events: evs}
			for _, ev := range evs {
				if err := o.conn.Send(ev); err != nil {
					msg = sendFailedMsg{out: o, err: err}
					break
				}
			}
			select {
			case o.results <- msg:
			case <-o.done:
				return
			}
			if _, failed := msg.(sendFailedMsg); failed {
				return
			}
		}
	}
}

// enqueue queues one batch without blocking the update loop.
func (o *outbox) enqueue(evs ...protocol.Event) error {
	select {
	case <-o.done:
		return errors.New("connection closed")
	default:
	}
	select {
	case o.queue <- evs:
		return nil
	default:
		return errOutboxFull
	}
}

// next waits for the outcome of the oldest unreported batch. It yields nil
// once the outbox has stopped.
func (o *outbox) next() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-o.results
		if !ok {
			return nil
		}
		return msg
	}
}

func (o *outbox) close() {
	o.closeOnce.Do(func() { close(o.done) })
}
