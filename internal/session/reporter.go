package session

import (
	"log"

	"github.com/keypanel/probe/internal/protocol"
)

// Reporter receives the lifecycle notices and decoded events of a session.
// Implementations are called from the session's own goroutine and must be
// safe for use by many sessions at once.
type Reporter interface {
	Connected(remote string)
	Awaiting(remote string)
	Event(remote string, ev protocol.Event)
	Disconnected(remote string, err error)
}

// LogReporter writes one line per notice through a log.Logger.
type LogReporter struct {
	logger *log.Logger
}

// NewLogReporter wraps l, or the standard logger when l is nil.
func NewLogReporter(l *log.Logger) *LogReporter {
	if l == nil {
		l = log.Default()
	}
	return &LogReporter{logger: l}
}

func (r *LogReporter) Connected(remote string) {
	r.logger.Printf("[%s] Received connection", remote)
}

func (r *LogReporter) Awaiting(remote string) {
	r.logger.Printf("[%s] Awaiting data", remote)
}

func (r *LogReporter) Event(remote string, ev protocol.Event) {
	r.logger.Printf("[%s] %s", remote, ev)
}

func (r *LogReporter) Disconnected(remote string, err error) {
	r.logger.Printf("[%s] client disconnected (%v)", remote, err)
}
