// Package tui is a keyboard-driven stand-in for the physical panel. Every
// key sends the bytes the real panel would, and the screen shows what went
// out.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keypanel/probe/internal/protocol"
)

const (
	reconnectBaseDelay = 500 * time.Millisecond
	reconnectMaxDelay  = 10 * time.Second
	historySize        = 12
	dialTimeout        = 5 * time.Second
)

// Conn is a connected panel.
type Conn interface {
	Send(ev protocol.Event) error
	Close() error
}

// DialFunc opens a panel connection.
type DialFunc func(ctx context.Context) (Conn, error)

// --- Bubble Tea messages ---

type connectedMsg struct{ conn Conn }

type dialFailedMsg struct{ err error }

type redialMsg struct{}

type sentMsg struct {
	out    *outbox
	events []protocol.Event
}

type sendFailedMsg struct {
	out *outbox
	err error
}

// Model is the root Bubble Tea model.
type Model struct {
	dial   DialFunc
	target string
	keys   KeyMap
	ctx    context.Context
	cancel context.CancelFunc

	conn    Conn
	out     *outbox
	delay   time.Duration
	lastErr error

	lit     protocol.Button
	litSet  bool
	history []protocol.Event
	width   int
}

// New creates a model that connects with dial. target is only displayed.
func New(dial DialFunc, target string) Model {
	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		dial:   dial,
		target: target,
		keys:   DefaultKeyMap(),
		ctx:    ctx,
		cancel: cancel,
		delay:  reconnectBaseDelay,
	}
}

func (m Model) Init() tea.Cmd {
	return m.connect()
}

func (m Model) connect() tea.Cmd {
	dial, ctx := m.dial, m.ctx
	return func() tea.Msg {
		dctx, cancel := context.WithTimeout(ctx, dialTimeout)
		defer cancel()
		conn, err := dial(dctx)
		if err != nil {
			return dialFailedMsg{err: err}
		}
		return connectedMsg{conn: conn}
	}
}

func (m Model) send(evs ...protocol.Event) (tea.Model, tea.Cmd) {
	if err := m.out.enqueue(evs...); err != nil {
		m.lastErr = err
	}
	return m, nil
}

func (m *Model) disconnect() {
	m.out.close()
	m.conn.Close()
	m.out = nil
	m.conn = nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case connectedMsg:
		if m.conn != nil {
			m.disconnect()
		}
		m.conn = msg.conn
		m.out = newOutbox(msg.conn)
		m.delay = reconnectBaseDelay
		m.lastErr = nil
		return m, m.out.next()

	case dialFailedMsg:
		m.lastErr = msg.err
		delay := m.delay
		m.delay = min(m.delay*2, reconnectMaxDelay)
		return m, tea.Tick(delay, func(time.Time) tea.Msg { return redialMsg{} })

	case redialMsg:
		if m.conn != nil {
			return m, nil
		}
		return m, m.connect()

	case sentMsg:
		m.history = append(m.history, msg.events...)
		if n := len(m.history); n > historySize {
			m.history = m.history[n-historySize:]
		}
		if msg.out != m.out {
			return m, nil
		}
		return m, m.out.next()

	case sendFailedMsg:
		// A stale failure from a connection already replaced is ignored.
		if msg.out != m.out {
			return m, nil
		}
		m.disconnect()
		m.lastErr = msg.err
		return m, m.connect()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		if m.conn != nil {
			m.disconnect()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Reconnect):
		if m.conn != nil {
			return m, nil
		}
		m.delay = reconnectBaseDelay
		return m, m.connect()
	}

	if m.conn == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.DialLeft):
		return m.send(protocol.Dial(protocol.Left))
	case key.Matches(msg, m.keys.DialRight):
		return m.send(protocol.Dial(protocol.Right))
	}

	// Terminals report no key-up, so a key is a tap: press then release.
	if b, ok := m.keys.buttonFor(msg); ok {
		m.lit, m.litSet = b, true
		return m.send(protocol.Press(b), protocol.Release(b))
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("panel → " + m.target))
	sb.WriteString("  ")
	if m.conn != nil {
		sb.WriteString(statusOK.Render("● connected"))
	} else {
		sb.WriteString(statusDown.Render("○ disconnected"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(m.renderKeys())
	sb.WriteString("\n\n")

	if len(m.history) == 0 {
		sb.WriteString(mutedStyle.Render("nothing sent yet"))
		sb.WriteString("\n")
	}
	for i := len(m.history) - 1; i >= 0; i-- {
		ev := m.history[i]
		sb.WriteString(fmt.Sprintf("0x%02X  %s\n", ev.Raw, ev))
	}

	if m.lastErr != nil {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.lastErr.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(m.helpLine()))
	return sb.String()
}

func (m Model) renderKeys() string {
	cells := make([]string, 0, protocol.NumButtons)
	for i := 0; i < protocol.NumButtons; i++ {
		b := protocol.Button(i)
		label := fmt.Sprintf("%s\n%s", b, noteKeys[i])
		style := naturalKey
		if strings.HasSuffix(b.String(), "#") {
			style = sharpKey
		}
		if m.litSet && m.lit == b {
			style = litKey
		}
		cells = append(cells, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) helpLine() string {
	parts := []string{}
	for _, b := range []key.Binding{m.keys.DialLeft, m.keys.DialRight, m.keys.Reconnect, m.keys.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
