package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/keypanel/probe/internal/protocol"
)

// KeyMap defines the keyboard layout of the simulated panel. The note keys
// follow the usual piano layout on the home and top rows.
type KeyMap struct {
	Notes     [protocol.NumButtons]key.Binding
	DialLeft  key.Binding
	DialRight key.Binding
	Reconnect key.Binding
	Quit      key.Binding
}

var noteKeys = [protocol.NumButtons]string{"a", "w", "s", "e", "d", "f", "t", "g", "y", "h", "u", "j", "m"}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		DialLeft: key.NewBinding(
			key.WithKeys("left", "z"),
			key.WithHelp("←/z", "dial left"),
		),
		DialRight: key.NewBinding(
			key.WithKeys("right", "x"),
			key.WithHelp("→/x", "dial right"),
		),
		Reconnect: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reconnect"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	for i, k := range noteKeys {
		km.Notes[i] = key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, protocol.Button(i).String()),
		)
	}
	return km
}

// buttonFor returns the panel button bound to msg.
func (km KeyMap) buttonFor(msg tea.KeyMsg) (protocol.Button, bool) {
	for i, b := range km.Notes {
		if key.Matches(msg, b) {
			return protocol.Button(i), true
		}
	}
	return 0, false
}
