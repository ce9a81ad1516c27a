package panel

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/keypanel/probe/internal/protocol"
)

const (
	modController = 1
	modPressed    = 127
	modReleased   = 0
	programMin    = 0
	programMax    = 127
)

// Translator turns the MIDI output of a WORLDE easy key style panel into
// panel events. Keys map to the twelve note buttons regardless of octave,
// controller 1 is the MOD button and program changes carry the dial.
//
// A Translator is stateful and not safe for concurrent use.
type Translator struct {
	// RequireActivation swallows every event until the MOD button has been
	// released once.
	RequireActivation bool

	active      bool
	lastProgram uint8
	dialPrimed  bool
}

// NewTranslator returns a translator; see RequireActivation.
func NewTranslator(requireActivation bool) *Translator {
	return &Translator{RequireActivation: requireActivation}
}

// Active reports whether events are being passed through.
func (t *Translator) Active() bool {
	return !t.RequireActivation || t.active
}

// Translate returns the event for msg, or false when msg produces none.
func (t *Translator) Translate(msg gomidi.Message) (protocol.Event, bool) {
	ev, ok := t.decode(msg)
	if !ok {
		return protocol.Event{}, false
	}

	if !t.Active() {
		if ev.Category == protocol.ButtonRelease && ev.Button == protocol.ButtonMod {
			t.active = true
		}
		return protocol.Event{}, false
	}
	return ev, true
}

func (t *Translator) decode(msg gomidi.Message) (protocol.Event, bool) {
	var channel, key, velocity, controller, value, program uint8

	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		// Note on with zero velocity is a release on many keyboards.
		if velocity == 0 {
			return protocol.Release(protocol.NoteButton(key)), true
		}
		return protocol.Press(protocol.NoteButton(key)), true

	case msg.GetNoteOff(&channel, &key, &velocity):
		return protocol.Release(protocol.NoteButton(key)), true

	case msg.GetControlChange(&channel, &controller, &value):
		if controller != modController {
			return protocol.Event{}, false
		}
		switch value {
		case modPressed:
			return protocol.Press(protocol.ButtonMod), true
		case modReleased:
			return protocol.Release(protocol.ButtonMod), true
		}
		return protocol.Event{}, false

	case msg.GetProgramChange(&channel, &program):
		return t.dial(program)
	}

	return protocol.Event{}, false
}

// dial compares program against the previous program change. The very first
// one has nothing to compare against and only primes the state.
func (t *Translator) dial(program uint8) (protocol.Event, bool) {
	dir := protocol.NoChange
	switch {
	case program == programMin || program < t.lastProgram:
		dir = protocol.Left
	case program == programMax || program > t.lastProgram:
		dir = protocol.Right
	}
	t.lastProgram = program

	if !t.dialPrimed {
		t.dialPrimed = true
		return protocol.Event{}, false
	}
	if dir == protocol.NoChange {
		return protocol.Event{}, false
	}
	return protocol.Dial(dir), true
}
