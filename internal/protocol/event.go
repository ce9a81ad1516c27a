// Package protocol models the one-byte event stream a control panel sends
// to the diagnostic endpoint.
//
// Each byte carries a category in bits 7-6 and a payload in bits 5-0:
//
//	00 reserved (reported as Unknown)
//	01 button press,   payload = button index 0-12
//	10 dial move,      payload bit 0: 1 = Left, 0 = Right
//	11 button release, payload = button index 0-12
package protocol

import (
	"errors"
	"fmt"
)

// Greeting is sent by the endpoint once per connection, before any event
// byte is read.
const Greeting = "GO!"

// Category is the 2-bit classifier of an event byte.
type Category uint8

const (
	Unknown       Category = iota // reserved, reported with its raw value
	ButtonPress                   // 01
	DialMove                      // 10
	ButtonRelease                 // 11
)

const (
	categoryShift = 6
	payloadMask   = 0x3F
	dialLeftBit   = 0x01
)

func (c Category) String() string {
	switch c {
	case ButtonPress:
		return "Button Press"
	case DialMove:
		return "Dial Movement"
	case ButtonRelease:
		return "Button Release"
	default:
		return "Unknown Message"
	}
}

// Direction is the way the dial turned.
type Direction uint8

const (
	Right Direction = iota
	Left
	NoChange // panel-side only, never encoded
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "No Change"
	}
}

var (
	// ErrButtonIndex is returned when a press or release payload falls
	// outside the button table.
	ErrButtonIndex = errors.New("button index out of range")

	// ErrUnencodable is returned by Encode for events with no wire form.
	ErrUnencodable = errors.New("event cannot be encoded")
)

// ButtonIndexError carries the offending byte of a press or release whose
// payload does not name a button.
type ButtonIndexError struct {
	Raw   byte
	Index uint8
}

func (e *ButtonIndexError) Error() string {
	return fmt.Sprintf("button index %d out of range in byte 0x%02X", e.Index, e.Raw)
}

func (e *ButtonIndexError) Unwrap() error { return ErrButtonIndex }

// Event is one decoded panel event. Button is meaningful for presses and
// releases, Direction for dial moves. Raw is always the byte it came from.
type Event struct {
	Category  Category
	Button    Button
	Direction Direction
	Raw       byte
}

// Press returns a button-press event for b.
func Press(b Button) Event {
	return Event{Category: ButtonPress, Button: b, Raw: byte(ButtonPress)<<categoryShift | byte(b)}
}

// Release returns a button-release event for b.
func Release(b Button) Event {
	return Event{Category: ButtonRelease, Button: b, Raw: byte(ButtonRelease)<<categoryShift | byte(b)}
}

// Dial returns a dial-move event turning in d.
func Dial(d Direction) Event {
	raw := byte(DialMove) << categoryShift
	if d == Left {
		raw |= dialLeftBit
	}
	return Event{Category: DialMove, Direction: d, Raw: raw}
}

// String renders the event as a single report line.
func (e Event) String() string {
	switch e.Category {
	case ButtonPress, ButtonRelease:
		return fmt.Sprintf("%s: %s", e.Category, e.Button)
	case DialMove:
		return fmt.Sprintf("%s: %s", e.Category, e.Direction)
	default:
		return fmt.Sprintf("%s: 0x%02X", e.Category, e.Raw)
	}
}

// Decode classifies a single event byte. Reserved categories decode to an
// Unknown event; only a press or release naming a button past the table
// is an error.
func Decode(b byte) (Event, error) {
	cat := Category(b >> categoryShift)
	payload := b & payloadMask

	switch cat {
	case ButtonPress, ButtonRelease:
		btn := Button(payload)
		if !btn.Valid() {
			return Event{Category: cat, Raw: b}, &ButtonIndexError{Raw: b, Index: payload}
		}
		return Event{Category: cat, Button: btn, Raw: b}, nil
	case DialMove:
		dir := Right
		if payload&dialLeftBit != 0 {
			dir = Left
		}
		return Event{Category: DialMove, Direction: dir, Raw: b}, nil
	default:
		return Event{Category: Unknown, Raw: b}, nil
	}
}

// Encode produces the wire byte for a press, release or dial event.
func Encode(e Event) (byte, error) {
	switch e.Category {
	case ButtonPress, ButtonRelease:
		if !e.Button.Valid() {
			return 0, fmt.Errorf("encode %s: %w", e.Category, &ButtonIndexError{Index: uint8(e.Button)})
		}
		return byte(e.Category)<<categoryShift | byte(e.Button), nil
	case DialMove:
		switch e.Direction {
		case Left:
			return byte(DialMove)<<categoryShift | dialLeftBit, nil
		case Right:
			return byte(DialMove) << categoryShift, nil
		}
		return 0, fmt.Errorf("encode dial %s: %w", e.Direction, ErrUnencodable)
	default:
		return 0, fmt.Errorf("encode %s: %w", e.Category, ErrUnencodable)
	}
}
