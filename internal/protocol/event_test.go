package protocol

import (
	"errors"
	"testing"
)

func TestDecodeButtonPress(t *testing.T) {
	for b := 0x40; b <= 0x4C; b++ {
		ev, err := Decode(byte(b))
		if err != nil {
			t.Fatalf("Decode(0x%02X) error: %v", b, err)
		}
		if ev.Category != ButtonPress {
			t.Errorf("Decode(0x%02X).Category = %v, want ButtonPress", b, ev.Category)
		}
		if want := buttonNames[b&0x3F]; ev.Button.String() != want {
			t.Errorf("Decode(0x%02X).Button = %q, want %q", b, ev.Button, want)
		}
	}
}

func TestDecodeButtonRelease(t *testing.T) {
	for b := 0xC0; b <= 0xCC; b++ {
		ev, err := Decode(byte(b))
		if err != nil {
			t.Fatalf("Decode(0x%02X) error: %v", b, err)
		}
		if ev.Category != ButtonRelease {
			t.Errorf("Decode(0x%02X).Category = %v, want ButtonRelease", b, ev.Category)
		}
		if want := buttonNames[b&0x3F]; ev.Button.String() != want {
			t.Errorf("Decode(0x%02X).Button = %q, want %q", b, ev.Button, want)
		}
	}
}

func TestDecodeDialIgnoresUpperPayloadBits(t *testing.T) {
	for b := 0x80; b <= 0xBF; b++ {
		ev, err := Decode(byte(b))
		if err != nil {
			t.Fatalf("Decode(0x%02X) error: %v", b, err)
		}
		if ev.Category != DialMove {
			t.Fatalf("Decode(0x%02X).Category = %v, want DialMove", b, ev.Category)
		}
		want := Right
		if b%2 == 1 {
			want = Left
		}
		if ev.Direction != want {
			t.Errorf("Decode(0x%02X).Direction = %v, want %v", b, ev.Direction, want)
		}
	}
}

func TestDecodeReservedIsUnknown(t *testing.T) {
	for b := 0x00; b <= 0x3F; b++ {
		ev, err := Decode(byte(b))
		if err != nil {
			t.Fatalf("Decode(0x%02X) error: %v", b, err)
		}
		if ev.Category != Unknown {
			t.Errorf("Decode(0x%02X).Category = %v, want Unknown", b, ev.Category)
		}
		if ev.Raw != byte(b) {
			t.Errorf("Decode(0x%02X).Raw = 0x%02X", b, ev.Raw)
		}
	}
}

func TestDecodeOutOfRangeButton(t *testing.T) {
	for _, hi := range []int{0x40, 0xC0} {
		for payload := 13; payload <= 0x3F; payload++ {
			b := byte(hi | payload)
			_, err := Decode(b)
			if !errors.Is(err, ErrButtonIndex) {
				t.Fatalf("Decode(0x%02X) error = %v, want ErrButtonIndex", b, err)
			}
			var idxErr *ButtonIndexError
			if !errors.As(err, &idxErr) {
				t.Fatalf("Decode(0x%02X) error is not a *ButtonIndexError", b)
			}
			if idxErr.Raw != b || int(idxErr.Index) != payload {
				t.Errorf("ButtonIndexError = %+v, want Raw 0x%02X Index %d", idxErr, b, payload)
			}
		}
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		raw  byte
		want string
	}{
		{0x40, "Button Press: C"},
		{0xC1, "Button Release: C#"},
		{0x4C, "Button Press: MOD"},
		{0x80, "Dial Movement: Right"},
		{0x81, "Dial Movement: Left"},
		{0x00, "Unknown Message: 0x00"},
		{0x2A, "Unknown Message: 0x2A"},
	}

	for _, tt := range tests {
		ev, err := Decode(tt.raw)
		if err != nil {
			t.Fatalf("Decode(0x%02X) error: %v", tt.raw, err)
		}
		if got := ev.String(); got != tt.want {
			t.Errorf("Decode(0x%02X).String() = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestEncodeRoundTripsConstructors(t *testing.T) {
	events := []Event{Dial(Left), Dial(Right)}
	for b := ButtonC; b <= ButtonMod; b++ {
		events = append(events, Press(b), Release(b))
	}

	for _, ev := range events {
		raw, err := Encode(ev)
		if err != nil {
			t.Fatalf("Encode(%v) error: %v", ev, err)
		}
		if raw != ev.Raw {
			t.Errorf("Encode(%v) = 0x%02X, constructor Raw = 0x%02X", ev, raw, ev.Raw)
		}
		got, err := Decode(raw)
		if err != nil {
			t.Fatalf("Decode(0x%02X) error: %v", raw, err)
		}
		if got != ev {
			t.Errorf("Decode(Encode(%v)) = %v", ev, got)
		}
	}
}

func TestEncodeRejects(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want error
	}{
		{"unknown", Event{Category: Unknown, Raw: 0x05}, ErrUnencodable},
		{"dial no change", Event{Category: DialMove, Direction: NoChange}, ErrUnencodable},
		{"press past table", Event{Category: ButtonPress, Button: NumButtons}, ErrButtonIndex},
		{"release past table", Event{Category: ButtonRelease, Button: 40}, ErrButtonIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Encode(tt.ev); !errors.Is(err, tt.want) {
				t.Errorf("Encode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestButtonByName(t *testing.T) {
	b, ok := ButtonByName("F#")
	if !ok || b != ButtonFSharp {
		t.Errorf("ButtonByName(F#) = %v, %v", b, ok)
	}
	if _, ok := ButtonByName("H"); ok {
		t.Error("ButtonByName(H) should not resolve")
	}
}

func TestNoteButtonIgnoresOctave(t *testing.T) {
	tests := []struct {
		note uint8
		want Button
	}{
		{0, ButtonC},
		{60, ButtonC},
		{61, ButtonCSharp},
		{71, ButtonB},
		{127, ButtonG},
	}
	for _, tt := range tests {
		if got := NoteButton(tt.note); got != tt.want {
			t.Errorf("NoteButton(%d) = %v, want %v", tt.note, got, tt.want)
		}
	}
}

func TestGreeting(t *testing.T) {
	wire := []byte(Greeting)
	wire[0] = 'X'
	if Greeting != "GO!" {
		t.Errorf("Greeting = %q after mutating a copy, want %q", Greeting, "GO!")
	}
	if len(Greeting) != 3 {
		t.Errorf("len(Greeting) = %d, want 3", len(Greeting))
	}
}
