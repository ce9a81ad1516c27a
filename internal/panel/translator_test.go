package panel

import (
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/keypanel/probe/internal/protocol"
)

func translateAll(t *Translator, msgs ...gomidi.Message) []string {
	var out []string
	for _, m := range msgs {
		if ev, ok := t.Translate(m); ok {
			out = append(out, ev.String())
		}
	}
	return out
}

func assertEvents(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTranslatorNotes(t *testing.T) {
	tr := NewTranslator(false)
	got := translateAll(tr,
		gomidi.NoteOn(0, 60, 100),
		gomidi.NoteOff(0, 60),
		gomidi.NoteOn(0, 73, 90), // C# one octave up
		gomidi.NoteOn(0, 73, 0),
	)
	assertEvents(t, got, []string{
		"Button Press: C",
		"Button Release: C",
		"Button Press: C#",
		"Button Release: C#",
	})
}

func TestTranslatorModButton(t *testing.T) {
	tr := NewTranslator(false)
	got := translateAll(tr,
		gomidi.ControlChange(0, 1, 127),
		gomidi.ControlChange(0, 1, 64), // intermediate values are ignored
		gomidi.ControlChange(0, 1, 0),
		gomidi.ControlChange(0, 7, 127), // other controllers are ignored
	)
	assertEvents(t, got, []string{"Button Press: MOD", "Button Release: MOD"})
}

func TestTranslatorDial(t *testing.T) {
	tr := NewTranslator(false)
	got := translateAll(tr,
		gomidi.ProgramChange(0, 10), // primes
		gomidi.ProgramChange(0, 11),
		gomidi.ProgramChange(0, 11), // no change, dropped
		gomidi.ProgramChange(0, 9),
		gomidi.ProgramChange(0, 0),
		gomidi.ProgramChange(0, 0), // pinned at the bottom still turns left
		gomidi.ProgramChange(0, 127),
		gomidi.ProgramChange(0, 127),
	)
	assertEvents(t, got, []string{
		"Dial Movement: Right",
		"Dial Movement: Left",
		"Dial Movement: Left",
		"Dial Movement: Left",
		"Dial Movement: Right",
		"Dial Movement: Right",
	})
}

func TestTranslatorActivation(t *testing.T) {
	tr := NewTranslator(true)
	if tr.Active() {
		t.Fatal("translator active before MOD release")
	}

	got := translateAll(tr,
		gomidi.NoteOn(0, 62, 100),
		gomidi.ControlChange(0, 1, 127),
		gomidi.ControlChange(0, 1, 0), // activates, not forwarded
		gomidi.NoteOn(0, 62, 100),
	)
	if !tr.Active() {
		t.Fatal("translator inactive after MOD release")
	}
	assertEvents(t, got, []string{"Button Press: D"})
}

func TestTranslatorIgnoresOtherMessages(t *testing.T) {
	tr := NewTranslator(false)
	got := translateAll(tr,
		gomidi.Pitchbend(0, 100),
		gomidi.AfterTouch(0, 20),
	)
	if len(got) != 0 {
		t.Errorf("got %v, want nothing", got)
	}
}

type recordingSender struct {
	sent []protocol.Event
	err  error
}

func (s *recordingSender) Send(ev protocol.Event) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, ev)
	return nil
}
