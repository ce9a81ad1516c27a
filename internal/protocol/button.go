package protocol

// Button identifies one of the thirteen buttons on the panel.
type Button uint8

const (
	ButtonC Button = iota
	ButtonCSharp
	ButtonD
	ButtonDSharp
	ButtonE
	ButtonF
	ButtonFSharp
	ButtonG
	ButtonGSharp
	ButtonA
	ButtonASharp
	ButtonB
	ButtonMod
)

// NumButtons is the size of the button table.
const NumButtons = 13

// buttonNames is indexed by the 6-bit payload of press and release bytes.
var buttonNames = [NumButtons]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B", "MOD",
}

// Valid reports whether b indexes the button table.
func (b Button) Valid() bool {
	return b < NumButtons
}

func (b Button) String() string {
	if !b.Valid() {
		return "INVALID"
	}
	return buttonNames[b]
}

// ButtonByName returns the button with the given table name.
func ButtonByName(name string) (Button, bool) {
	for i, n := range buttonNames {
		if n == name {
			return Button(i), true
		}
	}
	return 0, false
}

// NoteButton maps a MIDI note number onto the twelve note buttons,
// ignoring the octave.
func NoteButton(note uint8) Button {
	return Button(note % 12)
}
