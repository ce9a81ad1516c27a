package panel

import (
	"context"
	"fmt"
	"log"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/keypanel/probe/internal/protocol"
)

// FindInPort returns the first MIDI input whose name contains name,
// ignoring case.
func FindInPort(name string) (drivers.In, error) {
	want := strings.ToLower(name)
	for _, p := range gomidi.GetInPorts() {
		if strings.Contains(strings.ToLower(p.String()), want) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("midi input %q not found", name)
}

// MIDIBridge forwards a physical panel's MIDI input to the endpoint.
type MIDIBridge struct {
	in         drivers.In
	translator *Translator
	out        Sender
	events     chan protocol.Event
}

func NewMIDIBridge(in drivers.In, t *Translator, out Sender) *MIDIBridge {
	return &MIDIBridge{
		in:         in,
		translator: t,
		out:        out,
		events:     make(chan protocol.Event, 32),
	}
}

// Run listens on the MIDI input until ctx ends or a send fails.
func (b *MIDIBridge) Run(ctx context.Context) error {
	stop, err := gomidi.ListenTo(b.in, b.handle)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer stop()

	if b.translator.RequireActivation {
		log.Println("Press the MOD button on the panel to activate it.")
	}

	return b.forward(ctx)
}

// handle runs on the driver's goroutine, the only one touching the
// translator.
func (b *MIDIBridge) handle(msg gomidi.Message, timestampms int32) {
	wasActive := b.translator.Active()
	ev, ok := b.translator.Translate(msg)
	if !wasActive && b.translator.Active() {
		log.Println("Panel activated!")
	}
	if !ok {
		return
	}
	select {
	case b.events <- ev:
	default:
		log.Printf("midi: dropped %s, endpoint too slow", ev)
	}
}

func (b *MIDIBridge) forward(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-b.events:
			if err := b.out.Send(ev); err != nil {
				return err
			}
			log.Printf("sent %s", ev)
		}
	}
}
