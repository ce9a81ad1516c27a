package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/keypanel/probe/internal/config"
	"github.com/keypanel/probe/internal/panel"
	"github.com/keypanel/probe/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run holds everything that owns a resource so its defers finish before
// main exits.
func run(args []string) error {
	fs := flag.NewFlagSet("panel", flag.ContinueOnError)
	configPath := fs.String("config", "config.yaml", "Path to config file (optional)")
	mode := fs.String("mode", "tui", "Panel mode: tui, mock or midi")
	addr := fs.String("addr", "", "Endpoint address (overrides panel.addr)")
	midiPort := fs.String("midi-port", "", "MIDI input name to match (overrides panel.midi_port)")
	seed := fs.Int64("seed", time.Now().UnixNano(), "Random seed for mock mode")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *addr != "" {
		cfg.Panel.Addr = *addr
	}
	if *midiPort != "" {
		cfg.Panel.MIDIPort = *midiPort
	}

	switch *mode {
	case "tui":
		return runTUI(cfg)
	case "mock":
		return runHeadless(cfg, func(ctx context.Context, c *panel.Client) error {
			return panel.NewGenerator(c, cfg.Panel.MockInterval, *seed).Start(ctx)
		})
	case "midi":
		defer gomidi.CloseDriver()
		return runHeadless(cfg, func(ctx context.Context, c *panel.Client) error {
			in, err := panel.FindInPort(cfg.Panel.MIDIPort)
			if err != nil {
				return err
			}
			log.Printf("Using MIDI input %s", in)
			t := panel.NewTranslator(cfg.Panel.RequireActivation)
			return panel.NewMIDIBridge(in, t, c).Run(ctx)
		})
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}
}

func runTUI(cfg *config.Config) error {
	dial := func(ctx context.Context) (tui.Conn, error) {
		c, err := panel.Dial(ctx, cfg.Panel.Addr)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	_, err := tea.NewProgram(tui.New(dial, cfg.Panel.Addr), tea.WithAltScreen()).Run()
	return err
}

func runHeadless(cfg *config.Config, drive func(context.Context, *panel.Client) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	c, err := panel.Dial(dctx, cfg.Panel.Addr)
	cancel()
	if err != nil {
		return err
	}
	defer c.Close()
	log.Printf("Connected to %s", c.RemoteAddr())

	return drive(ctx, c)
}
