package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/keypanel/probe/internal/config"
	"github.com/keypanel/probe/internal/server"
	"github.com/keypanel/probe/internal/session"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file (optional)")
	port := flag.Int("port", 0, "Override server port")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reporter := session.NewLogReporter(log.Default())

	if cfg.WebSocket.Enabled {
		go func() {
			h := server.NewWSHandler(reporter)
			if err := server.ListenAndServeWS(ctx, cfg.WSAddr(), cfg.WebSocket.Path, h); err != nil {
				log.Printf("WebSocket server error: %v", err)
			}
		}()
	}

	l := server.NewListener(cfg.ServerAddr(), reporter)
	if err := l.ListenAndServe(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Shutting down...")
}
