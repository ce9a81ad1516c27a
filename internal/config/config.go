package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Panel     PanelConfig     `yaml:"panel"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// WebSocketConfig controls the optional WebSocket listener. Each WebSocket
// connection runs the same session as a raw TCP connection, with event
// bytes carried in binary frames.
type WebSocketConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// PanelConfig is read by the panel client, not the endpoint.
type PanelConfig struct {
	Addr              string        `yaml:"addr"`
	MIDIPort          string        `yaml:"midi_port"`
	MockInterval      time.Duration `yaml:"mock_interval"`
	RequireActivation bool          `yaml:"require_activation"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 7757,
		},
		WebSocket: WebSocketConfig{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    7758,
			Path:    "/ws",
		},
		Panel: PanelConfig{
			Addr:              "127.0.0.1:7757",
			MIDIPort:          "WORLDE easy key",
			MockInterval:      250 * time.Millisecond,
			RequireActivation: true,
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

// Load reads path over the defaults. A missing file is not an error: the
// endpoint runs with no configuration at all.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validPort("server.port", c.Server.Port); err != nil {
		return err
	}
	if c.WebSocket.Enabled {
		if err := validPort("websocket.port", c.WebSocket.Port); err != nil {
			return err
		}
		if !strings.HasPrefix(c.WebSocket.Path, "/") {
			return fmt.Errorf("websocket.path %q must start with /", c.WebSocket.Path)
		}
	}
	if c.Panel.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Panel.Addr); err != nil {
			return fmt.Errorf("panel.addr: %w", err)
		}
	}
	if c.Panel.MockInterval <= 0 {
		return fmt.Errorf("panel.mock_interval must be positive")
	}
	return nil
}

func validPort(name string, port int) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("%s %d out of range", name, port)
	}
	return nil
}

// ServerAddr is the TCP address the endpoint listens on.
func (c *Config) ServerAddr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// WSAddr is the address of the WebSocket listener.
func (c *Config) WSAddr() string {
	return net.JoinHostPort(c.WebSocket.Host, strconv.Itoa(c.WebSocket.Port))
}
