package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default layer names, top-down. Earlier layers block later ones.
const (
	LayerModal     = "modal"
	LayerTextInput = "text-input"
	LayerOverlay   = "overlay"
	LayerScene     = "scene"
)

// Config is the tunable surface of the input core. The zero value is not
// usable; start from Default.
type Config struct {
	// LongPressMillis is how long a touch contact must stay near-stationary
	// before a long-press fires.
	LongPressMillis int `toml:"long_press_ms"`

	// JitterTolerance is the drift, in host pixels, a contact may accumulate
	// while still counting as stationary.
	JitterTolerance float64 `toml:"jitter_tolerance"`

	// DoubleClickMillis is the window within which two presses of the same
	// button count as a double click.
	DoubleClickMillis int `toml:"double_click_ms"`

	// WheelStep scales one wheel notch into an action value.
	WheelStep float64 `toml:"wheel_step"`

	// BlockerOrder names the UI layers top-down; earlier layers get higher
	// blocker priority.
	BlockerOrder []string `toml:"blocker_order"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LongPressMillis:   500,
		JitterTolerance:   8,
		DoubleClickMillis: 300,
		WheelStep:         1,
		BlockerOrder:      []string{LayerModal, LayerTextInput, LayerOverlay, LayerScene},
	}
}

// LongPress returns the long-press threshold as a duration.
func (c Config) LongPress() time.Duration {
	return time.Duration(c.LongPressMillis) * time.Millisecond
}

// DoubleClick returns the double-click window as a duration.
func (c Config) DoubleClick() time.Duration {
	return time.Duration(c.DoubleClickMillis) * time.Millisecond
}

// PriorityOf returns the blocker priority for a named layer: the first layer
// in the order gets the highest number. Unknown layers report false.
func (c Config) PriorityOf(layer string) (int, bool) {
	for i, name := range c.BlockerOrder {
		if name == layer {
			return len(c.BlockerOrder) - i, true
		}
	}
	return 0, false
}

// Validate checks the configuration for values the core cannot run with.
func (c Config) Validate() error {
	if c.LongPressMillis <= 0 {
		return fmt.Errorf("long_press_ms must be positive, got %d", c.LongPressMillis)
	}
	if c.JitterTolerance < 0 {
		return fmt.Errorf("jitter_tolerance must not be negative, got %g", c.JitterTolerance)
	}
	if c.DoubleClickMillis <= 0 {
		return fmt.Errorf("double_click_ms must be positive, got %d", c.DoubleClickMillis)
	}
	if c.WheelStep == 0 {
		return fmt.Errorf("wheel_step must not be zero")
	}
	if len(c.BlockerOrder) == 0 {
		return fmt.Errorf("blocker_order must name at least one layer")
	}
	seen := make(map[string]bool, len(c.BlockerOrder))
	for _, layer := range c.BlockerOrder {
		if layer == "" {
			return fmt.Errorf("blocker_order contains an empty layer name")
		}
		if seen[layer] {
			return fmt.Errorf("blocker_order lists %q twice", layer)
		}
		seen[layer] = true
	}
	return nil
}

// LoadReader parses a TOML configuration. Fields absent from the document
// keep their defaults; the result is validated.
func LoadReader(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile loads and validates a TOML configuration file.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()
	return LoadReader(f)
}
