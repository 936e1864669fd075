// Package config loads blockfall settings from a TOML file layered over
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/match"
	"github.com/plus3/blockfall/session"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Game   Game            `toml:"game"`
	Grid   Grid            `toml:"grid"`
	Timing Timing          `toml:"timing"`
	Audio  Audio           `toml:"audio"`
	Debug  Debug           `toml:"debug"`
	Keys   map[string]Keys `toml:"keys"`
}

type Game struct {
	Players int `toml:"players"`
	// CountdownMs limits two-player matches. Zero disables the limit.
	CountdownMs int64 `toml:"countdown_ms"`
}

type Grid struct {
	Width    int `toml:"width"`
	Height   int `toml:"height"`
	CellSize int `toml:"cell_size"`
	Margin   int `toml:"margin"`
}

type Timing struct {
	TickRate      int   `toml:"tick_rate"`
	RepeatDelayMs int64 `toml:"repeat_delay_ms"`
}

type Audio struct {
	Volume float64 `toml:"volume"`
	Muted  bool    `toml:"muted"`
}

type Debug struct {
	Overlay bool   `toml:"overlay"`
	HTTP    string `toml:"http"`
}

// Keys maps action names to key names for one player, as in
//
//	[keys.p1]
//	move_left = ["arrowleft"]
type Keys map[string][]string

// Default is the configuration used when no file is given.
func Default() Config {
	return Config{
		Game: Game{
			Players:     1,
			CountdownMs: match.DefaultCountdown,
		},
		Grid: Grid{
			Width:    board.StandardWidth,
			Height:   board.StandardHeight,
			CellSize: match.DefaultCellSize,
			Margin:   match.DefaultCellSize,
		},
		Timing: Timing{
			TickRate:      60,
			RepeatDelayMs: session.DefaultRepeatDelay,
		},
		Audio: Audio{Volume: 0.5},
		Keys: map[string]Keys{
			"p1": {
				"move_left":  {"arrowleft"},
				"move_right": {"arrowright"},
				"soft_drop":  {"arrowdown"},
				"rotate":     {"arrowup"},
				"hard_drop":  {"space"},
				"pause":      {"p"},
				"quit":       {"escape"},
			},
			"p2": {
				"move_left":  {"a"},
				"move_right": {"d"},
				"soft_drop":  {"s"},
				"rotate":     {"w"},
				"hard_drop":  {"f"},
			},
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config: %s: unknown keys %s: %w", path, strings.Join(keys, ", "), ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional behaves like Load but returns the defaults when path does not
// exist.
func LoadOptional(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate reports every problem found, each wrapping ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalid))
	}

	if c.Game.Players != 1 && c.Game.Players != 2 {
		invalid("game.players = %d, want 1 or 2", c.Game.Players)
	}
	if c.Game.CountdownMs < 0 {
		invalid("game.countdown_ms = %d, must not be negative", c.Game.CountdownMs)
	}
	if c.Grid.Width < 4 || c.Grid.Height < 4 {
		invalid("grid %dx%d is smaller than a piece", c.Grid.Width, c.Grid.Height)
	}
	if c.Grid.CellSize <= 0 {
		invalid("grid.cell_size = %d, must be positive", c.Grid.CellSize)
	}
	if c.Grid.Margin < 0 {
		invalid("grid.margin = %d, must not be negative", c.Grid.Margin)
	}
	if c.Timing.TickRate <= 0 || c.Timing.TickRate > 1000 {
		invalid("timing.tick_rate = %d, want 1..1000", c.Timing.TickRate)
	}
	if c.Timing.RepeatDelayMs <= 0 {
		invalid("timing.repeat_delay_ms = %d, must be positive", c.Timing.RepeatDelayMs)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		invalid("audio.volume = %g, want 0..1", c.Audio.Volume)
	}

	for _, name := range sortedKeys(c.Keys) {
		if _, ok := playerIndex(name); !ok {
			invalid("keys.%s: unknown player", name)
			continue
		}
		for _, action := range sortedKeys(c.Keys[name]) {
			if _, err := input.ParseAction(action); err != nil {
				invalid("keys.%s.%s: unknown action", name, action)
			}
		}
	}
	for p := 0; p < c.Game.Players && p < 2; p++ {
		if len(c.Keys[playerKey(p)]) == 0 {
			invalid("keys.%s: no bindings for player %d", playerKey(p), p+1)
		}
	}

	return errors.Join(errs...)
}

// Layout returns the key names bound for a 0-based player, keyed by action.
// Unknown action names are skipped; Validate reports them.
func (c Config) Layout(player int) map[input.Action][]string {
	layout := make(map[input.Action][]string)
	for action, keys := range c.Keys[playerKey(player)] {
		a, err := input.ParseAction(action)
		if err != nil {
			continue
		}
		layout[a] = append(layout[a], keys...)
	}
	return layout
}

// TickInterval is the duration of one tick.
func (c Config) TickInterval() time.Duration {
	if c.Timing.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Timing.TickRate)
}

// Match converts the settings into a match configuration. The countdown only
// applies to two-player matches.
func (c Config) Match() match.Config {
	cfg := match.Config{
		Players:     c.Game.Players,
		Width:       c.Grid.Width,
		Height:      c.Grid.Height,
		RepeatDelay: c.Timing.RepeatDelayMs,
		Interval:    c.TickInterval(),
		CellSize:    c.Grid.CellSize,
		Margin:      c.Grid.Margin,
	}
	if c.Game.Players == 2 {
		cfg.Countdown = c.Game.CountdownMs
	}
	return cfg
}

func playerKey(player int) string {
	return fmt.Sprintf("p%d", player+1)
}

func playerIndex(key string) (int, bool) {
	switch key {
	case "p1":
		return 0, true
	case "p2":
		return 1, true
	}
	return 0, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
