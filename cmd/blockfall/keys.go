package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/input"
)

// keyAliases are accepted in addition to ebiten's own key names.
var keyAliases = map[string]ebiten.Key{
	"left":  ebiten.KeyArrowLeft,
	"right": ebiten.KeyArrowRight,
	"up":    ebiten.KeyArrowUp,
	"down":  ebiten.KeyArrowDown,
	"esc":   ebiten.KeyEscape,
	"enter": ebiten.KeyEnter,
}

var keysByName = func() map[string]ebiten.Key {
	names := make(map[string]ebiten.Key, int(ebiten.KeyMax)+len(keyAliases))
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		names[strings.ToLower(k.String())] = k
	}
	for name, k := range keyAliases {
		names[name] = k
	}
	return names
}()

// resolveKey maps a configured key name, case-insensitively, to an ebiten key.
func resolveKey(name string) (ebiten.Key, error) {
	k, ok := keysByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown key %q", name)
	}
	return k, nil
}

// buildKeymap binds the configured layout of every player. A key bound twice
// keeps its last binding: the later player, then the later action in
// input.Actions order.
func buildKeymap(cfg config.Config) (*input.Keymap, error) {
	keymap := input.NewKeymap()
	for player := 0; player < cfg.Game.Players; player++ {
		names := cfg.Layout(player)
		layout := make(input.Layout)
		for _, action := range input.Actions {
			for _, name := range names[action] {
				k, err := resolveKey(name)
				if err != nil {
					return nil, fmt.Errorf("keys.p%d.%s: %w", player+1, action, err)
				}
				layout[action] = append(layout[action], input.Key(k))
			}
		}
		keymap.BindLayout(player, layout)
	}
	return keymap, nil
}
