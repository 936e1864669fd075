package input

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// Key is a front-end key or button code.
type Key int

// Binding assigns a key to an action of one player.
type Binding struct {
	Player int
	Action Action
}

// Layout lists the keys bound to each action for one player.
type Layout map[Action][]Key

// Keymap maps keys to bindings. A key belongs to exactly one binding, fixed
// for the lifetime of a match.
type Keymap struct {
	bindings *intmap.Map[Key, Binding]
}

func NewKeymap() *Keymap {
	return &Keymap{bindings: intmap.New[Key, Binding](32)}
}

// Bind assigns key to the binding, replacing any previous assignment.
func (k *Keymap) Bind(key Key, b Binding) {
	k.bindings.Put(key, b)
}

// BindLayout binds every key of a player's layout in Actions order, so a key
// listed under two actions ends up on the later one.
func (k *Keymap) BindLayout(player int, layout Layout) {
	for _, action := range Actions {
		for _, key := range layout[action] {
			k.Bind(key, Binding{Player: player, Action: action})
		}
	}
}

// Unbind removes a key.
func (k *Keymap) Unbind(key Key) bool {
	if _, ok := k.bindings.Get(key); !ok {
		return false
	}
	k.bindings.Del(key)
	return true
}

func (k *Keymap) Lookup(key Key) (Binding, bool) {
	return k.bindings.Get(key)
}

// Translate turns a key transition into an event for the owning player.
func (k *Keymap) Translate(key Key, pressed bool) (Event, bool) {
	b, ok := k.bindings.Get(key)
	if !ok {
		return Event{}, false
	}
	return Event{Player: b.Player, Action: b.Action, Pressed: pressed}, true
}

// Keys returns every bound key in ascending order.
func (k *Keymap) Keys() []Key {
	keys := make([]Key, 0, k.bindings.Len())
	k.bindings.ForEach(func(key Key, _ Binding) bool {
		keys = append(keys, key)
		return true
	})
	slices.Sort(keys)
	return keys
}

func (k *Keymap) Len() int { return k.bindings.Len() }

// Players returns the number of distinct players with at least one binding,
// counted as the highest player index plus one.
func (k *Keymap) Players() int {
	n := 0
	k.bindings.ForEach(func(_ Key, b Binding) bool {
		n = max(n, b.Player+1)
		return true
	})
	return n
}
