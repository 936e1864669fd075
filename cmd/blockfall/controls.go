package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/kamstrup/intmap"

	"github.com/plus3/blockfall/debugui"
	"github.com/plus3/blockfall/input"
)

// stickDeadzone is how far the left stick must travel to count as a press.
const stickDeadzone = 0.5

// controls polls the keyboard and up to two gamepads and reports edges as
// match input events. Gamepads are assigned to players in connection order.
type controls struct {
	keymap  *input.Keymap
	buttons *intmap.Map[ebiten.StandardGamepadButton, input.Action]
	capture *debugui.ImguiInputState

	pads   []ebiten.GamepadID
	sticks map[ebiten.GamepadID]*stickState
	events []input.Event
}

// stickState remembers which stick directions were past the deadzone.
type stickState struct {
	left, right, down bool
}

func newControls(keymap *input.Keymap, players int) *controls {
	buttons := intmap.New[ebiten.StandardGamepadButton, input.Action](8)
	buttons.Put(ebiten.StandardGamepadButtonLeftLeft, input.MoveLeft)
	buttons.Put(ebiten.StandardGamepadButtonLeftRight, input.MoveRight)
	buttons.Put(ebiten.StandardGamepadButtonLeftBottom, input.SoftDrop)
	buttons.Put(ebiten.StandardGamepadButtonLeftTop, input.Rotate)
	buttons.Put(ebiten.StandardGamepadButtonRightTop, input.Rotate)
	buttons.Put(ebiten.StandardGamepadButtonRightBottom, input.HardDrop)
	buttons.Put(ebiten.StandardGamepadButtonCenterRight, input.Pause)

	return &controls{
		keymap:  keymap,
		buttons: buttons,
		pads:    make([]ebiten.GamepadID, 0, players),
		sticks:  make(map[ebiten.GamepadID]*stickState),
	}
}

// Poll implements input.Source.
func (c *controls) Poll(int64) []input.Event {
	c.events = c.events[:0]
	if c.capture == nil || !c.capture.WantCaptureKeyboard {
		c.pollKeyboard()
	}
	c.pollGamepads()
	return c.events
}

func (c *controls) pollKeyboard() {
	for _, key := range c.keymap.Keys() {
		k := ebiten.Key(key)
		if inpututil.IsKeyJustPressed(k) {
			c.translate(key, true)
		}
		if inpututil.IsKeyJustReleased(k) {
			c.translate(key, false)
		}
	}
}

func (c *controls) translate(key input.Key, pressed bool) {
	if ev, ok := c.keymap.Translate(key, pressed); ok {
		c.events = append(c.events, ev)
	}
}

func (c *controls) pollGamepads() {
	for _, id := range inpututil.AppendJustConnectedGamepadIDs(nil) {
		if len(c.pads) < cap(c.pads) && ebiten.IsStandardGamepadLayoutAvailable(id) {
			c.pads = append(c.pads, id)
			c.sticks[id] = &stickState{}
			log.Printf("gamepad %q assigned to player %d", ebiten.GamepadName(id), len(c.pads))
		}
	}

	for player, id := range c.pads {
		if inpututil.IsGamepadJustDisconnected(id) {
			continue
		}
		c.buttons.ForEach(func(button ebiten.StandardGamepadButton, action input.Action) bool {
			if inpututil.IsStandardGamepadButtonJustPressed(id, button) {
				c.events = append(c.events, input.Press(player, action))
			}
			if inpututil.IsStandardGamepadButtonJustReleased(id, button) {
				c.events = append(c.events, input.Release(player, action))
			}
			return true
		})
		c.pollStick(player, id)
	}
}

func (c *controls) pollStick(player int, id ebiten.GamepadID) {
	s := c.sticks[id]
	x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)

	c.stickEdge(player, &s.left, x < -stickDeadzone, input.MoveLeft)
	c.stickEdge(player, &s.right, x > stickDeadzone, input.MoveRight)
	c.stickEdge(player, &s.down, y > stickDeadzone, input.SoftDrop)
}

func (c *controls) stickEdge(player int, held *bool, now bool, action input.Action) {
	if *held == now {
		return
	}
	*held = now
	c.events = append(c.events, input.Event{Player: player, Action: action, Pressed: now})
}
