// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
)

// Button names registered by SetupInputBindings.
const (
	ButtonLeft  = "left"
	ButtonRight = "right"
	ButtonFire  = "fire"
	ButtonQuit  = "quit"
)

// Player is the part of the game the keyboard controls.
type Player interface {
	MoveDefender(dx float64)
	FireDefender() bool
}

// Controls is one frame's keyboard state.
type Controls struct {
	Left  bool
	Right bool
	Fire  bool
	Quit  bool
}

// InputSystem samples the keyboard once per frame and feeds it to the
// defender once per game tick.
type InputSystem struct {
	player Player
	speed  float64
	read   func() Controls

	held      Controls
	fireQueue bool
	quit      bool
}

// NewInputSystem creates an input system moving the defender speed units
// per tick.
func NewInputSystem(player Player, speed float64) *InputSystem {
	return &InputSystem{
		player: player,
		speed:  speed,
		read:   readButtons,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update samples the keyboard.
func (is *InputSystem) Update(dt float32) {
	is.Sample(is.read())
}

// Sample records a frame's controls. A fire press is kept until the next
// tick consumes it.
func (is *InputSystem) Sample(c Controls) {
	is.held = c
	if c.Fire {
		is.fireQueue = true
	}
	if c.Quit {
		is.quit = true
	}
}

// Tick applies the held direction and any queued shot to the defender.
func (is *InputSystem) Tick() {
	switch {
	case is.held.Left && !is.held.Right:
		is.player.MoveDefender(-is.speed)
	case is.held.Right && !is.held.Left:
		is.player.MoveDefender(is.speed)
	}
	if is.fireQueue {
		is.fireQueue = false
		is.player.FireDefender()
	}
}

// QuitRequested reports whether the quit key has been pressed.
func (is *InputSystem) QuitRequested() bool {
	return is.quit
}

func readButtons() Controls {
	return Controls{
		Left:  engo.Input.Button(ButtonLeft).Down(),
		Right: engo.Input.Button(ButtonRight).Down(),
		Fire:  engo.Input.Button(ButtonFire).JustPressed(),
		Quit:  engo.Input.Button(ButtonQuit).JustPressed(),
	}
}

// SetupInputBindings registers the game's keys with Engo.
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(ButtonFire, engo.KeySpace)
	engo.Input.RegisterButton(ButtonQuit, engo.KeyEscape, engo.KeyQ)
}
