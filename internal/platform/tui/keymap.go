package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tileblast/internal/core"
)

// quitKeys end the program from any screen.
var quitKeys = map[string]bool{"ctrl+c": true, "q": true}

// gameKeys binds key names to in-game actions.
var gameKeys = map[string]core.Action{
	"up": core.ActionUp, "w": core.ActionUp, "k": core.ActionUp,
	"down": core.ActionDown, "s": core.ActionDown, "j": core.ActionDown,
	"left": core.ActionLeft, "a": core.ActionLeft, "h": core.ActionLeft,
	"right": core.ActionRight, "d": core.ActionRight, "l": core.ActionRight,
	" ": core.ActionConfirm, "enter": core.ActionConfirm,
	"esc": core.ActionBack, "b": core.ActionBack,
	"p": core.ActionPause,
	"r": core.ActionRestart,
}

// KeyMapper turns Bubble Tea key and mouse messages into actions.
type KeyMapper struct{}

// NewKeyMapper returns a mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey returns the action bound to msg, ActionNone if unbound. isQuit
// is set for the global quit keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	name := msg.String()
	if quitKeys[name] {
		return core.ActionQuit, true
	}
	if a, ok := gameKeys[name]; ok {
		return a, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame sets the bound action on frame and reports a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapMouseToFrame records left-button presses as clicks. Returns true if
// the message produced a click.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) bool {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	frame.Click(msg.X, msg.Y)
	return true
}

// MenuAction is an input understood by the menu screens.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// menuFromGame reuses the game bindings on menu screens.
var menuFromGame = map[core.Action]MenuAction{
	core.ActionUp:      MenuActionUp,
	core.ActionDown:    MenuActionDown,
	core.ActionLeft:    MenuActionLeft,
	core.ActionRight:   MenuActionRight,
	core.ActionConfirm: MenuActionSelect,
	core.ActionBack:    MenuActionBack,
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	if msg.String() == "tab" {
		return MenuActionScoreboard
	}
	action, isQuit := km.MapKey(msg)
	if isQuit {
		return MenuActionQuit
	}
	return menuFromGame[action]
}
