package app

import "github.com/gdamore/tcell/v2"

// Action is a user command from the keyboard.
type Action int

// Keyboard actions.
const (
	ActionNone Action = iota
	ActionQuit
	ActionUndo
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionGrow
	ActionShrink
	ActionDouble
	ActionRecolor
	ActionRelabel
	ActionInsert
	ActionRemove
	ActionGroupToggle
	ActionSelectNext
	ActionSelectPrev
	ActionMark
	ActionRewindToMark
)

// KeyAction maps a key event to its action. Unbound keys map to ActionNone.
func KeyAction(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyEscape:
		return ActionQuit
	case tcell.KeyCtrlZ:
		return ActionUndo
	case tcell.KeyLeft:
		return ActionMoveLeft
	case tcell.KeyRight:
		return ActionMoveRight
	case tcell.KeyUp:
		return ActionMoveUp
	case tcell.KeyDown:
		return ActionMoveDown
	case tcell.KeyTab:
		return ActionSelectNext
	case tcell.KeyBacktab:
		return ActionSelectPrev
	case tcell.KeyRune:
		switch r {
		case 'q':
			return ActionQuit
		case 'u':
			return ActionUndo
		case 'h':
			return ActionMoveLeft
		case 'l':
			return ActionMoveRight
		case 'k':
			return ActionMoveUp
		case 'j':
			return ActionMoveDown
		case '+', '=':
			return ActionGrow
		case '-', '_':
			return ActionShrink
		case 'd':
			return ActionDouble
		case 'c':
			return ActionRecolor
		case 'r':
			return ActionRelabel
		case 'n':
			return ActionInsert
		case 'x':
			return ActionRemove
		case 'g':
			return ActionGroupToggle
		case 'm':
			return ActionMark
		case 'M':
			return ActionRewindToMark
		}
	}
	return ActionNone
}
