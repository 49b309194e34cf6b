package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Login    key.Binding
	Logout   key.Binding
	Profile  key.Binding
	Create   key.Binding
	Post     key.Binding
	Comment  key.Binding
	Cheer    key.Binding
	Push     key.Binding
	Join     key.Binding
	LogDay   key.Binding
	Boost    key.Binding
	Kick     key.Binding
	AddEvent key.Binding
	Message  key.Binding
	ReadAll  key.Binding
	Theme    key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
		Login:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log in")),
		Logout:   key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "log out")),
		Profile:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "my profile")),
		Create:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new habit")),
		Post:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "new post")),
		Comment:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "comment")),
		Cheer:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "cheer")),
		Push:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "push")),
		Join:     key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "join habit")),
		LogDay:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "log today")),
		Boost:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "request boost")),
		Kick:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "kick member")),
		AddEvent: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add event")),
		Message:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write message")),
		ReadAll:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "mark read")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle theme")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
