// Package tui is the interactive host shell. It owns no business rules:
// every user interaction becomes an action fed through app.Apply, and all
// I/O runs in commands outside the reducer.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/cohortapp/cohort-cli/internal/ai"
	"github.com/cohortapp/cohort-cli/internal/app"
	"github.com/cohortapp/cohort-cli/internal/objectstore"
	"github.com/cohortapp/cohort-cli/internal/storage"
	"github.com/cohortapp/cohort-cli/internal/sync"
)

// ActionMsg carries an action dispatched from outside the update loop,
// primarily by the sync bridge.
type ActionMsg struct {
	Action app.Action
}

type statusMsg string

type errMsg struct{ err error }

type formKind int

const (
	formNone formKind = iota
	formAuth
	formHabit
	formEvent
	formPost
	formComment
	formDayLog
	formBoost
	formMessage
)

type Model struct {
	state    *app.State
	store    storage.Provider
	media    objectstore.Store
	gen      ai.Generator
	sessions chan<- sync.Session

	keys KeyMap
	help help.Model

	form     *huh.Form
	formKind formKind
	authForm *authFormModel
	habit    *habitFormModel
	event    *eventFormModel
	post     *postFormModel
	comment  *commentFormModel
	dayLog   *dayLogFormModel
	boost    *boostFormModel
	message  *messageFormModel

	// cursor indexes the list shown by the current view. In the habit
	// detail view it indexes posts; member selection for kicking has its
	// own cursor and picking state.
	cursor        int
	memberCursor  int
	pickingMember bool

	status   string
	width    int
	height   int
	quitting bool
}

func NewModel(store storage.Provider, media objectstore.Store, gen ai.Generator, sessions chan<- sync.Session) Model {
	state := app.Initial()
	if prefs, err := store.GetPrefs(); err == nil {
		state = app.Apply(state, app.SetTheme{Theme: prefs.Theme})
		state = app.Apply(state, app.SetLanguage{Language: prefs.Language})
	}
	return Model{
		state:    state,
		store:    store,
		media:    media,
		gen:      gen,
		sessions: sessions,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// State exposes the current application state to the command surface.
func (m Model) State() *app.State {
	return m.state
}

// apply runs the reducer and resets the list cursor when the view moved.
func (m *Model) apply(action app.Action) {
	prev := m.state
	m.state = app.Apply(m.state, action)
	if m.state != prev && m.state.Fragment != prev.Fragment {
		m.cursor = 0
	}
}

// persist runs a store write off the update loop. Failures surface as a
// status line and a log entry; the write is not retried.
func (m Model) persist(fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Enter, m.keys.Help, m.keys.Quit}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Back},
		{m.keys.Login, m.keys.Logout, m.keys.Profile, m.keys.Create, m.keys.Join},
		{m.keys.Post, m.keys.Comment, m.keys.Cheer, m.keys.Push, m.keys.LogDay, m.keys.Boost, m.keys.Kick},
		{m.keys.AddEvent, m.keys.Message, m.keys.ReadAll, m.keys.Theme, m.keys.Help, m.keys.Quit},
	}
}
