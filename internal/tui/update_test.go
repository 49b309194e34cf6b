package tui

import (
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cohortapp/cohort-cli/internal/app"
	"github.com/cohortapp/cohort-cli/internal/constants"
	"github.com/cohortapp/cohort-cli/internal/models"
	"github.com/cohortapp/cohort-cli/internal/storage"
)

func testModel() Model {
	return Model{
		state: app.Initial(),
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
}

func loggedInModel(admin bool) Model {
	m := testModel()
	user := models.User{ID: "amy", Name: "Amy", IsAdmin: admin}
	m.state = app.Apply(m.state, app.Login{User: user, Profile: models.UserProfile{User: user}})
	return m
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestUpdate_TabCyclesViewsWhenLoggedIn(t *testing.T) {
	m := loggedInModel(false)

	want := []constants.View{
		constants.ViewGroupHabits,
		constants.ViewPrivateHabits,
		constants.ViewEvents,
		constants.ViewMessagingList,
		constants.ViewExplore,
	}
	for _, view := range want {
		m = press(t, m, "tab")
		if m.state.View != view {
			t.Errorf("View = %s, want %s", m.state.View, view)
		}
	}
}

func TestUpdate_GatedNavigationOpensLoginForm(t *testing.T) {
	m := testModel()

	m = press(t, m, "tab") // groupHabits is gated
	if m.state.View != constants.ViewExplore {
		t.Errorf("View moved to %s while anonymous", m.state.View)
	}
	if !m.state.AuthModal.Open {
		t.Error("Auth modal not opened")
	}
	if m.form == nil || m.formKind != formAuth {
		t.Error("Login form not shown for gated navigation")
	}
}

func TestUpdate_AdminTabOnlyForAdmins(t *testing.T) {
	m := loggedInModel(false)
	for i := 0; i < 10; i++ {
		m = press(t, m, "tab")
		if m.state.View == constants.ViewAdmin {
			t.Fatal("Non-admin cycled into the admin view")
		}
	}

	m = loggedInModel(true)
	seen := false
	for i := 0; i < 6; i++ {
		m = press(t, m, "tab")
		if m.state.View == constants.ViewAdmin {
			seen = true
		}
	}
	if !seen {
		t.Error("Admin never reached the admin view via tab")
	}
}

func TestUpdate_EnterOpensSelectedHabit(t *testing.T) {
	m := loggedInModel(false)
	m.state = app.Apply(m.state, app.SetInitialData{
		Habits: []models.Habit{
			{ID: "h1", Name: "Run", Type: models.HabitGroup},
			{ID: "h2", Name: "Read", Type: models.HabitGroup},
		},
	})

	m = press(t, m, "down", "enter")
	if m.state.View != constants.ViewHabitDetail || m.state.SelectedHabitID != "h2" {
		t.Errorf("View = %s, SelectedHabitID = %q", m.state.View, m.state.SelectedHabitID)
	}
}

func TestUpdate_BoostedHabitListedFirstInExplore(t *testing.T) {
	m := testModel()
	m.state = app.Apply(m.state, app.SetInitialData{
		Habits: []models.Habit{
			{ID: "h1", Name: "Run", Type: models.HabitGroup},
			{ID: "h2", Name: "Read", Type: models.HabitGroup},
			{ID: "h3", Name: "Private", Type: models.HabitPrivate},
		},
		BoostedHabitID: "h2",
	})

	habits := m.visibleHabits()
	if len(habits) != 2 {
		t.Fatalf("Explore shows %d habits, want 2 group habits", len(habits))
	}
	if habits[0].ID != "h2" {
		t.Errorf("Boosted habit not first: %s", habits[0].ID)
	}
}

func TestUpdate_ActionMsgFeedsReducer(t *testing.T) {
	m := testModel()
	user := models.User{ID: "amy", Name: "Amy"}

	next, _ := m.Update(ActionMsg{Action: app.Login{User: user, Profile: models.UserProfile{User: user}}})
	m = next.(Model)

	if !m.state.LoggedIn() {
		t.Fatal("Login action via ActionMsg not applied")
	}
	if m.state.View != constants.ViewExplore {
		t.Errorf("View = %s after non-admin login", m.state.View)
	}
}

func TestUpdate_KickConfirmFlow(t *testing.T) {
	m := loggedInModel(false)
	m.state = app.Apply(m.state, app.SetInitialData{
		Habits: []models.Habit{{
			ID:        "h1",
			Name:      "Run",
			Type:      models.HabitGroup,
			CreatorID: "amy",
			Members: []models.User{
				{ID: "amy", Name: "Amy"},
				{ID: "bob", Name: "Bob"},
			},
		}},
	})
	m.state = app.Apply(m.state, app.SelectHabit{ID: "h1"})

	m = press(t, m, "x")
	if !m.pickingMember {
		t.Fatal("Kick key did not enter member picking")
	}
	m = press(t, m, "down", "enter")
	if !m.state.KickConfirm.Open || m.state.KickConfirm.UserID != "bob" {
		t.Fatalf("KickConfirm = %+v", m.state.KickConfirm)
	}

	m = press(t, m, "n")
	if m.state.KickConfirm.Open {
		t.Error("Kick confirm still open after declining")
	}
	if habit, _ := m.state.HabitByID("h1"); !habit.HasMember("bob") {
		t.Error("Member removed despite declining")
	}
}

func TestUpdate_MemberPickOnlyForCreatorOrAdmin(t *testing.T) {
	m := loggedInModel(false)
	m.state = app.Apply(m.state, app.SetInitialData{
		Habits: []models.Habit{{
			ID:        "h1",
			Type:      models.HabitGroup,
			CreatorID: "zed",
			Members:   []models.User{{ID: "zed"}, {ID: "amy"}},
		}},
	})
	m.state = app.Apply(m.state, app.SelectHabit{ID: "h1"})

	m = press(t, m, "x")
	if m.pickingMember {
		t.Error("Non-creator non-admin entered member picking")
	}
}

func TestSplitConversationID(t *testing.T) {
	a, b, ok := splitConversationID("amy__zed")
	if !ok || a != "amy" || b != "zed" {
		t.Errorf("splitConversationID = %q, %q, %v", a, b, ok)
	}
	if _, _, ok := splitConversationID("loneid"); ok {
		t.Error("Expected failure for id without separator")
	}
}

func newTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	s := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "cohort.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// runCmd executes a background command synchronously and fails the test if
// it reports an error.
func runCmd(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("Expected a background command")
	}
	if msg := cmd(); msg != nil {
		if e, ok := msg.(errMsg); ok {
			t.Fatalf("Background command failed: %v", e.err)
		}
	}
}

func TestUpdate_ThemeKeyTogglesAndPersists(t *testing.T) {
	s := newTestStore(t)
	m := testModel()
	m.store = s

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	m = next.(Model)
	if m.state.Theme != "dark" {
		t.Fatalf("Theme = %q after toggle, want dark", m.state.Theme)
	}
	runCmd(t, cmd)
	prefs, err := s.GetPrefs()
	if err != nil {
		t.Fatalf("GetPrefs failed: %v", err)
	}
	if prefs.Theme != "dark" {
		t.Errorf("Stored theme = %q, want dark", prefs.Theme)
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	m = next.(Model)
	runCmd(t, cmd)
	if m.state.Theme != "light" {
		t.Errorf("Theme = %q after second toggle, want light", m.state.Theme)
	}
	if prefs, _ := s.GetPrefs(); prefs.Theme != "light" {
		t.Errorf("Stored theme = %q after second toggle, want light", prefs.Theme)
	}
}

func TestUpdate_JoinNotifiesExistingMembers(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddProfile(models.UserProfile{User: models.User{ID: "zed", Name: "Zed"}}); err != nil {
		t.Fatalf("AddProfile failed: %v", err)
	}
	if err := s.AddProfile(models.UserProfile{User: models.User{ID: "amy", Name: "Amy"}}); err != nil {
		t.Fatalf("AddProfile failed: %v", err)
	}
	habit := models.Habit{
		ID: "h1", Name: "Run", Type: models.HabitGroup, CreatorID: "zed",
		Members: []models.User{{ID: "zed", Name: "Zed"}},
	}
	if err := s.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	m := loggedInModel(false)
	m.store = s
	m.state = app.Apply(m.state, app.SetInitialData{Habits: []models.Habit{habit}})
	m.state = app.Apply(m.state, app.SelectHabit{ID: "h1"})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("J")})
	m = next.(Model)
	runCmd(t, cmd)

	stored, err := s.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if !stored.HasMember("amy") {
		t.Error("Join not persisted")
	}

	zed, err := s.GetProfile("zed")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if len(zed.Notifications) != 1 {
		t.Fatalf("Existing member has %d notifications, want 1", len(zed.Notifications))
	}
	n := zed.Notifications[0]
	if n.Type != models.NotificationNewMember || n.Sender.ID != "amy" || n.HabitName != "Run" {
		t.Errorf("Notification = %+v", n)
	}
	if amy, _ := s.GetProfile("amy"); len(amy.Notifications) != 0 {
		t.Errorf("Joiner notified about own join: %+v", amy.Notifications)
	}
}

func TestReact_ToggleOnNotifiesAuthorOnceOnly(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddProfile(models.UserProfile{User: models.User{ID: "zed", Name: "Zed"}}); err != nil {
		t.Fatalf("AddProfile failed: %v", err)
	}
	habit := models.Habit{
		ID: "h1", Name: "Run", Type: models.HabitGroup, CreatorID: "zed",
		Members: []models.User{{ID: "zed", Name: "Zed"}, {ID: "amy", Name: "Amy"}},
	}
	if err := s.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	post := models.Post{ID: "p1", HabitID: "h1", Author: models.User{ID: "zed", Name: "Zed"}, Content: "day one"}
	if err := s.AddPost(post); err != nil {
		t.Fatalf("AddPost failed: %v", err)
	}
	habit.Posts = []models.Post{post}

	m := loggedInModel(false)
	m.store = s
	m.state = app.Apply(m.state, app.SetInitialData{Habits: []models.Habit{habit}})
	m.state = app.Apply(m.state, app.SelectHabit{ID: "h1"})

	// Toggle on: the author hears about it.
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(Model)
	runCmd(t, cmd)
	zed, _ := s.GetProfile("zed")
	if len(zed.Notifications) != 1 {
		t.Fatalf("Author has %d notifications after cheer, want 1", len(zed.Notifications))
	}
	if n := zed.Notifications[0]; n.Type != models.NotificationNewReaction ||
		n.Sender.ID != "amy" || n.ReactionType != models.ReactionCheer {
		t.Errorf("Notification = %+v", n)
	}

	// Toggle off removes the reaction and stays silent.
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(Model)
	runCmd(t, cmd)
	zed, _ = s.GetProfile("zed")
	if len(zed.Notifications) != 1 {
		t.Errorf("Author has %d notifications after toggle-off, want still 1", len(zed.Notifications))
	}
}

func TestMessagingPartners_ConversationPartnersFirst(t *testing.T) {
	m := loggedInModel(false)
	m.state = app.Apply(m.state, app.SetInitialData{
		Users: []models.UserProfile{
			{User: models.User{ID: "amy", Name: "Amy"}},
			{User: models.User{ID: "bob", Name: "Bob"}},
			{User: models.User{ID: "zed", Name: "Zed"}},
		},
		Conversations: []models.Conversation{
			{ID: models.ConversationID("amy", "zed"), ParticipantIDs: []string{"amy", "zed"}},
		},
	})

	partners := m.messagingPartners()
	if len(partners) != 2 {
		t.Fatalf("Got %d partners, want 2 (self excluded)", len(partners))
	}
	if partners[0].ID != "zed" {
		t.Errorf("Existing conversation partner not first: %s", partners[0].ID)
	}
}
