package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/cohortapp/cohort-cli/internal/app"
	"github.com/cohortapp/cohort-cli/internal/constants"
	"github.com/cohortapp/cohort-cli/internal/keyring"
	"github.com/cohortapp/cohort-cli/internal/logger"
	"github.com/cohortapp/cohort-cli/internal/models"
	"github.com/cohortapp/cohort-cli/internal/notify"
	"github.com/cohortapp/cohort-cli/internal/storage"
	"github.com/cohortapp/cohort-cli/internal/streak"
	"github.com/cohortapp/cohort-cli/internal/sync"
	"github.com/cohortapp/cohort-cli/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ActionMsg:
		m.apply(msg.Action)
		m.syncForms()
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case errMsg:
		logger.Error("background operation failed", "err", msg.err)
		m.status = "Something went wrong, see the log for details"
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(keyMsg)
	}
	return m, nil
}

// syncForms opens or closes huh forms to track the reducer's modal state.
func (m *Model) syncForms() {
	switch {
	case m.state.AuthModal.Open && m.formKind != formAuth:
		m.authForm = &authFormModel{Mode: m.state.AuthModal.Mode}
		m.form = newAuthForm(m.authForm)
		m.formKind = formAuth
	case m.state.DayDetail.Open && m.formKind != formDayLog:
		m.dayLog = &dayLogFormModel{}
		m.form = newDayLogForm(m.dayLog)
		m.formKind = formDayLog
	case m.state.BoostModal.Open && m.formKind != formBoost:
		m.boost = &boostFormModel{}
		m.form = newBoostForm(m.boost)
		m.formKind = formBoost
	case !m.state.AuthModal.Open && m.formKind == formAuth,
		!m.state.DayDetail.Open && m.formKind == formDayLog,
		!m.state.BoostModal.Open && m.formKind == formBoost:
		m.dropForm()
	}
}

func (m *Model) dropForm() {
	m.form = nil
	m.formKind = formNone
}

func (m *Model) openForm(kind formKind, form *huh.Form) tea.Cmd {
	m.form = form
	m.formKind = kind
	return form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.submitForm()
	case huh.StateAborted:
		kind := m.formKind
		m.dropForm()
		switch kind {
		case formAuth:
			m.apply(app.CloseAuthModal{})
		case formDayLog:
			m.apply(app.CloseDayDetail{})
		case formBoost:
			m.apply(app.CloseBoostModal{})
		}
		return m, nil
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	kind := m.formKind
	m.dropForm()

	switch kind {
	case formAuth:
		return m.submitAuth()
	case formHabit:
		return m.submitHabit()
	case formEvent:
		return m.submitEvent()
	case formPost:
		return m.submitPost()
	case formComment:
		return m.submitComment()
	case formDayLog:
		return m.submitDayLog()
	case formBoost:
		return m.submitBoost()
	case formMessage:
		return m.submitMessage()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Kick confirmation takes over y/n while open.
	if m.state.KickConfirm.Open {
		switch msg.String() {
		case "y":
			kick := app.KickMember{HabitID: m.state.KickConfirm.HabitID, UserID: m.state.KickConfirm.UserID}
			m.apply(kick)
			m.apply(app.CloseKickConfirm{})
			return m, m.persist(func() error {
				return m.store.RemoveMember(kick.HabitID, kick.UserID)
			})
		case "n", "esc":
			m.apply(app.CloseKickConfirm{})
			return m, nil
		}
		return m, nil
	}

	if m.pickingMember {
		return m.handleMemberPick(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m, m.applyNav(m.nextView(1))

	case key.Matches(msg, m.keys.ShiftTab):
		return m, m.applyNav(m.nextView(-1))

	case key.Matches(msg, m.keys.Back):
		m.apply(app.SelectExplore{})
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Login):
		if !m.state.LoggedIn() {
			m.apply(app.OpenAuthModal{Mode: constants.AuthModeLogin})
			m.syncForms()
			if m.form != nil {
				return m, m.form.Init()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		if m.state.LoggedIn() {
			return m, m.logoutCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Profile):
		if m.state.LoggedIn() {
			m.apply(app.ViewProfile{ID: m.state.CurrentUser.ID})
		} else {
			m.apply(app.ViewProfile{ID: ""})
			m.syncForms()
			if m.form != nil {
				return m, m.form.Init()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		next := "dark"
		if m.state.Theme == "dark" {
			next = "light"
		}
		m.apply(app.SetTheme{Theme: next})
		m.status = "Theme: " + next
		lang := m.state.Language
		return m, m.persist(func() error {
			return m.store.SavePrefs(storage.Prefs{Theme: next, Language: lang})
		})

	case key.Matches(msg, m.keys.Create):
		cmd := m.applyNav(app.SelectCreateHabit{})
		if m.state.View == constants.ViewCreateHabit {
			m.habit = &habitFormModel{}
			return m, m.openForm(formHabit, newHabitForm(m.habit))
		}
		return m, cmd
	}

	return m.handleViewKey(msg)
}

// applyNav dispatches a navigation action; gated ones open the auth modal
// for anonymous users, which syncForms turns into the login form.
func (m *Model) applyNav(action app.Action) tea.Cmd {
	m.apply(action)
	m.syncForms()
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}

func (m Model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state.View {
	case constants.ViewExplore, constants.ViewGroupHabits, constants.ViewPrivateHabits:
		if key.Matches(msg, m.keys.Enter) {
			habits := m.visibleHabits()
			if m.cursor < len(habits) {
				cmd := m.applyNav(app.SelectHabit{ID: habits[m.cursor].ID})
				return m, cmd
			}
		}

	case constants.ViewHabitDetail:
		return m.handleHabitKey(msg)

	case constants.ViewEvents:
		if key.Matches(msg, m.keys.AddEvent) {
			if !m.state.LoggedIn() {
				return m, m.applyNav(app.OpenAuthModal{Mode: constants.AuthModeLogin})
			}
			m.event = &eventFormModel{IsFree: true}
			return m, m.openForm(formEvent, newEventForm(m.event))
		}

	case constants.ViewMessagingList:
		partners := m.messagingPartners()
		if key.Matches(msg, m.keys.Enter) && m.cursor < len(partners) {
			m.apply(app.SelectConversation{UserID: partners[m.cursor].ID})
			return m, nil
		}
		if key.Matches(msg, m.keys.Message) && m.cursor < len(partners) {
			m.apply(app.SelectConversation{UserID: partners[m.cursor].ID})
			m.message = &messageFormModel{}
			return m, m.openForm(formMessage, newMessageForm(m.message))
		}

	case constants.ViewProfile:
		if key.Matches(msg, m.keys.ReadAll) && m.state.LoggedIn() &&
			m.state.ViewingProfileID == m.state.CurrentUser.ID {
			m.apply(app.MarkNotificationsRead{})
			userID := m.state.CurrentUser.ID
			return m, m.persist(func() error {
				return m.store.MarkNotificationsRead(userID)
			})
		}

	case constants.ViewAdmin:
		return m.handleAdminKey(msg)
	}
	return m, nil
}

func (m Model) handleHabitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	habit, ok := m.state.HabitByID(m.state.SelectedHabitID)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Post):
		if m.state.LoggedIn() {
			m.post = &postFormModel{}
			return m, m.openForm(formPost, newPostForm(m.post))
		}

	case key.Matches(msg, m.keys.Comment):
		if m.state.LoggedIn() && m.cursor < len(habit.Posts) {
			m.comment = &commentFormModel{}
			return m, m.openForm(formComment, newCommentForm(m.comment))
		}

	case key.Matches(msg, m.keys.Cheer):
		return m.react(habit, models.ReactionCheer)

	case key.Matches(msg, m.keys.Push):
		return m.react(habit, models.ReactionPush)

	case key.Matches(msg, m.keys.Join):
		if m.state.LoggedIn() && !habit.HasMember(m.state.CurrentUser.ID) {
			m.apply(app.JoinHabit{HabitID: habit.ID})
			user := *m.state.CurrentUser
			st := models.HabitStreak{
				ID:      models.StreakID(user.ID, habit.ID),
				HabitID: habit.ID,
				Name:    habit.Name,
				Topic:   habit.Topic,
			}
			return m, m.persist(func() error {
				if err := m.store.AddMember(habit.ID, user); err != nil {
					return err
				}
				if err := m.store.AddStreak(user.ID, st); err != nil {
					return err
				}
				// habit still holds the pre-join member list.
				notify.NewMember(m.store, habit, user)
				return nil
			})
		}

	case key.Matches(msg, m.keys.LogDay):
		if m.state.LoggedIn() {
			streakID := models.StreakID(m.state.CurrentUser.ID, habit.ID)
			m.apply(app.OpenDayDetail{StreakID: streakID, Date: utils.DayOf(time.Now())})
			m.syncForms()
			if m.form != nil {
				return m, m.form.Init()
			}
		}

	case key.Matches(msg, m.keys.Boost):
		if m.state.LoggedIn() && habit.Type == models.HabitGroup {
			m.apply(app.OpenBoostModal{HabitID: habit.ID})
			m.syncForms()
			if m.form != nil {
				return m, m.form.Init()
			}
		}

	case key.Matches(msg, m.keys.Kick):
		canKick := m.state.IsAdmin() ||
			(m.state.LoggedIn() && habit.CreatorID == m.state.CurrentUser.ID)
		if canKick && len(habit.Members) > 0 {
			m.pickingMember = true
			m.memberCursor = 0
		}
	}
	return m, nil
}

func (m Model) handleMemberPick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	habit, ok := m.state.HabitByID(m.state.SelectedHabitID)
	if !ok {
		m.pickingMember = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.memberCursor > 0 {
			m.memberCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.memberCursor < len(habit.Members)-1 {
			m.memberCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		m.pickingMember = false
		if m.memberCursor < len(habit.Members) {
			m.apply(app.OpenKickConfirm{
				HabitID: habit.ID,
				UserID:  habit.Members[m.memberCursor].ID,
			})
		}
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.pickingMember = false
	}
	return m, nil
}

func (m Model) handleAdminKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := m.pendingBoosts()
	if m.cursor >= len(pending) {
		return m, nil
	}
	req := pending[m.cursor]

	decide := func(status models.BoostStatus) (tea.Model, tea.Cmd) {
		m.apply(app.UpdateBoostRequestStatus{ID: req.ID, Status: status})
		return m, m.persist(func() error {
			return m.store.UpdateBoostRequestStatus(req.ID, status)
		})
	}

	switch msg.String() {
	case "y":
		return decide(models.BoostApproved)
	case "n":
		return decide(models.BoostRejected)
	}
	return m, nil
}

func (m Model) react(habit models.Habit, kind models.ReactionType) (tea.Model, tea.Cmd) {
	if !m.state.LoggedIn() || m.cursor >= len(habit.Posts) {
		return m, nil
	}
	postID := habit.Posts[m.cursor].ID
	m.apply(app.UpdateReactions{HabitID: habit.ID, PostID: postID, Type: kind})

	// Persist the reducer's post-toggle reaction list.
	updated, ok := m.state.HabitByID(habit.ID)
	if !ok {
		return m, nil
	}
	me := *m.state.CurrentUser
	for _, p := range updated.Posts {
		if p.ID == postID {
			post := p
			reactions := p.Reactions
			toggledOn := false
			for _, r := range reactions {
				if r.UserID == me.ID && r.Type == kind {
					toggledOn = true
				}
			}
			habitName := updated.Name
			return m, m.persist(func() error {
				if err := m.store.SetReactions(postID, reactions); err != nil {
					return err
				}
				if toggledOn {
					notify.NewReaction(m.store, habitName, post, me, kind)
				}
				return nil
			})
		}
	}
	return m, nil
}

// Form submissions

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	f := m.authForm
	store, gen, sessions := m.store, m.gen, m.sessions
	return m, func() tea.Msg {
		profiles, err := store.GetAllProfiles()
		if err != nil {
			return ActionMsg{app.SetAuthError{Message: "Could not reach the store"}}
		}

		var existing *models.UserProfile
		for i := range profiles {
			if profiles[i].Name == f.Name {
				existing = &profiles[i]
				break
			}
		}

		switch f.Mode {
		case constants.AuthModeLogin:
			if existing == nil {
				return ActionMsg{app.SetAuthError{Message: "No account named " + f.Name}}
			}
		case constants.AuthModeRegister:
			if existing != nil {
				return ActionMsg{app.SetAuthError{Message: f.Name + " is already taken"}}
			}
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			profile := models.UserProfile{
				User:        models.User{ID: models.NewID(), Name: f.Name},
				Motto:       gen.Motto(ctx, f.Name),
				MemberSince: time.Now(),
			}
			cancel()
			if err := store.AddProfile(profile); err != nil {
				return ActionMsg{app.SetAuthError{Message: "Could not create the account"}}
			}
			existing = &profile
		}

		if err := keyring.SetSessionToken(existing.ID); err != nil {
			logger.Warn("session not persisted to keyring", "err", err)
		}
		sessions <- sync.Session{Present: true, User: existing.User, Profile: *existing}
		return nil
	}
}

func (m *Model) logoutCmd() tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		if err := keyring.DeleteSessionToken(); err != nil {
			logger.Warn("session token not removed from keyring", "err", err)
		}
		sessions <- sync.Session{Present: false}
		return nil
	}
}

func (m Model) submitHabit() (tea.Model, tea.Cmd) {
	f := m.habit
	limit, _ := strconv.Atoi(f.MemberLimit)
	habitType := models.HabitGroup
	if f.Private {
		habitType = models.HabitPrivate
	}
	habit := models.Habit{
		ID:          models.NewID(),
		Name:        f.Name,
		Topic:       f.Topic,
		Description: f.Description,
		Rules:       f.Rules,
		MemberLimit: limit,
		Type:        habitType,
	}
	if m.state.LoggedIn() {
		habit.CreatorID = m.state.CurrentUser.ID
	}

	m.apply(app.CreateHabit{Habit: habit})

	// The reducer added the creator to the member list; persist its copy.
	stored, ok := m.state.HabitByID(habit.ID)
	if !ok {
		return m, nil
	}
	creatorID := habit.CreatorID
	st := models.HabitStreak{
		ID:      models.StreakID(creatorID, habit.ID),
		HabitID: habit.ID,
		Name:    habit.Name,
		Topic:   habit.Topic,
	}
	return m, m.persist(func() error {
		if err := m.store.AddHabit(stored); err != nil {
			return err
		}
		return m.store.AddStreak(creatorID, st)
	})
}

func (m Model) submitEvent() (tea.Model, tea.Cmd) {
	f := m.event
	date, err := utils.ParseDay(f.Date)
	if err != nil {
		m.status = "Event not created: bad date " + f.Date
		return m, nil
	}
	eventType := models.EventOffline
	if f.Online {
		eventType = models.EventOnline
	}
	event := models.Event{
		ID:        models.NewID(),
		Title:     f.Title,
		Date:      date,
		StartTime: f.StartTime,
		Type:      eventType,
		Location:  f.Location,
		OnlineURL: f.OnlineURL,
		IsFree:    f.IsFree,
		Price:     f.Price,
		Organizer: f.Organizer,
	}
	m.apply(app.CreateEvent{Event: event})
	return m, m.persist(func() error {
		return m.store.AddEvent(event)
	})
}

func (m Model) submitPost() (tea.Model, tea.Cmd) {
	if !m.state.LoggedIn() {
		return m, nil
	}
	f := m.post
	habit, ok := m.state.HabitByID(m.state.SelectedHabitID)
	if !ok {
		return m, nil
	}

	count := 0
	if m.state.Profile != nil {
		for _, st := range m.state.Profile.Streaks {
			if st.HabitID == habit.ID {
				count = streak.CurrentNow(st.Logs)
			}
		}
	}

	post := models.Post{
		ID:        models.NewID(),
		HabitID:   habit.ID,
		Author:    *m.state.CurrentUser,
		Content:   f.Content,
		Streak:    count,
		Reactions: []models.Reaction{},
		Timestamp: time.Now(),
	}

	var uploadPath string
	if f.ImageURL != "" {
		uploadPath = "uploads/posts/" + post.ID + filepath.Ext(f.ImageURL)
		post.ImageURL = m.media.PublicURL(uploadPath)
	}

	m.apply(app.AddPost{HabitID: habit.ID, Post: post})
	localImage := f.ImageURL
	return m, m.persist(func() error {
		if uploadPath != "" {
			data, err := os.ReadFile(localImage)
			if err != nil {
				return fmt.Errorf("reading post image: %w", err)
			}
			if err := m.media.Upload(uploadPath, data); err != nil {
				return err
			}
		}
		if err := m.store.AddPost(post); err != nil {
			return err
		}
		notify.NewPost(m.store, habit, post.Author, post.Content)
		return nil
	})
}

func (m Model) submitComment() (tea.Model, tea.Cmd) {
	if !m.state.LoggedIn() {
		return m, nil
	}
	habit, ok := m.state.HabitByID(m.state.SelectedHabitID)
	if !ok || m.cursor >= len(habit.Posts) {
		return m, nil
	}
	postID := habit.Posts[m.cursor].ID
	comment := models.Comment{
		ID:        models.NewID(),
		Author:    *m.state.CurrentUser,
		Content:   m.comment.Content,
		Timestamp: time.Now(),
	}
	m.apply(app.AddComment{HabitID: habit.ID, PostID: postID, Comment: comment})
	return m, m.persist(func() error {
		return m.store.AddComment(postID, comment)
	})
}

func (m Model) submitDayLog() (tea.Model, tea.Cmd) {
	if !m.state.LoggedIn() || m.state.Profile == nil {
		return m, nil
	}
	streakID := m.state.DayDetail.StreakID
	date := m.state.DayDetail.Date

	var logs []models.StreakLog
	for _, st := range m.state.Profile.Streaks {
		if st.ID == streakID {
			logs = append([]models.StreakLog{}, st.Logs...)
		}
	}
	logs = append(logs, models.StreakLog{Date: date, Note: m.dayLog.Note})

	m.apply(app.UpdateStreakLog{StreakID: streakID, Logs: logs})

	// Persist the normalized list the reducer kept.
	userID := m.state.CurrentUser.ID
	for _, st := range m.state.Profile.Streaks {
		if st.ID == streakID {
			saved := st.Logs
			return m, m.persist(func() error {
				return m.store.UpdateStreakLogs(userID, streakID, saved)
			})
		}
	}
	return m, nil
}

func (m Model) submitBoost() (tea.Model, tea.Cmd) {
	if !m.state.LoggedIn() {
		return m, nil
	}
	habitID := m.state.BoostModal.HabitID
	req := models.BoostRequest{
		ID:         models.NewID(),
		HabitID:    habitID,
		UserID:     m.state.CurrentUser.ID,
		Status:     models.BoostPending,
		Timestamp:  time.Now(),
		ProofImage: "",
	}
	localProof := m.boost.ProofImage
	uploadPath := "uploads/boosts/" + req.ID + filepath.Ext(localProof)
	req.ProofImage = m.media.PublicURL(uploadPath)

	m.apply(app.AddBoostRequest{Request: req})
	return m, m.persist(func() error {
		data, err := os.ReadFile(localProof)
		if err != nil {
			return fmt.Errorf("reading proof image: %w", err)
		}
		if err := m.media.Upload(uploadPath, data); err != nil {
			return err
		}
		return m.store.AddBoostRequest(req)
	})
}

func (m Model) submitMessage() (tea.Model, tea.Cmd) {
	if !m.state.LoggedIn() || m.state.ActiveConversationID == "" {
		return m, nil
	}
	partnerID := m.conversationPartnerID()
	if partnerID == "" {
		return m, nil
	}
	msg := models.PrivateMessage{
		ID:        models.NewID(),
		SenderID:  m.state.CurrentUser.ID,
		Content:   m.message.Content,
		Timestamp: time.Now(),
	}
	m.apply(app.SendMessage{To: partnerID, Message: msg})

	convID := models.ConversationID(m.state.CurrentUser.ID, partnerID)
	participants := []string{m.state.CurrentUser.ID, partnerID}
	sender := *m.state.CurrentUser
	return m, m.persist(func() error {
		if err := m.store.AddMessage(convID, participants, msg); err != nil {
			return err
		}
		notify.NewMessage(m.store, partnerID, sender)
		return nil
	})
}

// Derived lists

func (m Model) visibleHabits() []models.Habit {
	var out []models.Habit
	switch m.state.View {
	case constants.ViewGroupHabits:
		for _, h := range m.state.Habits {
			if h.Type == models.HabitGroup {
				out = append(out, h)
			}
		}
	case constants.ViewPrivateHabits:
		if !m.state.LoggedIn() {
			return nil
		}
		for _, h := range m.state.Habits {
			if h.Type == models.HabitPrivate && h.HasMember(m.state.CurrentUser.ID) {
				out = append(out, h)
			}
		}
	default:
		// Explore shows group habits with the boosted one first.
		for _, h := range m.state.Habits {
			if h.Type != models.HabitGroup {
				continue
			}
			if h.ID == m.state.BoostedHabitID {
				out = append([]models.Habit{h}, out...)
			} else {
				out = append(out, h)
			}
		}
	}
	return out
}

// messagingPartners lists everyone the user could message, existing
// conversation partners first.
func (m Model) messagingPartners() []models.User {
	if !m.state.LoggedIn() {
		return nil
	}
	me := m.state.CurrentUser.ID

	inConv := make(map[string]bool)
	for _, c := range m.state.Conversations {
		for _, id := range c.ParticipantIDs {
			if id != me {
				inConv[id] = true
			}
		}
	}

	var partners, others []models.User
	for _, p := range m.state.Users {
		if p.ID == me {
			continue
		}
		if inConv[p.ID] {
			partners = append(partners, p.User)
		} else {
			others = append(others, p.User)
		}
	}
	sort.Slice(partners, func(i, j int) bool { return partners[i].Name < partners[j].Name })
	sort.Slice(others, func(i, j int) bool { return others[i].Name < others[j].Name })
	return append(partners, others...)
}

func (m Model) conversationPartnerID() string {
	for _, c := range m.state.Conversations {
		if c.ID == m.state.ActiveConversationID {
			for _, id := range c.ParticipantIDs {
				if id != m.state.CurrentUser.ID {
					return id
				}
			}
		}
	}
	// A fresh conversation has no stored record yet; recover the partner
	// from the deterministic id.
	a, b, found := splitConversationID(m.state.ActiveConversationID)
	if !found {
		return ""
	}
	if a == m.state.CurrentUser.ID {
		return b
	}
	return a
}

func splitConversationID(id string) (a, b string, ok bool) {
	a, b, ok = strings.Cut(id, "__")
	return a, b, ok && a != "" && b != ""
}

func (m Model) pendingBoosts() []models.BoostRequest {
	var out []models.BoostRequest
	for _, r := range m.state.BoostRequests {
		if r.Status == models.BoostPending {
			out = append(out, r)
		}
	}
	return out
}

func (m Model) listLen() int {
	switch m.state.View {
	case constants.ViewExplore, constants.ViewGroupHabits, constants.ViewPrivateHabits:
		return len(m.visibleHabits())
	case constants.ViewHabitDetail:
		if h, ok := m.state.HabitByID(m.state.SelectedHabitID); ok {
			return len(h.Posts)
		}
	case constants.ViewEvents:
		return len(m.state.Events)
	case constants.ViewMessagingList:
		return len(m.messagingPartners())
	case constants.ViewAdmin:
		return len(m.pendingBoosts())
	}
	return 0
}

func (m Model) nextView(direction int) app.Action {
	order := []app.Action{
		app.SelectExplore{},
		app.SelectGroupHabits{},
		app.SelectPrivateHabits{},
		app.SelectEvents{},
		app.SelectMessagingList{},
	}
	views := []constants.View{
		constants.ViewExplore,
		constants.ViewGroupHabits,
		constants.ViewPrivateHabits,
		constants.ViewEvents,
		constants.ViewMessagingList,
	}
	if m.state.IsAdmin() {
		order = append(order, app.SelectAdminView{})
		views = append(views, constants.ViewAdmin)
	}

	current := 0
	for i, v := range views {
		if m.state.View == v {
			current = i
			break
		}
	}
	next := (current + direction + len(order)) % len(order)
	return order[next]
}
