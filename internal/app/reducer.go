package app

import (
	"sort"

	"github.com/cohortapp/cohort-cli/internal/constants"
	"github.com/cohortapp/cohort-cli/internal/models"
	"github.com/cohortapp/cohort-cli/internal/utils"
)

// Apply is the single reducer. It is pure and total: unknown actions and
// failed guards return the original state pointer unchanged, so callers can
// detect change with a pointer comparison.
func Apply(s *State, action Action) *State {
	switch a := action.(type) {
	case Login:
		return applyLogin(s, a)
	case Logout:
		return applyLogout(s)
	case SetInitialData:
		return applySetInitialData(s, a)

	case SelectExplore:
		return navigate(s, constants.ViewExplore, "", "")
	case SelectHabit:
		if !s.LoggedIn() {
			return redirectToLogin(s)
		}
		return navigate(s, constants.ViewHabitDetail, a.ID, "")
	case ViewProfile:
		if !s.LoggedIn() {
			return redirectToLogin(s)
		}
		return navigate(s, constants.ViewProfile, "", a.ID)
	case SelectCreateHabit:
		if !s.LoggedIn() {
			return redirectToLogin(s)
		}
		return navigate(s, constants.ViewCreateHabit, "", "")
	case SelectEvents:
		if !s.LoggedIn() {
			return redirectToLogin(s)
		}
		return navigate(s, constants.ViewEvents, "", "")
	case SelectMessagingList:
		if !s.LoggedIn() {
			return redirectToLogin(s)
		}
		return navigate(s, constants.ViewMessagingList, "", "")
	case SelectGroupHabits:
		if !s.LoggedIn() {
			return redirectToLogin(s)
		}
		return navigate(s, constants.ViewGroupHabits, "", "")
	case SelectPrivateHabits:
		if !s.LoggedIn() {
			return redirectToLogin(s)
		}
		return navigate(s, constants.ViewPrivateHabits, "", "")
	case SelectAdminView:
		if !s.IsAdmin() {
			return s
		}
		return navigate(s, constants.ViewAdmin, "", "")
	case SelectConversation:
		if !s.LoggedIn() {
			return s
		}
		next := clone(s)
		next.ActiveConversationID = models.ConversationID(s.CurrentUser.ID, a.UserID)
		return next

	case CreateHabit:
		return applyCreateHabit(s, a)
	case CreateEvent:
		if !s.LoggedIn() {
			return s
		}
		next := clone(s)
		next.Events = append([]models.Event{a.Event}, s.Events...)
		return next

	case AddPost:
		return applyAddPost(s, a)
	case UpdateReactions:
		return applyUpdateReactions(s, a)
	case AddComment:
		return applyAddComment(s, a)

	case JoinHabit:
		return applyJoinHabit(s, a)
	case KickMember:
		return applyKickMember(s, a)

	case UpdateStreakLog:
		return applyUpdateStreakLog(s, a)
	case UpdateProfile:
		return applyUpdateProfile(s, a)
	case MarkNotificationsRead:
		return applyMarkNotificationsRead(s)

	case SendMessage:
		return applySendMessage(s, a)

	case OpenAuthModal:
		next := clone(s)
		next.AuthModal = AuthModal{Open: true, Mode: a.Mode}
		return next
	case CloseAuthModal:
		next := clone(s)
		next.AuthModal = AuthModal{}
		return next
	case SetAuthError:
		next := clone(s)
		next.AuthModal.Error = a.Message
		return next
	case OpenDayDetail:
		next := clone(s)
		next.DayDetail = DayDetailModal{Open: true, StreakID: a.StreakID, Date: a.Date}
		return next
	case CloseDayDetail:
		next := clone(s)
		next.DayDetail = DayDetailModal{}
		return next
	case OpenBoostModal:
		next := clone(s)
		next.BoostModal = BoostModal{Open: true, HabitID: a.HabitID}
		return next
	case CloseBoostModal:
		next := clone(s)
		next.BoostModal = BoostModal{}
		return next
	case OpenKickConfirm:
		next := clone(s)
		next.KickConfirm = KickConfirmModal{Open: true, HabitID: a.HabitID, UserID: a.UserID}
		return next
	case CloseKickConfirm:
		next := clone(s)
		next.KickConfirm = KickConfirmModal{}
		return next

	case AddBoostRequest:
		return applyAddBoostRequest(s, a)
	case UpdateBoostRequestStatus:
		return applyUpdateBoostRequestStatus(s, a)

	case SetTheme:
		next := clone(s)
		next.Theme = a.Theme
		return next
	case SetLanguage:
		next := clone(s)
		next.Language = a.Language
		return next
	}

	return s
}

// clone shallow-copies the state. Collections stay shared until a handler
// rebuilds the one it changes, so untouched slices keep their identity.
func clone(s *State) *State {
	next := *s
	return &next
}

// navigate sets the view, clears competing selection pointers, and records
// the canonical fragment for the new view.
func navigate(s *State, view constants.View, habitID, profileID string) *State {
	next := clone(s)
	next.View = view
	next.SelectedHabitID = habitID
	next.ViewingProfileID = profileID
	next.ActiveConversationID = ""
	next.Fragment = fragmentFor(view, habitID, profileID)
	return next
}

// redirectToLogin opens the auth modal without touching the current view.
func redirectToLogin(s *State) *State {
	next := clone(s)
	next.AuthModal = AuthModal{Open: true, Mode: constants.AuthModeLogin}
	return next
}

func fragmentFor(view constants.View, habitID, profileID string) string {
	switch view {
	case constants.ViewHabitDetail:
		return string(view) + "/" + habitID
	case constants.ViewProfile:
		return string(view) + "/" + profileID
	default:
		return string(view)
	}
}

func applyLogin(s *State, a Login) *State {
	next := clone(s)
	user := a.User
	profile := a.Profile
	next.CurrentUser = &user
	next.Profile = &profile
	next.AuthModal = AuthModal{}
	view := constants.ViewExplore
	if profile.IsAdmin {
		view = constants.ViewAdmin
	}
	next.View = view
	next.SelectedHabitID = ""
	next.ViewingProfileID = ""
	next.ActiveConversationID = ""
	next.Fragment = fragmentFor(view, "", "")
	return next
}

func applyLogout(s *State) *State {
	next := Initial()
	next.Language = s.Language
	next.Theme = s.Theme
	return next
}

func applySetInitialData(s *State, a SetInitialData) *State {
	next := clone(s)
	next.Habits = a.Habits
	next.Users = a.Users
	next.Events = a.Events
	next.Conversations = a.Conversations
	next.BoostRequests = a.BoostRequests
	next.BoostedHabitID = a.BoostedHabitID

	// Refetch wins: re-point the session profile at the fresh copy.
	if s.CurrentUser != nil {
		if p, ok := next.ProfileByID(s.CurrentUser.ID); ok {
			user := p.User
			next.CurrentUser = &user
			next.Profile = &p
		}
	}
	return next
}

func applyCreateHabit(s *State, a CreateHabit) *State {
	if !s.LoggedIn() {
		return s
	}
	habit := a.Habit
	if !habit.HasMember(s.CurrentUser.ID) {
		habit.Members = append([]models.User{*s.CurrentUser}, habit.Members...)
	}

	next := clone(s)
	next.Habits = append([]models.Habit{habit}, s.Habits...)
	next.setProfile(addStreak(*s.Profile, habit))

	// Group habits land on their detail view, private ones on the creator's
	// own profile.
	if habit.Type == models.HabitGroup {
		next.View = constants.ViewHabitDetail
		next.SelectedHabitID = habit.ID
		next.ViewingProfileID = ""
	} else {
		next.View = constants.ViewProfile
		next.SelectedHabitID = ""
		next.ViewingProfileID = s.CurrentUser.ID
	}
	next.ActiveConversationID = ""
	next.Fragment = fragmentFor(next.View, next.SelectedHabitID, next.ViewingProfileID)
	return next
}

func applyAddPost(s *State, a AddPost) *State {
	if !s.LoggedIn() {
		return s
	}
	habits, ok := updateHabit(s.Habits, a.HabitID, func(h models.Habit) models.Habit {
		posts := append([]models.Post{a.Post}, h.Posts...)
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[j].Timestamp.Before(posts[i].Timestamp)
		})
		h.Posts = posts
		return h
	})
	if !ok {
		return s
	}
	next := clone(s)
	next.Habits = habits
	return next
}

func applyUpdateReactions(s *State, a UpdateReactions) *State {
	if !s.LoggedIn() {
		return s
	}
	userID := s.CurrentUser.ID
	habits, ok := updatePost(s.Habits, a.HabitID, a.PostID, func(p models.Post) models.Post {
		reactions := make([]models.Reaction, 0, len(p.Reactions)+1)
		toggledOff := false
		for _, r := range p.Reactions {
			if r.UserID != userID {
				reactions = append(reactions, r)
				continue
			}
			// Same type toggles off, different type is replaced below.
			if r.Type == a.Type {
				toggledOff = true
			}
		}
		if !toggledOff {
			reactions = append(reactions, models.Reaction{UserID: userID, Type: a.Type})
		}
		p.Reactions = reactions
		return p
	})
	if !ok {
		return s
	}
	next := clone(s)
	next.Habits = habits
	return next
}

func applyAddComment(s *State, a AddComment) *State {
	if !s.LoggedIn() {
		return s
	}
	habits, ok := updatePost(s.Habits, a.HabitID, a.PostID, func(p models.Post) models.Post {
		p.Comments = append(append([]models.Comment{}, p.Comments...), a.Comment)
		return p
	})
	if !ok {
		return s
	}
	next := clone(s)
	next.Habits = habits
	return next
}

func applyJoinHabit(s *State, a JoinHabit) *State {
	if !s.LoggedIn() {
		return s
	}
	habit, ok := s.HabitByID(a.HabitID)
	if !ok {
		return s
	}

	next := clone(s)
	if !habit.HasMember(s.CurrentUser.ID) && !habit.Full() {
		habits, _ := updateHabit(s.Habits, a.HabitID, func(h models.Habit) models.Habit {
			h.Members = append(append([]models.User{}, h.Members...), *s.CurrentUser)
			return h
		})
		next.Habits = habits
		next.setProfile(addStreak(*s.Profile, habit))
	}

	next.View = constants.ViewHabitDetail
	next.SelectedHabitID = habit.ID
	next.ViewingProfileID = ""
	next.ActiveConversationID = ""
	next.Fragment = fragmentFor(constants.ViewHabitDetail, habit.ID, "")
	return next
}

func applyKickMember(s *State, a KickMember) *State {
	if !s.LoggedIn() {
		return s
	}
	if _, ok := s.HabitByID(a.HabitID); !ok {
		return s
	}

	// Member removal and streak removal are one transition: no intermediate
	// state may show a member without their streak or vice versa.
	next := clone(s)
	habits, _ := updateHabit(s.Habits, a.HabitID, func(h models.Habit) models.Habit {
		members := make([]models.User, 0, len(h.Members))
		for _, m := range h.Members {
			if m.ID != a.UserID {
				members = append(members, m)
			}
		}
		h.Members = members
		return h
	})
	next.Habits = habits

	users := make([]models.UserProfile, len(s.Users))
	for i, p := range s.Users {
		if p.ID == a.UserID {
			p.Streaks = removeStreaksFor(p.Streaks, a.HabitID)
		}
		users[i] = p
	}
	next.Users = users

	if s.Profile != nil && s.Profile.ID == a.UserID {
		profile := *s.Profile
		profile.Streaks = removeStreaksFor(profile.Streaks, a.HabitID)
		next.Profile = &profile
	}
	next.KickConfirm = KickConfirmModal{}
	return next
}

func applyUpdateStreakLog(s *State, a UpdateStreakLog) *State {
	if !s.LoggedIn() || s.Profile == nil {
		return s
	}
	found := false
	profile := *s.Profile
	streaks := make([]models.HabitStreak, len(profile.Streaks))
	for i, st := range profile.Streaks {
		if st.ID == a.StreakID {
			st.Logs = normalizeLogs(a.Logs)
			found = true
		}
		streaks[i] = st
	}
	if !found {
		return s
	}
	profile.Streaks = streaks

	next := clone(s)
	next.setProfile(profile)
	next.DayDetail = DayDetailModal{}
	return next
}

func applyUpdateProfile(s *State, a UpdateProfile) *State {
	if !s.LoggedIn() {
		return s
	}
	profile := a.Profile

	next := clone(s)
	next.setProfile(profile)

	// Fan out the new name/avatar into every denormalized copy so no stale
	// rendering survives: habit members, post authors, comment authors.
	habits := make([]models.Habit, len(s.Habits))
	for i, h := range s.Habits {
		members := make([]models.User, len(h.Members))
		for j, m := range h.Members {
			if m.ID == profile.ID {
				m.Name = profile.Name
				m.AvatarURL = profile.AvatarURL
			}
			members[j] = m
		}
		h.Members = members

		posts := make([]models.Post, len(h.Posts))
		for j, p := range h.Posts {
			if p.Author.ID == profile.ID {
				p.Author.Name = profile.Name
				p.Author.AvatarURL = profile.AvatarURL
			}
			comments := make([]models.Comment, len(p.Comments))
			for k, c := range p.Comments {
				if c.Author.ID == profile.ID {
					c.Author.Name = profile.Name
					c.Author.AvatarURL = profile.AvatarURL
				}
				comments[k] = c
			}
			p.Comments = comments
			posts[j] = p
		}
		h.Posts = posts
		habits[i] = h
	}
	next.Habits = habits
	return next
}

func applyMarkNotificationsRead(s *State) *State {
	if !s.LoggedIn() || s.Profile == nil {
		return s
	}
	profile := *s.Profile
	notifications := make([]models.Notification, len(profile.Notifications))
	for i, n := range profile.Notifications {
		n.IsRead = true
		notifications[i] = n
	}
	profile.Notifications = notifications

	next := clone(s)
	next.setProfile(profile)
	return next
}

func applySendMessage(s *State, a SendMessage) *State {
	if !s.LoggedIn() {
		return s
	}
	convID := models.ConversationID(s.CurrentUser.ID, a.To)

	next := clone(s)
	conversations := make([]models.Conversation, 0, len(s.Conversations)+1)
	appended := false
	for _, c := range s.Conversations {
		if c.ID == convID {
			c.Messages = append(append([]models.PrivateMessage{}, c.Messages...), a.Message)
			appended = true
		}
		conversations = append(conversations, c)
	}
	if !appended {
		conversations = append(conversations, models.Conversation{
			ID:             convID,
			ParticipantIDs: []string{s.CurrentUser.ID, a.To},
			Messages:       []models.PrivateMessage{a.Message},
		})
	}
	next.Conversations = conversations
	next.ActiveConversationID = convID
	return next
}

func applyAddBoostRequest(s *State, a AddBoostRequest) *State {
	if !s.LoggedIn() {
		return s
	}
	request := a.Request
	request.Status = models.BoostPending

	next := clone(s)
	next.BoostRequests = append(append([]models.BoostRequest{}, s.BoostRequests...), request)
	next.BoostModal = BoostModal{}
	return next
}

func applyUpdateBoostRequestStatus(s *State, a UpdateBoostRequestStatus) *State {
	if !s.IsAdmin() {
		return s
	}
	found := false
	var habitID string
	requests := make([]models.BoostRequest, len(s.BoostRequests))
	for i, r := range s.BoostRequests {
		if r.ID == a.ID && r.Status == models.BoostPending {
			r.Status = a.Status
			habitID = r.HabitID
			found = true
		}
		requests[i] = r
	}
	if !found {
		return s
	}

	next := clone(s)
	next.BoostRequests = requests
	// Only approval moves the featured pointer; rejection never touches it.
	if a.Status == models.BoostApproved {
		next.BoostedHabitID = habitID
	}
	return next
}

// setProfile installs an updated session profile and dual-writes it into the
// users collection so both copies stay consistent.
func (s *State) setProfile(profile models.UserProfile) {
	user := profile.User
	s.Profile = &profile
	s.CurrentUser = &user

	users := make([]models.UserProfile, len(s.Users))
	replaced := false
	for i, p := range s.Users {
		if p.ID == profile.ID {
			users[i] = profile
			replaced = true
		} else {
			users[i] = p
		}
	}
	if !replaced {
		users = append(users, profile)
	}
	s.Users = users
}

func addStreak(profile models.UserProfile, habit models.Habit) models.UserProfile {
	id := models.StreakID(profile.ID, habit.ID)
	for _, st := range profile.Streaks {
		if st.ID == id {
			return profile
		}
	}
	streaks := append(append([]models.HabitStreak{}, profile.Streaks...), models.HabitStreak{
		ID:      id,
		HabitID: habit.ID,
		Name:    habit.Name,
		Topic:   habit.Topic,
	})
	profile.Streaks = streaks
	return profile
}

func removeStreaksFor(streaks []models.HabitStreak, habitID string) []models.HabitStreak {
	kept := make([]models.HabitStreak, 0, len(streaks))
	for _, st := range streaks {
		if st.HabitID != habitID {
			kept = append(kept, st)
		}
	}
	return kept
}

// normalizeLogs keeps one log per calendar day (the last write for a day
// wins) and sorts ascending by date.
func normalizeLogs(logs []models.StreakLog) []models.StreakLog {
	byDay := make(map[string]models.StreakLog, len(logs))
	var order []string
	for _, l := range logs {
		key := utils.DayString(utils.DayOf(l.Date))
		if _, ok := byDay[key]; !ok {
			order = append(order, key)
		}
		byDay[key] = l
	}
	normalized := make([]models.StreakLog, 0, len(order))
	for _, key := range order {
		normalized = append(normalized, byDay[key])
	}
	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].Date.Before(normalized[j].Date)
	})
	return normalized
}

func updateHabit(habits []models.Habit, id string, fn func(models.Habit) models.Habit) ([]models.Habit, bool) {
	found := false
	next := make([]models.Habit, len(habits))
	for i, h := range habits {
		if h.ID == id {
			h = fn(h)
			found = true
		}
		next[i] = h
	}
	if !found {
		return nil, false
	}
	return next, true
}

func updatePost(habits []models.Habit, habitID, postID string, fn func(models.Post) models.Post) ([]models.Habit, bool) {
	foundPost := false
	next, ok := updateHabit(habits, habitID, func(h models.Habit) models.Habit {
		posts := make([]models.Post, len(h.Posts))
		for i, p := range h.Posts {
			if p.ID == postID {
				p = fn(p)
				foundPost = true
			}
			posts[i] = p
		}
		h.Posts = posts
		return h
	})
	if !ok || !foundPost {
		return nil, false
	}
	return next, true
}
