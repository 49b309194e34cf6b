package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/cohortapp/cohort-cli/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "cohort.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testUser(id, name string) models.User {
	return models.User{ID: id, Name: name, AvatarURL: "https://img.test/" + id + ".png"}
}

func testHabit(id string) models.Habit {
	return models.Habit{
		ID:          id,
		Name:        "Morning Run",
		Topic:       "fitness",
		Description: "5k before work",
		CreatorID:   "amy",
		MemberLimit: 10,
		Type:        models.HabitGroup,
		Members:     []models.User{testUser("amy", "Amy")},
	}
}

func TestSQLiteStore_InitSeedsDefaultPrefs(t *testing.T) {
	s := newTestStore(t)

	prefs, err := s.GetPrefs()
	if err != nil {
		t.Fatalf("GetPrefs failed: %v", err)
	}
	if prefs.Theme != "light" || prefs.Language != "en" {
		t.Errorf("Default prefs = %+v, want light/en", prefs)
	}
}

func TestSQLiteStore_InitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cohort.db")
	s := NewSQLiteStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("First Init failed: %v", err)
	}
	if err := s.SavePrefs(Prefs{Theme: "dark", Language: "de"}); err != nil {
		t.Fatalf("SavePrefs failed: %v", err)
	}
	s.Close()

	s2 := NewSQLiteStore(path)
	if err := s2.Init(); err != nil {
		t.Fatalf("Second Init failed: %v", err)
	}
	defer s2.Close()

	prefs, err := s2.GetPrefs()
	if err != nil {
		t.Fatalf("GetPrefs failed: %v", err)
	}
	if prefs.Theme != "dark" {
		t.Errorf("Re-init overwrote saved prefs: %+v", prefs)
	}
}

func TestSQLiteStore_LoadFailsWithoutInit(t *testing.T) {
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := s.Load(); err == nil {
		t.Error("Expected Load to fail for a database that was never initialized")
	}
}

func TestSQLiteStore_HabitRoundTrip(t *testing.T) {
	s := newTestStore(t)

	habit := testHabit("h1")
	if err := s.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	got, err := s.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if got.Name != habit.Name || got.Type != models.HabitGroup {
		t.Errorf("GetHabit = %+v", got)
	}
	if len(got.Members) != 1 || got.Members[0].ID != "amy" {
		t.Errorf("Members not persisted: %+v", got.Members)
	}

	all, err := s.GetAllHabits()
	if err != nil {
		t.Fatalf("GetAllHabits failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("GetAllHabits returned %d habits, want 1", len(all))
	}
}

func TestSQLiteStore_MembersKeepJoinOrder(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddHabit(testHabit("h1")); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	for _, id := range []string{"zed", "bob", "cara"} {
		if err := s.AddMember("h1", testUser(id, id)); err != nil {
			t.Fatalf("AddMember(%s) failed: %v", id, err)
		}
	}

	habit, err := s.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	want := []string{"amy", "zed", "bob", "cara"}
	if len(habit.Members) != len(want) {
		t.Fatalf("Got %d members, want %d", len(habit.Members), len(want))
	}
	for i, id := range want {
		if habit.Members[i].ID != id {
			t.Errorf("Members[%d] = %s, want %s", i, habit.Members[i].ID, id)
		}
	}
}

func TestSQLiteStore_RemoveMemberDropsStreakToo(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddHabit(testHabit("h1")); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if err := s.AddMember("h1", testUser("bob", "Bob")); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	profile := models.UserProfile{User: testUser("bob", "Bob"), MemberSince: time.Now()}
	if err := s.AddProfile(profile); err != nil {
		t.Fatalf("AddProfile failed: %v", err)
	}
	streak := models.HabitStreak{ID: models.StreakID("bob", "h1"), HabitID: "h1", Name: "Morning Run"}
	if err := s.AddStreak("bob", streak); err != nil {
		t.Fatalf("AddStreak failed: %v", err)
	}

	if err := s.RemoveMember("h1", "bob"); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}

	habit, err := s.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if habit.HasMember("bob") {
		t.Error("Bob still a member after removal")
	}
	got, err := s.GetProfile("bob")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if len(got.Streaks) != 0 {
		t.Errorf("Streaks survived removal: %+v", got.Streaks)
	}
}

func TestSQLiteStore_PostsNewestFirstCommentsInOrder(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddHabit(testHabit("h1")); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"p-old", "p-new"} {
		post := models.Post{
			ID:        id,
			HabitID:   "h1",
			Author:    testUser("amy", "Amy"),
			Content:   "done",
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Reactions: []models.Reaction{},
		}
		if err := s.AddPost(post); err != nil {
			t.Fatalf("AddPost(%s) failed: %v", id, err)
		}
	}
	for _, content := range []string{"first", "second"} {
		c := models.Comment{ID: "c-" + content, Author: testUser("bob", "Bob"), Content: content, Timestamp: base}
		if err := s.AddComment("p-new", c); err != nil {
			t.Fatalf("AddComment failed: %v", err)
		}
	}

	habit, err := s.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if len(habit.Posts) != 2 || habit.Posts[0].ID != "p-new" {
		t.Fatalf("Posts not newest-first: %+v", habit.Posts)
	}
	comments := habit.Posts[0].Comments
	if len(comments) != 2 || comments[0].Content != "first" || comments[1].Content != "second" {
		t.Errorf("Comments out of order: %+v", comments)
	}
}

func TestSQLiteStore_SetReactionsReplaces(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddHabit(testHabit("h1")); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	post := models.Post{ID: "p1", HabitID: "h1", Author: testUser("amy", "Amy"), Timestamp: time.Now()}
	if err := s.AddPost(post); err != nil {
		t.Fatalf("AddPost failed: %v", err)
	}

	reactions := []models.Reaction{{UserID: "bob", Type: models.ReactionCheer}}
	if err := s.SetReactions("p1", reactions); err != nil {
		t.Fatalf("SetReactions failed: %v", err)
	}

	habit, err := s.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	got := habit.Posts[0].Reactions
	if len(got) != 1 || got[0].UserID != "bob" || got[0].Type != models.ReactionCheer {
		t.Errorf("Reactions = %+v", got)
	}
}

func TestSQLiteStore_UpdateProfileCascadesDenormalizedCopies(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddHabit(testHabit("h1")); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	profile := models.UserProfile{User: testUser("amy", "Amy"), MemberSince: time.Now()}
	if err := s.AddProfile(profile); err != nil {
		t.Fatalf("AddProfile failed: %v", err)
	}
	post := models.Post{ID: "p1", HabitID: "h1", Author: profile.User, Timestamp: time.Now()}
	if err := s.AddPost(post); err != nil {
		t.Fatalf("AddPost failed: %v", err)
	}
	comment := models.Comment{ID: "c1", Author: profile.User, Content: "nice", Timestamp: time.Now()}
	if err := s.AddComment("p1", comment); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	profile.Name = "Amelia"
	profile.AvatarURL = "https://img.test/amelia.png"
	if err := s.UpdateProfile(profile); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	habit, err := s.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if habit.Members[0].Name != "Amelia" {
		t.Errorf("Member copy stale: %+v", habit.Members[0])
	}
	if habit.Posts[0].Author.Name != "Amelia" {
		t.Errorf("Post author copy stale: %+v", habit.Posts[0].Author)
	}
	if habit.Posts[0].Comments[0].Author.Name != "Amelia" {
		t.Errorf("Comment author copy stale: %+v", habit.Posts[0].Comments[0].Author)
	}
}

func TestSQLiteStore_StreakLogsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	profile := models.UserProfile{User: testUser("amy", "Amy"), MemberSince: time.Now()}
	if err := s.AddProfile(profile); err != nil {
		t.Fatalf("AddProfile failed: %v", err)
	}
	streakID := models.StreakID("amy", "h1")
	if err := s.AddStreak("amy", models.HabitStreak{ID: streakID, HabitID: "h1", Name: "Morning Run"}); err != nil {
		t.Fatalf("AddStreak failed: %v", err)
	}

	logs := []models.StreakLog{
		{Date: time.Date(2026, 8, 19, 7, 0, 0, 0, time.UTC), Note: "easy pace"},
		{Date: time.Date(2026, 8, 20, 7, 0, 0, 0, time.UTC)},
	}
	if err := s.UpdateStreakLogs("amy", streakID, logs); err != nil {
		t.Fatalf("UpdateStreakLogs failed: %v", err)
	}

	got, err := s.GetProfile("amy")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if len(got.Streaks) != 1 || len(got.Streaks[0].Logs) != 2 {
		t.Fatalf("Streaks = %+v", got.Streaks)
	}
	if !got.Streaks[0].Logs[0].Date.Equal(logs[0].Date) || got.Streaks[0].Logs[0].Note != "easy pace" {
		t.Errorf("Logs lost detail: %+v", got.Streaks[0].Logs)
	}
}

func TestSQLiteStore_BoostApprovalSetsBoostedHabit(t *testing.T) {
	s := newTestStore(t)

	req := models.BoostRequest{ID: "b1", HabitID: "h1", UserID: "amy", Status: models.BoostPending, Timestamp: time.Now()}
	if err := s.AddBoostRequest(req); err != nil {
		t.Fatalf("AddBoostRequest failed: %v", err)
	}

	if err := s.UpdateBoostRequestStatus("b1", models.BoostApproved); err != nil {
		t.Fatalf("UpdateBoostRequestStatus failed: %v", err)
	}

	boosted, err := s.GetBoostedHabitID()
	if err != nil {
		t.Fatalf("GetBoostedHabitID failed: %v", err)
	}
	if boosted != "h1" {
		t.Errorf("BoostedHabitID = %q, want h1", boosted)
	}

	// A decided request cannot be decided again.
	if err := s.UpdateBoostRequestStatus("b1", models.BoostRejected); err == nil {
		t.Error("Expected second status update on a decided request to fail")
	}
}

func TestSQLiteStore_RejectionLeavesBoostUnset(t *testing.T) {
	s := newTestStore(t)

	req := models.BoostRequest{ID: "b1", HabitID: "h1", UserID: "amy", Status: models.BoostPending, Timestamp: time.Now()}
	if err := s.AddBoostRequest(req); err != nil {
		t.Fatalf("AddBoostRequest failed: %v", err)
	}
	if err := s.UpdateBoostRequestStatus("b1", models.BoostRejected); err != nil {
		t.Fatalf("UpdateBoostRequestStatus failed: %v", err)
	}

	boosted, err := s.GetBoostedHabitID()
	if err != nil {
		t.Fatalf("GetBoostedHabitID failed: %v", err)
	}
	if boosted != "" {
		t.Errorf("BoostedHabitID = %q after rejection, want empty", boosted)
	}
}

func TestSQLiteStore_MessagesAppendToCanonicalConversation(t *testing.T) {
	s := newTestStore(t)

	convID := models.ConversationID("zed", "amy")
	participants := []string{"amy", "zed"}
	for i, text := range []string{"hey", "ready for the run?"} {
		msg := models.PrivateMessage{
			ID:        models.NewID(),
			SenderID:  participants[i%2],
			Content:   text,
			Timestamp: time.Now(),
		}
		if err := s.AddMessage(convID, participants, msg); err != nil {
			t.Fatalf("AddMessage failed: %v", err)
		}
	}

	convs, err := s.GetAllConversations()
	if err != nil {
		t.Fatalf("GetAllConversations failed: %v", err)
	}
	if len(convs) != 1 {
		t.Fatalf("Got %d conversations, want 1", len(convs))
	}
	if convs[0].ID != "amy__zed" {
		t.Errorf("Conversation ID = %q, want amy__zed", convs[0].ID)
	}
	if len(convs[0].Messages) != 2 || convs[0].Messages[1].Content != "ready for the run?" {
		t.Errorf("Messages = %+v", convs[0].Messages)
	}
}

func TestSQLiteStore_NotificationsLifecycle(t *testing.T) {
	s := newTestStore(t)

	profile := models.UserProfile{User: testUser("amy", "Amy"), MemberSince: time.Now()}
	if err := s.AddProfile(profile); err != nil {
		t.Fatalf("AddProfile failed: %v", err)
	}
	n := models.Notification{
		ID:           "n1",
		Type:         models.NotificationNewReaction,
		Sender:       testUser("bob", "Bob"),
		ReactionType: models.ReactionCheer,
		Timestamp:    time.Now(),
	}
	if err := s.AddNotification("amy", n); err != nil {
		t.Fatalf("AddNotification failed: %v", err)
	}

	got, err := s.GetProfile("amy")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if len(got.Notifications) != 1 || got.Notifications[0].IsRead {
		t.Fatalf("Notifications = %+v", got.Notifications)
	}

	if err := s.MarkNotificationsRead("amy"); err != nil {
		t.Fatalf("MarkNotificationsRead failed: %v", err)
	}
	got, err = s.GetProfile("amy")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if !got.Notifications[0].IsRead {
		t.Error("Notification still unread after MarkNotificationsRead")
	}
}

func TestSQLiteStore_EventsSortedByDate(t *testing.T) {
	s := newTestStore(t)

	later := models.Event{ID: "e2", Title: "Autumn 10k", Date: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), Type: models.EventOffline}
	sooner := models.Event{ID: "e1", Title: "Weekly check-in", Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Type: models.EventOnline}
	for _, e := range []models.Event{later, sooner} {
		if err := s.AddEvent(e); err != nil {
			t.Fatalf("AddEvent(%s) failed: %v", e.ID, err)
		}
	}

	events, err := s.GetAllEvents()
	if err != nil {
		t.Fatalf("GetAllEvents failed: %v", err)
	}
	if len(events) != 2 || events[0].ID != "e1" {
		t.Errorf("Events not date-sorted: %+v", events)
	}
}

func TestSQLiteStore_MutationsFireNotifier(t *testing.T) {
	s := newTestStore(t)
	ch := s.Notifier().Subscribe()

	if err := s.AddHabit(testHabit("h1")); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("AddHabit did not fire the change notifier")
	}
}
