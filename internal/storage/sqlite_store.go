package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cohortapp/cohort-cli/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	topic TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	creator_id TEXT NOT NULL,
	rules TEXT NOT NULL DEFAULT '',
	highlight TEXT NOT NULL DEFAULT '',
	highlight_icon TEXT NOT NULL DEFAULT '',
	member_limit INTEGER NOT NULL DEFAULT 0,
	cover_image TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS habit_members (
	habit_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	avatar_url TEXT NOT NULL DEFAULT '',
	is_admin INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL,
	PRIMARY KEY (habit_id, user_id)
);
CREATE TABLE IF NOT EXISTS posts (
	id TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL,
	author_id TEXT NOT NULL,
	author_name TEXT NOT NULL,
	author_avatar TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL,
	image_url TEXT NOT NULL DEFAULT '',
	streak INTEGER NOT NULL DEFAULT 0,
	reactions TEXT NOT NULL DEFAULT '[]',
	timestamp TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS comments (
	id TEXT PRIMARY KEY,
	post_id TEXT NOT NULL,
	author_id TEXT NOT NULL,
	author_name TEXT NOT NULL,
	author_avatar TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS profiles (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	avatar_url TEXT NOT NULL DEFAULT '',
	is_admin INTEGER NOT NULL DEFAULT 0,
	motto TEXT NOT NULL DEFAULT '',
	member_since TEXT NOT NULL,
	total_days_active INTEGER NOT NULL DEFAULT 0,
	level TEXT NOT NULL DEFAULT '',
	cheers_given INTEGER NOT NULL DEFAULT 0,
	pushes_given INTEGER NOT NULL DEFAULT 0,
	check_in_percentage INTEGER NOT NULL DEFAULT 0,
	badges TEXT NOT NULL DEFAULT '[]',
	notifications TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS streaks (
	id TEXT PRIMARY KEY,
	profile_id TEXT NOT NULL,
	habit_id TEXT NOT NULL,
	name TEXT NOT NULL,
	topic TEXT NOT NULL DEFAULT '',
	logs TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	date TEXT NOT NULL,
	start_time TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	online_url TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	cover_image TEXT NOT NULL DEFAULT '',
	is_free INTEGER NOT NULL DEFAULT 1,
	organizer TEXT NOT NULL DEFAULT '',
	price TEXT NOT NULL DEFAULT '',
	contact_person TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS boost_requests (
	id TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	proof_image TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	timestamp TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS conversations (
	id TEXT PRIMARY KEY,
	participant_ids TEXT NOT NULL,
	messages TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

type SQLiteStore struct {
	path     string
	db       *sql.DB
	notifier *Notifier
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path:     expandPath(path),
		notifier: NewNotifier(),
	}
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := s.GetPrefs(); err != nil {
		defaults := Prefs{Theme: "light", Language: "en"}
		if err := s.SavePrefs(defaults); err != nil {
			return fmt.Errorf("failed to save default preferences: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'cohort init' first")
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) Notifier() *Notifier {
	return s.notifier
}

// Habits

func (s *SQLiteStore) AddHabit(habit models.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO habits (id, name, topic, description, creator_id, rules, highlight, highlight_icon, member_limit, cover_image, type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.Name, habit.Topic, habit.Description, habit.CreatorID,
		habit.Rules, habit.Highlight, habit.HighlightIcon, habit.MemberLimit, habit.CoverImage, string(habit.Type))
	if err != nil {
		return err
	}

	for i, m := range habit.Members {
		if err := insertMember(tx, habit.ID, m, i); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func insertMember(tx *sql.Tx, habitID string, m models.User, position int) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO habit_members (habit_id, user_id, name, avatar_url, is_admin, position)
		VALUES (?, ?, ?, ?, ?, ?)`,
		habitID, m.ID, m.Name, m.AvatarURL, m.IsAdmin, position)
	return err
}

func (s *SQLiteStore) AddMember(habitID string, user models.User) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(position)+1, 0) FROM habit_members WHERE habit_id = ?`, habitID).Scan(&next); err != nil {
		return err
	}
	if err := insertMember(tx, habitID, user, next); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *SQLiteStore) RemoveMember(habitID, userID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM habit_members WHERE habit_id = ? AND user_id = ?`, habitID, userID); err != nil {
		return err
	}
	// Kicking a member removes their streak for that habit in the same
	// transaction so no refetch can observe one without the other.
	if _, err := tx.Exec(`DELETE FROM streaks WHERE habit_id = ? AND profile_id = ?`, habitID, userID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, name, topic, description, creator_id, rules, highlight, highlight_icon, member_limit, cover_image, type
		FROM habits WHERE id = ?`, id)
	habit, err := scanHabit(row)
	if err != nil {
		return models.Habit{}, err
	}

	members, err := s.membersByHabit()
	if err != nil {
		return models.Habit{}, err
	}
	posts, err := s.postsByHabit()
	if err != nil {
		return models.Habit{}, err
	}
	habit.Members = members[habit.ID]
	habit.Posts = posts[habit.ID]
	return habit, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var habitType string
	err := row.Scan(&h.ID, &h.Name, &h.Topic, &h.Description, &h.CreatorID,
		&h.Rules, &h.Highlight, &h.HighlightIcon, &h.MemberLimit, &h.CoverImage, &habitType)
	if err != nil {
		return models.Habit{}, err
	}
	h.Type = models.HabitType(habitType)
	return h, nil
}

func (s *SQLiteStore) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, name, topic, description, creator_id, rules, highlight, highlight_icon, member_limit, cover_image, type
		FROM habits`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	members, err := s.membersByHabit()
	if err != nil {
		return nil, err
	}
	posts, err := s.postsByHabit()
	if err != nil {
		return nil, err
	}
	for i := range habits {
		habits[i].Members = members[habits[i].ID]
		habits[i].Posts = posts[habits[i].ID]
	}
	return habits, nil
}

func (s *SQLiteStore) membersByHabit() (map[string][]models.User, error) {
	rows, err := s.db.Query(`
		SELECT habit_id, user_id, name, avatar_url, is_admin
		FROM habit_members ORDER BY habit_id, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make(map[string][]models.User)
	for rows.Next() {
		var habitID string
		var u models.User
		if err := rows.Scan(&habitID, &u.ID, &u.Name, &u.AvatarURL, &u.IsAdmin); err != nil {
			return nil, err
		}
		members[habitID] = append(members[habitID], u)
	}
	return members, rows.Err()
}

func (s *SQLiteStore) postsByHabit() (map[string][]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT id, habit_id, author_id, author_name, author_avatar, content, image_url, streak, reactions, timestamp
		FROM posts ORDER BY habit_id, timestamp DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make(map[string][]models.Post)
	for rows.Next() {
		var p models.Post
		var reactions, timestamp string
		if err := rows.Scan(&p.ID, &p.HabitID, &p.Author.ID, &p.Author.Name, &p.Author.AvatarURL,
			&p.Content, &p.ImageURL, &p.Streak, &reactions, &timestamp); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(reactions), &p.Reactions); err != nil {
			return nil, fmt.Errorf("parsing reactions for post %s: %w", p.ID, err)
		}
		if p.Timestamp, err = parseTimestamp(timestamp); err != nil {
			return nil, err
		}
		posts[p.HabitID] = append(posts[p.HabitID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	comments, err := s.commentsByPost()
	if err != nil {
		return nil, err
	}
	for habitID := range posts {
		for i := range posts[habitID] {
			posts[habitID][i].Comments = comments[posts[habitID][i].ID]
		}
	}
	return posts, nil
}

func (s *SQLiteStore) commentsByPost() (map[string][]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT post_id, id, author_id, author_name, author_avatar, content, timestamp
		FROM comments ORDER BY post_id, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make(map[string][]models.Comment)
	for rows.Next() {
		var postID, timestamp string
		var c models.Comment
		if err := rows.Scan(&postID, &c.ID, &c.Author.ID, &c.Author.Name, &c.Author.AvatarURL, &c.Content, &timestamp); err != nil {
			return nil, err
		}
		if c.Timestamp, err = parseTimestamp(timestamp); err != nil {
			return nil, err
		}
		comments[postID] = append(comments[postID], c)
	}
	return comments, rows.Err()
}

// Posts

func (s *SQLiteStore) AddPost(post models.Post) error {
	reactions, err := json.Marshal(post.Reactions)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO posts (id, habit_id, author_id, author_name, author_avatar, content, image_url, streak, reactions, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID, post.HabitID, post.Author.ID, post.Author.Name, post.Author.AvatarURL,
		post.Content, post.ImageURL, post.Streak, string(reactions), formatTimestamp(post.Timestamp))
	if err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *SQLiteStore) AddComment(postID string, comment models.Comment) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(position)+1, 0) FROM comments WHERE post_id = ?`, postID).Scan(&next); err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO comments (id, post_id, author_id, author_name, author_avatar, content, timestamp, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		comment.ID, postID, comment.Author.ID, comment.Author.Name, comment.Author.AvatarURL,
		comment.Content, formatTimestamp(comment.Timestamp), next)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *SQLiteStore) SetReactions(postID string, reactions []models.Reaction) error {
	if reactions == nil {
		reactions = []models.Reaction{}
	}
	data, err := json.Marshal(reactions)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`UPDATE posts SET reactions = ? WHERE id = ?`, string(data), postID); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

// Profiles

func (s *SQLiteStore) AddProfile(p models.UserProfile) error {
	if err := s.writeProfile(p, true); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *SQLiteStore) UpdateProfile(p models.UserProfile) error {
	if err := s.writeProfile(p, false); err != nil {
		return err
	}
	// Denormalized author/member copies must match the profile row.
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`UPDATE habit_members SET name = ?, avatar_url = ? WHERE user_id = ?`, p.Name, p.AvatarURL, p.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE posts SET author_name = ?, author_avatar = ? WHERE author_id = ?`, p.Name, p.AvatarURL, p.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE comments SET author_name = ?, author_avatar = ? WHERE author_id = ?`, p.Name, p.AvatarURL, p.ID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *SQLiteStore) writeProfile(p models.UserProfile, withStreaks bool) error {
	badges, err := json.Marshal(p.Badges)
	if err != nil {
		return err
	}
	notifications, err := json.Marshal(p.Notifications)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO profiles (id, name, avatar_url, is_admin, motto, member_since, total_days_active, level, cheers_given, pushes_given, check_in_percentage, badges, notifications)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.AvatarURL, p.IsAdmin, p.Motto, formatTimestamp(p.MemberSince),
		p.TotalDaysActive, p.Level, p.CheersGiven, p.PushesGiven, p.CheckInPercentage,
		string(badges), string(notifications))
	if err != nil {
		return err
	}

	if withStreaks {
		for _, st := range p.Streaks {
			if err := insertStreak(tx, p.ID, st); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func insertStreak(tx *sql.Tx, profileID string, st models.HabitStreak) error {
	logs, err := json.Marshal(st.Logs)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO streaks (id, profile_id, habit_id, name, topic, logs)
		VALUES (?, ?, ?, ?, ?, ?)`,
		st.ID, profileID, st.HabitID, st.Name, st.Topic, string(logs))
	return err
}

func (s *SQLiteStore) GetProfile(id string) (models.UserProfile, error) {
	row := s.db.QueryRow(`
		SELECT id, name, avatar_url, is_admin, motto, member_since, total_days_active, level, cheers_given, pushes_given, check_in_percentage, badges, notifications
		FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if err != nil {
		return models.UserProfile{}, err
	}
	streaks, err := s.streaksByProfile()
	if err != nil {
		return models.UserProfile{}, err
	}
	p.Streaks = streaks[p.ID]
	return p, nil
}

func scanProfile(row rowScanner) (models.UserProfile, error) {
	var p models.UserProfile
	var memberSince, badges, notifications string
	err := row.Scan(&p.ID, &p.Name, &p.AvatarURL, &p.IsAdmin, &p.Motto, &memberSince,
		&p.TotalDaysActive, &p.Level, &p.CheersGiven, &p.PushesGiven, &p.CheckInPercentage,
		&badges, &notifications)
	if err != nil {
		return models.UserProfile{}, err
	}
	if p.MemberSince, err = parseTimestamp(memberSince); err != nil {
		return models.UserProfile{}, err
	}
	if err := json.Unmarshal([]byte(badges), &p.Badges); err != nil {
		return models.UserProfile{}, fmt.Errorf("parsing badges for profile %s: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(notifications), &p.Notifications); err != nil {
		return models.UserProfile{}, fmt.Errorf("parsing notifications for profile %s: %w", p.ID, err)
	}
	return p, nil
}

func (s *SQLiteStore) GetAllProfiles() ([]models.UserProfile, error) {
	rows, err := s.db.Query(`
		SELECT id, name, avatar_url, is_admin, motto, member_since, total_days_active, level, cheers_given, pushes_given, check_in_percentage, badges, notifications
		FROM profiles`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	streaks, err := s.streaksByProfile()
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		profiles[i].Streaks = streaks[profiles[i].ID]
	}
	return profiles, nil
}

func (s *SQLiteStore) streaksByProfile() (map[string][]models.HabitStreak, error) {
	rows, err := s.db.Query(`SELECT profile_id, id, habit_id, name, topic, logs FROM streaks ORDER BY profile_id, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	streaks := make(map[string][]models.HabitStreak)
	for rows.Next() {
		var profileID, logs string
		var st models.HabitStreak
		if err := rows.Scan(&profileID, &st.ID, &st.HabitID, &st.Name, &st.Topic, &logs); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(logs), &st.Logs); err != nil {
			return nil, fmt.Errorf("parsing logs for streak %s: %w", st.ID, err)
		}
		streaks[profileID] = append(streaks[profileID], st)
	}
	return streaks, rows.Err()
}

// Streaks

func (s *SQLiteStore) AddStreak(profileID string, st models.HabitStreak) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := insertStreak(tx, profileID, st); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *SQLiteStore) DeleteStreak(profileID, streakID string) error {
	if _, err := s.db.Exec(`DELETE FROM streaks WHERE profile_id = ? AND id = ?`, profileID, streakID); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *SQLiteStore) UpdateStreakLogs(profileID, streakID string, logs []models.StreakLog) error {
	if logs == nil {
		logs = []models.StreakLog{}
	}
	data, err := json.Marshal(logs)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`UPDATE streaks SET logs = ? WHERE profile_id = ? AND id = ?`, string(data), profileID, streakID); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

// Events

func (s *SQLiteStore) AddEvent(e models.Event) error {
	_, err := s.db.Exec(`
		INSERT INTO events (id, title, date, start_time, type, location, online_url, description, cover_image, is_free, organizer, price, contact_person)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, formatTimestamp(e.Date), e.StartTime, string(e.Type), e.Location,
		e.OnlineURL, e.Description, e.CoverImage, e.IsFree, e.Organizer, e.Price, e.ContactPerson)
	if err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *SQLiteStore) GetAllEvents() ([]models.Event, error) {
	rows, err := s.db.Query(`
		SELECT id, title, date, start_time, type, location, online_url, description, cover_image, is_free, organizer, price, contact_person
		FROM events ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		var date, eventType string
		if err := rows.Scan(&e.ID, &e.Title, &date, &e.StartTime, &eventType, &e.Location,
			&e.OnlineURL, &e.Description, &e.CoverImage, &e.IsFree, &e.Organizer, &e.Price, &e.ContactPerson); err != nil {
			return nil, err
		}
		if e.Date, err = parseTimestamp(date); err != nil {
			return nil, err
		}
		e.Type = models.EventType(eventType)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Boosts

func (s *SQLiteStore) AddBoostRequest(r models.BoostRequest) error {
	_, err := s.db.Exec(`
		INSERT INTO boost_requests (id, habit_id, user_id, proof_image, status, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.HabitID, r.UserID, r.ProofImage, string(r.Status), formatTimestamp(r.Timestamp))
	if err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *SQLiteStore) UpdateBoostRequestStatus(id string, status models.BoostStatus) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var habitID string
	err = tx.QueryRow(`SELECT habit_id FROM boost_requests WHERE id = ? AND status = ?`, id, string(models.BoostPending)).Scan(&habitID)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE boost_requests SET status = ? WHERE id = ?`, string(status), id); err != nil {
		return err
	}
	if status == models.BoostApproved {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES ('boosted_habit_id', ?)`, habitID); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *SQLiteStore) GetAllBoostRequests() ([]models.BoostRequest, error) {
	rows, err := s.db.Query(`
		SELECT id, habit_id, user_id, proof_image, status, timestamp
		FROM boost_requests ORDER BY timestamp`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.BoostRequest
	for rows.Next() {
		var r models.BoostRequest
		var status, timestamp string
		if err := rows.Scan(&r.ID, &r.HabitID, &r.UserID, &r.ProofImage, &status, &timestamp); err != nil {
			return nil, err
		}
		r.Status = models.BoostStatus(status)
		if r.Timestamp, err = parseTimestamp(timestamp); err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

func (s *SQLiteStore) GetBoostedHabitID() (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = 'boosted_habit_id'`).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return id, err
}

// Messaging

func (s *SQLiteStore) AddMessage(conversationID string, participantIDs []string, msg models.PrivateMessage) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRow(`SELECT messages FROM conversations WHERE id = ?`, conversationID).Scan(&existing)
	var messages []models.PrivateMessage
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return err
	default:
		if err := json.Unmarshal([]byte(existing), &messages); err != nil {
			return fmt.Errorf("parsing conversation %s: %w", conversationID, err)
		}
	}

	messages = append(messages, msg)
	data, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	participants, err := json.Marshal(participantIDs)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO conversations (id, participant_ids, messages)
		VALUES (?, ?, ?)`, conversationID, string(participants), string(data))
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *SQLiteStore) GetAllConversations() ([]models.Conversation, error) {
	rows, err := s.db.Query(`SELECT id, participant_ids, messages FROM conversations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []models.Conversation
	for rows.Next() {
		var c models.Conversation
		var participants, messages string
		if err := rows.Scan(&c.ID, &participants, &messages); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(participants), &c.ParticipantIDs); err != nil {
			return nil, fmt.Errorf("parsing participants for conversation %s: %w", c.ID, err)
		}
		if err := json.Unmarshal([]byte(messages), &c.Messages); err != nil {
			return nil, fmt.Errorf("parsing messages for conversation %s: %w", c.ID, err)
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

// Notifications

func (s *SQLiteStore) AddNotification(profileID string, n models.Notification) error {
	return s.mutateNotifications(profileID, func(list []models.Notification) []models.Notification {
		return append(list, n)
	})
}

func (s *SQLiteStore) MarkNotificationsRead(profileID string) error {
	return s.mutateNotifications(profileID, func(list []models.Notification) []models.Notification {
		for i := range list {
			list[i].IsRead = true
		}
		return list
	})
}

func (s *SQLiteStore) mutateNotifications(profileID string, fn func([]models.Notification) []models.Notification) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var raw string
	if err := tx.QueryRow(`SELECT notifications FROM profiles WHERE id = ?`, profileID).Scan(&raw); err != nil {
		return err
	}
	var list []models.Notification
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return fmt.Errorf("parsing notifications for profile %s: %w", profileID, err)
	}

	list = fn(list)
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE profiles SET notifications = ? WHERE id = ?`, string(data), profileID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

// Preferences

func (s *SQLiteStore) GetPrefs() (Prefs, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings WHERE key IN ('theme', 'language')`)
	if err != nil {
		return Prefs{}, err
	}
	defer rows.Close()

	var prefs Prefs
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Prefs{}, err
		}
		switch key {
		case "theme":
			prefs.Theme = value
		case "language":
			prefs.Language = value
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return Prefs{}, err
	}
	if count == 0 {
		return Prefs{}, fmt.Errorf("preferences not found")
	}
	return prefs, nil
}

func (s *SQLiteStore) SavePrefs(prefs Prefs) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("theme", prefs.Theme); err != nil {
		return err
	}
	if _, err := stmt.Exec("language", prefs.Language); err != nil {
		return err
	}
	return tx.Commit()
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t.Local(), nil
}
