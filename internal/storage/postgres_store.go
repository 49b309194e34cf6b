package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/cohortapp/cohort-cli/internal/models"
)

const postgresSchema = `
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
	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
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
	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
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
	is_free BOOLEAN NOT NULL DEFAULT TRUE,
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

type PostgresStore struct {
	connStr  string
	db       *sql.DB
	notifier *Notifier
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr:  connStr,
		notifier: NewNotifier(),
	}
}

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := s.db.Exec(postgresSchema); err != nil {
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

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}

func (s *PostgresStore) Notifier() *Notifier {
	return s.notifier
}

// Habits

func (s *PostgresStore) AddHabit(habit models.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO habits (id, name, topic, description, creator_id, rules, highlight, highlight_icon, member_limit, cover_image, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		habit.ID, habit.Name, habit.Topic, habit.Description, habit.CreatorID,
		habit.Rules, habit.Highlight, habit.HighlightIcon, habit.MemberLimit, habit.CoverImage, string(habit.Type))
	if err != nil {
		return err
	}

	for i, m := range habit.Members {
		if err := pgInsertMember(tx, habit.ID, m, i); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func pgInsertMember(tx *sql.Tx, habitID string, m models.User, position int) error {
	_, err := tx.Exec(`
		INSERT INTO habit_members (habit_id, user_id, name, avatar_url, is_admin, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (habit_id, user_id) DO UPDATE
		SET name = EXCLUDED.name, avatar_url = EXCLUDED.avatar_url, is_admin = EXCLUDED.is_admin`,
		habitID, m.ID, m.Name, m.AvatarURL, m.IsAdmin, position)
	return err
}

func (s *PostgresStore) AddMember(habitID string, user models.User) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(position)+1, 0) FROM habit_members WHERE habit_id = $1`, habitID).Scan(&next); err != nil {
		return err
	}
	if err := pgInsertMember(tx, habitID, user, next); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *PostgresStore) RemoveMember(habitID, userID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM habit_members WHERE habit_id = $1 AND user_id = $2`, habitID, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM streaks WHERE habit_id = $1 AND profile_id = $2`, habitID, userID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *PostgresStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, name, topic, description, creator_id, rules, highlight, highlight_icon, member_limit, cover_image, type
		FROM habits WHERE id = $1`, id)
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

func (s *PostgresStore) GetAllHabits() ([]models.Habit, error) {
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

func (s *PostgresStore) membersByHabit() (map[string][]models.User, error) {
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

func (s *PostgresStore) postsByHabit() (map[string][]models.Post, error) {
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

func (s *PostgresStore) commentsByPost() (map[string][]models.Comment, error) {
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

func (s *PostgresStore) AddPost(post models.Post) error {
	reactions, err := json.Marshal(post.Reactions)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO posts (id, habit_id, author_id, author_name, author_avatar, content, image_url, streak, reactions, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		post.ID, post.HabitID, post.Author.ID, post.Author.Name, post.Author.AvatarURL,
		post.Content, post.ImageURL, post.Streak, string(reactions), formatTimestamp(post.Timestamp))
	if err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *PostgresStore) AddComment(postID string, comment models.Comment) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(position)+1, 0) FROM comments WHERE post_id = $1`, postID).Scan(&next); err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO comments (id, post_id, author_id, author_name, author_avatar, content, timestamp, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
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

func (s *PostgresStore) SetReactions(postID string, reactions []models.Reaction) error {
	if reactions == nil {
		reactions = []models.Reaction{}
	}
	data, err := json.Marshal(reactions)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`UPDATE posts SET reactions = $1 WHERE id = $2`, string(data), postID); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

// Profiles

func (s *PostgresStore) AddProfile(p models.UserProfile) error {
	if err := s.writeProfile(p, true); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *PostgresStore) UpdateProfile(p models.UserProfile) error {
	if err := s.writeProfile(p, false); err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`UPDATE habit_members SET name = $1, avatar_url = $2 WHERE user_id = $3`, p.Name, p.AvatarURL, p.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE posts SET author_name = $1, author_avatar = $2 WHERE author_id = $3`, p.Name, p.AvatarURL, p.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE comments SET author_name = $1, author_avatar = $2 WHERE author_id = $3`, p.Name, p.AvatarURL, p.ID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *PostgresStore) writeProfile(p models.UserProfile, withStreaks bool) error {
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
		INSERT INTO profiles (id, name, avatar_url, is_admin, motto, member_since, total_days_active, level, cheers_given, pushes_given, check_in_percentage, badges, notifications)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, avatar_url = EXCLUDED.avatar_url, is_admin = EXCLUDED.is_admin,
			motto = EXCLUDED.motto, member_since = EXCLUDED.member_since,
			total_days_active = EXCLUDED.total_days_active, level = EXCLUDED.level,
			cheers_given = EXCLUDED.cheers_given, pushes_given = EXCLUDED.pushes_given,
			check_in_percentage = EXCLUDED.check_in_percentage,
			badges = EXCLUDED.badges, notifications = EXCLUDED.notifications`,
		p.ID, p.Name, p.AvatarURL, p.IsAdmin, p.Motto, formatTimestamp(p.MemberSince),
		p.TotalDaysActive, p.Level, p.CheersGiven, p.PushesGiven, p.CheckInPercentage,
		string(badges), string(notifications))
	if err != nil {
		return err
	}

	if withStreaks {
		for _, st := range p.Streaks {
			if err := pgInsertStreak(tx, p.ID, st); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func pgInsertStreak(tx *sql.Tx, profileID string, st models.HabitStreak) error {
	logs, err := json.Marshal(st.Logs)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO streaks (id, profile_id, habit_id, name, topic, logs)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, topic = EXCLUDED.topic, logs = EXCLUDED.logs`,
		st.ID, profileID, st.HabitID, st.Name, st.Topic, string(logs))
	return err
}

func (s *PostgresStore) GetProfile(id string) (models.UserProfile, error) {
	row := s.db.QueryRow(`
		SELECT id, name, avatar_url, is_admin, motto, member_since, total_days_active, level, cheers_given, pushes_given, check_in_percentage, badges, notifications
		FROM profiles WHERE id = $1`, id)
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

func (s *PostgresStore) GetAllProfiles() ([]models.UserProfile, error) {
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

func (s *PostgresStore) streaksByProfile() (map[string][]models.HabitStreak, error) {
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

func (s *PostgresStore) AddStreak(profileID string, st models.HabitStreak) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := pgInsertStreak(tx, profileID, st); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *PostgresStore) DeleteStreak(profileID, streakID string) error {
	if _, err := s.db.Exec(`DELETE FROM streaks WHERE profile_id = $1 AND id = $2`, profileID, streakID); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *PostgresStore) UpdateStreakLogs(profileID, streakID string, logs []models.StreakLog) error {
	if logs == nil {
		logs = []models.StreakLog{}
	}
	data, err := json.Marshal(logs)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`UPDATE streaks SET logs = $1 WHERE profile_id = $2 AND id = $3`, string(data), profileID, streakID); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

// Events

func (s *PostgresStore) AddEvent(e models.Event) error {
	_, err := s.db.Exec(`
		INSERT INTO events (id, title, date, start_time, type, location, online_url, description, cover_image, is_free, organizer, price, contact_person)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		e.ID, e.Title, formatTimestamp(e.Date), e.StartTime, string(e.Type), e.Location,
		e.OnlineURL, e.Description, e.CoverImage, e.IsFree, e.Organizer, e.Price, e.ContactPerson)
	if err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *PostgresStore) GetAllEvents() ([]models.Event, error) {
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

func (s *PostgresStore) AddBoostRequest(r models.BoostRequest) error {
	_, err := s.db.Exec(`
		INSERT INTO boost_requests (id, habit_id, user_id, proof_image, status, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.HabitID, r.UserID, r.ProofImage, string(r.Status), formatTimestamp(r.Timestamp))
	if err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *PostgresStore) UpdateBoostRequestStatus(id string, status models.BoostStatus) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var habitID string
	err = tx.QueryRow(`SELECT habit_id FROM boost_requests WHERE id = $1 AND status = $2`, id, string(models.BoostPending)).Scan(&habitID)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE boost_requests SET status = $1 WHERE id = $2`, string(status), id); err != nil {
		return err
	}
	if status == models.BoostApproved {
		if _, err := tx.Exec(`
			INSERT INTO settings (key, value) VALUES ('boosted_habit_id', $1)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, habitID); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *PostgresStore) GetAllBoostRequests() ([]models.BoostRequest, error) {
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

func (s *PostgresStore) GetBoostedHabitID() (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = 'boosted_habit_id'`).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return id, err
}

// Messaging

func (s *PostgresStore) AddMessage(conversationID string, participantIDs []string, msg models.PrivateMessage) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRow(`SELECT messages FROM conversations WHERE id = $1`, conversationID).Scan(&existing)
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
		INSERT INTO conversations (id, participant_ids, messages)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET messages = EXCLUDED.messages`,
		conversationID, string(participants), string(data))
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *PostgresStore) GetAllConversations() ([]models.Conversation, error) {
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

func (s *PostgresStore) AddNotification(profileID string, n models.Notification) error {
	return s.mutateNotifications(profileID, func(list []models.Notification) []models.Notification {
		return append(list, n)
	})
}

func (s *PostgresStore) MarkNotificationsRead(profileID string) error {
	return s.mutateNotifications(profileID, func(list []models.Notification) []models.Notification {
		for i := range list {
			list[i].IsRead = true
		}
		return list
	})
}

func (s *PostgresStore) mutateNotifications(profileID string, fn func([]models.Notification) []models.Notification) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var raw string
	if err := tx.QueryRow(`SELECT notifications FROM profiles WHERE id = $1`, profileID).Scan(&raw); err != nil {
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
	if _, err := tx.Exec(`UPDATE profiles SET notifications = $1 WHERE id = $2`, string(data), profileID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

// Preferences

func (s *PostgresStore) GetPrefs() (Prefs, error) {
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

func (s *PostgresStore) SavePrefs(prefs Prefs) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`)
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
