// Package storage persists user-facing records in a local SQLite database.
// The mood pipeline itself never touches it; handlers do.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/model/chat"
)

const schema = `
CREATE TABLE IF NOT EXISTS journal (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	is_encrypted INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS lockbox (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	label TEXT NOT NULL,
	encrypted_data BLOB NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS mood_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	mood TEXT NOT NULL,
	emotion TEXT,
	intensity REAL,
	activities_used TEXT,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS game_scores (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	game_name TEXT NOT NULL,
	score INTEGER NOT NULL,
	metadata_json TEXT,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS chat_history (
	id TEXT PRIMARY KEY,
	user_id INTEGER NOT NULL,
	session_id TEXT NOT NULL,
	role TEXT NOT NULL,
	message TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`

// Store wraps the SQLite handle. Safe for concurrent use; database/sql
// serializes access to the single connection modernc sqlite hands out.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database file and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer at a time. The pragmas below are applied per
	// connection, so the pool is capped at a single connection; database/sql
	// then queues concurrent requests instead of surfacing SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Wait up to 5 seconds for a lock instead of immediately returning
	// SQLITE_BUSY, covering writers outside this process.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Journal is one saved journal entry.
type Journal struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Encrypted bool      `json:"is_encrypted"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateJournal inserts an entry and returns its id.
func (s *Store) CreateJournal(ctx context.Context, userID int64, title, content string, encrypted bool) (int64, error) {
	flag := 0
	if encrypted {
		flag = 1
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO journal (user_id, title, content, is_encrypted, created_at) VALUES (?, ?, ?, ?, ?)",
		userID, title, content, flag, now())
	if err != nil {
		return 0, fmt.Errorf("failed to insert journal: %w", err)
	}
	return res.LastInsertId()
}

// ListJournals returns the user's entries, newest first.
func (s *Store) ListJournals(ctx context.Context, userID int64) ([]Journal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, title, content, is_encrypted, created_at FROM journal WHERE user_id = ? ORDER BY id DESC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []Journal
	for rows.Next() {
		var (
			entry     Journal
			flag      int
			createdAt string
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Title, &entry.Content, &flag, &createdAt); err != nil {
			return nil, err
		}
		entry.Encrypted = flag != 0
		entry.CreatedAt = parseTime(createdAt)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// DeleteJournal removes one of the user's entries.
func (s *Store) DeleteJournal(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM journal WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete journal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// LockboxItem is lockbox metadata; the blob itself stays server-opaque.
type LockboxItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveLockbox stores an opaque encrypted blob. The server never decrypts.
func (s *Store) SaveLockbox(ctx context.Context, userID int64, label string, data []byte) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO lockbox (user_id, label, encrypted_data, created_at) VALUES (?, ?, ?, ?)",
		userID, label, data, now())
	if err != nil {
		return 0, fmt.Errorf("failed to insert lockbox item: %w", err)
	}
	return res.LastInsertId()
}

// ListLockbox returns metadata only, never the blobs.
func (s *Store) ListLockbox(ctx context.Context, userID int64) ([]LockboxItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, label, created_at FROM lockbox WHERE user_id = ? ORDER BY id DESC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lockbox: %w", err)
	}
	defer rows.Close()

	var items []LockboxItem
	for rows.Next() {
		var (
			item      LockboxItem
			createdAt string
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.Label, &createdAt); err != nil {
			return nil, err
		}
		item.CreatedAt = parseTime(createdAt)
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetLockbox returns one item's opaque blob.
func (s *Store) GetLockbox(ctx context.Context, userID, id int64) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT encrypted_data FROM lockbox WHERE id = ? AND user_id = ?", id, userID).Scan(&data)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// MoodEntry is one logged mood.
type MoodEntry struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Mood           string    `json:"mood"`
	Emotion        string    `json:"emotion,omitempty"`
	Intensity      float64   `json:"intensity"`
	ActivitiesUsed []string  `json:"activities_used,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// LogMood records a mood entry.
func (s *Store) LogMood(ctx context.Context, userID int64, moodName, emotion string, intensity float64, activities []string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO mood_history (user_id, mood, emotion, intensity, activities_used, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		userID, moodName, emotion, intensity, strings.Join(activities, ","), now())
	if err != nil {
		return 0, fmt.Errorf("failed to insert mood entry: %w", err)
	}
	return res.LastInsertId()
}

// MoodHistory returns up to limit entries, newest first.
func (s *Store) MoodHistory(ctx context.Context, userID int64, limit int) ([]MoodEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, mood, emotion, intensity, activities_used, created_at FROM mood_history WHERE user_id = ? ORDER BY id DESC LIMIT ?",
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood history: %w", err)
	}
	defer rows.Close()

	var entries []MoodEntry
	for rows.Next() {
		var (
			entry      MoodEntry
			activities string
			createdAt  string
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Mood, &entry.Emotion, &entry.Intensity, &activities, &createdAt); err != nil {
			return nil, err
		}
		if activities != "" {
			entry.ActivitiesUsed = strings.Split(activities, ",")
		}
		entry.CreatedAt = parseTime(createdAt)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GameScore is one submitted game result.
type GameScore struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	GameName  string    `json:"game_name"`
	Score     int64     `json:"score"`
	Metadata  string    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitScore records a game result.
func (s *Store) SubmitScore(ctx context.Context, userID int64, gameName string, score int64, metadata string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO game_scores (user_id, game_name, score, metadata_json, created_at) VALUES (?, ?, ?, ?, ?)",
		userID, gameName, score, metadata, now())
	if err != nil {
		return 0, fmt.Errorf("failed to insert game score: %w", err)
	}
	return res.LastInsertId()
}

// Scores lists a user's results, optionally filtered by game, newest first.
func (s *Store) Scores(ctx context.Context, userID int64, gameName string, limit int) ([]GameScore, error) {
	if limit <= 0 {
		limit = 20
	}

	query := "SELECT id, user_id, game_name, score, metadata_json, created_at FROM game_scores WHERE user_id = ?"
	args := []any{userID}
	if gameName != "" {
		query += " AND game_name = ?"
		args = append(args, gameName)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query game scores: %w", err)
	}
	defer rows.Close()

	var scores []GameScore
	for rows.Next() {
		var (
			score     GameScore
			createdAt string
		)
		if err := rows.Scan(&score.ID, &score.UserID, &score.GameName, &score.Score, &score.Metadata, &createdAt); err != nil {
			return nil, err
		}
		score.CreatedAt = parseTime(createdAt)
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// SaveChatMessage persists one chat turn.
func (s *Store) SaveChatMessage(ctx context.Context, msg chat.Message) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO chat_history (id, user_id, session_id, role, message, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		msg.ID, msg.UserID, msg.SessionID, msg.Role, msg.Content, msg.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

// ChatHistory returns a user's messages oldest first, optionally scoped to a
// session.
func (s *Store) ChatHistory(ctx context.Context, userID int64, sessionID string, limit int) ([]chat.Message, error) {
	if limit <= 0 {
		limit = 50
	}

	query := "SELECT id, user_id, session_id, role, message, created_at FROM chat_history WHERE user_id = ?"
	args := []any{userID}
	if sessionID != "" {
		query += " AND session_id = ?"
		args = append(args, sessionID)
	}
	query += " ORDER BY created_at ASC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		var (
			msg       chat.Message
			createdAt string
		)
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.SessionID, &msg.Role, &msg.Content, &createdAt); err != nil {
			return nil, err
		}
		msg.CreatedAt = parseTime(createdAt)
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
