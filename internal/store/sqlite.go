// Package store is the server's SQLite persistence layer.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MBhoomika/serene-ai/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sessions (
    token TEXT PRIMARY KEY,
    user_id INTEGER NOT NULL,
    expires_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS chat_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    message TEXT NOT NULL,
    response TEXT NOT NULL,
    emotion TEXT NOT NULL DEFAULT '',
    intent TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS journal_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL,
    mood TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS mood_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    mood TEXT NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS meditation_sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    duration INTEGER NOT NULL,
    type TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    content TEXT NOT NULL,
    likes INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS comments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    post_id INTEGER NOT NULL,
    user_id INTEGER NOT NULL,
    content TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (post_id) REFERENCES posts(id) ON DELETE CASCADE,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);`

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = sql.ErrNoRows

// Database wraps the SQLite connection.
type Database struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and applies the schema.
func New(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the underlying connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// User is a registered account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUser inserts a new account. The username and email must be unique.
func (d *Database) CreateUser(username, email, passwordHash string) (*User, error) {
	query := `
        INSERT INTO users (username, email, password_hash)
        VALUES (?, ?, ?)
        RETURNING id, created_at`

	u := &User{Username: username, Email: email, PasswordHash: passwordHash}
	if err := d.db.QueryRow(query, username, email, passwordHash).Scan(&u.ID, &u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("username or email already taken")
		}
		return nil, err
	}
	return u, nil
}

// GetUserByUsername looks up an account by username.
func (d *Database) GetUserByUsername(username string) (*User, error) {
	query := `
        SELECT id, username, email, password_hash, created_at
        FROM users WHERE username = ?`

	u := &User{}
	err := d.db.QueryRow(query, username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByID looks up an account by id.
func (d *Database) GetUserByID(id int64) (*User, error) {
	query := `
        SELECT id, username, email, password_hash, created_at
        FROM users WHERE id = ?`

	u := &User{}
	err := d.db.QueryRow(query, id).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CreateSession stores a session token for the user.
func (d *Database) CreateSession(token string, userID int64, expiresAt time.Time) error {
	_, err := d.db.Exec(`
        INSERT INTO sessions (token, user_id, expires_at)
        VALUES (?, ?, ?)`, token, userID, expiresAt)
	return err
}

// GetSessionUser resolves a session token to its user id. Expired sessions
// behave as missing.
func (d *Database) GetSessionUser(token string, now time.Time) (int64, error) {
	var userID int64
	err := d.db.QueryRow(`
        SELECT user_id FROM sessions
        WHERE token = ? AND expires_at > ?`, token, now).Scan(&userID)
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// DeleteSession removes a session token. Deleting a missing token is a no-op.
func (d *Database) DeleteSession(token string) error {
	_, err := d.db.Exec(`DELETE FROM sessions WHERE token = ?`, token)
	return err
}

// PruneSessions removes expired sessions.
func (d *Database) PruneSessions(now time.Time) error {
	_, err := d.db.Exec(`DELETE FROM sessions WHERE expires_at <= ?`, now)
	return err
}

// SaveChat records one chat exchange for the user.
func (d *Database) SaveChat(userID int64, entry *models.ChatEntry) error {
	query := `
        INSERT INTO chat_history (user_id, message, response, emotion, intent)
        VALUES (?, ?, ?, ?, ?)
        RETURNING id, created_at`

	return d.db.QueryRow(query, userID, entry.Message, entry.Response, entry.Emotion, entry.Intent).
		Scan(&entry.ID, &entry.Timestamp)
}

// ChatHistory returns one page of the user's chat history, newest first.
func (d *Database) ChatHistory(userID int64, page, pageSize int) (*models.HistoryPage, error) {
	return d.chatPage(userID, "", page, pageSize)
}

// SearchChat returns one page of chat entries whose message or response
// contains query, case-insensitively, newest first.
func (d *Database) SearchChat(userID int64, query string, page, pageSize int) (*models.HistoryPage, error) {
	return d.chatPage(userID, query, page, pageSize)
}

func (d *Database) chatPage(userID int64, search string, page, pageSize int) (*models.HistoryPage, error) {
	if page < 1 {
		page = 1
	}

	where := "user_id = ?"
	args := []any{userID}
	if search != "" {
		// LIKE is case-insensitive for ASCII in SQLite
		where += " AND (message LIKE ? OR response LIKE ?)"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM chat_history WHERE "+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	if page > pages {
		page = pages
	}

	rows, err := d.db.Query(`
        SELECT id, message, response, emotion, intent, created_at
        FROM chat_history WHERE `+where+`
        ORDER BY created_at DESC, id DESC
        LIMIT ? OFFSET ?`, append(args, pageSize, (page-1)*pageSize)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.ChatEntry{}
	for rows.Next() {
		var e models.ChatEntry
		if err := rows.Scan(&e.ID, &e.Message, &e.Response, &e.Emotion, &e.Intent, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.HistoryPage{Entries: entries, Page: page, Pages: pages, Total: total}, nil
}

// SaveJournal records a journal entry.
func (d *Database) SaveJournal(userID int64, entry *models.JournalEntry) error {
	query := `
        INSERT INTO journal_entries (user_id, title, content, mood)
        VALUES (?, ?, ?, ?)
        RETURNING id, created_at`

	return d.db.QueryRow(query, userID, entry.Title, entry.Content, entry.Mood).
		Scan(&entry.ID, &entry.Timestamp)
}

// JournalEntries returns the user's journal entries, newest first.
func (d *Database) JournalEntries(userID int64) ([]models.JournalEntry, error) {
	rows, err := d.db.Query(`
        SELECT id, title, content, mood, created_at
        FROM journal_entries WHERE user_id = ?
        ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Content, &e.Mood, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveMood records a mood check-in.
func (d *Database) SaveMood(userID int64, entry *models.MoodEntry) error {
	query := `
        INSERT INTO mood_entries (user_id, mood, note)
        VALUES (?, ?, ?)
        RETURNING id, created_at`

	return d.db.QueryRow(query, userID, entry.Mood, entry.Note).Scan(&entry.ID, &entry.Timestamp)
}

// LogMeditation records a completed meditation session.
func (d *Database) LogMeditation(userID int64, session *models.MeditationSession) error {
	query := `
        INSERT INTO meditation_sessions (user_id, duration, type)
        VALUES (?, ?, ?)
        RETURNING id, created_at`

	return d.db.QueryRow(query, userID, session.Duration, session.Type).
		Scan(&session.ID, &session.Timestamp)
}

// CreatePost adds a community post.
func (d *Database) CreatePost(userID int64, content string) (*models.Post, error) {
	query := `
        INSERT INTO posts (user_id, content)
        VALUES (?, ?)
        RETURNING id, created_at`

	p := &models.Post{Content: content}
	if err := d.db.QueryRow(query, userID, content).Scan(&p.ID, &p.Timestamp); err != nil {
		return nil, err
	}
	if u, err := d.GetUserByID(userID); err == nil {
		p.Author = u.Username
	}
	return p, nil
}

// Posts returns one page of community posts with their comments, newest
// first.
func (d *Database) Posts(page, pageSize int) (*models.PostsPage, error) {
	if page < 1 {
		page = 1
	}

	var total int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, err
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	if page > pages {
		page = pages
	}

	rows, err := d.db.Query(`
        SELECT p.id, u.username, p.content, p.likes, p.created_at
        FROM posts p JOIN users u ON u.id = p.user_id
        ORDER BY p.created_at DESC, p.id DESC
        LIMIT ? OFFSET ?`, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Author, &p.Content, &p.Likes, &p.Timestamp); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		comments, err := d.Comments(posts[i].ID)
		if err != nil {
			return nil, err
		}
		posts[i].Comments = comments
	}

	return &models.PostsPage{Posts: posts, Page: page, Pages: pages, Total: total}, nil
}

// LikePost increments a post's like counter and returns the new count.
func (d *Database) LikePost(postID int64) (int, error) {
	var likes int
	err := d.db.QueryRow(`
        UPDATE posts SET likes = likes + 1
        WHERE id = ?
        RETURNING likes`, postID).Scan(&likes)
	if err != nil {
		return 0, err
	}
	return likes, nil
}

// AddComment adds a comment to a post.
func (d *Database) AddComment(postID, userID int64, content string) (*models.Comment, error) {
	// Verify the post exists so a comment can't dangle
	var exists int
	if err := d.db.QueryRow(`SELECT 1 FROM posts WHERE id = ?`, postID).Scan(&exists); err != nil {
		return nil, err
	}

	query := `
        INSERT INTO comments (post_id, user_id, content)
        VALUES (?, ?, ?)
        RETURNING id, created_at`

	c := &models.Comment{PostID: postID, Content: content}
	if err := d.db.QueryRow(query, postID, userID, content).Scan(&c.ID, &c.Timestamp); err != nil {
		return nil, err
	}
	if u, err := d.GetUserByID(userID); err == nil {
		c.Author = u.Username
	}
	return c, nil
}

// Comments returns a post's comments, oldest first.
func (d *Database) Comments(postID int64) ([]models.Comment, error) {
	rows, err := d.db.Query(`
        SELECT c.id, c.post_id, u.username, c.content, c.created_at
        FROM comments c JOIN users u ON u.id = c.user_id
        WHERE c.post_id = ?
        ORDER BY c.created_at ASC, c.id ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Author, &c.Content, &c.Timestamp); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
