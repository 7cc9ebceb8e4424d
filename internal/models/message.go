// Package models contains data types and constants shared by the Serene
// client, widget, and server.
package models

import "time"

// Origin identifies who produced a message.
type Origin string

const (
	OriginUser Origin = "user"
	OriginBot  Origin = "bot"
)

// Message is a single line in the chat transcript. Messages are immutable
// once created; the only removal the widget ever performs is replacing a
// transient bot status line with the next real outcome.
type Message struct {
	Text   string
	Origin Origin
	// Transient marks a bot status line (error or retry notice) that is
	// removed once superseded by the next outcome.
	Transient bool
}

// UserMessage creates a regular user message.
func UserMessage(text string) Message {
	return Message{Text: text, Origin: OriginUser}
}

// BotMessage creates a regular bot message.
func BotMessage(text string) Message {
	return Message{Text: text, Origin: OriginBot}
}

// StatusMessage creates a transient bot status line.
func StatusMessage(text string) Message {
	return Message{Text: text, Origin: OriginBot, Transient: true}
}

// ChatEntry is one persisted exchange as the server stores and returns it.
type ChatEntry struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Emotion   string    `json:"emotion,omitempty"`
	Intent    string    `json:"intent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// JournalEntry is a saved journal entry.
type JournalEntry struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// MoodEntry is a saved mood check-in.
type MoodEntry struct {
	ID        int64     `json:"id"`
	Mood      string    `json:"mood"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// MeditationSession is a logged meditation.
type MeditationSession struct {
	ID        int64     `json:"id"`
	Duration  int       `json:"duration"` // minutes
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Post is a community wall post.
type Post struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	Comments  []Comment `json:"comments,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Comment is a reply on a community post.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Challenge is the daily wellness challenge.
type Challenge struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
