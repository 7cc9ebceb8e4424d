package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/MBhoomika/serene-ai/internal/models"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "serene.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestUser(t *testing.T, db *Database) *User {
	t.Helper()
	u, err := db.CreateUser("maya", "maya@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func TestCreateAndGetUser(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db)

	if u.ID == 0 {
		t.Error("user id not assigned")
	}

	got, err := db.GetUserByUsername("maya")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.ID != u.ID || got.Email != "maya@example.com" || got.PasswordHash != "hash" {
		t.Errorf("got %+v", got)
	}

	if _, err := db.GetUserByUsername("nobody"); err != ErrNotFound {
		t.Errorf("missing user: err = %v, want ErrNotFound", err)
	}
}

func TestDuplicateUserRejected(t *testing.T) {
	db := newTestDB(t)
	newTestUser(t, db)

	if _, err := db.CreateUser("maya", "other@example.com", "hash"); err == nil {
		t.Error("duplicate username accepted")
	}
	if _, err := db.CreateUser("other", "maya@example.com", "hash"); err == nil {
		t.Error("duplicate email accepted")
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db)
	now := time.Now()

	if err := db.CreateSession("tok", u.ID, now.Add(time.Hour)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	userID, err := db.GetSessionUser("tok", now)
	if err != nil {
		t.Fatalf("GetSessionUser: %v", err)
	}
	if userID != u.ID {
		t.Errorf("userID = %d, want %d", userID, u.ID)
	}

	// Expired sessions behave as missing
	if _, err := db.GetSessionUser("tok", now.Add(2*time.Hour)); err != ErrNotFound {
		t.Errorf("expired session: err = %v, want ErrNotFound", err)
	}

	if err := db.DeleteSession("tok"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := db.GetSessionUser("tok", now); err != ErrNotFound {
		t.Errorf("deleted session: err = %v, want ErrNotFound", err)
	}

	// Deleting again is a no-op
	if err := db.DeleteSession("tok"); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestPruneSessions(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db)
	now := time.Now()

	db.CreateSession("live", u.ID, now.Add(time.Hour))
	db.CreateSession("dead", u.ID, now.Add(-time.Hour))

	if err := db.PruneSessions(now); err != nil {
		t.Fatalf("PruneSessions: %v", err)
	}

	if _, err := db.GetSessionUser("live", now); err != nil {
		t.Errorf("live session pruned: %v", err)
	}
	if _, err := db.GetSessionUser("dead", now.Add(-2*time.Hour)); err != ErrNotFound {
		t.Error("expired session survived pruning")
	}
}

func TestChatHistoryPagination(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db)

	for i := 0; i < 25; i++ {
		entry := &models.ChatEntry{
			Message:  fmt.Sprintf("message %d", i),
			Response: fmt.Sprintf("response %d", i),
			Emotion:  "calm",
			Intent:   "venting",
		}
		if err := db.SaveChat(u.ID, entry); err != nil {
			t.Fatalf("SaveChat: %v", err)
		}
		if entry.ID == 0 {
			t.Fatal("entry id not assigned")
		}
	}

	page, err := db.ChatHistory(u.ID, 1, 10)
	if err != nil {
		t.Fatalf("ChatHistory: %v", err)
	}
	if page.Total != 25 || page.Pages != 3 || page.Page != 1 {
		t.Errorf("page meta = %+v", page)
	}
	if len(page.Entries) != 10 {
		t.Fatalf("page size = %d, want 10", len(page.Entries))
	}
	// Newest first
	if page.Entries[0].Message != "message 24" {
		t.Errorf("first entry = %q", page.Entries[0].Message)
	}

	last, err := db.ChatHistory(u.ID, 3, 10)
	if err != nil {
		t.Fatalf("ChatHistory page 3: %v", err)
	}
	if len(last.Entries) != 5 {
		t.Errorf("last page size = %d, want 5", len(last.Entries))
	}

	// Out-of-range pages clamp to the last page
	clamped, err := db.ChatHistory(u.ID, 99, 10)
	if err != nil {
		t.Fatalf("ChatHistory page 99: %v", err)
	}
	if clamped.Page != 3 {
		t.Errorf("clamped page = %d, want 3", clamped.Page)
	}
}

func TestSearchChat(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db)

	db.SaveChat(u.ID, &models.ChatEntry{Message: "I had a stressful day", Response: "That sounds hard"})
	db.SaveChat(u.ID, &models.ChatEntry{Message: "Feeling great today", Response: "Wonderful"})
	db.SaveChat(u.ID, &models.ChatEntry{Message: "work stuff", Response: "STRESS is common"})

	page, err := db.SearchChat(u.ID, "stress", 1, 10)
	if err != nil {
		t.Fatalf("SearchChat: %v", err)
	}
	// Matches message and response, case-insensitively
	if page.Total != 2 {
		t.Errorf("total = %d, want 2", page.Total)
	}
}

func TestChatHistoryIsPerUser(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db)
	other, err := db.CreateUser("sam", "sam@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	db.SaveChat(u.ID, &models.ChatEntry{Message: "mine", Response: "ok"})

	page, err := db.ChatHistory(other.ID, 1, 10)
	if err != nil {
		t.Fatalf("ChatHistory: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("other user sees %d entries", page.Total)
	}
}

func TestJournalAndMood(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db)

	entry := &models.JournalEntry{Title: "Morning", Content: "Slept well", Mood: "rested"}
	if err := db.SaveJournal(u.ID, entry); err != nil {
		t.Fatalf("SaveJournal: %v", err)
	}

	entries, err := db.JournalEntries(u.ID)
	if err != nil {
		t.Fatalf("JournalEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].Content != "Slept well" {
		t.Errorf("entries = %+v", entries)
	}

	mood := &models.MoodEntry{Mood: "happy", Note: "sunny out"}
	if err := db.SaveMood(u.ID, mood); err != nil {
		t.Fatalf("SaveMood: %v", err)
	}
	if mood.ID == 0 {
		t.Error("mood id not assigned")
	}

	session := &models.MeditationSession{Duration: 10, Type: "breathing"}
	if err := db.LogMeditation(u.ID, session); err != nil {
		t.Fatalf("LogMeditation: %v", err)
	}
	if session.ID == 0 {
		t.Error("session id not assigned")
	}
}

func TestPostsLikesAndComments(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db)

	post, err := db.CreatePost(u.ID, "Grateful for small wins today")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.Author != "maya" {
		t.Errorf("author = %q", post.Author)
	}

	likes, err := db.LikePost(post.ID)
	if err != nil {
		t.Fatalf("LikePost: %v", err)
	}
	if likes != 1 {
		t.Errorf("likes = %d, want 1", likes)
	}

	if _, err := db.LikePost(9999); err != ErrNotFound {
		t.Errorf("liking missing post: err = %v, want ErrNotFound", err)
	}

	comment, err := db.AddComment(post.ID, u.ID, "Love this")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if comment.Author != "maya" || comment.PostID != post.ID {
		t.Errorf("comment = %+v", comment)
	}

	if _, err := db.AddComment(9999, u.ID, "nope"); err != ErrNotFound {
		t.Errorf("commenting on missing post: err = %v, want ErrNotFound", err)
	}

	page, err := db.Posts(1, 10)
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	if len(page.Posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(page.Posts))
	}
	got := page.Posts[0]
	if got.Likes != 1 || len(got.Comments) != 1 || got.Comments[0].Content != "Love this" {
		t.Errorf("post = %+v", got)
	}
}
