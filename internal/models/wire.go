package models

// Request and response bodies for the Serene HTTP API. The server replies
// with either the documented success body or `{"error": "..."}`.

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the success body of POST /chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// SaveChatRequest is the body of POST /save_chat. Emotion and Intent are
// optional; the server fills them in when absent.
type SaveChatRequest struct {
	Message  string `json:"message"`
	Response string `json:"response"`
	Emotion  string `json:"emotion,omitempty"`
	Intent   string `json:"intent,omitempty"`
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the session token. The same token is also set as
// the session cookie.
type LoginResponse struct {
	Token string `json:"token"`
}

// JournalRequest is the body of POST /save_journal.
type JournalRequest struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
	Mood    string `json:"mood,omitempty"`
}

// MoodRequest is the body of POST /save_mood.
type MoodRequest struct {
	Mood string `json:"mood"`
	Note string `json:"note,omitempty"`
}

// MeditationRequest is the body of POST /log_meditation.
type MeditationRequest struct {
	Duration int    `json:"duration"`
	Type     string `json:"type"`
}

// ActivityRequest is the body of POST /start_activity.
type ActivityRequest struct {
	ActivityType string `json:"activity_type"`
}

// PostRequest is the body of POST /posts and POST /posts/{id}/comments.
type PostRequest struct {
	Content string `json:"content"`
}

// SearchRequest is the body of POST /search_chat.
type SearchRequest struct {
	Query string `json:"query"`
}

// HistoryPage is one page of chat history.
type HistoryPage struct {
	Entries []ChatEntry `json:"entries"`
	Page    int         `json:"page"`
	Pages   int         `json:"pages"`
	Total   int         `json:"total"`
}

// PostsPage is one page of community posts.
type PostsPage struct {
	Posts []Post `json:"posts"`
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
	Total int    `json:"total"`
}
