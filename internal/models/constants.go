package models

// API endpoint paths, relative to the configured server URL.
const (
	EndpointChat          = "/chat"
	EndpointSaveChat      = "/save_chat"
	EndpointChatHistory   = "/chat_history"
	EndpointSearchChat    = "/search_chat"
	EndpointRegister      = "/register"
	EndpointLogin         = "/login"
	EndpointLogout        = "/logout"
	EndpointSaveJournal   = "/save_journal"
	EndpointJournal       = "/journal"
	EndpointSaveMood      = "/save_mood"
	EndpointLogMeditation = "/log_meditation"
	EndpointStartActivity = "/start_activity"
	EndpointChallenge     = "/challenge"
	EndpointQuote         = "/quote"
	EndpointPosts         = "/posts"
	EndpointHealth        = "/healthz"
)

// SessionCookie is the name of the session cookie issued by /login.
const SessionCookie = "serene_session"

// DefaultServerURL is where the client looks for a local Serene server.
const DefaultServerURL = "http://localhost:8490"

// HistoryPageSize is the number of entries per page for paginated listings.
const HistoryPageSize = 10
