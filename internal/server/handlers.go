package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MBhoomika/serene-ai/internal/models"
	"github.com/MBhoomika/serene-ai/internal/responder"
	"github.com/MBhoomika/serene-ai/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.responder == nil {
		writeError(w, http.StatusServiceUnavailable,
			"Chat service is currently unavailable. Please check the server logs for more information. 🙏")
		return
	}

	var req models.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	reply := s.responder.Respond(r.Context(), message)

	entry := &models.ChatEntry{
		Message:  message,
		Response: reply.Text,
		Emotion:  reply.Emotion,
		Intent:   reply.Intent,
	}
	if err := s.db.SaveChat(userID(r), entry); err != nil {
		s.logger.Errorw("failed to save chat entry", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again in a moment. 💫")
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: reply.Text})
}

func (s *Server) handleSaveChat(w http.ResponseWriter, r *http.Request) {
	var req models.SaveChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Message == "" || req.Response == "" {
		writeError(w, http.StatusBadRequest, "Message and response are required")
		return
	}

	// Fill in the analysis labels when the client didn't send them.
	if req.Emotion == "" {
		req.Emotion = responder.AnalyzeEmotion(req.Message)
	}
	if req.Intent == "" {
		req.Intent = responder.AnalyzeIntent(req.Message)
	}

	entry := &models.ChatEntry{
		Message:  req.Message,
		Response: req.Response,
		Emotion:  req.Emotion,
		Intent:   req.Intent,
	}
	if err := s.db.SaveChat(userID(r), entry); err != nil {
		s.logger.Errorw("failed to save chat entry", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again in a moment. 💫")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	page, err := s.db.ChatHistory(userID(r), pageParam(r), models.HistoryPageSize)
	if err != nil {
		s.logger.Errorw("failed to load chat history", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again in a moment. 💫")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleSearchChat(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// An empty query falls back to plain history, same pagination.
	page, err := s.db.SearchChat(userID(r), strings.TrimSpace(req.Query), pageParam(r), models.HistoryPageSize)
	if err != nil {
		s.logger.Errorw("failed to search chat history", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again in a moment. 💫")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleSaveJournal(w http.ResponseWriter, r *http.Request) {
	var req models.JournalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "Content cannot be empty")
		return
	}

	entry := &models.JournalEntry{Title: req.Title, Content: req.Content, Mood: req.Mood}
	if err := s.db.SaveJournal(userID(r), entry); err != nil {
		s.logger.Errorw("failed to save journal entry", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again in a moment. 💫")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Journal entry saved successfully"})
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	entries, err := s.db.JournalEntries(userID(r))
	if err != nil {
		s.logger.Errorw("failed to load journal", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again in a moment. 💫")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleSaveMood(w http.ResponseWriter, r *http.Request) {
	var req models.MoodRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Mood) == "" {
		writeError(w, http.StatusBadRequest, "Please select a mood")
		return
	}

	entry := &models.MoodEntry{Mood: req.Mood, Note: req.Note}
	if err := s.db.SaveMood(userID(r), entry); err != nil {
		s.logger.Errorw("failed to save mood", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again in a moment. 💫")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Mood saved successfully"})
}

func (s *Server) handleLogMeditation(w http.ResponseWriter, r *http.Request) {
	var req models.MeditationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Duration <= 0 {
		writeError(w, http.StatusBadRequest, "Duration must be positive")
		return
	}
	if req.Type == "" {
		req.Type = "meditation"
	}

	session := &models.MeditationSession{Duration: req.Duration, Type: req.Type}
	if err := s.db.LogMeditation(userID(r), session); err != nil {
		s.logger.Errorw("failed to log meditation", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again in a moment. 💫")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) handleStartActivity(w http.ResponseWriter, r *http.Request) {
	var req models.ActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	opener, err := s.responder.StartActivity(r.Context(), req.ActivityType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: opener})
}

func (s *Server) handleChallenge(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	challenge := s.challenge
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, challenge)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"quote": s.responder.Quotes().Current()})
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	page, err := s.db.Posts(pageParam(r), models.HistoryPageSize)
	if err != nil {
		s.logger.Errorw("failed to load posts", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again in a moment. 💫")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req models.PostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "Post content cannot be empty")
		return
	}

	post, err := s.db.CreatePost(userID(r), req.Content)
	if err != nil {
		s.logger.Errorw("failed to create post", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again in a moment. 💫")
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) handleLikePost(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	likes, err := s.db.LikePost(postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Post not found")
			return
		}
		s.logger.Errorw("failed to like post", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again in a moment. 💫")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "likes": likes})
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	comments, err := s.db.Comments(postID)
	if err != nil {
		s.logger.Errorw("failed to load comments", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again in a moment. 💫")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	var req models.PostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "Comment cannot be empty")
		return
	}

	comment, err := s.db.AddComment(postID, userID(r), req.Content)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Post not found")
			return
		}
		s.logger.Errorw("failed to add comment", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again in a moment. 💫")
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func postIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

