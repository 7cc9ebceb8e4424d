package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MBhoomika/serene-ai/internal/models"
	"github.com/MBhoomika/serene-ai/internal/store"
)

type contextKey string

const userIDKey contextKey = "userID"

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// requireAuth resolves the session cookie to a user id. The error text is
// part of the API: clients recognize credential problems by the word
// "authentication".
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(models.SessionCookie)
		if err != nil || cookie.Value == "" {
			writeError(w, http.StatusUnauthorized, "Authentication required. Please log in. 🙏")
			return
		}

		userID, err := s.db.GetSessionUser(cookie.Value, time.Now())
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "Authentication expired. Please log in again. 🙏")
				return
			}
			s.logger.Errorw("session lookup failed", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again in a moment. 💫")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

func userID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey).(int64)
	return id
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username, email, and password are required")
		return
	}
	if len(req.Password) < 6 {
		writeError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Errorw("failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again in a moment. 💫")
		return
	}

	if _, err := s.db.CreateUser(req.Username, req.Email, string(hash)); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.db.GetUserByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		s.logger.Errorw("user lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again in a moment. 💫")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token := uuid.NewString()
	if err := s.db.CreateSession(token, user.ID, time.Now().Add(s.cfg.SessionTTL)); err != nil {
		s.logger.Errorw("failed to create session", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again in a moment. 💫")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     models.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.cfg.SessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, models.LoginResponse{Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(models.SessionCookie); err == nil {
		if err := s.db.DeleteSession(cookie.Value); err != nil {
			s.logger.Warnw("failed to delete session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:    models.SessionCookie,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
