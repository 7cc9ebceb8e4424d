// Package api implements the HTTP client for the Serene backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	apierrors "github.com/MBhoomika/serene-ai/internal/errors"
	"github.com/MBhoomika/serene-ai/internal/models"
)

// maxErrorBody caps how much of an error response is read for diagnostics.
const maxErrorBody = 4096

// ClientInterface defines the operations the widget and commands need.
// *Client is the real implementation; MockClient serves tests.
type ClientInterface interface {
	Chat(ctx context.Context, message string) (string, error)
	SaveChat(ctx context.Context, message, response string) error
}

// Client talks JSON over HTTP to a Serene server.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sets the session token sent as the session cookie.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the session token (after login).
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current session token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// postJSON sends body to path and returns the raw response body. Transport
// failures become NetworkError. Non-2xx responses are classified through the
// server's {"error": ...} text when present, otherwise treated uniformly as
// a network failure.
func (c *Client) postJSON(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// getJSON issues a GET to path and returns the raw response body.
func (c *Client) getJSON(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.AddCookie(&http.Cookie{Name: models.SessionCookie, Value: token})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkError(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if msg := gjson.GetBytes(raw, "error"); msg.Exists() && msg.String() != "" {
			return nil, apierrors.FromText(resp.StatusCode, path, msg.String())
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, apierrors.NewAuthError(fmt.Sprintf("server returned %d", resp.StatusCode))
		case http.StatusTooManyRequests:
			return nil, apierrors.NewRateLimitError(fmt.Sprintf("server returned %d", resp.StatusCode))
		default:
			return nil, apierrors.NewNetworkError(path, errors.New("network response was not ok"))
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError(path, err)
	}
	return raw, nil
}

// Chat sends a message and returns the companion's reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	raw, err := c.postJSON(ctx, models.EndpointChat, models.ChatRequest{Message: message})
	if err != nil {
		return "", err
	}

	response := gjson.GetBytes(raw, "response")
	if !response.Exists() || response.String() == "" {
		return "", apierrors.NewAPIError(0, models.EndpointChat, "response field missing")
	}
	return response.String(), nil
}

// SaveChat records an exchange in the server-side history. Callers treat
// failures as best effort: log, never surface.
func (c *Client) SaveChat(ctx context.Context, message, response string) error {
	_, err := c.postJSON(ctx, models.EndpointSaveChat, models.SaveChatRequest{
		Message:  message,
		Response: response,
	})
	return err
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	_, err := c.postJSON(ctx, models.EndpointRegister, models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	return err
}

// Login authenticates and stores the returned session token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	raw, err := c.postJSON(ctx, models.EndpointLogin, models.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return "", err
	}
	token := gjson.GetBytes(raw, "token").String()
	if token == "" {
		return "", apierrors.NewAPIError(0, models.EndpointLogin, "token field missing")
	}
	c.SetToken(token)
	return token, nil
}

// Logout invalidates the current session.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.postJSON(ctx, models.EndpointLogout, nil)
	if err == nil {
		c.SetToken("")
	}
	return err
}

// History fetches one page of chat history.
func (c *Client) History(ctx context.Context, page int) (*models.HistoryPage, error) {
	raw, err := c.getJSON(ctx, fmt.Sprintf("%s?page=%d", models.EndpointChatHistory, page))
	if err != nil {
		return nil, err
	}
	var out models.HistoryPage
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return &out, nil
}

// SearchChat searches chat history for query.
func (c *Client) SearchChat(ctx context.Context, query string, page int) (*models.HistoryPage, error) {
	raw, err := c.postJSON(ctx, fmt.Sprintf("%s?page=%d", models.EndpointSearchChat, page), models.SearchRequest{Query: query})
	if err != nil {
		return nil, err
	}
	var out models.HistoryPage
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}
	return &out, nil
}

// SaveJournal stores a journal entry.
func (c *Client) SaveJournal(ctx context.Context, title, content, mood string) error {
	_, err := c.postJSON(ctx, models.EndpointSaveJournal, models.JournalRequest{
		Title:   title,
		Content: content,
		Mood:    mood,
	})
	return err
}

// SaveMood stores a mood check-in.
func (c *Client) SaveMood(ctx context.Context, mood, note string) error {
	_, err := c.postJSON(ctx, models.EndpointSaveMood, models.MoodRequest{Mood: mood, Note: note})
	return err
}

// LogMeditation records a completed meditation session.
func (c *Client) LogMeditation(ctx context.Context, duration int, kind string) error {
	_, err := c.postJSON(ctx, models.EndpointLogMeditation, models.MeditationRequest{
		Duration: duration,
		Type:     kind,
	})
	return err
}

// StartActivity asks the companion to open a guided activity.
func (c *Client) StartActivity(ctx context.Context, activityType string) (string, error) {
	raw, err := c.postJSON(ctx, models.EndpointStartActivity, models.ActivityRequest{ActivityType: activityType})
	if err != nil {
		return "", err
	}
	return gjson.GetBytes(raw, "response").String(), nil
}

// Challenge fetches today's wellness challenge.
func (c *Client) Challenge(ctx context.Context) (*models.Challenge, error) {
	raw, err := c.getJSON(ctx, models.EndpointChallenge)
	if err != nil {
		return nil, err
	}
	var out models.Challenge
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode challenge: %w", err)
	}
	return &out, nil
}

// Quote fetches the current rotating quote.
func (c *Client) Quote(ctx context.Context) (string, error) {
	raw, err := c.getJSON(ctx, models.EndpointQuote)
	if err != nil {
		return "", err
	}
	return gjson.GetBytes(raw, "quote").String(), nil
}
