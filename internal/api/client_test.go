package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apierrors "github.com/MBhoomika/serene-ai/internal/errors"
	"github.com/MBhoomika/serene-ai/internal/models"
)

func TestChatSuccess(t *testing.T) {
	var gotBody models.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != models.EndpointChat {
			t.Errorf("path = %s, want %s", r.URL.Path, models.EndpointChat)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(models.ChatResponse{Response: "hello"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	response, err := client.Chat(context.Background(), "hi there")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if response != "hello" {
		t.Errorf("response = %q, want %q", response, "hello")
	}
	if gotBody.Message != "hi there" {
		t.Errorf("request message = %q, want %q", gotBody.Message, "hi there")
	}
}

func TestChatSendsSessionCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(models.SessionCookie)
		if err != nil {
			t.Error("session cookie missing")
		} else if cookie.Value != "tok-123" {
			t.Errorf("cookie = %q, want tok-123", cookie.Value)
		}
		json.NewEncoder(w).Encode(models.ChatResponse{Response: "ok"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithToken("tok-123"))
	if _, err := client.Chat(context.Background(), "hi"); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
}

func TestChatErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind apierrors.Kind
	}{
		{"auth from error text", 500, `{"error":"OpenAI API authentication failed"}`, apierrors.KindAuth},
		{"rate limit from error text", 500, `{"error":"Rate limit reached, try later"}`, apierrors.KindRateLimit},
		{"network from error text", 502, `{"error":"connection to upstream lost"}`, apierrors.KindNetwork},
		{"unknown error text", 500, `{"error":"something broke"}`, apierrors.KindUnknown},
		{"bare 401", 401, ``, apierrors.KindAuth},
		{"bare 429", 429, ``, apierrors.KindRateLimit},
		{"bare 500", 500, `not json`, apierrors.KindNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL)
			_, err := client.Chat(context.Background(), "hi")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := apierrors.KindOf(err); got != tt.wantKind {
				t.Errorf("KindOf(%v) = %v, want %v", err, got, tt.wantKind)
			}
		})
	}
}

func TestChatTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewClient(srv.URL)
	_, err := client.Chat(context.Background(), "hi")
	if !errors.Is(err, apierrors.ErrNetwork) {
		t.Errorf("transport failure classified as %v, want network", apierrors.KindOf(err))
	}
}

func TestChatMissingResponseField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected": true}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Chat(context.Background(), "hi"); err == nil {
		t.Fatal("expected error for missing response field")
	}
}

func TestSaveChat(t *testing.T) {
	var got models.SaveChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != models.EndpointSaveChat {
			t.Errorf("path = %s, want %s", r.URL.Path, models.EndpointSaveChat)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if err := client.SaveChat(context.Background(), "how are you", "hello"); err != nil {
		t.Fatalf("SaveChat failed: %v", err)
	}
	if got.Message != "how are you" || got.Response != "hello" {
		t.Errorf("SaveChat body = %+v", got)
	}
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "bhoomi" || req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"authentication failed"}`))
			return
		}
		json.NewEncoder(w).Encode(models.LoginResponse{Token: "tok-abc"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	token, err := client.Login(context.Background(), "bhoomi", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token != "tok-abc" || client.Token() != "tok-abc" {
		t.Errorf("token = %q, client token = %q, want tok-abc", token, client.Token())
	}

	_, err = client.Login(context.Background(), "bhoomi", "wrong")
	if !apierrors.IsAuthError(err) {
		t.Errorf("bad login classified as %v, want auth", apierrors.KindOf(err))
	}
}

func TestHistoryPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %s, want 2", got)
		}
		json.NewEncoder(w).Encode(models.HistoryPage{
			Entries: []models.ChatEntry{{Message: "m", Response: "r"}},
			Page:    2, Pages: 3, Total: 25,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	page, err := client.History(context.Background(), 2)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if page.Page != 2 || page.Pages != 3 || len(page.Entries) != 1 {
		t.Errorf("page = %+v", page)
	}
}

func TestChatWithRetryRateLimit(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate limit reached"}`))
			return
		}
		json.NewEncoder(w).Encode(models.ChatResponse{Response: "finally"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	rs := RetryState{Max: MaxRetries, Delay: time.Millisecond}

	var notices []int
	response, err := client.ChatWithRetry(context.Background(), "hi", &rs, func(attempt, max int) {
		notices = append(notices, attempt)
	})
	if err != nil {
		t.Fatalf("ChatWithRetry failed: %v", err)
	}
	if response != "finally" {
		t.Errorf("response = %q", response)
	}
	if len(notices) != 2 || notices[0] != 1 || notices[1] != 2 {
		t.Errorf("retry notices = %v, want [1 2]", notices)
	}
	if rs.Count != 0 || rs.InFlight {
		t.Errorf("RetryState not reset after success: %+v", rs)
	}
}

func TestChatWithRetryExhaustion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limit reached"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	rs := RetryState{Max: MaxRetries, Delay: time.Millisecond}

	var notices []int
	_, err := client.ChatWithRetry(context.Background(), "hi", &rs, func(attempt, max int) {
		notices = append(notices, attempt)
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if len(notices) != MaxRetries {
		t.Errorf("got %d retry notices, want %d", len(notices), MaxRetries)
	}
	if rs.Count != 0 || rs.InFlight {
		t.Errorf("RetryState not reset after exhaustion: %+v", rs)
	}
}

func TestChatWithRetryAuthTerminal(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid API key"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	rs := RetryState{Count: 2, Max: MaxRetries, Delay: time.Millisecond}

	_, err := client.ChatWithRetry(context.Background(), "hi", &rs, nil)
	if !apierrors.IsAuthError(err) {
		t.Errorf("err kind = %v, want auth", apierrors.KindOf(err))
	}
	if attempts != 1 {
		t.Errorf("auth error retried: %d attempts", attempts)
	}
	if rs.Count != 2 {
		t.Errorf("auth error must leave RetryState untouched, got count %d", rs.Count)
	}
}

func TestChatWithRetryContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limit reached"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	rs := RetryState{Max: MaxRetries, Delay: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := client.ChatWithRetry(ctx, "hi", &rs, nil)
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("retry wait not cancelled by context")
	}
}

func TestRetryStateSchedule(t *testing.T) {
	rs := NewRetryState()

	for i := 1; i <= MaxRetries; i++ {
		if !rs.Schedule("msg") {
			t.Fatalf("Schedule refused attempt %d", i)
		}
		if rs.Count != i || !rs.InFlight {
			t.Errorf("after attempt %d: %+v", i, rs)
		}
		if got := rs.Resend(); got != "msg" {
			t.Errorf("Resend = %q", got)
		}
	}

	if rs.Schedule("msg") {
		t.Error("Schedule allowed a fourth attempt")
	}

	rs.Reset()
	if !rs.Schedule("msg") {
		t.Error("Schedule refused after Reset")
	}
}

func TestRetryStateRejectsConcurrentSchedule(t *testing.T) {
	rs := NewRetryState()
	if !rs.Schedule("first") {
		t.Fatal("first Schedule refused")
	}
	if rs.Schedule("second") {
		t.Error("Schedule allowed while a retry is already pending")
	}
}
