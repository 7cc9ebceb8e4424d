package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MBhoomika/serene-ai/internal/api"
	apierrors "github.com/MBhoomika/serene-ai/internal/errors"
	"github.com/MBhoomika/serene-ai/internal/models"
)

func newTestModel(t *testing.T, client api.ClientInterface) Model {
	t.Helper()
	m := NewChatModel(client, "tester")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model)
}

// pressEnter types text into the input and presses enter, returning the
// updated model and the command it produced.
func pressEnter(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.textarea.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

// deliver runs cmd synchronously and feeds its message back into the model.
// Batched commands are unwrapped; spinner ticks are skipped so the exchange
// message is the one delivered.
func deliver(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		msg = nil
		for _, sub := range batch {
			if sub == nil {
				continue
			}
			got := sub()
			if _, isTick := got.(spinner.TickMsg); isTick {
				continue
			}
			msg = got
		}
		if msg == nil {
			t.Fatal("batch contained no deliverable message")
		}
	}
	next, nextCmd := m.Update(msg)
	return next.(Model), nextCmd
}

func transientMessages(m Model) []models.Message {
	var out []models.Message
	for _, msg := range m.messages {
		if msg.Transient {
			out = append(out, msg)
		}
	}
	return out
}

func TestSubmitAppendsUserMessageAndClearsInput(t *testing.T) {
	m := newTestModel(t, &api.MockClient{ChatVal: "ok"})

	m, cmd := pressEnter(t, m, "  I feel anxious  ")
	if cmd == nil {
		t.Fatal("submit produced no send command")
	}
	if len(m.messages) != 1 {
		t.Fatalf("expected exactly one message, got %d", len(m.messages))
	}
	if m.messages[0].Origin != models.OriginUser || m.messages[0].Text != "I feel anxious" {
		t.Errorf("message = %+v", m.messages[0])
	}
	if m.textarea.Value() != "" {
		t.Errorf("input not cleared: %q", m.textarea.Value())
	}
	if !m.typing {
		t.Error("typing indicator not shown after submit")
	}
}

func TestSubmitRejectsEmptyInput(t *testing.T) {
	m := newTestModel(t, &api.MockClient{})

	for _, input := range []string{"", "   ", "\n\t "} {
		next, cmd := pressEnter(t, m, input)
		if len(next.messages) != 0 {
			t.Errorf("input %q appended a message", input)
		}
		if cmd != nil {
			// tea.Batch of textarea/viewport updates is fine; a send would
			// set typing
			if next.typing {
				t.Errorf("input %q started an exchange", input)
			}
		}
	}
}

func TestSubmitRejectedWhileInFlight(t *testing.T) {
	mock := &api.MockClient{ChatVal: "ok"}
	m := newTestModel(t, mock)

	m, _ = pressEnter(t, m, "first")
	if mock.ChatCalled != 0 {
		t.Fatal("send command ran eagerly")
	}

	// Second submit while typing must be ignored
	m, _ = pressEnter(t, m, "second")
	if len(m.messages) != 1 {
		t.Errorf("overlapping submit appended a message: %d messages", len(m.messages))
	}
}

func TestSuccessfulExchange(t *testing.T) {
	mock := &api.MockClient{ChatVal: "hello"}
	m := newTestModel(t, mock)

	m, cmd := pressEnter(t, m, "how are you")
	m, saveCmd := deliver(t, m, cmd)

	if m.typing {
		t.Error("typing indicator still visible after response")
	}
	if len(m.messages) != 2 {
		t.Fatalf("expected user+bot messages, got %d", len(m.messages))
	}
	bot := m.messages[1]
	if bot.Origin != models.OriginBot || bot.Text != "hello" || bot.Transient {
		t.Errorf("bot message = %+v", bot)
	}
	if m.retry.Count != 0 || m.retry.InFlight {
		t.Errorf("retry state not reset: %+v", m.retry)
	}

	// The follow-up command is the fire-and-forget history save
	if saveCmd == nil {
		t.Fatal("no save command after successful response")
	}
	saveCmd()
	if mock.SaveChatCalled != 1 {
		t.Fatalf("SaveChat called %d times, want 1", mock.SaveChatCalled)
	}
	if got := mock.SavedMessages[0]; got[0] != "how are you" || got[1] != "hello" {
		t.Errorf("SaveChat got %v", got)
	}
}

func TestSaveFailureIsSwallowed(t *testing.T) {
	mock := &api.MockClient{
		ChatVal:     "hello",
		SaveChatErr: apierrors.NewNetworkError("/save_chat", nil),
	}
	m := newTestModel(t, mock)

	m, cmd := pressEnter(t, m, "hi")
	m, saveCmd := deliver(t, m, cmd)
	m, _ = deliver(t, m, saveCmd)

	// Still just user + bot, no error line
	if len(m.messages) != 2 {
		t.Errorf("save failure leaked into the transcript: %d messages", len(m.messages))
	}
	if ts := transientMessages(m); len(ts) != 0 {
		t.Errorf("save failure produced a status line: %v", ts)
	}
}

func TestRateLimitRetrySequence(t *testing.T) {
	mock := &api.MockClient{
		ChatErr: apierrors.NewRateLimitError("rate limit reached"),
	}
	m := newTestModel(t, mock)

	m, cmd := pressEnter(t, m, "hi")

	// Three rate-limit failures produce attempt-numbered notices 1/3..3/3
	for want := 1; want <= 3; want++ {
		m, cmd = deliver(t, m, cmd) // errMsg -> retry notice + tick cmd
		ts := transientMessages(m)
		if len(ts) != 1 {
			t.Fatalf("attempt %d: %d transient messages, want 1", want, len(ts))
		}
		wantNotice := retryNotice(want, 3)
		if ts[0].Text != wantNotice {
			t.Errorf("attempt %d notice = %q, want %q", want, ts[0].Text, wantNotice)
		}
		if cmd == nil {
			t.Fatalf("attempt %d: no retry timer scheduled", want)
		}
		if m.retry.Count != want || !m.retry.InFlight {
			t.Errorf("attempt %d retry state = %+v", want, m.retry)
		}

		// Fire the retry without waiting out the real delay
		next, sendCmd := m.Update(retryTickMsg{gen: m.retryGen})
		m = next.(Model)
		if !m.typing {
			t.Fatalf("attempt %d: retry did not resend", want)
		}
		cmd = sendCmd
	}

	// Fourth rate-limit failure: budget exhausted, generic notice, reset
	m, cmd = deliver(t, m, cmd)
	ts := transientMessages(m)
	if len(ts) != 1 || ts[0].Text != genericNotice {
		t.Errorf("after exhaustion: transients = %v, want single generic notice", ts)
	}
	if cmd != nil {
		t.Error("a fourth retry was scheduled")
	}
	if m.retry.Count != 0 || m.retry.InFlight {
		t.Errorf("retry state not reset after exhaustion: %+v", m.retry)
	}

	// 1 original + 4 retries worth of Chat calls... the mock saw the
	// initial send plus three resends
	if mock.ChatCalled != 4 {
		t.Errorf("Chat called %d times, want 4", mock.ChatCalled)
	}
}

func TestAuthErrorNeverRetries(t *testing.T) {
	mock := &api.MockClient{ChatErr: apierrors.NewAuthError("Invalid API key")}
	m := newTestModel(t, mock)

	// Pre-existing retry progress must be left untouched by an auth error
	m.retry.Count = 2

	m, cmd := pressEnter(t, m, "hi")
	m, next := deliver(t, m, cmd)

	ts := transientMessages(m)
	if len(ts) != 1 || ts[0].Text != authNotice {
		t.Errorf("transients = %v, want single auth notice", ts)
	}
	if next != nil {
		t.Error("auth error scheduled a follow-up command")
	}
	if m.retry.Count != 2 {
		t.Errorf("auth error modified retry state: count = %d, want 2", m.retry.Count)
	}
}

func TestNetworkErrorResetsRetryState(t *testing.T) {
	mock := &api.MockClient{
		ChatErrs: []error{
			apierrors.NewRateLimitError("rate limit"),
			apierrors.NewNetworkError("/chat", nil),
			apierrors.NewRateLimitError("rate limit"),
		},
	}
	m := newTestModel(t, mock)

	m, cmd := pressEnter(t, m, "hi")
	m, _ = deliver(t, m, cmd) // rate limit -> retry 1/3 scheduled

	next, sendCmd := m.Update(retryTickMsg{gen: m.retryGen})
	m = next.(Model)
	m, _ = deliver(t, m, sendCmd) // network error

	ts := transientMessages(m)
	if len(ts) != 1 || ts[0].Text != networkNotice {
		t.Errorf("transients = %v, want single connectivity notice", ts)
	}
	if m.retry.Count != 0 || m.retry.InFlight {
		t.Errorf("retry state not reset by network error: %+v", m.retry)
	}

	// A fresh rate-limit failure starts again from attempt 1
	m, cmd = pressEnter(t, m, "again")
	m, _ = deliver(t, m, cmd)
	ts = transientMessages(m)
	if len(ts) != 1 || ts[0].Text != retryNotice(1, 3) {
		t.Errorf("fresh sequence notice = %v, want attempt 1/3", ts)
	}
}

func TestOnlyOneTransientMessageAccumulates(t *testing.T) {
	m := newTestModel(t, &api.MockClient{})

	// Two consecutive connectivity failures each replace the prior notice
	m, _ = m.handleFailure("hi", apierrors.NewNetworkError("/chat", nil))
	m, _ = m.handleFailure("hi", apierrors.NewNetworkError("/chat", nil))

	ts := transientMessages(m)
	if len(ts) != 1 {
		t.Fatalf("%d transient messages accumulated, want 1", len(ts))
	}
	if ts[0].Text != networkNotice {
		t.Errorf("notice = %q", ts[0].Text)
	}
}

func TestTransientReplacedByRealOutcome(t *testing.T) {
	mock := &api.MockClient{
		ChatErrs: []error{apierrors.NewRateLimitError("rate limit")},
		ChatVal:  "better now",
	}
	m := newTestModel(t, mock)

	m, cmd := pressEnter(t, m, "hi")
	m, _ = deliver(t, m, cmd) // retry notice shown

	next, sendCmd := m.Update(retryTickMsg{gen: m.retryGen})
	m = next.(Model)
	m, _ = deliver(t, m, sendCmd) // success replaces the notice

	if ts := transientMessages(m); len(ts) != 0 {
		t.Errorf("retry notice survived the successful outcome: %v", ts)
	}
	last := m.messages[len(m.messages)-1]
	if last.Text != "better now" || last.Origin != models.OriginBot {
		t.Errorf("last message = %+v", last)
	}
}

func TestEscCancelsPendingRetry(t *testing.T) {
	mock := &api.MockClient{ChatErr: apierrors.NewRateLimitError("rate limit")}
	m := newTestModel(t, mock)

	m, cmd := pressEnter(t, m, "hi")
	m, _ = deliver(t, m, cmd) // retry scheduled
	gen := m.retryGen

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.retry.InFlight || m.retry.Count != 0 {
		t.Errorf("esc did not reset retry state: %+v", m.retry)
	}
	if m.retryGen == gen {
		t.Error("esc did not invalidate the pending retry timer")
	}

	// The stale timer firing must be a no-op
	calls := mock.ChatCalled
	next, sendCmd := m.Update(retryTickMsg{gen: gen})
	m = next.(Model)
	if sendCmd != nil {
		sendCmd()
	}
	if mock.ChatCalled != calls {
		t.Error("cancelled retry still resent the message")
	}
}

func TestStaleRetryTickIgnoredAfterNewExchange(t *testing.T) {
	mock := &api.MockClient{
		ChatErrs: []error{apierrors.NewRateLimitError("rate limit")},
		ChatVal:  "ok",
	}
	m := newTestModel(t, mock)

	m, cmd := pressEnter(t, m, "first")
	m, _ = deliver(t, m, cmd)
	staleGen := m.retryGen

	// Cancel and start a new exchange
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	m, cmd = pressEnter(t, m, "second")
	m, _ = deliver(t, m, cmd)

	if _, sendCmd := m.Update(retryTickMsg{gen: staleGen}); sendCmd != nil {
		t.Error("stale retry tick produced a send")
	}
}

func TestRecorderReceivesTranscript(t *testing.T) {
	var lines []string
	mock := &api.MockClient{ChatVal: "hello"}
	m := NewChatModel(mock, "tester", WithRecorder(func(origin models.Origin, content string) {
		lines = append(lines, string(origin)+":"+content)
	}))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = next.(Model)

	m, cmd := pressEnter(t, m, "hi")
	m, _ = deliver(t, m, cmd)

	if len(lines) != 2 || lines[0] != "user:hi" || lines[1] != "bot:hello" {
		t.Errorf("recorded transcript = %v", lines)
	}
}

func TestViewShowsTypingIndicator(t *testing.T) {
	m := newTestModel(t, &api.MockClient{ChatVal: "ok"})
	m, _ = pressEnter(t, m, "hi")

	view := m.View()
	if !strings.Contains(view, "Serene is typing") {
		t.Error("typing indicator missing from view")
	}
}

func TestViewWelcomeWhenEmpty(t *testing.T) {
	m := newTestModel(t, &api.MockClient{})
	if !strings.Contains(m.View(), "Welcome to Serene") {
		t.Error("welcome screen missing")
	}
}
