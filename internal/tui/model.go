package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/MBhoomika/serene-ai/internal/api"
	apierrors "github.com/MBhoomika/serene-ai/internal/errors"
	"github.com/MBhoomika/serene-ai/internal/models"
)

// User-visible status lines. Exactly one of these is on screen at a time;
// each replaces the previous transient line before being shown.
const (
	authNotice    = "There's a problem with Serene's API credentials. Please ask whoever runs your server to check the API key. 🙏"
	networkNotice = "I couldn't reach Serene. Please check your connection and try again. 🌐"
	genericNotice = "Something unexpected happened. Please try again in a moment. 💫"
)

func retryNotice(attempt, max int) string {
	return fmt.Sprintf("Serene is a little overwhelmed right now. Retrying (%d/%d)... 💫", attempt, max)
}

// Message types for the widget
type (
	responseMsg struct {
		sent string // the message that was answered
		text string
	}
	errMsg struct {
		sent string // the message that failed
		err  error
	}
	// retryTickMsg fires when a scheduled retry delay elapses. gen guards
	// against stale timers: only the current generation is honored.
	retryTickMsg struct {
		gen int
	}
	saveResultMsg struct {
		err error
	}
)

// Recorder receives each transcript line for local persistence. May be nil.
type Recorder func(origin models.Origin, content string)

// Model is the chat widget state.
type Model struct {
	client   api.ClientInterface
	username string
	logger   *zap.SugaredLogger
	record   Recorder

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	messages []models.Message
	typing   bool // an exchange is in flight; input is rejected
	ready    bool
	quitting bool

	// Retry cycle for the current exchange
	retry    api.RetryState
	retryGen int // bumped to cancel a pending retry timer

	// Dimensions
	width  int
	height int
}

// Option configures the widget.
type Option func(*Model)

// WithLogger sets the logger used for swallowed failures (history saves).
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithRecorder sets the local transcript recorder.
func WithRecorder(r Recorder) Option {
	return func(m *Model) {
		m.record = r
	}
}

// NewChatModel creates the chat widget.
func NewChatModel(client api.ClientInterface, username string, opts ...Option) Model {
	ta := textarea.New()
	ta.Placeholder = "Share what's on your mind..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = typingStyle

	m := Model{
		client:   client,
		username: username,
		textarea: ta,
		spinner:  s,
		messages: []models.Message{},
		retry:    api.NewRetryState(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		inputHeight := 6
		statusHeight := 1
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			m.retryGen++ // cancel any pending retry
			return m, tea.Quit

		case "esc":
			if m.typing || m.retry.InFlight {
				// Abandon the in-flight exchange and any pending retry.
				m.typing = false
				m.retryGen++
				m.retry.Reset()
			} else {
				m.quitting = true
				return m, tea.Quit
			}

		case "enter":
			input := strings.TrimSpace(m.textarea.Value())
			if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
				m.quitting = true
				m.retryGen++
				return m, tea.Quit
			}
			if cmd, ok := m.submit(input); ok {
				return m, tea.Batch(cmd, m.spinner.Tick)
			}
		}

	case responseMsg:
		m.typing = false
		m.removeTransient()
		m.append(models.BotMessage(msg.text))
		m.retry.Reset()
		if m.record != nil {
			m.record(models.OriginBot, msg.text)
		}
		m.updateViewport()
		m.viewport.GotoBottom()
		// Best effort: persist the exchange server-side.
		return m, m.saveChat(msg.sent, msg.text)

	case errMsg:
		next, failCmd := m.handleFailure(msg.sent, msg.err)
		return next, failCmd

	case retryTickMsg:
		if msg.gen != m.retryGen {
			break // cancelled timer, ignore
		}
		pending := m.retry.Resend()
		if pending == "" {
			break
		}
		m.typing = true
		return m, tea.Batch(m.send(pending), m.spinner.Tick)

	case saveResultMsg:
		if msg.err != nil && m.logger != nil {
			// Logged only, never surfaced in the chat.
			m.logger.Warnw("failed to save chat history", "error", msg.err)
		}

	case spinner.TickMsg:
		if m.typing {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Only pass key events to the textarea, and only while idle.
	if !m.typing {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit validates input and starts an exchange. Reports false when nothing
// was submitted (empty input, or an exchange already in flight).
func (m *Model) submit(text string) (tea.Cmd, bool) {
	if m.typing || m.retry.InFlight {
		return nil, false // no overlapping exchanges
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	m.append(models.UserMessage(text))
	m.textarea.Reset()
	m.typing = true
	if m.record != nil {
		m.record(models.OriginUser, text)
	}
	m.updateViewport()
	m.viewport.GotoBottom()

	return m.send(text), true
}

// send issues the chat request off the UI loop.
func (m Model) send(text string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		response, err := client.Chat(context.Background(), text)
		if err != nil {
			return errMsg{sent: text, err: err}
		}
		return responseMsg{sent: text, text: response}
	}
}

// saveChat fires the best-effort history save.
func (m Model) saveChat(message, response string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return saveResultMsg{err: client.SaveChat(context.Background(), message, response)}
	}
}

// handleFailure classifies err and reacts: terminal auth notice, scheduled
// rate-limit retry, connectivity notice, or generic notice. The typing
// indicator is hidden first and the previous transient line removed before
// the new one is appended, so stale status text never accumulates.
func (m Model) handleFailure(sent string, err error) (Model, tea.Cmd) {
	m.typing = false
	m.removeTransient()

	var cmd tea.Cmd
	switch apierrors.KindOf(err) {
	case apierrors.KindAuth:
		// Terminal: no retry, retry state untouched.
		m.append(models.StatusMessage(authNotice))

	case apierrors.KindRateLimit:
		if m.retry.Schedule(sent) {
			m.append(models.StatusMessage(retryNotice(m.retry.Count, m.retry.Max)))
			gen := m.retryGen
			cmd = tea.Tick(m.retry.Delay, func(time.Time) tea.Msg {
				return retryTickMsg{gen: gen}
			})
		} else {
			// Budget exhausted
			m.append(models.StatusMessage(genericNotice))
			m.retry.Reset()
		}

	case apierrors.KindNetwork:
		m.append(models.StatusMessage(networkNotice))
		m.retry.Reset()

	default:
		m.append(models.StatusMessage(genericNotice))
		m.retry.Reset()
	}

	m.updateViewport()
	m.viewport.GotoBottom()
	return m, cmd
}

func (m *Model) append(msg models.Message) {
	m.messages = append(m.messages, msg)
}

// removeTransient drops the most recent transient bot status line, if any.
func (m *Model) removeTransient() {
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Transient {
			m.messages = append(m.messages[:i], m.messages[i+1:]...)
			return
		}
	}
}

// updateViewport re-renders the transcript into the viewport.
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	width := m.viewport.Width - 4
	var sb strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch {
		case msg.Transient:
			sb.WriteString(statusLineStyle.Width(width).Render(msg.Text))
			sb.WriteString("\n")
		case msg.Origin == models.OriginUser:
			sb.WriteString(userLabelStyle.Render("You"))
			sb.WriteString("\n")
			sb.WriteString(userBubbleStyle.Width(width - 4).Render(msg.Text))
			sb.WriteString("\n")
		default:
			sb.WriteString(botLabelStyle.Render("Serene"))
			sb.WriteString("\n")
			sb.WriteString(botBubbleStyle.Width(width - 4).Render(msg.Text))
			sb.WriteString("\n")
		}
	}
	m.viewport.SetContent(sb.String())
}

// View renders the widget
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return typingStyle.Render("  Connecting...")
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerParts := []string{
		titleStyle.Render("❀ Serene"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render("your wellness companion"),
	}
	if m.username != "" {
		headerParts = append(headerParts,
			hintStyle.Render("  •  "),
			subtitleStyle.Render(m.username),
		)
	}
	header := headerStyle.Width(contentWidth).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, headerParts...))
	sections = append(sections, header)

	// Messages area
	var messagesContent string
	if len(m.messages) == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	// Input area, replaced by the typing indicator while an exchange is in
	// flight
	var inputContent string
	if m.typing {
		inputContent = fmt.Sprintf("%s %s", m.spinner.View(),
			typingStyle.Render("Serene is typing..."))
	} else if m.retry.InFlight {
		inputContent = typingStyle.Render("Waiting to retry... (esc to cancel)")
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	// Status bar
	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("❀")
	title := welcomeTitleStyle.Width(width).Render("Welcome to Serene")
	subtitle := welcomeStyle.Width(width).Render("I'm here to listen. Share what's on your mind below.")

	content := lipgloss.JoinVertical(lipgloss.Center, "", icon, "", title, "", subtitle, "")

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

func (m Model) renderStatusBar() string {
	keys := []struct{ key, desc string }{
		{"enter", "send"},
		{"esc", "cancel/quit"},
		{"ctrl+c", "quit"},
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, statusKeyStyle.Render(k.key)+statusDescStyle.Render(" "+k.desc))
	}
	return statusDescStyle.Render("  ") + strings.Join(parts, statusDescStyle.Render("  •  "))
}

// RunChat starts the chat widget and blocks until it exits.
func RunChat(client api.ClientInterface, username string, opts ...Option) error {
	m := NewChatModel(client, username, opts...)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
