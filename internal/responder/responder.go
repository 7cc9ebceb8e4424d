// Package responder generates Serene's replies. An OpenAI-compatible model
// answers when configured; the built-in supportive responses cover every
// message otherwise, so chat keeps working without an API key.
package responder

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Reply is one generated answer with its analysis labels.
type Reply struct {
	Text    string
	Emotion string
	Intent  string
}

// LLM generates a reply from a system prompt and the user's message.
// *OpenAIClient implements it; tests substitute their own.
type LLM interface {
	Complete(ctx context.Context, systemPrompt, message string) (string, error)
}

// Responder produces replies, preferring the LLM and falling back to the
// built-in responses when it is absent or fails.
type Responder struct {
	llm    LLM
	quotes *QuotesManager
	logger *zap.SugaredLogger

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Responder.
type Option func(*Responder)

// WithLLM sets the language model backend.
func WithLLM(llm LLM) Option {
	return func(r *Responder) { r.llm = llm }
}

// WithRand sets the random source for the built-in responses.
func WithRand(rng *rand.Rand) Option {
	return func(r *Responder) { r.rng = rng }
}

// New creates a Responder.
func New(logger *zap.SugaredLogger, opts ...Option) *Responder {
	r := &Responder{
		quotes: NewQuotesManager(10 * time.Second),
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Quotes exposes the rotating quote source.
func (r *Responder) Quotes() *QuotesManager {
	return r.quotes
}

// Respond generates a reply to message. LLM failures are logged and degrade
// to the built-in responses; Respond itself never fails.
func (r *Responder) Respond(ctx context.Context, message string) Reply {
	intent := AnalyzeIntent(message)
	emotion := AnalyzeEmotion(message)

	if r.llm != nil {
		text, err := r.llm.Complete(ctx, systemPrompt(intent, emotion), message)
		if err == nil && meaningful(text) {
			return Reply{Text: strings.TrimSpace(text), Emotion: emotion, Intent: intent}
		}
		if err != nil {
			r.logger.Warnw("llm request failed, using built-in response", "error", err)
		}
	}

	return Reply{
		Text:    r.fallback(message),
		Emotion: emotion,
		Intent:  intent,
	}
}

// StartActivity returns the opening line of a guided activity.
func (r *Responder) StartActivity(ctx context.Context, activityType string) (string, error) {
	openers := map[string]string{
		"breathing":  "Let's begin a calming breathing exercise. Find a comfortable position...",
		"meditation": "Welcome to this gentle meditation session. Let's start by getting comfortable...",
		"creativity": "Let's do something creative together. Do you have paper and colors nearby?",
		"stretching": "Let's do some gentle stretches. Make sure you have some space...",
	}

	opener, ok := openers[activityType]
	if !ok {
		return "", fmt.Errorf("unknown activity %q", activityType)
	}
	return opener, nil
}

func (r *Responder) fallback(message string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return FallbackResponse(r.rng, message)
}

// systemPrompt frames the model as a wellness companion, steered by the
// analysis labels.
func systemPrompt(intent, emotion string) string {
	return fmt.Sprintf(`You are Serene, a mental health support companion. The user seems to be feeling %s and wants to discuss %s.
Your role is to provide empathetic, supportive, and helpful responses while maintaining a professional and caring tone.
Focus on active listening, validation of feelings, and offering practical support when appropriate.
Keep replies short and warm.`, emotion, intent)
}

// meaningful filters out empty or non-answers from the model.
func meaningful(text string) bool {
	text = strings.TrimSpace(text)
	if len(text) <= 10 {
		return false
	}
	return !strings.HasPrefix(text, "I don't know") && !strings.HasPrefix(text, "I'm not sure")
}
