package responder

import (
	"fmt"
	"sync"
	"time"
)

// Quote is an inspirational quote with attribution.
type Quote struct {
	Text   string
	Author string
}

var quotes = []Quote{
	{"The greatest glory in living lies not in never falling, but in rising every time we fall.", "Nelson Mandela"},
	{"The way to get started is to quit talking and begin doing.", "Walt Disney"},
	{"Your time is limited, so don't waste it living someone else's life.", "Steve Jobs"},
	{"If life were predictable it would cease to be life, and be without flavor.", "Eleanor Roosevelt"},
	{"If you look at what you have in life, you'll always have more.", "Oprah Winfrey"},
	{"If you set your goals ridiculously high and it's a failure, you will fail above everyone else's success.", "James Cameron"},
	{"Life is what happens when you're busy making other plans.", "John Lennon"},
	{"Spread love everywhere you go. Let no one ever come to you without leaving happier.", "Mother Teresa"},
	{"When you reach the end of your rope, tie a knot in it and hang on.", "Franklin D. Roosevelt"},
	{"Always remember that you are absolutely unique. Just like everyone else.", "Margaret Mead"},
}

// QuotesManager rotates through the quote list on a fixed interval.
type QuotesManager struct {
	mu         sync.Mutex
	index      int
	lastChange time.Time
	interval   time.Duration
	now        func() time.Time
}

// NewQuotesManager returns a manager rotating every interval.
func NewQuotesManager(interval time.Duration) *QuotesManager {
	return &QuotesManager{
		interval:   interval,
		lastChange: time.Now(),
		now:        time.Now,
	}
}

// Current returns the current quote, advancing first if the rotation
// interval has elapsed.
func (q *QuotesManager) Current() string {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.now().Sub(q.lastChange) >= q.interval {
		q.advance()
	}
	return formatQuote(quotes[q.index])
}

// Next forces rotation to the next quote regardless of elapsed time.
func (q *QuotesManager) Next() string {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.advance()
	return formatQuote(quotes[q.index])
}

func (q *QuotesManager) advance() {
	q.index = (q.index + 1) % len(quotes)
	q.lastChange = q.now()
}

func formatQuote(quote Quote) string {
	return fmt.Sprintf("%q - %s", quote.Text, quote.Author)
}
