package responder

import (
	"time"

	"github.com/MBhoomika/serene-ai/internal/models"
)

var challenges = []models.Challenge{
	{
		Title:       "5-Minute Mindfulness",
		Description: "Take 5 minutes to focus on your breath and observe your thoughts without judgment.",
		Icon:        "🧘‍♂️",
	},
	{
		Title:       "Gratitude Journal",
		Description: "Write down three things you are grateful for today.",
		Icon:        "📝",
	},
	{
		Title:       "Kind Message",
		Description: "Send a supportive message to someone you care about.",
		Icon:        "💌",
	},
	{
		Title:       "Nature Connection",
		Description: "Spend 10 minutes outside observing nature.",
		Icon:        "🌿",
	},
	{
		Title:       "Self-Care Break",
		Description: "Take a 15-minute break to do something that makes you feel good.",
		Icon:        "💝",
	},
	{
		Title:       "Mindful Movement",
		Description: "Do 5 minutes of gentle stretching or yoga.",
		Icon:        "🌟",
	},
	{
		Title:       "Creative Expression",
		Description: "Spend 10 minutes drawing, writing, or expressing yourself creatively.",
		Icon:        "🎨",
	},
}

// DailyChallenge returns the challenge for the given date. The selection
// keys on the day of the year, so everyone sees the same challenge on the
// same day and it changes at midnight.
func DailyChallenge(date time.Time) models.Challenge {
	return challenges[date.YearDay()%len(challenges)]
}
