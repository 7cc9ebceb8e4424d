package responder

import "strings"

// Intent and emotion labels attached to each exchange. The labels are stored
// with the chat history and steer both the LLM system prompt and the
// built-in responses.

func containsAny(message string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(message, w) {
			return true
		}
	}
	return false
}

// AnalyzeIntent labels what the user wants to talk about. Checks are
// ordered: gratitude and mindfulness take precedence over the stress
// buckets, so "thankful for surviving a stressful week" reads as gratitude.
func AnalyzeIntent(message string) string {
	message = strings.ToLower(strings.TrimSpace(message))

	switch {
	case containsAny(message, "thank", "thanks", "grateful", "appreciate"):
		return "gratitude"
	case containsAny(message, "meditate", "meditation", "mindful", "present", "breath", "breathe"):
		return "mindfulness"
	case containsAny(message, "work", "job", "boss", "colleague", "meeting", "deadline"):
		return "work_stress"
	case containsAny(message, "stress", "overwhelm", "pressure", "tension"):
		return "stress"
	case containsAny(message, "anxious", "worry", "nervous", "panic"):
		return "anxiety"
	case containsAny(message, "sad", "depressed", "down", "hopeless"):
		return "depression"
	case containsAny(message, "help", "support", "advice", "guidance"):
		return "support"
	case containsAny(message, "hello", "hi", "hey", "greeting"):
		return "greeting"
	}
	return "general"
}

// AnalyzeEmotion labels how the user seems to be feeling.
func AnalyzeEmotion(message string) string {
	message = strings.ToLower(strings.TrimSpace(message))

	switch {
	case containsAny(message, "happy", "joy", "excited", "grateful", "thankful"):
		return "happy"
	case containsAny(message, "sad", "depressed", "down", "hopeless", "lonely"):
		return "sad"
	case containsAny(message, "angry", "frustrated", "irritated", "annoyed", "mad"):
		return "angry"
	case containsAny(message, "anxious", "worried", "nervous", "scared", "fearful"):
		return "anxious"
	case containsAny(message, "stressed", "overwhelmed", "pressured", "tension", "burnt out"):
		return "stressed"
	case containsAny(message, "calm", "peaceful", "relaxed", "content", "serene"):
		return "calm"
	}
	return "neutral"
}
