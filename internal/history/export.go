package history

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExportFormat represents the format for exporting conversations
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// Export renders a conversation in the requested format.
func (s *Store) Export(id string, format ExportFormat) (string, error) {
	switch format {
	case ExportFormatJSON:
		return s.ExportToJSON(id)
	case ExportFormatMarkdown, "":
		return s.ExportToMarkdown(id)
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}

// ExportToMarkdown renders a conversation as a Markdown transcript.
func (s *Store) ExportToMarkdown(id string) (string, error) {
	conv, err := s.GetConversation(id)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(conv.Title)
	sb.WriteString("\n\n")
	sb.WriteString("**Created:** ")
	sb.WriteString(conv.CreatedAt.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n\n---\n\n")

	for _, msg := range conv.Messages {
		switch msg.Origin {
		case "user":
			sb.WriteString("## You\n\n")
		default:
			sb.WriteString("## Serene\n\n")
		}
		sb.WriteString(msg.Content)
		sb.WriteString("\n\n")
	}

	return sb.String(), nil
}

// ExportToJSON renders a conversation as indented JSON.
func (s *Store) ExportToJSON(id string) (string, error) {
	conv, err := s.GetConversation(id)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode conversation: %w", err)
	}
	return string(data), nil
}
