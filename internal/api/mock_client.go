package api

import "context"

// MockClient is a scriptable implementation of ClientInterface for testing.
// ChatErrs are returned in order, one per Chat call; once exhausted the
// ChatVal/ChatErr pair applies.
type MockClient struct {
	// Mock return values
	ChatVal     string
	ChatErr     error
	ChatErrs    []error
	SaveChatErr error

	// Call counters/recorders
	ChatCalled     int
	SaveChatCalled int
	LastMessage    string
	SavedMessages  [][2]string // {message, response} pairs
}

// Ensure MockClient implements ClientInterface
var _ ClientInterface = (*MockClient)(nil)

func (m *MockClient) Chat(ctx context.Context, message string) (string, error) {
	m.ChatCalled++
	m.LastMessage = message

	if len(m.ChatErrs) > 0 {
		err := m.ChatErrs[0]
		m.ChatErrs = m.ChatErrs[1:]
		if err != nil {
			return "", err
		}
		return m.ChatVal, nil
	}
	if m.ChatErr != nil {
		return "", m.ChatErr
	}
	return m.ChatVal, nil
}

func (m *MockClient) SaveChat(ctx context.Context, message, response string) error {
	m.SaveChatCalled++
	m.SavedMessages = append(m.SavedMessages, [2]string{message, response})
	return m.SaveChatErr
}
