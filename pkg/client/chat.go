package client

import (
	"context"
	"net/url"
)

// ChatService talks to the collections chat assistant
type ChatService struct {
	client *Client
}

// ChatMessageRequest sends one message to the assistant
type ChatMessageRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

// Send submits a message and returns the assistant's reply. Leave
// sessionID empty to start a new session.
func (s *ChatService) Send(ctx context.Context, sessionID, message string) (*ChatReply, error) {
	req := ChatMessageRequest{
		SessionID: sessionID,
		Message:   message,
	}

	var reply ChatReply
	if err := s.client.doRequest(ctx, "POST", "/api/chat/message", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// History returns the messages of a session in chronological order
func (s *ChatService) History(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	path := "/api/chat/history?session_id=" + url.QueryEscape(sessionID)

	var messages []ChatMessage
	if err := s.client.doRequest(ctx, "GET", path, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Sessions lists the user's chat sessions, most recent first
func (s *ChatService) Sessions(ctx context.Context) ([]string, error) {
	var sessions []string
	if err := s.client.doRequest(ctx, "GET", "/api/chat/sessions", nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
