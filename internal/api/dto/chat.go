package dto

// ChatMessageRequest represents one user chat turn
type ChatMessageRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message" validate:"required,min=1,max=2000"`
}
