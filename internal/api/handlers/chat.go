package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vasool/vasool/internal/api/dto"
	"github.com/vasool/vasool/internal/api/middleware"
	"github.com/vasool/vasool/internal/pkg/errors"
	"github.com/vasool/vasool/internal/pkg/logger"
	"github.com/vasool/vasool/internal/pkg/utils"
	"github.com/vasool/vasool/internal/pkg/validator"
	"github.com/vasool/vasool/internal/services"
)

// ChatHandler handles chat assistant requests
type ChatHandler struct {
	chatService *services.ChatService
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *services.ChatService, log *logger.Logger, val *validator.Validator) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      log,
		validator:   val,
	}
}

// Message handles one chat turn
// @Summary Send a chat message
// @Description Send a message to the collections assistant and get a reply
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.ChatMessageRequest true "Chat message"
// @Success 200 {object} services.ChatReply "Assistant reply"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /chat/message [post]
func (h *ChatHandler) Message(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	var req dto.ChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError(validator.Flatten(validationErrs), validationErrs))
		return
	}

	reply, err := h.chatService.Message(r.Context(), userID, req.SessionID, req.Message)
	if err != nil {
		h.logger.ErrorWithErr(err, "Chat message failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, reply)
}

// History returns a chat session's messages
// @Summary Get chat history
// @Description Get all messages in a chat session
// @Tags Chat
// @Produce json
// @Param session_id query string true "Session ID"
// @Success 200 {array} chat.Message "Session messages"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /chat/history [get]
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		utils.WriteError(w, errors.BadRequest("session_id is required"))
		return
	}

	messages, err := h.chatService.History(r.Context(), userID, sessionID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to load chat history")
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, messages)
}

// Sessions lists the user's chat sessions
// @Summary List chat sessions
// @Description List the user's chat sessions, most recent first
// @Tags Chat
// @Produce json
// @Success 200 {array} string "Session IDs"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /chat/sessions [get]
func (h *ChatHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	sessions, err := h.chatService.Sessions(r.Context(), userID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list chat sessions")
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, sessions)
}
