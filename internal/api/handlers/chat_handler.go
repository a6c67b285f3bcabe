package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sunelearning/ai-tutor-backend/internal/services"
	"github.com/sunelearning/ai-tutor-backend/internal/utils"
)

type ChatHandler struct {
	svc services.ChatService
}

func NewChatHandler(svc services.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type ChatRequest struct {
	StudentID      uint   `json:"student_id" binding:"required"`
	Query          string `json:"query" binding:"required"`
	SessionID      string `json:"session_id"`
	IsFirstMessage bool   `json:"is_first_message"`
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ChatHandler.Chat", "invalid request body", err))
		return
	}

	chat, err := h.svc.Send(c.Request.Context(), req.StudentID, req.Query, req.SessionID, req.IsFirstMessage)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, gin.H{
		"response":   chat.Response,
		"chat_id":    chat.ID,
		"session_id": chat.SessionID,
	}, "")
}

func (h *ChatHandler) History(c *gin.Context) {
	studentID, err := strconv.ParseUint(c.Param("student_id"), 10, 64)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ChatHandler.History", "invalid student id", err))
		return
	}

	sessionID := c.Query("session_id")

	rows, err := h.svc.History(c.Request.Context(), uint(studentID), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}

	// Each stored exchange fans out into a user turn and a bot turn; only
	// the bot turn carries the chat id and the helpful flag.
	messages := make([]gin.H, 0, 2*len(rows))
	for _, chat := range rows {
		messages = append(messages,
			gin.H{
				"type":      "user",
				"content":   chat.Query,
				"timestamp": chat.Timestamp,
				"id":        fmt.Sprintf("user_%d", chat.ID),
			},
			gin.H{
				"type":      "bot",
				"content":   chat.Response,
				"timestamp": chat.Timestamp,
				"id":        chat.ID,
				"helpful":   chat.Helpful,
			},
		)
	}

	writeSuccess(c, gin.H{
		"session_id": sessionID,
		"messages":   messages,
	}, "")
}
