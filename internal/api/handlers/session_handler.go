package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sunelearning/ai-tutor-backend/internal/services"
	"github.com/sunelearning/ai-tutor-backend/internal/utils"
)

type SessionHandler struct {
	svc services.SessionService
}

func NewSessionHandler(svc services.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

type StartSessionRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required"`
	Domain string `json:"domain" binding:"required"`
}

func (h *SessionHandler) Start(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.Start", "invalid request body", err))
		return
	}

	student, err := h.svc.Start(c.Request.Context(), req.Name, req.Email, req.Domain)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, student,
		fmt.Sprintf("Welcome %s! Ask me anything about %s.", student.Name, student.Domain))
}

func (h *SessionHandler) ListSessions(c *gin.Context) {
	studentID, err := strconv.ParseUint(c.Param("student_id"), 10, 64)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.ListSessions", "invalid student id", err))
		return
	}

	sessions, err := h.svc.ListSessions(c.Request.Context(), uint(studentID))
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, gin.H{
		"sessions":       sessions,
		"total_sessions": len(sessions),
	}, "")
}
