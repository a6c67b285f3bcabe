package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sunelearning/ai-tutor-backend/internal/services"
	"github.com/sunelearning/ai-tutor-backend/internal/utils"
)

type FeedbackHandler struct {
	svc services.ChatService
}

func NewFeedbackHandler(svc services.ChatService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

type FeedbackRequest struct {
	ChatID uint `json:"chat_id" binding:"required"`
	// pointer so an explicit false survives binding
	Helpful *bool `json:"helpful"`
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Helpful == nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "FeedbackHandler.Submit", "invalid request body", err))
		return
	}

	if err := h.svc.Feedback(c.Request.Context(), req.ChatID, *req.Helpful); err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, gin.H{"chat_id": req.ChatID}, "Feedback submitted successfully")
}
