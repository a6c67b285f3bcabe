package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sunelearning/ai-tutor-backend/internal/utils"
)

// Envelope is the uniform response wrapper for every endpoint.
type Envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeSuccess(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, Envelope{Status: "success", Data: data, Message: message})
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, Envelope{Status: "error", Message: ae.Message})
		return
	}

	c.JSON(status, Envelope{Status: "error", Message: http.StatusText(status)})
}
