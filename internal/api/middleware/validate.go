package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RequireJSONFields short-circuits with a 400 envelope before the handler
// runs unless the body is a JSON object containing every named field. The
// body is restored afterwards so handlers can bind it normally.
func RequireJSONFields(fields ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ct := c.ContentType(); ct != "application/json" {
			abortBadRequest(c, "Content-Type must be application/json")
			return
		}

		raw, err := io.ReadAll(c.Request.Body)
		if err != nil || len(bytes.TrimSpace(raw)) == 0 {
			abortBadRequest(c, "No JSON data provided")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))

		var body map[string]json.RawMessage
		if err := json.Unmarshal(raw, &body); err != nil || body == nil {
			abortBadRequest(c, "No JSON data provided")
			return
		}

		var missing []string
		for _, f := range fields {
			if _, ok := body[f]; !ok {
				missing = append(missing, f)
			}
		}
		if len(missing) > 0 {
			abortBadRequest(c, "Missing required fields: "+strings.Join(missing, ", "))
			return
		}

		c.Next()
	}
}

func abortBadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Status: "error", Message: msg})
}
