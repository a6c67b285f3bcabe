package models

import (
	"time"

	"gorm.io/datatypes"
)

// Chat is one query/response exchange. SessionID groups exchanges into a
// conversation thread; Helpful is the only field mutated after creation.
type Chat struct {
	ID             uint              `gorm:"column:id;primaryKey" json:"id"`
	StudentID      uint              `gorm:"column:student_id;not null;index" json:"student_id"`
	SessionID      string            `gorm:"column:session_id;size:50;not null;index" json:"session_id"`
	Query          string            `gorm:"column:query;type:text;not null" json:"query"`
	CodeSnippet    *string           `gorm:"column:code_snippet;type:text" json:"code_snippet"`
	Response       string            `gorm:"column:response;type:text;not null" json:"response"`
	IsFirstMessage bool              `gorm:"column:is_first_message;default:false" json:"is_first_message"`
	ChatMetadata   datatypes.JSONMap `gorm:"column:chat_metadata" json:"chat_metadata"`
	Timestamp      time.Time         `gorm:"column:timestamp;index" json:"timestamp"`
	Helpful        *bool             `gorm:"column:helpful" json:"helpful"`
}

func (Chat) TableName() string { return "chats" }

// SessionSummary is the scan target for the grouped session listing; it is
// not a table of its own.
type SessionSummary struct {
	SessionID    string    `json:"session_id"`
	FirstMessage string    `json:"first_message"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	MessageCount int64     `json:"message_count"`
}
