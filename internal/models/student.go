package models

import "time"

// Student is the identity record for a learner. Rows are created on the
// first start-session call for an email and updated in place afterwards;
// the application never deletes them.
type Student struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	Name       string    `gorm:"column:name;size:100;not null" json:"name"`
	Email      string    `gorm:"column:email;size:120;not null;uniqueIndex" json:"email"`
	Domain     string    `gorm:"column:domain;size:50;not null" json:"domain"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	LastActive time.Time `gorm:"column:last_active" json:"last_active"`

	// Chats are cascade-deleted with their student at the schema level.
	Chats []Chat `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Student) TableName() string { return "students" }
