package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sunelearning/ai-tutor-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func testDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", tb.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Student{}, &models.Chat{}); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedStudent(tb testing.TB, ctx context.Context, db *gorm.DB, email string) *models.Student {
	tb.Helper()
	now := time.Now().UTC()
	s := &models.Student{
		Name:       "A",
		Email:      email,
		Domain:     "data science",
		CreatedAt:  now,
		LastActive: now,
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed student: %v", err)
	}
	return s
}

func seedChat(tb testing.TB, ctx context.Context, db *gorm.DB, studentID uint, sessionID, query string, ts time.Time) *models.Chat {
	tb.Helper()
	c := &models.Chat{
		StudentID: studentID,
		SessionID: sessionID,
		Query:     query,
		Response:  "answer to " + query,
		Timestamp: ts,
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed chat: %v", err)
	}
	return c
}
