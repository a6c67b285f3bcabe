package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/sunelearning/ai-tutor-backend/internal/cache"
	"github.com/sunelearning/ai-tutor-backend/internal/models"
	pgrepo "github.com/sunelearning/ai-tutor-backend/internal/repositories/postgres"
	"github.com/sunelearning/ai-tutor-backend/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type fakeCache struct {
	entries map[string][]byte
	hits    int
	dels    []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.entries[key] = b
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.dels = append(c.dels, k)
		delete(c.entries, k)
	}
	return nil
}

type okProvider struct{}

func (okProvider) Complete(_ context.Context, _, _ string) (string, error) { return "answer", nil }

func serviceTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", tb.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Student{}, &models.Chat{}); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSessionServiceStartUpserts(t *testing.T) {
	db := serviceTestDB(t)
	students := pgrepo.NewStudentRepo(db)
	chats := pgrepo.NewChatRepo(db)
	svc := NewSessionService(students, chats, nil)
	ctx := context.Background()

	first, err := svc.Start(ctx, "Ada", "ada@example.com", "data science")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	second, err := svc.Start(ctx, "Ada", "ada@example.com", "java full stack")
	if err != nil {
		t.Fatalf("Start (repeat): %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("repeat start created a new student: %d != %d", second.ID, first.ID)
	}
	if second.Domain != "java full stack" {
		t.Fatalf("domain = %q", second.Domain)
	}
	if second.LastActive.Before(first.LastActive) {
		t.Fatalf("last_active not advanced")
	}

	var count int64
	db.Table("students").Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestSessionServiceStartRejectsBlank(t *testing.T) {
	db := serviceTestDB(t)
	svc := NewSessionService(pgrepo.NewStudentRepo(db), pgrepo.NewChatRepo(db), nil)

	if _, err := svc.Start(context.Background(), "", "a@b.c", "d"); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestSessionListingUsesCacheUntilNewChat(t *testing.T) {
	db := serviceTestDB(t)
	students := pgrepo.NewStudentRepo(db)
	chats := pgrepo.NewChatRepo(db)
	c := newFakeCache()
	ctx := context.Background()

	sessionSvc := NewSessionService(students, chats, c)
	chatSvc := NewChatService(students, chats, okProvider{}, c)

	student, err := sessionSvc.Start(ctx, "Ada", "ada@example.com", "data science")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := chatSvc.Send(ctx, student.ID, "q1", "s1", true); err != nil {
		t.Fatalf("Send: %v", err)
	}

	// first listing fills the cache, second is served from it
	if _, err := sessionSvc.ListSessions(ctx, student.ID); err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	rows, err := sessionSvc.ListSessions(ctx, student.ID)
	if err != nil {
		t.Fatalf("ListSessions (cached): %v", err)
	}
	if c.hits != 1 {
		t.Fatalf("cache hits = %d, want 1", c.hits)
	}
	if len(rows) != 1 || rows[0].SessionID != "s1" {
		t.Fatalf("cached rows = %+v", rows)
	}

	// a new chat invalidates, so the next listing sees the new session
	if _, err := chatSvc.Send(ctx, student.ID, "q2", "s2", true); err != nil {
		t.Fatalf("Send (second): %v", err)
	}
	if len(c.dels) == 0 || c.dels[len(c.dels)-1] != cache.SessionsKey(student.ID) {
		t.Fatalf("expected invalidation of %q, got %v", cache.SessionsKey(student.ID), c.dels)
	}
	rows, err = sessionSvc.ListSessions(ctx, student.ID)
	if err != nil {
		t.Fatalf("ListSessions (after invalidation): %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 sessions after invalidation, got %d", len(rows))
	}
}

func TestSessionServiceListUnknownStudent(t *testing.T) {
	db := serviceTestDB(t)
	svc := NewSessionService(pgrepo.NewStudentRepo(db), pgrepo.NewChatRepo(db), nil)

	if _, err := svc.ListSessions(context.Background(), 42); !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
