package services

import (
	"context"
	"errors"
	"time"

	"github.com/sunelearning/ai-tutor-backend/internal/cache"
	"github.com/sunelearning/ai-tutor-backend/internal/models"
	pgrepo "github.com/sunelearning/ai-tutor-backend/internal/repositories/postgres"
	"github.com/sunelearning/ai-tutor-backend/internal/utils"
)

type SessionService interface {
	// Start upserts a student by email: a new email creates the row, a
	// repeat start overwrites domain and last_active in place.
	Start(ctx context.Context, name, email, domain string) (*models.Student, error)
	// ListSessions returns the student's conversation threads, most
	// recently active first.
	ListSessions(ctx context.Context, studentID uint) ([]models.SessionSummary, error)
}

type sessionService struct {
	students pgrepo.StudentRepository
	chats    pgrepo.ChatRepository
	cache    cache.Cache // nil disables caching
}

func NewSessionService(students pgrepo.StudentRepository, chats pgrepo.ChatRepository, c cache.Cache) SessionService {
	return &sessionService{students: students, chats: chats, cache: c}
}

func (s *sessionService) Start(ctx context.Context, name, email, domain string) (*models.Student, error) {
	const op = "SessionService.Start"

	if name == "" || email == "" || domain == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name, email, and domain are required", nil)
	}

	now := time.Now().UTC()

	student, err := s.students.GetByEmail(ctx, email)
	switch {
	case err == nil:
		student.Domain = domain
		student.LastActive = now
		if err := s.students.Update(ctx, student); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to start session", err)
		}
	case errors.Is(err, utils.ErrNotFound):
		student = &models.Student{
			Name:       name,
			Email:      email,
			Domain:     domain,
			CreatedAt:  now,
			LastActive: now,
		}
		if err := s.students.Create(ctx, student); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to start session", err)
		}
	default:
		return nil, utils.E(utils.CodeInternal, op, "failed to start session", err)
	}

	return student, nil
}

func (s *sessionService) ListSessions(ctx context.Context, studentID uint) ([]models.SessionSummary, error) {
	const op = "SessionService.ListSessions"

	if studentID == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "student_id is required", nil)
	}

	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Student not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to retrieve sessions", err)
	}

	key := cache.SessionsKey(studentID)
	if s.cache != nil {
		var cached []models.SessionSummary
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	rows, err := s.chats.SessionSummaries(ctx, studentID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to retrieve sessions", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, rows, cache.SessionsTTL)
	}
	return rows, nil
}
