package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sunelearning/ai-tutor-backend/internal/cache"
	"github.com/sunelearning/ai-tutor-backend/internal/models"
	"github.com/sunelearning/ai-tutor-backend/internal/prompt"
	"github.com/sunelearning/ai-tutor-backend/internal/providers/llm"
	pgrepo "github.com/sunelearning/ai-tutor-backend/internal/repositories/postgres"
	"github.com/sunelearning/ai-tutor-backend/internal/utils"
	"gorm.io/datatypes"
)

type ChatService interface {
	// Send builds the domain prompt, calls the completion provider, and
	// persists the exchange. When sessionID is empty a new one is derived
	// from the student id and the current Unix timestamp.
	Send(ctx context.Context, studentID uint, query, sessionID string, isFirstMessage bool) (*models.Chat, error)
	// History returns the chats of one session in chronological order.
	History(ctx context.Context, studentID uint, sessionID string) ([]models.Chat, error)
	// Feedback sets the helpful flag on a chat. No other field changes.
	Feedback(ctx context.Context, chatID uint, helpful bool) error
}

type chatService struct {
	students pgrepo.StudentRepository
	chats    pgrepo.ChatRepository
	provider llm.Provider
	cache    cache.Cache // nil disables caching
}

func NewChatService(students pgrepo.StudentRepository, chats pgrepo.ChatRepository, provider llm.Provider, c cache.Cache) ChatService {
	return &chatService{students: students, chats: chats, provider: provider, cache: c}
}

func (s *chatService) Send(ctx context.Context, studentID uint, query, sessionID string, isFirstMessage bool) (*models.Chat, error) {
	const op = "ChatService.Send"

	if studentID == 0 || query == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "student_id and query are required", nil)
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Student not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load student", err)
	}

	now := time.Now().UTC()
	if sessionID == "" {
		sessionID = fmt.Sprintf("session_%d_%d", student.ID, now.Unix())
	}

	// The prompt asks the model to keep conversational context, but no
	// prior turns are loaded or sent. Intentional; see ChatPrompt.
	systemPrompt := prompt.ChatPrompt(student.Domain, query)

	response, err := s.provider.Complete(ctx, systemPrompt, query)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to generate response", err)
	}

	chat := &models.Chat{
		StudentID:      student.ID,
		SessionID:      sessionID,
		Query:          query,
		Response:       response,
		IsFirstMessage: isFirstMessage,
		ChatMetadata: datatypes.JSONMap{
			"domain":    student.Domain,
			"timestamp": now.Format(time.RFC3339),
		},
		Timestamp: now,
	}

	if err := s.chats.Insert(ctx, chat); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save chat", err)
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, cache.SessionsKey(student.ID))
	}
	return chat, nil
}

func (s *chatService) History(ctx context.Context, studentID uint, sessionID string) ([]models.Chat, error) {
	const op = "ChatService.History"

	if studentID == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "student_id is required", nil)
	}
	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Session ID required", nil)
	}

	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Student not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load student", err)
	}

	rows, err := s.chats.ListBySession(ctx, studentID, sessionID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to retrieve chat history", err)
	}
	// an unknown session is not an empty conversation
	if len(rows) == 0 {
		return nil, utils.E(utils.CodeNotFound, op, "Session not found", nil)
	}
	return rows, nil
}

func (s *chatService) Feedback(ctx context.Context, chatID uint, helpful bool) error {
	const op = "ChatService.Feedback"

	if chatID == 0 {
		return utils.E(utils.CodeInvalidArgument, op, "chat_id is required", nil)
	}

	if err := s.chats.SetHelpful(ctx, chatID, helpful); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "Chat not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to submit feedback", err)
	}
	return nil
}
