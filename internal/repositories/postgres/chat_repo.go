package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sunelearning/ai-tutor-backend/internal/models"
	"github.com/sunelearning/ai-tutor-backend/internal/utils"
	"gorm.io/gorm"
)

type ChatRepository interface {
	Insert(ctx context.Context, chat *models.Chat) error
	GetByID(ctx context.Context, id uint) (*models.Chat, error)
	SetHelpful(ctx context.Context, id uint, helpful bool) error
	ListBySession(ctx context.Context, studentID uint, sessionID string) ([]models.Chat, error)
	SessionSummaries(ctx context.Context, studentID uint) ([]models.SessionSummary, error)
}

type chatRepo struct {
	db *gorm.DB
}

func NewChatRepo(db *gorm.DB) ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) Insert(ctx context.Context, chat *models.Chat) error {
	return r.db.WithContext(ctx).Create(chat).Error
}

func (r *chatRepo) GetByID(ctx context.Context, id uint) (*models.Chat, error) {
	var row models.Chat
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *chatRepo) SetHelpful(ctx context.Context, id uint, helpful bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Chat{}).
		Where("id = ?", id).
		Update("helpful", helpful)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *chatRepo) ListBySession(ctx context.Context, studentID uint, sessionID string) ([]models.Chat, error) {
	var rows []models.Chat
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND session_id = ?", studentID, sessionID).
		Order("timestamp ASC").
		Find(&rows).Error
	return rows, err
}

// sessionSummaryRow scans the grouped select. Aggregated timestamps come
// back without a declared column type, so drivers hand them over as text.
type sessionSummaryRow struct {
	SessionID    string
	FirstMessage string
	CreatedAt    string
	LastActivity string
	MessageCount int64
}

// SessionSummaries groups a student's chats by session_id. first_message is
// MIN(query), matching the behavior the frontend was built against.
func (r *chatRepo) SessionSummaries(ctx context.Context, studentID uint) ([]models.SessionSummary, error) {
	var raw []sessionSummaryRow
	err := r.db.WithContext(ctx).
		Model(&models.Chat{}).
		Select("session_id, MIN(query) AS first_message, MIN(timestamp) AS created_at, MAX(timestamp) AS last_activity, COUNT(id) AS message_count").
		Where("student_id = ?", studentID).
		Group("session_id").
		Order("MAX(timestamp) DESC").
		Scan(&raw).Error
	if err != nil {
		return nil, err
	}

	rows := make([]models.SessionSummary, 0, len(raw))
	for _, row := range raw {
		created, err := parseAggregateTime(row.CreatedAt)
		if err != nil {
			return nil, err
		}
		last, err := parseAggregateTime(row.LastActivity)
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.SessionSummary{
			SessionID:    row.SessionID,
			FirstMessage: row.FirstMessage,
			CreatedAt:    created,
			LastActivity: last,
			MessageCount: row.MessageCount,
		})
	}
	return rows, nil
}

var aggregateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

func parseAggregateTime(s string) (time.Time, error) {
	for _, layout := range aggregateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable aggregate timestamp %q", s)
}
