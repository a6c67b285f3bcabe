package postgres

import (
	"context"
	"errors"

	"github.com/sunelearning/ai-tutor-backend/internal/models"
	"github.com/sunelearning/ai-tutor-backend/internal/utils"
	"gorm.io/gorm"
)

type StudentRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	Create(ctx context.Context, s *models.Student) error
	Update(ctx context.Context, s *models.Student) error
}

type studentRepo struct {
	db *gorm.DB
}

func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var s models.Student
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *studentRepo) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	var s models.Student
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *studentRepo) Create(ctx context.Context, s *models.Student) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *studentRepo) Update(ctx context.Context, s *models.Student) error {
	return r.db.WithContext(ctx).Save(s).Error
}
