package service

import (
	"context"
	"errors"
	"time"

	"risk_assessment_backend/internal/model"
	"risk_assessment_backend/internal/repository"

	"gorm.io/gorm"
)

// 服务依赖的存储接口，由 repository 包中的结构体实现

type AssessmentStore interface {
	Create(ctx context.Context, a *model.SuicideAssessment) error
	FindByID(ctx context.Context, id uint) (*model.SuicideAssessment, error)
	List(ctx context.Context, f repository.AssessmentFilter) ([]model.SuicideAssessment, int64, error)
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountByRiskLevel(ctx context.Context) (map[string]int64, error)
	CountByBranch(ctx context.Context) (repository.BranchCounts, error)
}

type StudentStore interface {
	Create(ctx context.Context, s *model.Student) error
	FindByID(ctx context.Context, id uint) (*model.Student, error)
	List(ctx context.Context, page, limit int, search string) ([]model.Student, int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, page, limit int, role model.UserRole) ([]model.User, int64, error)
	CountActive(ctx context.Context, role model.UserRole) (int64, error)
	UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error
}

var (
	_ AssessmentStore = (*repository.AssessmentRepository)(nil)
	_ StudentStore    = (*repository.StudentRepository)(nil)
	_ UserStore       = (*repository.UserRepository)(nil)
)

// notFound 把 gorm.ErrRecordNotFound 换成领域错误
func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
