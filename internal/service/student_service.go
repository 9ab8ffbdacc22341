package service

import (
	"context"

	"risk_assessment_backend/internal/model"
	"risk_assessment_backend/internal/util"
)

type StudentService struct {
	Repo StudentStore
}

func NewStudentService(repo StudentStore) *StudentService {
	return &StudentService{Repo: repo}
}

// swagger:model CreateStudentRequest
type CreateStudentRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Grade     string `json:"grade"`
}

func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*model.Student, error) {
	student := &model.Student{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Grade:     req.Grade,
		Status:    true,
	}
	if err := s.Repo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) Get(ctx context.Context, id uint) (*model.Student, error) {
	student, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrStudentNotFound)
	}
	return student, nil
}

func (s *StudentService) List(ctx context.Context, page, limit int, search string) ([]model.Student, int64, error) {
	return s.Repo.List(ctx, page, limit, search)
}
