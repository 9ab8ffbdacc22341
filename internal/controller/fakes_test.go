package controller

import (
	"context"
	"time"

	"risk_assessment_backend/internal/model"
	"risk_assessment_backend/internal/repository"

	"gorm.io/gorm"
)

type memUsers struct{ users []*model.User }

func (m *memUsers) Create(ctx context.Context, u *model.User) error {
	u.ID = uint(len(m.users) + 1)
	m.users = append(m.users, u)
	return nil
}

func (m *memUsers) FindByID(ctx context.Context, id uint) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUsers) List(ctx context.Context, page, limit int, role model.UserRole) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range m.users {
		if role == "" || u.Role == role {
			out = append(out, *u)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memUsers) CountActive(ctx context.Context, role model.UserRole) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.Status && (role == "" || u.Role == role) {
			n++
		}
	}
	return n, nil
}

func (m *memUsers) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error { return nil }

type memStudents struct{ students []*model.Student }

func (m *memStudents) Create(ctx context.Context, s *model.Student) error {
	s.ID = uint(len(m.students) + 1)
	m.students = append(m.students, s)
	return nil
}

func (m *memStudents) FindByID(ctx context.Context, id uint) (*model.Student, error) {
	for _, s := range m.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memStudents) List(ctx context.Context, page, limit int, search string) ([]model.Student, int64, error) {
	var out []model.Student
	for _, s := range m.students {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (m *memStudents) CountActive(ctx context.Context) (int64, error) {
	return int64(len(m.students)), nil
}

type memAssessments struct{ rows []*model.SuicideAssessment }

func (m *memAssessments) Create(ctx context.Context, a *model.SuicideAssessment) error {
	a.ID = uint(len(m.rows) + 1)
	m.rows = append(m.rows, a)
	return nil
}

func (m *memAssessments) FindByID(ctx context.Context, id uint) (*model.SuicideAssessment, error) {
	for _, a := range m.rows {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memAssessments) List(ctx context.Context, f repository.AssessmentFilter) ([]model.SuicideAssessment, int64, error) {
	var out []model.SuicideAssessment
	for _, a := range m.rows {
		if f.StudentID != 0 && a.StudentID != f.StudentID {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (m *memAssessments) Count(ctx context.Context) (int64, error) { return int64(len(m.rows)), nil }

func (m *memAssessments) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return int64(len(m.rows)), nil
}

func (m *memAssessments) CountByRiskLevel(ctx context.Context) (map[string]int64, error) {
	out := map[string]int64{}
	for _, a := range m.rows {
		out[a.RiskLevel]++
	}
	return out, nil
}

func (m *memAssessments) CountByBranch(ctx context.Context) (repository.BranchCounts, error) {
	return repository.BranchCounts{}, nil
}
