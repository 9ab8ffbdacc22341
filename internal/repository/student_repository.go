package repository

import (
	"context"

	"risk_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	return r.DB.WithContext(ctx).Create(student).Error
}

func (r *StudentRepository) FindByID(ctx context.Context, id uint) (*model.Student, error) {
	var student model.Student
	err := r.DB.WithContext(ctx).First(&student, id).Error
	return &student, err
}

// List 分页查询，search 按姓名或邮箱模糊匹配
func (r *StudentRepository) List(ctx context.Context, page, limit int, search string) ([]model.Student, int64, error) {
	var students []model.Student
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.Student{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", like, like, like)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("last_name asc, first_name asc").Offset(offset).Limit(limit).Find(&students).Error
	return students, total, err
}

func (r *StudentRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Student{}).Where("status = ?", true).Count(&count).Error
	return count, err
}
