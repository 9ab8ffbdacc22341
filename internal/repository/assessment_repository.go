package repository

import (
	"context"
	"time"

	"risk_assessment_backend/internal/model"

	"gorm.io/gorm"
)

// AssessmentFilter 列表查询条件，零值字段不参与过滤
type AssessmentFilter struct {
	StudentID      uint
	PsychologistID uint
	RiskLevel      string
	Page           int
	Limit          int
}

// BranchCounts 按分支统计的记录数
type BranchCounts struct {
	IdeationDetail int64 `json:"ideationDetail"`
	DeathWishOnly  int64 `json:"deathWishOnly"`
	Behavior       int64 `json:"behavior"`
}

// AssessmentRepository 评估记录只追加，不提供更新和删除
type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(ctx context.Context, a *model.SuicideAssessment) error {
	return r.DB.WithContext(ctx).Omit("Student", "Psychologist").Create(a).Error
}

func (r *AssessmentRepository) FindByID(ctx context.Context, id uint) (*model.SuicideAssessment, error) {
	var a model.SuicideAssessment
	err := r.DB.WithContext(ctx).
		Preload("Student").
		Preload("Psychologist").
		First(&a, id).Error
	return &a, err
}

func (r *AssessmentRepository) List(ctx context.Context, f AssessmentFilter) ([]model.SuicideAssessment, int64, error) {
	var list []model.SuicideAssessment
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.SuicideAssessment{})
	if f.StudentID > 0 {
		query = query.Where("student_id = ?", f.StudentID)
	}
	if f.PsychologistID > 0 {
		query = query.Where("psychologist_id = ?", f.PsychologistID)
	}
	if f.RiskLevel != "" {
		query = query.Where("risk_level = ?", f.RiskLevel)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.Limit
	err := query.Preload("Student").Preload("Psychologist").
		Order("date desc, id desc").
		Offset(offset).Limit(f.Limit).
		Find(&list).Error
	return list, total, err
}

func (r *AssessmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.SuicideAssessment{}).Count(&count).Error
	return count, err
}

func (r *AssessmentRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.SuicideAssessment{}).
		Where("date >= ?", since).
		Count(&count).Error
	return count, err
}

type riskLevelCount struct {
	RiskLevel string
	Total     int64
}

func (r *AssessmentRepository) CountByRiskLevel(ctx context.Context) (map[string]int64, error) {
	var rows []riskLevelCount
	err := r.DB.WithContext(ctx).Model(&model.SuicideAssessment{}).
		Select("risk_level, COUNT(*) AS total").
		Group("risk_level").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.RiskLevel] = row.Total
	}
	return out, nil
}

// CountByBranch 分支由两个基础回答决定，与校验器的谓词一致
func (r *AssessmentRepository) CountByBranch(ctx context.Context) (BranchCounts, error) {
	var counts BranchCounts
	err := r.DB.WithContext(ctx).Model(&model.SuicideAssessment{}).
		Select(`COALESCE(SUM(CASE WHEN non_specific_thoughts_present = 1 THEN 1 ELSE 0 END), 0) AS ideation_detail,
			COALESCE(SUM(CASE WHEN death_wish_present = 1 AND non_specific_thoughts_present = 0 THEN 1 ELSE 0 END), 0) AS death_wish_only,
			COALESCE(SUM(CASE WHEN death_wish_present = 0 AND non_specific_thoughts_present = 0 THEN 1 ELSE 0 END), 0) AS behavior`).
		Scan(&counts).Error
	return counts, err
}
