package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"risk_assessment_backend/internal/engine"
	"risk_assessment_backend/internal/model"
	"risk_assessment_backend/internal/repository"
	"risk_assessment_backend/internal/util"
	"risk_assessment_backend/pkg/logger"
	"risk_assessment_backend/pkg/monitoring"
	"risk_assessment_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Invalidator 新评估写入后通知统计缓存失效
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type AssessmentService struct {
	Repo        AssessmentStore
	Students    StudentStore
	Invalidator Invalidator

	score engine.ScoreFunc
	now   func() time.Time
}

func NewAssessmentService(repo AssessmentStore, students StudentStore, strategy string) (*AssessmentService, error) {
	score, err := engine.ScorerFor(strategy)
	if err != nil {
		return nil, err
	}
	return &AssessmentService{
		Repo:     repo,
		Students: students,
		score:    score,
		now:      time.Now,
	}, nil
}

// CreateAssessmentRequest 问卷内容直接内嵌，客户端传来的 riskLevel 会被忽略
// swagger:model CreateAssessmentRequest
type CreateAssessmentRequest struct {
	StudentID uint `json:"studentId" binding:"required"`
	engine.RawAssessmentInput
}

// PersonSummary 学生/心理师的简要信息
type PersonSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AssessmentRecord 对外返回的评估视图，风险等级总是由当前内容推导
type AssessmentRecord struct {
	ID             uint           `json:"id"`
	CreatedAt      time.Time      `json:"createdAt"`
	StudentID      uint           `json:"studentId"`
	PsychologistID uint           `json:"psychologistId"`
	Student        *PersonSummary `json:"student,omitempty"`
	Psychologist   *PersonSummary `json:"psychologist,omitempty"`
	engine.Assessment
	RiskLevel engine.RiskLevel `json:"riskLevel"`
}

// AssessmentReport 报告视图：记录加上按顺序排列的报告段落
type AssessmentReport struct {
	Record   *AssessmentRecord `json:"assessment"`
	Sections []engine.Section  `json:"sections"`
}

func (s *AssessmentService) Create(ctx context.Context, psychologistID uint, req CreateAssessmentRequest) (*AssessmentRecord, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AssessmentService.Create")
	defer span.End()

	raw := req.RawAssessmentInput
	if raw.Date == nil {
		now := s.now()
		raw.Date = &now
	}

	valid, err := engine.Validate(raw)
	if err != nil {
		var verrs engine.ValidationErrors
		if errors.As(err, &verrs) {
			for _, field := range verrs.Fields() {
				monitoring.ValidationFailures.WithLabelValues(field).Inc()
			}
			span.SetAttributes(attribute.Int("assessment.validation_errors", len(verrs)))
		}
		return nil, err
	}

	scored, err := engine.NewScored(valid, s.score)
	if err != nil {
		return nil, s.invariantViolation(span, err)
	}

	student, err := s.Students.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, notFound(err, util.ErrStudentNotFound)
	}

	m := model.NewSuicideAssessment(scored, student.ID, psychologistID)
	if err := s.Repo.Create(ctx, m); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("save assessment: %w", err)
	}
	m.Student = student

	monitoring.AssessmentsCreated.WithLabelValues(m.RiskLevel).Inc()
	span.SetAttributes(
		attribute.Int64("assessment.id", int64(m.ID)),
		attribute.String("assessment.risk_level", m.RiskLevel),
	)
	logger.Log.Info("assessment created",
		zap.Uint("id", m.ID),
		zap.Uint("student_id", m.StudentID),
		zap.Uint("psychologist_id", psychologistID),
		zap.String("risk_level", m.RiskLevel),
	)

	if s.Invalidator != nil {
		s.Invalidator.Invalidate(ctx)
	}

	return newRecord(m, scored), nil
}

func (s *AssessmentService) Get(ctx context.Context, id uint) (*AssessmentRecord, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AssessmentService.Get")
	defer span.End()

	m, scored, err := s.load(ctx, id)
	if err != nil {
		return nil, s.traceErr(span, err)
	}
	return newRecord(m, scored), nil
}

// List 按学生、心理师、风险等级过滤，时间倒序
func (s *AssessmentService) List(ctx context.Context, f repository.AssessmentFilter) ([]AssessmentRecord, int64, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AssessmentService.List")
	defer span.End()

	if f.RiskLevel != "" && !engine.RiskLevel(f.RiskLevel).Valid() {
		return nil, 0, engine.ValidationErrors{{Field: "riskLevel", Message: "unknown risk level"}}
	}

	rows, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	records := make([]AssessmentRecord, 0, len(rows))
	for i := range rows {
		scored, err := s.rescore(&rows[i])
		if err != nil {
			return nil, 0, s.invariantViolation(span, err)
		}
		records = append(records, *newRecord(&rows[i], scored))
	}
	return records, total, nil
}

// Report 生成报告段落，段落顺序与分支可见性由 engine.Project 决定
func (s *AssessmentService) Report(ctx context.Context, id uint) (*AssessmentReport, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AssessmentService.Report")
	defer span.End()

	m, scored, err := s.load(ctx, id)
	if err != nil {
		return nil, s.traceErr(span, err)
	}

	sections, err := engine.Project(scored, participantsOf(m))
	if err != nil {
		return nil, s.invariantViolation(span, err)
	}
	return &AssessmentReport{Record: newRecord(m, scored), Sections: sections}, nil
}

func (s *AssessmentService) load(ctx context.Context, id uint) (*model.SuicideAssessment, engine.ScoredAssessment, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, engine.ScoredAssessment{}, notFound(err, util.ErrAssessmentNotFound)
	}
	scored, err := s.rescore(m)
	if err != nil {
		monitoring.InvariantViolations.Inc()
		return nil, engine.ScoredAssessment{}, err
	}
	return m, scored, nil
}

// rescore 持久化数据同样要经过校验，不合规的行视为不变量破坏
func (s *AssessmentService) rescore(m *model.SuicideAssessment) (engine.ScoredAssessment, error) {
	valid, err := engine.Validate(m.Assessment().Raw())
	if err != nil {
		return engine.ScoredAssessment{}, fmt.Errorf("%w: stored assessment %d: %v", engine.ErrInvariantViolation, m.ID, err)
	}
	scored, err := engine.NewScored(valid, s.score)
	if err != nil {
		return engine.ScoredAssessment{}, err
	}
	if string(scored.RiskLevel()) != m.RiskLevel {
		logger.Log.Warn("stored risk level differs from derived level",
			zap.Uint("id", m.ID),
			zap.String("stored", m.RiskLevel),
			zap.String("derived", string(scored.RiskLevel())),
		)
	}
	return scored, nil
}

func (s *AssessmentService) invariantViolation(span trace.Span, err error) error {
	monitoring.InvariantViolations.Inc()
	logger.Log.Error("assessment invariant violated", zap.Error(err))
	span.RecordError(err)
	span.SetStatus(codes.Error, "invariant violation")
	return err
}

func (s *AssessmentService) traceErr(span trace.Span, err error) error {
	if !errors.Is(err, util.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func newRecord(m *model.SuicideAssessment, scored engine.ScoredAssessment) *AssessmentRecord {
	r := &AssessmentRecord{
		ID:             m.ID,
		CreatedAt:      m.CreatedAt,
		StudentID:      m.StudentID,
		PsychologistID: m.PsychologistID,
		Assessment:     scored.Assessment(),
		RiskLevel:      scored.RiskLevel(),
	}
	if m.Student != nil {
		r.Student = &PersonSummary{ID: m.Student.ID, Name: m.Student.FullName(), Email: m.Student.Email}
	}
	if m.Psychologist != nil {
		r.Psychologist = &PersonSummary{ID: m.Psychologist.ID, Name: m.Psychologist.FullName(), Email: m.Psychologist.Email}
	}
	return r
}

func participantsOf(m *model.SuicideAssessment) engine.Participants {
	var p engine.Participants
	if m.Student != nil {
		p.StudentName = m.Student.FullName()
		p.StudentEmail = m.Student.Email
	}
	if m.Psychologist != nil {
		p.PsychologistName = m.Psychologist.FullName()
		p.PsychologistEmail = m.Psychologist.Email
	}
	return p
}
