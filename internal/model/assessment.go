package model

import (
	"time"

	"risk_assessment_backend/internal/engine"
)

// IndicatorColumns 单个临床条目的列，嵌入时加前缀
type IndicatorColumns struct {
	Present       bool   `gorm:"not null;default:false" json:"present"`
	Description   string `gorm:"type:text" json:"description,omitempty"`
	Frequency     int    `gorm:"not null;default:0" json:"frequency"`
	TotalAttempts int    `gorm:"not null;default:0" json:"totalAttempts"`
}

// IntensityColumns 意念强度。MostSeriousIdeationType 为 0 表示未记录
type IntensityColumns struct {
	MostSeriousIdeationType        int    `gorm:"not null;default:0" json:"mostSeriousIdeationType"`
	MostSeriousIdeationDescription string `gorm:"type:text" json:"mostSeriousIdeationDescription"`
	Frequency                      int    `gorm:"not null;default:0" json:"frequency"`
}

// SuicideAssessment 评估记录，只追加：没有 UpdatedAt/DeletedAt，仓库也不提供修改路径
// swagger:model SuicideAssessment
type SuicideAssessment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	StudentID      uint      `gorm:"not null;index" json:"studentId"`
	Student        *Student  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	PsychologistID uint      `gorm:"not null;index" json:"psychologistId"`
	Psychologist   *User     `gorm:"foreignKey:PsychologistID" json:"psychologist,omitempty"`
	Date           time.Time `gorm:"not null;index" json:"date"`

	DeathWish                         IndicatorColumns `gorm:"embedded;embeddedPrefix:death_wish_" json:"deathWish"`
	NonSpecificActiveSuicidalThoughts IndicatorColumns `gorm:"embedded;embeddedPrefix:non_specific_thoughts_" json:"nonSpecificActiveSuicidalThoughts"`
	ActiveSuicidalIdeationWithMethods IndicatorColumns `gorm:"embedded;embeddedPrefix:ideation_methods_" json:"activeSuicidalIdeationWithMethods"`
	ActiveSuicidalIdeationWithIntent  IndicatorColumns `gorm:"embedded;embeddedPrefix:ideation_intent_" json:"activeSuicidalIdeationWithIntent"`
	ActiveSuicidalIdeationWithPlan    IndicatorColumns `gorm:"embedded;embeddedPrefix:ideation_plan_" json:"activeSuicidalIdeationWithPlan"`
	IdeationIntensity                 IntensityColumns `gorm:"embedded;embeddedPrefix:intensity_" json:"ideationIntensity"`

	ActualAttempt           IndicatorColumns `gorm:"embedded;embeddedPrefix:actual_attempt_" json:"actualAttempt"`
	NonSuicidalSelfInjury   IndicatorColumns `gorm:"embedded;embeddedPrefix:non_suicidal_self_injury_" json:"nonSuicidalSelfInjury"`
	UnknownIntentSelfInjury IndicatorColumns `gorm:"embedded;embeddedPrefix:unknown_intent_self_injury_" json:"unknownIntentSelfInjury"`
	InterruptedAttempt      IndicatorColumns `gorm:"embedded;embeddedPrefix:interrupted_attempt_" json:"interruptedAttempt"`
	AbortedAttempt          IndicatorColumns `gorm:"embedded;embeddedPrefix:aborted_attempt_" json:"abortedAttempt"`
	PreparatoryActs         IndicatorColumns `gorm:"embedded;embeddedPrefix:preparatory_acts_" json:"preparatoryActs"`

	CompletedSuicide      bool       `gorm:"not null;default:false" json:"completedSuicide"`
	MostLethalAttemptDate *time.Time `json:"mostLethalAttemptDate,omitempty"`
	LethalityDegree       int        `gorm:"not null;default:0" json:"lethalityDegree"`
	PotentialLethality    *int       `json:"potentialLethality,omitempty"`

	// RiskLevel 写入时计算的缓存，读取时重新推导
	RiskLevel string `gorm:"size:20;not null;index" json:"riskLevel"`

	Observations string `gorm:"type:text" json:"observations"`
	FinalRemarks string `gorm:"type:text" json:"finalRemarks"`
}

func (SuicideAssessment) TableName() string {
	return "suicide_assessments"
}

// NewSuicideAssessment 把已评分的记录映射为表结构
func NewSuicideAssessment(s engine.ScoredAssessment, studentID, psychologistID uint) *SuicideAssessment {
	a := s.Assessment()
	m := &SuicideAssessment{
		StudentID:      studentID,
		PsychologistID: psychologistID,
		Date:           a.Date,

		DeathWish:                         columnsOf(a.DeathWish),
		NonSpecificActiveSuicidalThoughts: columnsOf(a.NonSpecificActiveSuicidalThoughts),
		ActiveSuicidalIdeationWithMethods: columnsOf(a.ActiveSuicidalIdeationWithMethods),
		ActiveSuicidalIdeationWithIntent:  columnsOf(a.ActiveSuicidalIdeationWithIntent),
		ActiveSuicidalIdeationWithPlan:    columnsOf(a.ActiveSuicidalIdeationWithPlan),

		ActualAttempt:           columnsOf(a.ActualAttempt),
		NonSuicidalSelfInjury:   columnsOf(a.NonSuicidalSelfInjury),
		UnknownIntentSelfInjury: columnsOf(a.UnknownIntentSelfInjury),
		InterruptedAttempt:      columnsOf(a.InterruptedAttempt),
		AbortedAttempt:          columnsOf(a.AbortedAttempt),
		PreparatoryActs:         columnsOf(a.PreparatoryActs),

		CompletedSuicide:      a.CompletedSuicide,
		MostLethalAttemptDate: a.MostLethalAttemptDate,
		LethalityDegree:       a.LethalityDegree,
		PotentialLethality:    a.PotentialLethality,
		RiskLevel:             string(s.RiskLevel()),
		Observations:          a.Observations,
		FinalRemarks:          a.FinalRemarks,
	}
	if in := a.IdeationIntensity; in != nil {
		m.IdeationIntensity = IntensityColumns{
			MostSeriousIdeationType:        in.MostSeriousIdeationType,
			MostSeriousIdeationDescription: in.MostSeriousIdeationDescription,
			Frequency:                      in.Frequency,
		}
	}
	return m
}

// Assessment 还原为引擎字段，需再经 engine.Validate 才能评分
func (m *SuicideAssessment) Assessment() engine.Assessment {
	a := engine.Assessment{
		Date: m.Date,

		DeathWish:                         m.DeathWish.indicator(),
		NonSpecificActiveSuicidalThoughts: m.NonSpecificActiveSuicidalThoughts.indicator(),
		ActiveSuicidalIdeationWithMethods: m.ActiveSuicidalIdeationWithMethods.indicator(),
		ActiveSuicidalIdeationWithIntent:  m.ActiveSuicidalIdeationWithIntent.indicator(),
		ActiveSuicidalIdeationWithPlan:    m.ActiveSuicidalIdeationWithPlan.indicator(),

		ActualAttempt:           m.ActualAttempt.indicator(),
		NonSuicidalSelfInjury:   m.NonSuicidalSelfInjury.indicator(),
		UnknownIntentSelfInjury: m.UnknownIntentSelfInjury.indicator(),
		InterruptedAttempt:      m.InterruptedAttempt.indicator(),
		AbortedAttempt:          m.AbortedAttempt.indicator(),
		PreparatoryActs:         m.PreparatoryActs.indicator(),

		CompletedSuicide:      m.CompletedSuicide,
		MostLethalAttemptDate: m.MostLethalAttemptDate,
		LethalityDegree:       m.LethalityDegree,
		PotentialLethality:    m.PotentialLethality,
		Observations:          m.Observations,
		FinalRemarks:          m.FinalRemarks,
	}
	if in := m.IdeationIntensity; in.MostSeriousIdeationType != 0 {
		a.IdeationIntensity = &engine.IdeationIntensity{
			MostSeriousIdeationType:        in.MostSeriousIdeationType,
			MostSeriousIdeationDescription: in.MostSeriousIdeationDescription,
			Frequency:                      in.Frequency,
		}
	}
	return a
}

func columnsOf(ind engine.Indicator) IndicatorColumns {
	return IndicatorColumns{
		Present:       ind.Present,
		Description:   ind.Description,
		Frequency:     ind.Frequency,
		TotalAttempts: ind.TotalAttempts,
	}
}

func (c IndicatorColumns) indicator() engine.Indicator {
	return engine.Indicator{
		Present:       c.Present,
		Description:   c.Description,
		Frequency:     c.Frequency,
		TotalAttempts: c.TotalAttempts,
	}
}
