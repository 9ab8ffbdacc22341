package engine

import "time"

// Indicator 校验后的临床条目
type Indicator struct {
	Present       bool   `json:"present"`
	Description   string `json:"description,omitempty"`
	Frequency     int    `json:"frequency"`
	TotalAttempts int    `json:"totalAttempts"`
}

// IdeationIntensity 校验后的意念强度
type IdeationIntensity struct {
	MostSeriousIdeationType        int    `json:"mostSeriousIdeationType"`
	MostSeriousIdeationDescription string `json:"mostSeriousIdeationDescription"`
	Frequency                      int    `json:"frequency"`
}

// Assessment 经过校验和规范化的评估字段。非激活分支的条目保持零值
type Assessment struct {
	Date time.Time `json:"date"`

	DeathWish                         Indicator          `json:"deathWish"`
	NonSpecificActiveSuicidalThoughts Indicator          `json:"nonSpecificActiveSuicidalThoughts"`
	ActiveSuicidalIdeationWithMethods Indicator          `json:"activeSuicidalIdeationWithMethods"`
	ActiveSuicidalIdeationWithIntent  Indicator          `json:"activeSuicidalIdeationWithIntent"`
	ActiveSuicidalIdeationWithPlan    Indicator          `json:"activeSuicidalIdeationWithPlan"`
	IdeationIntensity                 *IdeationIntensity `json:"ideationIntensity,omitempty"`

	ActualAttempt           Indicator `json:"actualAttempt"`
	NonSuicidalSelfInjury   Indicator `json:"nonSuicidalSelfInjury"`
	UnknownIntentSelfInjury Indicator `json:"unknownIntentSelfInjury"`
	InterruptedAttempt      Indicator `json:"interruptedAttempt"`
	AbortedAttempt          Indicator `json:"abortedAttempt"`
	PreparatoryActs         Indicator `json:"preparatoryActs"`

	CompletedSuicide      bool       `json:"completedSuicide"`
	MostLethalAttemptDate *time.Time `json:"mostLethalAttemptDate,omitempty"`
	LethalityDegree       int        `json:"lethalityDegree"`
	PotentialLethality    *int       `json:"potentialLethality,omitempty"`

	Observations string `json:"observations"`
	FinalRemarks string `json:"finalRemarks"`
}

// Flags 返回决定分支的两个基础回答
func (a Assessment) Flags() BaseFlags {
	return BaseFlags{
		DeathWish:   Bool(a.DeathWish.Present),
		NonSpecific: Bool(a.NonSpecificActiveSuicidalThoughts.Present),
	}
}

// Raw 把已校验的字段还原成原始输入，用于重新校验（持久化记录的重建路径也走这里）
func (a Assessment) Raw() RawAssessmentInput {
	date := a.Date
	raw := RawAssessmentInput{
		Date:                              &date,
		DeathWish:                         a.DeathWish.raw(),
		NonSpecificActiveSuicidalThoughts: a.NonSpecificActiveSuicidalThoughts.raw(),
		CompletedSuicide:                  Bool(a.CompletedSuicide),
		MostLethalAttemptDate:             a.MostLethalAttemptDate,
		LethalityDegree:                   Int(a.LethalityDegree),
		PotentialLethality:                a.PotentialLethality,
		Observations:                      a.Observations,
		FinalRemarks:                      a.FinalRemarks,
	}

	flags := a.Flags()
	if IsIdeationDetailActive(flags) {
		raw.ActiveSuicidalIdeationWithMethods = a.ActiveSuicidalIdeationWithMethods.raw()
		raw.ActiveSuicidalIdeationWithIntent = a.ActiveSuicidalIdeationWithIntent.raw()
		raw.ActiveSuicidalIdeationWithPlan = a.ActiveSuicidalIdeationWithPlan.raw()
	}
	if a.IdeationIntensity != nil {
		raw.IdeationIntensity = &RawIntensity{
			MostSeriousIdeationType:        Int(a.IdeationIntensity.MostSeriousIdeationType),
			MostSeriousIdeationDescription: String(a.IdeationIntensity.MostSeriousIdeationDescription),
			Frequency:                      Int(a.IdeationIntensity.Frequency),
		}
	}
	if IsBehaviorBranchActive(flags) {
		raw.ActualAttempt = a.ActualAttempt.raw()
		raw.NonSuicidalSelfInjury = a.NonSuicidalSelfInjury.raw()
		raw.UnknownIntentSelfInjury = a.UnknownIntentSelfInjury.raw()
		raw.InterruptedAttempt = a.InterruptedAttempt.raw()
		raw.AbortedAttempt = a.AbortedAttempt.raw()
		raw.PreparatoryActs = a.PreparatoryActs.raw()
	}
	return raw
}

func (i Indicator) raw() *RawIndicator {
	return &RawIndicator{
		Present:       Bool(i.Present),
		Description:   String(i.Description),
		Frequency:     Int(i.Frequency),
		TotalAttempts: Int(i.TotalAttempts),
	}
}

// ValidAssessment 只能由 Validate 构造；评分引擎只接受这个类型
type ValidAssessment struct {
	a        Assessment
	verified bool
}

// Assessment 返回字段副本
func (v ValidAssessment) Assessment() Assessment {
	out := v.a
	if v.a.IdeationIntensity != nil {
		intensity := *v.a.IdeationIntensity
		out.IdeationIntensity = &intensity
	}
	if v.a.PotentialLethality != nil {
		out.PotentialLethality = Int(*v.a.PotentialLethality)
	}
	if v.a.MostLethalAttemptDate != nil {
		d := *v.a.MostLethalAttemptDate
		out.MostLethalAttemptDate = &d
	}
	return out
}

// ScoredAssessment 已校验且已评分的记录，报告投影的唯一输入
type ScoredAssessment struct {
	valid ValidAssessment
	risk  RiskLevel
}

// NewScored 用给定的评分策略为记录评分
func NewScored(v ValidAssessment, score ScoreFunc) (ScoredAssessment, error) {
	risk, err := score(v)
	if err != nil {
		return ScoredAssessment{}, err
	}
	return ScoredAssessment{valid: v, risk: risk}, nil
}

func (s ScoredAssessment) RiskLevel() RiskLevel   { return s.risk }
func (s ScoredAssessment) Assessment() Assessment { return s.valid.Assessment() }
