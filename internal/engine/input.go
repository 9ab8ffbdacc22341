package engine

import "time"

// RawIndicator 客户端提交的单个是/否临床条目，指针字段用于区分"未提交"与零值
type RawIndicator struct {
	Present       *bool   `json:"present"`
	Description   *string `json:"description,omitempty"`
	Frequency     *int    `json:"frequency,omitempty"`
	TotalAttempts *int    `json:"totalAttempts,omitempty"`
}

// RawIntensity 意念强度区块
type RawIntensity struct {
	MostSeriousIdeationType        *int    `json:"mostSeriousIdeationType"`
	MostSeriousIdeationDescription *string `json:"mostSeriousIdeationDescription"`
	Frequency                      *int    `json:"frequency"`
}

// RawAssessmentInput 未经校验的评估问卷。没有 riskLevel 字段：风险等级只能由评分引擎推导
// swagger:model RawAssessmentInput
type RawAssessmentInput struct {
	Date *time.Time `json:"date,omitempty"`

	DeathWish                         *RawIndicator `json:"deathWish"`
	NonSpecificActiveSuicidalThoughts *RawIndicator `json:"nonSpecificActiveSuicidalThoughts"`
	ActiveSuicidalIdeationWithMethods *RawIndicator `json:"activeSuicidalIdeationWithMethods"`
	ActiveSuicidalIdeationWithIntent  *RawIndicator `json:"activeSuicidalIdeationWithIntent"`
	ActiveSuicidalIdeationWithPlan    *RawIndicator `json:"activeSuicidalIdeationWithPlan"`
	IdeationIntensity                 *RawIntensity `json:"ideationIntensity"`

	ActualAttempt           *RawIndicator `json:"actualAttempt"`
	NonSuicidalSelfInjury   *RawIndicator `json:"nonSuicidalSelfInjury"`
	UnknownIntentSelfInjury *RawIndicator `json:"unknownIntentSelfInjury"`
	InterruptedAttempt      *RawIndicator `json:"interruptedAttempt"`
	AbortedAttempt          *RawIndicator `json:"abortedAttempt"`
	PreparatoryActs         *RawIndicator `json:"preparatoryActs"`

	CompletedSuicide      *bool      `json:"completedSuicide,omitempty"`
	MostLethalAttemptDate *time.Time `json:"mostLethalAttemptDate,omitempty"`
	LethalityDegree       *int       `json:"lethalityDegree,omitempty"`
	PotentialLethality    *int       `json:"potentialLethality,omitempty"`

	Observations string `json:"observations"`
	FinalRemarks string `json:"finalRemarks"`
}

func presentOf(ind *RawIndicator) *bool {
	if ind == nil {
		return nil
	}
	return ind.Present
}

func isTrue(b *bool) bool  { return b != nil && *b }
func isFalse(b *bool) bool { return b != nil && !*b }

// Bool, Int 和 String 用于构造 RawAssessmentInput 字面量
func Bool(v bool) *bool       { return &v }
func Int(v int) *int          { return &v }
func String(v string) *string { return &v }
