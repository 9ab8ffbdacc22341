package engine

import (
	"fmt"
	"strings"
)

const (
	msgRequired = "El campo %s es obligatorio"
	msgRange    = "El campo %s debe estar entre %d y %d"
	msgEnum     = "El campo %s debe ser uno de 0, 1, 2, 3, 4"
	msgNegative = "El campo %s no puede ser negativo"
)

// rule 谓词 → 必填字段集合。applies 为 nil 表示无条件执行
type rule struct {
	name    string
	applies func(BaseFlags) bool
	check   func(RawAssessmentInput) ValidationErrors
}

// rules 按顺序执行，一次收集全部违规
var rules = []rule{
	{name: "R1", check: checkBaseFlags},
	{name: "R2", applies: IsIdeationDetailActive, check: checkIdeationDetail},
	{name: "R3", applies: IsIntensityRequired, check: checkIntensityRequired},
	{name: "R4", applies: IsBehaviorBranchActive, check: checkBehavior},
	{name: "R5", check: checkRanges},
}

// Validate 对原始问卷执行条件规则表。返回的 error 非空时一定是 ValidationErrors
func Validate(raw RawAssessmentInput) (ValidAssessment, error) {
	flags := raw.Flags()

	var errs ValidationErrors
	for _, r := range rules {
		if r.applies != nil && !r.applies(flags) {
			continue
		}
		errs = append(errs, r.check(raw)...)
	}
	if len(errs) > 0 {
		return ValidAssessment{}, errs
	}

	return ValidAssessment{a: normalize(raw, flags), verified: true}, nil
}

func checkBaseFlags(raw RawAssessmentInput) ValidationErrors {
	var errs ValidationErrors
	errs.requirePresent("deathWish", raw.DeathWish)
	errs.requirePresent("nonSpecificActiveSuicidalThoughts", raw.NonSpecificActiveSuicidalThoughts)
	return errs
}

func checkIdeationDetail(raw RawAssessmentInput) ValidationErrors {
	var errs ValidationErrors
	errs.requirePresent("activeSuicidalIdeationWithMethods", raw.ActiveSuicidalIdeationWithMethods)
	errs.requirePresent("activeSuicidalIdeationWithIntent", raw.ActiveSuicidalIdeationWithIntent)
	errs.requirePresent("activeSuicidalIdeationWithPlan", raw.ActiveSuicidalIdeationWithPlan)
	return errs
}

func checkIntensityRequired(raw RawAssessmentInput) ValidationErrors {
	in := raw.IdeationIntensity
	if in == nil {
		in = &RawIntensity{}
	}

	var errs ValidationErrors
	if in.MostSeriousIdeationType == nil {
		errs.required("ideationIntensity.mostSeriousIdeationType")
	}
	// 与其他必填项一致，空白描述视为未作答
	if in.MostSeriousIdeationDescription == nil || strings.TrimSpace(*in.MostSeriousIdeationDescription) == "" {
		errs.required("ideationIntensity.mostSeriousIdeationDescription")
	}
	if in.Frequency == nil {
		errs.required("ideationIntensity.frequency")
	}
	return errs
}

func checkBehavior(raw RawAssessmentInput) ValidationErrors {
	var errs ValidationErrors
	errs.requirePresent("actualAttempt", raw.ActualAttempt)
	errs.requirePresent("nonSuicidalSelfInjury", raw.NonSuicidalSelfInjury)
	errs.requirePresent("unknownIntentSelfInjury", raw.UnknownIntentSelfInjury)
	errs.requirePresent("interruptedAttempt", raw.InterruptedAttempt)
	errs.requirePresent("abortedAttempt", raw.AbortedAttempt)
	errs.requirePresent("preparatoryActs", raw.PreparatoryActs)
	return errs
}

// checkRanges 范围检查只要字段被提交就执行，与分支无关
func checkRanges(raw RawAssessmentInput) ValidationErrors {
	var errs ValidationErrors
	errs.inRange("lethalityDegree", raw.LethalityDegree, 0, 5)
	errs.inRange("potentialLethality", raw.PotentialLethality, 0, 2)

	if in := raw.IdeationIntensity; in != nil {
		errs.inRange("ideationIntensity.mostSeriousIdeationType", in.MostSeriousIdeationType, 1, 5)
		if in.Frequency != nil && !validFrequency(*in.Frequency) {
			errs.add("ideationIntensity.frequency", fmt.Sprintf(msgEnum, "ideationIntensity.frequency"))
		}
	}

	if plan := raw.ActiveSuicidalIdeationWithPlan; plan != nil {
		errs.inRange("activeSuicidalIdeationWithPlan.frequency", plan.Frequency, 0, 4)
	}
	errs.nonNegative("actualAttempt.totalAttempts", raw.ActualAttempt)
	errs.nonNegative("interruptedAttempt.totalAttempts", raw.InterruptedAttempt)
	errs.nonNegative("abortedAttempt.totalAttempts", raw.AbortedAttempt)
	return errs
}

func validFrequency(f int) bool {
	return f >= 0 && f <= 4
}

func (es *ValidationErrors) add(field, msg string) {
	*es = append(*es, ValidationError{Field: field, Message: msg})
}

func (es *ValidationErrors) required(field string) {
	es.add(field, fmt.Sprintf(msgRequired, field))
}

func (es *ValidationErrors) requirePresent(name string, ind *RawIndicator) {
	if presentOf(ind) == nil {
		es.required(name + ".present")
	}
}

func (es *ValidationErrors) inRange(field string, v *int, lo, hi int) {
	if v != nil && (*v < lo || *v > hi) {
		es.add(field, fmt.Sprintf(msgRange, field, lo, hi))
	}
}

func (es *ValidationErrors) nonNegative(field string, ind *RawIndicator) {
	if ind != nil && ind.TotalAttempts != nil && *ind.TotalAttempts < 0 {
		es.add(field, fmt.Sprintf(msgNegative, field))
	}
}

// normalize 生成规范化记录：非激活分支保持零值，未出现的条目频率和次数为 0
func normalize(raw RawAssessmentInput, flags BaseFlags) Assessment {
	a := Assessment{
		DeathWish:                         indicatorFrom(raw.DeathWish),
		NonSpecificActiveSuicidalThoughts: indicatorFrom(raw.NonSpecificActiveSuicidalThoughts),
		MostLethalAttemptDate:             raw.MostLethalAttemptDate,
		PotentialLethality:                raw.PotentialLethality,
		Observations:                      raw.Observations,
		FinalRemarks:                      raw.FinalRemarks,
	}
	if raw.Date != nil {
		a.Date = *raw.Date
	}
	if raw.CompletedSuicide != nil {
		a.CompletedSuicide = *raw.CompletedSuicide
	}
	if raw.LethalityDegree != nil {
		a.LethalityDegree = *raw.LethalityDegree
	}

	if IsIdeationDetailActive(flags) {
		a.ActiveSuicidalIdeationWithMethods = indicatorFrom(raw.ActiveSuicidalIdeationWithMethods)
		a.ActiveSuicidalIdeationWithIntent = indicatorFrom(raw.ActiveSuicidalIdeationWithIntent)
		a.ActiveSuicidalIdeationWithPlan = indicatorFrom(raw.ActiveSuicidalIdeationWithPlan)
		a.ActiveSuicidalIdeationWithPlan.Frequency = intOrZero(raw.ActiveSuicidalIdeationWithPlan.Frequency)
	}

	if IsIntensityRequired(flags) {
		in := raw.IdeationIntensity
		a.IdeationIntensity = &IdeationIntensity{
			MostSeriousIdeationType:        *in.MostSeriousIdeationType,
			MostSeriousIdeationDescription: *in.MostSeriousIdeationDescription,
			Frequency:                      *in.Frequency,
		}
	}

	if IsBehaviorBranchActive(flags) {
		a.ActualAttempt = indicatorFrom(raw.ActualAttempt)
		a.ActualAttempt.TotalAttempts = intOrZero(raw.ActualAttempt.TotalAttempts)
		a.NonSuicidalSelfInjury = indicatorFrom(raw.NonSuicidalSelfInjury)
		a.UnknownIntentSelfInjury = indicatorFrom(raw.UnknownIntentSelfInjury)
		a.InterruptedAttempt = indicatorFrom(raw.InterruptedAttempt)
		a.InterruptedAttempt.TotalAttempts = intOrZero(raw.InterruptedAttempt.TotalAttempts)
		a.AbortedAttempt = indicatorFrom(raw.AbortedAttempt)
		a.AbortedAttempt.TotalAttempts = intOrZero(raw.AbortedAttempt.TotalAttempts)
		a.PreparatoryActs = indicatorFrom(raw.PreparatoryActs)
	}

	zeroCountsWhenAbsent(&a)
	return a
}

// indicatorFrom 只拷贝 present 和 description；频率和次数按条目单独处理
func indicatorFrom(ind *RawIndicator) Indicator {
	var out Indicator
	if ind == nil {
		return out
	}
	if ind.Present != nil {
		out.Present = *ind.Present
	}
	if ind.Description != nil {
		out.Description = *ind.Description
	}
	return out
}

func zeroCountsWhenAbsent(a *Assessment) {
	for _, ind := range []*Indicator{
		&a.ActiveSuicidalIdeationWithPlan,
		&a.ActualAttempt,
		&a.InterruptedAttempt,
		&a.AbortedAttempt,
	} {
		if !ind.Present {
			ind.Frequency = 0
			ind.TotalAttempts = 0
		}
	}
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
