package engine

import "time"

var fixedDate = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

func indicator(present bool) *RawIndicator {
	return &RawIndicator{Present: Bool(present)}
}

// ideationInput 激活意念细节分支的完整输入
func ideationInput() RawAssessmentInput {
	return RawAssessmentInput{
		Date:                              &fixedDate,
		DeathWish:                         indicator(true),
		NonSpecificActiveSuicidalThoughts: &RawIndicator{Present: Bool(true), Description: String("piensa en morir a diario")},
		ActiveSuicidalIdeationWithMethods: indicator(true),
		ActiveSuicidalIdeationWithIntent:  indicator(false),
		ActiveSuicidalIdeationWithPlan:    &RawIndicator{Present: Bool(true), Description: String("plan con fecha"), Frequency: Int(2)},
		IdeationIntensity: &RawIntensity{
			MostSeriousIdeationType:        Int(3),
			MostSeriousIdeationDescription: String("pensamientos recurrentes"),
			Frequency:                      Int(1),
		},
		Observations: "estudiante colaborador",
	}
}

// behaviorInput 两个基础问题均为否，激活行为分支
func behaviorInput() RawAssessmentInput {
	return RawAssessmentInput{
		Date:                              &fixedDate,
		DeathWish:                         indicator(false),
		NonSpecificActiveSuicidalThoughts: indicator(false),
		ActualAttempt:                     &RawIndicator{Present: Bool(true), Description: String("ingesta de pastillas"), TotalAttempts: Int(2)},
		NonSuicidalSelfInjury:             indicator(false),
		UnknownIntentSelfInjury:           indicator(false),
		InterruptedAttempt:                indicator(false),
		AbortedAttempt:                    indicator(false),
		PreparatoryActs:                   indicator(true),
		LethalityDegree:                   Int(3),
		PotentialLethality:                Int(2),
		FinalRemarks:                      "seguimiento semanal",
	}
}

// deathWishOnlyInput 只有死亡愿望为是：强度必填，但两个分支都不激活
func deathWishOnlyInput() RawAssessmentInput {
	return RawAssessmentInput{
		Date:                              &fixedDate,
		DeathWish:                         indicator(true),
		NonSpecificActiveSuicidalThoughts: indicator(false),
		IdeationIntensity: &RawIntensity{
			MostSeriousIdeationType:        Int(1),
			MostSeriousIdeationDescription: String("desearía no despertar"),
			Frequency:                      Int(0),
		},
	}
}

// inputFor 按两个基础回答构造一份合法输入
func inputFor(deathWish, nonSpecific bool) RawAssessmentInput {
	switch {
	case nonSpecific:
		in := ideationInput()
		in.DeathWish = indicator(deathWish)
		return in
	case deathWish:
		return deathWishOnlyInput()
	default:
		return behaviorInput()
	}
}

func mustValidate(raw RawAssessmentInput) ValidAssessment {
	v, err := Validate(raw)
	if err != nil {
		panic(err)
	}
	return v
}
