package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var participants = Participants{
	StudentName:       "Ana Pérez",
	StudentEmail:      "ana@colegio.cl",
	PsychologistName:  "Luis Soto",
	PsychologistEmail: "lsoto@colegio.cl",
}

func project(t *testing.T, raw RawAssessmentInput) []Section {
	t.Helper()
	s, err := NewScored(mustValidate(raw), Score)
	require.NoError(t, err)
	sections, err := Project(s, participants)
	require.NoError(t, err)
	return sections
}

func sectionByKey(t *testing.T, sections []Section, key string) Section {
	t.Helper()
	for _, s := range sections {
		if s.Key == key {
			return s
		}
	}
	t.Fatalf("section %q not found", key)
	return Section{}
}

// fieldAllowed 报告只能展示在当前分支下必填（或总是存在）的字段
func fieldAllowed(field string, flags BaseFlags) bool {
	root := strings.SplitN(field, ".", 2)[0]
	switch root {
	case "deathWish", "nonSpecificActiveSuicidalThoughts", "observations", "finalRemarks":
		return true
	case "activeSuicidalIdeationWithMethods", "activeSuicidalIdeationWithIntent", "activeSuicidalIdeationWithPlan":
		return IsIdeationDetailActive(flags)
	case "ideationIntensity":
		return IsIdeationDetailActive(flags) && IsIntensityRequired(flags)
	default:
		return IsBehaviorBranchActive(flags)
	}
}

func TestProject_SectionOrder(t *testing.T) {
	sections := project(t, ideationInput())

	var keys []string
	for _, s := range sections {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{SectionHeader, SectionIdeation, SectionBehavior, SectionFinalRemarks}, keys)
}

func assertBranchSymmetry(t *testing.T, raw RawAssessmentInput) {
	t.Helper()
	flags := raw.Flags()
	sections := project(t, raw)

	ideation := sectionByKey(t, sections, SectionIdeation)
	hasDetail := false
	hasIdeationPlaceholder := false
	for _, it := range ideation.Items {
		if strings.HasPrefix(it.Field, "activeSuicidalIdeationWith") {
			hasDetail = true
		}
		if it.Placeholder {
			hasIdeationPlaceholder = true
		}
	}
	assert.Equal(t, IsIdeationDetailActive(flags), hasDetail)
	assert.Equal(t, !IsIdeationDetailActive(flags), hasIdeationPlaceholder)

	behavior := sectionByKey(t, sections, SectionBehavior)
	assert.Equal(t, IsBehaviorBranchActive(flags), behavior.HasContent())
	if !IsBehaviorBranchActive(flags) {
		require.Len(t, behavior.Items, 1)
		assert.Equal(t, PlaceholderBehavior, behavior.Items[0].Value)
	}

	for _, s := range sections {
		for _, it := range s.Items {
			if it.Field == "" {
				continue
			}
			assert.True(t, fieldAllowed(it.Field, flags), "field %s shown for %+v", it.Field, flags)
		}
	}
}

// withBothBranches 在合法输入上补齐另一分支的全部字段
func withBothBranches(raw RawAssessmentInput) RawAssessmentInput {
	ideation := ideationInput()
	behavior := behaviorInput()

	if raw.ActiveSuicidalIdeationWithMethods == nil {
		raw.ActiveSuicidalIdeationWithMethods = ideation.ActiveSuicidalIdeationWithMethods
		raw.ActiveSuicidalIdeationWithIntent = ideation.ActiveSuicidalIdeationWithIntent
		raw.ActiveSuicidalIdeationWithPlan = ideation.ActiveSuicidalIdeationWithPlan
	}
	if raw.IdeationIntensity == nil {
		raw.IdeationIntensity = ideation.IdeationIntensity
	}
	if raw.ActualAttempt == nil {
		raw.ActualAttempt = behavior.ActualAttempt
		raw.NonSuicidalSelfInjury = behavior.NonSuicidalSelfInjury
		raw.UnknownIntentSelfInjury = behavior.UnknownIntentSelfInjury
		raw.InterruptedAttempt = behavior.InterruptedAttempt
		raw.AbortedAttempt = behavior.AbortedAttempt
		raw.PreparatoryActs = behavior.PreparatoryActs
		raw.CompletedSuicide = Bool(true)
		raw.LethalityDegree = behavior.LethalityDegree
		raw.PotentialLethality = behavior.PotentialLethality
	}
	return raw
}

func TestProject_BranchSymmetry(t *testing.T) {
	for _, deathWish := range []bool{true, false} {
		for _, nonSpecific := range []bool{true, false} {
			t.Run(fmt.Sprintf("deathWish=%t nonSpecific=%t", deathWish, nonSpecific), func(t *testing.T) {
				assertBranchSymmetry(t, inputFor(deathWish, nonSpecific))
			})
		}
	}
}

func TestProject_BranchSymmetry_InactiveBranchSubmitted(t *testing.T) {
	for _, deathWish := range []bool{true, false} {
		for _, nonSpecific := range []bool{true, false} {
			t.Run(fmt.Sprintf("deathWish=%t nonSpecific=%t", deathWish, nonSpecific), func(t *testing.T) {
				raw := withBothBranches(inputFor(deathWish, nonSpecific))
				require.NotNil(t, raw.ActiveSuicidalIdeationWithPlan)
				require.NotNil(t, raw.ActualAttempt)

				assertBranchSymmetry(t, raw)
			})
		}
	}
}

func TestProject_Header(t *testing.T) {
	header := sectionByKey(t, project(t, intensityInput(5, 3)), SectionHeader)

	values := map[string]string{}
	for _, it := range header.Items {
		values[it.Label] = it.Value
	}
	assert.Equal(t, "Ana Pérez", values["Estudiante"])
	assert.Equal(t, "lsoto@colegio.cl", values["Correo Psicólogo"])
	assert.Equal(t, "5/3/2024", values["Fecha de Evaluación"])
	assert.Equal(t, string(RiskExtreme), values["Nivel de Riesgo Calculado"])
	assert.Equal(t, "estudiante colaborador", values["Observaciones Generales de la Evaluación"])
}

func TestProject_Placeholders(t *testing.T) {
	raw := behaviorInput()
	raw.FinalRemarks = ""
	raw.PotentialLethality = nil

	sections := project(t, raw)

	header := sectionByKey(t, sections, SectionHeader)
	last := header.Items[len(header.Items)-1]
	assert.True(t, last.Placeholder)
	assert.Equal(t, PlaceholderNone, last.Value)

	remarks := sectionByKey(t, sections, SectionFinalRemarks)
	require.Len(t, remarks.Items, 1)
	assert.Equal(t, PlaceholderNoFinalRemarks, remarks.Items[0].Value)
	assert.False(t, remarks.HasContent())

	behavior := sectionByKey(t, sections, SectionBehavior)
	for _, it := range behavior.Items {
		switch it.Field {
		case "mostLethalAttemptDate":
			assert.Equal(t, PlaceholderNotAvailable, it.Value)
		case "potentialLethality":
			assert.Equal(t, "N/A (Escala 0-2)", it.Value)
		}
	}
}

func TestProject_IndicatorDetails(t *testing.T) {
	sections := project(t, behaviorInput())
	behavior := sectionByKey(t, sections, SectionBehavior)

	byField := map[string]Item{}
	for _, it := range behavior.Items {
		byField[it.Field] = it
	}
	assert.Equal(t, "Sí", byField["actualAttempt.present"].Value)
	assert.Equal(t, "ingesta de pastillas", byField["actualAttempt.description"].Value)
	assert.Equal(t, "2", byField["actualAttempt.totalAttempts"].Value)
	assert.Equal(t, noDetailedDescriptionLabel, byField["preparatoryActs.present"].Value)
	_, shown := byField["interruptedAttempt.totalAttempts"]
	assert.False(t, shown)
	assert.Equal(t, "3 (Escala 0-5)", byField["lethalityDegree"].Value)
}

func TestProject_IntensityFrequencyText(t *testing.T) {
	ideation := sectionByKey(t, project(t, intensityInput(2, 4)), SectionIdeation)

	for _, it := range ideation.Items {
		if it.Field == "ideationIntensity.frequency" {
			assert.Equal(t, "Todo el tiempo", it.Value)
			return
		}
	}
	t.Fatal("intensity frequency not shown")
}

func TestProject_RejectsUnscoredRecord(t *testing.T) {
	_, err := Project(ScoredAssessment{}, participants)
	assert.ErrorIs(t, err, ErrInvariantViolation)

	_, err = Project(ScoredAssessment{valid: mustValidate(ideationInput())}, participants)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}
