package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intensityInput(ideationType, frequency int) RawAssessmentInput {
	raw := ideationInput()
	raw.IdeationIntensity.MostSeriousIdeationType = Int(ideationType)
	raw.IdeationIntensity.Frequency = Int(frequency)
	return raw
}

func TestScore_IntensityTable(t *testing.T) {
	tests := []struct {
		ideationType int
		frequency    int
		want         RiskLevel
	}{
		{1, 0, RiskLow},
		{1, 3, RiskModerateLow},
		{2, 2, RiskModerateLow},
		{2, 4, RiskModerate},
		{3, 1, RiskModerate},
		{3, 4, RiskHigh},
		{4, 2, RiskHigh},
		{4, 3, RiskVeryHigh},
		{5, 0, RiskVeryHigh},
		{5, 3, RiskExtreme},
		{5, 4, RiskExtreme},
	}
	for _, tt := range tests {
		got, err := Score(mustValidate(intensityInput(tt.ideationType, tt.frequency)))

		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "type=%d frequency=%d", tt.ideationType, tt.frequency)
	}
}

func TestScore_NoIntensityIsLow(t *testing.T) {
	got, err := Score(mustValidate(behaviorInput()))

	require.NoError(t, err)
	assert.Equal(t, RiskLow, got)
}

func TestScore_RejectsUnvalidatedRecord(t *testing.T) {
	_, err := Score(ValidAssessment{})
	assert.ErrorIs(t, err, ErrInvariantViolation)

	_, err = WeightedScore(ValidAssessment{})
	assert.ErrorIs(t, err, ErrInvariantViolation)

	_, err = NewScored(ValidAssessment{}, Score)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestScore_IsDeterministic(t *testing.T) {
	v := mustValidate(intensityInput(4, 4))

	first, err := Score(v)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Score(v)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRiskLevel_Escalate(t *testing.T) {
	assert.Equal(t, RiskModerateLow, RiskLow.Escalate())
	assert.Equal(t, RiskExtreme, RiskVeryHigh.Escalate())
	assert.Equal(t, RiskExtreme, RiskExtreme.Escalate())

	levels := RiskLevels()
	assert.Len(t, levels, 6)
	for _, l := range levels {
		assert.True(t, l.Valid())
	}
	assert.False(t, RiskLevel("CRITICO").Valid())
}

func TestWeightedScore(t *testing.T) {
	tests := []struct {
		name string
		raw  RawAssessmentInput
		want RiskLevel
	}{
		{
			// deathWish(1) + nonSpecific(2) + methods(3) + plan(5)
			name: "ideation branch",
			raw:  ideationInput(),
			want: RiskHigh,
		},
		{
			// actual(10) + preparatory(4) + lethality>=3(5) + potential==2(3)
			name: "behavior branch",
			raw:  behaviorInput(),
			want: RiskVeryHigh,
		},
		{
			name: "death wish only",
			raw:  deathWishOnlyInput(),
			want: RiskModerate,
		},
		{
			name: "nothing present",
			raw: RawAssessmentInput{
				DeathWish:                         indicator(false),
				NonSpecificActiveSuicidalThoughts: indicator(false),
				ActualAttempt:                     indicator(false),
				NonSuicidalSelfInjury:             indicator(false),
				UnknownIntentSelfInjury:           indicator(false),
				InterruptedAttempt:                indicator(false),
				AbortedAttempt:                    indicator(false),
				PreparatoryActs:                   indicator(false),
			},
			want: RiskLow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WeightedScore(mustValidate(tt.raw))

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScorerFor(t *testing.T) {
	v := mustValidate(intensityInput(5, 3))

	for _, name := range []string{"", StrategyIntensity} {
		score, err := ScorerFor(name)
		require.NoError(t, err)
		got, err := score(v)
		require.NoError(t, err)
		assert.Equal(t, RiskExtreme, got)
	}

	score, err := ScorerFor(StrategyWeighted)
	require.NoError(t, err)
	got, err := score(v)
	require.NoError(t, err)
	assert.Equal(t, RiskHigh, got)

	_, err = ScorerFor("random")
	assert.Error(t, err)
}

func TestNewScored(t *testing.T) {
	s, err := NewScored(mustValidate(intensityInput(3, 4)), Score)

	require.NoError(t, err)
	assert.Equal(t, RiskHigh, s.RiskLevel())
	assert.Equal(t, 3, s.Assessment().IdeationIntensity.MostSeriousIdeationType)
}
