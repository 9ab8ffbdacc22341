package engine

import "fmt"

// RiskLevel 风险等级
type RiskLevel string

const (
	RiskLow         RiskLevel = "BAJO"
	RiskModerateLow RiskLevel = "MODERADO-BAJO"
	RiskModerate    RiskLevel = "MODERADO"
	RiskHigh        RiskLevel = "ALTO"
	RiskVeryHigh    RiskLevel = "MUY_ALTO"
	// RiskExtreme 对最高等级再升级一次得到的终止标签
	RiskExtreme RiskLevel = "EXTREMO"
)

// tierOrder 全序，升级沿此顺序走一步
var tierOrder = []RiskLevel{RiskLow, RiskModerateLow, RiskModerate, RiskHigh, RiskVeryHigh, RiskExtreme}

// baseTiers mostSeriousIdeationType 1..5 → 基础等级
var baseTiers = map[int]RiskLevel{
	1: RiskLow,
	2: RiskModerateLow,
	3: RiskModerate,
	4: RiskHigh,
	5: RiskVeryHigh,
}

// RiskLevels 返回全部等级，按严重程度升序
func RiskLevels() []RiskLevel {
	out := make([]RiskLevel, len(tierOrder))
	copy(out, tierOrder)
	return out
}

// Escalate 返回高一级的等级；EXTREMO 是终点
func (r RiskLevel) Escalate() RiskLevel {
	for i, t := range tierOrder {
		if t == r && i+1 < len(tierOrder) {
			return tierOrder[i+1]
		}
	}
	return RiskExtreme
}

func (r RiskLevel) Valid() bool {
	for _, t := range tierOrder {
		if t == r {
			return true
		}
	}
	return false
}

// ScoreFunc 评分策略
type ScoreFunc func(ValidAssessment) (RiskLevel, error)

const (
	StrategyIntensity = "intensity"
	StrategyWeighted  = "weighted"
)

// ScorerFor 按配置名称返回评分策略
func ScorerFor(name string) (ScoreFunc, error) {
	switch name {
	case "", StrategyIntensity:
		return Score, nil
	case StrategyWeighted:
		return WeightedScore, nil
	default:
		return nil, fmt.Errorf("unknown scoring strategy %q", name)
	}
}

// Score 强度驱动策略：最严重意念类型给出基础等级，高频（3、4）再升一级
func Score(v ValidAssessment) (RiskLevel, error) {
	if !v.verified {
		return "", ErrInvariantViolation
	}

	in := v.a.IdeationIntensity
	if in == nil {
		return RiskLow, nil
	}

	base, ok := baseTiers[in.MostSeriousIdeationType]
	if !ok {
		return "", fmt.Errorf("%w: mostSeriousIdeationType %d", ErrInvariantViolation, in.MostSeriousIdeationType)
	}
	if in.Frequency == 3 || in.Frequency == 4 {
		return base.Escalate(), nil
	}
	return base, nil
}

// 加权策略的分值
const (
	weightDeathWish          = 1
	weightNonSpecific        = 2
	weightMethods            = 3
	weightIntent             = 4
	weightPlan               = 5
	weightActualAttempt      = 10
	weightInterruptedAttempt = 8
	weightAbortedAttempt     = 6
	weightPreparatoryActs    = 4
	weightHighLethality      = 5
	weightPotentialLethality = 3
)

// WeightedScore 加权累加策略，与强度驱动策略对同一输入可能给出不同结果
func WeightedScore(v ValidAssessment) (RiskLevel, error) {
	if !v.verified {
		return "", ErrInvariantViolation
	}
	a := v.a

	score := 0
	add := func(present bool, w int) {
		if present {
			score += w
		}
	}
	add(a.DeathWish.Present, weightDeathWish)
	add(a.NonSpecificActiveSuicidalThoughts.Present, weightNonSpecific)
	add(a.ActiveSuicidalIdeationWithMethods.Present, weightMethods)
	add(a.ActiveSuicidalIdeationWithIntent.Present, weightIntent)
	add(a.ActiveSuicidalIdeationWithPlan.Present, weightPlan)
	add(a.ActualAttempt.Present, weightActualAttempt)
	add(a.InterruptedAttempt.Present, weightInterruptedAttempt)
	add(a.AbortedAttempt.Present, weightAbortedAttempt)
	add(a.PreparatoryActs.Present, weightPreparatoryActs)
	add(a.LethalityDegree >= 3, weightHighLethality)
	add(a.PotentialLethality != nil && *a.PotentialLethality == 2, weightPotentialLethality)

	switch {
	case score == 0:
		return RiskLow, nil
	case score <= 5:
		return RiskModerate, nil
	case score <= 15:
		return RiskHigh, nil
	default:
		return RiskVeryHigh, nil
	}
}
