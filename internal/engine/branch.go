package engine

// BaseFlags 两个基础意念问题（deathWish、nonSpecificActiveSuicidalThoughts）的回答，nil 表示未回答。
// 校验器和报告投影都只通过下面三个谓词判断分支，保证两边的取舍一致。
type BaseFlags struct {
	DeathWish   *bool
	NonSpecific *bool
}

// IsIdeationDetailActive 意念细节分支：方法/意图/计划三项必填，报告中展示细节
func IsIdeationDetailActive(f BaseFlags) bool {
	return isTrue(f.NonSpecific)
}

// IsIntensityRequired 任一基础回答为"是"时意念强度必填
func IsIntensityRequired(f BaseFlags) bool {
	return isTrue(f.DeathWish) || isTrue(f.NonSpecific)
}

// IsBehaviorBranchActive 行为分支：两个基础回答都明确为"否"
func IsBehaviorBranchActive(f BaseFlags) bool {
	return isFalse(f.DeathWish) && isFalse(f.NonSpecific)
}

// Flags 返回原始输入中的基础回答
func (r RawAssessmentInput) Flags() BaseFlags {
	return BaseFlags{
		DeathWish:   presentOf(r.DeathWish),
		NonSpecific: presentOf(r.NonSpecificActiveSuicidalThoughts),
	}
}
