package engine

import (
	"errors"
	"strings"
)

// ErrInvariantViolation 评分或投影收到了未经 Validate 的记录，属于调用方 bug
var ErrInvariantViolation = errors.New("engine: record was not produced by Validate")

// ValidationError 一条违反的规则
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors 一次校验收集到的全部违规
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Fields 返回违规字段路径，按规则顺序
func (es ValidationErrors) Fields() []string {
	fields := make([]string, len(es))
	for i, e := range es {
		fields[i] = e.Field
	}
	return fields
}
