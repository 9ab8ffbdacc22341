package util

import (
	"errors"
	"fmt"
)

// ErrNotFound 资源不存在，控制器统一映射为 404
var ErrNotFound = errors.New("resource not found")

var (
	ErrAssessmentNotFound = fmt.Errorf("assessment: %w", ErrNotFound)
	ErrStudentNotFound    = fmt.Errorf("student: %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user: %w", ErrNotFound)
)

var (
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
)
