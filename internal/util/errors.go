package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrPermissionDenied = errors.New("permission denied")

	ErrCourseNotFound   = errors.New("course not found")
	ErrTopicNotFound    = errors.New("topic not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrProgressNotFound = errors.New("progress not found")
	ErrAttemptNotFound  = errors.New("exercise attempt not found")

	ErrNotEnrolled     = errors.New("not enrolled in this course")
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")

	ErrValidation = errors.New("validation failed")

	// 进度记录乐观锁冲突，工作流重试后仍失败时向上抛出
	ErrProgressConflict = errors.New("progress record was modified concurrently")
)
