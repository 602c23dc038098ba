package controller

import (
	"errors"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError 把业务错误翻译成 HTTP 响应
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrTopicNotFound),
		errors.Is(err, util.ErrExerciseNotFound),
		errors.Is(err, util.ErrProgressNotFound),
		errors.Is(err, util.ErrAttemptNotFound),
		errors.Is(err, util.ErrUserNotFound):
		util.NotFound(c, err.Error())
	case errors.Is(err, util.ErrPermissionDenied),
		errors.Is(err, util.ErrNotEnrolled):
		util.Forbidden(c, err.Error())
	case errors.Is(err, util.ErrAlreadyEnrolled),
		errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrValidation):
		util.BadRequest(c, err.Error())
	case errors.Is(err, util.ErrProgressConflict):
		util.Conflict(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}
