package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Service *service.ProgressService
}

func NewProgressController(svc *service.ProgressService) *ProgressController {
	return &ProgressController{Service: svc}
}

// @Summary 我的全部课程进度
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/progress [get]
func (c *ProgressController) GetMyProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	records, err := c.Service.GetMyProgress(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// @Summary 我在某课程的进度
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/progress/courses/{courseId} [get]
func (c *ProgressController) GetMyCourseProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, ok := parseID(ctx, "courseId")
	if !ok {
		return
	}

	progress, err := c.Service.GetMyCourseProgress(user.UserID, courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 课程全部学生进度（讲师）
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{courseId}/progress [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, ok := parseID(ctx, "courseId")
	if !ok {
		return
	}

	records, err := c.Service.GetCourseProgress(user.UserID, courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// @Summary 标记主题完成
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param topicId path int true "主题ID"
// @Success 200 {object} util.Response
// @Router /api/progress/courses/{courseId}/topics/{topicId}/complete [post]
func (c *ProgressController) CompleteTopic(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, ok := parseID(ctx, "courseId")
	if !ok {
		return
	}
	topicID, ok := parseID(ctx, "topicId")
	if !ok {
		return
	}

	progress, already, err := c.Service.CompleteTopic(user.UserID, courseID, topicID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"progress":         progress,
		"alreadyCompleted": already,
	})
}

type GradeRequest struct {
	StudentID uint    `json:"studentId" binding:"required"`
	Score     float64 `json:"score" binding:"gte=0"`
}

// @Summary 人工评分（讲师）
// @Tags 进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param exerciseId path int true "练习ID"
// @Param body body GradeRequest true "评分信息"
// @Success 200 {object} util.Response
// @Router /api/instructor/exercises/{exerciseId}/grade [post]
func (c *ProgressController) Grade(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	exerciseID, ok := parseID(ctx, "exerciseId")
	if !ok {
		return
	}

	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.Service.Grade(user.UserID, exerciseID, req.StudentID, req.Score)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
