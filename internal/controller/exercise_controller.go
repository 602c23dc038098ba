package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	Service  *service.ExerciseService
	Progress *service.ProgressService
}

func NewExerciseController(svc *service.ExerciseService, progress *service.ProgressService) *ExerciseController {
	return &ExerciseController{Service: svc, Progress: progress}
}

// @Summary 课程练习列表
// @Tags 练习
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/exercises [get]
func (c *ExerciseController) ListByCourse(ctx *gin.Context) {
	courseID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	exercises, err := c.Service.ListByCourse(courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, exercises)
}

// @Summary 练习详情
// @Tags 练习
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "练习ID"
// @Success 200 {object} util.Response
// @Router /api/exercises/{id} [get]
func (c *ExerciseController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	exercise, err := c.Service.Get(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, exercise)
}

// @Summary 创建练习
// @Tags 练习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ExerciseRequest true "练习信息"
// @Success 201 {object} util.Response
// @Router /api/exercises [post]
func (c *ExerciseController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ExerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exercise, err := c.Service.Create(user.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, exercise)
}

// @Summary 更新练习
// @Tags 练习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "练习ID"
// @Param body body service.ExerciseRequest true "练习信息"
// @Success 200 {object} util.Response
// @Router /api/exercises/{id} [put]
func (c *ExerciseController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req service.ExerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exercise, err := c.Service.Update(user.UserID, id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, exercise)
}

// @Summary 删除练习
// @Tags 练习
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "练习ID"
// @Success 200 {object} util.Response
// @Router /api/exercises/{id} [delete]
func (c *ExerciseController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.Delete(user.UserID, id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type SubmitRequest struct {
	Answers []string `json:"answers" binding:"required,min=1"`
}

// @Summary 提交练习作答
// @Tags 练习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "练习ID"
// @Param body body SubmitRequest true "作答内容"
// @Success 200 {object} util.Response
// @Router /api/exercises/{id}/submit [post]
func (c *ExerciseController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Progress.Submit(user.UserID, id, req.Answers)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
