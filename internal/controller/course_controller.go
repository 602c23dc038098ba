package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Service *service.CatalogService
}

func NewCourseController(svc *service.CatalogService) *CourseController {
	return &CourseController{Service: svc}
}

// parseID 解析路径中的数字 ID，非法时返回 0 和 false（已写响应）
func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		util.BadRequest(ctx, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return uint(id), true
}

// @Summary 课程列表
// @Tags 课程
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.Service.ListCourses()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary 课程详情
// @Tags 课程
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	course, err := c.Service.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 创建课程
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CourseRequest true "课程信息"
// @Success 201 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Service.CreateCourse(user.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary 更新课程
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body service.CourseRequest true "课程信息"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Service.UpdateCourse(ctx.Request.Context(), user.UserID, id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 删除课程
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.DeleteCourse(ctx.Request.Context(), user.UserID, id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 添加课程主题
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body service.TopicRequest true "主题信息"
// @Success 201 {object} util.Response
// @Router /api/courses/{id}/topics [post]
func (c *CourseController) AddTopic(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req service.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic, err := c.Service.AddTopic(ctx.Request.Context(), user.UserID, id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, topic)
}

// @Summary 上传主题视频
// @Tags 课程
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param topicId path int true "主题ID"
// @Param video formData file true "视频文件"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/topics/{topicId}/video [post]
func (c *CourseController) UploadTopicVideo(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	topicID, ok := parseID(ctx, "topicId")
	if !ok {
		return
	}

	file, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	// 先落到临时目录，探测元数据后再进对象存储
	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("upload_%d_%s", topicID, filepath.Base(file.Filename)))
	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	contentType := file.Header.Get("Content-Type")
	topic, err := c.Service.UploadTopicVideo(ctx.Request.Context(), user.UserID, courseID, topicID, tmpPath, contentType)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

// @Summary 注册课程
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.Enroll(ctx.Request.Context(), user.UserID, id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"courseId": id})
}
