package service

import (
	"context"
	"encoding/json"
	"fmt"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"path/filepath"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const courseCacheKeyPrefix = "course:detail:"

// CatalogService 课程目录：课程、主题序列、注册学生集合
type CatalogService struct {
	Courses  CourseStore
	Policy   AccessPolicy
	Storage  *StorageService
	Redis    *redis.Client
	CacheTTL time.Duration
}

func NewCatalogService(courses CourseStore, storage *StorageService, rdb *redis.Client, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{
		Courses:  courses,
		Storage:  storage,
		Redis:    rdb,
		CacheTTL: cacheTTL,
	}
}

type CourseRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Level       model.CourseLevel `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Duration    int               `json:"duration" binding:"gte=0"`
}

type TopicRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
}

func (s *CatalogService) ListCourses() ([]model.Course, error) {
	courses, err := s.Courses.FindAll()
	if err != nil {
		return nil, err
	}
	// 列表不暴露注册学生集合
	for i := range courses {
		courses[i].EnrolledStudents = nil
	}
	return courses, nil
}

func (s *CatalogService) GetCourse(ctx context.Context, id uint) (*model.Course, error) {
	if cached := s.cacheGet(ctx, id); cached != nil {
		return cached, nil
	}

	course, err := s.Courses.FindByIDDetailed(id)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, course)
	return course, nil
}

func (s *CatalogService) CreateCourse(instructorID uint, req CourseRequest) (*model.Course, error) {
	level := req.Level
	if level == "" {
		level = model.LevelBeginner
	}

	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: instructorID,
		Level:        level,
		Duration:     req.Duration,
	}
	if err := s.Courses.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CatalogService) UpdateCourse(ctx context.Context, userID, courseID uint, req CourseRequest) (*model.Course, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !s.Policy.CanManageCourse(userID, course) {
		return nil, util.ErrPermissionDenied
	}

	// InstructorID 不随更新变化
	course.Title = req.Title
	course.Description = req.Description
	if req.Level != "" {
		course.Level = req.Level
	}
	course.Duration = req.Duration

	if err := s.Courses.Update(course); err != nil {
		return nil, err
	}
	s.cacheInvalidate(ctx, courseID)
	return course, nil
}

func (s *CatalogService) DeleteCourse(ctx context.Context, userID, courseID uint) error {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		return err
	}
	if !s.Policy.CanManageCourse(userID, course) {
		return util.ErrPermissionDenied
	}

	if err := s.Courses.Delete(courseID); err != nil {
		return err
	}
	s.cacheInvalidate(ctx, courseID)
	return nil
}

func (s *CatalogService) AddTopic(ctx context.Context, userID, courseID uint, req TopicRequest) (*model.Topic, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !s.Policy.CanManageCourse(userID, course) {
		return nil, util.ErrPermissionDenied
	}

	topic := &model.Topic{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		Position:    len(course.Topics),
	}
	if err := s.Courses.AddTopic(courseID, topic); err != nil {
		return nil, err
	}
	s.cacheInvalidate(ctx, courseID)
	return topic, nil
}

// UploadTopicVideo 上传主题视频：探测元数据后存入对象存储，再回写主题
func (s *CatalogService) UploadTopicVideo(ctx context.Context, userID, courseID, topicID uint, localPath, contentType string) (*model.Topic, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !s.Policy.CanManageCourse(userID, course) {
		return nil, util.ErrPermissionDenied
	}

	var topic *model.Topic
	for i := range course.Topics {
		if course.Topics[i].ID == topicID {
			topic = &course.Topics[i]
			break
		}
	}
	if topic == nil {
		return nil, util.ErrTopicNotFound
	}

	info, err := util.ProbeVideo(localPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrValidation, err)
	}

	objectName := fmt.Sprintf("videos/%d/%s%s", courseID, model.GenerateUUID(), filepath.Ext(localPath))
	url, err := s.Storage.UploadFile(ctx, objectName, localPath, contentType)
	if err != nil {
		return nil, err
	}

	topic.VideoURL = url
	topic.VideoDuration = info.Duration
	if err := s.Courses.UpdateTopic(topic); err != nil {
		return nil, err
	}
	s.cacheInvalidate(ctx, courseID)
	return topic, nil
}

// Enroll 注册课程。重复注册返回 ErrAlreadyEnrolled，注册本身不创建进度记录。
func (s *CatalogService) Enroll(ctx context.Context, studentID, courseID uint) error {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		return err
	}
	if s.Policy.IsEnrolled(studentID, course) {
		return util.ErrAlreadyEnrolled
	}

	if err := s.Courses.AddEnrollment(courseID, studentID); err != nil {
		return err
	}
	s.cacheInvalidate(ctx, courseID)
	return nil
}

func (s *CatalogService) cacheGet(ctx context.Context, id uint) *model.Course {
	if s.Redis == nil {
		return nil
	}
	val, err := s.Redis.Get(ctx, fmt.Sprintf("%s%d", courseCacheKeyPrefix, id)).Result()
	if err != nil {
		return nil
	}
	var course model.Course
	if err := json.Unmarshal([]byte(val), &course); err != nil {
		return nil
	}
	return &course
}

func (s *CatalogService) cacheSet(ctx context.Context, course *model.Course) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(course)
	if err != nil {
		return
	}
	key := fmt.Sprintf("%s%d", courseCacheKeyPrefix, course.ID)
	if err := s.Redis.Set(ctx, key, data, s.CacheTTL).Err(); err != nil {
		logger.Log.Warn("course cache set failed", zap.Uint("courseId", course.ID), zap.Error(err))
	}
}

func (s *CatalogService) cacheInvalidate(ctx context.Context, id uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(ctx, fmt.Sprintf("%s%d", courseCacheKeyPrefix, id))
}
