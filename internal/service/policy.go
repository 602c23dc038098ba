package service

import "learnhub_backend/internal/model"

// AccessPolicy 业务授权检查，独立于路由层。
// 判断依据必须是本次操作内刚读到的数据，不允许跨操作缓存。
type AccessPolicy struct{}

// CanManageCourse 只有课程讲师本人可以管理课程及其练习
func (AccessPolicy) CanManageCourse(userID uint, course *model.Course) bool {
	return course.InstructorID == userID
}

// IsEnrolled 学生是否在课程的注册集合中
func (AccessPolicy) IsEnrolled(userID uint, course *model.Course) bool {
	for _, s := range course.EnrolledStudents {
		if s.ID == userID {
			return true
		}
	}
	return false
}
