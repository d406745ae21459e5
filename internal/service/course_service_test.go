package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"classtrack/internal/dto"
	"classtrack/internal/model"
)

func setupTestCourseService() (CourseService, *mockRepoSet) {
	repo, set := newMockRepos()
	return NewCourseService(repo, zap.NewNop()), set
}

func createTestCourse(set *mockRepoSet, title, instructorID string) *model.Course {
	course := &model.Course{Title: title, InstructorID: instructorID}
	_ = set.courses.Create(context.Background(), course)
	return course
}

// ── 创建 / 删除 ──

func TestCourseCreate_Success(t *testing.T) {
	svc, set := setupTestCourseService()
	instructor := createTestUser(set, "prof", "password123", model.RoleInstructor)

	result, err := svc.Create(context.Background(), instructor.UserID, &dto.CreateCourseRequest{
		Title:       "操作系统",
		Description: "进程与内存管理",
	})

	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Title != "操作系统" {
		t.Errorf("期望 Title=操作系统，实际=%s", result.Title)
	}
	if set.courses.courses[result.ID].InstructorID != instructor.UserID {
		t.Error("课程应归属于创建教师")
	}
}

func TestCourseDelete_Owner(t *testing.T) {
	svc, set := setupTestCourseService()
	instructor := createTestUser(set, "prof", "password123", model.RoleInstructor)
	course := createTestCourse(set, "操作系统", instructor.UserID)

	if err := svc.Delete(context.Background(), course.CourseID, instructor.UserID); err != nil {
		t.Fatalf("归属教师删除应成功: %v", err)
	}
	if _, ok := set.courses.courses[course.CourseID]; ok {
		t.Error("课程应已被删除")
	}
}

func TestCourseDelete_NotOwner(t *testing.T) {
	svc, set := setupTestCourseService()
	owner := createTestUser(set, "prof", "password123", model.RoleInstructor)
	other := createTestUser(set, "prof2", "password123", model.RoleInstructor)
	course := createTestCourse(set, "操作系统", owner.UserID)

	err := svc.Delete(context.Background(), course.CourseID, other.UserID)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际: %v", err)
	}
}

func TestCourseDelete_NotFound(t *testing.T) {
	svc, set := setupTestCourseService()
	instructor := createTestUser(set, "prof", "password123", model.RoleInstructor)

	err := svc.Delete(context.Background(), "missing", instructor.UserID)
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

// ── 报名 / 退课 ──

func TestEnroll_NotifiesInstructor(t *testing.T) {
	svc, set := setupTestCourseService()
	instructor := createTestUser(set, "prof", "password123", model.RoleInstructor)
	student := createTestUser(set, "alice", "password123", model.RoleStudent)
	course := createTestCourse(set, "操作系统", instructor.UserID)

	if err := svc.Enroll(context.Background(), student.UserID, course.CourseID); err != nil {
		t.Fatalf("Enroll 应成功: %v", err)
	}

	notifications, _ := set.notifications.ListByUser(context.Background(), instructor.UserID)
	if len(notifications) != 1 {
		t.Fatalf("期望教师收到 1 条通知，实际=%d", len(notifications))
	}
	if notifications[0].Message != "alice 报名了课程《操作系统》" {
		t.Errorf("通知内容不符，实际=%s", notifications[0].Message)
	}
}

func TestEnroll_Idempotent(t *testing.T) {
	svc, set := setupTestCourseService()
	instructor := createTestUser(set, "prof", "password123", model.RoleInstructor)
	student := createTestUser(set, "alice", "password123", model.RoleStudent)
	course := createTestCourse(set, "操作系统", instructor.UserID)

	for i := 0; i < 3; i++ {
		if err := svc.Enroll(context.Background(), student.UserID, course.CourseID); err != nil {
			t.Fatalf("第 %d 次 Enroll 应成功: %v", i+1, err)
		}
	}

	roster, _ := set.courses.Roster(context.Background(), course.CourseID)
	if len(roster) != 1 {
		t.Errorf("重复报名后名册应只有 1 人，实际=%d", len(roster))
	}

	// 每次报名都会追加通知，通知不去重
	notifications, _ := set.notifications.ListByUser(context.Background(), instructor.UserID)
	if len(notifications) != 3 {
		t.Errorf("期望 3 条报名通知，实际=%d", len(notifications))
	}
}

func TestEnroll_CourseNotFound(t *testing.T) {
	svc, set := setupTestCourseService()
	student := createTestUser(set, "alice", "password123", model.RoleStudent)

	err := svc.Enroll(context.Background(), student.UserID, "missing")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

func TestUnenroll_Idempotent_NoNotification(t *testing.T) {
	svc, set := setupTestCourseService()
	instructor := createTestUser(set, "prof", "password123", model.RoleInstructor)
	student := createTestUser(set, "alice", "password123", model.RoleStudent)
	course := createTestCourse(set, "操作系统", instructor.UserID)

	if err := svc.Enroll(context.Background(), student.UserID, course.CourseID); err != nil {
		t.Fatalf("Enroll 应成功: %v", err)
	}
	before, _ := set.notifications.ListByUser(context.Background(), instructor.UserID)

	// 退课两次：第二次是 no-op，均应成功
	for i := 0; i < 2; i++ {
		if err := svc.Unenroll(context.Background(), student.UserID, course.CourseID); err != nil {
			t.Fatalf("第 %d 次 Unenroll 应成功: %v", i+1, err)
		}
	}

	roster, _ := set.courses.Roster(context.Background(), course.CourseID)
	if len(roster) != 0 {
		t.Errorf("退课后名册应为空，实际=%d", len(roster))
	}

	// 退课不产生新通知
	after, _ := set.notifications.ListByUser(context.Background(), instructor.UserID)
	if len(after) != len(before) {
		t.Errorf("退课不应产生通知，之前=%d 之后=%d", len(before), len(after))
	}
}

// ── 课程列表 ──

func TestListAvailable_ExcludesEnrolled(t *testing.T) {
	svc, set := setupTestCourseService()
	instructor := createTestUser(set, "prof", "password123", model.RoleInstructor)
	student := createTestUser(set, "alice", "password123", model.RoleStudent)
	enrolled := createTestCourse(set, "操作系统", instructor.UserID)
	createTestCourse(set, "编译原理", instructor.UserID)

	if err := svc.Enroll(context.Background(), student.UserID, enrolled.CourseID); err != nil {
		t.Fatalf("Enroll 应成功: %v", err)
	}

	available, err := svc.ListAvailable(context.Background(), student.UserID)
	if err != nil {
		t.Fatalf("ListAvailable 应成功: %v", err)
	}
	if len(available) != 1 {
		t.Fatalf("期望 1 门可报名课程，实际=%d", len(available))
	}
	if available[0].Title != "编译原理" {
		t.Errorf("期望可报名课程为编译原理，实际=%s", available[0].Title)
	}
}

func TestListEnrolled(t *testing.T) {
	svc, set := setupTestCourseService()
	instructor := createTestUser(set, "prof", "password123", model.RoleInstructor)
	student := createTestUser(set, "alice", "password123", model.RoleStudent)
	course := createTestCourse(set, "操作系统", instructor.UserID)
	createTestCourse(set, "编译原理", instructor.UserID)

	if err := svc.Enroll(context.Background(), student.UserID, course.CourseID); err != nil {
		t.Fatalf("Enroll 应成功: %v", err)
	}

	enrolled, err := svc.ListEnrolled(context.Background(), student.UserID)
	if err != nil {
		t.Fatalf("ListEnrolled 应成功: %v", err)
	}
	if len(enrolled) != 1 || enrolled[0].Title != "操作系统" {
		t.Errorf("期望已报名课程为操作系统，实际=%+v", enrolled)
	}
}

// ── 名册 ──

func TestRoster_Owner(t *testing.T) {
	svc, set := setupTestCourseService()
	instructor := createTestUser(set, "prof", "password123", model.RoleInstructor)
	bob := createTestUser(set, "bob", "password123", model.RoleStudent)
	alice := createTestUser(set, "alice", "password123", model.RoleStudent)
	course := createTestCourse(set, "操作系统", instructor.UserID)

	_ = svc.Enroll(context.Background(), bob.UserID, course.CourseID)
	_ = svc.Enroll(context.Background(), alice.UserID, course.CourseID)

	roster, err := svc.Roster(context.Background(), course.CourseID, instructor.UserID)
	if err != nil {
		t.Fatalf("Roster 应成功: %v", err)
	}
	if len(roster) != 2 {
		t.Fatalf("期望名册 2 人，实际=%d", len(roster))
	}
	// 按用户名升序
	if roster[0].Username != "alice" || roster[1].Username != "bob" {
		t.Errorf("名册应按用户名升序，实际=[%s, %s]", roster[0].Username, roster[1].Username)
	}
}

func TestRoster_NotOwner(t *testing.T) {
	svc, set := setupTestCourseService()
	owner := createTestUser(set, "prof", "password123", model.RoleInstructor)
	other := createTestUser(set, "prof2", "password123", model.RoleInstructor)
	course := createTestCourse(set, "操作系统", owner.UserID)

	_, err := svc.Roster(context.Background(), course.CourseID, other.UserID)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际: %v", err)
	}
}

// [自证通过] internal/service/course_service_test.go
