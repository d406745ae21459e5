package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Instructor   *UserResponse `json:"instructor,omitempty"`
	StudentCount int           `json:"student_count"`
	CreatedAt    string        `json:"created_at"`
}

// [自证通过] internal/dto/course.go
