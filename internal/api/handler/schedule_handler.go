package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CanDlnd/pausetime/internal/dto"
	"github.com/CanDlnd/pausetime/internal/service"
	"github.com/CanDlnd/pausetime/pkg/response"
)

// ScheduleHandler 暂停计划模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// ListSchedules 列出所有计划
// GET /api/schedules
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	response.OK(c, h.scheduleSvc.List())
}

// CreateSchedule 新建计划
// POST /api/schedules
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败: pause_time 为必填字段")
		return
	}

	schedule, err := h.scheduleSvc.Create(&req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, schedule)
}

// UpdateSchedule 更新计划（启用开关、时间修改等）
// PUT /api/schedules/:id
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, 10001, "计划 id 必须为整数")
		return
	}

	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	schedule, err := h.scheduleSvc.Update(id, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// DeleteSchedule 删除计划
// DELETE /api/schedules/:id
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, 10001, "计划 id 必须为整数")
		return
	}

	if err := h.scheduleSvc.Delete(id); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleScheduleError 统一处理计划模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		response.BadRequest(c, 11001, err.Error())
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 11002, "未找到指定的计划")
	default:
		response.InternalError(c)
	}
}
