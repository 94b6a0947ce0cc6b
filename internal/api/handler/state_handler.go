package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/CanDlnd/pausetime/internal/dto"
	"github.com/CanDlnd/pausetime/internal/service"
	"github.com/CanDlnd/pausetime/pkg/aladhan"
	"github.com/CanDlnd/pausetime/pkg/response"
)

// StateHandler 状态模块 HTTP 处理器
type StateHandler struct {
	stateSvc service.StateService
}

// NewStateHandler 创建 StateHandler
func NewStateHandler(stateSvc service.StateService) *StateHandler {
	return &StateHandler{stateSvc: stateSvc}
}

// GetState 当前状态快照
// GET /state
// 状态查询永不报错：上游失败时 Service 层已降级为最近快照
func (h *StateHandler) GetState(c *gin.Context) {
	response.OK(c, h.stateSvc.Current(c.Request.Context()))
}

// ToggleState 切换系统总开关
// POST /state/toggle
func (h *StateHandler) ToggleState(c *gin.Context) {
	var req dto.ToggleStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	response.OK(c, h.stateSvc.Toggle(&req))
}

// GetPrayerTimes 当日礼拜时刻
// GET /api/prayer-times
// 数据源不可用时以兜底时刻响应，保证仪表盘时间轴始终可渲染
func (h *StateHandler) GetPrayerTimes(c *gin.Context) {
	times, err := h.stateSvc.PrayerTimes(c.Request.Context())
	if err != nil {
		response.OK(c, dto.PrayerTimesResponse{Times: aladhan.DefaultTimes()})
		return
	}

	response.OK(c, times)
}
