package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/CanDlnd/pausetime/internal/dto"
	"github.com/CanDlnd/pausetime/internal/service"
	"github.com/CanDlnd/pausetime/pkg/response"
)

// SettingsHandler 设置模块 HTTP 处理器
type SettingsHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHandler 创建 SettingsHandler
func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// GetSettings 获取当前设置
// GET /settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	response.OK(c, h.settingsSvc.Get())
}

// UpdateSettings 更新设置（部分字段）
// PUT /settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	settings, err := h.settingsSvc.Update(&req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.BadRequest(c, 12001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, settings)
}
