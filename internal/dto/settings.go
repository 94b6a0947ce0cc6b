package dto

import "github.com/CanDlnd/pausetime/internal/model"

// ── 设置模块 DTO ──

// UpdateSettingsRequest 更新设置请求（部分字段语义）
type UpdateSettingsRequest struct {
	City                 *string `json:"city"`
	CalculationMethod    *string `json:"calculation_method"`
	LaunchOnStartup      *bool   `json:"launch_on_startup"`
	StartMinimizedToTray *bool   `json:"start_minimized_to_tray"`
	CloseToTray          *bool   `json:"close_to_tray"`
}

// SettingsResponse 设置信息响应
type SettingsResponse struct {
	City                 string `json:"city"`
	CalculationMethod    string `json:"calculation_method"`
	LaunchOnStartup      bool   `json:"launch_on_startup"`
	StartMinimizedToTray bool   `json:"start_minimized_to_tray"`
	CloseToTray          bool   `json:"close_to_tray"`
}

// NewSettingsResponse 由领域模型构造响应
func NewSettingsResponse(s model.Settings) SettingsResponse {
	return SettingsResponse{
		City:                 s.City,
		CalculationMethod:    s.CalculationMethod,
		LaunchOnStartup:      s.LaunchOnStartup,
		StartMinimizedToTray: s.StartMinimizedToTray,
		CloseToTray:          s.CloseToTray,
	}
}
