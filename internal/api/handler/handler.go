package handler

import "github.com/CanDlnd/pausetime/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	State    *StateHandler
	Schedule *ScheduleHandler
	Settings *SettingsHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		State:    NewStateHandler(svc.State),
		Schedule: NewScheduleHandler(svc.Schedule),
		Settings: NewSettingsHandler(svc.Settings),
		Export:   NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
