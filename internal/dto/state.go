package dto

import "github.com/CanDlnd/pausetime/internal/model"

// ── 状态模块 DTO ──

// StateResponse 状态快照响应（桌面端每 5 秒轮询一次）
type StateResponse struct {
	Time            string `json:"time"`
	Vakit           string `json:"vakit"`
	Remaining       string `json:"remaining"`
	State           string `json:"state"`
	SchedulesActive int    `json:"schedules_active"`
	SchedulesTotal  int    `json:"schedules_total"`
}

// NewStateResponse 由状态快照构造响应
func NewStateResponse(s model.StateSnapshot) StateResponse {
	return StateResponse{
		Time:            s.Time,
		Vakit:           s.Vakit,
		Remaining:       s.Remaining,
		State:           s.State,
		SchedulesActive: s.SchedulesActive,
		SchedulesTotal:  s.SchedulesTotal,
	}
}

// ToggleStateRequest 系统开关请求
type ToggleStateRequest struct {
	Enabled *bool `json:"enabled"`
}

// ToggleStateResponse 系统开关响应
type ToggleStateResponse struct {
	Enabled bool `json:"enabled"`
}

// PrayerTimesResponse 当日礼拜时刻响应（仪表盘时间轴）
type PrayerTimesResponse struct {
	Times model.PrayerTimes `json:"times"`
}
