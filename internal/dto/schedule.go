package dto

import "github.com/CanDlnd/pausetime/internal/model"

// ── 暂停计划模块 DTO ──

// CreateScheduleRequest 新建计划请求
type CreateScheduleRequest struct {
	PauseTime  string  `json:"pause_time" binding:"required"`
	ResumeTime *string `json:"resume_time"`
	Days       []int   `json:"days"`
	Label      string  `json:"label"`
}

// UpdateScheduleRequest 更新计划请求（部分字段语义：仅更新出现的字段）
// ResumeTime 传空字符串表示清除恢复时间（改为不限时）
type UpdateScheduleRequest struct {
	PauseTime  *string `json:"pause_time"`
	ResumeTime *string `json:"resume_time"`
	Days       *[]int  `json:"days"`
	Label      *string `json:"label"`
	Enabled    *bool   `json:"enabled"`
}

// ScheduleResponse 计划信息响应
type ScheduleResponse struct {
	ID          int64    `json:"id"`
	PauseTime   string   `json:"pause_time"`
	ResumeTime  *string  `json:"resume_time"`
	Days        []int    `json:"days"`
	DayNames    []string `json:"day_names"`
	Label       string   `json:"label"`
	Enabled     bool     `json:"enabled"`
	IsActiveNow bool     `json:"is_active_now"`
}

// ScheduleListResponse 计划列表响应
type ScheduleListResponse struct {
	Schedules      []ScheduleResponse `json:"schedules"`
	CurrentDay     int                `json:"current_day"`
	CurrentDayName string             `json:"current_day_name"`
}

// NewScheduleResponse 由领域模型构造响应
func NewScheduleResponse(s *model.Schedule, activeNow bool) ScheduleResponse {
	dayNames := make([]string, 0, len(s.Days))
	for _, d := range s.Days {
		dayNames = append(dayNames, model.DayNames[d])
	}
	return ScheduleResponse{
		ID:          s.ID,
		PauseTime:   s.PauseTime,
		ResumeTime:  s.ResumeTime,
		Days:        s.Days,
		DayNames:    dayNames,
		Label:       s.Label,
		Enabled:     s.Enabled,
		IsActiveNow: activeNow,
	}
}
