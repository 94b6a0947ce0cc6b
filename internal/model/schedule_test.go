package model

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

// at 构造 2025-03-10（周一）附近的测试时刻
func at(day int, hour, minute int) time.Time {
	return time.Date(2025, 3, day, hour, minute, 0, 0, time.UTC)
}

func TestScheduleIsActiveAt_Disabled(t *testing.T) {
	s := Schedule{PauseTime: "00:00", Enabled: false}
	if s.IsActiveAt(at(10, 12, 0)) {
		t.Error("禁用的计划不应生效")
	}
}

func TestScheduleIsActiveAt_DayFilter(t *testing.T) {
	// days=[0]（周一），2025-03-10 为周一，03-11 为周二
	s := Schedule{PauseTime: "00:00", ResumeTime: strPtr("23:59"), Days: []int{0}, Enabled: true}

	if !s.IsActiveAt(at(10, 12, 0)) {
		t.Error("周一应生效")
	}
	if s.IsActiveAt(at(11, 12, 0)) {
		t.Error("周二不应生效")
	}
}

func TestScheduleIsActiveAt_EmptyDaysMeansEveryDay(t *testing.T) {
	s := Schedule{PauseTime: "00:00", ResumeTime: strPtr("23:59"), Enabled: true}
	for day := 10; day <= 16; day++ {
		if !s.IsActiveAt(at(day, 12, 0)) {
			t.Errorf("days 为空时每天都应生效，day=%d", day)
		}
	}
}

func TestScheduleIsActiveAt_OverMidnight(t *testing.T) {
	s := Schedule{PauseTime: "23:00", ResumeTime: strPtr("09:00"), Enabled: true}

	if !s.IsActiveAt(at(10, 23, 30)) {
		t.Error("23:30 应生效")
	}
	if !s.IsActiveAt(at(10, 8, 0)) {
		t.Error("08:00 应生效")
	}
	if s.IsActiveAt(at(10, 12, 0)) {
		t.Error("12:00 不应生效")
	}
}

func TestScheduleIsActiveAt_OpenEnded(t *testing.T) {
	s := Schedule{PauseTime: "14:00", Enabled: true}

	if !s.IsActiveAt(at(10, 14, 1)) {
		t.Error("14:01 应生效")
	}
	if !s.IsActiveAt(at(10, 23, 59)) {
		t.Error("23:59 应保持生效")
	}
	if s.IsActiveAt(at(10, 13, 59)) {
		t.Error("13:59 不应生效")
	}
}

func TestWeekdayIndex(t *testing.T) {
	// 2025-03-10 为周一 ⇒ 0；2025-03-16 为周日 ⇒ 6
	if got := WeekdayIndex(at(10, 0, 0)); got != 0 {
		t.Errorf("周一期望索引 0，实际=%d", got)
	}
	if got := WeekdayIndex(at(16, 0, 0)); got != 6 {
		t.Errorf("周日期望索引 6，实际=%d", got)
	}
}
