package aladhan

import "github.com/CanDlnd/pausetime/internal/model"

// DefaultTimes 数据源不可用时的兜底时刻
// 仅供展示层使用，状态引擎不依赖此值（引擎降级为最近一次成功快照）
func DefaultTimes() model.PrayerTimes {
	return model.PrayerTimes{
		Fajr:    "06:00",
		Dhuhr:   "13:00",
		Asr:     "16:00",
		Maghrib: "19:00",
		Isha:    "20:30",
	}
}
