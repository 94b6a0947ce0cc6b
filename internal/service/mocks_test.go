package service

import (
	"context"
	"errors"
	"time"

	"github.com/CanDlnd/pausetime/internal/model"
	"github.com/CanDlnd/pausetime/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Mock Repositories
// ═══════════════════════════════════════════════════════════

type mockScheduleRepo struct {
	schedules []model.Schedule
	nextID    int64
	saveCalls int
	saveErr   error
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{nextID: 1}
}

func (m *mockScheduleRepo) Load() ([]model.Schedule, int64, error) {
	return m.schedules, m.nextID, nil
}

func (m *mockScheduleRepo) Save(schedules []model.Schedule, nextID int64) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saveCalls++
	m.schedules = append([]model.Schedule(nil), schedules...)
	m.nextID = nextID
	return nil
}

type mockSettingsRepo struct {
	settings model.Settings
	saveErr  error
	saved    int
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{settings: model.DefaultSettings()}
}

func (m *mockSettingsRepo) Load() (model.Settings, error) {
	return m.settings, nil
}

func (m *mockSettingsRepo) Save(settings model.Settings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved++
	m.settings = settings
	return nil
}

func newTestRepository(scheduleRepo *mockScheduleRepo, settingsRepo *mockSettingsRepo) *repository.Repository {
	return &repository.Repository{
		Schedule: scheduleRepo,
		Settings: settingsRepo,
	}
}

// ═══════════════════════════════════════════════════════════
// Mock PrayerTimeSource
// ═══════════════════════════════════════════════════════════

// mockSource 按日期的“日”区分今日与明日的时刻表
type mockSource struct {
	baseDay  int
	today    *model.PrayerTimes
	tomorrow *model.PrayerTimes
	err      error
	calls    int
	flushes  int
}

func (m *mockSource) Timings(_ context.Context, _ string, _ int, date time.Time) (*model.PrayerTimes, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if date.Day() == m.baseDay {
		if m.today == nil {
			return nil, errors.New("数据源不可用")
		}
		return m.today, nil
	}
	if m.tomorrow == nil {
		return nil, errors.New("明日数据不可用")
	}
	return m.tomorrow, nil
}

func (m *mockSource) FlushCache() {
	m.flushes++
}

// sampleTimes 测试用的五个时刻
func sampleTimes() *model.PrayerTimes {
	return &model.PrayerTimes{
		Fajr:    "06:00",
		Dhuhr:   "13:00",
		Asr:     "16:00",
		Maghrib: "19:00",
		Isha:    "20:30",
	}
}
