package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/CanDlnd/pausetime/config"
	"github.com/CanDlnd/pausetime/internal/dto"
	"github.com/CanDlnd/pausetime/internal/model"
)

// PrayerTimeSource 礼拜时刻数据源（外部协作方，调用可能失败）
type PrayerTimeSource interface {
	Timings(ctx context.Context, city string, method int, date time.Time) (*model.PrayerTimes, error)
}

// StateService 状态引擎业务接口
//
// 设计说明：
//   - 电平触发：每次调用从零推导，四个状态互斥，无转移表
//   - 优先级：DISABLED > MANUAL_PAUSE > PAUSING > ACTIVE
//   - 上游失败时降级返回最近一次成功的快照，状态查询永不报错
type StateService interface {
	// Current 计算当前状态快照（桌面端每 5 秒轮询一次）
	Current(ctx context.Context) *dto.StateResponse
	// Toggle 切换系统总开关
	Toggle(req *dto.ToggleStateRequest) *dto.ToggleStateResponse
	// PrayerTimes 当日五个礼拜时刻（仪表盘时间轴）
	PrayerTimes(ctx context.Context) (*dto.PrayerTimesResponse, error)
}

type stateService struct {
	source    PrayerTimeSource
	schedules ScheduleService
	settings  SettingsService
	logger    *zap.Logger
	loc       *time.Location
	now       func() time.Time

	preOffsetSeconds int
	durationSeconds  int

	mu      sync.Mutex
	enabled bool
	last    model.StateSnapshot
}

// NewStateService 创建 StateService 实例
func NewStateService(
	cfg *config.Config,
	source PrayerTimeSource,
	schedules ScheduleService,
	settings SettingsService,
	loc *time.Location,
	logger *zap.Logger,
) StateService {
	return &stateService{
		source:           source,
		schedules:        schedules,
		settings:         settings,
		logger:           logger,
		loc:              loc,
		now:              time.Now,
		preOffsetSeconds: cfg.Pause.PreOffsetSeconds,
		durationSeconds:  cfg.Pause.DurationSeconds,
		enabled:          true,
		last: model.StateSnapshot{
			Time:      "--:--",
			Vakit:     "Bilinmiyor",
			Remaining: "---",
			State:     model.StateActive,
		},
	}
}

// ────────────────────── Current ──────────────────────

func (s *stateService) Current(ctx context.Context) *dto.StateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	// DISABLED 优先级最高，上游失败时同样适用
	if !s.enabled {
		snapshot := s.last
		snapshot.State = model.StateDisabled
		resp := dto.NewStateResponse(snapshot)
		return &resp
	}

	now := s.now().In(s.loc)
	prefs := s.settings.Current()

	times, err := s.source.Timings(ctx, prefs.City, prefs.MethodCode(), now)
	if err != nil {
		s.logger.Error("获取礼拜时刻失败，返回最近快照", zap.Error(err))
		resp := dto.NewStateResponse(s.last)
		return &resp
	}

	events, err := times.Events()
	if err != nil {
		s.logger.Error("礼拜时刻数据异常，返回最近快照", zap.Error(err))
		resp := dto.NewStateResponse(s.last)
		return &resp
	}

	state := s.resolveBand(events, now)

	// 计划窗口优先级高于礼拜暂停
	if s.schedules.AnyActive(now) {
		state = model.StateManualPause
	}

	vakit, remaining := s.nextVakit(ctx, &prefs, events, now)
	active, total := s.schedules.Counts(now)

	s.last = model.StateSnapshot{
		Time:            now.Format("15:04"),
		Vakit:           vakit,
		Remaining:       remaining,
		State:           state,
		SchedulesActive: active,
		SchedulesTotal:  total,
	}

	resp := dto.NewStateResponse(s.last)
	return &resp
}

// resolveBand 扫描五个礼拜时刻的暂停区间，返回 PAUSING 或 ACTIVE
//
// 区间为 [event-preOffset, event-preOffset+duration)，按规范顺序首个命中生效。
// 区间可能越过当日边界：起点为负表示从前一天延入，终点超过 86400 表示延入下一天，
// 两种情况都要同时对照原始秒数与折算后的秒数判定。
func (s *stateService) resolveBand(events []model.PrayerEvent, now time.Time) string {
	currentSeconds := now.Hour()*3600 + now.Minute()*60 + now.Second()

	for _, event := range events {
		bandStart := event.Seconds - s.preOffsetSeconds
		bandEnd := bandStart + s.durationSeconds

		switch {
		case bandStart >= 0 && bandEnd <= model.SecondsPerDay:
			if currentSeconds >= bandStart && currentSeconds < bandEnd {
				return model.StatePausing
			}
		case bandStart < 0:
			// 起点延入前一天
			if currentSeconds >= bandStart+model.SecondsPerDay || currentSeconds < bandEnd {
				return model.StatePausing
			}
		default:
			// 终点延入下一天
			if currentSeconds >= bandStart || currentSeconds < bandEnd-model.SecondsPerDay {
				return model.StatePausing
			}
		}
	}
	return model.StateActive
}

// nextVakit 寻找下一个礼拜时刻及剩余时间文案
//
// 当日已无剩余时刻时，下一个为明日 İmsak：优先向数据源请求明日时刻表；
// 请求失败则以今日 İmsak 的分钟值近似（已记录日志的降级策略，而非静默复用）。
func (s *stateService) nextVakit(ctx context.Context, prefs *model.Settings, events []model.PrayerEvent, now time.Time) (string, string) {
	currentMinutes := now.Hour()*60 + now.Minute()

	for _, event := range events {
		eventMinutes := event.Seconds / 60
		if eventMinutes > currentMinutes {
			return model.VakitNames[event.Key], model.FormatRemaining(eventMinutes - currentMinutes)
		}
	}

	// 明日 İmsak
	fajrMinutes := events[0].Seconds / 60
	if tomorrow, err := s.source.Timings(ctx, prefs.City, prefs.MethodCode(), now.AddDate(0, 0, 1)); err == nil {
		if m, err := model.ParseClock(tomorrow.Fajr); err == nil {
			fajrMinutes = m
		}
	} else {
		s.logger.Debug("获取明日时刻失败，以今日 İmsak 近似", zap.Error(err))
	}

	remaining := (model.MinutesPerDay - currentMinutes) + fajrMinutes
	return model.VakitNames["Fajr"], model.FormatRemaining(remaining)
}

// ────────────────────── Toggle ──────────────────────

func (s *stateService) Toggle(req *dto.ToggleStateRequest) *dto.ToggleStateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Enabled != nil {
		s.enabled = *req.Enabled
		s.logger.Info("系统开关已切换", zap.Bool("enabled", s.enabled))
	}
	return &dto.ToggleStateResponse{Enabled: s.enabled}
}

// ────────────────────── PrayerTimes ──────────────────────

func (s *stateService) PrayerTimes(ctx context.Context) (*dto.PrayerTimesResponse, error) {
	now := s.now().In(s.loc)
	prefs := s.settings.Current()

	times, err := s.source.Timings(ctx, prefs.City, prefs.MethodCode(), now)
	if err != nil {
		return nil, err
	}
	return &dto.PrayerTimesResponse{Times: *times}, nil
}
