package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/CanDlnd/pausetime/internal/dto"
	"github.com/CanDlnd/pausetime/internal/model"
	"github.com/CanDlnd/pausetime/internal/repository"
)

// ── 暂停计划模块业务错误 ──

var (
	// ErrValidation 参数校验失败，错误信息中注明具体字段
	ErrValidation = errors.New("参数校验失败")
	// ErrScheduleNotFound 指定 id 的计划不存在
	ErrScheduleNotFound = errors.New("未找到指定的计划")
)

// ScheduleService 暂停计划业务接口
// 独占持有计划列表与 id 计数器；id 单调分配，删除后不复用
type ScheduleService interface {
	Create(req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	Update(id int64, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	Delete(id int64) error
	List() *dto.ScheduleListResponse
	// AnyActive 是否有任一计划在给定时刻生效（MANUAL_PAUSE 判定依据）
	AnyActive(now time.Time) bool
	// Counts 给定时刻生效的计划数与计划总数
	Counts(now time.Time) (active, total int)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time

	mu        sync.Mutex
	schedules []model.Schedule
	nextID    int64
}

// NewScheduleService 创建 ScheduleService 实例并从磁盘恢复计划列表
func NewScheduleService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) (ScheduleService, error) {
	schedules, nextID, err := repo.Schedule.Load()
	if err != nil {
		return nil, fmt.Errorf("加载计划数据失败: %w", err)
	}

	logger.Info("计划数据已加载",
		zap.Int("count", len(schedules)),
		zap.Int64("next_id", nextID),
	)

	return &scheduleService{
		repo:      repo,
		logger:    logger,
		loc:       loc,
		now:       time.Now,
		schedules: schedules,
		nextID:    nextID,
	}, nil
}

// ────────────────────── Create ──────────────────────

func (s *scheduleService) Create(req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	if _, err := model.ParseClock(req.PauseTime); err != nil {
		return nil, fmt.Errorf("%w: pause_time 格式无效 (HH:MM)", ErrValidation)
	}

	resumeTime, err := normalizeResumeTime(req.ResumeTime)
	if err != nil {
		return nil, err
	}

	days, err := normalizeDays(req.Days)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	schedule := model.Schedule{
		ID:         s.nextID,
		PauseTime:  req.PauseTime,
		ResumeTime: resumeTime,
		Days:       days,
		Label:      req.Label,
		Enabled:    true,
	}

	s.schedules = append(s.schedules, schedule)
	s.nextID++

	if err := s.persistLocked(); err != nil {
		// 回滚内存状态，保证不留半成品
		s.schedules = s.schedules[:len(s.schedules)-1]
		s.nextID--
		return nil, err
	}

	s.logger.Info("计划已创建",
		zap.Int64("id", schedule.ID),
		zap.String("pause_time", schedule.PauseTime),
		zap.Ints("days", schedule.Days),
	)

	resp := dto.NewScheduleResponse(&schedule, schedule.IsActiveAt(s.now().In(s.loc)))
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

// Update 部分字段更新：仅修改请求中出现的字段，校验规则与 Create 一致
func (s *scheduleService) Update(id int64, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.schedules {
		if s.schedules[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrScheduleNotFound
	}

	// 在副本上应用变更，全部校验通过后才落回列表
	updated := s.schedules[idx]

	if req.PauseTime != nil {
		if _, err := model.ParseClock(*req.PauseTime); err != nil {
			return nil, fmt.Errorf("%w: pause_time 格式无效 (HH:MM)", ErrValidation)
		}
		updated.PauseTime = *req.PauseTime
	}

	if req.ResumeTime != nil {
		resumeTime, err := normalizeResumeTime(req.ResumeTime)
		if err != nil {
			return nil, err
		}
		updated.ResumeTime = resumeTime
	}

	if req.Days != nil {
		days, err := normalizeDays(*req.Days)
		if err != nil {
			return nil, err
		}
		updated.Days = days
	}

	if req.Label != nil {
		updated.Label = *req.Label
	}

	if req.Enabled != nil {
		updated.Enabled = *req.Enabled
	}

	previous := s.schedules[idx]
	s.schedules[idx] = updated

	if err := s.persistLocked(); err != nil {
		s.schedules[idx] = previous
		return nil, err
	}

	s.logger.Info("计划已更新", zap.Int64("id", id))

	resp := dto.NewScheduleResponse(&updated, updated.IsActiveAt(s.now().In(s.loc)))
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *scheduleService) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.schedules {
		if s.schedules[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrScheduleNotFound
	}

	removed := s.schedules[idx]
	s.schedules = append(s.schedules[:idx], s.schedules[idx+1:]...)

	if err := s.persistLocked(); err != nil {
		s.schedules = append(s.schedules[:idx], append([]model.Schedule{removed}, s.schedules[idx:]...)...)
		return err
	}

	s.logger.Info("计划已删除", zap.Int64("id", id))
	return nil
}

// ────────────────────── 查询 ──────────────────────

func (s *scheduleService) List() *dto.ScheduleListResponse {
	now := s.now().In(s.loc)
	today := model.WeekdayIndex(now)

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]dto.ScheduleResponse, 0, len(s.schedules))
	for i := range s.schedules {
		items = append(items, dto.NewScheduleResponse(&s.schedules[i], s.schedules[i].IsActiveAt(now)))
	}

	return &dto.ScheduleListResponse{
		Schedules:      items,
		CurrentDay:     today,
		CurrentDayName: model.DayNames[today],
	}
}

func (s *scheduleService) AnyActive(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.schedules {
		if s.schedules[i].IsActiveAt(now.In(s.loc)) {
			return true
		}
	}
	return false
}

func (s *scheduleService) Counts(now time.Time) (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := 0
	for i := range s.schedules {
		if s.schedules[i].IsActiveAt(now.In(s.loc)) {
			active++
		}
	}
	return active, len(s.schedules)
}

// persistLocked 持久化当前列表与计数器，调用方必须持有 s.mu
func (s *scheduleService) persistLocked() error {
	if err := s.repo.Schedule.Save(s.schedules, s.nextID); err != nil {
		s.logger.Error("持久化计划数据失败", zap.Error(err))
		return err
	}
	return nil
}

// ── 字段校验辅助 ──

// normalizeResumeTime 校验恢复时间；空字符串或 nil 表示不限时
func normalizeResumeTime(resumeTime *string) (*string, error) {
	if resumeTime == nil || *resumeTime == "" {
		return nil, nil
	}
	if _, err := model.ParseClock(*resumeTime); err != nil {
		return nil, fmt.Errorf("%w: resume_time 格式无效 (HH:MM)", ErrValidation)
	}
	value := *resumeTime
	return &value, nil
}

// normalizeDays 校验并排序星期索引（0=周一..6=周日）
func normalizeDays(days []int) ([]int, error) {
	normalized := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("%w: days 必须为 0-6 之间的整数", ErrValidation)
		}
		normalized = append(normalized, d)
	}
	sort.Ints(normalized)
	return normalized, nil
}
