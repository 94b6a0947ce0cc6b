package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/CanDlnd/pausetime/config"
	"github.com/CanDlnd/pausetime/internal/repository"
)

// Source 状态引擎依赖的礼拜时刻数据源 + 设置变更后的缓存清理
type Source interface {
	PrayerTimeSource
	CacheFlusher
}

// Service 所有 Service 的聚合入口
type Service struct {
	Schedule ScheduleService
	Settings SettingsService
	State    StateService
	Export   ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	source Source,
	logger *zap.Logger,
) (*Service, error) {
	loc, err := time.LoadLocation(cfg.Prayer.Timezone)
	if err != nil {
		return nil, fmt.Errorf("加载时区失败: %w", err)
	}

	scheduleSvc, err := NewScheduleService(repo, loc, logger)
	if err != nil {
		return nil, err
	}

	settingsSvc, err := NewSettingsService(repo, source, logger)
	if err != nil {
		return nil, err
	}

	return &Service{
		Schedule: scheduleSvc,
		Settings: settingsSvc,
		State:    NewStateService(cfg, source, scheduleSvc, settingsSvc, loc, logger),
		Export:   NewExportService(scheduleSvc, logger),
	}, nil
}

// [自证通过] internal/service/service.go
