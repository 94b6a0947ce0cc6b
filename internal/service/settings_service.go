package service

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/CanDlnd/pausetime/internal/dto"
	"github.com/CanDlnd/pausetime/internal/model"
	"github.com/CanDlnd/pausetime/internal/repository"
)

// CacheFlusher 城市或计算方法变更后需要清空的缓存
type CacheFlusher interface {
	FlushCache()
}

// SettingsService 用户设置业务接口
type SettingsService interface {
	Get() *dto.SettingsResponse
	// Update 部分字段更新，城市或计算方法变更时清空礼拜时刻缓存
	Update(req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
	// Current 当前设置值（状态引擎取城市与计算方法）
	Current() model.Settings
}

type settingsService struct {
	repo    *repository.Repository
	flusher CacheFlusher
	logger  *zap.Logger

	mu       sync.Mutex
	settings model.Settings
}

// NewSettingsService 创建 SettingsService 实例并从磁盘恢复设置
func NewSettingsService(repo *repository.Repository, flusher CacheFlusher, logger *zap.Logger) (SettingsService, error) {
	settings, err := repo.Settings.Load()
	if err != nil {
		return nil, fmt.Errorf("加载设置失败: %w", err)
	}

	logger.Info("设置已加载",
		zap.String("city", settings.City),
		zap.String("calculation_method", settings.CalculationMethod),
	)

	return &settingsService{
		repo:     repo,
		flusher:  flusher,
		logger:   logger,
		settings: settings,
	}, nil
}

func (s *settingsService) Get() *dto.SettingsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := dto.NewSettingsResponse(s.settings)
	return &resp
}

func (s *settingsService) Current() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *settingsService) Update(req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.settings
	cacheStale := false

	if req.City != nil {
		city := strings.ToUpper(strings.TrimSpace(*req.City))
		if city == "" {
			return nil, fmt.Errorf("%w: city 不能为空", ErrValidation)
		}
		updated.City = city
		cacheStale = true
	}

	if req.CalculationMethod != nil {
		if _, ok := model.CalculationMethods[*req.CalculationMethod]; !ok {
			return nil, fmt.Errorf("%w: calculation_method 不在可选范围内", ErrValidation)
		}
		updated.CalculationMethod = *req.CalculationMethod
		cacheStale = true
	}

	if req.LaunchOnStartup != nil {
		updated.LaunchOnStartup = *req.LaunchOnStartup
	}

	if req.StartMinimizedToTray != nil {
		updated.StartMinimizedToTray = *req.StartMinimizedToTray
	}

	if req.CloseToTray != nil {
		updated.CloseToTray = *req.CloseToTray
	}

	if err := s.repo.Settings.Save(updated); err != nil {
		s.logger.Error("持久化设置失败", zap.Error(err))
		return nil, err
	}

	s.settings = updated

	if cacheStale {
		s.flusher.FlushCache()
		s.logger.Info("位置或计算方法已变更，礼拜时刻缓存已清空")
	}

	resp := dto.NewSettingsResponse(s.settings)
	return &resp, nil
}
