package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/CanDlnd/pausetime/internal/model"
)

// SettingsRepository 用户设置持久化接口
type SettingsRepository interface {
	// Load 读取设置，文件缺失或损坏时返回默认值
	Load() (model.Settings, error)
	// Save 原子持久化设置
	Save(settings model.Settings) error
}

type fileSettingsRepo struct {
	path   string
	logger *zap.Logger
}

// NewSettingsRepo 创建文件后端的 SettingsRepository
func NewSettingsRepo(path string, logger *zap.Logger) SettingsRepository {
	return &fileSettingsRepo{path: path, logger: logger}
}

// Load 读取设置文件并与默认值合并：缺失字段保留默认值
func (r *fileSettingsRepo) Load() (model.Settings, error) {
	settings := model.DefaultSettings()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn("设置文件读取失败，使用默认设置", zap.String("path", r.path), zap.Error(err))
		}
		return settings, nil
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		r.logger.Warn("设置文件解析失败，使用默认设置", zap.String("path", r.path), zap.Error(err))
		return model.DefaultSettings(), nil
	}

	// 枚举校验：未知的计算方法回退为默认
	if _, ok := model.CalculationMethods[settings.CalculationMethod]; !ok {
		settings.CalculationMethod = model.DefaultSettings().CalculationMethod
	}

	return settings, nil
}

// Save 原子写入设置文件
func (r *fileSettingsRepo) Save(settings model.Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化设置失败: %w", err)
	}
	if err := writeFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("持久化设置失败: %w", err)
	}
	return nil
}
