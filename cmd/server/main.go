package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/CanDlnd/pausetime/config"
	"github.com/CanDlnd/pausetime/internal/api/handler"
	"github.com/CanDlnd/pausetime/internal/api/router"
	"github.com/CanDlnd/pausetime/internal/repository"
	"github.com/CanDlnd/pausetime/internal/service"
	"github.com/CanDlnd/pausetime/pkg/aladhan"
	applogger "github.com/CanDlnd/pausetime/pkg/logger"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 准备数据目录（日志与持久化文件共用）
	dataDir := cfg.Storage.DataDir
	if dataDir == "" {
		dataDir = defaultDataDir()
	}
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "创建数据目录失败: %v\n", err)
		os.Exit(1)
	}

	// 3. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log, dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 4. 初始化本地存储
	repo, err := repository.NewRepository(dataDir, logger)
	if err != nil {
		logger.Fatal("初始化本地存储失败", zap.Error(err))
	}
	logger.Info("本地存储已就绪", zap.String("data_dir", dataDir))

	// 5. 初始化礼拜时刻客户端
	source := aladhan.NewClient(&cfg.Prayer, logger)

	// 6. 依赖注入: Repository → Service → Handler
	svc, err := service.NewService(cfg, repo, source, logger)
	if err != nil {
		logger.Fatal("初始化业务层失败", zap.Error(err))
	}
	h := handler.NewHandler(svc)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, logger)

	// 8. 启动 HTTP 服务器（优雅关闭），仅监听本机
	srv := &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	logger.Info("服务器已关闭")
}

// defaultDataDir 平台默认数据目录
// Windows 取 %APPDATA%\PauseTime，其余平台取 ~/.pausetime
func defaultDataDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "PauseTime")
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pausetime"
	}
	return filepath.Join(home, ".pausetime")
}
