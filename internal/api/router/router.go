package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CanDlnd/pausetime/config"
	"github.com/CanDlnd/pausetime/internal/api/handler"
	"github.com/CanDlnd/pausetime/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
// 路由与桌面端（Tauri WebView）约定一致，服务仅监听本机
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── 状态引擎 ──
	r.GET("/state", h.State.GetState)
	r.POST("/state/toggle", h.State.ToggleState)

	// ── 设置 ──
	r.GET("/settings", h.Settings.GetSettings)
	r.PUT("/settings", h.Settings.UpdateSettings)

	// ── API ──
	api := r.Group("/api")
	{
		api.GET("/prayer-times", h.State.GetPrayerTimes)

		schedules := api.Group("/schedules")
		{
			schedules.GET("", h.Schedule.ListSchedules)
			schedules.POST("", h.Schedule.CreateSchedule)
			schedules.PUT("/:id", h.Schedule.UpdateSchedule)
			schedules.DELETE("/:id", h.Schedule.DeleteSchedule)
		}

		api.GET("/export/schedules", h.Export.ExportSchedules)
	}

	return r
}
