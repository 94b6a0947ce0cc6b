package service

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSchedules  = errors.New("尚无计划可导出")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 计划列表导出为 Excel (.xlsx)，供用户备份或查看
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportSchedules 导出计划列表为 Excel，返回内容与建议文件名
	ExportSchedules() (*bytes.Buffer, string, error)
}

type exportService struct {
	schedules ScheduleService
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(schedules ScheduleService, logger *zap.Logger) ExportService {
	return &exportService{schedules: schedules, logger: logger, now: time.Now}
}

func (s *exportService) ExportSchedules() (*bytes.Buffer, string, error) {
	list := s.schedules.List()
	if len(list.Schedules) == 0 {
		return nil, "", ErrExportNoSchedules
	}

	const sheet = "Zamanlamalar"

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		s.logger.Error("创建工作表失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	// ── 表头 ──
	headers := []string{"ID", "Durdurma", "Devam", "Günler", "Etiket", "Etkin", "Şu An Aktif"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, col+"1", h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	f.SetCellStyle(sheet, "A1", "G1", headerStyle)
	f.SetColWidth(sheet, "B", "D", 14)
	f.SetColWidth(sheet, "E", "E", 24)

	// ── 数据行 ──
	for i, item := range list.Schedules {
		row := i + 2

		resume := "süresiz"
		if item.ResumeTime != nil {
			resume = *item.ResumeTime
		}

		days := "her gün"
		if len(item.DayNames) > 0 {
			days = strings.Join(item.DayNames, ", ")
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.PauseTime)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), resume)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), days)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.Label)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.Enabled)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.IsActiveNow)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("pausetime-zamanlamalar-%s.xlsx", s.now().Format("2006-01-02"))
	return buf, filename, nil
}
