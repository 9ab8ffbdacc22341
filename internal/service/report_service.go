package service

import (
	"bytes"
	"context"
	"fmt"

	"risk_assessment_backend/internal/config"
	"risk_assessment_backend/internal/engine"
	"risk_assessment_backend/internal/util"
	"risk_assessment_backend/pkg/logger"
	"risk_assessment_backend/pkg/monitoring"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const ReportSheet = "Evaluación"

type ReportService struct {
	Storage *StorageService
	Archive bool
	Prefix  string
}

func NewReportService(storage *StorageService, cfg config.ReportConfig) *ReportService {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "reports"
	}
	return &ReportService{Storage: storage, Archive: cfg.Archive, Prefix: prefix}
}

// Filename 下载时使用的文件名
func (s *ReportService) Filename(r *AssessmentReport) string {
	return fmt.Sprintf("evaluacion-riesgo-%d-%s.xlsx", r.Record.ID, r.Record.Date.Format(util.DateFormat))
}

// RenderWorkbook 每个段落一个标题行，条目按 标签/值 两列输出
func (s *ReportService) RenderWorkbook(r *AssessmentReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	title, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	heading, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F6D8F"}},
	})
	value, _ := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	detail, _ := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Indent: 2, Vertical: "top"}})
	placeholder, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Italic: true, Color: "808080"}})

	row := 1
	set := func(col int, v string, style int) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(ReportSheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
		if style != 0 {
			return f.SetCellStyle(ReportSheet, cell, cell, style)
		}
		return nil
	}

	if err := set(1, "Evaluación de riesgo suicida", title); err != nil {
		return nil, err
	}
	_ = f.MergeCell(ReportSheet, "A1", "B1")
	row += 2

	for _, sec := range r.Sections {
		if err := set(1, sec.Title, heading); err != nil {
			return nil, err
		}
		if err := set(2, "", heading); err != nil {
			return nil, err
		}
		row++

		for _, item := range sec.Items {
			switch {
			case item.Placeholder:
				if err := set(1, item.Value, placeholder); err != nil {
					return nil, err
				}
			default:
				labelStyle := 0
				if item.Detail {
					labelStyle = detail
				}
				if err := set(1, item.Label, labelStyle); err != nil {
					return nil, err
				}
				if err := set(2, item.Value, value); err != nil {
					return nil, err
				}
			}
			row++
		}
		row++
	}

	_ = f.SetColWidth(ReportSheet, "A", "A", 48)
	_ = f.SetColWidth(ReportSheet, "B", "B", 80)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	monitoring.ReportsRendered.WithLabelValues(util.ReportFormatXLSX).Inc()
	return buf, nil
}

// ArchiveWorkbook 未开启归档时返回空字符串
func (s *ReportService) ArchiveWorkbook(ctx context.Context, r *AssessmentReport, data []byte) (string, error) {
	if !s.Archive || s.Storage == nil {
		return "", nil
	}
	key := fmt.Sprintf("%s/assessment-%d-%s.xlsx", s.Prefix, r.Record.ID, uuid.NewString())
	url, err := s.Storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), util.MimeXLSX)
	if err != nil {
		return "", fmt.Errorf("archive report: %w", err)
	}
	logger.Log.Info("report archived", zap.Uint("assessment_id", r.Record.ID), zap.String("key", key))
	return url, nil
}

// SectionsOnly JSON 格式的报告
func (s *ReportService) SectionsOnly(r *AssessmentReport) []engine.Section {
	monitoring.ReportsRendered.WithLabelValues(util.ReportFormatJSON).Inc()
	return r.Sections
}
