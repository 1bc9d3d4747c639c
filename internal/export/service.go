package export

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/study-tracker/internal/repository"
)

// Service is a tiny façade over repositories that produces XLSX bytes for exports.
type Service struct {
	cards   repository.ReportCardRepository
	careers repository.CareerRepository
	logger  *slog.Logger
}

func NewService(cards repository.ReportCardRepository, careers repository.CareerRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cards: cards, careers: careers, logger: logger}
}

// ExportGradesXLSX returns an XLSX workbook (as bytes) with one row per
// subject grade across all of the student's report cards, plus a second
// sheet listing career recommendations.
func (s *Service) ExportGradesXLSX(ctx context.Context, studentID uuid.UUID) ([]byte, error) {
	start := time.Now()

	cards, err := s.cards.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("query report cards: %w", err)
	}
	recs, err := s.careers.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("query career recommendations: %w", err)
	}

	f := excelize.NewFile()
	const gradesSheet = "Grades"
	if index, _ := f.GetSheetIndex(gradesSheet); index == -1 {
		if _, err := f.NewSheet(gradesSheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(gradesSheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"Uploaded", "Term", "Subject", "Grade"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(gradesSheet, cell, h)
	}

	write := func(sheet string, col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	row := 2
	rows := 0
	for _, c := range cards {
		// Sort subjects so the workbook is stable across exports.
		subjects := make([]string, 0, len(c.Grades))
		for subj := range c.Grades {
			subjects = append(subjects, subj)
		}
		sort.Strings(subjects)

		for _, subj := range subjects {
			write(gradesSheet, 1, row, c.UploadedAt.Format("2006-01-02"))
			write(gradesSheet, 2, row, c.Term)
			write(gradesSheet, 3, row, subj)
			write(gradesSheet, 4, row, c.Grades[subj])
			row++
			rows++
		}
	}

	_ = f.SetColWidth(gradesSheet, "A", "A", 14)
	_ = f.SetColWidth(gradesSheet, "B", "B", 16)
	_ = f.SetColWidth(gradesSheet, "C", "C", 28)
	_ = f.SetColWidth(gradesSheet, "D", "D", 10)

	const careersSheet = "Careers"
	if _, err := f.NewSheet(careersSheet); err != nil {
		return nil, err
	}
	for i, h := range []string{"Created", "Careers", "Strengths", "Areas For Improvement"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(careersSheet, cell, h)
	}
	for i, r := range recs {
		write(careersSheet, 1, i+2, r.CreatedAt.Format("2006-01-02"))
		write(careersSheet, 2, i+2, strings.Join(r.Careers, ", "))
		write(careersSheet, 3, i+2, strings.Join(r.Strengths, ", "))
		write(careersSheet, 4, i+2, strings.Join(r.AreasForImprovement, ", "))
	}
	_ = f.SetColWidth(careersSheet, "A", "A", 14)
	_ = f.SetColWidth(careersSheet, "B", "D", 42)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"student_id", studentID.String(),
		"rows", rows,
		"recommendations", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
