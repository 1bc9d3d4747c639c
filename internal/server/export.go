package server

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// handleExportGrades streams an XLSX workbook of the student's grades and
// career recommendations.
func (s *Server) handleExportGrades(w http.ResponseWriter, r *http.Request) {
	studentID, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if _, err := s.students.GetByID(r.Context(), studentID); err != nil {
		s.writeError(w, err)
		return
	}

	xlsx, err := s.exporter.ExportGradesXLSX(r.Context(), studentID)
	if err != nil {
		s.logger.Error("export.xlsx.failed", zap.String("student_id", studentID.String()), zap.Error(err))
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "grades-"+studentID.String()+".xlsx"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(xlsx); err != nil {
		s.logger.Warn("write export failed", zap.Error(err))
	}
}
