package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joseph-ayodele/study-tracker/constants"
	"github.com/joseph-ayodele/study-tracker/internal/common"
	"github.com/joseph-ayodele/study-tracker/internal/entity"
)

// handleUploadScript accepts a multipart form with a "file" part plus
// student_username, title, subject, and grade_level fields, stores the file,
// and runs the full script analysis synchronously.
func (s *Server) handleUploadScript(w http.ResponseWriter, r *http.Request) {
	student, path, format, err := s.acceptUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx := common.WithStudentID(r.Context(), student.ID.String())
	script, err := s.scripts.Create(ctx, &entity.Script{
		StudentID:  student.ID,
		Title:      strings.TrimSpace(r.FormValue("title")),
		Subject:    strings.TrimSpace(r.FormValue("subject")),
		GradeLevel: strings.TrimSpace(r.FormValue("grade_level")),
		SourcePath: path,
		Format:     format,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.processor.ProcessScript(ctx, student, script)
	if err != nil {
		s.logger.Error("script analysis failed",
			zap.String("request_id", common.RequestIDFromContext(ctx)),
			zap.String("script_id", script.ID.String()),
			zap.Error(err))
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, res)
}

// handleUploadReportCard mirrors handleUploadScript for report cards; the
// optional grade and term fields describe the card itself.
func (s *Server) handleUploadReportCard(w http.ResponseWriter, r *http.Request) {
	student, path, format, err := s.acceptUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx := common.WithStudentID(r.Context(), student.ID.String())
	card, err := s.cards.Create(ctx, &entity.ReportCard{
		StudentID:  student.ID,
		SourcePath: path,
		Format:     format,
		Grade:      strings.TrimSpace(r.FormValue("grade")),
		Term:       strings.TrimSpace(r.FormValue("term")),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.processor.ProcessReportCard(ctx, student, card)
	if err != nil {
		s.logger.Error("report card analysis failed",
			zap.String("request_id", common.RequestIDFromContext(ctx)),
			zap.String("student_id", common.StudentIDFromContext(ctx)),
			zap.Error(err))
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, res)
}

// acceptUpload parses the multipart form, resolves the student, validates the
// file extension, and persists the upload under the configured directory.
func (s *Server) acceptUpload(_ http.ResponseWriter, r *http.Request) (*entity.Student, string, constants.FileFormat, error) {
	maxBytes := s.cfg.Uploads.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, "", "", common.NewAppError("UPLOAD_ERROR", "invalid multipart form", common.ErrInvalidInput)
	}

	username := strings.TrimSpace(r.FormValue("student_username"))
	if username == "" {
		return nil, "", "", common.NewAppError("UPLOAD_ERROR", "student_username is required", common.ErrInvalidInput)
	}
	student, err := s.students.GetOrCreateByUsername(r.Context(), username)
	if err != nil {
		return nil, "", "", err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", "", common.NewAppError("UPLOAD_ERROR", "file part is required", common.ErrInvalidInput)
	}
	defer file.Close()

	ext := constants.NormalizeExt(filepath.Ext(header.Filename))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		return nil, "", "", common.NewAppError("UPLOAD_ERROR",
			fmt.Sprintf("unsupported file extension %q", ext), common.ErrInvalidInput)
	}

	path, err := s.saveUpload(file, ext)
	if err != nil {
		return nil, "", "", err
	}
	return student, path, constants.MapExtToFormat(ext), nil
}

func (s *Server) saveUpload(file multipart.File, ext string) (string, error) {
	if err := os.MkdirAll(s.cfg.Uploads.Dir, 0o755); err != nil {
		return "", common.WrapError(err, "create upload dir")
	}
	path := filepath.Join(s.cfg.Uploads.Dir, uuid.NewString()+"."+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", common.WrapError(err, "create upload file")
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(path)
		return "", common.WrapError(err, "write upload file")
	}
	return path, nil
}
