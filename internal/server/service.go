// Package server exposes the HTTP API: uploads, artifact views, chat, and
// exports.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/joseph-ayodele/study-tracker/internal/common"
	"github.com/joseph-ayodele/study-tracker/internal/export"
	"github.com/joseph-ayodele/study-tracker/internal/llm"
	processor "github.com/joseph-ayodele/study-tracker/internal/pipeline"
	"github.com/joseph-ayodele/study-tracker/internal/repository"
)

type Server struct {
	cfg       *common.Config
	logger    *zap.Logger
	processor *processor.Processor
	completer llm.Completer
	exporter  *export.Service

	students repository.StudentRepository
	scripts  repository.ScriptRepository
	memos    repository.MemorandumRepository
	plans    repository.StudyPlanRepository
	cards    repository.ReportCardRepository
	careers  repository.CareerRepository
}

func NewServer(
	cfg *common.Config,
	logger *zap.Logger,
	proc *processor.Processor,
	completer llm.Completer,
	exporter *export.Service,
	students repository.StudentRepository,
	scripts repository.ScriptRepository,
	memos repository.MemorandumRepository,
	plans repository.StudyPlanRepository,
	cards repository.ReportCardRepository,
	careers repository.CareerRepository,
) *Server {
	if completer == nil {
		completer = llm.Unavailable{}
	}
	return &Server{
		cfg:       cfg,
		logger:    logger,
		processor: proc,
		completer: completer,
		exporter:  exporter,
		students:  students,
		scripts:   scripts,
		memos:     memos,
		plans:     plans,
		cards:     cards,
		careers:   careers,
	}
}

func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestID)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/students", s.handleCreateStudent).Methods(http.MethodPost)
	v1.HandleFunc("/students/{id}/dashboard", s.handleDashboard).Methods(http.MethodGet)
	v1.HandleFunc("/students/{id}/grades/export", s.handleExportGrades).Methods(http.MethodGet)

	v1.HandleFunc("/scripts", s.handleUploadScript).Methods(http.MethodPost)
	v1.HandleFunc("/scripts/{id}", s.handleGetScript).Methods(http.MethodGet)
	v1.HandleFunc("/scripts/{id}/memorandum", s.handleGetScriptMemorandum).Methods(http.MethodGet)

	v1.HandleFunc("/report-cards", s.handleUploadReportCard).Methods(http.MethodPost)
	v1.HandleFunc("/report-cards/{id}", s.handleGetReportCard).Methods(http.MethodGet)

	v1.HandleFunc("/memorandums/{id}", s.handleGetMemorandum).Methods(http.MethodGet)
	v1.HandleFunc("/study-plans/{id}", s.handleGetStudyPlan).Methods(http.MethodGet)
	v1.HandleFunc("/career-recommendations/{id}", s.handleGetCareerRecommendation).Methods(http.MethodGet)

	v1.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	return r
}

// requestID tags every request with an id, honoring one supplied by the
// caller.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r.WithContext(common.WithRequestID(r.Context(), rid)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, common.HTTPStatus(err), map[string]string{"error": err.Error()})
}
