package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/joseph-ayodele/study-tracker/internal/common"
	"github.com/joseph-ayodele/study-tracker/internal/entity"
)

type createStudentRequest struct {
	Username   string `json:"username"`
	GradeLevel string `json:"grade_level"`
}

func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var req createStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, common.NewAppError("REQUEST_ERROR", "invalid JSON body", common.ErrInvalidInput))
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		s.writeError(w, common.NewAppError("REQUEST_ERROR", "username is required", common.ErrInvalidInput))
		return
	}
	st, err := s.students.Create(r.Context(), strings.TrimSpace(req.Username), strings.TrimSpace(req.GradeLevel))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, st)
}

type dashboardTotals struct {
	Scripts     int `json:"scripts"`
	Topics      int `json:"topics"`
	StudyPlans  int `json:"study_plans"`
	ReportCards int `json:"report_cards"`
}

type dashboardResponse struct {
	Student     *entity.Student                `json:"student"`
	Totals      dashboardTotals                `json:"totals"`
	Scripts     []*entity.Script               `json:"scripts"`
	StudyPlans  []*entity.StudyPlan            `json:"study_plans"`
	ReportCards []*entity.ReportCard           `json:"report_cards"`
	Careers     []*entity.CareerRecommendation `json:"career_recommendations"`
}

// handleDashboard aggregates a student's scripts, active study plans, report
// cards, and career recommendations into one view.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	studentID, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	student, err := s.students.GetByID(r.Context(), studentID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := dashboardResponse{Student: student}
	if resp.Scripts, err = s.scripts.ListByStudent(r.Context(), studentID); err != nil {
		s.writeError(w, err)
		return
	}
	if resp.StudyPlans, err = s.plans.ListActiveByStudent(r.Context(), studentID); err != nil {
		s.writeError(w, err)
		return
	}
	if resp.ReportCards, err = s.cards.ListByStudent(r.Context(), studentID); err != nil {
		s.writeError(w, err)
		return
	}
	if resp.Careers, err = s.careers.ListByStudent(r.Context(), studentID); err != nil {
		s.writeError(w, err)
		return
	}

	resp.Totals = dashboardTotals{
		Scripts:     len(resp.Scripts),
		StudyPlans:  len(resp.StudyPlans),
		ReportCards: len(resp.ReportCards),
	}
	for _, sc := range resp.Scripts {
		resp.Totals.Topics += len(sc.Topics)
	}

	s.logger.Debug("dashboard served",
		zap.String("student_id", studentID.String()),
		zap.Int("scripts", len(resp.Scripts)),
	)
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetScript(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	script, err := s.scripts.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, script)
}

func (s *Server) handleGetScriptMemorandum(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	memo, err := s.memos.GetByScript(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, memo)
}

func (s *Server) handleGetMemorandum(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	memo, err := s.memos.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, memo)
}

func (s *Server) handleGetStudyPlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	plan, err := s.plans.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleGetCareerRecommendation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	rec, err := s.careers.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleGetReportCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	card, err := s.cards.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, card)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, common.NewAppError("REQUEST_ERROR", "id must be a UUID", common.ErrInvalidInput)
	}
	return id, nil
}
