// Package reportcard implements the report card analysis pipeline: extract
// text, parse the grade map, and generate a career recommendation. The career
// stage is AI-backed with a deterministic fallback, so a run never fails for
// provider reasons.
package reportcard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/study-tracker/constants"
	"github.com/joseph-ayodele/study-tracker/internal/entity"
	"github.com/joseph-ayodele/study-tracker/internal/extract"
	"github.com/joseph-ayodele/study-tracker/internal/heuristic"
	"github.com/joseph-ayodele/study-tracker/internal/llm"
	"github.com/joseph-ayodele/study-tracker/internal/repository"
)

type Pipeline struct {
	Logger    *slog.Logger
	Extractor extract.TextExtractor
	Completer llm.Completer
	Heuristic heuristic.Analyzer
	Cards     repository.ReportCardRepository
	Careers   repository.CareerRepository
}

func NewPipeline(
	logger *slog.Logger,
	extractor extract.TextExtractor,
	completer llm.Completer,
	cards repository.ReportCardRepository,
	careers repository.CareerRepository,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if completer == nil {
		completer = llm.Unavailable{}
	}
	return &Pipeline{
		Logger:    logger,
		Extractor: extractor,
		Completer: completer,
		Cards:     cards,
		Careers:   careers,
	}
}

type Result struct {
	ReportCardID     uuid.UUID                `json:"report_card_id"`
	Status           constants.AnalysisStatus `json:"status"`
	Grades           map[string]string        `json:"grades"`
	RecommendationID uuid.UUID                `json:"recommendation_id"`
}

// Run extracts grades from an already-created report card row and persists a
// career recommendation for the student.
func (p *Pipeline) Run(ctx context.Context, student *entity.Student, card *entity.ReportCard) (Result, error) {
	res := Result{ReportCardID: card.ID, Status: constants.AnalysisRunning}

	ext, err := p.Extractor.Extract(ctx, card.SourcePath, card.Format)
	if err != nil {
		res.Status = constants.AnalysisFailed
		return res, fmt.Errorf("extract text: %w", err)
	}
	res.Status = constants.AnalysisTextOK

	res.Grades = ExtractGrades(ext.Text)
	if err := p.Cards.SetGrades(ctx, card.ID, res.Grades); err != nil {
		res.Status = constants.AnalysisFailed
		return res, fmt.Errorf("save grades: %w", err)
	}
	p.Logger.Info("cardpipeline.grades.ok", "report_card_id", card.ID, "subjects", len(res.Grades))

	analysis := p.analyzeCareers(ctx, card.ID, res.Grades)
	rec, err := p.Careers.Create(ctx, &entity.CareerRecommendation{
		StudentID:      student.ID,
		ReportCardID:   card.ID,
		CareerAnalysis: analysis,
	})
	if err != nil {
		res.Status = constants.AnalysisFailed
		return res, fmt.Errorf("save career recommendation: %w", err)
	}
	res.RecommendationID = rec.ID
	res.Status = constants.AnalysisComplete

	p.Logger.Info("cardpipeline.ok",
		"report_card_id", card.ID, "subjects", len(res.Grades), "recommendation_id", rec.ID)
	return res, nil
}

// analyzeCareers maps grades to a career analysis. With no grades or no
// provider it returns the fixed fallback; a provider answer that fails schema
// validation gets the placeholder set instead, so a malformed completion is
// distinguishable from an unreachable provider.
func (p *Pipeline) analyzeCareers(ctx context.Context, cardID uuid.UUID, grades map[string]string) entity.CareerAnalysis {
	if len(grades) == 0 || !p.Completer.Available() {
		p.Logger.Info("cardpipeline.careers.fallback", "report_card_id", cardID, "reason", "unavailable_or_no_grades")
		return p.Heuristic.CareerAnalysis()
	}
	resp, err := p.Completer.Complete(ctx, llm.Request{
		System: "You are a career counselor that analyzes academic performance and suggests suitable career paths. Respond with a JSON object containing \"careers\", \"strengths\", and \"areas_for_improvement\" arrays.",
		User: fmt.Sprintf(
			"Based on these grades, suggest suitable career paths, academic strengths, and areas for improvement: %s",
			flattenGrades(grades)),
		MaxTokens:   400,
		Temperature: 0.5,
	})
	if err != nil {
		p.Logger.Warn("cardpipeline.careers.fallback", "report_card_id", cardID, "reason", "error", "error", err)
		return p.Heuristic.CareerAnalysis()
	}
	analysis, err := llm.ParseCareerAnalysis(resp)
	if err != nil {
		p.Logger.Warn("cardpipeline.careers.placeholder", "report_card_id", cardID, "error", err)
		return entity.CareerAnalysis{
			Careers:             constants.PlaceholderCareers,
			Strengths:           constants.PlaceholderStrengths,
			AreasForImprovement: constants.PlaceholderImprovements,
		}
	}
	return analysis
}

// flattenGrades renders the grade map as "subject: grade" pairs in sorted
// order so the prompt is stable across runs.
func flattenGrades(grades map[string]string) string {
	subjects := make([]string, 0, len(grades))
	for s := range grades {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	pairs := make([]string, 0, len(subjects))
	for _, s := range subjects {
		pairs = append(pairs, s+": "+grades[s])
	}
	return strings.Join(pairs, ", ")
}
