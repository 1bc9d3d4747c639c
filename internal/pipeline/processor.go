package processor

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/study-tracker/internal/entity"
	"github.com/joseph-ayodele/study-tracker/internal/pipeline/document"
	"github.com/joseph-ayodele/study-tracker/internal/pipeline/reportcard"
)

// Processor coordinates the two analysis pipelines behind one entry point.
type Processor struct {
	Logger      *slog.Logger
	Documents   *document.Pipeline
	ReportCards *reportcard.Pipeline
}

func NewProcessor(logger *slog.Logger, docs *document.Pipeline, cards *reportcard.Pipeline) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Documents: docs, ReportCards: cards}
}

// ProcessScript runs the full script analysis for an already-created script
// row and returns its artifacts.
func (p *Processor) ProcessScript(ctx context.Context, student *entity.Student, script *entity.Script) (document.Result, error) {
	res, err := p.Documents.Run(ctx, student, script)
	if err != nil {
		p.Logger.Error("processor.script.failed", "script_id", script.ID, "err", err)
		return res, err
	}
	p.Logger.Info("processor.script.ok",
		"script_id", script.ID,
		"topics", len(res.Topics),
		"memorandum_id", res.MemorandumID,
		"study_plan_id", res.StudyPlanID,
	)
	return res, nil
}

// ProcessReportCard runs grade extraction and career analysis for an
// already-created report card row.
func (p *Processor) ProcessReportCard(ctx context.Context, student *entity.Student, card *entity.ReportCard) (reportcard.Result, error) {
	res, err := p.ReportCards.Run(ctx, student, card)
	if err != nil {
		p.Logger.Error("processor.reportcard.failed", "report_card_id", card.ID, "err", err)
		return res, err
	}
	p.Logger.Info("processor.reportcard.ok",
		"report_card_id", card.ID,
		"subjects", len(res.Grades),
		"recommendation_id", res.RecommendationID,
	)
	return res, nil
}
