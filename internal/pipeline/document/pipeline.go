// Package document implements the script analysis pipeline: extract text,
// extract topics, identify challenging topics, generate a memorandum, and
// generate a study plan. Every AI-backed stage degrades independently to its
// heuristic equivalent, so the pipeline always reaches completion; only
// artifact-store failures propagate.
package document

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/study-tracker/constants"
	"github.com/joseph-ayodele/study-tracker/internal/entity"
	"github.com/joseph-ayodele/study-tracker/internal/extract"
	"github.com/joseph-ayodele/study-tracker/internal/heuristic"
	"github.com/joseph-ayodele/study-tracker/internal/llm"
	"github.com/joseph-ayodele/study-tracker/internal/repository"
)

const (
	// Prompt budgets keep extracted text within provider limits.
	topicPromptBudget       = 4000
	challengingPromptBudget = 3000
	memorandumPromptBudget  = 4000

	maxTopics = 10
)

type Pipeline struct {
	Logger    *slog.Logger
	Extractor extract.TextExtractor
	Completer llm.Completer
	Heuristic heuristic.Analyzer
	Scripts   repository.ScriptRepository
	Memos     repository.MemorandumRepository
	Plans     repository.StudyPlanRepository
}

func NewPipeline(
	logger *slog.Logger,
	extractor extract.TextExtractor,
	completer llm.Completer,
	scripts repository.ScriptRepository,
	memos repository.MemorandumRepository,
	plans repository.StudyPlanRepository,
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
		Scripts:   scripts,
		Memos:     memos,
		Plans:     plans,
	}
}

// Result reports the artifacts of one run. Artifacts are committed
// incrementally: a later stage failing to persist does not discard the ones
// already stored.
type Result struct {
	ScriptID          uuid.UUID                `json:"script_id"`
	Status            constants.AnalysisStatus `json:"status"`
	Topics            []string                 `json:"topics"`
	ChallengingTopics []string                 `json:"challenging_topics"`
	MemorandumID      uuid.UUID                `json:"memorandum_id"`
	StudyPlanID       uuid.UUID                `json:"study_plan_id"`
}

// Run executes the full analysis for an already-created script row.
// Empty extracted text is not an error: an unreadable scan flows through
// every stage and yields fallback/empty artifacts rather than crashing the
// upload.
func (p *Pipeline) Run(ctx context.Context, student *entity.Student, script *entity.Script) (Result, error) {
	res := Result{ScriptID: script.ID, Status: constants.AnalysisRunning}

	// 1) text
	ext, err := p.Extractor.Extract(ctx, script.SourcePath, script.Format)
	if err != nil {
		res.Status = constants.AnalysisFailed
		return res, fmt.Errorf("extract text: %w", err)
	}
	res.Status = constants.AnalysisTextOK
	text := ext.Text
	p.Logger.Info("docpipeline.extract.ok",
		"script_id", script.ID, "method", ext.Method, "text_bytes", len(text), "warnings", len(ext.Warnings))

	// 2) topics
	res.Topics = p.extractTopics(ctx, script.ID, text)

	// 3) challenging topics
	res.ChallengingTopics = p.identifyChallenging(ctx, script.ID, res.Topics, text)

	if err := p.Scripts.SetTopics(ctx, script.ID, res.Topics, res.ChallengingTopics); err != nil {
		res.Status = constants.AnalysisFailed
		return res, fmt.Errorf("save topics: %w", err)
	}

	// 4) memorandum
	memo, err := p.Memos.Create(ctx, script.ID, p.generateMemorandum(ctx, script.ID, text, res.Topics))
	if err != nil {
		res.Status = constants.AnalysisFailed
		return res, fmt.Errorf("save memorandum: %w", err)
	}
	res.MemorandumID = memo.ID

	// 5) study plan
	title, content := p.generateStudyPlan(ctx, student, res.ChallengingTopics)
	plan, err := p.Plans.Create(ctx, student.ID, title, content)
	if err != nil {
		res.Status = constants.AnalysisFailed
		return res, fmt.Errorf("save study plan: %w", err)
	}
	res.StudyPlanID = plan.ID
	res.Status = constants.AnalysisComplete

	p.Logger.Info("docpipeline.ok",
		"script_id", script.ID,
		"topics", len(res.Topics),
		"challenging", len(res.ChallengingTopics),
		"memorandum_id", memo.ID,
		"study_plan_id", plan.ID,
	)
	return res, nil
}

func (p *Pipeline) extractTopics(ctx context.Context, scriptID uuid.UUID, text string) []string {
	if !p.Completer.Available() {
		p.Logger.Info("docpipeline.topics.fallback", "script_id", scriptID, "reason", "unavailable")
		return p.Heuristic.Topics(text)
	}
	resp, err := p.Completer.Complete(ctx, llm.Request{
		System:      "You are a helpful assistant that identifies key topics in educational documents. Extract the main topics covered in the following content.",
		User:        "Identify the main topics in this educational content, one per line: " + truncate(text, topicPromptBudget),
		MaxTokens:   200,
		Temperature: 0.3,
	})
	if err != nil {
		p.Logger.Warn("docpipeline.topics.fallback", "script_id", scriptID, "reason", "error", "error", err)
		return p.Heuristic.Topics(text)
	}
	return llm.ParseTopicList(resp, maxTopics)
}

// identifyChallenging asks which topics are hardest. An AI answer is accepted
// even when it names topics outside the topic list; only the heuristic path
// guarantees a prefix of it. Whenever topics exist, the result is non-empty.
func (p *Pipeline) identifyChallenging(ctx context.Context, scriptID uuid.UUID, topics []string, text string) []string {
	if !p.Completer.Available() {
		p.Logger.Info("docpipeline.challenging.fallback", "script_id", scriptID, "reason", "unavailable")
		return p.Heuristic.ChallengingTopics(topics)
	}
	resp, err := p.Completer.Complete(ctx, llm.Request{
		System:      "You are an educational assistant that identifies complex or challenging topics in educational content.",
		User: fmt.Sprintf(
			"Based on this educational content, identify which of these topics might be most challenging for a student, one per line: %s. Content: %s",
			strings.Join(topics, ", "), truncate(text, challengingPromptBudget)),
		MaxTokens:   150,
		Temperature: 0.3,
	})
	if err != nil {
		p.Logger.Warn("docpipeline.challenging.fallback", "script_id", scriptID, "reason", "error", "error", err)
		return p.Heuristic.ChallengingTopics(topics)
	}
	challenging := llm.ParseTopicList(resp, maxTopics)
	if len(challenging) == 0 {
		return p.Heuristic.ChallengingTopics(topics)
	}
	return challenging
}

func (p *Pipeline) generateMemorandum(ctx context.Context, scriptID uuid.UUID, text string, topics []string) string {
	if !p.Completer.Available() {
		p.Logger.Info("docpipeline.memorandum.fallback", "script_id", scriptID, "reason", "unavailable")
		return p.Heuristic.Memorandum(topics)
	}
	resp, err := p.Completer.Complete(ctx, llm.Request{
		System: "You are an educational assistant that creates concise memorandums summarizing educational content.",
		User: fmt.Sprintf(
			"Create a concise memorandum summarizing this educational content focusing on these key topics: %s. Content: %s",
			strings.Join(topics, ", "), truncate(text, memorandumPromptBudget)),
		MaxTokens:   300,
		Temperature: 0.4,
	})
	if err != nil {
		p.Logger.Warn("docpipeline.memorandum.fallback", "script_id", scriptID, "reason", "error", "error", err)
		return p.Heuristic.Memorandum(topics)
	}
	return resp
}

func (p *Pipeline) generateStudyPlan(ctx context.Context, student *entity.Student, challenging []string) (title, content string) {
	if !p.Completer.Available() || len(challenging) == 0 {
		p.Logger.Info("docpipeline.studyplan.fallback", "student_id", student.ID, "reason", "unavailable_or_no_topics")
		return p.Heuristic.StudyPlan(challenging)
	}
	resp, err := p.Completer.Complete(ctx, llm.Request{
		System: "You are an educational advisor that creates personalized study plans focusing on challenging topics.",
		User: fmt.Sprintf(
			"Create a personalized study plan for a student who finds these topics challenging: %s. Include study tips and resources.",
			strings.Join(challenging, ", ")),
		MaxTokens:   400,
		Temperature: 0.5,
	})
	if err != nil {
		p.Logger.Warn("docpipeline.studyplan.fallback", "student_id", student.ID, "reason", "error", "error", err)
		return p.Heuristic.StudyPlan(challenging)
	}
	return fmt.Sprintf("Personalized Study Plan for %s", student.Username), resp
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
