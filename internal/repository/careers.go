package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/study-tracker/internal/common"
	"github.com/joseph-ayodele/study-tracker/internal/entity"
)

type CareerRepository interface {
	Create(ctx context.Context, rec *entity.CareerRecommendation) (*entity.CareerRecommendation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CareerRecommendation, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.CareerRecommendation, error)
}

type careerRepository struct {
	store  *Store
	logger *slog.Logger
}

func NewCareerRepository(store *Store, logger *slog.Logger) CareerRepository {
	return &careerRepository{store: store, logger: logger}
}

func (r *careerRepository) Create(ctx context.Context, rec *entity.CareerRecommendation) (*entity.CareerRecommendation, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.store.exec(ctx,
		`INSERT INTO career_recommendations (id, student_id, report_card_id, careers, strengths, areas_for_improvement, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.StudentID.String(), rec.ReportCardID.String(),
		marshalStrings(rec.Careers), marshalStrings(rec.Strengths), marshalStrings(rec.AreasForImprovement),
		rec.CreatedAt)
	if err != nil {
		r.logger.Error("failed to create career recommendation", "student_id", rec.StudentID, "error", err)
		return nil, common.WrapError(err, "create career recommendation")
	}
	return rec, nil
}

func (r *careerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CareerRecommendation, error) {
	rows, err := r.store.query(ctx,
		`SELECT id, student_id, report_card_id, careers, strengths, areas_for_improvement, created_at
		 FROM career_recommendations WHERE id = ?`, id.String())
	if err != nil {
		return nil, common.WrapError(err, "get career recommendation")
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, common.ErrNotFound
	}
	return scanCareer(rows)
}

func (r *careerRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.CareerRecommendation, error) {
	rows, err := r.store.query(ctx,
		`SELECT id, student_id, report_card_id, careers, strengths, areas_for_improvement, created_at
		 FROM career_recommendations WHERE student_id = ? ORDER BY created_at`, studentID.String())
	if err != nil {
		return nil, common.WrapError(err, "list career recommendations")
	}
	defer rows.Close()

	var out []*entity.CareerRecommendation
	for rows.Next() {
		c, err := scanCareer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCareer(rows *sql.Rows) (*entity.CareerRecommendation, error) {
	var c entity.CareerRecommendation
	var id, studentID, cardID, careers, strengths, areas string
	err := rows.Scan(&id, &studentID, &cardID, &careers, &strengths, &areas, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "scan career recommendation")
	}
	if c.ID, err = uuid.Parse(id); err != nil {
		return nil, common.WrapError(err, "parse recommendation id")
	}
	if c.StudentID, err = uuid.Parse(studentID); err != nil {
		return nil, common.WrapError(err, "parse student id")
	}
	if c.ReportCardID, err = uuid.Parse(cardID); err != nil {
		return nil, common.WrapError(err, "parse report card id")
	}
	c.Careers = unmarshalStrings(careers)
	c.Strengths = unmarshalStrings(strengths)
	c.AreasForImprovement = unmarshalStrings(areas)
	return &c, nil
}
