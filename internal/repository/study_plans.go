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

type StudyPlanRepository interface {
	Create(ctx context.Context, studentID uuid.UUID, title, content string) (*entity.StudyPlan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StudyPlan, error)
	ListActiveByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.StudyPlan, error)
}

type studyPlanRepository struct {
	store  *Store
	logger *slog.Logger
}

func NewStudyPlanRepository(store *Store, logger *slog.Logger) StudyPlanRepository {
	return &studyPlanRepository{store: store, logger: logger}
}

func (r *studyPlanRepository) Create(ctx context.Context, studentID uuid.UUID, title, content string) (*entity.StudyPlan, error) {
	p := &entity.StudyPlan{
		ID:        uuid.New(),
		StudentID: studentID,
		Title:     title,
		Content:   content,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.store.exec(ctx,
		`INSERT INTO study_plans (id, student_id, title, content, is_active, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID.String(), p.StudentID.String(), p.Title, p.Content, p.IsActive, p.CreatedAt)
	if err != nil {
		r.logger.Error("failed to create study plan", "student_id", studentID, "error", err)
		return nil, common.WrapError(err, "create study plan")
	}
	return p, nil
}

func (r *studyPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StudyPlan, error) {
	row := r.store.queryRow(ctx,
		`SELECT id, student_id, title, content, is_active, created_at FROM study_plans WHERE id = ?`, id.String())
	var p entity.StudyPlan
	var pid, studentID string
	err := row.Scan(&pid, &studentID, &p.Title, &p.Content, &p.IsActive, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "scan study plan")
	}
	if p.ID, err = uuid.Parse(pid); err != nil {
		return nil, common.WrapError(err, "parse study plan id")
	}
	if p.StudentID, err = uuid.Parse(studentID); err != nil {
		return nil, common.WrapError(err, "parse student id")
	}
	return &p, nil
}

func (r *studyPlanRepository) ListActiveByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.StudyPlan, error) {
	rows, err := r.store.query(ctx,
		`SELECT id, student_id, title, content, is_active, created_at
		 FROM study_plans WHERE student_id = ? AND is_active ORDER BY created_at`, studentID.String())
	if err != nil {
		return nil, common.WrapError(err, "list study plans")
	}
	defer rows.Close()

	var out []*entity.StudyPlan
	for rows.Next() {
		var p entity.StudyPlan
		var pid, sid string
		if err := rows.Scan(&pid, &sid, &p.Title, &p.Content, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, common.WrapError(err, "scan study plan")
		}
		if p.ID, err = uuid.Parse(pid); err != nil {
			return nil, common.WrapError(err, "parse study plan id")
		}
		if p.StudentID, err = uuid.Parse(sid); err != nil {
			return nil, common.WrapError(err, "parse student id")
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
