package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/study-tracker/constants"
	"github.com/joseph-ayodele/study-tracker/internal/common"
	"github.com/joseph-ayodele/study-tracker/internal/entity"
)

type ScriptRepository interface {
	Create(ctx context.Context, script *entity.Script) (*entity.Script, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Script, error)
	// SetTopics persists the topic and challenging-topic lists produced by
	// the analysis pipeline.
	SetTopics(ctx context.Context, id uuid.UUID, topics, challenging []string) error
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Script, error)
}

type scriptRepository struct {
	store  *Store
	logger *slog.Logger
}

func NewScriptRepository(store *Store, logger *slog.Logger) ScriptRepository {
	return &scriptRepository{store: store, logger: logger}
}

func (r *scriptRepository) Create(ctx context.Context, script *entity.Script) (*entity.Script, error) {
	if script.ID == uuid.Nil {
		script.ID = uuid.New()
	}
	if script.UploadedAt.IsZero() {
		script.UploadedAt = time.Now().UTC()
	}
	_, err := r.store.exec(ctx,
		`INSERT INTO scripts (id, student_id, title, subject, grade_level, source_path, format, topics, challenging_topics, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		script.ID.String(), script.StudentID.String(), script.Title, script.Subject, script.GradeLevel,
		script.SourcePath, string(script.Format),
		marshalStrings(script.Topics), marshalStrings(script.ChallengingTopics), script.UploadedAt)
	if err != nil {
		r.logger.Error("failed to create script", "title", script.Title, "error", err)
		return nil, common.WrapError(err, "create script")
	}
	return script, nil
}

func (r *scriptRepository) SetTopics(ctx context.Context, id uuid.UUID, topics, challenging []string) error {
	res, err := r.store.exec(ctx,
		`UPDATE scripts SET topics = ?, challenging_topics = ? WHERE id = ?`,
		marshalStrings(topics), marshalStrings(challenging), id.String())
	if err != nil {
		r.logger.Error("failed to set topics", "script_id", id, "error", err)
		return common.WrapError(err, "set topics")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *scriptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Script, error) {
	rows, err := r.store.query(ctx,
		`SELECT id, student_id, title, subject, grade_level, source_path, format, topics, challenging_topics, uploaded_at
		 FROM scripts WHERE id = ?`, id.String())
	if err != nil {
		return nil, common.WrapError(err, "get script")
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, common.ErrNotFound
	}
	return scanScript(rows)
}

func (r *scriptRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Script, error) {
	rows, err := r.store.query(ctx,
		`SELECT id, student_id, title, subject, grade_level, source_path, format, topics, challenging_topics, uploaded_at
		 FROM scripts WHERE student_id = ? ORDER BY uploaded_at`, studentID.String())
	if err != nil {
		return nil, common.WrapError(err, "list scripts")
	}
	defer rows.Close()

	var out []*entity.Script
	for rows.Next() {
		s, err := scanScript(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanScript(rows *sql.Rows) (*entity.Script, error) {
	var s entity.Script
	var id, studentID, format, topics, challenging string
	err := rows.Scan(&id, &studentID, &s.Title, &s.Subject, &s.GradeLevel, &s.SourcePath, &format, &topics, &challenging, &s.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "scan script")
	}
	if s.ID, err = uuid.Parse(id); err != nil {
		return nil, common.WrapError(err, "parse script id")
	}
	if s.StudentID, err = uuid.Parse(studentID); err != nil {
		return nil, common.WrapError(err, "parse student id")
	}
	s.Format = constants.FileFormat(format)
	s.Topics = unmarshalStrings(topics)
	s.ChallengingTopics = unmarshalStrings(challenging)
	return &s, nil
}
