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

type StudentRepository interface {
	Create(ctx context.Context, username, gradeLevel string) (*entity.Student, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error)
	GetOrCreateByUsername(ctx context.Context, username string) (*entity.Student, error)
}

type studentRepository struct {
	store  *Store
	logger *slog.Logger
}

func NewStudentRepository(store *Store, logger *slog.Logger) StudentRepository {
	return &studentRepository{store: store, logger: logger}
}

func (r *studentRepository) Create(ctx context.Context, username, gradeLevel string) (*entity.Student, error) {
	st := &entity.Student{
		ID:         uuid.New(),
		Username:   username,
		GradeLevel: gradeLevel,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := r.store.exec(ctx,
		`INSERT INTO students (id, username, grade_level, created_at) VALUES (?, ?, ?, ?)`,
		st.ID.String(), st.Username, st.GradeLevel, st.CreatedAt)
	if err != nil {
		r.logger.Error("failed to create student", "username", username, "error", err)
		return nil, common.WrapError(err, "create student")
	}
	return st, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	row := r.store.queryRow(ctx,
		`SELECT id, username, grade_level, created_at FROM students WHERE id = ?`, id.String())
	return scanStudent(row)
}

func (r *studentRepository) GetOrCreateByUsername(ctx context.Context, username string) (*entity.Student, error) {
	row := r.store.queryRow(ctx,
		`SELECT id, username, grade_level, created_at FROM students WHERE username = ?`, username)
	st, err := scanStudent(row)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	return r.Create(ctx, username, "")
}

func scanStudent(row *sql.Row) (*entity.Student, error) {
	var st entity.Student
	var id string
	err := row.Scan(&id, &st.Username, &st.GradeLevel, &st.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "scan student")
	}
	st.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, common.WrapError(err, "parse student id")
	}
	return &st, nil
}
