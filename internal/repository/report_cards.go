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

type ReportCardRepository interface {
	Create(ctx context.Context, card *entity.ReportCard) (*entity.ReportCard, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ReportCard, error)
	// SetGrades persists the extracted grade map. An empty map is valid:
	// no grades found is not an error.
	SetGrades(ctx context.Context, id uuid.UUID, grades map[string]string) error
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.ReportCard, error)
}

type reportCardRepository struct {
	store  *Store
	logger *slog.Logger
}

func NewReportCardRepository(store *Store, logger *slog.Logger) ReportCardRepository {
	return &reportCardRepository{store: store, logger: logger}
}

func (r *reportCardRepository) Create(ctx context.Context, card *entity.ReportCard) (*entity.ReportCard, error) {
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	if card.UploadedAt.IsZero() {
		card.UploadedAt = time.Now().UTC()
	}
	_, err := r.store.exec(ctx,
		`INSERT INTO report_cards (id, student_id, source_path, format, grade, term, grades, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		card.ID.String(), card.StudentID.String(), card.SourcePath, string(card.Format),
		card.Grade, card.Term, marshalStringMap(card.Grades), card.UploadedAt)
	if err != nil {
		r.logger.Error("failed to create report card", "student_id", card.StudentID, "error", err)
		return nil, common.WrapError(err, "create report card")
	}
	return card, nil
}

func (r *reportCardRepository) SetGrades(ctx context.Context, id uuid.UUID, grades map[string]string) error {
	res, err := r.store.exec(ctx,
		`UPDATE report_cards SET grades = ? WHERE id = ?`,
		marshalStringMap(grades), id.String())
	if err != nil {
		r.logger.Error("failed to set grades", "report_card_id", id, "error", err)
		return common.WrapError(err, "set grades")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *reportCardRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReportCard, error) {
	rows, err := r.store.query(ctx,
		`SELECT id, student_id, source_path, format, grade, term, grades, uploaded_at
		 FROM report_cards WHERE id = ?`, id.String())
	if err != nil {
		return nil, common.WrapError(err, "get report card")
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, common.ErrNotFound
	}
	return scanReportCard(rows)
}

func (r *reportCardRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.ReportCard, error) {
	rows, err := r.store.query(ctx,
		`SELECT id, student_id, source_path, format, grade, term, grades, uploaded_at
		 FROM report_cards WHERE student_id = ? ORDER BY uploaded_at`, studentID.String())
	if err != nil {
		return nil, common.WrapError(err, "list report cards")
	}
	defer rows.Close()

	var out []*entity.ReportCard
	for rows.Next() {
		c, err := scanReportCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanReportCard(rows *sql.Rows) (*entity.ReportCard, error) {
	var c entity.ReportCard
	var id, studentID, format, grades string
	err := rows.Scan(&id, &studentID, &c.SourcePath, &format, &c.Grade, &c.Term, &grades, &c.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "scan report card")
	}
	if c.ID, err = uuid.Parse(id); err != nil {
		return nil, common.WrapError(err, "parse report card id")
	}
	if c.StudentID, err = uuid.Parse(studentID); err != nil {
		return nil, common.WrapError(err, "parse student id")
	}
	c.Format = constants.FileFormat(format)
	c.Grades = unmarshalStringMap(grades)
	return &c, nil
}
