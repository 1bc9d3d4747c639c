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

type MemorandumRepository interface {
	Create(ctx context.Context, scriptID uuid.UUID, content string) (*entity.Memorandum, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Memorandum, error)
	GetByScript(ctx context.Context, scriptID uuid.UUID) (*entity.Memorandum, error)
}

type memorandumRepository struct {
	store  *Store
	logger *slog.Logger
}

func NewMemorandumRepository(store *Store, logger *slog.Logger) MemorandumRepository {
	return &memorandumRepository{store: store, logger: logger}
}

func (r *memorandumRepository) Create(ctx context.Context, scriptID uuid.UUID, content string) (*entity.Memorandum, error) {
	m := &entity.Memorandum{
		ID:        uuid.New(),
		ScriptID:  scriptID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.store.exec(ctx,
		`INSERT INTO memorandums (id, script_id, content, created_at) VALUES (?, ?, ?, ?)`,
		m.ID.String(), m.ScriptID.String(), m.Content, m.CreatedAt)
	if err != nil {
		r.logger.Error("failed to create memorandum", "script_id", scriptID, "error", err)
		return nil, common.WrapError(err, "create memorandum")
	}
	return m, nil
}

func (r *memorandumRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Memorandum, error) {
	row := r.store.queryRow(ctx,
		`SELECT id, script_id, content, created_at FROM memorandums WHERE id = ?`, id.String())
	return scanMemorandum(row)
}

func (r *memorandumRepository) GetByScript(ctx context.Context, scriptID uuid.UUID) (*entity.Memorandum, error) {
	row := r.store.queryRow(ctx,
		`SELECT id, script_id, content, created_at FROM memorandums WHERE script_id = ? ORDER BY created_at DESC LIMIT 1`,
		scriptID.String())
	return scanMemorandum(row)
}

func scanMemorandum(row *sql.Row) (*entity.Memorandum, error) {
	var m entity.Memorandum
	var id, scriptID string
	err := row.Scan(&id, &scriptID, &m.Content, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "scan memorandum")
	}
	if m.ID, err = uuid.Parse(id); err != nil {
		return nil, common.WrapError(err, "parse memorandum id")
	}
	if m.ScriptID, err = uuid.Parse(scriptID); err != nil {
		return nil, common.WrapError(err, "parse script id")
	}
	return &m, nil
}
