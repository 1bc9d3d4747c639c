package entity

import (
	"time"

	"github.com/google/uuid"
)

// Memorandum is a generated summary attributed to one uploaded script.
// Generated once per pipeline run, immutable thereafter.
type Memorandum struct {
	ID        uuid.UUID `json:"id"`
	ScriptID  uuid.UUID `json:"script_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
