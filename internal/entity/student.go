package entity

import (
	"time"

	"github.com/google/uuid"
)

// Student represents a student account for data transfer between layers.
// Authentication is handled outside this service; the ID is the attribution
// identity every artifact is recorded against.
type Student struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	GradeLevel string    `json:"grade_level,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
