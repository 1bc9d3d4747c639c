package entity

import (
	"time"

	"github.com/google/uuid"
)

// StudyPlan is generated study guidance attributed to one student.
type StudyPlan struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"student_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
