package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/joseph-ayodele/study-tracker/constants"
)

// Script represents an uploaded study document (lesson script, notes, etc.).
// Topics and ChallengingTopics are filled in by the document analysis
// pipeline after upload.
type Script struct {
	ID                uuid.UUID            `json:"id"`
	StudentID         uuid.UUID            `json:"student_id"`
	Title             string               `json:"title"`
	Subject           string               `json:"subject,omitempty"`
	GradeLevel        string               `json:"grade_level,omitempty"`
	SourcePath        string               `json:"source_path"`
	Format            constants.FileFormat `json:"format"`
	Topics            []string             `json:"topics,omitempty"`
	ChallengingTopics []string             `json:"challenging_topics,omitempty"`
	UploadedAt        time.Time            `json:"uploaded_at"`
}
