package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/joseph-ayodele/study-tracker/constants"
)

// ReportCard represents an uploaded report card. Grade and Term are
// caller-supplied metadata, not discovered by the pipeline. Grades holds the
// extracted subject -> grade-token pairs; subject names are free text from
// pattern matching and are deliberately NOT normalized, so near-duplicates
// ("Math" vs "Mathematics") may coexist.
type ReportCard struct {
	ID         uuid.UUID            `json:"id"`
	StudentID  uuid.UUID            `json:"student_id"`
	SourcePath string               `json:"source_path"`
	Format     constants.FileFormat `json:"format"`
	Grade      string               `json:"grade,omitempty"`
	Term       string               `json:"term,omitempty"`
	Grades     map[string]string    `json:"grades,omitempty"`
	UploadedAt time.Time            `json:"uploaded_at"`
}
