package entity

import (
	"time"

	"github.com/google/uuid"
)

// CareerAnalysis holds three parallel sequences; they are independently sized
// and carry no inter-sequence length constraint.
type CareerAnalysis struct {
	Careers             []string `json:"careers"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
}

// CareerRecommendation ties a career analysis to the student and report card
// it was derived from.
type CareerRecommendation struct {
	ID           uuid.UUID `json:"id"`
	StudentID    uuid.UUID `json:"student_id"`
	ReportCardID uuid.UUID `json:"report_card_id"`
	CareerAnalysis
	CreatedAt time.Time `json:"created_at"`
}
