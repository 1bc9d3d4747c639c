package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/study-tracker/internal/common"
	"github.com/joseph-ayodele/study-tracker/internal/entity"
)

type fakeCardRepo struct {
	cards []*entity.ReportCard
}

func (f *fakeCardRepo) Create(_ context.Context, c *entity.ReportCard) (*entity.ReportCard, error) {
	return c, nil
}

func (f *fakeCardRepo) GetByID(context.Context, uuid.UUID) (*entity.ReportCard, error) {
	return nil, common.ErrNotFound
}

func (f *fakeCardRepo) SetGrades(context.Context, uuid.UUID, map[string]string) error {
	return nil
}

func (f *fakeCardRepo) ListByStudent(context.Context, uuid.UUID) ([]*entity.ReportCard, error) {
	return f.cards, nil
}

type fakeCareerRepo struct {
	recs []*entity.CareerRecommendation
}

func (f *fakeCareerRepo) Create(_ context.Context, r *entity.CareerRecommendation) (*entity.CareerRecommendation, error) {
	return r, nil
}

func (f *fakeCareerRepo) GetByID(context.Context, uuid.UUID) (*entity.CareerRecommendation, error) {
	return nil, common.ErrNotFound
}

func (f *fakeCareerRepo) ListByStudent(context.Context, uuid.UUID) ([]*entity.CareerRecommendation, error) {
	return f.recs, nil
}

func TestExportGradesXLSX(t *testing.T) {
	studentID := uuid.New()
	uploaded := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	cards := &fakeCardRepo{cards: []*entity.ReportCard{{
		ID:         uuid.New(),
		StudentID:  studentID,
		Term:       "Term 1",
		Grades:     map[string]string{"Science": "B+", "Mathematics": "B"},
		UploadedAt: uploaded,
	}}}
	careers := &fakeCareerRepo{recs: []*entity.CareerRecommendation{{
		ID:        uuid.New(),
		StudentID: studentID,
		CareerAnalysis: entity.CareerAnalysis{
			Careers:             []string{"Engineer", "Teacher"},
			Strengths:           []string{"Mathematics"},
			AreasForImprovement: []string{"Writing"},
		},
		CreatedAt: uploaded,
	}}}

	svc := NewService(cards, careers, nil)
	data, err := svc.ExportGradesXLSX(context.Background(), studentID)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Grades")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Uploaded", "Term", "Subject", "Grade"}, rows[0])
	// Subjects are sorted within a card.
	assert.Equal(t, []string{"2025-03-14", "Term 1", "Mathematics", "B"}, rows[1])
	assert.Equal(t, []string{"2025-03-14", "Term 1", "Science", "B+"}, rows[2])

	careersRows, err := f.GetRows("Careers")
	require.NoError(t, err)
	require.Len(t, careersRows, 2)
	assert.Equal(t, "Engineer, Teacher", careersRows[1][1])
}

func TestExportGradesXLSX_NoData(t *testing.T) {
	svc := NewService(&fakeCardRepo{}, &fakeCareerRepo{}, nil)
	data, err := svc.ExportGradesXLSX(context.Background(), uuid.New())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Grades")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
