package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/study-tracker/constants"
	"github.com/joseph-ayodele/study-tracker/internal/common"
	"github.com/joseph-ayodele/study-tracker/internal/entity"
)

var storeSeq int

func openTestStore(t *testing.T) *Store {
	t.Helper()
	storeSeq++
	store, err := Open(context.Background(), Config{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:storetest%d?mode=memory&cache=shared", storeSeq),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "oracle", DSN: "x"}, nil)
	require.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	store := openTestStore(t)
	assert.NoError(t, store.HealthCheck(context.Background(), time.Second))
}

func TestStudentRepository_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	repo := NewStudentRepository(store, nil)
	ctx := context.Background()

	st, err := repo.Create(ctx, "amahle", "Grade 10")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, st.ID)

	got, err := repo.GetByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "amahle", got.Username)
	assert.Equal(t, "Grade 10", got.GradeLevel)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestStudentRepository_GetOrCreateByUsername(t *testing.T) {
	store := openTestStore(t)
	repo := NewStudentRepository(store, nil)
	ctx := context.Background()

	first, err := repo.GetOrCreateByUsername(ctx, "sipho")
	require.NoError(t, err)
	second, err := repo.GetOrCreateByUsername(ctx, "sipho")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestScriptRepository_RoundTripAndSetTopics(t *testing.T) {
	store := openTestStore(t)
	students := NewStudentRepository(store, nil)
	scripts := NewScriptRepository(store, nil)
	ctx := context.Background()

	st, err := students.Create(ctx, "amahle", "")
	require.NoError(t, err)

	script, err := scripts.Create(ctx, &entity.Script{
		StudentID:  st.ID,
		Title:      "Biology notes",
		Subject:    "Biology",
		SourcePath: "/tmp/notes.txt",
		Format:     constants.FormatText,
	})
	require.NoError(t, err)

	require.NoError(t, scripts.SetTopics(ctx, script.ID, []string{"photosynthesis", "respiration"}, []string{"photosynthesis"}))

	got, err := scripts.GetByID(ctx, script.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"photosynthesis", "respiration"}, got.Topics)
	assert.Equal(t, []string{"photosynthesis"}, got.ChallengingTopics)
	assert.Equal(t, constants.FormatText, got.Format)

	listed, err := scripts.ListByStudent(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	err = scripts.SetTopics(ctx, uuid.New(), nil, nil)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemorandumRepository_GetByScriptReturnsLatest(t *testing.T) {
	store := openTestStore(t)
	students := NewStudentRepository(store, nil)
	scripts := NewScriptRepository(store, nil)
	memos := NewMemorandumRepository(store, nil)
	ctx := context.Background()

	st, err := students.Create(ctx, "amahle", "")
	require.NoError(t, err)
	script, err := scripts.Create(ctx, &entity.Script{StudentID: st.ID, Title: "t", SourcePath: "p", Format: constants.FormatText})
	require.NoError(t, err)

	m, err := memos.Create(ctx, script.ID, "summary")
	require.NoError(t, err)

	got, err := memos.GetByScript(ctx, script.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, "summary", got.Content)
}

func TestStudyPlanRepository_ListActive(t *testing.T) {
	store := openTestStore(t)
	students := NewStudentRepository(store, nil)
	plans := NewStudyPlanRepository(store, nil)
	ctx := context.Background()

	st, err := students.Create(ctx, "amahle", "")
	require.NoError(t, err)

	p, err := plans.Create(ctx, st.ID, "Study Plan for algebra", "Focus on algebra.")
	require.NoError(t, err)
	assert.True(t, p.IsActive)

	active, err := plans.ListActiveByStudent(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, p.ID, active[0].ID)
}

func TestReportCardRepository_GradesRoundTrip(t *testing.T) {
	store := openTestStore(t)
	students := NewStudentRepository(store, nil)
	cards := NewReportCardRepository(store, nil)
	ctx := context.Background()

	st, err := students.Create(ctx, "amahle", "")
	require.NoError(t, err)

	card, err := cards.Create(ctx, &entity.ReportCard{
		StudentID:  st.ID,
		SourcePath: "/tmp/card.pdf",
		Format:     constants.FormatPDF,
		Term:       "Term 2",
	})
	require.NoError(t, err)

	grades := map[string]string{"Mathematics": "B", "Science": "B+"}
	require.NoError(t, cards.SetGrades(ctx, card.ID, grades))

	got, err := cards.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, grades, got.Grades)
	assert.Equal(t, "Term 2", got.Term)
}

func TestCareerRepository_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	students := NewStudentRepository(store, nil)
	cards := NewReportCardRepository(store, nil)
	careers := NewCareerRepository(store, nil)
	ctx := context.Background()

	st, err := students.Create(ctx, "amahle", "")
	require.NoError(t, err)
	card, err := cards.Create(ctx, &entity.ReportCard{StudentID: st.ID, SourcePath: "p", Format: constants.FormatText})
	require.NoError(t, err)

	rec, err := careers.Create(ctx, &entity.CareerRecommendation{
		StudentID:    st.ID,
		ReportCardID: card.ID,
		CareerAnalysis: entity.CareerAnalysis{
			Careers:             []string{"Engineer"},
			Strengths:           []string{"Mathematics"},
			AreasForImprovement: []string{"Writing"},
		},
	})
	require.NoError(t, err)

	listed, err := careers.ListByStudent(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, rec.ID, listed[0].ID)
	assert.Equal(t, []string{"Engineer"}, listed[0].Careers)
}

func TestRebind_PostgresPlaceholders(t *testing.T) {
	s := &Store{driver: "postgres"}
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", s.rebind("SELECT * FROM t WHERE a = ? AND b = ?"))

	s = &Store{driver: "sqlite"}
	assert.Equal(t, "SELECT ?", s.rebind("SELECT ?"))
}

func TestUnmarshalHelpers_Tolerant(t *testing.T) {
	assert.Nil(t, unmarshalStrings(""))
	assert.Nil(t, unmarshalStrings("not json"))
	assert.Equal(t, []string{"a"}, unmarshalStrings(`["a"]`))

	m := unmarshalStringMap(`{"Mathematics":"B"}`)
	assert.Equal(t, "B", m["Mathematics"])
	assert.Nil(t, unmarshalStringMap("garbage"))
}
