package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/joseph-ayodele/study-tracker/internal/common"
	"github.com/joseph-ayodele/study-tracker/internal/export"
	"github.com/joseph-ayodele/study-tracker/internal/extract"
	"github.com/joseph-ayodele/study-tracker/internal/llm"
	"github.com/joseph-ayodele/study-tracker/internal/pipeline/document"
	"github.com/joseph-ayodele/study-tracker/internal/pipeline/reportcard"
	repo "github.com/joseph-ayodele/study-tracker/internal/repository"

	processor "github.com/joseph-ayodele/study-tracker/internal/pipeline"
)

var serverSeq int

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	serverSeq++
	store, err := repo.Open(context.Background(), repo.Config{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:servertest%d?mode=memory&cache=shared", serverSeq),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	students := repo.NewStudentRepository(store, nil)
	scripts := repo.NewScriptRepository(store, nil)
	memos := repo.NewMemorandumRepository(store, nil)
	plans := repo.NewStudyPlanRepository(store, nil)
	cards := repo.NewReportCardRepository(store, nil)
	careers := repo.NewCareerRepository(store, nil)

	extractor := extract.NewExtractor(nil)
	docs := document.NewPipeline(nil, extractor, llm.Unavailable{}, scripts, memos, plans)
	cardPipe := reportcard.NewPipeline(nil, extractor, llm.Unavailable{}, cards, careers)
	proc := processor.NewProcessor(nil, docs, cardPipe)
	exporter := export.NewService(cards, careers, nil)

	cfg := &common.Config{
		Uploads: common.UploadConfig{Dir: t.TempDir(), MaxUploadMB: 4},
	}
	srv := NewServer(cfg, zap.NewNop(), proc, llm.Unavailable{}, exporter,
		students, scripts, memos, plans, cards, careers)

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func multipartUpload(t *testing.T, fields map[string]string, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUploadScript_FullAnalysis(t *testing.T) {
	ts := newTestServer(t)

	body, ctype := multipartUpload(t, map[string]string{
		"student_username": "amahle",
		"title":            "Biology notes",
	}, "notes.txt", "Photosynthesis converts sunlight into chemical energy inside chloroplasts")

	resp, err := http.Post(ts.URL+"/v1/scripts", ctype, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var res document.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.NotEmpty(t, res.Topics)
	assert.NotEmpty(t, res.ChallengingTopics)
	assert.NotEmpty(t, res.MemorandumID)
	assert.NotEmpty(t, res.StudyPlanID)

	// memorandum is retrievable by script id and directly
	memoResp, err := http.Get(ts.URL + "/v1/scripts/" + res.ScriptID.String() + "/memorandum")
	require.NoError(t, err)
	defer memoResp.Body.Close()
	assert.Equal(t, http.StatusOK, memoResp.StatusCode)

	planResp, err := http.Get(ts.URL + "/v1/study-plans/" + res.StudyPlanID.String())
	require.NoError(t, err)
	defer planResp.Body.Close()
	assert.Equal(t, http.StatusOK, planResp.StatusCode)
}

func TestUploadScript_RejectsUnknownExtension(t *testing.T) {
	ts := newTestServer(t)

	body, ctype := multipartUpload(t, map[string]string{"student_username": "amahle"}, "notes.exe", "x")
	resp, err := http.Post(ts.URL+"/v1/scripts", ctype, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadScript_RequiresUsername(t *testing.T) {
	ts := newTestServer(t)

	body, ctype := multipartUpload(t, nil, "notes.txt", "x")
	resp, err := http.Post(ts.URL+"/v1/scripts", ctype, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadReportCard_AndDashboard(t *testing.T) {
	ts := newTestServer(t)

	body, ctype := multipartUpload(t, map[string]string{
		"student_username": "sipho",
		"term":             "Term 2",
	}, "card.txt", "Mathematics: B\nScience: B+\n")

	resp, err := http.Post(ts.URL+"/v1/report-cards", ctype, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var res reportcard.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, map[string]string{"Mathematics": "B", "Science": "B+"}, res.Grades)
	assert.NotEmpty(t, res.RecommendationID)

	// the report card is visible on the student dashboard
	cardResp, err := http.Get(ts.URL + "/v1/report-cards/" + res.ReportCardID.String())
	require.NoError(t, err)
	defer cardResp.Body.Close()
	require.Equal(t, http.StatusOK, cardResp.StatusCode)

	var card struct {
		StudentID string `json:"student_id"`
	}
	require.NoError(t, json.NewDecoder(cardResp.Body).Decode(&card))

	dashResp, err := http.Get(ts.URL + "/v1/students/" + card.StudentID + "/dashboard")
	require.NoError(t, err)
	defer dashResp.Body.Close()
	require.Equal(t, http.StatusOK, dashResp.StatusCode)

	var dash dashboardResponse
	require.NoError(t, json.NewDecoder(dashResp.Body).Decode(&dash))
	assert.Equal(t, "sipho", dash.Student.Username)
	assert.Len(t, dash.ReportCards, 1)
	assert.Len(t, dash.Careers, 1)
	assert.Equal(t, 1, dash.Totals.ReportCards)

	recResp, err := http.Get(ts.URL + "/v1/career-recommendations/" + res.RecommendationID.String())
	require.NoError(t, err)
	defer recResp.Body.Close()
	assert.Equal(t, http.StatusOK, recResp.StatusCode)
}

func TestCreateStudent(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/students", "application/json",
		strings.NewReader(`{"username": "lindiwe", "grade_level": "Grade 11"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp2, err := http.Post(ts.URL+"/v1/students", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestDashboard_UnknownStudent(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/students/0b129c29-4d43-41b0-a6f1-7a72e4e8b0de/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp2, err := http.Get(ts.URL + "/v1/students/not-a-uuid/dashboard")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestChat_UnavailableWithoutProvider(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/chat", "application/json",
		strings.NewReader(`{"message": "explain photosynthesis"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestExportGrades_Endpoint(t *testing.T) {
	ts := newTestServer(t)

	body, ctype := multipartUpload(t, map[string]string{"student_username": "thabo"}, "card.txt", "Mathematics: A\n")
	resp, err := http.Post(ts.URL+"/v1/report-cards", ctype, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var res reportcard.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))

	cardResp, err := http.Get(ts.URL + "/v1/report-cards/" + res.ReportCardID.String())
	require.NoError(t, err)
	defer cardResp.Body.Close()
	var card struct {
		StudentID string `json:"student_id"`
	}
	require.NoError(t, json.NewDecoder(cardResp.Body).Decode(&card))

	exportResp, err := http.Get(ts.URL + "/v1/students/" + card.StudentID + "/grades/export")
	require.NoError(t, err)
	defer exportResp.Body.Close()
	assert.Equal(t, http.StatusOK, exportResp.StatusCode)
	assert.Contains(t, exportResp.Header.Get("Content-Type"), "spreadsheetml")
}
