package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Gradebook/internal/apperr"
	"github.com/lshigami/Gradebook/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdminService struct {
	gradeErr  error
	lastGrade dto.GradeAttemptDTO
}

func (s *stubAdminService) GetTestAttempts(context.Context, uint) ([]dto.TestAttemptSummaryDTO, error) {
	return []dto.TestAttemptSummaryDTO{{ID: 1, Status: "GRADED", Badge: "PASSED"}}, nil
}

func (s *stubAdminService) GetGradingQueue(context.Context, uint) ([]dto.TestAttemptSummaryDTO, error) {
	return []dto.TestAttemptSummaryDTO{{ID: 2, Status: "SUBMITTED", Badge: "PENDING"}}, nil
}

func (s *stubAdminService) GetResultsSummary(_ context.Context, testID uint) (*dto.TestResultsSummaryDTO, error) {
	return &dto.TestResultsSummaryDTO{TestID: testID, Attempts: 3}, nil
}

func (s *stubAdminService) GradeAttempt(_ context.Context, attemptID uint, req dto.GradeAttemptDTO) (*dto.TestAttemptResultDTO, error) {
	s.lastGrade = req
	if s.gradeErr != nil {
		return nil, s.gradeErr
	}
	pct := "72.0"
	return &dto.TestAttemptResultDTO{ID: attemptID, Status: "GRADED", Badge: "PASSED", Percentage: &pct}, nil
}

func setupRouter(svc *stubAdminService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewAdminTestController(svc)
	r := gin.New()
	r.GET("/admin/tests/:test_id/attempts", ctrl.GetTestAttempts)
	r.GET("/admin/tests/:test_id/grading-queue", ctrl.GetGradingQueue)
	r.GET("/admin/tests/:test_id/summary", ctrl.GetResultsSummary)
	r.POST("/admin/attempts/:attempt_id/grade", ctrl.GradeAttempt)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGradeAttempt(t *testing.T) {
	svc := &stubAdminService{}
	r := setupRouter(svc)

	rec := do(r, http.MethodPost, "/admin/attempts/5/grade",
		`{"grader_id":7,"answers":[{"question_id":11,"marks_obtained":0},{"question_id":13,"marks_obtained":4.5,"is_correct":false,"feedback":"close"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.lastGrade.Answers, 2)
	require.NotNil(t, svc.lastGrade.Answers[0].MarksObtained)
	assert.Equal(t, 0.0, *svc.lastGrade.Answers[0].MarksObtained, "zero marks are accepted")
	assert.Equal(t, 4.5, *svc.lastGrade.Answers[1].MarksObtained)

	var resp dto.TestAttemptResultDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "PASSED", resp.Badge)
}

func TestGradeAttemptErrors(t *testing.T) {
	svc := &stubAdminService{}
	r := setupRouter(svc)

	rec := do(r, http.MethodPost, "/admin/attempts/5/grade", `{"grader_id":7,"answers":[{"question_id":11}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "marks_obtained is required")

	svc.gradeErr = apperr.Validation("invalid grading input", "question 11: marks 31.00 outside [0, 30.00]")
	rec = do(r, http.MethodPost, "/admin/attempts/5/grade", `{"grader_id":7,"answers":[{"question_id":11,"marks_obtained":31}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, []string{"question 11: marks 31.00 outside [0, 30.00]"}, errResp.Details)

	svc.gradeErr = apperr.InvalidState("grade", "GRADED")
	rec = do(r, http.MethodPost, "/admin/attempts/5/grade", `{"grader_id":7,"answers":[{"question_id":11,"marks_obtained":3}]}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListingEndpoints(t *testing.T) {
	r := setupRouter(&stubAdminService{})

	rec := do(r, http.MethodGet, "/admin/tests/1/attempts", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodGet, "/admin/tests/1/grading-queue", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"badge":"PENDING"`)

	rec = do(r, http.MethodGet, "/admin/tests/1/summary", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"attempts":3`)

	rec = do(r, http.MethodGet, "/admin/tests/abc/summary", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
