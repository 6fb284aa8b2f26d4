package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lshigami/Gradebook/internal/apperr"
	"github.com/lshigami/Gradebook/internal/gateway"
	"github.com/lshigami/Gradebook/internal/model"
)

// GradeSubmission is the payload of gradeAttempt.
type GradeSubmission struct {
	Answers  []model.AnswerMark `json:"answers"`
	GradedBy uint               `json:"graded_by"`
	Score    float64            `json:"score"`
	IsPassed bool               `json:"is_passed"`
}

type TestAttemptRepository interface {
	Start(ctx context.Context, testID uint) (*model.TestAttempt, error)
	FindByID(ctx context.Context, id uint) (*model.TestAttempt, error)
	FindAllByTest(ctx context.Context, testID uint) ([]model.TestAttempt, error)
	FindMine(ctx context.Context, filter model.AttemptFilter) ([]model.TestAttempt, error)
	Submit(ctx context.Context, id uint, answers []model.Answer) (*model.TestAttempt, error)
	Grade(ctx context.Context, id uint, req GradeSubmission) (*model.TestAttempt, error)
}

type testAttemptRepository struct {
	client *gateway.Client
}

func NewTestAttemptRepository(client *gateway.Client) TestAttemptRepository {
	return &testAttemptRepository{client: client}
}

func (r *testAttemptRepository) Start(ctx context.Context, testID uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	if err := r.client.Post(ctx, fmt.Sprintf("/tests/%d/attempts", testID), struct{}{}, &attempt); err != nil {
		return nil, err
	}
	return normalizeOne(&attempt)
}

func (r *testAttemptRepository) FindByID(ctx context.Context, id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	if err := r.client.Get(ctx, fmt.Sprintf("/attempts/%d", id), nil, &attempt); err != nil {
		return nil, err
	}
	return normalizeOne(&attempt)
}

func (r *testAttemptRepository) FindAllByTest(ctx context.Context, testID uint) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	if err := r.client.Get(ctx, fmt.Sprintf("/tests/%d/attempts", testID), nil, &attempts); err != nil {
		return nil, err
	}
	return normalizeAll(attempts)
}

func (r *testAttemptRepository) FindMine(ctx context.Context, filter model.AttemptFilter) ([]model.TestAttempt, error) {
	query := url.Values{}
	if filter.TestID != nil {
		query.Set("test_id", strconv.FormatUint(uint64(*filter.TestID), 10))
	}
	if filter.State != "" {
		query.Set("status", strings.ToLower(string(filter.State)))
	}
	var attempts []model.TestAttempt
	if err := r.client.Get(ctx, "/attempts/me", query, &attempts); err != nil {
		return nil, err
	}
	return normalizeAll(attempts)
}

func (r *testAttemptRepository) Submit(ctx context.Context, id uint, answers []model.Answer) (*model.TestAttempt, error) {
	body := struct {
		Answers []model.Answer `json:"answers"`
	}{Answers: answers}
	var attempt model.TestAttempt
	if err := r.client.Post(ctx, fmt.Sprintf("/attempts/%d/submit", id), body, &attempt); err != nil {
		return nil, err
	}
	return normalizeOne(&attempt)
}

func (r *testAttemptRepository) Grade(ctx context.Context, id uint, req GradeSubmission) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	if err := r.client.Post(ctx, fmt.Sprintf("/attempts/%d/grade", id), req, &attempt); err != nil {
		return nil, err
	}
	return normalizeOne(&attempt)
}

func normalizeOne(a *model.TestAttempt) (*model.TestAttempt, error) {
	if err := a.Normalize(); err != nil {
		return nil, apperr.Remote(http.StatusBadGateway, "malformed attempt from backend", err)
	}
	return a, nil
}

func normalizeAll(attempts []model.TestAttempt) ([]model.TestAttempt, error) {
	for i := range attempts {
		if err := attempts[i].Normalize(); err != nil {
			return nil, apperr.Remote(http.StatusBadGateway, "malformed attempt from backend", err)
		}
	}
	return attempts, nil
}
