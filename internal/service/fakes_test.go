package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/lshigami/Gradebook/internal/apperr"
	"github.com/lshigami/Gradebook/internal/model"
	"github.com/lshigami/Gradebook/internal/repository"
)

type fakeTestRepo struct {
	tests map[uint]*model.Test
	err   error
}

func (r *fakeTestRepo) FindByIDWithQuestions(_ context.Context, id uint) (*model.Test, error) {
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.tests[id]
	if !ok {
		return nil, apperr.Remote(http.StatusNotFound, fmt.Sprintf("test %d not found", id), nil)
	}
	c := *t
	c.Questions = append([]model.Question(nil), t.Questions...)
	return &c, nil
}

// fakeAttemptRepo behaves like the backend: it stores attempts and echoes them back.
type fakeAttemptRepo struct {
	mu         sync.Mutex
	nextID     uint
	totalMarks int
	attempts   map[uint]*model.TestAttempt

	startErr  error
	submitErr error
	gradeErr  error
	// gradeEcho, when set, replaces the stored attempt returned by Grade.
	gradeEcho func(*model.TestAttempt)
	// findHook runs before FindByID returns, outside the lock.
	findHook func(id uint)

	submitCalls int
	gradeCalls  int
	lastGrade   repository.GradeSubmission
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{nextID: 100, totalMarks: 100, attempts: map[uint]*model.TestAttempt{}}
}

func (r *fakeAttemptRepo) put(a *model.TestAttempt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := a.Normalize(); err != nil {
		panic(err)
	}
	r.attempts[a.ID] = a.Clone()
}

func (r *fakeAttemptRepo) Start(_ context.Context, testID uint) (*model.TestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.startErr != nil {
		return nil, r.startErr
	}
	r.nextID++
	a := &model.TestAttempt{ID: r.nextID, TestID: testID, TotalMarks: r.totalMarks, StartedAt: time.Now()}
	if err := a.Normalize(); err != nil {
		return nil, err
	}
	r.attempts[a.ID] = a.Clone()
	return a, nil
}

func (r *fakeAttemptRepo) FindByID(_ context.Context, id uint) (*model.TestAttempt, error) {
	r.mu.Lock()
	a, ok := r.attempts[id]
	var out *model.TestAttempt
	if ok {
		out = a.Clone()
	}
	hook := r.findHook
	r.mu.Unlock()
	if hook != nil {
		hook(id)
	}
	if !ok {
		return nil, apperr.Remote(http.StatusNotFound, fmt.Sprintf("attempt %d not found", id), nil)
	}
	return out, nil
}

func (r *fakeAttemptRepo) FindAllByTest(_ context.Context, testID uint) ([]model.TestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.TestAttempt
	for _, a := range r.attempts {
		if a.TestID == testID {
			out = append(out, *a.Clone())
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) FindMine(_ context.Context, filter model.AttemptFilter) ([]model.TestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.TestAttempt
	for _, a := range r.attempts {
		if filter.TestID != nil && a.TestID != *filter.TestID {
			continue
		}
		if filter.State != "" && a.State != filter.State {
			continue
		}
		out = append(out, *a.Clone())
	}
	return out, nil
}

func (r *fakeAttemptRepo) Submit(_ context.Context, id uint, answers []model.Answer) (*model.TestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitCalls++
	if r.submitErr != nil {
		return nil, r.submitErr
	}
	a := r.attempts[id]
	now := time.Now()
	a.SubmittedAt = &now
	a.Answers = append([]model.Answer(nil), answers...)
	if err := a.Normalize(); err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

func (r *fakeAttemptRepo) Grade(_ context.Context, id uint, req repository.GradeSubmission) (*model.TestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gradeCalls++
	r.lastGrade = req
	if r.gradeErr != nil {
		return nil, r.gradeErr
	}
	a := r.attempts[id]
	score, passed, grader := req.Score, req.IsPassed, req.GradedBy
	now := time.Now()
	a.IsGraded = true
	a.Score = &score
	a.IsPassed = &passed
	a.GradedBy = &grader
	a.GradedAt = &now
	for i := range a.Answers {
		for _, m := range req.Answers {
			if m.QuestionID == a.Answers[i].QuestionID {
				obtained := m.MarksObtained
				a.Answers[i].MarksObtained = &obtained
				a.Answers[i].IsCorrect = m.IsCorrect
			}
		}
	}
	if r.gradeEcho != nil {
		r.gradeEcho(a)
	}
	if err := a.Normalize(); err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

type fakeNotificationRepo struct {
	mu    sync.Mutex
	items []model.Notification
	err   error
	calls []string
	// fetchHook runs inside FindRecent after the items are copied, outside the lock.
	fetchHook func()
}

func (r *fakeNotificationRepo) FindRecent(_ context.Context, limit int) ([]model.Notification, error) {
	r.mu.Lock()
	r.calls = append(r.calls, "fetch")
	if r.err != nil {
		err := r.err
		r.mu.Unlock()
		return nil, err
	}
	out := append([]model.Notification(nil), r.items...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	hook := r.fetchHook
	r.mu.Unlock()
	if hook != nil {
		hook()
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf("read:%d", id))
	if r.err != nil {
		return r.err
	}
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "read-all")
	if r.err != nil {
		return r.err
	}
	for i := range r.items {
		r.items[i].IsRead = true
	}
	return nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf("delete:%d", id))
	if r.err != nil {
		return r.err
	}
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeNotificationRepo) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}
