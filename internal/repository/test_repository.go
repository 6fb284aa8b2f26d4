package repository

import (
	"context"
	"fmt"

	"github.com/lshigami/Gradebook/internal/gateway"
	"github.com/lshigami/Gradebook/internal/model"
	"golang.org/x/sync/singleflight"
)

type TestRepository interface {
	FindByIDWithQuestions(ctx context.Context, id uint) (*model.Test, error)
}

type testRepository struct {
	client *gateway.Client
	group  singleflight.Group
}

func NewTestRepository(client *gateway.Client) TestRepository {
	return &testRepository{client: client}
}

func (r *testRepository) FindByIDWithQuestions(ctx context.Context, id uint) (*model.Test, error) {
	// Concurrent loads of the same test for the same caller share one backend call.
	key := fmt.Sprintf("%d|%s", id, gateway.AuthToken(ctx))
	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		var test model.Test
		if err := r.client.Get(ctx, fmt.Sprintf("/tests/%d", id), nil, &test); err != nil {
			return nil, err
		}
		return &test, nil
	})
	if err != nil {
		return nil, err
	}
	// Callers get their own copy of the shared result.
	return v.(*model.Test).Clone(), nil
}
