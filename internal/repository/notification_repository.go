package repository

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/lshigami/Gradebook/internal/gateway"
	"github.com/lshigami/Gradebook/internal/model"
)

type NotificationRepository interface {
	FindRecent(ctx context.Context, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id uint) error
}

type notificationRepository struct {
	client *gateway.Client
}

func NewNotificationRepository(client *gateway.Client) NotificationRepository {
	return &notificationRepository{client: client}
}

func (r *notificationRepository) FindRecent(ctx context.Context, limit int) ([]model.Notification, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var notifications []model.Notification
	if err := r.client.Get(ctx, "/notifications", query, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uint) error {
	return r.client.Patch(ctx, fmt.Sprintf("/notifications/%d/read", id), nil, nil)
}

func (r *notificationRepository) MarkAllRead(ctx context.Context) error {
	return r.client.Patch(ctx, "/notifications/read-all", nil, nil)
}

func (r *notificationRepository) Delete(ctx context.Context, id uint) error {
	return r.client.Delete(ctx, fmt.Sprintf("/notifications/%d", id))
}
