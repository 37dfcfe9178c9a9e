package repository

import (
	"context"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/store"
)

type NotificationRepository struct {
	notifications collection[models.Notification]
	store         *store.Store
}

func NewNotificationRepository(st *store.Store) *NotificationRepository {
	return &NotificationRepository{notifications: newCollection[models.Notification](st, store.KeyNotifications), store: st}
}

func (r *NotificationRepository) List(ctx context.Context) ([]models.Notification, error) {
	return r.notifications.all(ctx)
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	return r.notifications.find(ctx, id)
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return r.notifications.filter(ctx, func(n models.Notification) bool { return n.UserID == userID })
}

func (r *NotificationRepository) Create(ctx context.Context, in models.NewNotification) (*models.Notification, error) {
	return r.notifications.insert(ctx, models.Notification{
		ID:        newID("notif"),
		UserID:    in.UserID,
		Title:     in.Title,
		Message:   in.Message,
		Type:      in.Type,
		IsRead:    false,
		Link:      in.Link,
		CreatedAt: r.store.Now(),
	})
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, id string) (bool, error) {
	updated, err := r.notifications.modify(ctx, id, func(n *models.Notification) { n.IsRead = true })
	return updated != nil, err
}
