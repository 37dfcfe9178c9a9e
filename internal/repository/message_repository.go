package repository

import (
	"context"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/store"
)

// MessageRepository stores direct messages. Messages are never edited; only
// the read flag changes, and only from false to true.
type MessageRepository struct {
	messages collection[models.Message]
	store    *store.Store
}

func NewMessageRepository(st *store.Store) *MessageRepository {
	return &MessageRepository{messages: newCollection[models.Message](st, store.KeyMessages), store: st}
}

func (r *MessageRepository) List(ctx context.Context) ([]models.Message, error) {
	return r.messages.all(ctx)
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*models.Message, error) {
	return r.messages.find(ctx, id)
}

// ListByUser returns messages the user sent or received.
func (r *MessageRepository) ListByUser(ctx context.Context, userID string) ([]models.Message, error) {
	return r.messages.filter(ctx, func(m models.Message) bool {
		return m.SenderID == userID || m.ReceiverID == userID
	})
}

func (r *MessageRepository) Inbox(ctx context.Context, userID string) ([]models.Message, error) {
	return r.messages.filter(ctx, func(m models.Message) bool { return m.ReceiverID == userID })
}

func (r *MessageRepository) Sent(ctx context.Context, userID string) ([]models.Message, error) {
	return r.messages.filter(ctx, func(m models.Message) bool { return m.SenderID == userID })
}

// Create stores the message unread.
func (r *MessageRepository) Create(ctx context.Context, in models.NewMessage) (*models.Message, error) {
	return r.messages.insert(ctx, models.Message{
		ID:         newID("msg"),
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		Subject:    in.Subject,
		Content:    in.Content,
		IsRead:     false,
		CreatedAt:  r.store.Now(),
	})
}

// MarkAsRead reports whether the message exists. Marking twice is harmless.
func (r *MessageRepository) MarkAsRead(ctx context.Context, id string) (bool, error) {
	updated, err := r.messages.modify(ctx, id, func(m *models.Message) { m.IsRead = true })
	return updated != nil, err
}
