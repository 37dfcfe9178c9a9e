package service

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mindbuilders/dtmms/internal/models"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
)

type messageRepository interface {
	FindByID(ctx context.Context, id string) (*models.Message, error)
	Inbox(ctx context.Context, userID string) ([]models.Message, error)
	Sent(ctx context.Context, userID string) ([]models.Message, error)
	Create(ctx context.Context, in models.NewMessage) (*models.Message, error)
	MarkAsRead(ctx context.Context, id string) (bool, error)
}

type notificationRepository interface {
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	Create(ctx context.Context, in models.NewNotification) (*models.Notification, error)
	MarkAsRead(ctx context.Context, id string) (bool, error)
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required"`
	Subject    string `json:"subject" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

type ReplyRequest struct {
	Content string `json:"content" validate:"required"`
}

type CreateNotificationRequest struct {
	UserID  string                  `json:"userId" validate:"required"`
	Title   string                  `json:"title" validate:"required"`
	Message string                  `json:"message" validate:"required"`
	Type    models.NotificationType `json:"type" validate:"required,oneof=info success warning alert"`
	Link    string                  `json:"link"`
}

// MessagingService covers direct messages and notifications.
type MessagingService struct {
	messages      messageRepository
	notifications notificationRepository
	users         userLookup
	validator     *validator.Validate
	logger        *zap.Logger
}

func NewMessagingService(messages messageRepository, notifications notificationRepository, users userLookup, validate *validator.Validate, logger *zap.Logger) *MessagingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &MessagingService{messages: messages, notifications: notifications, users: users, validator: validate, logger: logger}
}

// Inbox lists messages received by userID, newest first.
func (s *MessagingService) Inbox(ctx context.Context, userID string) ([]models.Message, error) {
	messages, err := s.messages.Inbox(ctx, userID)
	if err != nil {
		return nil, storageError(err, "failed to list inbox")
	}
	sortMessagesNewestFirst(messages)
	return messages, nil
}

// Sent lists messages sent by userID, newest first.
func (s *MessagingService) Sent(ctx context.Context, userID string) ([]models.Message, error) {
	messages, err := s.messages.Sent(ctx, userID)
	if err != nil {
		return nil, storageError(err, "failed to list sent messages")
	}
	sortMessagesNewestFirst(messages)
	return messages, nil
}

// UnreadCount counts unread messages addressed to userID.
func (s *MessagingService) UnreadCount(ctx context.Context, userID string) (int, error) {
	messages, err := s.messages.Inbox(ctx, userID)
	if err != nil {
		return 0, storageError(err, "failed to list inbox")
	}
	unread := 0
	for _, m := range messages {
		if !m.IsRead {
			unread++
		}
	}
	return unread, nil
}

func (s *MessagingService) Send(ctx context.Context, senderID string, req SendMessageRequest) (*models.Message, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid message payload")
	}
	receiver, err := s.users.FindByID(ctx, req.ReceiverID)
	if err != nil {
		return nil, storageError(err, "failed to load receiver")
	}
	if receiver == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "receiver does not exist")
	}

	message, err := s.messages.Create(ctx, models.NewMessage{
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		Subject:    req.Subject,
		Content:    req.Content,
	})
	if err != nil {
		return nil, storageError(err, "failed to send message")
	}
	return message, nil
}

// Reply answers a message the caller received, addressed to its sender with
// the subject prefixed "Re: ".
func (s *MessagingService) Reply(ctx context.Context, senderID, messageID string, req ReplyRequest) (*models.Message, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid reply payload")
	}
	original, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, storageError(err, "failed to load message")
	}
	if original == nil {
		return nil, notFound("message not found")
	}
	if original.ReceiverID != senderID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the receiver can reply")
	}

	reply, err := s.messages.Create(ctx, models.NewMessage{
		SenderID:   senderID,
		ReceiverID: original.SenderID,
		Subject:    "Re: " + original.Subject,
		Content:    req.Content,
	})
	if err != nil {
		return nil, storageError(err, "failed to send reply")
	}
	return reply, nil
}

// MarkMessageRead flags a received message as read. Reading it again is a
// no-op.
func (s *MessagingService) MarkMessageRead(ctx context.Context, userID, messageID string) error {
	message, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return storageError(err, "failed to load message")
	}
	if message == nil {
		return notFound("message not found")
	}
	if message.ReceiverID != userID {
		return appErrors.Clone(appErrors.ErrForbidden, "only the receiver can mark a message read")
	}
	if message.IsRead {
		return nil
	}
	found, err := s.messages.MarkAsRead(ctx, messageID)
	if err != nil {
		return storageError(err, "failed to mark message read")
	}
	if !found {
		return notFound("message not found")
	}
	return nil
}

// Notifications lists a user's notifications newest first.
func (s *MessagingService) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := s.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, storageError(err, "failed to list notifications")
	}
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (s *MessagingService) Notify(ctx context.Context, req CreateNotificationRequest) (*models.Notification, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid notification payload")
	}
	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, storageError(err, "failed to load user")
	}
	if user == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "user does not exist")
	}

	notification, err := s.notifications.Create(ctx, models.NewNotification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Link:    req.Link,
	})
	if err != nil {
		return nil, storageError(err, "failed to create notification")
	}
	return notification, nil
}

func (s *MessagingService) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	notification, err := s.notifications.FindByID(ctx, notificationID)
	if err != nil {
		return storageError(err, "failed to load notification")
	}
	if notification == nil {
		return notFound("notification not found")
	}
	if notification.UserID != userID {
		return appErrors.Clone(appErrors.ErrForbidden, "notification belongs to another user")
	}
	if _, err := s.notifications.MarkAsRead(ctx, notificationID); err != nil {
		return storageError(err, "failed to mark notification read")
	}
	return nil
}

func sortMessagesNewestFirst(messages []models.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
}
