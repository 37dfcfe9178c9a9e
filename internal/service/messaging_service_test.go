package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindbuilders/dtmms/internal/models"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
)

func TestMessagingServiceInboxAndSent(t *testing.T) {
	svc := newFixture(t).messaging()
	ctx := context.Background()

	inbox, err := svc.Inbox(ctx, "trainee-1")
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "msg-1", inbox[0].ID)

	sent, err := svc.Sent(ctx, "trainee-1")
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "msg-2", sent[0].ID)
}

func TestMessagingServiceInboxNewestFirst(t *testing.T) {
	f := newFixture(t)
	svc := f.messaging()
	ctx := context.Background()

	older, err := svc.Send(ctx, "trainer-2", SendMessageRequest{ReceiverID: "trainee-1", Subject: "Week 1", Content: "Welcome"})
	require.NoError(t, err)
	f.clock.Advance(time.Hour)
	newer, err := svc.Send(ctx, "mentor-1", SendMessageRequest{ReceiverID: "trainee-1", Subject: "Week 2", Content: "Check in"})
	require.NoError(t, err)

	inbox, err := svc.Inbox(ctx, "trainee-1")
	require.NoError(t, err)
	require.Len(t, inbox, 3)
	assert.Equal(t, newer.ID, inbox[0].ID)
	assert.Equal(t, older.ID, inbox[1].ID)
	assert.Equal(t, "msg-1", inbox[2].ID)
	assert.False(t, inbox[0].IsRead)
}

func TestMessagingServiceSendRejectsUnknownReceiver(t *testing.T) {
	svc := newFixture(t).messaging()

	_, err := svc.Send(context.Background(), "trainee-1", SendMessageRequest{ReceiverID: "ghost", Subject: "Hi", Content: "?"})
	assertErrorCode(t, err, appErrors.ErrValidation)

	_, err = svc.Send(context.Background(), "trainee-1", SendMessageRequest{ReceiverID: "trainer-1"})
	assertErrorCode(t, err, appErrors.ErrValidation)
}

func TestMessagingServiceReply(t *testing.T) {
	svc := newFixture(t).messaging()
	ctx := context.Background()

	reply, err := svc.Reply(ctx, "trainee-2", "msg-3", ReplyRequest{Content: "See you Thursday"})
	require.NoError(t, err)
	assert.Equal(t, "trainee-2", reply.SenderID)
	assert.Equal(t, "mentor-1", reply.ReceiverID)
	assert.Equal(t, "Re: Mentorship Meeting Reminder", reply.Subject)

	_, err = svc.Reply(ctx, "trainee-1", "msg-3", ReplyRequest{Content: "not mine"})
	assertErrorCode(t, err, appErrors.ErrForbidden)

	_, err = svc.Reply(ctx, "trainee-2", "msg-404", ReplyRequest{Content: "?"})
	assertErrorCode(t, err, appErrors.ErrNotFound)
}

func TestMessagingServiceMarkMessageRead(t *testing.T) {
	svc := newFixture(t).messaging()
	ctx := context.Background()

	unread, err := svc.UnreadCount(ctx, "trainee-2")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	assertErrorCode(t, svc.MarkMessageRead(ctx, "mentor-1", "msg-3"), appErrors.ErrForbidden)
	assertErrorCode(t, svc.MarkMessageRead(ctx, "trainee-2", "msg-404"), appErrors.ErrNotFound)

	require.NoError(t, svc.MarkMessageRead(ctx, "trainee-2", "msg-3"))
	require.NoError(t, svc.MarkMessageRead(ctx, "trainee-2", "msg-3"))

	unread, err = svc.UnreadCount(ctx, "trainee-2")
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestMessagingServiceNotifications(t *testing.T) {
	svc := newFixture(t).messaging()
	ctx := context.Background()

	list, err := svc.Notifications(ctx, "trainee-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "notif-2", list[0].ID)
	assert.Equal(t, "notif-1", list[1].ID)

	created, err := svc.Notify(ctx, CreateNotificationRequest{
		UserID: "trainee-3", Title: "Session moved", Message: "Excel Fundamentals now starts at 10:00", Type: models.NotificationWarning,
	})
	require.NoError(t, err)
	assert.False(t, created.IsRead)

	_, err = svc.Notify(ctx, CreateNotificationRequest{UserID: "trainee-3", Title: "x", Message: "y", Type: "error"})
	assertErrorCode(t, err, appErrors.ErrValidation)

	_, err = svc.Notify(ctx, CreateNotificationRequest{UserID: "ghost", Title: "x", Message: "y", Type: models.NotificationInfo})
	assertErrorCode(t, err, appErrors.ErrValidation)

	assertErrorCode(t, svc.MarkNotificationRead(ctx, "trainee-1", created.ID), appErrors.ErrForbidden)
	require.NoError(t, svc.MarkNotificationRead(ctx, "trainee-3", created.ID))

	mine, err := svc.Notifications(ctx, "trainee-3")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].IsRead)
}
