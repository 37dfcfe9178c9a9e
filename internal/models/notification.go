package models

import "time"

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationSuccess NotificationType = "success"
	NotificationAlert   NotificationType = "alert"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationInfo, NotificationWarning, NotificationSuccess, NotificationAlert:
		return true
	default:
		return false
	}
}

type Notification struct {
	ID        string           `json:"id" yaml:"id"`
	UserID    string           `json:"userId" yaml:"userId"`
	Title     string           `json:"title" yaml:"title"`
	Message   string           `json:"message" yaml:"message"`
	Type      NotificationType `json:"type" yaml:"type"`
	IsRead    bool             `json:"isRead" yaml:"isRead"`
	Link      string           `json:"link,omitempty" yaml:"link,omitempty"`
	CreatedAt time.Time        `json:"createdAt" yaml:"createdAt"`
}

func (n Notification) Identifier() string { return n.ID }

type NewNotification struct {
	UserID  string
	Title   string
	Message string
	Type    NotificationType
	Link    string
}
