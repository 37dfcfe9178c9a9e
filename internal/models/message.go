package models

import "time"

// Message is a direct message between two users. IsRead only moves from
// false to true.
type Message struct {
	ID         string    `json:"id" yaml:"id"`
	SenderID   string    `json:"senderId" yaml:"senderId"`
	ReceiverID string    `json:"receiverId" yaml:"receiverId"`
	Subject    string    `json:"subject" yaml:"subject"`
	Content    string    `json:"content" yaml:"content"`
	IsRead     bool      `json:"isRead" yaml:"isRead"`
	CreatedAt  time.Time `json:"createdAt" yaml:"createdAt"`
}

func (m Message) Identifier() string { return m.ID }

type NewMessage struct {
	SenderID   string
	ReceiverID string
	Subject    string
	Content    string
}
