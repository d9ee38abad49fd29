package models

import (
	"time"
)

// Message represents one chat message between a customer and the shop.
// Messages are plain document writes; no transactional guarantees apply.
type Message struct {
	ID        string    `json:"id" firestore:"-"`
	ChatID    string    `json:"chat_id" firestore:"chatId"`
	Sender    string    `json:"sender" firestore:"sender"` // user id, or "admin"
	Text      string    `json:"text" firestore:"text"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// MessageInput is used for posting a chat message.
type MessageInput struct {
	Text string `json:"text" binding:"required"`
}
