// Package messaging holds the entities for direct and group conversations.
package messaging

import (
	"strings"
	"time"

	"github.com/google/uuid"

	appErrors "medlink-backend/pkg/errors"
)

// Conversation is a direct (two participant) or group thread.
type Conversation struct {
	ID             string    `json:"id"`
	Title          string    `json:"title,omitempty"`
	IsGroup        bool      `json:"is_group"`
	CreatedBy      string    `json:"created_by"`
	ParticipantIDs []string  `json:"participant_ids"`
	CreatedAt      time.Time `json:"created_at"`
}

// Message is one entry in a conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// ReadReceipt marks a message as read by one participant. Receipts are
// written once and never updated.
type ReadReceipt struct {
	MessageID string    `json:"message_id"`
	UserID    string    `json:"user_id"`
	ReadAt    time.Time `json:"read_at"`
}

// NewConversation creates a conversation between the creator and the given
// participants. Two participants make a direct thread; more make a group.
func NewConversation(createdBy, title string, participantIDs []string) (*Conversation, error) {
	if createdBy == "" {
		return nil, appErrors.NewValidation("creator is required")
	}

	seen := map[string]bool{createdBy: true}
	participants := []string{createdBy}
	for _, id := range participantIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		participants = append(participants, id)
	}
	if len(participants) < 2 {
		return nil, appErrors.NewValidation("a conversation needs at least two participants")
	}

	return &Conversation{
		ID:             uuid.New().String(),
		Title:          strings.TrimSpace(title),
		IsGroup:        len(participants) > 2,
		CreatedBy:      createdBy,
		ParticipantIDs: participants,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// HasParticipant reports whether the user belongs to the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// NewMessage creates a message in a conversation.
func NewMessage(conversationID, senderID, body string) (*Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, appErrors.NewValidation("message cannot be empty")
	}
	if conversationID == "" || senderID == "" {
		return nil, appErrors.NewValidation("conversation and sender are required")
	}
	return &Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// UnreadFor filters messages down to those the given user has not read:
// messages authored by someone else with no receipt from the user.
func UnreadFor(messages []Message, receipts []ReadReceipt, userID string) []Message {
	read := make(map[string]bool, len(receipts))
	for _, receipt := range receipts {
		if receipt.UserID == userID {
			read[receipt.MessageID] = true
		}
	}

	unread := make([]Message, 0)
	for _, message := range messages {
		if message.SenderID == userID || read[message.ID] {
			continue
		}
		unread = append(unread, message)
	}
	return unread
}

// ReceiptsFor builds read receipts for the given messages, stamped now.
func ReceiptsFor(messages []Message, userID string) []ReadReceipt {
	now := time.Now().UTC()
	receipts := make([]ReadReceipt, 0, len(messages))
	for _, message := range messages {
		receipts = append(receipts, ReadReceipt{
			MessageID: message.ID,
			UserID:    userID,
			ReadAt:    now,
		})
	}
	return receipts
}
