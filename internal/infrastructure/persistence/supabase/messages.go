package supabase

import (
	"context"
	"time"

	"github.com/supabase-community/postgrest-go"

	"medlink-backend/internal/domain/messaging"
	"medlink-backend/internal/repository"
)

// MessageStore implements repository.MessageRepository. Participants live
// in a join table so membership queries stay simple equality filters.
type MessageStore struct {
	store *Store
}

// NewMessageStore creates the messaging adapter.
func NewMessageStore(store *Store) *MessageStore {
	return &MessageStore{store: store}
}

type conversationRow struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	IsGroup   bool      `json:"is_group"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type participantRow struct {
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id"`
}

type messageRow struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

type receiptRow struct {
	ConversationID string    `json:"conversation_id"`
	MessageID      string    `json:"message_id"`
	UserID         string    `json:"user_id"`
	ReadAt         time.Time `json:"read_at"`
}

func (s *MessageStore) SaveConversation(ctx context.Context, conversation *messaging.Conversation) error {
	row := conversationRow{
		ID:        conversation.ID,
		Title:     conversation.Title,
		IsGroup:   conversation.IsGroup,
		CreatedBy: conversation.CreatedBy,
		CreatedAt: conversation.CreatedAt,
	}
	_, _, err := s.store.rest.From(tableConversations).
		Insert(row, true, "id", "", "").
		Execute()
	if err != nil {
		return repository.NewFetchError("conversations.save", err)
	}

	participants := make([]participantRow, 0, len(conversation.ParticipantIDs))
	for _, userID := range conversation.ParticipantIDs {
		participants = append(participants, participantRow{
			ConversationID: conversation.ID,
			UserID:         userID,
		})
	}
	_, _, err = s.store.rest.From(tableParticipants).
		Insert(participants, true, "conversation_id,user_id", "", "").
		Execute()
	if err != nil {
		return repository.NewFetchError("conversations.save", err)
	}
	return nil
}

func (s *MessageStore) GetConversation(ctx context.Context, id string) (*messaging.Conversation, error) {
	var rows []conversationRow
	_, err := s.store.rest.From(tableConversations).
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, repository.NewFetchError("conversations.get", err)
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}

	var participants []participantRow
	_, err = s.store.rest.From(tableParticipants).
		Select("*", "", false).
		Eq("conversation_id", id).
		ExecuteTo(&participants)
	if err != nil {
		return nil, repository.NewFetchError("conversations.get", err)
	}

	conversation := conversationFromRows(rows[0], participants)
	return &conversation, nil
}

func conversationFromRows(row conversationRow, participants []participantRow) messaging.Conversation {
	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.UserID)
	}
	return messaging.Conversation{
		ID:             row.ID,
		Title:          row.Title,
		IsGroup:        row.IsGroup,
		CreatedBy:      row.CreatedBy,
		ParticipantIDs: ids,
		CreatedAt:      row.CreatedAt,
	}
}

func (s *MessageStore) ListConversations(ctx context.Context, userID string) ([]messaging.Conversation, error) {
	var mine []participantRow
	_, err := s.store.rest.From(tableParticipants).
		Select("*", "", false).
		Eq("user_id", userID).
		ExecuteTo(&mine)
	if err != nil {
		return nil, repository.NewFetchError("conversations.list", err)
	}
	if len(mine) == 0 {
		return []messaging.Conversation{}, nil
	}

	ids := make([]string, 0, len(mine))
	for _, p := range mine {
		ids = append(ids, p.ConversationID)
	}

	var rows []conversationRow
	_, err = s.store.rest.From(tableConversations).
		Select("*", "", false).
		In("id", ids).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, repository.NewFetchError("conversations.list", err)
	}

	var participants []participantRow
	_, err = s.store.rest.From(tableParticipants).
		Select("*", "", false).
		In("conversation_id", ids).
		ExecuteTo(&participants)
	if err != nil {
		return nil, repository.NewFetchError("conversations.list", err)
	}
	byConversation := make(map[string][]participantRow)
	for _, p := range participants {
		byConversation[p.ConversationID] = append(byConversation[p.ConversationID], p)
	}

	out := make([]messaging.Conversation, 0, len(rows))
	for _, row := range rows {
		out = append(out, conversationFromRows(row, byConversation[row.ID]))
	}
	return out, nil
}

func (s *MessageStore) SaveMessage(ctx context.Context, message *messaging.Message) error {
	row := messageRow{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		Body:           message.Body,
		CreatedAt:      message.CreatedAt,
	}
	_, _, err := s.store.rest.From(tableMessages).
		Insert(row, false, "", "", "").
		Execute()
	if err != nil {
		return repository.NewFetchError("messages.save", err)
	}
	return nil
}

func (s *MessageStore) ListMessages(ctx context.Context, conversationID string, limit int) ([]messaging.Message, error) {
	builder := s.store.rest.From(tableMessages).
		Select("*", "", false).
		Eq("conversation_id", conversationID).
		Order("created_at", &postgrest.OrderOpts{Ascending: true})
	if limit > 0 {
		builder = builder.Limit(limit, "")
	}

	var rows []messageRow
	if _, err := builder.ExecuteTo(&rows); err != nil {
		return nil, repository.NewFetchError("messages.list", err)
	}
	out := make([]messaging.Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, messaging.Message{
			ID:             row.ID,
			ConversationID: row.ConversationID,
			SenderID:       row.SenderID,
			Body:           row.Body,
			CreatedAt:      row.CreatedAt,
		})
	}
	return out, nil
}

func (s *MessageStore) ListReceipts(ctx context.Context, conversationID string) ([]messaging.ReadReceipt, error) {
	var rows []receiptRow
	_, err := s.store.rest.From(tableReadReceipts).
		Select("*", "", false).
		Eq("conversation_id", conversationID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, repository.NewFetchError("receipts.list", err)
	}
	out := make([]messaging.ReadReceipt, 0, len(rows))
	for _, row := range rows {
		out = append(out, messaging.ReadReceipt{
			MessageID: row.MessageID,
			UserID:    row.UserID,
			ReadAt:    row.ReadAt,
		})
	}
	return out, nil
}

// SaveReceipts stores read marks, ignoring duplicates via upsert so marking
// a conversation read twice stays idempotent.
func (s *MessageStore) SaveReceipts(ctx context.Context, receipts []messaging.ReadReceipt) error {
	if len(receipts) == 0 {
		return nil
	}
	messageIDs := make([]string, 0, len(receipts))
	for _, receipt := range receipts {
		messageIDs = append(messageIDs, receipt.MessageID)
	}
	var messages []messageRow
	_, err := s.store.rest.From(tableMessages).
		Select("id,conversation_id", "", false).
		In("id", messageIDs).
		ExecuteTo(&messages)
	if err != nil {
		return repository.NewFetchError("receipts.save", err)
	}
	conversationByMessage := make(map[string]string, len(messages))
	for _, message := range messages {
		conversationByMessage[message.ID] = message.ConversationID
	}

	rows := make([]receiptRow, 0, len(receipts))
	for _, receipt := range receipts {
		rows = append(rows, receiptRow{
			ConversationID: conversationByMessage[receipt.MessageID],
			MessageID:      receipt.MessageID,
			UserID:         receipt.UserID,
			ReadAt:         receipt.ReadAt,
		})
	}
	_, _, err = s.store.rest.From(tableReadReceipts).
		Insert(rows, true, "message_id,user_id", "", "").
		Execute()
	if err != nil {
		return repository.NewFetchError("receipts.save", err)
	}
	return nil
}
