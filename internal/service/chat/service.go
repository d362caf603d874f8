// Package chat provides business logic for direct and group messaging.
package chat

import (
	"context"

	"go.uber.org/zap"

	"medlink-backend/internal/domain/messaging"
	"medlink-backend/internal/repository"
	appErrors "medlink-backend/pkg/errors"
)

// ConversationView is a conversation plus the caller's unread count.
type ConversationView struct {
	messaging.Conversation
	UnreadCount int `json:"unread_count"`
}

// Service defines the messaging business operations.
type Service interface {
	// StartConversation creates a conversation between the creator and the
	// given participants.
	StartConversation(ctx context.Context, creatorID, title string, participantIDs []string) (*messaging.Conversation, error)

	// ListConversations returns the caller's conversations with unread
	// counts.
	ListConversations(ctx context.Context, userID string) ([]ConversationView, error)

	// Send appends a message to a conversation the sender belongs to.
	Send(ctx context.Context, senderID, conversationID, body string) (*messaging.Message, error)

	// Messages returns a conversation's messages, oldest first, for a
	// participant.
	Messages(ctx context.Context, userID, conversationID string, limit int) ([]messaging.Message, error)

	// MarkRead writes read receipts for every message the user has not
	// read yet and returns how many were marked.
	MarkRead(ctx context.Context, userID, conversationID string) (int, error)
}

type service struct {
	messages repository.MessageRepository
	logger   *zap.Logger
}

// NewService creates the chat service.
func NewService(messages repository.MessageRepository, logger *zap.Logger) Service {
	return &service{messages: messages, logger: logger}
}

func (s *service) StartConversation(ctx context.Context, creatorID, title string, participantIDs []string) (*messaging.Conversation, error) {
	conversation, err := messaging.NewConversation(creatorID, title, participantIDs)
	if err != nil {
		return nil, err
	}
	if err := s.messages.SaveConversation(ctx, conversation); err != nil {
		return nil, appErrors.Wrap(err, "failed to save conversation")
	}
	return conversation, nil
}

func (s *service) ListConversations(ctx context.Context, userID string) ([]ConversationView, error) {
	if userID == "" {
		return nil, appErrors.NewValidation("userID cannot be empty")
	}
	conversations, err := s.messages.ListConversations(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to list conversations")
	}

	views := make([]ConversationView, 0, len(conversations))
	for _, conversation := range conversations {
		unread, err := s.unreadCount(ctx, userID, conversation.ID)
		if err != nil {
			// An unread badge is not worth failing the whole listing.
			s.logger.Warn("unread count failed",
				zap.String("conversation_id", conversation.ID),
				zap.Error(err),
			)
			unread = 0
		}
		views = append(views, ConversationView{Conversation: conversation, UnreadCount: unread})
	}
	return views, nil
}

func (s *service) Send(ctx context.Context, senderID, conversationID, body string) (*messaging.Message, error) {
	conversation, err := s.participantConversation(ctx, senderID, conversationID)
	if err != nil {
		return nil, err
	}

	message, err := messaging.NewMessage(conversation.ID, senderID, body)
	if err != nil {
		return nil, err
	}
	if err := s.messages.SaveMessage(ctx, message); err != nil {
		return nil, appErrors.Wrap(err, "failed to save message")
	}
	return message, nil
}

func (s *service) Messages(ctx context.Context, userID, conversationID string, limit int) ([]messaging.Message, error) {
	if _, err := s.participantConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.messages.ListMessages(ctx, conversationID, limit)
}

func (s *service) MarkRead(ctx context.Context, userID, conversationID string) (int, error) {
	if _, err := s.participantConversation(ctx, userID, conversationID); err != nil {
		return 0, err
	}

	msgs, err := s.messages.ListMessages(ctx, conversationID, 0)
	if err != nil {
		return 0, appErrors.Wrap(err, "failed to load messages")
	}
	receipts, err := s.messages.ListReceipts(ctx, conversationID)
	if err != nil {
		return 0, appErrors.Wrap(err, "failed to load receipts")
	}

	unread := messaging.UnreadFor(msgs, receipts, userID)
	if len(unread) == 0 {
		return 0, nil
	}
	newReceipts := messaging.ReceiptsFor(unread, userID)
	if err := s.messages.SaveReceipts(ctx, newReceipts); err != nil {
		return 0, appErrors.Wrap(err, "failed to save receipts")
	}
	return len(newReceipts), nil
}

func (s *service) unreadCount(ctx context.Context, userID, conversationID string) (int, error) {
	msgs, err := s.messages.ListMessages(ctx, conversationID, 0)
	if err != nil {
		return 0, err
	}
	receipts, err := s.messages.ListReceipts(ctx, conversationID)
	if err != nil {
		return 0, err
	}
	return len(messaging.UnreadFor(msgs, receipts, userID)), nil
}

func (s *service) participantConversation(ctx context.Context, userID, conversationID string) (*messaging.Conversation, error) {
	if userID == "" || conversationID == "" {
		return nil, appErrors.NewValidation("user and conversation are required")
	}
	conversation, err := s.messages.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, appErrors.NewNotFound("conversation not found")
	}
	return conversation, nil
}
