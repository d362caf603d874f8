package mocks

import (
	"context"
	"sync"

	"medlink-backend/internal/domain/insight"
	"medlink-backend/internal/domain/karma"
	"medlink-backend/internal/domain/messaging"
	"medlink-backend/internal/domain/social"
	"medlink-backend/internal/domain/user"
	"medlink-backend/internal/repository"
)

// MockKarmaRepository is an in-memory append-only activity ledger.
type MockKarmaRepository struct {
	failures
	mu         sync.RWMutex
	activities []karma.Activity
}

func NewMockKarmaRepository() *MockKarmaRepository {
	return &MockKarmaRepository{}
}

func (m *MockKarmaRepository) Append(ctx context.Context, activity *karma.Activity) error {
	if err := m.failure("Append"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities = append(m.activities, *activity)
	return nil
}

func (m *MockKarmaRepository) ListByUser(ctx context.Context, userID string) ([]karma.Activity, error) {
	if err := m.failure("ListByUser"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]karma.Activity, 0)
	for _, activity := range m.activities {
		if activity.UserID == userID {
			out = append(out, activity)
		}
	}
	return out, nil
}

// Activities returns every ledger row, for test assertions.
func (m *MockKarmaRepository) Activities() []karma.Activity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]karma.Activity(nil), m.activities...)
}

// MockMessageRepository is an in-memory MessageRepository.
type MockMessageRepository struct {
	failures
	mu       sync.RWMutex
	convos   map[string]*messaging.Conversation
	messages map[string][]messaging.Message
	receipts map[string][]messaging.ReadReceipt
}

func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{
		convos:   make(map[string]*messaging.Conversation),
		messages: make(map[string][]messaging.Message),
		receipts: make(map[string][]messaging.ReadReceipt),
	}
}

func (m *MockMessageRepository) SaveConversation(ctx context.Context, conversation *messaging.Conversation) error {
	if err := m.failure("SaveConversation"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *conversation
	m.convos[conversation.ID] = &cp
	return nil
}

func (m *MockMessageRepository) GetConversation(ctx context.Context, id string) (*messaging.Conversation, error) {
	if err := m.failure("GetConversation"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	conversation, ok := m.convos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *conversation
	return &cp, nil
}

func (m *MockMessageRepository) ListConversations(ctx context.Context, userID string) ([]messaging.Conversation, error) {
	if err := m.failure("ListConversations"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]messaging.Conversation, 0)
	for _, conversation := range m.convos {
		if conversation.HasParticipant(userID) {
			out = append(out, *conversation)
		}
	}
	return out, nil
}

func (m *MockMessageRepository) SaveMessage(ctx context.Context, message *messaging.Message) error {
	if err := m.failure("SaveMessage"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[message.ConversationID] = append(m.messages[message.ConversationID], *message)
	return nil
}

func (m *MockMessageRepository) ListMessages(ctx context.Context, conversationID string, limit int) ([]messaging.Message, error) {
	if err := m.failure("ListMessages"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]messaging.Message(nil), m.messages[conversationID]...)
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *MockMessageRepository) ListReceipts(ctx context.Context, conversationID string) ([]messaging.ReadReceipt, error) {
	if err := m.failure("ListReceipts"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]messaging.ReadReceipt(nil), m.receipts[conversationID]...), nil
}

func (m *MockMessageRepository) SaveReceipts(ctx context.Context, receipts []messaging.ReadReceipt) error {
	if err := m.failure("SaveReceipts"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, receipt := range receipts {
		for conversationID, messages := range m.messages {
			for _, message := range messages {
				if message.ID == receipt.MessageID {
					m.receipts[conversationID] = append(m.receipts[conversationID], receipt)
				}
			}
		}
	}
	return nil
}

// MockSocialRepository is an in-memory SocialRepository.
type MockSocialRepository struct {
	failures
	mu       sync.RWMutex
	requests map[string]*social.FriendRequest
	invites  map[string]*social.InviteLink
}

func NewMockSocialRepository() *MockSocialRepository {
	return &MockSocialRepository{
		requests: make(map[string]*social.FriendRequest),
		invites:  make(map[string]*social.InviteLink),
	}
}

func (m *MockSocialRepository) SaveFriendRequest(ctx context.Context, request *social.FriendRequest) error {
	if err := m.failure("SaveFriendRequest"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *request
	m.requests[request.ID] = &cp
	return nil
}

func (m *MockSocialRepository) GetFriendRequest(ctx context.Context, id string) (*social.FriendRequest, error) {
	if err := m.failure("GetFriendRequest"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	request, ok := m.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *request
	return &cp, nil
}

func (m *MockSocialRepository) UpdateFriendRequest(ctx context.Context, request *social.FriendRequest) error {
	if err := m.failure("UpdateFriendRequest"); err != nil {
		return err
	}
	return m.SaveFriendRequest(ctx, request)
}

func (m *MockSocialRepository) ListFriendRequests(ctx context.Context, userID string, status social.FriendRequestStatus) ([]social.FriendRequest, error) {
	if err := m.failure("ListFriendRequests"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]social.FriendRequest, 0)
	for _, request := range m.requests {
		if !request.Involves(userID) {
			continue
		}
		if status != "" && request.Status != status {
			continue
		}
		out = append(out, *request)
	}
	return out, nil
}

func (m *MockSocialRepository) FindRequestBetween(ctx context.Context, userA, userB string) (*social.FriendRequest, error) {
	if err := m.failure("FindRequestBetween"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, request := range m.requests {
		if request.Involves(userA) && request.Involves(userB) {
			cp := *request
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockSocialRepository) SaveInvite(ctx context.Context, invite *social.InviteLink) error {
	if err := m.failure("SaveInvite"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *invite
	m.invites[invite.Code] = &cp
	return nil
}

func (m *MockSocialRepository) GetInviteByCode(ctx context.Context, code string) (*social.InviteLink, error) {
	if err := m.failure("GetInviteByCode"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	invite, ok := m.invites[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *invite
	return &cp, nil
}

func (m *MockSocialRepository) UpdateInvite(ctx context.Context, invite *social.InviteLink) error {
	if err := m.failure("UpdateInvite"); err != nil {
		return err
	}
	return m.SaveInvite(ctx, invite)
}

// MockProfileRepository is an in-memory ProfileRepository.
type MockProfileRepository struct {
	failures
	mu       sync.RWMutex
	profiles map[string]*user.User
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{profiles: make(map[string]*user.User)}
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	if err := m.failure("GetByID"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *profile
	return &cp, nil
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *user.User) error {
	if err := m.failure("Upsert"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *profile
	m.profiles[profile.ID] = &cp
	return nil
}

// MockSearchRepository returns canned search results.
type MockSearchRepository struct {
	failures
	mu      sync.RWMutex
	Results []insight.SearchResult
}

func NewMockSearchRepository() *MockSearchRepository {
	return &MockSearchRepository{}
}

func (m *MockSearchRepository) SearchPosts(ctx context.Context, query string, limit int) ([]insight.SearchResult, error) {
	if err := m.failure("SearchPosts"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]insight.SearchResult(nil), m.Results...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MockAnalysisRepository captures analysis audit writes.
type MockAnalysisRepository struct {
	failures
	mu      sync.RWMutex
	records []repository.AnalysisRecord
}

func NewMockAnalysisRepository() *MockAnalysisRepository {
	return &MockAnalysisRepository{}
}

func (m *MockAnalysisRepository) SaveAnalysis(ctx context.Context, record *repository.AnalysisRecord) error {
	if err := m.failure("SaveAnalysis"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *record)
	return nil
}

// Records returns the stored audit copies, for test assertions.
func (m *MockAnalysisRepository) Records() []repository.AnalysisRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]repository.AnalysisRecord(nil), m.records...)
}
