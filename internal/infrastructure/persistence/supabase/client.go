// Package supabase implements the repository interfaces against a hosted
// Supabase project: Postgres over the PostgREST API, plus GoTrue for auth.
package supabase

import (
	"fmt"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
	"go.uber.org/zap"

	"medlink-backend/internal/config"
)

const (
	tablePosts            = "posts"
	tableComments         = "comments"
	tableVotes            = "votes"
	tableCommunities      = "communities"
	tableMemberships      = "community_members"
	tableKarmaLedger      = "karma_activities"
	tableConversations    = "conversations"
	tableParticipants     = "conversation_participants"
	tableMessages         = "messages"
	tableReadReceipts     = "read_receipts"
	tableFriendRequests   = "friend_requests"
	tableInviteLinks      = "invite_links"
	tableProfiles         = "profiles"
	tableContentAnalyses  = "content_analyses"
)

// Store bundles the two Supabase clients the adapters share. The GoTrue
// client validates user tokens; the PostgREST client does data access with
// the service role key, so row level security is bypassed and authorization
// stays in the service layer.
type Store struct {
	auth   *supa.Client
	rest   *postgrest.Client
	logger *zap.Logger
}

// NewStore connects both clients from configuration.
func NewStore(cfg config.SupabaseConfig, logger *zap.Logger) (*Store, error) {
	authClient, err := supa.NewClient(cfg.URL, cfg.ServiceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}

	restClient := postgrest.NewClient(cfg.URL+"/rest/v1", "public", map[string]string{
		"apikey":        cfg.ServiceKey,
		"Authorization": "Bearer " + cfg.ServiceKey,
	})
	if restClient.ClientError != nil {
		return nil, fmt.Errorf("create postgrest client: %w", restClient.ClientError)
	}

	return &Store{auth: authClient, rest: restClient, logger: logger}, nil
}

// Auth exposes the GoTrue-backed client for token validation.
func (s *Store) Auth() *supa.Client {
	return s.auth
}
