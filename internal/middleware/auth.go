package middleware

import (
	"net/http"
	"strings"

	supa "github.com/supabase-community/supabase-go"
	"go.uber.org/zap"

	"medlink-backend/pkg/api"
	"medlink-backend/pkg/auth"
)

// Authenticator validates bearer tokens. Local HS256 verification handles
// the common path; when the validator rejects a token that still might be
// valid (key rotation mid-deploy), the auth provider is asked directly.
type Authenticator struct {
	validator *auth.JWTValidator
	supabase  *supa.Client
	logger    *zap.Logger
}

// NewAuthenticator builds the auth middleware. The supabase client may be
// nil, which disables the remote fallback.
func NewAuthenticator(validator *auth.JWTValidator, client *supa.Client, logger *zap.Logger) *Authenticator {
	return &Authenticator{validator: validator, supabase: client, logger: logger}
}

// Require rejects requests without a valid bearer token and stores the
// authenticated user in the request context.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			api.Error(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		user, err := a.resolve(token)
		if err != nil {
			a.logger.Debug("token rejected",
				zap.String("request_id", GetRequestID(r.Context())),
				zap.Error(err),
			)
			api.Error(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := auth.WithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) resolve(token string) (*auth.UserContext, error) {
	claims, err := a.validator.ValidateToken(token)
	if err == nil {
		return &auth.UserContext{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}, nil
	}
	if a.supabase == nil {
		return nil, err
	}

	// GetUser does not take a context; the underlying HTTP request uses
	// the client's own timeout.
	remote, remoteErr := a.supabase.Auth.WithToken(token).GetUser()
	if remoteErr != nil {
		return nil, err
	}
	return &auth.UserContext{
		UserID: remote.ID.String(),
		Email:  remote.Email,
	}, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
