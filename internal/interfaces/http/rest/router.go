// Package rest wires the HTTP surface: middleware chain, CORS, and the
// /api/v1 route tree.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"medlink-backend/internal/config"
	"medlink-backend/internal/infrastructure/observability"
	"medlink-backend/internal/interfaces/http/rest/handlers"
	"medlink-backend/internal/middleware"
	"medlink-backend/internal/repository"
	"medlink-backend/internal/service/chat"
	"medlink-backend/internal/service/connections"
	"medlink-backend/internal/service/feed"
	"medlink-backend/internal/service/intelligence"
	"medlink-backend/internal/service/reputation"
)

// Version is reported by the health endpoint. Overridden at build time
// with -ldflags.
var Version = "dev"

// Services bundles the application services the router exposes.
type Services struct {
	Feed         feed.Service
	Reputation   reputation.Service
	Chat         chat.Service
	Connections  connections.Service
	Intelligence intelligence.Service
	Profiles     repository.ProfileRepository
}

// Router builds the HTTP handler tree.
type Router struct {
	cfg      *config.Config
	services Services
	auth     *middleware.Authenticator
	metrics  *observability.Collector
	logger   *zap.Logger
}

// NewRouter creates the router. metrics may be nil when the collector is
// disabled.
func NewRouter(
	cfg *config.Config,
	services Services,
	authenticator *middleware.Authenticator,
	metrics *observability.Collector,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:      cfg,
		services: services,
		auth:     authenticator,
		metrics:  metrics,
		logger:   logger,
	}
}

// Setup assembles middleware and routes into a ready handler.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	// The tracer is the global one installed at startup; when tracing is
	// disabled this records into a no-op provider.
	router.Use(middleware.Tracing(rt.cfg.Tracing.ServiceName))
	router.Use(middleware.Recovery(rt.logger))
	router.Use(middleware.Timeout(rt.cfg.Server.RequestTimeout, rt.logger))
	if rt.metrics != nil {
		router.Use(middleware.Metrics(rt.metrics))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	healthHandler := handlers.NewHealthHandler(Version)
	router.Get("/health", healthHandler.Health)
	router.Get("/ready", healthHandler.Ready)
	if rt.metrics != nil {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.auth.Require)
		// The data store sits behind one breaker; every API route degrades
		// together when it is down.
		r.Use(middleware.CircuitBreaker(middleware.DefaultCircuitBreakerConfig("supabase"), rt.logger))

		feedHandler := handlers.NewFeedHandler(rt.services.Feed, rt.logger)
		r.Route("/posts", func(r chi.Router) {
			r.Post("/", feedHandler.CreatePost)
			r.Get("/", feedHandler.ListPosts)
			r.Get("/{postID}", feedHandler.GetPost)
			r.Delete("/{postID}", feedHandler.DeletePost)
			r.Post("/{postID}/comments", feedHandler.CreateComment)
			r.Get("/{postID}/comments", feedHandler.GetThread)
		})

		r.Route("/communities", func(r chi.Router) {
			r.Post("/", feedHandler.CreateCommunity)
			r.Get("/", feedHandler.ListCommunities)
			r.Get("/{communityID}", feedHandler.GetCommunity)
			r.Post("/{communityID}/join", feedHandler.JoinCommunity)
			r.Post("/{communityID}/leave", feedHandler.LeaveCommunity)
		})

		r.Post("/votes", feedHandler.Vote)

		karmaHandler := handlers.NewKarmaHandler(rt.services.Reputation, rt.logger)
		r.Route("/karma", func(r chi.Router) {
			r.Get("/", karmaHandler.MyStats)
			r.Get("/ranks", karmaHandler.Ranks)
			r.Get("/history", karmaHandler.History)
			r.Get("/{userID}", karmaHandler.UserStats)
		})

		chatHandler := handlers.NewChatHandler(rt.services.Chat, rt.logger)
		r.Route("/conversations", func(r chi.Router) {
			r.Post("/", chatHandler.StartConversation)
			r.Get("/", chatHandler.ListConversations)
			r.Post("/{conversationID}/messages", chatHandler.Send)
			r.Get("/{conversationID}/messages", chatHandler.Messages)
			r.Post("/{conversationID}/read", chatHandler.MarkRead)
		})

		connectionsHandler := handlers.NewConnectionsHandler(rt.services.Connections, rt.logger)
		r.Route("/friends", func(r chi.Router) {
			r.Get("/", connectionsHandler.Friends)
			r.Post("/requests", connectionsHandler.SendFriendRequest)
			r.Get("/requests", connectionsHandler.ListFriendRequests)
			r.Post("/requests/{requestID}/respond", connectionsHandler.RespondToFriendRequest)
		})
		r.Route("/invites", func(r chi.Router) {
			r.Post("/", connectionsHandler.CreateInvite)
			r.Post("/{code}/redeem", connectionsHandler.RedeemInvite)
		})

		intelligenceHandler := handlers.NewIntelligenceHandler(rt.services.Intelligence, rt.logger)
		r.Post("/analyze", intelligenceHandler.Analyze)
		r.Post("/summarize", intelligenceHandler.Summarize)
		r.Get("/trending", intelligenceHandler.Trending)
		r.Get("/search", intelligenceHandler.Search)
		r.Get("/insights", intelligenceHandler.Insights)

		profileHandler := handlers.NewProfileHandler(rt.services.Profiles, rt.logger)
		r.Get("/profile", profileHandler.Me)
		r.Put("/profile", profileHandler.Update)
		r.Get("/profiles/{userID}", profileHandler.Get)
	})

	return router
}
