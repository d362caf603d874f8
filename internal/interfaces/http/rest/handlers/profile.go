package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"medlink-backend/internal/domain/user"
	"medlink-backend/internal/repository"
	"medlink-backend/pkg/api"
	"medlink-backend/pkg/auth"
	appErrors "medlink-backend/pkg/errors"
)

// ProfileHandler serves the profile row mirrored from the hosted auth
// service. Profile management has no business rules beyond validation, so
// the handler talks to the repository directly.
type ProfileHandler struct {
	profiles repository.ProfileRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewProfileHandler creates the profile handler.
func NewProfileHandler(profiles repository.ProfileRepository, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		validate: validator.New(),
		logger:   logger.Named("profile_handler"),
	}
}

// Me handles GET /api/v1/profile. A missing row is created on first read
// from the token's identity.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	profile, err := h.profiles.GetByID(r.Context(), caller.UserID)
	if appErrors.IsNotFound(err) {
		profile, err = user.NewProfile(caller.UserID, caller.Email, "")
		if err == nil {
			err = h.profiles.Upsert(r.Context(), profile)
		}
	}
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, profile)
}

// Get handles GET /api/v1/profiles/{userID}.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.GetByID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, profile)
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"max=100"`
	Specialty   string `json:"specialty" validate:"max=100"`
	Credentials string `json:"credentials" validate:"max=200"`
	AvatarURL   string `json:"avatar_url" validate:"omitempty,url"`
}

// Update handles PUT /api/v1/profile. Only the caller's own row can be
// written.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req updateProfileRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.ErrorFrom(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profiles.GetByID(r.Context(), caller.UserID)
	if appErrors.IsNotFound(err) {
		profile, err = user.NewProfile(caller.UserID, caller.Email, req.DisplayName)
	}
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}

	if req.DisplayName != "" {
		profile.DisplayName = req.DisplayName
	}
	if req.Specialty != "" {
		profile.Specialty = req.Specialty
	}
	if req.Credentials != "" {
		profile.Credentials = req.Credentials
	}
	if req.AvatarURL != "" {
		profile.AvatarURL = req.AvatarURL
	}

	if err := h.profiles.Upsert(r.Context(), profile); err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, profile)
}
