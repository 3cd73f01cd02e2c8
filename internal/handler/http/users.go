package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "registration payload decoding failed")
		return
	}

	registered, err := h.services.AccountService.Register(ctx, user)
	if err != nil {
		writeError(w, r, err, "user registration failed")
		return
	}

	utils.WriteJSON(w, registered, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var credentials models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "login payload decoding failed")
		return
	}

	token, err := h.services.AccountService.Login(ctx, credentials)
	if err != nil {
		writeError(w, r, err, "login failed")
		return
	}

	logger.FromRequest(r).Debug().Str("user_id", token.Claims.Subject).Msg("user logged in")
	utils.WriteJSON(w, models.TokenResponse{Token: token.SignedString}, http.StatusOK)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := utils.GetActorFromContext(ctx)
	if !ok {
		writeError(w, r, ErrNoActorInContext, "listing users without actor")
		return
	}

	users, err := h.services.AccountService.ListUsers(ctx, actor, r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, r, err, "listing users failed")
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := utils.GetActorFromContext(ctx)
	if !ok {
		writeError(w, r, ErrNoActorInContext, "profile without actor")
		return
	}

	user, err := h.services.AccountService.GetProfile(ctx, actor)
	if err != nil {
		writeError(w, r, err, "profile lookup failed")
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := utils.GetActorFromContext(ctx)
	if !ok {
		writeError(w, r, ErrNoActorInContext, "update without actor")
		return
	}

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "update payload decoding failed")
		return
	}

	updated, err := h.services.AccountService.UpdateUser(ctx, actor, chi.URLParam(r, "id"), update)
	if err != nil {
		writeError(w, r, err, "user update failed")
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := utils.GetActorFromContext(ctx)
	if !ok {
		writeError(w, r, ErrNoActorInContext, "deletion without actor")
		return
	}

	if err := h.services.AccountService.DeleteUser(ctx, actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "user deletion failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
