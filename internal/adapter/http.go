package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

type httpAccountsAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAccountsAdapter constructs the REST implementation of
// [AccountsAdapter]. The base URL comes from cfg.ServerURL (a missing scheme
// defaults to http) and every request is bounded by cfg.RequestTimeout.
// cfg.Token, when set, is stored as the initial bearer token.
func NewHTTPAccountsAdapter(cfg config.Adapter, logger *logger.Logger) (AccountsAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter server url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	a := &httpAccountsAdapter{client: client, logger: logger}
	a.SetToken(cfg.Token)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAccountsAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAccountsAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// authorized starts a request carrying the bearer token.
func (h *httpAccountsAdapter) authorized(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	return h.client.R().SetContext(ctx).SetAuthToken(token), nil
}

// Register POSTs user to /users.
func (h *httpAccountsAdapter) Register(ctx context.Context, user models.User) (models.PublicUser, error) {
	var created models.PublicUser

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&created).
		Post("/users")
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PublicUser{}, err
	}

	return created, nil
}

// Login POSTs credentials to /login and stores the returned token.
func (h *httpAccountsAdapter) Login(ctx context.Context, credentials models.Credentials) (string, error) {
	var token models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials).
		SetResult(&token).
		Post("/login")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if token.Token == "" {
		return "", fmt.Errorf("login response carries no token")
	}

	h.SetToken(token.Token)
	h.logger.Debug().Msg("bearer token stored")
	return token.Token, nil
}

// Profile GETs /users/profile.
func (h *httpAccountsAdapter) Profile(ctx context.Context) (models.PublicUser, error) {
	req, err := h.authorized(ctx)
	if err != nil {
		return models.PublicUser{}, err
	}

	var user models.PublicUser
	resp, err := req.SetResult(&user).Get("/users/profile")
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PublicUser{}, err
	}

	return user, nil
}

// ListUsers GETs /users, filtered by name when it is not empty.
func (h *httpAccountsAdapter) ListUsers(ctx context.Context, name string) ([]models.PublicUser, error) {
	req, err := h.authorized(ctx)
	if err != nil {
		return nil, err
	}
	if name != "" {
		req.SetQueryParam("name", name)
	}

	var users []models.PublicUser
	resp, err := req.SetResult(&users).Get("/users")
	if err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateUser PATCHes /users/{id} with update.
func (h *httpAccountsAdapter) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.PublicUser, error) {
	req, err := h.authorized(ctx)
	if err != nil {
		return models.PublicUser{}, err
	}

	var user models.PublicUser
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(update).
		SetResult(&user).
		Patch("/users/{id}")
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("update user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PublicUser{}, err
	}

	return user, nil
}

// DeleteUser sends DELETE /users/{id}.
func (h *httpAccountsAdapter) DeleteUser(ctx context.Context, id string) error {
	req, err := h.authorized(ctx)
	if err != nil {
		return err
	}

	resp, err := req.SetPathParam("id", id).Delete("/users/{id}")
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}

	return mapHTTPError(resp)
}

// Health GETs /health.
func (h *httpAccountsAdapter) Health(ctx context.Context) (models.HealthResponse, error) {
	var health models.HealthResponse

	resp, err := h.client.R().SetContext(ctx).SetResult(&health).Get("/health")
	if err != nil {
		return models.HealthResponse{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthResponse{}, err
	}

	return health, nil
}
