package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/budget-keeper/internal/config"
	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/utils"
	"github.com/MKhiriev/budget-keeper/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP implementation of [ServerAdapter].
// It normalises and validates the base URL from cfg.HTTPAddress ("host:port"
// becomes "http://host:port") and applies cfg.RequestTimeout to every
// request.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a URL.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
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

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register POSTs /auth/register and keeps the issued token.
func (h *httpServerAdapter) Register(ctx context.Context, email, password string) (models.RegisterResponse, error) {
	var result models.RegisterResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.RegisterRequest{Email: email, Password: password}).
		SetResult(&result).
		Post("/auth/register")
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RegisterResponse{}, err
	}

	if err = h.keepToken(resp, result.Token); err != nil {
		return models.RegisterResponse{}, err
	}
	return result, nil
}

// Login POSTs /auth/login and keeps the issued token.
func (h *httpServerAdapter) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	var result models.AuthResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.LoginRequest{Email: email, Password: password}).
		SetResult(&result).
		Post("/auth/login")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	if err = h.keepToken(resp, result.Token); err != nil {
		return models.AuthResponse{}, err
	}
	return result, nil
}

func (h *httpServerAdapter) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	var result models.TokenResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.ChangePasswordRequest{Email: email, OldPassword: oldPassword, NewPassword: newPassword}).
		SetResult(&result).
		Post("/auth/change-password")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	return h.keepToken(resp, result.Token)
}

func (h *httpServerAdapter) ForgotPassword(ctx context.Context, email string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.ForgotPasswordRequest{Email: email}).
		Post("/auth/forgot-password")
	if err != nil {
		return fmt.Errorf("forgot password request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) ResetPassword(ctx context.Context, email, recoveryKey, newPassword string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.ResetPasswordRequest{Email: email, RecoveryKey: recoveryKey, NewPassword: newPassword}).
		Post("/auth/reset-password")
	if err != nil {
		return fmt.Errorf("reset password request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) RotateRecoveryKey(ctx context.Context, password string) (string, error) {
	request, err := h.authorized(ctx)
	if err != nil {
		return "", err
	}

	var result models.RecoveryKeyResponse
	resp, err := request.
		SetBody(models.RotateRecoveryKeyRequest{Password: password}).
		SetResult(&result).
		Post("/auth/recovery-key")
	if err != nil {
		return "", fmt.Errorf("recovery key request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return result.RecoveryKey, nil
}

func (h *httpServerAdapter) ListDocuments(ctx context.Context, prefix string) ([]string, error) {
	request, err := h.authorized(ctx)
	if err != nil {
		return nil, err
	}

	var result models.DocumentKeysResponse
	if prefix != "" {
		request.SetQueryParam("prefix", prefix)
	}
	resp, err := request.SetResult(&result).Get("/docs")
	if err != nil {
		return nil, fmt.Errorf("list documents request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return result.Keys, nil
}

func (h *httpServerAdapter) ReadDocument(ctx context.Context, key string) ([]byte, error) {
	request, err := h.authorized(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := request.Get(documentPath(key))
	if err != nil {
		return nil, fmt.Errorf("read document request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func (h *httpServerAdapter) WriteDocument(ctx context.Context, key string, payload []byte) error {
	request, err := h.authorized(ctx)
	if err != nil {
		return err
	}

	resp, err := request.
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(documentPath(key))
	if err != nil {
		return fmt.Errorf("write document request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) DeleteDocument(ctx context.Context, key string) error {
	request, err := h.authorized(ctx)
	if err != nil {
		return err
	}

	resp, err := request.Delete(documentPath(key))
	if err != nil {
		return fmt.Errorf("delete document request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

// authorized starts a request carrying the stored bearer token.
func (h *httpServerAdapter) authorized(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}
	return h.client.R().SetContext(ctx).SetAuthToken(token), nil
}

// keepToken stores the token of a token-issuing response. The Authorization
// header wins over the body.
func (h *httpServerAdapter) keepToken(resp *resty.Response, bodyToken string) error {
	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		token = bodyToken
	}
	if token == "" {
		return ErrMissingToken
	}

	h.SetToken(token)
	h.logger.Debug().Msg("bearer token updated")
	return nil
}

// documentPath keeps the "/" separators of a logical key and escapes each
// segment.
func documentPath(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return "/docs/" + strings.Join(segments, "/")
}
