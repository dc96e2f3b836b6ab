// SPDX-License-Identifier: Apache-2.0

// Package adapter implements the remote change feed over HTTP against the
// clipsync server.
package adapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/cliphist/clipsync/internal/logger"
	"github.com/cliphist/clipsync/internal/syncengine"
	"github.com/cliphist/clipsync/models"
)

const accountEventBuffer = 8

// HTTPFeedConfig configures the HTTP feed client.
type HTTPFeedConfig struct {
	// BaseURL is the server root, e.g. "https://sync.example.com".
	BaseURL string

	// AccountToken is the pre-shared account credential presented when
	// registering the device. An empty token means no signed-in account.
	AccountToken string

	Timeout time.Duration
}

// httpFeed speaks the clipsync server's JSON API and satisfies
// [syncengine.RemoteFeed]. Device registration yields a session JWT in the
// Authorization response header; all subsequent calls present it as a
// bearer token.
type httpFeed struct {
	client *resty.Client
	logger *logger.Logger
	events chan models.AccountEvent

	mu      sync.RWMutex
	account string
	token   string
}

// NewHTTPFeed constructs a feed client. The session is not opened until
// [syncengine.RemoteFeed.Open] is called.
func NewHTTPFeed(cfg HTTPFeedConfig, log *logger.Logger) *httpFeed {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpFeed{
		client:  cli,
		account: cfg.AccountToken,
		logger:  log,
		events:  make(chan models.AccountEvent, accountEventBuffer),
	}
}

var _ syncengine.RemoteFeed = (*httpFeed)(nil)

// Open registers the device and captures the session token. The persisted
// checkpoint is only used client-side; it is not sent to the server.
func (h *httpFeed) Open(ctx context.Context, deviceID, deviceName string, _ []byte) error {
	account := h.accountToken()
	if account == "" {
		return syncengine.ErrAccountUnavailable
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+account).
		SetBody(models.DeviceRegistration{DeviceID: deviceID, DeviceName: deviceName}).
		Post("/api/device/register")
	if err != nil {
		return fmt.Errorf("register device request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return fmt.Errorf("%w: %w", syncengine.ErrAccountUnavailable, err)
		}
		return err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("register device: %w", err)
	}

	h.setToken(token)
	h.logger.Debug().Str("device_id", deviceID).Msg("feed session opened")
	return nil
}

// EnsureZone idempotently declares the record namespace.
func (h *httpFeed) EnsureZone(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ZoneDeclaration{Name: models.ZoneName}).
		Post("/api/zone/")
	if err != nil {
		return fmt.Errorf("ensure zone request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return fmt.Errorf("%w: %w", syncengine.ErrAccountUnavailable, err)
		}
		return fmt.Errorf("%w: %w", syncengine.ErrZoneUnavailable, err)
	}
	return nil
}

func (h *httpFeed) Push(ctx context.Context, req models.PushRequest) ([]models.PushOutcome, error) {
	req.Length = len(req.Items)

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/records/push")
	if err != nil {
		return nil, fmt.Errorf("push request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, fmt.Errorf("%w: %w", syncengine.ErrAccountUnavailable, err)
		}
		return nil, err
	}

	var pr models.PushResponse
	if err = json.Unmarshal(resp.Body(), &pr); err != nil {
		return nil, fmt.Errorf("decode push response: %w", err)
	}
	return pr.Outcomes, nil
}

func (h *httpFeed) Pull(ctx context.Context, checkpoint []byte) (models.PullResult, error) {
	req := h.authedRequest(ctx)
	if len(checkpoint) > 0 {
		req.SetQueryParam("checkpoint", base64.URLEncoding.EncodeToString(checkpoint))
	}

	resp, err := req.Get("/api/records/changes")
	if err != nil {
		return models.PullResult{}, fmt.Errorf("pull request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return models.PullResult{}, fmt.Errorf("%w: %w", syncengine.ErrAccountUnavailable, err)
		}
		return models.PullResult{}, err
	}

	var result models.PullResult
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.PullResult{}, fmt.Errorf("decode pull response: %w", err)
	}
	return result, nil
}

// Events delivers account-lifecycle notifications. The HTTP protocol has no
// server push; transitions are injected by whoever manages the account
// credential via [httpFeed.NotifyAccountEvent].
func (h *httpFeed) Events() <-chan models.AccountEvent {
	return h.events
}

// NotifyAccountEvent publishes an account transition to the coordinator.
// When the buffer is full the event is dropped; account state is level
// based and the next transition carries the current truth.
func (h *httpFeed) NotifyAccountEvent(ev models.AccountEvent) {
	select {
	case h.events <- ev:
	default:
		h.logger.Warn().Str("kind", string(ev.Kind)).Msg("account event buffer full, dropping")
	}
}

// SetAccountToken swaps the account credential, e.g. after the user signs
// in to a different account. Takes effect on the next Open.
func (h *httpFeed) SetAccountToken(token string) {
	h.mu.Lock()
	h.account = strings.TrimSpace(token)
	h.mu.Unlock()
}

// Close drops the session token. The events channel stays open; the feed
// can be reopened.
func (h *httpFeed) Close() {
	h.setToken("")
}

func (h *httpFeed) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.sessionToken(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func (h *httpFeed) setToken(token string) {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
}

func (h *httpFeed) sessionToken() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpFeed) accountToken() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.account
}

func parseBearerToken(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
