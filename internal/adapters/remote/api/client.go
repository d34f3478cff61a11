package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-care-tasks/internal/platform/httpclient"
	"pet-care-tasks/internal/ports/remote"
)

var (
	ErrAPINotConfigured = errors.New("pet-care api client not configured")
	ErrAPIUnauthorized  = errors.New("pet-care api unauthorized")
)

// Config del cliente de la API de pet-care.
type Config struct {
	BaseURL string

	// Token bearer (prod). Si está vacío y DebugUserID no, se usa el header de dev.
	Token       string
	DebugUserID string

	Timeout time.Duration

	// Transport opcional (tests).
	Transport http.RoundTripper
}

// Client implementa remote.ReminderGateway y remote.PetDirectory sobre HTTP.
type Client struct {
	http *httpclient.Client
}

var (
	_ remote.ReminderGateway = (*Client)(nil)
	_ remote.PetDirectory    = (*Client)(nil)
)

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, ErrAPINotConfigured
	}

	var hc *httpclient.Client
	if cfg.Transport != nil {
		hc = httpclient.NewWithTransport(cfg.Timeout, cfg.Transport)
		if _, err := url.ParseRequestURI(base); err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
		hc.BaseURL = strings.TrimRight(base, "/")
	} else {
		var err error
		hc, err = httpclient.NewWithBaseURL(base, cfg.Timeout)
		if err != nil {
			return nil, err
		}
	}

	if tok := strings.TrimSpace(cfg.Token); tok != "" {
		hc.SetHeader("Authorization", "Bearer "+tok)
	} else if uid := strings.TrimSpace(cfg.DebugUserID); uid != "" {
		hc.SetHeader("X-Debug-User-ID", uid)
	}

	return &Client{http: hc}, nil
}

// FetchToday: GET /reminders/today -> {data: [...]}
func (c *Client) FetchToday(ctx context.Context) ([]remote.Reminder, error) {
	items, err := httpclient.GetData[[]remote.Reminder](ctx, c.http, http.MethodGet, "/reminders/today", nil)
	if err != nil {
		return nil, mapErr(err)
	}
	if items == nil {
		items = []remote.Reminder{}
	}
	return items, nil
}

// Complete: POST /reminders/{id}/complete
func (c *Client) Complete(ctx context.Context, id string) (remote.Reminder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return remote.Reminder{}, remote.ErrNotFound
	}
	r, err := httpclient.GetData[remote.Reminder](ctx, c.http, http.MethodPost, "/reminders/"+url.PathEscape(id)+"/complete", nil)
	if err != nil {
		return remote.Reminder{}, mapErr(err)
	}
	return r, nil
}

// UpdateStatus: PATCH /reminders/{id} {status}
func (c *Client) UpdateStatus(ctx context.Context, id string, status remote.Status) (remote.Reminder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return remote.Reminder{}, remote.ErrNotFound
	}
	body := map[string]remote.Status{"status": status}
	r, err := httpclient.GetData[remote.Reminder](ctx, c.http, http.MethodPatch, "/reminders/"+url.PathEscape(id), body)
	if err != nil {
		return remote.Reminder{}, mapErr(err)
	}
	return r, nil
}

// Create: POST /pets/{petId}/reminders
func (c *Client) Create(ctx context.Context, petID string, in remote.CreateReminderInput) (remote.Reminder, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return remote.Reminder{}, errors.New("petID required")
	}
	r, err := httpclient.GetData[remote.Reminder](ctx, c.http, http.MethodPost, "/pets/"+url.PathEscape(petID)+"/reminders", in)
	if err != nil {
		return remote.Reminder{}, mapErr(err)
	}
	return r, nil
}

// ListPets: GET /pets
func (c *Client) ListPets(ctx context.Context) ([]remote.Pet, error) {
	items, err := httpclient.GetData[[]remote.Pet](ctx, c.http, http.MethodGet, "/pets", nil)
	if err != nil {
		return nil, mapErr(err)
	}
	return items, nil
}

// mapErr traduce status conocidos a sentinels sin perder el mensaje del servidor.
func mapErr(err error) error {
	var he *httpclient.HTTPError
	if !errors.As(err, &he) {
		return err
	}
	switch he.StatusCode {
	case http.StatusNotFound:
		return &statusError{kind: remote.ErrNotFound, http: he}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &statusError{kind: ErrAPIUnauthorized, http: he}
	default:
		return he
	}
}

type statusError struct {
	kind error
	http *httpclient.HTTPError
}

func (e *statusError) Error() string         { return fmt.Sprintf("%v: %v", e.kind, e.http) }
func (e *statusError) Unwrap() []error       { return []error{e.kind, e.http} }
func (e *statusError) ServerMessage() string { return e.http.ServerMessage() }
