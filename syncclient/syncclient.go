// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/farmops/fieldsync/models"
	"github.com/farmops/fieldsync/validate"
)

var (
	// ErrSessionExpired means no bearer token is available; the call is
	// short-circuited before reaching the network.
	ErrSessionExpired = errors.New("session expired")

	// ErrRejected means the backend answered success:false.
	ErrRejected = errors.New("rejected by backend")
)

// Save operation results reported by the backend.
const (
	OpInsert = "insert"
	OpUpdate = "update"
)

// TokenSource yields the current bearer token. session.Session satisfies
// this.
type TokenSource interface {
	Token() (string, bool)
}

// Client talks to the inspection backend. One Save call issues exactly
// one HTTP request; retries are user-initiated, never automatic.
type Client struct {
	base       string
	tokens     TokenSource
	deviceUUID string
	http       *http.Client
}

// New builds a client for the given base URL. The default transport
// timeout stands in for the platform's; there is no retry or backoff.
func New(base string, tokens TokenSource, deviceUUID string) *Client {
	return &Client{
		base:       base,
		tokens:     tokens,
		deviceUUID: deviceUUID,
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: loggingTransport{next: http.DefaultTransport},
		},
	}
}

// Save pushes one section's validated fields. It returns the backend's
// reported operation ("insert" or "update"), or an error: transport
// failures wrap the cause, backend refusals wrap ErrRejected with the
// backend's message.
func (c *Client) Save(ctx context.Context, requestID int64, tableName string, fields models.Fields, rules validate.Rules, clears []string) (string, error) {
	token, ok := c.tokens.Token()
	if !ok {
		return "", ErrSessionExpired
	}

	wire := Encode(fields, rules, clears)
	wire["reqId"] = requestID
	wire["tableName"] = tableName

	body, err := encodeJSONBody(wire)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/inspection/save", body)
	if err != nil {
		return "", err
	}
	c.setHeaders(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("save failed: %w", err)
	}

	var envelope models.SaveResponse
	if err := decodeJSONBody(resp, &envelope); err != nil {
		return "", fmt.Errorf("invalid save response: %w", err)
	}

	if !envelope.Success {
		if envelope.Message != "" {
			return "", fmt.Errorf("%w: %s", ErrRejected, envelope.Message)
		}
		return "", ErrRejected
	}

	return envelope.Operation, nil
}

// Load hydrates one section directly from the backend, for sections with
// no offline-draft requirement. ok=false means the backend has no record
// for this (request, section) yet.
func (c *Client) Load(ctx context.Context, requestID int64, tableName string, rules validate.Rules) (models.Fields, bool, error) {
	token, tok := c.tokens.Token()
	if !tok {
		return nil, false, ErrSessionExpired
	}

	q := url.Values{}
	q.Set("reqId", strconv.FormatInt(requestID, 10))
	q.Set("tableName", tableName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/inspection/get?"+q.Encode(), nil)
	if err != nil {
		return nil, false, err
	}
	c.setHeaders(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("load failed: %w", err)
	}

	var envelope models.LoadResponse
	if err := decodeJSONBody(resp, &envelope); err != nil {
		return nil, false, fmt.Errorf("invalid load response: %w", err)
	}

	if !envelope.Success || envelope.Data == nil {
		return nil, false, nil
	}

	return Decode(envelope.Data, rules), true, nil
}

func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.deviceUUID != "" {
		req.Header.Set("X-Device-UUID", c.deviceUUID)
	}
}
