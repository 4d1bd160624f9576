// Copyright (c) 2026 Lorevault. All rights reserved.

/*
Package client is the Go SDK for the Lorevault API.

It mirrors the server's HTTP surface with two stateful stores:

  - SessionStore: authentication lifecycle and cached identity.
  - CharacterStore: cached view of the caller's character vault.

# State Model

The stores are caches of server truth, never authoritative. Mutations follow
a fetch-after-mutate discipline: the server response replaces or patches the
cached slice, and a failed call leaves the previous cache intact with the
server's message recorded in the store's Err field.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// defaultRequestTimeout bounds every SDK call when the caller's context
// carries no deadline of its own.
const defaultRequestTimeout = 15 * time.Second

// # Wire Types

// User mirrors the server's account representation.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Character mirrors the server's character representation.
type Character struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	Heritage   string    `json:"heritage"`
	Calling    string    `json:"calling"`
	Level      int       `json:"level"`
	Experience int       `json:"experience"`
	Biography  string    `json:"biography"`
	ImageURL   string    `json:"imageUrl"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// successEnvelope is the generic {"success":true,"data":...} response shape.
type successEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// errorEnvelope is the {"success":false,"error":...,"code":...} shape.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// APIError is a server-reported failure.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Code is the machine-readable error identifier.
	Code string
	// Message is the human-readable message the server returned.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// # Client Definitions

// Client is the low-level HTTP transport shared by the stores.
//
// The bearer token is guarded by a mutex because SessionStore (which writes
// it) and CharacterStore (which reads it) may be driven from different
// goroutines in a UI loop.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient constructs a Client for the given server base URL
// (e.g. "http://localhost:8080").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
}

// SetToken installs the bearer token used for authenticated requests.
func (client *Client) SetToken(token string) {
	client.mu.Lock()
	defer client.mu.Unlock()
	client.token = token
}

// Token returns the current bearer token, empty when signed out.
func (client *Client) Token() string {
	client.mu.RLock()
	defer client.mu.RUnlock()
	return client.token
}

// ClearToken removes the bearer token.
func (client *Client) ClearToken() {
	client.SetToken("")
}

// HasToken reports whether a bearer token is installed.
func (client *Client) HasToken() bool {
	return client.Token() != ""
}

// # Transport

/*
do executes one JSON round trip against the API.

Description: Marshals the body (when non-nil), attaches the bearer token if
present, and decodes the response into target (when non-nil). Non-2xx
responses are decoded through the error envelope and surfaced as [*APIError]
carrying the server's message.

Parameters:
  - context: context.Context
  - method: string (HTTP verb)
  - path: string (e.g. "/api/characters")
  - body: interface{} (request payload, nil for none)
  - target: interface{} (pointer to decode the raw response into, nil to discard)

Returns:
  - error: *APIError for server-reported failures, transport errors otherwise
*/
func (client *Client) do(context context.Context, method, path string, body, target interface{}) error {
	requestURL, err := url.JoinPath(client.baseURL, path)
	if err != nil {
		return fmt.Errorf("client_bad_url: %w", err)
	}

	var requestBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client_encode_failed: %w", err)
		}
		requestBody = bytes.NewBuffer(encoded)
	} else {
		requestBody = &bytes.Buffer{}
	}

	request, err := http.NewRequestWithContext(context, method, requestURL, requestBody)
	if err != nil {
		return fmt.Errorf("client_build_request_failed: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	if token := client.Token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("client_request_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		serverError := &APIError{StatusCode: response.StatusCode}

		var envelope errorEnvelope
		if decodeErr := json.NewDecoder(response.Body).Decode(&envelope); decodeErr == nil {
			serverError.Message = envelope.Error
			serverError.Code = envelope.Code
		}

		return serverError
	}

	if target == nil {
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("client_decode_failed: %w", err)
	}

	return nil
}

// doData executes a round trip whose success payload uses the generic
// {"success":true,"data":...} envelope, decoding data into target.
func (client *Client) doData(context context.Context, method, path string, body, target interface{}) error {
	var envelope successEnvelope
	if err := client.do(context, method, path, body, &envelope); err != nil {
		return err
	}

	if target == nil || len(envelope.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(envelope.Data, target); err != nil {
		return fmt.Errorf("client_decode_failed: %w", err)
	}

	return nil
}
