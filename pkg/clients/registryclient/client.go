// Package registryclient wraps the trust's volunteer registry REST API.
package registryclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const defaultTimeout = 15 * time.Second

// Client talks to the volunteer registry backend. Read operations use a
// plain HTTP client; admin operations go through an OAuth2 bearer-token
// client built from the configured admin token.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	adminClient *http.Client
}

// NewClient creates a registry client for the given base URL. adminToken may
// be empty, in which case admin operations fail with an auth error before
// any request is made.
func NewClient(ctx context.Context, baseURL, adminToken string) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	if adminToken != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: adminToken, TokenType: "Bearer"})
		c.adminClient = oauth2.NewClient(ctx, src)
		c.adminClient.Timeout = defaultTimeout
	}

	return c
}

// apiEnvelope is the backend's standard response wrapper.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// doJSON performs a request and decodes the standard envelope, mapping
// transport and status failures onto the error taxonomy.
func (c *Client) doJSON(ctx context.Context, client *http.Client, op, method, url string, body any) (*apiEnvelope, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Op: op, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &APIError{Kind: KindAuth, Op: op, Status: resp.StatusCode, Message: "admin session rejected"}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &APIError{Kind: KindNotFound, Op: op, Status: resp.StatusCode, Message: "record not found"}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &APIError{Kind: KindBadStatus, Op: op, Status: resp.StatusCode, Message: "unexpected status"}
	}

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &APIError{Kind: KindBadStatus, Op: op, Status: resp.StatusCode, Message: "malformed response body", Err: err}
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "backend reported failure"
		}
		return nil, &APIError{Kind: KindBadStatus, Op: op, Status: resp.StatusCode, Message: msg}
	}

	return &env, nil
}

// admin returns the token-bearing client, or an auth error when no admin
// token was configured.
func (c *Client) admin(op string) (*http.Client, error) {
	if c.adminClient == nil {
		return nil, &APIError{Kind: KindAuth, Op: op, Message: "no admin token configured"}
	}
	return c.adminClient, nil
}
