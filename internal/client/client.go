// Package client wraps the pulsedash HTTP API for the terminal dashboard.
// The session token is kept in a local file and re-attached on start, the
// same way the web client keeps it in browser storage.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/pulsedash/pulsedash/internal/models"
)

var (
	// ErrUnauthorized means the stored token was missing, expired or revoked;
	// the caller should log in again.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError carries the server's short human-readable message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client talks to one pulsedash server.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	token   string
}

// New creates a client and restores any previously persisted session token.
func New(baseURL string, store TokenStore) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
	}
	if store != nil {
		c.token, _ = store.Load()
	}
	return c
}

// HasSession reports whether a token is currently attached.
func (c *Client) HasSession() bool { return c.token != "" }

// Signup creates an account. The server answers 201 on success.
func (c *Client) Signup(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/signup", body, nil)
}

// Login exchanges credentials for a session token, persists it, and returns
// the redacted user.
func (c *Client) Login(ctx context.Context, email, password string) (models.PublicUser, error) {
	var resp struct {
		Token string            `json:"token"`
		User  models.PublicUser `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return models.PublicUser{}, err
	}
	c.token = resp.Token
	if c.store != nil {
		if err := c.store.Save(resp.Token); err != nil {
			return models.PublicUser{}, fmt.Errorf("persist token: %w", err)
		}
	}
	return resp.User, nil
}

// Logout discards the session credential. Purely client-side; tokens are
// stateless and simply expire server-side.
func (c *Client) Logout() error {
	c.token = ""
	if c.store != nil {
		return c.store.Clear()
	}
	return nil
}

// Me fetches the current principal's redacted record.
func (c *Client) Me(ctx context.Context) (models.PublicUser, error) {
	var resp struct {
		User models.PublicUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return models.PublicUser{}, err
	}
	return resp.User, nil
}

// Users fetches the full directory in store-native order.
func (c *Client) Users(ctx context.Context) ([]models.PublicUser, error) {
	var out []models.PublicUser
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats fetches the dashboard statistics.
func (c *Client) Stats(ctx context.Context) (models.DashboardStats, error) {
	var out models.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, &out); err != nil {
		return models.DashboardStats{}, err
	}
	return out, nil
}

// Seed resets the development server to the sample users.
func (c *Client) Seed(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/seed", nil, nil)
}

// Dashboard loads stats and users concurrently, mirroring the web client's
// parallel fetch on view load.
func (c *Client) Dashboard(ctx context.Context) (models.DashboardStats, []models.PublicUser, error) {
	var (
		wg       sync.WaitGroup
		stats    models.DashboardStats
		list     []models.PublicUser
		statsErr error
		usersErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		stats, statsErr = c.Stats(ctx)
	}()
	go func() {
		defer wg.Done()
		list, usersErr = c.Users(ctx)
	}()
	wg.Wait()
	if statsErr != nil {
		return models.DashboardStats{}, nil, statsErr
	}
	if usersErr != nil {
		return models.DashboardStats{}, nil, usersErr
	}
	return stats, list, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Stored token no longer verifies: drop it, same as the web client
		// clearing browser storage.
		c.token = ""
		if c.store != nil {
			_ = c.store.Clear()
		}
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return &APIError{Status: resp.StatusCode, Message: msg.Message}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
