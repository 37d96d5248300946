// Package adminclient talks to a running backend on behalf of operators.
// Its only call is the admin account reset.
package adminclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/webedt/webedt/internal/common"
	"github.com/webedt/webedt/internal/server/models"
)

// ResetResult is the backend's answer to a successful reset.
type ResetResult struct {
	Message           string            `json:"message"`
	User              models.PublicUser `json:"user"`
	GeneratedPassword string            `json:"generatedPassword"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ResetAdmin replaces every admin account on the server with a fresh one.
func (c *Client) ResetAdmin(ctx context.Context, token string) (*ResetResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/reset-admin", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(common.ResetTokenHeader, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("reset failed: %s; body: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	var out ResetResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
