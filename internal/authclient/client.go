package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	HeaderRealIPFromApp = "X-Real-IP-From-App"
	HeaderRealIP        = "X-Real-IP"

	maxResponseBytes = 1 << 20
)

var (
	ErrUnavailable = errors.New("authclient: gateway unavailable")
	ErrBadResponse = errors.New("authclient: gateway reply is not a JSON envelope")
)

type Client struct {
	baseURL    string
	appID      string
	httpClient *http.Client
}

func NewClient(authServiceURL, appID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(authServiceURL, "/"),
		appID:   appID,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Caller describes the end user the login is made on behalf of.
type Caller struct {
	IP        string
	UserAgent string
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
	AppID    string `json:"app_id"`
}

type envelope struct {
	Status  *int            `json:"status"`
	Message json.RawMessage `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type tokenData struct {
	Token string `json:"token"`
}

// LoginResult is the gateway reply. Body is kept byte for byte so it can be
// handed back to the client unchanged.
type LoginResult struct {
	Status  int
	Message any
	Token   string
	Body    json.RawMessage
}

func (r *LoginResult) OK() bool { return r.Status == http.StatusOK }

// Login posts the credentials to {baseURL}/auth/login. Any reply that is a
// JSON object is returned, whatever its status; the caller decides.
func (c *Client) Login(ctx context.Context, username, password string, caller Caller) (*LoginResult, error) {
	payload, err := json.Marshal(loginBody{Username: username, Password: password, AppID: c.appID})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRealIPFromApp, caller.IP)
	req.Header.Set(HeaderRealIP, caller.IP)
	req.Header.Set("User-Agent", caller.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: status %d: %v", ErrBadResponse, resp.StatusCode, err)
	}

	result := &LoginResult{
		Status: resp.StatusCode,
		Body:   raw,
	}
	var data tokenData
	if len(env.Data) > 0 && json.Unmarshal(env.Data, &data) == nil {
		result.Token = data.Token
	}
	if env.Status != nil {
		result.Status = *env.Status
	}
	if len(env.Message) > 0 {
		var msg any
		if err := json.Unmarshal(env.Message, &msg); err == nil {
			result.Message = msg
		}
	}
	return result, nil
}
