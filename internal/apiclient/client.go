// Package apiclient is a small fasthttp client for the fog chess server
// API, used by the CLI's remote mode.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/mgrz/fog-chess-server/pkg/fowdto"
)

type Client struct {
	baseURL string
	http    *fasthttp.Client

	defaultTimeout time.Duration
	retryMax       int
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

func WithRetry(max int) Option {
	return func(c *Client) { c.retryMax = max }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 16},
		defaultTimeout: 10 * time.Second,
		retryMax:       2,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateGame starts a new session and returns its ID. Creation is not
// idempotent (a retry after a timed-out but committed request would leave
// an orphan game), so it is never retried; only reads are.
func (c *Client) CreateGame(ctx context.Context) (string, error) {
	var resp fowdto.CreateGameResponse
	if err := c.doJSON(ctx, fasthttp.MethodPost, "/api/games", nil, &resp, false); err != nil {
		return "", err
	}
	return resp.GameID, nil
}

// State fetches session bookkeeping.
func (c *Client) State(ctx context.Context, gameID string) (*fowdto.GameState, error) {
	var resp fowdto.GameState
	if err := c.doJSON(ctx, fasthttp.MethodGet, "/api/games/"+gameID, nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Move submits a move in algebraic form. A refused move is not an error;
// inspect MoveResponse.Accepted and Reason.
func (c *Client) Move(ctx context.Context, gameID, from, to string) (*fowdto.MoveResponse, error) {
	req := fowdto.MoveRequest{From: from, To: to}
	var resp fowdto.MoveResponse
	if err := c.doJSON(ctx, fasthttp.MethodPost, "/api/games/"+gameID+"/moves", req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Board fetches the rendered projection for a perspective.
func (c *Client) Board(ctx context.Context, gameID, perspective string) (*fowdto.BoardView, error) {
	path := "/api/games/" + gameID + "/board?perspective=" + perspective
	var resp fowdto.BoardView
	if err := c.doJSON(ctx, fasthttp.MethodGet, path, nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any, retry bool) error {
	attempts := 1
	if retry {
		attempts += c.retryMax
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = c.once(method, path, in, out)
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (c *Client) once(method, path string, in, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	if err := c.http.DoTimeout(req, resp, c.defaultTimeout); err != nil {
		return err
	}

	status := resp.StatusCode()
	body := resp.Body()
	// Rule rejections ride a non-2xx MoveResponse; decode before failing.
	if status >= 400 {
		var apiErr fowdto.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server: %s (status %d)", apiErr.Error, status)
		}
		if status != fasthttp.StatusConflict {
			return fmt.Errorf("server returned status %d", status)
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
