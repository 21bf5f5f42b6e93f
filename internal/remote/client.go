// Package remote provides a client for a running shieldplan API server.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/guardianshield/shieldplan/internal/model"
	"github.com/guardianshield/shieldplan/internal/session"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

var (
	// ErrNoAssessment means the session has nothing committed yet.
	ErrNoAssessment = errors.New("remote: no assessment for this session")
	// ErrNotRecommended means the IUL flow is not open to this profile.
	ErrNotRecommended = errors.New("remote: IUL is not recommended for this profile")
	// ErrFlowLocked means the IUL flow was requested before it was entered.
	ErrFlowLocked = errors.New("remote: IUL flow not entered")
)

// Client talks to the shieldplan HTTP API under one session cookie.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient creates a client for baseURL. A non-empty token resumes an
// existing session; otherwise the server issues a fresh one.
func NewClient(baseURL, token string) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("remote: parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("remote: base url %q must be http or https", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		jar.SetCookies(u, []*http.Cookie{{Name: session.CookieName, Value: token, Path: "/"}})
	}

	return &Client{
		base: u,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// Token returns the current session token, for resuming later.
func (c *Client) Token() string {
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == session.CookieName {
			return ck.Value
		}
	}
	return ""
}

// Submit commits p to the session. A profile that fails a section gate
// returns a *SectionError.
func (c *Client) Submit(ctx context.Context, p model.Profile) error {
	return c.do(ctx, http.MethodPost, "/v1/assessment", p, nil)
}

// Clear discards the session's assessment and flags.
func (c *Client) Clear(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/v1/assessment", nil, nil)
}

// Report fetches the derived report.
func (c *Client) Report(ctx context.Context) (model.Report, error) {
	var r model.Report
	err := c.do(ctx, http.MethodGet, "/v1/report", nil, &r)
	return r, err
}

// Totals fetches the running totals of the committed profile.
func (c *Client) Totals(ctx context.Context) (model.RunningTotals, error) {
	var t model.RunningTotals
	err := c.do(ctx, http.MethodGet, "/v1/totals", nil, &t)
	return t, err
}

// Status fetches the session's flags.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var s Status
	err := c.do(ctx, http.MethodGet, "/v1/status", nil, &s)
	return s, err
}

// EnterIUL opens the IUL flow for the session.
func (c *Client) EnterIUL(ctx context.Context) (Status, error) {
	var s Status
	err := c.do(ctx, http.MethodPost, "/v1/iul", nil, &s)
	return s, err
}

// IULBanking fetches the illustration for an entered IUL flow.
func (c *Client) IULBanking(ctx context.Context) (IULBanking, error) {
	var b IULBanking
	err := c.do(ctx, http.MethodGet, "/v1/iul-banking", nil, &b)
	return b, err
}

// Server fetches the server's status summary.
func (c *Client) Server(ctx context.Context) (ServerStatus, error) {
	var s ServerStatus
	err := c.do(ctx, http.MethodGet, "/v1/server", nil, &s)
	return s, err
}

// Events fetches the recent activity feed.
func (c *Client) Events(ctx context.Context) ([]Event, error) {
	var ev []Event
	err := c.do(ctx, http.MethodGet, "/v1/events", nil, &ev)
	return ev, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("remote: encoding request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return fmt.Errorf("remote: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("remote: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusErr(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("remote: parsing %s: %w", path, err)
	}
	return nil
}

func statusErr(code int, data []byte) error {
	var body apiError
	_ = json.Unmarshal(data, &body)

	switch code {
	case http.StatusNotFound:
		if body.Redirect != "" {
			return ErrNoAssessment
		}
	case http.StatusConflict:
		return ErrNotRecommended
	case http.StatusForbidden:
		return ErrFlowLocked
	case http.StatusUnprocessableEntity:
		if body.Section > 0 {
			return &SectionError{Section: body.Section, Fields: body.Fields}
		}
	}
	return &StatusError{Code: code, Message: body.Error}
}
