// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package hubapi is the HTTP client for the hub API. Every request carries the
// session cookie, and every failure is reported once through an Alerter and
// returned to the caller as a single *Error.
package hubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/apphub/hubclient/internal/logging"
	"github.com/apphub/hubclient/internal/model"
	"github.com/apphub/hubclient/internal/security"
	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response is read into memory.
const maxBodySize = 64 << 20

// Alerter receives the user-facing message of every failed request.
type Alerter interface {
	Alert(message string)
}

// AlerterFunc adapts a function to Alerter.
type AlerterFunc func(message string)

// Alert calls f.
func (f AlerterFunc) Alert(message string) { f(message) }

// CredentialStore persists the session cookie between runs.
type CredentialStore interface {
	LoadCredential(ctx context.Context, server string) (*model.Credential, error)
	SaveCredential(ctx context.Context, cred model.Credential) error
	DeleteCredential(ctx context.Context, server string) error
}

// Response is a successful hub reply.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Client talks to one hub server.
type Client struct {
	base           *url.URL
	httpClient     *http.Client
	alerter        Alerter
	creds          CredentialStore
	onUnauthorized func()

	mu       sync.Mutex
	identity string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithAlerter sets where failure messages go. The default drops them.
func WithAlerter(a Alerter) Option {
	return func(c *Client) { c.alerter = a }
}

// WithCredentialStore persists the session cookie through s.
func WithCredentialStore(s CredentialStore) Option {
	return func(c *Client) { c.creds = s }
}

// WithUnauthorizedHandler registers fn to run whenever the hub rejects the
// session with 401. The local cookie is already dropped when fn runs.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithTransport replaces the HTTP transport, mainly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.httpClient.Transport = rt }
}

// New returns a client for the hub at baseURL, e.g. "https://hub.example.com".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid hub url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid hub url %q: scheme must be http or https", baseURL)
	}
	jar, err := newJar()
	if err != nil {
		return nil, err
	}
	c := &Client{
		base:       u,
		httpClient: &http.Client{Timeout: DefaultTimeout, Jar: jar},
		alerter:    AlerterFunc(func(string) {}),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func newJar() (*cookiejar.Jar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("could not create cookie jar: %w", err)
	}
	return jar, nil
}

// Server returns the hub base URL.
func (c *Client) Server() string { return c.base.String() }

// Restore seeds the cookie jar from the credential store. It reports whether
// a usable cookie was found; a stored cookie is never trusted without an
// auth check.
func (c *Client) Restore(ctx context.Context) (bool, error) {
	if c.creds == nil {
		return false, nil
	}
	cred, err := c.creds.LoadCredential(ctx, c.Server())
	if err != nil {
		return false, fmt.Errorf("could not load stored session: %w", err)
	}
	if cred == nil || cred.Cookie.Empty() {
		return false, nil
	}
	if cred.Expired(time.Now()) {
		_ = c.creds.DeleteCredential(ctx, c.Server())
		return false, nil
	}
	c.httpClient.Jar.SetCookies(c.base, []*http.Cookie{{Name: CookieName, Value: cred.Cookie.Reveal(), Path: "/"}})
	c.setIdentity(cred.User)
	logging.Debugf("restored session cookie for %s", c.Server())
	return true, nil
}

// HasCookie reports whether a session cookie would be sent.
func (c *Client) HasCookie() bool {
	for _, ck := range c.httpClient.Jar.Cookies(c.base) {
		if ck.Name == CookieName && ck.Value != "" {
			return true
		}
	}
	return false
}

// ClearSession drops the local cookie and the stored credential.
func (c *Client) ClearSession(ctx context.Context) {
	c.httpClient.Jar.SetCookies(c.base, []*http.Cookie{{Name: CookieName, Value: "", Path: "/", MaxAge: -1}})
	c.setIdentity("")
	if c.creds != nil {
		if err := c.creds.DeleteCredential(ctx, c.Server()); err != nil {
			logging.Warnf("could not delete stored session: %v", err)
		}
	}
}

func (c *Client) setIdentity(user string) {
	c.mu.Lock()
	c.identity = user
	c.mu.Unlock()
}

func (c *Client) getIdentity() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

// Send issues a request and alerts on failure.
func (c *Client) Send(ctx context.Context, method, path string, payload any) (*Response, error) {
	return c.do(ctx, method, path, payload, true)
}

// do performs one request. With alert=false the failure is only returned,
// which the liveness check uses since a redirect already tells the user.
func (c *Client) do(ctx context.Context, method, path string, payload any, alert bool) (*Response, error) {
	target := c.base.String() + APIPrefix + path

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, c.fail(newError(0, "", fmt.Errorf("marshal request: %w", err)), alert)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, c.fail(newError(0, "", fmt.Errorf("create request: %w", err)), alert)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Debugf("%s %s [%s] failed after %s: %v", method, path, reqID, time.Since(start), err)
		return nil, c.fail(newError(0, "", err), alert)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, c.fail(newError(resp.StatusCode, "", fmt.Errorf("read response: %w", err)), alert)
	}
	logging.Debugf("%s %s [%s] -> %d in %s", method, path, reqID, resp.StatusCode, time.Since(start))

	c.trackCookie(ctx, resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && path != PathLogin {
			c.ClearSession(ctx)
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		}
		return nil, c.fail(newError(resp.StatusCode, strings.TrimSpace(string(data)), nil), alert)
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func (c *Client) fail(e *Error, alert bool) *Error {
	if alert {
		c.alerter.Alert(e.Message)
	}
	return e
}

// trackCookie mirrors session cookie changes into the credential store.
func (c *Client) trackCookie(ctx context.Context, resp *http.Response) {
	if c.creds == nil {
		return
	}
	for _, ck := range resp.Cookies() {
		if ck.Name != CookieName {
			continue
		}
		if ck.Value == "" || ck.MaxAge < 0 || (!ck.Expires.IsZero() && ck.Expires.Before(time.Now())) {
			if err := c.creds.DeleteCredential(ctx, c.Server()); err != nil {
				logging.Warnf("could not delete stored session: %v", err)
			}
			continue
		}
		cred := model.Credential{Server: c.Server(), User: c.getIdentity(), Cookie: security.FromString(ck.Value), ExpiresAt: ck.Expires}
		if err := c.creds.SaveCredential(ctx, cred); err != nil {
			logging.Warnf("could not store session: %v", err)
		}
	}
}

// decode unmarshals a response body, alerting on malformed payloads.
func (c *Client) decode(resp *Response, v any) error {
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return c.fail(newError(resp.Status, "", fmt.Errorf("decode response: %w", err)), true)
	}
	return nil
}
