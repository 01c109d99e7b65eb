// Package uhoo is the HTTP client for the uHoo cloud API used by the mobile app.
package uhoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"uhoo_bridge/internal/models"

	"golang.org/x/oauth2"
)

const (
	DefaultAPIBaseURL  = "https://api.uhooinc.com"
	DefaultAuthBaseURL = "https://auth.uhooinc.com"
	DefaultTimeout     = 15 * time.Second

	maxBodyBytes = 1 << 20 // 1 MB

	pathUserInfo     = "/v1/user"
	pathVerifyEmail  = "/verifyemail"
	pathLogin        = "/login"
	pathConsumerData = "/v1/allconsumerdata"
)

// Operation names carried by TransportError and ParseError.
const (
	OpUserInfo     = "user_info"
	OpVerifyEmail  = "verify_email"
	OpLogin        = "login"
	OpConsumerData = "consumer_data"
)

// DefaultHeaders is the header set the vendor app sends on every request.
// Accept-Encoding is left to net/http so gzip bodies are decoded transparently.
func DefaultHeaders() http.Header {
	h := http.Header{}
	h.Set("Connection", "keep-alive")
	h.Set("Accept", "*/*")
	h.Set("User-Agent", "uHoo/11.0.19 (iPhone;14.5; iOS 17.0; Scale/3.00)")
	h.Set("Accept-Language", "en-FI;q=1.0, fi-FI;q=0.9, de-FI;q=0.8, sv-FI;q=0.7, es-FI;q=0.6, ko-KR;q=0.5")
	return h
}

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	APIBaseURL  string
	AuthBaseURL string
	Timeout     time.Duration // per call
	Headers     http.Header
	HTTPClient  *http.Client
}

// Client talks to the uHoo API and auth hosts.
type Client struct {
	apiBase  string
	authBase string
	timeout  time.Duration
	http     *http.Client
}

// NewClient builds a client whose transport stamps the static headers on every request.
func NewClient(opts Options) *Client {
	if opts.APIBaseURL == "" {
		opts.APIBaseURL = DefaultAPIBaseURL
	}
	if opts.AuthBaseURL == "" {
		opts.AuthBaseURL = DefaultAuthBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Headers == nil {
		opts.Headers = DefaultHeaders()
	}
	base := http.DefaultTransport
	if opts.HTTPClient != nil && opts.HTTPClient.Transport != nil {
		base = opts.HTTPClient.Transport
	}
	return &Client{
		apiBase:  strings.TrimRight(opts.APIBaseURL, "/"),
		authBase: strings.TrimRight(opts.AuthBaseURL, "/"),
		timeout:  opts.Timeout,
		http: &http.Client{
			Transport: &headerTransport{base: base, headers: opts.Headers.Clone()},
		},
	}
}

// headerTransport adds static headers that the request does not already carry.
type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	for k, vv := range t.headers {
		if r.Header.Get(k) != "" {
			continue
		}
		for _, v := range vv {
			r.Header.Add(k, v)
		}
	}
	return t.base.RoundTrip(r)
}

// UserID fetches the account uid.
func (c *Client) UserID(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+pathUserInfo, nil)
	if err != nil {
		return "", &TransportError{Op: OpUserInfo, Err: err}
	}
	var out userInfoResponse
	if err := c.handshake(req, OpUserInfo, &out); err != nil {
		return "", err
	}
	if out.UID == "" {
		return "", &ParseError{Op: OpUserInfo, Err: errors.New("missing uId")}
	}
	return out.UID, nil
}

// VerifyEmail requests the per-login verification code for username and clientID.
func (c *Client) VerifyEmail(ctx context.Context, username, clientID string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("clientId", clientID)

	var out verifyEmailResponse
	if err := c.postForm(ctx, OpVerifyEmail, c.authBase+pathVerifyEmail, form, &out); err != nil {
		return "", err
	}
	if out.Code == "" {
		return "", &ParseError{Op: OpVerifyEmail, Err: errors.New("missing code")}
	}
	return out.Code, nil
}

// Login submits the encrypted password and returns the issued bearer token.
func (c *Client) Login(ctx context.Context, clientID, username, encryptedPassword string) (string, error) {
	form := url.Values{}
	form.Set("clientId", clientID)
	form.Set("password", encryptedPassword)
	form.Set("username", username)

	var out loginResponse
	if err := c.postForm(ctx, OpLogin, c.authBase+pathLogin, form, &out); err != nil {
		return "", err
	}
	if out.RefreshToken == "" {
		return "", &ParseError{Op: OpLogin, Err: errors.New("missing refreshToken")}
	}
	return out.RefreshToken, nil
}

// LatestReading fetches the current data of the first device on the account.
// A non-2xx answer is reported as a ParseError: an expired session answers that way and
// the caller treats it like any other unusable body.
func (c *Client) LatestReading(ctx context.Context, token string) (models.Reading, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+pathConsumerData, nil)
	if err != nil {
		return models.Reading{}, &TransportError{Op: OpConsumerData, Err: err}
	}

	hc := oauth2.NewClient(
		context.WithValue(ctx, oauth2.HTTPClient, c.http),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
	)
	body, status, err := c.send(hc, req, OpConsumerData)
	if err != nil {
		return models.Reading{}, err
	}
	if !isSuccess(status) {
		return models.Reading{}, &ParseError{Op: OpConsumerData, StatusCode: status, Err: fmt.Errorf("status %d", status)}
	}

	var out consumerDataResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return models.Reading{}, &ParseError{Op: OpConsumerData, StatusCode: status, Err: err}
	}
	reading, err := out.toReading()
	if err != nil {
		return models.Reading{}, &ParseError{Op: OpConsumerData, StatusCode: status, Err: err}
	}
	reading.ObservedAt = time.Now().UTC()
	return reading, nil
}

func (c *Client) postForm(ctx context.Context, op, endpoint string, form url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.handshake(req, op, out)
}

// handshake sends a login-flow request. Any non-2xx status is a TransportError so a
// rejected login never gets silently parsed.
func (c *Client) handshake(req *http.Request, op string, out any) error {
	body, status, err := c.send(c.http, req, op)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return &TransportError{Op: op, StatusCode: status, Err: fmt.Errorf("unexpected status: %s", http.StatusText(status))}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ParseError{Op: op, StatusCode: status, Err: err}
	}
	return nil
}

func (c *Client) send(hc *http.Client, req *http.Request, op string) ([]byte, int, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, resp.StatusCode, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
