// Package transport performs single HTTP calls against the storefront
// backend and normalizes every outcome into the apierr taxonomy. It
// never reads or writes credential storage; callers hand it a bearer
// token when the call needs one.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fjod/shop_client/apierr"
)

const (
	// DefaultTimeout bounds one call, including body read.
	DefaultTimeout = 30 * time.Second

	defaultMaxBodySize = 1 << 20 // 1MiB
)

type Config struct {
	// BaseURL is the backend root, e.g. https://api.example.com/v1.
	BaseURL string
	// HTTPClient is used to execute requests. When nil a default client
	// is used. Any Timeout set on it is ignored; per-request contexts
	// carry the budget instead.
	HTTPClient *http.Client
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
	// MaxBodyBytes caps response bodies. Zero means 1MiB.
	MaxBodyBytes int64
}

type Executor struct {
	baseURL      string
	httpClient   *http.Client
	timeout      time.Duration
	maxBodyBytes int64
}

func New(cfg Config) (*Executor, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("transport: BaseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("transport: BaseURL must be a valid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("transport: BaseURL scheme must be http or https")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodySize
	}

	return &Executor{
		baseURL:      baseURL,
		httpClient:   httpClient,
		timeout:      timeout,
		maxBodyBytes: maxBodyBytes,
	}, nil
}

// Request describes one HTTP call. Path is relative to the base URL.
// Body, when non-nil, is serialized to JSON. BearerToken, when
// non-empty, is attached as an Authorization header; the executor does
// not decide whether a call needs auth.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        any
	BearerToken string
	// Timeout overrides the executor-wide budget for this call.
	Timeout time.Duration
}

// Do performs the call and returns the parsed JSON body on any 2xx
// status, or an empty object when the body is empty. All failures come
// back as *apierr.Error; raw transport errors never escape.
func (e *Executor) Do(ctx context.Context, req Request) (json.RawMessage, *apierr.Error) {
	var bodyReader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, apierr.Format(fmt.Sprintf("could not encode request body: %v", err))
		}
		bodyReader = bytes.NewReader(data)
	}

	reqURL := e.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		reqURL += "?" + req.Query.Encode()
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = e.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, reqURL, bodyReader)
	if err != nil {
		return nil, apierr.Unknown(fmt.Sprintf("could not build request: %v", err))
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.BearerToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.BearerToken)
	}

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBodyBytes))
	if err != nil {
		return nil, networkError(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if len(bytes.TrimSpace(raw)) == 0 {
			return json.RawMessage("{}"), nil
		}
		if !json.Valid(raw) {
			return nil, apierr.Format("the server returned a malformed response")
		}
		return json.RawMessage(raw), nil
	}

	body, fieldOrder := apierr.ParseBody(raw)
	return nil, apierr.FromStatus(resp.StatusCode, body, fieldOrder)
}

func networkError(err error) *apierr.Error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return apierr.Network("the request timed out, check your connection and try again")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apierr.Network("the request timed out, check your connection and try again")
	}
	return apierr.Network("could not reach the server, check your connection")
}
