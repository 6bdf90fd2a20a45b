package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/siherrmann/duckling/helper"
	"github.com/siherrmann/duckling/model"
)

// maxResponseSize bounds the body read from the server
const maxResponseSize = 16 << 20

// EngineStatusError is returned when the server answers with a non-2xx status
type EngineStatusError struct {
	StatusCode int
	Body       string
}

func (e *EngineStatusError) Error() string {
	return fmt.Sprintf("duckling server returned status %d: %s", e.StatusCode, e.Body)
}

// HTTPEngine talks to a Duckling server over its HTTP API
type HTTPEngine struct {
	baseURL *url.URL
	client  *http.Client
	log     *slog.Logger
}

// NewHTTPEngine creates an engine for the server configured in config
func NewHTTPEngine(config *helper.EngineConfiguration, logger *slog.Logger) (*HTTPEngine, error) {
	if config == nil {
		return nil, helper.NewError("engine configuration validation", fmt.Errorf("engine configuration is nil"))
	}
	return NewHTTPEngineWithClient(config.URL, &http.Client{Timeout: config.Timeout}, logger)
}

// NewHTTPEngineWithClient creates an engine using client for all requests
func NewHTTPEngineWithClient(baseURL string, client *http.Client, logger *slog.Logger) (*HTTPEngine, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, helper.NewError("parse engine url", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, helper.NewError("parse engine url", fmt.Errorf("unsupported scheme %q", u.Scheme))
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPEngine{
		baseURL: u,
		client:  client,
		log:     logger,
	}, nil
}

// EncodeForm builds the form fields of a /parse call
func EncodeForm(req Request) (url.Values, error) {
	names := make([]string, 0, len(req.Dimensions))
	for _, d := range model.UniqueDimensions(req.Dimensions) {
		names = append(names, d.String())
	}
	dims, err := json.Marshal(names)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("text", req.Text)
	form.Set("lang", strings.ToLower(req.Context.Locale.Language.String()))
	form.Set("locale", req.Context.Locale.HTTPParam())
	form.Set("dims", string(dims))
	form.Set("tz", req.Context.ReferenceTime.Zone)
	form.Set("reftime", strconv.FormatInt(req.Context.ReferenceTime.UnixMilli(), 10))
	form.Set("latent", strconv.FormatBool(req.WithLatent))

	return form, nil
}

// Parse posts the request to /parse and returns the raw response body
func (e *HTTPEngine) Parse(ctx context.Context, req Request) ([]byte, error) {
	form, err := EncodeForm(req)
	if err != nil {
		return nil, helper.NewError("encode form", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint("/parse"), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, helper.NewError("create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, helper.NewError("post parse request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, helper.NewError("read parse response", err)
	}

	e.log.Debug("Duckling parse",
		slog.Int("status", resp.StatusCode),
		slog.String("locale", req.Context.Locale.Name()),
		slog.Int("dimensions", len(req.Dimensions)),
		slog.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &EngineStatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return body, nil
}

// Ping checks that the server answers on its root endpoint
func (e *HTTPEngine) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, e.endpoint("/"), nil)
	if err != nil {
		return helper.NewError("create request", err)
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return helper.NewError("ping duckling server", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode != http.StatusOK {
		return &EngineStatusError{StatusCode: resp.StatusCode}
	}
	return nil
}

// Close releases idle connections
func (e *HTTPEngine) Close() error {
	e.client.CloseIdleConnections()
	return nil
}

// URL returns the server base URL
func (e *HTTPEngine) URL() string {
	return e.baseURL.String()
}

func (e *HTTPEngine) endpoint(path string) string {
	return e.baseURL.String() + path
}
