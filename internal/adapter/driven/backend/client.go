// Package backend implements the driven gateway ports against the Wize REST API.
//
// Every operation goes through call, which attaches credentials, decodes the
// {isSuccess, data, messages} envelope regardless of status, and folds all
// transport and decoding errors into a model.Result. Nothing in this package
// returns a Go error to gateway callers.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
	"github.com/ericfisherdev/wizeportal/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.AccountGateway     = (*Client)(nil)
	_ driven.CostCenterGateway  = (*Client)(nil)
	_ driven.ExpenseTypeGateway = (*Client)(nil)
	_ driven.APIKeyGateway      = (*Client)(nil)
	_ driven.InvoiceGateway     = (*Client)(nil)
	_ driven.DashboardGateway   = (*Client)(nil)
)

const (
	// ConnectivityMessage is returned for every transport or decoding failure.
	ConnectivityMessage = "Connection error. Please check your internet connection and try again."
	// NotSignedInMessage is returned when a session call has no usable session.
	NotSignedInMessage = "You are not signed in."

	maxResponseBytes = 10 << 20
)

// Client is the REST client for the Wize backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a backend client whose transport records an
// OpenTelemetry client span per call. timeout bounds each call end to end.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	return NewClientWithHTTPClient(httpClient, baseURL, logger)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

type authMode int

const (
	authAnonymous authMode = iota
	authSession
	authService
)

// auth selects the credential headers attached to a call.
type auth struct {
	mode    authMode
	session *model.Session
	service model.ServiceCredential
}

func anonymous() auth { return auth{mode: authAnonymous} }

func withSession(s *model.Session) auth { return auth{mode: authSession, session: s} }

func withService(c model.ServiceCredential) auth { return auth{mode: authService, service: c} }

// request describes one backend call.
type request struct {
	method string
	path   string
	query  url.Values

	// jsonBody is encoded as JSON when non-nil.
	jsonBody any
	// body and contentType are used for pre-encoded bodies such as multipart.
	body        io.Reader
	contentType string

	// okMessage and failMessage are used when the backend sends no message.
	okMessage   string
	failMessage string

	// bare marks endpoints that return the payload as the whole body instead
	// of inside the envelope.
	bare bool
}

// envelope is the standard backend response wrapper.
type envelope struct {
	IsSuccess *bool           `json:"isSuccess"`
	Data      json.RawMessage `json:"data"`
	Messages  messageList     `json:"messages"`
}

// messageList accepts either a single string or an array of strings.
type messageList []string

func (m *messageList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*m = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*m = []string{single}
		return nil
	}
	// Structured messages are not shown; fall back to operation messages.
	*m = nil
	return nil
}

func (m messageList) first() string {
	for _, msg := range m {
		if msg = strings.TrimSpace(msg); msg != "" {
			return msg
		}
	}
	return ""
}

// call performs req and decodes the response into a Result. It is the only
// place that talks HTTP.
func call[T any](ctx context.Context, c *Client, a auth, req request) model.Result[T] {
	if a.mode == authSession && !a.session.Valid() {
		return model.Failure[T](NotSignedInMessage)
	}

	httpReq, err := c.newRequest(ctx, a, req)
	if err != nil {
		c.logger.Error("build backend request", "method", req.method, "path", req.path, "error", err)
		return model.Failure[T](ConnectivityMessage)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("backend call failed", "method", req.method, "path", req.path, "error", err)
		return model.Failure[T](ConnectivityMessage)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.logger.Warn("read backend response", "method", req.method, "path", req.path, "error", err)
		return model.Failure[T](ConnectivityMessage)
	}

	env, payload, err := decodeBody(body, req.bare)
	if err != nil {
		c.logger.Warn("decode backend response",
			"method", req.method,
			"path", req.path,
			"status", resp.StatusCode,
			"error", err,
		)
		return model.Failure[T](ConnectivityMessage)
	}

	succeeded := resp.StatusCode >= 200 && resp.StatusCode < 300
	if env.IsSuccess != nil && !*env.IsSuccess {
		succeeded = false
	}
	if !succeeded {
		msg := env.Messages.first()
		if msg == "" {
			msg = req.failMessage
		}
		c.logger.Warn("backend rejected call",
			"method", req.method,
			"path", req.path,
			"status", resp.StatusCode,
			"message", msg,
		)
		return model.Failure[T](msg)
	}

	var data T
	if err := decodeData(payload, &data); err != nil {
		c.logger.Warn("decode backend data", "method", req.method, "path", req.path, "error", err)
		return model.Failure[T](ConnectivityMessage)
	}

	msg := env.Messages.first()
	if msg == "" {
		msg = req.okMessage
	}
	return model.Success(data, msg)
}

// decodeBody parses the response body. An empty body is an empty envelope.
// For bare endpoints the whole body is the payload unless the backend
// wrapped it in an envelope anyway.
func decodeBody(body []byte, bare bool) (envelope, json.RawMessage, error) {
	var env envelope
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return env, nil, nil
	}

	if bare {
		if isEnvelope(trimmed) {
			if err := json.Unmarshal(trimmed, &env); err != nil {
				return env, nil, err
			}
			return env, env.Data, nil
		}
		if !json.Valid(trimmed) {
			return env, nil, fmt.Errorf("response is not JSON")
		}
		return env, json.RawMessage(trimmed), nil
	}

	if err := json.Unmarshal(trimmed, &env); err != nil {
		return env, nil, err
	}
	return env, env.Data, nil
}

func isEnvelope(body []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return false
	}
	_, hasFlag := probe["isSuccess"]
	_, hasData := probe["data"]
	return hasFlag && hasData
}

// decodeData unmarshals payload into out. model.Empty ignores the payload;
// null or absent data leaves out at its zero value.
func decodeData[T any](payload json.RawMessage, out *T) error {
	if _, ignore := any(out).(*model.Empty); ignore {
		return nil
	}
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return nil
	}
	return json.Unmarshal(payload, out)
}

func (c *Client) newRequest(ctx context.Context, a auth, req request) (*http.Request, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	body := req.body
	contentType := req.contentType
	if req.jsonBody != nil {
		encoded, err := json.Marshal(req.jsonBody)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	switch a.mode {
	case authSession:
		httpReq.Header.Set("X-API-KEY", a.session.ClientKey)
		httpReq.Header.Set("X-USER-KEY", a.session.UserKey)
	case authService:
		httpReq.Header.Set("X-USER-KEY", a.service.UserKey)
		httpReq.Header.Set("Authorization", "Basic "+a.service.Credential)
	}

	return httpReq, nil
}

func clientIDOf(s *model.Session) string {
	if s == nil {
		return ""
	}
	return s.ClientID
}

// segment escapes a value for use as one path segment.
func segment(v string) string {
	return url.PathEscape(v)
}

// listValues encodes a ListQuery with the field projection used by the
// backend list endpoints.
func listValues(q model.ListQuery, fields string) url.Values {
	v := url.Values{}
	v.Set("query.ShowAll", fmt.Sprint(q.ShowAll))
	if q.PageNumber > 0 {
		v.Set("query.pageNumber", fmt.Sprint(q.PageNumber))
	}
	if q.PageSize > 0 {
		v.Set("query.pageSize", fmt.Sprint(q.PageSize))
	}
	if fields != "" {
		v.Set("query.Fields", fields)
	}
	return v
}
