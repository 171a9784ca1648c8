package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"explorerhub/utils/errors"
)

const maxBackendBody = 10 << 20

// Backend forwards requests to the ExplorerHub API.
type Backend interface {
	Do(ctx context.Context, req BackendRequest) (*BackendResponse, error)
}

type BackendRequest struct {
	Method string
	Path   string
	Query  url.Values
	// Token is sent as a bearer token. A value already prefixed with
	// "Bearer " is sent as is.
	Token string
	// Body is JSON encoded unless it is already json.RawMessage or []byte.
	Body any
}

// BackendResponse is a backend reply, successful or not. Body is always
// valid JSON or empty.
type BackendResponse struct {
	Status int
	Body   json.RawMessage
}

func (r *BackendResponse) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Decode unmarshals the body into v.
func (r *BackendResponse) Decode(v any) error {
	if len(r.Body) == 0 {
		return errors.NewAPIError("BACKEND_EMPTY_BODY", "Internal server error", http.StatusInternalServerError)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Wrap(err, "BACKEND_DECODE_ERROR", "Internal server error", http.StatusInternalServerError)
	}
	return nil
}

// UpstreamError carries a non-2xx backend response so it can be relayed
// to the client with the same body and status.
type UpstreamError struct {
	Response *BackendResponse
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("backend responded with status %d", e.Response.Status)
}

// Upstream returns an UpstreamError when resp is not a 2xx response.
func Upstream(resp *BackendResponse) error {
	if resp.OK() {
		return nil
	}
	return &UpstreamError{Response: resp}
}

type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewBackendClient(baseURL string, timeout time.Duration) *BackendClient {
	return &BackendClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *BackendClient) Do(ctx context.Context, req BackendRequest) (*BackendResponse, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, errors.Wrap(err, "INVALID_INPUT", "Invalid request data", http.StatusBadRequest)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, errors.Wrap(err, "BACKEND_REQUEST_ERROR", "Internal server error", http.StatusInternalServerError)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if auth := bearer(req.Token); auth != "" {
		httpReq.Header.Set("Authorization", auth)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Printf("backend_error method=%s path=%s error=%q", req.Method, req.Path, err)
		return nil, errors.Wrap(err, "BACKEND_UNAVAILABLE", "Internal server error", http.StatusInternalServerError)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBackendBody))
	if err != nil {
		return nil, errors.Wrap(err, "BACKEND_READ_ERROR", "Internal server error", http.StatusInternalServerError)
	}
	log.Printf("backend method=%s path=%s status=%d latency=%s", req.Method, req.Path, resp.StatusCode, time.Since(start))

	out := &BackendResponse{Status: resp.StatusCode}
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0:
	case json.Valid(raw):
		out.Body = raw
	case out.OK():
		return nil, errors.NewAPIError("BACKEND_DECODE_ERROR", "Internal server error", http.StatusInternalServerError,
			fmt.Sprintf("non-JSON response from %s", req.Path))
	default:
		out.Body, _ = json.Marshal(map[string]string{"detail": string(raw)})
	}
	return out, nil
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case []byte:
		return bytes.NewReader(b), nil
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(raw), nil
	}
}

func bearer(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(token, "Bearer ") {
		return token
	}
	return "Bearer " + token
}
