package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type EchoError struct {
	Message string `json:"message"`
}

// Context carries the caller identity attached to outgoing requests plus
// the request context controlling cancellation of in-flight calls.
type Context struct {
	Ctx         context.Context
	UserID      string
	BearerToken string
}

// Request returns the context governing the outgoing call.
func (ctx *Context) Request() context.Context {
	if ctx == nil || ctx.Ctx == nil {
		return context.Background()
	}
	return ctx.Ctx
}

func (ctx *Context) ToHeaders() map[string]string {
	headers := map[string]string{}
	if ctx == nil {
		return headers
	}
	if ctx.UserID != "" {
		headers["X-Complyo-UserId"] = ctx.UserID
	}
	if ctx.BearerToken != "" {
		headers["Authorization"] = "Bearer " + ctx.BearerToken
	}
	return headers
}

// ResponseError keeps the raw body around so callers can pull structured
// details (quota numbers) out of error responses.
type ResponseError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *ResponseError) Error() string {
	return e.Message
}

// DoRequest sends a JSON request and decodes the JSON response into v when
// v is non-nil. The status code is returned even on error so callers can
// branch on it (quota handling needs the 402).
func DoRequest(ctx context.Context, method, url string, headers map[string]string, payload []byte, v any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Add(k, v)
	}
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxConnsPerHost = 100
	t.MaxIdleConnsPerHost = 100
	client := http.Client{
		Timeout:   15 * time.Second,
		Transport: t,
	}
	res, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, fmt.Errorf("read body: %w", err)
	}

	if res.StatusCode >= http.StatusBadRequest {
		var echoerr EchoError
		if jserr := json.Unmarshal(body, &echoerr); jserr == nil && echoerr.Message != "" {
			return res.StatusCode, &ResponseError{StatusCode: res.StatusCode, Message: echoerr.Message, Body: body}
		}
		return res.StatusCode, &ResponseError{
			StatusCode: res.StatusCode,
			Message:    fmt.Sprintf("http status: %d", res.StatusCode),
			Body:       body,
		}
	}
	if v == nil {
		return res.StatusCode, nil
	}
	return res.StatusCode, json.Unmarshal(body, v)
}
