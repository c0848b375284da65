package erecht24

import (
	"context"
	"fmt"
	"net/http"

	"github.com/complyo-io/complyo-engine/pkg/fixjob/api"
	"github.com/complyo-io/complyo-engine/pkg/internal/httpclient"
)

// Client fetches generated legal texts from the eRecht24-backed endpoint.
// Requests are bearer-token authenticated; responses carry the finished
// HTML document.
type Client interface {
	Imprint(ctx context.Context, language string) (string, error)
	PrivacyPolicy(ctx context.Context, language string) (string, error)
}

type client struct {
	baseURL string
	token   string
}

func NewClient(baseURL, token string) Client {
	return &client{baseURL: baseURL, token: token}
}

func (c *client) Imprint(ctx context.Context, language string) (string, error) {
	return c.fetch(ctx, "imprint", language)
}

func (c *client) PrivacyPolicy(ctx context.Context, language string) (string, error) {
	return c.fetch(ctx, "privacy-policy", language)
}

func (c *client) fetch(ctx context.Context, kind, language string) (string, error) {
	if language == "" {
		language = "de"
	}
	url := fmt.Sprintf("%s/api/v1/erecht24/%s?language=%s", c.baseURL, kind, language)

	headers := map[string]string{}
	if c.token != "" {
		headers["Authorization"] = "Bearer " + c.token
	}

	var resp api.LegalTextResponse
	if _, err := httpclient.DoRequest(ctx, http.MethodGet, url, headers, nil, &resp); err != nil {
		return "", fmt.Errorf("fetch %s: %w", kind, err)
	}
	return resp.HTML, nil
}
