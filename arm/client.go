// Package arm holds the JSON-over-HTTP plumbing shared by the Azure Resource Manager and
// agent service clients.
package arm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/awantoch/foundryflow/constants"
	"github.com/awantoch/foundryflow/utils"
	"github.com/google/uuid"
)

// Client sends JSON requests through an authenticated http.Client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient returns a Client rooted at baseURL. httpClient is expected to attach credentials.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	}
	return &Client{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

// BaseURL returns the root every relative path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL joins path onto the base URL and encodes query.
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Get performs a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, url string, out any) error {
	return c.Do(ctx, constants.HTTPMethodGET, url, nil, out)
}

// Post marshals body as JSON, POSTs it, and decodes the JSON response into out.
func (c *Client) Post(ctx context.Context, url string, body, out any) error {
	return c.Do(ctx, constants.HTTPMethodPOST, url, body, out)
}

// Put marshals body as JSON, PUTs it, and decodes the JSON response into out.
func (c *Client) Put(ctx context.Context, url string, body, out any) error {
	return c.Do(ctx, constants.HTTPMethodPUT, url, body, out)
}

// Delete performs a DELETE and discards the response body.
func (c *Client) Delete(ctx context.Context, url string) error {
	return c.Do(ctx, constants.HTTPMethodDELETE, url, nil, nil)
}

// Do sends the request and decodes a 2xx JSON response into out (when out is non-nil).
// Any other status is returned as *ResponseError.
func (c *Client) Do(ctx context.Context, method, url string, body, out any) error {
	resp, err := c.send(ctx, method, url, body, constants.ContentTypeJSON)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, url, err)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return utils.Errorf("failed to decode JSON from %s: %w", url, err)
	}
	return nil
}

// Stream sends the request and hands back the open response body of a 2xx reply.
// The caller must close it.
func (c *Client) Stream(ctx context.Context, method, url string, body any) (io.ReadCloser, error) {
	resp, err := c.send(ctx, method, url, body, constants.ContentTypeEventStream)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) send(ctx context.Context, method, url string, body any, accept string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode body: %w", method, url, err)
		}
		reader = bytes.NewReader(b)
	}

	reqID := uuid.NewString()
	ctx = utils.WithRequestID(ctx, reqID)

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set(constants.HeaderAccept, accept)
	req.Header.Set(constants.HeaderClientRequestID, reqID)
	if body != nil {
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}

	utils.DebugCtx(ctx, "sending request", "method", method, "url", redact(url))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, redact(url), err)
	}
	utils.DebugCtx(ctx, "received response", "method", method, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		utils.WarnCtx(ctx, "service unavailable", "method", method, "url", redact(url), "status", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(resp.Body)
		return nil, newResponseError(method, redact(url), resp.StatusCode, data)
	}
	return resp, nil
}

// redact drops the query string of URLs that carry signatures.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Query().Get(constants.CallbackSignatureParam) == "" {
		return raw
	}
	q := u.Query()
	q.Set(constants.CallbackSignatureParam, "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}
