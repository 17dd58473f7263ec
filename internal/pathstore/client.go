// Package pathstore is a kv.Store backed by the pathstore HTTP API.
package pathstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dgallion1/menushare/internal/kv"
)

// Client communicates with the pathstore HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	prefix     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, prefix string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		prefix:  strings.Trim(prefix, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NodeRequest is the body for PUT /kv/{path}.
type NodeRequest struct {
	Value  json.RawMessage `json:"value"`
	Source string          `json:"source,omitempty"`
}

// NodeResponse is the response from GET /kv/{path}.
type NodeResponse struct {
	Key   string          `json:"key_path"`
	Value json.RawMessage `json:"value"`
}

// nodePath maps a store key to a pathstore path under the configured prefix.
func (c *Client) nodePath(key string) string {
	p := url.PathEscape(key)
	if c.prefix == "" {
		return p
	}
	return c.prefix + "/" + p
}

// Put stores value at key. Values that are valid JSON are stored as-is,
// anything else is stored as a JSON string.
func (c *Client) Put(ctx context.Context, key string, value []byte) error {
	v := json.RawMessage(value)
	if !json.Valid(value) {
		s, err := json.Marshal(string(value))
		if err != nil {
			return fmt.Errorf("marshal value: %w", err)
		}
		v = s
	}
	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(NodeRequest{Value: v, Source: "menushare"}); err != nil {
		return fmt.Errorf("marshal node: %w", err)
	}
	path := c.nodePath(key)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/kv/"+path, &body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("put node: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("put node %s: status %d: %s", path, resp.StatusCode, string(respBody))
	}
	return nil
}

// Get retrieves the value stored at key. A JSON string value is returned
// unquoted; any other JSON value is returned verbatim.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	path := c.nodePath(key)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/kv/"+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("get node: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, kv.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("get node %s: status %d: %s", path, resp.StatusCode, string(respBody))
	}

	var node NodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&node); err != nil {
		return nil, fmt.Errorf("decode node: %w", err)
	}
	if len(node.Value) == 0 || string(node.Value) == "null" {
		return nil, kv.ErrNotFound
	}
	var s string
	if err := json.Unmarshal(node.Value, &s); err == nil {
		return []byte(s), nil
	}
	return node.Value, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

var _ kv.Store = (*Client)(nil)
