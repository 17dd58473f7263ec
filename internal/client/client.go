// Package client talks to the menushare HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dgallion1/menushare/internal/menustore"
)

// Client communicates with a menushare server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// APIError is a non-2xx response. It unwraps to the matching menustore
// error so callers can use errors.Is on either side of the wire.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("menushare: status %d", e.Status)
	}
	return fmt.Sprintf("menushare: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return menustore.ErrInvalidInput
	case http.StatusUnauthorized:
		return menustore.ErrUnauthorized
	case http.StatusNotFound:
		return menustore.ErrNotFound
	}
	return nil
}

// ImportOptions are the optional form fields of an import.
type ImportOptions struct {
	Name     string
	Currency string
	DryRun   bool
}

// Create stores a new menu and returns its id and edit token.
func (c *Client) Create(ctx context.Context, payload []byte) (menustore.Created, error) {
	var out menustore.Created
	err := c.do(ctx, http.MethodPost, "/api/menus", "application/json", bytes.NewReader(payload), nil, &out)
	return out, err
}

// Read returns a menu's data.
func (c *Client) Read(ctx context.Context, id string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.do(ctx, http.MethodGet, "/api/menus/"+url.PathEscape(id), "", nil, nil, &out)
	return out, err
}

// Update replaces a menu's data.
func (c *Client) Update(ctx context.Context, id, token string, payload []byte) error {
	h := http.Header{}
	h.Set("X-Edit-Token", token)
	return c.do(ctx, http.MethodPut, "/api/menus/"+url.PathEscape(id), "application/json", bytes.NewReader(payload), h, nil)
}

// Import uploads a document. The result is the menu payload on a dry run,
// and {id, editToken, items} otherwise.
func (c *Client) Import(ctx context.Context, filename string, r io.Reader, opts ImportOptions) (json.RawMessage, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fields := map[string]string{"name": opts.Name, "currency": opts.Currency}
	if opts.DryRun {
		fields["dry_run"] = "true"
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out json.RawMessage
	err = c.do(ctx, http.MethodPost, "/api/menus/import", mw.FormDataContentType(), &body, nil, &out)
	return out, err
}

// PageURL is the published page of a menu.
func (c *Client) PageURL(id string) string {
	return c.baseURL + "/m/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		json.Unmarshal(raw, &e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
