package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dgallion1/menushare/internal/api"
	"github.com/dgallion1/menushare/internal/config"
	"github.com/dgallion1/menushare/internal/kv"
	"github.com/dgallion1/menushare/internal/menustore"
)

func newClient(t *testing.T) (*Client, *httptest.Server) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := menustore.NewService(kv.NewMemory(), log)
	ts := httptest.NewServer(api.NewServer(svc, log, config.Config{MaxBodyBytes: 1 << 20, MaxUploadBytes: 1 << 20}))
	t.Cleanup(ts.Close)
	return New(ts.URL + "/"), ts
}

func TestClient_RoundTrip(t *testing.T) {
	c, ts := newClient(t)
	ctx := context.Background()

	created, err := c.Create(ctx, []byte(`{"name":"Luna"}`))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	data, err := c.Read(ctx, created.ID)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != `{"name":"Luna"}` {
		t.Errorf("Read = %s", data)
	}

	if err := c.Update(ctx, created.ID, created.EditToken, []byte(`{"name":"Sol"}`)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	data, _ = c.Read(ctx, created.ID)
	if string(data) != `{"name":"Sol"}` {
		t.Errorf("Read after update = %s", data)
	}

	if got, want := c.PageURL(created.ID), ts.URL+"/m/"+created.ID; got != want {
		t.Errorf("PageURL = %q, want %q", got, want)
	}
}

func TestClient_Errors(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()

	_, err := c.Read(ctx, "missing")
	if !errors.Is(err, menustore.ErrNotFound) {
		t.Errorf("Read missing: %v", err)
	}

	created, _ := c.Create(ctx, []byte(`{}`))
	err = c.Update(ctx, created.ID, "wrong", []byte(`{}`))
	if !errors.Is(err, menustore.ErrUnauthorized) {
		t.Errorf("Update with wrong token: %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Unauthorized" {
		t.Errorf("expected APIError with message, got %v", err)
	}

	_, err = c.Create(ctx, []byte(`not json`))
	if !errors.Is(err, menustore.ErrInvalidInput) {
		t.Errorf("Create invalid: %v", err)
	}
}

func TestClient_Import(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()

	raw, err := c.Import(ctx, "menu.txt", strings.NewReader("DRINKS\nTea 3\n"), ImportOptions{Currency: "EUR", DryRun: true})
	if err != nil {
		t.Fatalf("Import dry run: %v", err)
	}
	var payload struct {
		Name         string `json:"name"`
		CurrencyCode string `json:"currencyCode"`
		Items        []struct {
			Title   string   `json:"title"`
			Price   *float64 `json:"price"`
			Section string   `json:"section"`
		} `json:"items"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Name != "menu" || payload.CurrencyCode != "EUR" || len(payload.Items) != 1 {
		t.Fatalf("payload = %s", raw)
	}
	if it := payload.Items[0]; it.Title != "Tea" || it.Price == nil || *it.Price != 3 || it.Section != "DRINKS" {
		t.Errorf("item = %+v", it)
	}

	raw, err = c.Import(ctx, "menu.txt", strings.NewReader("Tea 3\n"), ImportOptions{Name: "Kiosk"})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	var created struct {
		ID        string `json:"id"`
		EditToken string `json:"editToken"`
	}
	json.Unmarshal(raw, &created)
	data, err := c.Read(ctx, created.ID)
	if err != nil {
		t.Fatalf("Read imported: %v", err)
	}
	if !strings.Contains(string(data), `"name":"Kiosk"`) {
		t.Errorf("imported data = %s", data)
	}

	if _, err := c.Import(ctx, "menu.xls", strings.NewReader("x"), ImportOptions{}); !errors.Is(err, menustore.ErrInvalidInput) {
		t.Errorf("unsupported import: %v", err)
	}
}
