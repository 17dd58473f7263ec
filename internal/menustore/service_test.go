package menustore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/dgallion1/menushare/internal/kv"
)

func newTestService(t *testing.T) (*Service, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, log), store
}

// recordingCounter captures Increment calls.
type recordingCounter struct {
	mu    sync.Mutex
	calls []string
}

func (c *recordingCounter) Increment(val ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, strings.Join(val, "/"))
}

func TestCreateRead_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	payloads := []string{
		`{}`,
		`{"name":"Café Ünal","currencyCode":"TRY","items":[{"title":"Çay","price":15,"section":"İçecekler"}]}`,
		`{"nested":{"a":[1,2,{"b":null}],"c":"日本語"},"emoji":"🍕"}`,
		`{"note":"<b>Fish & Chips</b>"}`,
	}
	for _, p := range payloads {
		created, err := svc.Create(ctx, []byte(p))
		if err != nil {
			t.Fatalf("create %s: %v", p, err)
		}
		if created.ID == "" || created.EditToken == "" {
			t.Fatalf("expected id and token, got %+v", created)
		}
		got, err := svc.Read(ctx, created.ID)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(got) != p {
			t.Errorf("round trip mismatch:\nwant %s\ngot  %s", p, got)
		}
	}
}

func TestCreate_InvalidInput(t *testing.T) {
	svc, store := newTestService(t)
	for _, body := range []string{"", "   ", "{", "null", "[]", `[{"a":1}]`, `"text"`, "42", "true"} {
		_, err := svc.Create(context.Background(), []byte(body))
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("body %q: expected ErrInvalidInput, got %v", body, err)
		}
	}
	if store.Len() != 0 {
		t.Errorf("expected no writes for invalid input, got %d keys", store.Len())
	}
}

func TestCreate_UniqueIDsAndTokens(t *testing.T) {
	svc, _ := newTestService(t)
	ids := map[string]bool{}
	tokens := map[string]bool{}
	for i := 0; i < 50; i++ {
		c, err := svc.Create(context.Background(), []byte(`{}`))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if ids[c.ID] || tokens[c.EditToken] {
			t.Fatalf("duplicate id or token: %+v", c)
		}
		ids[c.ID] = true
		tokens[c.EditToken] = true
		if len(c.ID) != 32 || strings.Contains(c.ID, "-") {
			t.Errorf("expected 32-char dashless id, got %q", c.ID)
		}
		if len(c.EditToken) != 24 || strings.ContainsAny(c.EditToken, "+/=") {
			t.Errorf("expected 24-char base64url token, got %q", c.EditToken)
		}
	}
}

func TestUpdate_ReplacesDataAndKeepsToken(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, []byte(`{"name":"old","items":[{"title":"A"}]}`))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i, body := range []string{`{"name":"new"}`, `{"name":"newer"}`, `{"name":"newest"}`} {
		if err := svc.Update(ctx, created.ID, created.EditToken, []byte(body)); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
		got, err := svc.Read(ctx, created.ID)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(got) != body {
			t.Errorf("expected %s after update, got %s", body, got)
		}
	}

	raw, _ := store.Get(ctx, "menu:"+created.ID)
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		t.Fatalf("decode stored record: %v", err)
	}
	if rec.EditToken != created.EditToken {
		t.Errorf("token rotated: %q -> %q", created.EditToken, rec.EditToken)
	}
}

func TestUpdate_Unauthorized(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, []byte(`{"name":"a"}`))
	b, _ := svc.Create(ctx, []byte(`{"name":"b"}`))

	cases := map[string]string{
		"empty":          "",
		"prefix":         a.EditToken[:len(a.EditToken)-1],
		"extended":       a.EditToken + "x",
		"other document": b.EditToken,
		"case changed":   strings.ToUpper(a.EditToken),
	}
	for name, tok := range cases {
		if tok == a.EditToken {
			continue
		}
		t.Run(name, func(t *testing.T) {
			err := svc.Update(ctx, a.ID, tok, []byte(`{"name":"hacked"}`))
			if !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}

	got, _ := svc.Read(ctx, a.ID)
	if string(got) != `{"name":"a"}` {
		t.Errorf("unauthorized update changed data: %s", got)
	}
}

func TestUpdate_CheckOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	c, _ := svc.Create(ctx, []byte(`{}`))

	// Bad token wins over bad body.
	if err := svc.Update(ctx, c.ID, "wrong", []byte("{")); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	// Missing document wins over everything.
	if err := svc.Update(ctx, "nope", "wrong", []byte("{")); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	// Right token, bad body.
	if err := svc.Update(ctx, c.ID, c.EditToken, []byte("[1]")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReadUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for _, id := range []string{"", "missing", "0000"} {
		if _, err := svc.Read(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("read %q: expected ErrNotFound, got %v", id, err)
		}
		if err := svc.Update(ctx, id, "tok", []byte(`{}`)); !errors.Is(err, ErrNotFound) {
			t.Errorf("update %q: expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestReadUpdate_LongIDOnFileStore(t *testing.T) {
	store, err := kv.NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	svc := NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()
	id := strings.Repeat("a", 200)
	if _, err := svc.Read(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("read: expected ErrNotFound, got %v", err)
	}
	if err := svc.Update(ctx, id, "tok", []byte(`{}`)); !errors.Is(err, ErrNotFound) {
		t.Errorf("update: expected ErrNotFound, got %v", err)
	}
}

func TestRead_CorruptRecordIsNotFound(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	for id, raw := range map[string]string{
		"garbage": "not json",
		"null":    "null",
		"array":   `[1,2]`,
		"badtok":  `{"editToken":5,"data":{}}`,
	} {
		_ = store.Put(ctx, "menu:"+id, []byte(raw))
		if _, err := svc.Read(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: expected ErrNotFound, got %v", id, err)
		}
		if err := svc.Update(ctx, id, "x", []byte(`{}`)); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: expected ErrNotFound on update, got %v", id, err)
		}
	}
}

func TestRead_MissingDataIsEmptyObject(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	_ = store.Put(ctx, "menu:bare", []byte(`{"editToken":"t"}`))
	_ = store.Put(ctx, "menu:nulldata", []byte(`{"editToken":"t","data":null}`))
	for _, id := range []string{"bare", "nulldata"} {
		got, err := svc.Read(ctx, id)
		if err != nil {
			t.Fatalf("%s: %v", id, err)
		}
		if string(got) != "{}" {
			t.Errorf("%s: expected {}, got %s", id, got)
		}
	}
}

func TestUpdate_LastWriteWins(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	c, _ := svc.Create(ctx, []byte(`{"v":0}`))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.Update(ctx, c.ID, c.EditToken, []byte(`{"writer":true}`)); err != nil {
				t.Errorf("concurrent update: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := svc.Read(ctx, c.ID)
	if string(got) != `{"writer":true}` {
		t.Errorf("expected one of the full payloads, got %s", got)
	}
	// The token survives any number of writes.
	if err := svc.Update(ctx, c.ID, c.EditToken, []byte(`{"v":1}`)); err != nil {
		t.Errorf("token stopped working: %v", err)
	}
}

type failingStore struct{ kv.Store }

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("backend down")
}

func (failingStore) Put(context.Context, string, []byte) error {
	return errors.New("backend down")
}

func TestBackendErrorsAreNotSentinels(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(failingStore{}, log)
	ctx := context.Background()

	_, err := svc.Create(ctx, []byte(`{}`))
	if err == nil || errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected backend error from create, got %v", err)
	}
	_, err = svc.Read(ctx, "x")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected backend error from read, got %v", err)
	}
}

func TestCounterRecordsOutcomes(t *testing.T) {
	counter := &recordingCounter{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(kv.NewMemory(), log,
		WithCounter(counter),
		WithIDSource(func() string { return "fixed" }, func() (string, error) { return "tok", nil }),
	)
	ctx := context.Background()

	c, _ := svc.Create(ctx, []byte(`{}`))
	if c.ID != "fixed" || c.EditToken != "tok" {
		t.Fatalf("id source not used: %+v", c)
	}
	_, _ = svc.Read(ctx, "fixed")
	_ = svc.Update(ctx, "fixed", "bad", []byte(`{}`))
	_, _ = svc.Create(ctx, []byte(`[]`))
	_, _ = svc.Read(ctx, "missing")

	want := []string{"create/ok", "read/ok", "update/unauthorized", "create/invalid_input", "read/not_found"}
	if strings.Join(counter.calls, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, counter.calls)
	}
}

func TestFingerprint(t *testing.T) {
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if got := Fingerprint([]byte("hello world")); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
