package metric

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCounter_ExposedByHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCounterWithRegistry(reg, "menushare_test_total", "test counter", "op", "result")
	c.Increment("create", "ok")
	c.Increment("create", "ok")
	c.Increment("update", "unauthorized")

	rec := httptest.NewRecorder()
	HandlerForRegistry(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, want := range []string{
		`menushare_test_total{op="create",result="ok"} 2`,
		`menushare_test_total{op="update",result="unauthorized"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("expected exposition to contain %q, got:\n%s", want, body)
		}
	}
}

func TestNop(t *testing.T) {
	var c IncrementalCounter = Nop{}
	c.Increment("anything")
}
