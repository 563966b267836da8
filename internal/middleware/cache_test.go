package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/habit-tracker/internal/config"
)

func TestCacheKeyStable(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache"}
	a := CacheKey(cfg, "GET", "/api/habits/:id", "date=2026-09-01", "7")
	b := CacheKey(cfg, "GET", "/api/habits/:id", "date=2026-09-01", "7")
	if a != b {
		t.Errorf("same request produced different keys: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "cache:") {
		t.Errorf("key %s does not carry the prefix", a)
	}
}

func TestCacheKeyDistinguishes(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache"}
	base := CacheKey(cfg, "GET", "/api/habits/:id", "", "7")
	cases := map[string]string{
		"param":  CacheKey(cfg, "GET", "/api/habits/:id", "", "8"),
		"query":  CacheKey(cfg, "GET", "/api/habits/:id", "date=2026-09-01", "7"),
		"route":  CacheKey(cfg, "GET", "/api/habits", "", "7"),
		"method": CacheKey(cfg, "HEAD", "/api/habits/:id", "", "7"),
	}
	for name, key := range cases {
		if key == base {
			t.Errorf("%s variation did not change the key", name)
		}
	}
}

func newCtx(path string, names, values []string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(path)
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c
}

func TestCacheTags(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache"}

	// A habit-specific response is tagged by its id.
	tags := cacheTags(cfg, newCtx("/api/habits/:id", []string{"id"}, []string{"7"}))
	if len(tags) != 1 || tags[0] != "cache:tag:habit:7" {
		t.Errorf("habit route tags = %v, want [cache:tag:habit:7]", tags)
	}

	// The list and prefix routes fall under the catch-all tag.
	tags = cacheTags(cfg, newCtx("/api/habits", nil, nil))
	if len(tags) != 1 || tags[0] != "cache:tag:habits" {
		t.Errorf("list route tags = %v, want [cache:tag:habits]", tags)
	}
	tags = cacheTags(cfg, newCtx("/api/habits/by-title/:prefix", []string{"prefix"}, []string{"Rea"}))
	if len(tags) != 1 || tags[0] != "cache:tag:habits" {
		t.Errorf("prefix route tags = %v, want [cache:tag:habits]", tags)
	}
}

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	body := []byte(`{"id":7}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decode failed")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Errorf("header = %v", gotHdr)
	}
	if string(gotBody) != string(body) {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	if _, _, _, ok := decodePayload([]byte("short")); ok {
		t.Error("decodePayload accepted a truncated payload")
	}
}
