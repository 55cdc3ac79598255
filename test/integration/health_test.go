package integration

import (
	"net/http"
	"strings"
	"testing"

	"github.com/rhuss/aibackend/pkg/api"
)

func TestHealthEndpoint(t *testing.T) {
	resp := getURL(t, testEnv.BaseURL()+"/healthz")
	expectStatus(t, resp, http.StatusOK)

	if body := readBody(t, resp); body != "ok\n" {
		t.Errorf("body = %q, want %q", body, "ok\n")
	}
}

func TestRootEndpoint(t *testing.T) {
	resp := getURL(t, testEnv.BaseURL()+"/")
	expectStatus(t, resp, http.StatusOK)

	var info api.Info
	decodeJSON(t, resp, &info)
	if info.Message != "API backend is running!" || info.Docs != "/docs" {
		t.Errorf("info = %+v", info)
	}
}

func TestDocsEndpoint(t *testing.T) {
	resp := getURL(t, testEnv.BaseURL()+"/docs")
	expectStatus(t, resp, http.StatusOK)

	var docs api.Docs
	decodeJSON(t, resp, &docs)
	if docs.Title != "AI-Powered SvelteKit Backend" || docs.Version != "1.0.0" {
		t.Errorf("title/version = %q/%q", docs.Title, docs.Version)
	}
	if len(docs.Routes) == 0 {
		t.Error("docs lists no routes")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	readBody(t, getURL(t, testEnv.BaseURL()+"/api/items"))

	resp := getURL(t, testEnv.BaseURL()+"/metrics")
	expectStatus(t, resp, http.StatusOK)

	body := readBody(t, resp)
	for _, want := range []string{
		"aibackend_requests_total",
		"aibackend_request_duration_seconds",
		"aibackend_items_stored",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, testEnv.BaseURL()+"/api/items", nil)
	req.Header.Set("X-Request-ID", "req-integration-1")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Request-ID"); got != "req-integration-1" {
		t.Errorf("X-Request-ID = %q, want propagated value", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	req, _ := http.NewRequest(http.MethodOptions, testEnv.BaseURL()+"/api/items", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight failed: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != testOrigin {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, testOrigin)
	}
	if got := resp.Header.Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Access-Control-Allow-Credentials = %q, want true", got)
	}
}
