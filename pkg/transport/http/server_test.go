package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	gohttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rhuss/aibackend/pkg/api"
	"github.com/rhuss/aibackend/pkg/storage/memory"
)

// slowAssistant answers the status check after a delay.
type slowAssistant struct {
	stubAssistant
	delay time.Duration
}

func (s *slowAssistant) Status(ctx context.Context) *api.StatusResponse {
	select {
	case <-time.After(s.delay):
		return &api.StatusResponse{Status: api.StatusAvailable, Model: "m", Message: "ok"}
	case <-ctx.Done():
		return &api.StatusResponse{Status: api.StatusUnavailable, Error: ctx.Err().Error(), Message: "cancelled"}
	}
}

// slowCoder spends delay on each of the two completions a code
// generation makes, giving up when its context ends.
type slowCoder struct {
	stubAssistant
	delay time.Duration
}

func (s *slowCoder) GenerateCode(ctx context.Context, req *api.CodeGenerationRequest) (*api.CodeGenerationResponse, error) {
	for range 2 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, api.NewServerError("Code generation failed: " + ctx.Err().Error())
		}
	}
	return &api.CodeGenerationResponse{Description: *req.Description, Language: *req.Language}, nil
}

func startServer(t *testing.T, srv *Server) (string, context.CancelFunc, <-chan error) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ServeOn(ctx, ln) }()
	time.Sleep(50 * time.Millisecond)

	return "http://" + ln.Addr().String(), cancel, done
}

func TestServerStartsAndAcceptsRequests(t *testing.T) {
	srv := NewServer(memory.New(memory.SeedItems()...), &stubAssistant{})
	base, cancel, done := startServer(t, srv)

	resp, err := gohttp.Get(base + "/api/items/1")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != gohttp.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, gohttp.StatusOK)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("ServeOn returned %v", err)
	}
}

func TestServerGracefulShutdown(t *testing.T) {
	srv := NewServer(memory.New(), &slowAssistant{delay: 200 * time.Millisecond},
		WithShutdownTimeout(5*time.Second),
	)
	base, cancel, done := startServer(t, srv)

	responseCh := make(chan int, 1)
	go func() {
		resp, err := gohttp.Get(base + "/api/ai/demo-status")
		if err != nil {
			responseCh <- 0
			return
		}
		defer resp.Body.Close()
		responseCh <- resp.StatusCode
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	if status := <-responseCh; status != gohttp.StatusOK {
		t.Errorf("slow request status = %d, want %d", status, gohttp.StatusOK)
	}
	if err := <-done; err != nil {
		t.Errorf("ServeOn returned %v", err)
	}
}

func TestServerHealthAndMetrics(t *testing.T) {
	srv := NewServer(memory.New(memory.SeedItems()...), &stubAssistant{})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := gohttp.Get(ts.URL + HealthPath)
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != gohttp.StatusOK || string(body) != "ok\n" {
		t.Errorf("healthz = %d %q, want 200 \"ok\\n\"", resp.StatusCode, body)
	}

	// Generate a request so the route-labelled counter exists.
	if r, err := gohttp.Get(ts.URL + "/api/items"); err == nil {
		r.Body.Close()
	}

	resp, err = gohttp.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != gohttp.StatusOK {
		t.Fatalf("metrics status = %d", resp.StatusCode)
	}
	for _, want := range []string{"aibackend_requests_total", `route="GET /api/items"`, "aibackend_items_stored"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestServerMetricsDisabled(t *testing.T) {
	srv := NewServer(memory.New(), &stubAssistant{}, WithMetrics(false, ""))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := gohttp.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != gohttp.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, gohttp.StatusNotFound)
	}
}

func TestServerCORS(t *testing.T) {
	srv := NewServer(memory.New(), &stubAssistant{}, WithCORSOrigins("http://localhost:5173"))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	req, _ := gohttp.NewRequest(gohttp.MethodGet, ts.URL+"/api/items", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := gohttp.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestServerFunctionalOptions(t *testing.T) {
	srv := NewServer(memory.New(), &stubAssistant{},
		WithAddr(":9999"),
		WithMaxBodySize(1024),
		WithShutdownTimeout(10*time.Second),
		WithReadTimeout(5*time.Second),
		WithWriteTimeout(60*time.Second),
		WithCORSOrigins("http://a", "http://b"),
		WithMetrics(true, "/internal/metrics"),
	)

	if srv.config.Addr != ":9999" {
		t.Errorf("addr = %q, want %q", srv.config.Addr, ":9999")
	}
	if srv.config.MaxBodySize != 1024 {
		t.Errorf("max body size = %d, want %d", srv.config.MaxBodySize, 1024)
	}
	if srv.config.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown timeout = %v, want %v", srv.config.ShutdownTimeout, 10*time.Second)
	}
	if srv.httpServer.ReadTimeout != 5*time.Second || srv.httpServer.WriteTimeout != 60*time.Second {
		t.Errorf("timeouts = %v/%v", srv.httpServer.ReadTimeout, srv.httpServer.WriteTimeout)
	}
	if len(srv.config.CORSOrigins) != 2 {
		t.Errorf("cors origins = %v", srv.config.CORSOrigins)
	}
	if srv.config.MetricsPath != "/internal/metrics" {
		t.Errorf("metrics path = %q", srv.config.MetricsPath)
	}
	if srv.adapter.config.MaxBodySize != 1024 {
		t.Errorf("adapter max body size = %d", srv.adapter.config.MaxBodySize)
	}
	if srv.adapter.config.OperationTimeout != 48*time.Second {
		t.Errorf("operation timeout = %v, want 48s derived from the write timeout", srv.adapter.config.OperationTimeout)
	}

	explicit := NewServer(memory.New(), &stubAssistant{}, WithWriteTimeout(time.Minute), WithOperationTimeout(10*time.Second))
	if explicit.adapter.config.OperationTimeout != 10*time.Second {
		t.Errorf("operation timeout = %v, want 10s", explicit.adapter.config.OperationTimeout)
	}
}

func TestServerSlowCodeGenerationFailsBeforeWriteDeadline(t *testing.T) {
	// Each completion fits the write timeout but the pair does not.
	srv := NewServer(memory.New(), &slowCoder{delay: 700 * time.Millisecond},
		WithWriteTimeout(time.Second),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	base, cancel, done := startServer(t, srv)
	defer func() {
		cancel()
		<-done
	}()

	resp, err := gohttp.Post(base+"/api/ai/generate-code", "application/json", strings.NewReader(`{"description":"x"}`))
	if err != nil {
		t.Fatalf("POST error: %v (response lost to the write deadline)", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != gohttp.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", resp.StatusCode, gohttp.StatusInternalServerError)
	}
	var errResp api.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Error.Message != "Code generation failed: context deadline exceeded" {
		t.Errorf("message = %q", errResp.Error.Message)
	}
}

func TestServerCodeGenerationWithinBudget(t *testing.T) {
	srv := NewServer(memory.New(), &slowCoder{delay: 50 * time.Millisecond},
		WithWriteTimeout(time.Second),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	base, cancel, done := startServer(t, srv)
	defer func() {
		cancel()
		<-done
	}()

	resp, err := gohttp.Post(base+"/api/ai/generate-code", "application/json", strings.NewReader(`{"description":"x"}`))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != gohttp.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, gohttp.StatusOK)
	}
}
