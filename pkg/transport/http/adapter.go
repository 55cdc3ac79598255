package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/rhuss/aibackend/pkg/api"
	"github.com/rhuss/aibackend/pkg/debug"
	"github.com/rhuss/aibackend/pkg/observability"
	"github.com/rhuss/aibackend/pkg/storage"
	"github.com/rhuss/aibackend/pkg/transport"
)

// Service metadata reported by the root and docs endpoints.
const (
	ServiceTitle   = "AI-Powered SvelteKit Backend"
	ServiceVersion = "1.0.0"
	RootMessage    = "API backend is running!"
	DocsPath       = "/docs"
)

// Adapter serves the item and AI APIs over HTTP.
// It routes requests to the appropriate handler and serializes responses.
type Adapter struct {
	items     transport.ItemStore
	assistant transport.Assistant
	mux       *http.ServeMux
	routes    []route
	handler   http.Handler
	config    Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	MaxBodySize int64

	// Metrics records per-route Prometheus metrics when true.
	Metrics bool

	// OperationTimeout bounds each AI operation, all of its completion
	// calls included. Zero leaves only the request context.
	OperationTimeout time.Duration
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		MaxBodySize: 1 << 20, // 1 MB
		Metrics:     true,
	}
}

// route is one entry of the routing table. The same table registers the
// mux patterns and feeds the docs listing.
type route struct {
	method      string
	path        string
	description string
	handler     http.HandlerFunc
}

func (r route) pattern() string {
	if r.path == "/" {
		return r.method + " /{$}"
	}
	return r.method + " " + r.path
}

// NewAdapter creates an HTTP adapter over the given item store and assistant.
// Middleware wraps the routed handler in the given order.
func NewAdapter(items transport.ItemStore, assistant transport.Assistant, cfg Config, middlewares ...transport.Middleware) *Adapter {
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultConfig().MaxBodySize
	}

	a := &Adapter{
		items:     items,
		assistant: assistant,
		mux:       http.NewServeMux(),
		config:    cfg,
	}

	a.routes = []route{
		{http.MethodGet, "/", "Service liveness and docs location", a.handleRoot},
		{http.MethodGet, DocsPath, "List of available routes", a.handleDocs},
		{http.MethodGet, "/api/items", "List all items in insertion order", a.handleListItems},
		{http.MethodGet, "/api/items/{item_id}", "Get an item by id", a.handleGetItem},
		{http.MethodPost, "/api/items", "Create an item", a.handleCreateItem},
		{http.MethodPut, "/api/items/{item_id}", "Replace an item", a.handleUpdateItem},
		{http.MethodDelete, "/api/items/{item_id}", "Delete an item", a.handleDeleteItem},
		{http.MethodPost, "/api/ai/analyze-text", "Analyze text sentiment, summary, or keywords", a.handleAnalyzeText},
		{http.MethodPost, "/api/ai/generate-code", "Generate code with an explanation", a.handleGenerateCode},
		{http.MethodGet, "/api/ai/demo-status", "Check whether AI services are reachable", a.handleDemoStatus},
	}
	for _, rt := range a.routes {
		a.mux.HandleFunc(rt.pattern(), rt.handler)
	}

	// Metrics sit directly on the mux so the matched pattern is visible.
	var h http.Handler = a.mux
	if cfg.Metrics {
		h = observability.MetricsMiddleware(h)
	}
	if len(middlewares) > 0 {
		h = transport.Chain(middlewares...)(h)
	}
	a.handler = h

	return a
}

// Handler returns the http.Handler for this adapter. Use this to integrate
// with an http.Server or test with httptest.
func (a *Adapter) Handler() http.Handler {
	return a.handler
}

// Routes returns the route listing served by the docs endpoint.
func (a *Adapter) Routes() []api.RouteInfo {
	out := make([]api.RouteInfo, 0, len(a.routes))
	for _, rt := range a.routes {
		out = append(out, api.RouteInfo{Method: rt.method, Path: rt.path, Description: rt.description})
	}
	return out
}

// handleRoot handles GET /.
func (a *Adapter) handleRoot(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, api.Info{Message: RootMessage, Docs: DocsPath})
}

// handleDocs handles GET /docs.
func (a *Adapter) handleDocs(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, api.Docs{
		Title:   ServiceTitle,
		Version: ServiceVersion,
		Routes:  a.Routes(),
	})
}

// handleListItems handles GET /api/items.
func (a *Adapter) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := a.items.ListItems(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []api.Item{}
	}
	transport.WriteJSON(w, http.StatusOK, items)
}

// handleGetItem handles GET /api/items/{item_id}.
func (a *Adapter) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(w, r)
	if !ok {
		return
	}

	item, err := a.items.GetItem(r.Context(), id)
	if err != nil {
		writeItemError(w, err, id)
		return
	}
	transport.WriteJSON(w, http.StatusOK, item)
}

// handleCreateItem handles POST /api/items.
func (a *Adapter) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var in api.ItemInput
	if !a.decodeJSON(w, r, &in) {
		return
	}
	if apiErr := api.ValidateItemInput(&in); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	item, err := a.items.CreateItem(r.Context(), &in)
	if err != nil {
		writeError(w, err)
		return
	}
	debug.Log("items", "item created", "id", item.ID)
	transport.WriteJSON(w, http.StatusOK, item)
}

// handleUpdateItem handles PUT /api/items/{item_id}.
func (a *Adapter) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(w, r)
	if !ok {
		return
	}

	var in api.ItemInput
	if !a.decodeJSON(w, r, &in) {
		return
	}
	if apiErr := api.ValidateItemInput(&in); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	item, err := a.items.UpdateItem(r.Context(), id, &in)
	if err != nil {
		writeItemError(w, err, id)
		return
	}
	debug.Log("items", "item updated", "id", id)
	transport.WriteJSON(w, http.StatusOK, item)
}

// handleDeleteItem handles DELETE /api/items/{item_id}.
func (a *Adapter) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(w, r)
	if !ok {
		return
	}

	item, err := a.items.DeleteItem(r.Context(), id)
	if err != nil {
		writeItemError(w, err, id)
		return
	}
	debug.Log("items", "item deleted", "id", id)
	transport.WriteJSON(w, http.StatusOK, api.DeleteResult{
		Message: fmt.Sprintf("Item %s deleted successfully", item.Name),
	})
}

// handleAnalyzeText handles POST /api/ai/analyze-text.
func (a *Adapter) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req api.TextAnalysisRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	req.ApplyDefaults()
	if apiErr := api.ValidateTextAnalysisRequest(&req); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	ctx, cancel := a.operationContext(r)
	defer cancel()

	resp, err := a.assistant.AnalyzeText(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, resp)
}

// handleGenerateCode handles POST /api/ai/generate-code.
func (a *Adapter) handleGenerateCode(w http.ResponseWriter, r *http.Request) {
	var req api.CodeGenerationRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	req.ApplyDefaults()
	if apiErr := api.ValidateCodeGenerationRequest(&req); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	ctx, cancel := a.operationContext(r)
	defer cancel()

	resp, err := a.assistant.GenerateCode(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, resp)
}

// handleDemoStatus handles GET /api/ai/demo-status. It always answers 200.
func (a *Adapter) handleDemoStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.operationContext(r)
	defer cancel()

	transport.WriteJSON(w, http.StatusOK, a.assistant.Status(ctx))
}

// operationContext derives the context for one AI operation. A timed out
// operation fails with its own error response instead of running past the
// server's write deadline.
func (a *Adapter) operationContext(r *http.Request) (context.Context, context.CancelFunc) {
	if a.config.OperationTimeout <= 0 {
		return r.Context(), func() {}
	}
	return context.WithTimeout(r.Context(), a.config.OperationTimeout)
}

// decodeJSON checks the Content-Type, limits the body size, and decodes the
// body into v. On failure it writes the error response and returns false.
func (a *Adapter) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError("content_type", "Content-Type must be application/json"),
				http.StatusUnsupportedMediaType,
			)
			return false
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError("body", fmt.Sprintf("request body too large (max %d bytes)", a.config.MaxBodySize)),
				http.StatusRequestEntityTooLarge,
			)
			return false
		}
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("body", "invalid JSON: "+err.Error()),
			http.StatusBadRequest,
		)
		return false
	}
	return true
}

// parseItemID reads the item_id path value. On failure it writes a 400
// response and returns false.
func parseItemID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.PathValue("item_id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		transport.WriteAPIError(w, api.NewInvalidRequestError("item_id", fmt.Sprintf("item_id must be an integer, got %q", raw)))
		return 0, false
	}
	return id, true
}

// writeItemError maps storage.ErrNotFound to a not_found response for id
// and everything else through writeError.
func writeItemError(w http.ResponseWriter, err error, id int) {
	if errors.Is(err, storage.ErrNotFound) {
		transport.WriteAPIError(w, api.ItemNotFound(id))
		return
	}
	writeError(w, err)
}

// writeError writes err as an APIError, wrapping plain errors as server errors.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		apiErr = api.NewServerError(err.Error())
	}
	transport.WriteAPIError(w, apiErr)
}
