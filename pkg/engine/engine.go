package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rhuss/aibackend/pkg/api"
	"github.com/rhuss/aibackend/pkg/debug"
	"github.com/rhuss/aibackend/pkg/observability"
	"github.com/rhuss/aibackend/pkg/provider"
	"github.com/rhuss/aibackend/pkg/transport"
)

// Operation names used as metric labels.
const (
	opAnalyzeText  = "analyze_text"
	opGenerateCode = "generate_code"
	opStatus       = "status"
)

// Engine turns AI requests into provider completions. It implements
// transport.Assistant. Each operation issues its completions once, with no
// retry; the caller's context bounds every call.
type Engine struct {
	provider provider.Provider
	cfg      Config
}

// Ensure Engine implements transport.Assistant at compile time.
var _ transport.Assistant = (*Engine)(nil)

// New creates a new Engine. The provider must not be nil.
func New(p provider.Provider, cfg Config) (*Engine, error) {
	if p == nil {
		return nil, fmt.Errorf("engine: provider must not be nil")
	}
	cfg.Model = cfg.model()
	return &Engine{
		provider: p,
		cfg:      cfg,
	}, nil
}

// Model returns the model sent with every completion.
func (e *Engine) Model() string {
	return e.cfg.Model
}

// AnalyzeText runs a single completion for the requested analysis type.
// An unknown type yields an invalid_request error without contacting the
// provider. Provider failures become a server_error carrying the cause.
func (e *Engine) AnalyzeText(ctx context.Context, req *api.TextAnalysisRequest) (*api.TextAnalysisResponse, error) {
	kind := valueOr(req.AnalysisType, api.DefaultAnalysisType)
	text := valueOr(req.Text, "")

	prompt, ok := analysisPrompt(kind, text)
	if !ok {
		observability.AIOperationsTotal.WithLabelValues(opAnalyzeText, "invalid").Inc()
		return nil, api.NewInvalidRequestError("analysis_type", "Invalid analysis type")
	}

	debug.Log("engine", "analyze text", "analysis_type", kind, "text_len", len(text))

	resp, err := e.complete(ctx, []provider.ProviderMessage{
		{Role: provider.RoleSystem, Content: analysisSystemPrompt},
		{Role: provider.RoleUser, Content: prompt},
	}, analysisMaxTokens, floatPtr(analysisTemperature))
	if err != nil {
		observability.AIOperationsTotal.WithLabelValues(opAnalyzeText, "failed").Inc()
		return nil, api.NewServerError("AI analysis failed: " + api.ErrorMessage(err))
	}

	observability.AIOperationsTotal.WithLabelValues(opAnalyzeText, "ok").Inc()
	return &api.TextAnalysisResponse{
		OriginalText: text,
		AnalysisType: kind,
		Result:       strings.TrimSpace(resp.Content),
		Confidence:   Confidence,
	}, nil
}

// GenerateCode asks for code implementing the description, then asks for an
// explanation of exactly that code. The explanation call is only made when
// the code call succeeded, and a failure of either fails the operation.
func (e *Engine) GenerateCode(ctx context.Context, req *api.CodeGenerationRequest) (*api.CodeGenerationResponse, error) {
	lang := valueOr(req.Language, api.DefaultLanguage)
	description := valueOr(req.Description, "")

	debug.Log("engine", "generate code", "language", lang, "description_len", len(description))

	codeResp, err := e.complete(ctx, []provider.ProviderMessage{
		{Role: provider.RoleSystem, Content: fmt.Sprintf(codeSystemPromptFormat, lang)},
		{Role: provider.RoleUser, Content: fmt.Sprintf(codeUserPromptFormat, lang, description)},
	}, codeMaxTokens, floatPtr(codeTemperature))
	if err != nil {
		observability.AIOperationsTotal.WithLabelValues(opGenerateCode, "failed").Inc()
		return nil, api.NewServerError("Code generation failed: " + api.ErrorMessage(err))
	}
	code := strings.TrimSpace(codeResp.Content)

	explainResp, err := e.complete(ctx, []provider.ProviderMessage{
		{Role: provider.RoleSystem, Content: explainSystemPrompt},
		{Role: provider.RoleUser, Content: fmt.Sprintf(explainUserPromptFormat, lang, code)},
	}, explainMaxTokens, floatPtr(explainTemperature))
	if err != nil {
		observability.AIOperationsTotal.WithLabelValues(opGenerateCode, "failed").Inc()
		return nil, api.NewServerError("Code generation failed: " + api.ErrorMessage(err))
	}

	observability.AIOperationsTotal.WithLabelValues(opGenerateCode, "ok").Inc()
	return &api.CodeGenerationResponse{
		Description: description,
		Language:    lang,
		Code:        code,
		Explanation: strings.TrimSpace(explainResp.Content),
	}, nil
}

// Status sends a trivial prompt to the provider and reports whether it
// answered. Only the call's error decides the outcome; the reply text is
// ignored. It never returns an error.
func (e *Engine) Status(ctx context.Context) *api.StatusResponse {
	_, err := e.complete(ctx, []provider.ProviderMessage{
		{Role: provider.RoleUser, Content: statusPrompt},
	}, statusMaxTokens, nil)
	if err != nil {
		observability.AIOperationsTotal.WithLabelValues(opStatus, string(api.StatusUnavailable)).Inc()
		return &api.StatusResponse{
			Status:  api.StatusUnavailable,
			Error:   api.ErrorMessage(err),
			Message: "AI services are currently unavailable",
		}
	}

	observability.AIOperationsTotal.WithLabelValues(opStatus, string(api.StatusAvailable)).Inc()
	return &api.StatusResponse{
		Status:  api.StatusAvailable,
		Model:   e.cfg.Model,
		Message: "AI services are operational",
	}
}

// complete issues one provider call and records provider metrics.
func (e *Engine) complete(ctx context.Context, msgs []provider.ProviderMessage, maxTokens int, temperature *float64) (*provider.ProviderResponse, error) {
	req := &provider.ProviderRequest{
		Model:       e.cfg.Model,
		Messages:    msgs,
		Temperature: temperature,
		MaxTokens:   &maxTokens,
	}

	name := e.provider.Name()
	start := time.Now()
	resp, err := e.provider.Complete(ctx, req)
	observability.ProviderLatency.WithLabelValues(name, req.Model).Observe(time.Since(start).Seconds())

	if err != nil {
		observability.ProviderRequestsTotal.WithLabelValues(name, req.Model, "error").Inc()
		debug.Log("engine", "completion failed", "provider", name, "error", err.Error())
		return nil, err
	}

	observability.ProviderRequestsTotal.WithLabelValues(name, req.Model, "ok").Inc()
	observability.ProviderTokensTotal.WithLabelValues(name, req.Model, "input").Add(float64(resp.Usage.InputTokens))
	observability.ProviderTokensTotal.WithLabelValues(name, req.Model, "output").Add(float64(resp.Usage.OutputTokens))
	return resp, nil
}

func floatPtr(f float64) *float64 { return &f }

// valueOr returns *p, or def when p is nil.
func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
