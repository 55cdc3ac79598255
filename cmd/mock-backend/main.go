// Command mock-backend runs a deterministic Chat Completions server for
// local development and end-to-end testing without an API key. It
// recognizes the prompts sent by the aibackend engine and returns fixed
// answers for each.
//
// Configuration:
//
//	MOCK_PORT    - Listen port (default: 9090)
//	MOCK_API_KEY - When set, requests must carry this bearer token
//
// A user message containing "mock:error" yields a 500 and one containing
// "mock:ratelimit" yields a 429.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

const mockModel = "mock-model"

func main() {
	port := os.Getenv("MOCK_PORT")
	if port == "" {
		port = "9090"
	}

	srv := &http.Server{Addr: ":" + port, Handler: newMux(os.Getenv("MOCK_API_KEY"))}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("mock backend starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("mock backend failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("mock backend shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

func newMux(apiKey string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("POST /v1/chat/completions", requireKey(apiKey, http.HandlerFunc(handleChatCompletions)))
	mux.HandleFunc("GET /v1/models", handleModels)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	return mux
}

// --- Request types ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// --- Response types ---

type chatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// --- Handlers ---

func requireKey(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if apiKey != "" && r.Header.Get("Authorization") != "Bearer "+apiKey {
			writeError(w, http.StatusUnauthorized, "invalid_request_error", "Incorrect API key provided")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_error", "invalid request")
		return
	}

	last := lastUserMessage(&req)
	switch {
	case strings.Contains(last, "mock:error"):
		writeError(w, http.StatusInternalServerError, "server_error", "mock backend failure")
		return
	case strings.Contains(last, "mock:ratelimit"):
		writeError(w, http.StatusTooManyRequests, "rate_limit_error", "Rate limit reached")
		return
	}

	resp := makeTextResponse(classify(&req))
	resp.Model = req.Model
	if resp.Model == "" {
		resp.Model = mockModel
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// classify picks a canned answer from the system prompt and user message.
func classify(req *chatRequest) string {
	system := strings.ToLower(systemPrompt(req))
	last := lastUserMessage(req)
	lower := strings.ToLower(last)

	switch {
	case system == "" && strings.Contains(lower, "ai is working"):
		return "AI is working"
	case strings.Contains(system, "text analysis"):
		switch {
		case strings.HasPrefix(lower, "analyze the sentiment"):
			return "Sentiment score: 0.8 (positive). The text expresses satisfaction."
		case strings.HasPrefix(lower, "provide a concise summary"):
			return "Summary: the text describes a single topic in brief."
		case strings.HasPrefix(lower, "extract the key topics"):
			return "Keywords: topic, example, text"
		}
	case strings.Contains(system, "programmer"):
		return "```python\ndef solution(value):\n    \"\"\"Return the value unchanged.\"\"\"\n    return value\n```"
	case strings.Contains(system, "tutor"):
		return "The function takes one argument and returns it unchanged."
	}
	return "Hello, nice day!"
}

func makeTextResponse(text string) chatResponse {
	return chatResponse{
		ID:     "chatcmpl-mock-text",
		Object: "chat.completion",
		Choices: []chatChoice{
			{
				Index:        0,
				Message:      chatMessage{Role: "assistant", Content: text},
				FinishReason: "stop",
			},
		},
		Usage: chatUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
}

func writeError(w http.ResponseWriter, status int, typ, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"message": message, "type": typ},
	})
}

// --- Models endpoint ---

func handleModels(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"object": "list",
		"data": []map[string]any{
			{"id": mockModel, "object": "model", "owned_by": "aibackend-mock"},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// --- Helpers ---

func lastUserMessage(req *chatRequest) string {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			return req.Messages[i].Content
		}
	}
	return ""
}

func systemPrompt(req *chatRequest) string {
	for _, msg := range req.Messages {
		if msg.Role == "system" {
			return msg.Content
		}
	}
	return ""
}
