package openaicompat

import (
	"github.com/rhuss/aibackend/pkg/provider"
)

// TranslateToChat converts a ProviderRequest into a ChatCompletionRequest
// suitable for the /v1/chat/completions endpoint. Only one choice is ever
// requested and streaming is always off.
func TranslateToChat(req *provider.ProviderRequest) ChatCompletionRequest {
	cr := ChatCompletionRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		N:           1,
		Messages:    make([]ChatMessage, 0, len(req.Messages)),
	}

	for _, pm := range req.Messages {
		cr.Messages = append(cr.Messages, ChatMessage{
			Role:    pm.Role,
			Content: pm.Content,
		})
	}

	return cr
}
