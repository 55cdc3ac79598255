package openaicompat

import (
	"github.com/rhuss/aibackend/pkg/api"
	"github.com/rhuss/aibackend/pkg/provider"
)

// ErrNoOutput is the message used when the backend answered without a
// message to read: no choices, or a first choice whose content is null.
const ErrNoOutput = "backend produced no output"

// TranslateResponse converts a ChatCompletionResponse into a ProviderResponse.
// It uses only choices[0]. A response without choices, or whose first choice
// has null content, is reported as a server error. Empty text is a valid
// answer, as when the model hit max_tokens before emitting anything.
func TranslateResponse(resp *ChatCompletionResponse) (*provider.ProviderResponse, error) {
	pr := &provider.ProviderResponse{
		Model: resp.Model,
	}

	if resp.Usage != nil {
		pr.Usage = provider.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}

	// Need at least one choice. Empty choices means the backend produced no output.
	if len(resp.Choices) == 0 {
		return nil, api.NewServerError(ErrNoOutput)
	}

	choice := resp.Choices[0]
	pr.FinishReason = choice.FinishReason

	if choice.Message.Content == nil {
		return nil, api.NewServerError(ErrNoOutput)
	}
	pr.Content = ExtractContentString(choice.Message.Content)

	return pr, nil
}

// ExtractContentString attempts to get a plain string from the message content.
// The content field in Chat Completions can be a string or nil.
func ExtractContentString(content any) string {
	if content == nil {
		return ""
	}
	switch v := content.(type) {
	case string:
		return v
	default:
		return ""
	}
}
