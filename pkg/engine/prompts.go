package engine

import (
	"fmt"

	"github.com/rhuss/aibackend/pkg/api"
)

// Confidence is reported with every text analysis. It is a fixed
// placeholder, not derived from the model.
const Confidence = 0.95

const (
	analysisSystemPrompt    = "You are a helpful AI assistant that provides accurate text analysis."
	analysisMaxTokens       = 200
	analysisTemperature     = 0.3
	codeSystemPromptFormat  = "You are an expert %s programmer. Generate clean, efficient, and well-documented code."
	codeUserPromptFormat    = "Generate %s code for: %s. Provide clean, well-commented code."
	codeMaxTokens           = 500
	codeTemperature         = 0.2
	explainSystemPrompt     = "You are a helpful programming tutor. Explain code clearly and concisely."
	explainUserPromptFormat = "Explain how this %s code works: %s"
	explainMaxTokens        = 200
	explainTemperature      = 0.3
	statusPrompt            = "Say 'AI is working'"
	statusMaxTokens         = 10
)

var analysisTemplates = map[api.AnalysisType]string{
	api.AnalysisSentiment: "Analyze the sentiment of this text and provide a score from -1 (very negative) to 1 (very positive): '%s'",
	api.AnalysisSummary:   "Provide a concise summary of this text: '%s'",
	api.AnalysisKeywords:  "Extract the key topics and important keywords from this text: '%s'",
}

// analysisPrompt returns the user prompt for the given analysis type, or
// false when the type has no template.
func analysisPrompt(kind api.AnalysisType, text string) (string, bool) {
	tmpl, ok := analysisTemplates[kind]
	if !ok {
		return "", false
	}
	return fmt.Sprintf(tmpl, text), true
}
