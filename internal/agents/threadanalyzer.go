package agents

import "github.com/kestrelfreight/logiflow/graph/model"

// NewThreadAnalyzer builds the thread analyzer adapter. Its response is
// free-form insight text consumed only for logging/observability, never
// gating routing, so the fallback is simply an empty insights string.
func NewThreadAnalyzer(chatModel model.ChatModel) Adapter {
	return newLLMAdapter(chatModel, threadAnalyzerPrompt, threadAnalyzerFallback)
}

const threadAnalyzerPrompt = "Summarize this email thread's history, " +
	"previous classifications, and contexts. Respond with a JSON object " +
	"containing an insights field."

func threadAnalyzerFallback(map[string]any) map[string]any {
	return map[string]any{"insights": ""}
}
