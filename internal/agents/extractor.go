package agents

import "github.com/kestrelfreight/logiflow/graph/model"

// NewExtractor builds the extractor adapter: email text, sender, subject,
// thread id, timestamp, contexts, prioritize_recent=true, and the
// cumulative extraction in; extracted_data, quality_score, and confidence
// out.
func NewExtractor(chatModel model.ChatModel) Adapter {
	return newLLMAdapter(chatModel, extractorPrompt, extractorFallback)
}

const extractorPrompt = "Extract shipment details, contact information, " +
	"timeline information, special requirements, rate information, and " +
	"additional notes from this email, prioritizing information from the " +
	"most recent message. Respond with a JSON object containing " +
	"extracted_data, quality_score, and confidence."

func extractorFallback(map[string]any) map[string]any {
	return map[string]any{
		"extracted_data": map[string]any{},
		"quality_score":  0.0,
		"confidence":     0.0,
	}
}
