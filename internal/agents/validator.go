package agents

import "github.com/kestrelfreight/logiflow/graph/model"

// NewValidator builds the validator adapter: extracted data and
// validation rules in; validation_status and confidence out. The
// deterministic mandatory-field check (threadstore.Validate) is a
// separate, non-LLM computation the validate_data node runs alongside
// this adapter — this collaborator only scores the extraction's
// internal consistency.
func NewValidator(chatModel model.ChatModel) Adapter {
	return newLLMAdapter(chatModel, validatorPrompt, validatorFallback)
}

const validatorPrompt = "Validate the extracted shipment data against the " +
	"given validation rules. Respond with a JSON object containing " +
	"validation_status and confidence."

func validatorFallback(map[string]any) map[string]any {
	return map[string]any{
		"validation_status": "unknown",
		"confidence":        0.0,
	}
}
