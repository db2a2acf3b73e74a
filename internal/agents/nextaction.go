package agents

import "github.com/kestrelfreight/logiflow/graph/model"

// NewNextAction builds the next-action adapter: conversation stage,
// classification, extracted data, confidence, validation, enriched data,
// thread id, and missing fields in; next_action (or action), optional
// missing_fields, confidence, and reasoning out.
func NewNextAction(chatModel model.ChatModel) Adapter {
	return newLLMAdapter(chatModel, nextActionPrompt, nextActionFallback)
}

const nextActionPrompt = "Decide the next action for this thread given its " +
	"conversation stage, classification, extracted data, confidence, " +
	"validation result, enriched data, and missing fields. Respond with a " +
	"JSON object containing next_action, optional missing_fields, " +
	"confidence, and reasoning."

// nextActionFallback defers to the sales-assignment routing decision by
// reporting no missing fields and letting the confidence gate decide;
// forwarder detection only happens when the collaborator explicitly says
// so, so the safe default is the clarification path.
func nextActionFallback(map[string]any) map[string]any {
	return map[string]any{
		"next_action": "send_clarification_request",
		"confidence":  0.0,
	}
}
