package agents

import "github.com/kestrelfreight/logiflow/graph/model"

// NewClassifier builds the email classifier adapter: email text, subject,
// sender, thread id, and thread history in, sender/email type and
// confidence out, per the classifier's collaborator contract.
func NewClassifier(chatModel model.ChatModel) Adapter {
	return newLLMAdapter(chatModel, classifierPrompt, classifierFallback)
}

const classifierPrompt = "Classify the sender and intent of this email. " +
	"Respond with a JSON object containing email_type, sender_type, " +
	"sender_classification (type, details, confidence), confidence, " +
	"escalation_needed, and optionally intent and reasoning."

// classifierFallback mirrors the default branch of the router: an
// unrecognized sender type routes like a customer, with low confidence so
// downstream gating asks for clarification rather than proceeding blind.
func classifierFallback(map[string]any) map[string]any {
	return map[string]any{
		"email_type":        "unknown",
		"sender_type":       "customer",
		"confidence":        0.0,
		"escalation_needed": true,
	}
}
