package agents

import "github.com/kestrelfreight/logiflow/graph/model"

// The five response generators share a request shape — merged extraction,
// customer first name, assigned sales person, port lookup, container
// standardization, and optional rate info — and a response shape:
// subject, body, response_type, optional error. Only the system prompt
// (the tone and purpose of the message) differs between them.

// NewClarificationResponder asks the customer for the missing fields a
// validator flagged.
func NewClarificationResponder(chatModel model.ChatModel) Adapter {
	return newLLMAdapter(chatModel, clarificationPrompt, responseFallback("clarification"))
}

// NewConfirmationResponder restates the gathered shipment details back to
// the customer for confirmation before booking proceeds.
func NewConfirmationResponder(chatModel model.ChatModel) Adapter {
	return newLLMAdapter(chatModel, confirmationPrompt, responseFallback("confirmation"))
}

// NewAcknowledgmentResponder produces the short acknowledgment sent to
// sales people and forwarders.
func NewAcknowledgmentResponder(chatModel model.ChatModel) Adapter {
	return newLLMAdapter(chatModel, acknowledgmentPrompt, responseFallback("acknowledgment"))
}

// NewConfirmationAcknowledgmentResponder produces the message sent once
// the customer has confirmed their shipment details.
func NewConfirmationAcknowledgmentResponder(chatModel model.ChatModel) Adapter {
	return newLLMAdapter(chatModel, confirmationAcknowledgmentPrompt, responseFallback("confirmation_acknowledgment"))
}

// NewCustomerQuoteResponder builds the rate quote sent to the customer
// once a forwarder's rate reply has cleared sales notification.
func NewCustomerQuoteResponder(chatModel model.ChatModel) Adapter {
	return newLLMAdapter(chatModel, customerQuotePrompt, responseFallback("customer_quote"))
}

const (
	clarificationPrompt = "Write a short email asking the customer for the " +
		"missing shipment details. Respond with a JSON object containing " +
		"subject, body, and response_type."
	confirmationPrompt = "Write a short email restating the gathered " +
		"shipment details and asking the customer to confirm them. " +
		"Respond with a JSON object containing subject, body, and " +
		"response_type."
	acknowledgmentPrompt = "Write a short acknowledgment email for a " +
		"sales person or forwarder. Respond with a JSON object containing " +
		"subject, body, and response_type."
	confirmationAcknowledgmentPrompt = "Write a short email confirming the " +
		"customer's shipment booking. Respond with a JSON object " +
		"containing subject, body, and response_type."
	customerQuotePrompt = "Write a short email presenting the customer's " +
		"rate quote, naming both the origin and destination ports. " +
		"Respond with a JSON object containing subject, body, and " +
		"response_type."
)

func responseFallback(responseType string) func(map[string]any) map[string]any {
	return func(map[string]any) map[string]any {
		return map[string]any{
			"subject":       "Your shipment request",
			"body":          "We are processing your request and will follow up shortly.",
			"response_type": responseType,
		}
	}
}
