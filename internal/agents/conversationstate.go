package agents

import "github.com/kestrelfreight/logiflow/graph/model"

// NewConversationState builds the conversation-state adapter: email text,
// subject, thread id, thread history, cumulative extraction, and contexts
// in; conversation_stage, latest_sender, next_action, should_escalate, and
// thread_context out.
func NewConversationState(chatModel model.ChatModel) Adapter {
	return newLLMAdapter(chatModel, conversationStatePrompt, conversationStateFallback)
}

const conversationStatePrompt = "Determine the conversation stage for this " +
	"thread. Respond with a JSON object containing conversation_stage, " +
	"latest_sender, next_action, should_escalate, and thread_context."

func conversationStateFallback(map[string]any) map[string]any {
	return map[string]any{
		"conversation_stage": "customer_initial_request",
		"should_escalate":    false,
	}
}
