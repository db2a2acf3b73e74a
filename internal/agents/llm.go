package agents

import (
	"context"
	"encoding/json"

	"github.com/kestrelfreight/logiflow/graph/model"
)

// llmAdapter is the common shape of every LLM-backed collaborator: it
// builds a single-turn prompt from the request, asks model to respond
// with a JSON object, and decodes that object as the response map. Prompt
// engineering is explicitly out of scope (spec §1); systemPrompt exists
// only to name the collaborator's role for whichever real model backs it.
//
// On any transport or decode failure, llmAdapter calls fallback(request)
// instead of propagating, per §7's "adapter failure" rule, and merges in
// an "error" key so callers and the validator can tell the payload is
// degraded.
type llmAdapter struct {
	chatModel    model.ChatModel
	systemPrompt string
	fallback     func(request map[string]any) map[string]any
}

func newLLMAdapter(chatModel model.ChatModel, systemPrompt string, fallback func(map[string]any) map[string]any) *llmAdapter {
	return &llmAdapter{chatModel: chatModel, systemPrompt: systemPrompt, fallback: fallback}
}

func (a *llmAdapter) Process(ctx context.Context, request map[string]any) (map[string]any, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return a.degrade(request, err), nil
	}

	messages := []model.Message{
		{Role: model.RoleSystem, Content: a.systemPrompt},
		{Role: model.RoleUser, Content: string(payload)},
	}

	out, err := a.chatModel.Chat(ctx, messages, nil)
	if err != nil {
		return a.degrade(request, err), nil
	}

	var response map[string]any
	if err := json.Unmarshal([]byte(out.Text), &response); err != nil {
		return a.degrade(request, err), nil
	}
	return response, nil
}

func (a *llmAdapter) degrade(request map[string]any, err error) map[string]any {
	response := a.fallback(request)
	if response == nil {
		response = map[string]any{}
	}
	response["error"] = err.Error()
	return response
}
