package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/kestrelfreight/logiflow/graph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLLMAdapterDecodesJSONResponse(t *testing.T) {
	mock := &model.MockChatModel{Responses: []model.ChatOut{
		{Text: `{"email_type":"inquiry","sender_type":"customer","confidence":0.9}`},
	}}
	adapter := NewClassifier(mock)

	response, err := adapter.Process(context.Background(), map[string]any{"content": "hi"})

	require.NoError(t, err)
	assert.Equal(t, "customer", response["sender_type"])
	assert.Equal(t, 0.9, response["confidence"])
	require.Len(t, mock.Calls, 1)
	assert.Equal(t, model.RoleSystem, mock.Calls[0].Messages[0].Role)
}

func TestLLMAdapterFallsBackOnTransportError(t *testing.T) {
	mock := &model.MockChatModel{Err: errors.New("connection refused")}
	adapter := NewClassifier(mock)

	response, err := adapter.Process(context.Background(), map[string]any{"content": "hi"})

	require.NoError(t, err)
	assert.Equal(t, "customer", response["sender_type"])
	assert.Equal(t, "connection refused", response["error"])
}

func TestLLMAdapterFallsBackOnMalformedJSON(t *testing.T) {
	mock := &model.MockChatModel{Responses: []model.ChatOut{{Text: "not json"}}}
	adapter := NewExtractor(mock)

	response, err := adapter.Process(context.Background(), map[string]any{"content": "hi"})

	require.NoError(t, err)
	assert.NotEmpty(t, response["error"])
	assert.Equal(t, map[string]any{}, response["extracted_data"])
}
