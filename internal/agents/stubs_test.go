package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwarderDetectorMatchesSenderType(t *testing.T) {
	d := NewForwarderDetector()
	response, err := d.Process(context.Background(), map[string]any{"sender_type": "forwarder"})
	require.NoError(t, err)
	assert.Equal(t, true, response["is_forwarder"])
}

func TestForwarderResponseProcessorPassesThroughRates(t *testing.T) {
	p := NewForwarderResponseProcessor()
	response, err := p.Process(context.Background(), map[string]any{"rate_information": map[string]string{"USD": "1200"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"USD": "1200"}, response["rate_information"])
}

func TestForwarderResponseProcessorEmptyWhenNoRates(t *testing.T) {
	p := NewForwarderResponseProcessor()
	response, err := p.Process(context.Background(), map[string]any{})
	require.NoError(t, err)
	_, hasRate := response["rate_information"]
	assert.False(t, hasRate)
}

func TestRateRecommenderReturnsFixedRanges(t *testing.T) {
	r := NewRateRecommender()
	response, err := r.Process(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.NotNil(t, response["rate_ranges"])
}

func TestSalesNotifierEchoesNotificationType(t *testing.T) {
	n := NewSalesNotifier()
	response, err := n.Process(context.Background(), map[string]any{"notification_type": "new_lead", "thread_id": "thread_1"})
	require.NoError(t, err)
	assert.Equal(t, "new_lead", response["notification_type"])
	assert.Equal(t, true, response["delivered"])
}
