package agents

import "context"

// The remaining collaborators have no real internals to ground — rate
// recommendation, forwarder detection/response/draft, and sales
// notification are explicitly out of scope per the orchestrator's charter.
// These deterministic stubs return a plausible payload shape so that the
// graph nodes, routing, and turn-commit logic that consume their output
// are exercised end to end.

// NewRateRecommender returns a fixed-shape rate-range payload regardless
// of input; a real implementation would query a rate-management system.
func NewRateRecommender() Adapter {
	return AdapterFunc(func(_ context.Context, _ map[string]any) (map[string]any, error) {
		return map[string]any{
			"rate_ranges": map[string]any{
				"low":  1200,
				"high": 1800,
			},
			"recommendation": "standard",
		}, nil
	})
}

// NewForwarderDetector reports whether an inbound email looks like a
// forwarder reply. Real detection (registry lookup, sender matching) is
// out of scope; this stub says no thread is from a forwarder registry
// match unless the caller already classified the sender as "forwarder".
func NewForwarderDetector() Adapter {
	return AdapterFunc(func(_ context.Context, request map[string]any) (map[string]any, error) {
		senderType := str(request, "sender_type")
		return map[string]any{"is_forwarder": senderType == "forwarder"}, nil
	})
}

// NewForwarderResponseProcessor parses a forwarder's reply for rate
// information. The stub passes through whatever rate_information the
// caller already extracted, with no error, so downstream routing
// (RouteAfterNotifySales) can be exercised deterministically in tests.
func NewForwarderResponseProcessor() Adapter {
	return AdapterFunc(func(_ context.Context, request map[string]any) (map[string]any, error) {
		if rates, ok := request["rate_information"]; ok {
			return map[string]any{"rate_information": rates}, nil
		}
		return map[string]any{}, nil
	})
}

// NewForwarderAssigner drafts the outbound rate-request email to the
// forwarder the orchestrator's country-matching policy has already
// selected (see workflow.assignForwarderForRoute); this adapter only
// materializes the draft's subject/body, it does not choose the
// forwarder itself.
func NewForwarderAssigner() Adapter {
	return AdapterFunc(func(_ context.Context, request map[string]any) (map[string]any, error) {
		company := ""
		if fw, ok := request["assigned_forwarder"].(map[string]any); ok {
			company = str(fw, "company")
		}
		return map[string]any{
			"subject": "Rate request",
			"body":    "Please provide your best rate for this shipment.",
			"to":      company,
		}, nil
	})
}

// NewSalesNotifier builds the notification payload sent to the assigned
// sales person.
func NewSalesNotifier() Adapter {
	return AdapterFunc(func(_ context.Context, request map[string]any) (map[string]any, error) {
		return map[string]any{
			"notification_type": str(request, "notification_type"),
			"thread_id":          str(request, "thread_id"),
			"delivered":          true,
		}, nil
	})
}
