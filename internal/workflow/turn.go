package workflow

import (
	"context"
	"time"

	"github.com/kestrelfreight/logiflow/graph"
	"github.com/kestrelfreight/logiflow/internal/ids"
	"github.com/kestrelfreight/logiflow/internal/threadstore"
)

// chosenResponse picks whichever response-generator slot this turn
// actually populated. More than one slot can be set in the same turn
// (e.g. a forwarder reply can populate both AcknowledgmentResult and
// CustomerQuoteResult), so the scan follows the fixed priority order
// clarification -> confirmation -> acknowledgment ->
// confirmation-acknowledgment -> customer quote, and the turn still
// commits only one outbound entry.
func chosenResponse(s State) (subject, body, responseType string, ok bool) {
	for _, candidate := range []Slot{
		s.ClarificationResult,
		s.ConfirmationResult,
		s.AcknowledgmentResult,
		s.ConfirmationAcknowledgmentResult,
		s.CustomerQuoteResult,
	} {
		if candidate == nil || candidate.IsError() {
			continue
		}
		return str(candidate, "subject"), str(candidate, "body"), str(candidate, "response_type"), true
	}
	return "", "", "", false
}

// newUpdateThreadNode is the terminal node: it commits the turn's inbound
// email and any outbound response to the thread store, persists the
// merged cumulative extraction, and stops the run. Grounded on
// langgraph_workflow_orchestrator.py's _update_thread and
// utils/thread_manager.py's append-plus-tag-derivation pattern.
func newUpdateThreadNode(store threadstore.Store, now func() time.Time) graph.Node[State] {
	return graph.NodeFunc[State](func(ctx context.Context, s State) graph.NodeResult[State] {
		inbound := threadstore.EmailEntry{
			ID:        ids.NewEmailEntryID(ids.DirectionInbound),
			Sender:    s.Email.Sender,
			Direction: "inbound",
			Subject:   s.Email.Subject,
			Content:   s.Email.Content,
			Timestamp: s.Email.ReceivedAt,
		}
		if extraction := s.CumulativeAtTurnStart; !isZeroShipmentDetails(extraction.ShipmentDetails) {
			inbound.ExtractedData = &extraction
		}

		thread, err := store.Append(ctx, s.Email.ThreadID, inbound)
		if err != nil {
			return graph.NodeResult[State]{Delta: State{WorkflowCompleted: true}, Route: graph.Stop()}
		}

		responseType := ""
		direction := "inbound"
		if subject, body, rt, ok := chosenResponse(s); ok {
			responseType = rt
			direction = "outbound"
			outbound := threadstore.EmailEntry{
				ID:           ids.NewEmailEntryID(ids.DirectionOutbound),
				Sender:       "logiflow",
				Direction:    "outbound",
				Subject:      subject,
				Content:      body,
				ResponseType: rt,
				WorkflowID:   ids.NewWorkflowID(now()),
				Timestamp:    now(),
			}
			thread, _ = store.Append(ctx, s.Email.ThreadID, outbound)
		}

		thread.ConversationState = threadstore.NextConversationState(thread.ConversationState, direction, responseType)
		thread.CumulativeExtraction = s.CumulativeAtTurnStart
		thread.LastUpdated = now()
		_ = store.Save(ctx, thread)

		return graph.NodeResult[State]{
			Delta: State{WorkflowCompleted: true, FinalCumulative: s.CumulativeAtTurnStart},
			Route: graph.Stop(),
		}
	})
}
