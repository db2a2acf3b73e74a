package workflow

import "github.com/kestrelfreight/logiflow/internal/threadstore"

// Slot is a node result slot: absent (nil), an error payload ({"error":
// "..."}), or a data payload. Modeling it as map[string]any mirrors the
// agent-adapter contract (§4.10): every collaborator exchanges plain
// request/response maps with the orchestrator.
type Slot map[string]any

// IsError reports whether the slot carries an "error" key, per the
// adapter-failure convention in §7.
func (s Slot) IsError() bool {
	if s == nil {
		return false
	}
	_, ok := s["error"]
	return ok
}

// State is the turn-local record built at the start of a turn and
// mutated only by node return values (deltas merged through Reduce).
//
// Fields fall into the three classes documented in spec §3: shared
// append-only inputs, per-node result slots, and control flags.
type State struct {
	// --- shared, append-only inputs ---
	Email                Email
	ThreadHistory        []threadstore.EmailEntry
	CustomerContext      map[string]any
	ForwarderContext     map[string]any
	MarketData           map[string]any
	CumulativeAtTurnStart threadstore.Extraction

	// --- per-node result slots ---
	Classification               Slot
	ConversationState            Slot
	ThreadAnalysis                Slot
	Extraction                    Slot
	Validation                    Slot
	PortLookup                    Slot
	ContainerStandardization      Slot
	RateRecommendation            Slot
	NextAction                    Slot
	ClarificationResult           Slot
	ConfirmationResult            Slot
	AcknowledgmentResult          Slot
	ConfirmationAcknowledgmentResult Slot
	ForwarderDetectionResult      Slot
	ForwarderResponseResult       Slot // reducer: first non-nil wins
	ForwarderDraftResult          Slot
	ForwarderAssignmentResult     Slot
	EscalationResult              Slot // reducer: first non-nil wins
	SalesNotificationResult       Slot // reducer: first non-nil wins
	CustomerQuoteResult           Slot

	// --- control flags ---
	ShouldEscalate      bool // reducer: logical OR
	IsForwarderEmail    bool
	WorkflowCompleted   bool
	AssignedSalesPerson map[string]any

	// Final cumulative extraction, copied back by the turn committer.
	FinalCumulative threadstore.Extraction
}

// Reduce merges delta into prev following the field-by-field rules of
// §4.5: reducer fields get their special merge, everything else uses
// last-write-wins (the graph guarantees at most one node writes any given
// non-reducer slot per turn, so last-write is unambiguous).
//
// Grounded on the teacher's ReduceReviewState pattern
// (examples/multi-llm-review/workflow/state.go): presence-check before
// overwrite for scalars, explicit merge for the few fields that need it.
func Reduce(prev, delta State) State {
	merged := prev

	if delta.Email.Sender != "" || delta.Email.Content != "" {
		merged.Email = delta.Email
	}
	if delta.ThreadHistory != nil {
		merged.ThreadHistory = delta.ThreadHistory
	}
	if delta.CustomerContext != nil {
		merged.CustomerContext = delta.CustomerContext
	}
	if delta.ForwarderContext != nil {
		merged.ForwarderContext = delta.ForwarderContext
	}
	if delta.MarketData != nil {
		merged.MarketData = delta.MarketData
	}

	if delta.Classification != nil {
		merged.Classification = delta.Classification
	}
	if delta.ConversationState != nil {
		merged.ConversationState = delta.ConversationState
	}
	if delta.ThreadAnalysis != nil {
		merged.ThreadAnalysis = delta.ThreadAnalysis
	}
	if delta.Extraction != nil {
		merged.Extraction = delta.Extraction
	}
	if delta.Validation != nil {
		merged.Validation = delta.Validation
	}
	if delta.PortLookup != nil {
		merged.PortLookup = delta.PortLookup
	}
	if delta.ContainerStandardization != nil {
		merged.ContainerStandardization = delta.ContainerStandardization
	}
	if delta.RateRecommendation != nil {
		merged.RateRecommendation = delta.RateRecommendation
	}
	if delta.NextAction != nil {
		merged.NextAction = delta.NextAction
	}
	if delta.ClarificationResult != nil {
		merged.ClarificationResult = delta.ClarificationResult
	}
	if delta.ConfirmationResult != nil {
		merged.ConfirmationResult = delta.ConfirmationResult
	}
	if delta.AcknowledgmentResult != nil {
		merged.AcknowledgmentResult = delta.AcknowledgmentResult
	}
	if delta.ConfirmationAcknowledgmentResult != nil {
		merged.ConfirmationAcknowledgmentResult = delta.ConfirmationAcknowledgmentResult
	}
	if delta.ForwarderDetectionResult != nil {
		merged.ForwarderDetectionResult = delta.ForwarderDetectionResult
	}
	if delta.ForwarderDraftResult != nil {
		merged.ForwarderDraftResult = delta.ForwarderDraftResult
	}
	if delta.ForwarderAssignmentResult != nil {
		merged.ForwarderAssignmentResult = delta.ForwarderAssignmentResult
	}
	if delta.CustomerQuoteResult != nil {
		merged.CustomerQuoteResult = delta.CustomerQuoteResult
	}

	// Reducer fields: first non-nil wins, protecting against two branches
	// concurrently attempting to set the same result.
	if merged.ForwarderResponseResult == nil && delta.ForwarderResponseResult != nil {
		merged.ForwarderResponseResult = delta.ForwarderResponseResult
	}
	if merged.EscalationResult == nil && delta.EscalationResult != nil {
		merged.EscalationResult = delta.EscalationResult
	}
	if merged.SalesNotificationResult == nil && delta.SalesNotificationResult != nil {
		merged.SalesNotificationResult = delta.SalesNotificationResult
	}

	// ShouldEscalate: logical OR.
	merged.ShouldEscalate = merged.ShouldEscalate || delta.ShouldEscalate

	if delta.IsForwarderEmail {
		merged.IsForwarderEmail = true
	}
	if delta.WorkflowCompleted {
		merged.WorkflowCompleted = true
	}
	if delta.AssignedSalesPerson != nil {
		merged.AssignedSalesPerson = delta.AssignedSalesPerson
	}
	if !isZeroShipmentDetails(delta.CumulativeAtTurnStart.ShipmentDetails) {
		merged.CumulativeAtTurnStart = delta.CumulativeAtTurnStart
	}
	if !isZeroShipmentDetails(delta.FinalCumulative.ShipmentDetails) || delta.FinalCumulative.AdditionalNotes != "" {
		merged.FinalCumulative = delta.FinalCumulative
	}

	return merged
}

func isZeroShipmentDetails(sd threadstore.ShipmentDetails) bool {
	return sd == threadstore.ShipmentDetails{}
}
