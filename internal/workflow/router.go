package workflow

import "strings"

// str reads a string field from a Slot, returning "" if absent or of the
// wrong type.
func str(slot Slot, key string) string {
	if slot == nil {
		return ""
	}
	v, _ := slot[key].(string)
	return v
}

func f64(slot Slot, key string) (float64, bool) {
	if slot == nil {
		return 0, false
	}
	switch v := slot[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// RouteAfterClassification is routing decision 1 (§4.6.1). Sales-person and
// forwarder senders skip straight to the acknowledgment response;
// everyone else (customer, or an unrecognized tag) proceeds to
// conversation-state analysis. Escalation routing is removed from the
// happy path per spec §9 open questions.
func RouteAfterClassification(s State) string {
	senderType := strings.ToLower(str(s.Classification, "sender_type"))
	switch senderType {
	case "sales_person", "forwarder":
		return NodeGenerateAcknowledgmentResponse
	default:
		return NodeConversationState
	}
}

// RouteAfterConversationState is routing decision 2: always proceeds to
// thread analysis.
func RouteAfterConversationState(s State) string {
	return NodeAnalyzeThread
}

// RouteAfterNextAction is routing decision 3 (§4.6.3).
func RouteAfterNextAction(s State) string {
	action := strings.ToLower(firstNonEmptyStr(str(s.NextAction, "next_action"), str(s.NextAction, "action")))
	switch action {
	case "assign_forwarder", "forwarder":
		return NodeDetectForwarder
	default:
		return NodeAssignSalesPerson
	}
}

func firstNonEmptyStr(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

const (
	confidenceHigh = 0.7
	confidenceLow  = 0.5
)

// customerConfirmed implements §4.6.4.c: true iff the conversation-stage
// tag or email type contains the substring "confirm".
func customerConfirmed(s State) bool {
	stage := strings.ToLower(str(s.ConversationState, "conversation_stage"))
	emailType := strings.ToLower(str(s.Classification, "email_type"))
	return strings.Contains(stage, "confirm") || strings.Contains(emailType, "confirm")
}

// overallConfidence implements §4.6.4.d: the mean of classification,
// extraction, and validation confidences. Missing confidences are treated
// as 0, erring toward the LOW-confidence fallback.
func overallConfidence(s State) float64 {
	c1, _ := f64(s.Classification, "confidence")
	c2, _ := f64(s.Extraction, "confidence")
	c3, _ := f64(s.Validation, "confidence")
	return (c1 + c2 + c3) / 3
}

// Node names used by the router. Declared here (rather than in graph.go)
// so router.go reads as a self-contained routing table.
const (
	NodeClassifyEmail                      = "classify_email"
	NodeConversationState                   = "conversation_state"
	NodeAnalyzeThread                       = "analyze_thread"
	NodeExtractInformation                  = "extract_information"
	NodeValidateData                        = "validate_data"
	NodeLookupPorts                         = "lookup_ports"
	NodeStandardizeContainer                = "standardize_container"
	NodeRecommendRate                       = "recommend_rate"
	NodeDetermineNextAction                 = "determine_next_action"
	NodeAssignSalesPerson                   = "assign_sales_person"
	NodeGenerateClarificationResponse        = "generate_clarification_response"
	NodeGenerateConfirmationResponse         = "generate_confirmation_response"
	NodeGenerateAcknowledgmentResponse        = "generate_acknowledgment_response"
	NodeGenerateConfirmationAcknowledgment    = "generate_confirmation_acknowledgment"
	NodeDetectForwarder                      = "detect_forwarder"
	NodeProcessForwarderResponse              = "process_forwarder_response"
	NodeAssignForwarders                      = "assign_forwarders"
	NodeNotifySales                          = "notify_sales"
	NodeGenerateCustomerQuote                 = "generate_customer_quote"
	NodeUpdateThread                          = "update_thread"
)

// edgeManifest documents, for every non-terminal node, the full set of
// destinations its routing logic (inline in nodes.go, or one of the
// RouteAfter* functions above) can send execution to. NewOrchestratorGraph
// validates this against the registered node set at construction time,
// satisfying §4.5's "validates reachability" without requiring every edge
// to be a declarative Engine.Connect predicate.
var edgeManifest = map[string][]string{
	NodeClassifyEmail:                     {NodeGenerateAcknowledgmentResponse, NodeConversationState, NodeUpdateThread},
	NodeConversationState:                 {NodeAnalyzeThread},
	NodeAnalyzeThread:                     {NodeExtractInformation},
	NodeExtractInformation:                {NodeLookupPorts},
	NodeLookupPorts:                       {NodeStandardizeContainer},
	NodeStandardizeContainer:              {NodeRecommendRate},
	NodeRecommendRate:                     {NodeValidateData},
	NodeValidateData:                      {NodeDetermineNextAction},
	NodeDetermineNextAction:               {NodeAssignSalesPerson, NodeDetectForwarder},
	NodeAssignSalesPerson:                 {NodeGenerateClarificationResponse, NodeGenerateConfirmationResponse, NodeGenerateConfirmationAcknowledgment},
	NodeGenerateClarificationResponse:      {NodeUpdateThread},
	NodeGenerateConfirmationResponse:       {NodeUpdateThread},
	NodeGenerateAcknowledgmentResponse:     {NodeProcessForwarderResponse, NodeUpdateThread},
	NodeGenerateConfirmationAcknowledgment: {NodeAssignForwarders, NodeUpdateThread},
	NodeDetectForwarder:                   {NodeAssignForwarders},
	NodeAssignForwarders:                  {NodeUpdateThread},
	NodeProcessForwarderResponse:          {NodeNotifySales},
	NodeNotifySales:                       {NodeGenerateCustomerQuote, NodeUpdateThread},
	NodeGenerateCustomerQuote:             {NodeUpdateThread},
	NodeUpdateThread:                      nil,
}

// strSlice reads a []string field from a Slot. It tolerates the []any
// shape produced when a collaborator's response is decoded from JSON.
func strSlice(slot Slot, key string) []string {
	if slot == nil {
		return nil
	}
	switch v := slot[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// RouteAfterSalesAssignment is routing decision 4 (§4.6.4), the intelligent
// routing core. By the time this edge is evaluated, the validate_data node
// (§4.6.4.a-b) has already run the mandatory-field validator against the
// extraction that prefers cumulative over per-email data, and recorded its
// missing list under s.Validation["missing_fields"] — that is the source
// of truth; a missing list surfaced by the next-action node is consulted
// only when the validator's own list is empty.
func RouteAfterSalesAssignment(s State) string {
	missing := strSlice(s.Validation, "missing_fields")
	if len(missing) == 0 {
		missing = strSlice(s.NextAction, "missing_fields")
	}
	if len(missing) > 0 {
		return NodeGenerateClarificationResponse
	}

	confidence := overallConfidence(s)
	if confidence < confidenceLow {
		return NodeGenerateClarificationResponse
	}

	if !customerConfirmed(s) {
		return NodeGenerateConfirmationResponse
	}
	return NodeGenerateConfirmationAcknowledgment
}

// RouteAfterAcknowledgment is routing decision 5 (§4.6.5).
func RouteAfterAcknowledgment(s State) string {
	senderType := strings.ToLower(str(s.Classification, "sender_type"))
	if senderType == "forwarder" {
		return NodeProcessForwarderResponse
	}
	return NodeUpdateThread
}

// RouteAfterConfirmationAcknowledgment implements the additional edge
// documented after §4.6: proceed to forwarder assignment only when the
// confirmation-acknowledgment slot is error-free.
func RouteAfterConfirmationAcknowledgment(s State) string {
	if s.ConfirmationAcknowledgmentResult.IsError() {
		return NodeUpdateThread
	}
	return NodeAssignForwarders
}

// RouteAfterNotifySales implements the additional edge after notify_sales:
// proceed to the customer quote only when a non-error forwarder response
// carries rate information.
func RouteAfterNotifySales(s State) string {
	resp := s.ForwarderResponseResult
	if resp != nil && !resp.IsError() {
		if _, hasRate := resp["rate_information"]; hasRate {
			return NodeGenerateCustomerQuote
		}
	}
	return NodeUpdateThread
}
