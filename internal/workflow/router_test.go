package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteAfterClassificationForwarderAndSalesPersonGoToAcknowledgment(t *testing.T) {
	assert.Equal(t, NodeGenerateAcknowledgmentResponse, RouteAfterClassification(State{Classification: Slot{"sender_type": "forwarder"}}))
	assert.Equal(t, NodeGenerateAcknowledgmentResponse, RouteAfterClassification(State{Classification: Slot{"sender_type": "sales_person"}}))
}

func TestRouteAfterClassificationCustomerAndUnknownGoToConversationState(t *testing.T) {
	assert.Equal(t, NodeConversationState, RouteAfterClassification(State{Classification: Slot{"sender_type": "customer"}}))
	assert.Equal(t, NodeConversationState, RouteAfterClassification(State{}))
}

func TestRouteAfterNextActionForwarderGoesToDetectForwarder(t *testing.T) {
	assert.Equal(t, NodeDetectForwarder, RouteAfterNextAction(State{NextAction: Slot{"next_action": "assign_forwarder"}}))
	assert.Equal(t, NodeAssignSalesPerson, RouteAfterNextAction(State{NextAction: Slot{"next_action": "send_clarification_request"}}))
}

func TestRouteAfterSalesAssignmentMissingFieldsForceClarification(t *testing.T) {
	s := State{Validation: Slot{"missing_fields": []string{"Origin"}}}
	assert.Equal(t, NodeGenerateClarificationResponse, RouteAfterSalesAssignment(s))
}

func TestRouteAfterSalesAssignmentLowConfidenceForcesClarification(t *testing.T) {
	s := State{
		Classification: Slot{"confidence": 0.1},
		Extraction:     Slot{"confidence": 0.1},
		Validation:     Slot{"confidence": 0.1},
	}
	assert.Equal(t, NodeGenerateClarificationResponse, RouteAfterSalesAssignment(s))
}

func TestRouteAfterSalesAssignmentUnconfirmedGoesToConfirmationRequest(t *testing.T) {
	s := State{
		Classification:    Slot{"confidence": 0.9},
		Extraction:        Slot{"confidence": 0.9},
		Validation:        Slot{"confidence": 0.9},
		ConversationState: Slot{"conversation_stage": "customer_initial_request"},
	}
	assert.Equal(t, NodeGenerateConfirmationResponse, RouteAfterSalesAssignment(s))
}

func TestRouteAfterSalesAssignmentConfirmedGoesToConfirmationAcknowledgment(t *testing.T) {
	s := State{
		Classification:    Slot{"confidence": 0.9},
		Extraction:        Slot{"confidence": 0.9},
		Validation:        Slot{"confidence": 0.9},
		ConversationState: Slot{"conversation_stage": "customer_confirmation"},
	}
	assert.Equal(t, NodeGenerateConfirmationAcknowledgment, RouteAfterSalesAssignment(s))
}

func TestRouteAfterAcknowledgmentForwarderGoesToProcessForwarderResponse(t *testing.T) {
	s := State{Classification: Slot{"sender_type": "forwarder"}}
	assert.Equal(t, NodeProcessForwarderResponse, RouteAfterAcknowledgment(s))
}

func TestRouteAfterAcknowledgmentOthersGoToUpdateThread(t *testing.T) {
	assert.Equal(t, NodeUpdateThread, RouteAfterAcknowledgment(State{Classification: Slot{"sender_type": "sales_person"}}))
	assert.Equal(t, NodeUpdateThread, RouteAfterAcknowledgment(State{Classification: Slot{"sender_type": "customer"}}))
}

func TestRouteAfterConfirmationAcknowledgmentErrorSkipsForwarderAssignment(t *testing.T) {
	s := State{ConfirmationAcknowledgmentResult: Slot{"error": "mandatory fields missing"}}
	assert.Equal(t, NodeUpdateThread, RouteAfterConfirmationAcknowledgment(s))
}

func TestRouteAfterConfirmationAcknowledgmentSuccessAssignsForwarders(t *testing.T) {
	s := State{ConfirmationAcknowledgmentResult: Slot{"subject": "Confirmed"}}
	assert.Equal(t, NodeAssignForwarders, RouteAfterConfirmationAcknowledgment(s))
}

func TestRouteAfterNotifySalesWithRateInfoGeneratesQuote(t *testing.T) {
	s := State{ForwarderResponseResult: Slot{"rate_information": map[string]string{"USD": "1200"}}}
	assert.Equal(t, NodeGenerateCustomerQuote, RouteAfterNotifySales(s))
}

func TestRouteAfterNotifySalesWithoutRateInfoUpdatesThread(t *testing.T) {
	assert.Equal(t, NodeUpdateThread, RouteAfterNotifySales(State{}))
	assert.Equal(t, NodeUpdateThread, RouteAfterNotifySales(State{ForwarderResponseResult: Slot{"error": "no reply"}}))
}
