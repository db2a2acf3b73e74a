// Package threadstore holds the per-thread conversation record, the
// recency-priority merge that folds new per-email extractions into it, the
// mandatory-field validator that gates confirmation emails, and the
// pluggable persistence backends (SQLite, MySQL, in-memory) that store it.
package threadstore

import "time"

// ShipmentDetails holds the shipment-specific fields of an extraction.
// Scalars are plain strings, never pointers: ingress parsing converts a
// JSON null or absent field to "", so merge and validation code only ever
// has to check against the empty string.
type ShipmentDetails struct {
	Origin             string `json:"origin"`
	Destination        string `json:"destination"`
	OriginCountry      string `json:"origin_country"`
	DestinationCountry string `json:"destination_country"`
	ContainerType      string `json:"container_type"`
	ContainerCount     string `json:"container_count"`
	Commodity          string `json:"commodity"`
	Weight             string `json:"weight"`
	Volume             string `json:"volume"`
	ShipmentType       string `json:"shipment_type"` // "FCL", "LCL", or ""
	ShipmentDate       string `json:"shipment_date"`
	Incoterm           string `json:"incoterm"`
}

// ContactInformation holds contact fields of an extraction.
type ContactInformation struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Whatsapp string `json:"whatsapp"`
	Company string `json:"company"`
}

// TimelineInformation holds timeline fields of an extraction.
type TimelineInformation struct {
	RequestedDates string `json:"requested_dates"`
	TransitTime    string `json:"transit_time"`
	Urgency        string `json:"urgency"`
	Deadline       string `json:"deadline"`
}

// Extraction is the nested, fixed-category structured record produced by
// the extractor agent and folded into a thread's cumulative view by the
// merge engine.
type Extraction struct {
	ShipmentDetails      ShipmentDetails      `json:"shipment_details"`
	ContactInformation   ContactInformation   `json:"contact_information"`
	TimelineInformation  TimelineInformation  `json:"timeline_information"`
	SpecialRequirements  []string             `json:"special_requirements"`
	RateInformation      map[string]string    `json:"rate_information"`
	AdditionalNotes      string               `json:"additional_notes"`
}

// EmailEntry is a single timestamped element of a thread.
type EmailEntry struct {
	ID           string            `json:"id"`
	Sender       string            `json:"sender"`
	Direction    string            `json:"direction"` // "inbound" or "outbound"
	Subject      string            `json:"subject"`
	Content      string            `json:"content"`
	ExtractedData *Extraction      `json:"extracted_data,omitempty"`
	ResponseType string            `json:"response_type,omitempty"`
	BotResponse  map[string]any    `json:"bot_response,omitempty"`
	WorkflowID   string            `json:"workflow_id"`
	Timestamp    time.Time         `json:"timestamp"`
}

// ThreadData is the per-thread aggregate persisted by a Store.
type ThreadData struct {
	ThreadID             string            `json:"thread_id"`
	Emails               []EmailEntry      `json:"emails"`
	CumulativeExtraction Extraction        `json:"cumulative_extraction"`
	LastUpdated          time.Time         `json:"last_updated"`
	CustomerContext      map[string]any    `json:"customer_context"`
	ForwarderContext     map[string]any    `json:"forwarder_context"`
	ConversationState    string            `json:"conversation_state"`
	TotalEmails          int               `json:"total_emails"`
}

// conversationState tags, derived by the turn committer from the chosen
// next action and the sender direction.
const (
	ConversationStateNewThread     = "new_thread"
	ConversationStateCustomerInit  = "customer_initial_request"
	conversationStateCustomerPrefix = "customer_"
	conversationStateBotPrefix      = "bot_"
)

// NextConversationState derives the ConversationState tag for a thread
// after appending an entry tagged with responseType and direction, per
// ThreadData's documented vocabulary (new_thread, customer_initial_request,
// customer_<response-type>, bot_<response-type>).
func NextConversationState(priorState string, direction string, responseType string) string {
	if responseType == "" {
		if priorState == "" {
			return ConversationStateNewThread
		}
		return priorState
	}
	if direction == "inbound" {
		if priorState == "" || priorState == ConversationStateNewThread {
			return ConversationStateCustomerInit
		}
		return conversationStateCustomerPrefix + responseType
	}
	return conversationStateBotPrefix + responseType
}
