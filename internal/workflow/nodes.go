package workflow

import (
	"context"

	"github.com/kestrelfreight/logiflow/graph"
	"github.com/kestrelfreight/logiflow/internal/agents"
	"github.com/kestrelfreight/logiflow/internal/threadstore"
)

// request builds the common fields every collaborator call carries: email
// content, subject, sender, thread id, and thread history.
func request(s State) map[string]any {
	return map[string]any{
		"content":        s.Email.Content,
		"subject":        s.Email.Subject,
		"sender":         s.Email.Sender,
		"thread_id":      s.Email.ThreadID,
		"thread_history": s.ThreadHistory,
		"timestamp":      s.Email.ReceivedAt,
	}
}

// adapterNode builds a node for a straight-line step: call adapter, fill
// one result slot, and always advance to next. Decision points (where the
// destination depends on the slot just filled, or needs state the engine
// hasn't merged in yet) get their own constructors below instead.
func adapterNode(slotSetter func(delta *State, response Slot), adapter agents.Adapter, buildRequest func(State) map[string]any, next string) graph.Node[State] {
	return graph.NodeFunc[State](func(ctx context.Context, s State) graph.NodeResult[State] {
		response, err := adapter.Process(ctx, buildRequest(s))
		if err != nil {
			response = Slot{"error": err.Error()}
		}
		var delta State
		slotSetter(&delta, response)
		return graph.NodeResult[State]{Delta: delta, Route: graph.Goto(next)}
	})
}

// newClassifyEmailNode is routing decision 1: the destination depends on
// the sender_type this node itself just produced, so it evaluates
// RouteAfterClassification against a state reflecting its own response
// rather than waiting for the engine's merge.
//
// It is also the entry node, so it is the one that enforces the §7
// "missing input" error case: when the inbound email carries neither
// sender nor content, there is nothing for any downstream collaborator to
// act on. Rather than calling the classifier against an empty request,
// the node records its own {error: ...}, forces ShouldEscalate, and
// routes straight to the terminal node — no response is sent.
func newClassifyEmailNode(classifier agents.Adapter) graph.Node[State] {
	return graph.NodeFunc[State](func(ctx context.Context, s State) graph.NodeResult[State] {
		if s.Email.Sender == "" && s.Email.Content == "" {
			return graph.NodeResult[State]{
				Delta: State{
					Classification: Slot{"error": "missing email data: no sender or content"},
					ShouldEscalate: true,
				},
				Route: graph.Goto(NodeUpdateThread),
			}
		}

		response, err := classifier.Process(ctx, request(s))
		if err != nil {
			response = Slot{"error": err.Error()}
		}
		lookahead := s
		lookahead.Classification = response
		return graph.NodeResult[State]{
			Delta: State{Classification: response},
			Route: graph.Goto(RouteAfterClassification(lookahead)),
		}
	})
}

func newConversationStateNode(adapter agents.Adapter) graph.Node[State] {
	return adapterNode(func(d *State, r Slot) { d.ConversationState = r }, adapter, func(s State) map[string]any {
		req := request(s)
		req["cumulative_extraction"] = s.CumulativeAtTurnStart
		req["customer_context"] = s.CustomerContext
		req["forwarder_context"] = s.ForwarderContext
		return req
	}, NodeAnalyzeThread)
}

func newAnalyzeThreadNode(adapter agents.Adapter) graph.Node[State] {
	return adapterNode(func(d *State, r Slot) { d.ThreadAnalysis = r }, adapter, func(s State) map[string]any {
		req := request(s)
		req["previous_classifications"] = s.Classification
		req["customer_context"] = s.CustomerContext
		req["forwarder_context"] = s.ForwarderContext
		return req
	}, NodeExtractInformation)
}

// newExtractInformationNode calls the extractor, decodes its extracted_data
// payload, and merges it into the cumulative extraction via
// threadstore.Merge so every downstream node sees the recency-priority
// result rather than just the current email's data.
func newExtractInformationNode(extractor agents.Adapter) graph.Node[State] {
	return graph.NodeFunc[State](func(ctx context.Context, s State) graph.NodeResult[State] {
		req := request(s)
		req["prioritize_recent"] = true
		req["cumulative_extraction"] = s.CumulativeAtTurnStart

		response, err := extractor.Process(ctx, req)
		if err != nil {
			return graph.NodeResult[State]{
				Delta: State{Extraction: Slot{"error": err.Error()}},
				Route: graph.Goto(NodeLookupPorts),
			}
		}

		fresh := decodeExtraction(response["extracted_data"])
		merged := threadstore.Merge(fresh, s.CumulativeAtTurnStart)

		return graph.NodeResult[State]{
			Delta: State{
				Extraction:            response,
				CumulativeAtTurnStart: merged,
			},
			Route: graph.Goto(NodeLookupPorts),
		}
	})
}

func newLookupPortsNode(lookup agents.Adapter) graph.Node[State] {
	return graph.NodeFunc[State](func(ctx context.Context, s State) graph.NodeResult[State] {
		sd := s.CumulativeAtTurnStart.ShipmentDetails

		origin, err := lookup.Process(ctx, map[string]any{"port_name": sd.Origin})
		if err != nil {
			origin = Slot{"error": err.Error()}
		}
		destination, err := lookup.Process(ctx, map[string]any{"port_name": sd.Destination})
		if err != nil {
			destination = Slot{"error": err.Error()}
		}

		return graph.NodeResult[State]{
			Delta: State{PortLookup: Slot{"origin": origin, "destination": destination}},
			Route: graph.Goto(NodeStandardizeContainer),
		}
	})
}

func newStandardizeContainerNode(standardizer agents.Adapter) graph.Node[State] {
	return adapterNode(func(d *State, r Slot) { d.ContainerStandardization = r }, standardizer, func(s State) map[string]any {
		sd := s.CumulativeAtTurnStart.ShipmentDetails
		return map[string]any{
			"container_type":  sd.ContainerType,
			"container_count": sd.ContainerCount,
		}
	}, NodeRecommendRate)
}

func newRecommendRateNode(recommender agents.Adapter) graph.Node[State] {
	return adapterNode(func(d *State, r Slot) { d.RateRecommendation = r }, recommender, func(s State) map[string]any {
		return map[string]any{
			"shipment_details": s.CumulativeAtTurnStart.ShipmentDetails,
			"port_lookup":      s.PortLookup,
			"market_data":      s.MarketData,
		}
	}, NodeValidateData)
}

// newValidateDataNode runs both the deterministic mandatory-field
// validator (the source of truth consulted by RouteAfterSalesAssignment)
// and the LLM validator's consistency score, merging both into the
// Validation slot. It runs after lookup_ports, standardize_container, and
// recommend_rate so the enriched port-lookup result the validator needs
// is already in state.
func newValidateDataNode(validator agents.Adapter) graph.Node[State] {
	return graph.NodeFunc[State](func(ctx context.Context, s State) graph.NodeResult[State] {
		ports := portLookupResultFrom(s.PortLookup)
		ok, missing := threadstore.Validate(s.CumulativeAtTurnStart, ports)

		response, err := validator.Process(ctx, map[string]any{
			"extracted_data":   s.CumulativeAtTurnStart,
			"validation_rules": "mandatory_fields",
		})
		if err != nil {
			response = Slot{"error": err.Error()}
		}

		merged := Slot{}
		for k, v := range response {
			merged[k] = v
		}
		merged["ok"] = ok
		merged["missing_fields"] = missing

		return graph.NodeResult[State]{
			Delta: State{Validation: merged},
			Route: graph.Goto(NodeDetermineNextAction),
		}
	})
}

// newDetermineNextActionNode is routing decision 3: the destination
// depends on the next_action tag this node itself just produced.
func newDetermineNextActionNode(adapter agents.Adapter) graph.Node[State] {
	return graph.NodeFunc[State](func(ctx context.Context, s State) graph.NodeResult[State] {
		response, err := adapter.Process(ctx, map[string]any{
			"conversation_stage": str(s.ConversationState, "conversation_stage"),
			"classification":     s.Classification,
			"extracted_data":     s.CumulativeAtTurnStart,
			"confidence":         overallConfidence(s),
			"validation":         s.Validation,
			"thread_id":          s.Email.ThreadID,
			"missing_fields":     strSlice(s.Validation, "missing_fields"),
		})
		if err != nil {
			response = Slot{"error": err.Error()}
		}

		lookahead := s
		lookahead.NextAction = response
		return graph.NodeResult[State]{
			Delta: State{NextAction: response},
			Route: graph.Goto(RouteAfterNextAction(lookahead)),
		}
	})
}

// newAssignSalesPersonNode is routing decision 4, the intelligent routing
// core. Its destination depends only on slots already settled by earlier
// nodes (Validation, Classification, Extraction, ConversationState), so it
// evaluates RouteAfterSalesAssignment against the incoming state directly.
// Assignment itself is a deterministic placeholder since the CRM lookup
// that would back it is out of scope.
func newAssignSalesPersonNode() graph.Node[State] {
	return graph.NodeFunc[State](func(_ context.Context, s State) graph.NodeResult[State] {
		return graph.NodeResult[State]{
			Delta: State{AssignedSalesPerson: map[string]any{"name": "Unassigned", "queue": "general"}},
			Route: graph.Goto(RouteAfterSalesAssignment(s)),
		}
	})
}

func responseRequest(s State) map[string]any {
	return map[string]any{
		"merged_extraction":         s.CumulativeAtTurnStart,
		"customer_first_name":       s.Email.FirstName(),
		"assigned_sales_person":     s.AssignedSalesPerson,
		"port_lookup":               s.PortLookup,
		"container_standardization": s.ContainerStandardization,
		"rate_information":          s.RateRecommendation,
		"missing_fields":            strSlice(s.Validation, "missing_fields"),
	}
}

func newGenerateClarificationResponseNode(adapter agents.Adapter) graph.Node[State] {
	return adapterNode(func(d *State, r Slot) { d.ClarificationResult = r }, adapter, responseRequest, NodeUpdateThread)
}

func newGenerateConfirmationResponseNode(adapter agents.Adapter) graph.Node[State] {
	return adapterNode(func(d *State, r Slot) { d.ConfirmationResult = r }, adapter, responseRequest, NodeUpdateThread)
}

// newGenerateAcknowledgmentResponseNode is routing decision 5. The
// destination depends only on the Classification slot, already settled
// before this node runs, so it evaluates RouteAfterAcknowledgment against
// the incoming state directly.
func newGenerateAcknowledgmentResponseNode(adapter agents.Adapter) graph.Node[State] {
	return graph.NodeFunc[State](func(ctx context.Context, s State) graph.NodeResult[State] {
		response, err := adapter.Process(ctx, responseRequest(s))
		if err != nil {
			response = Slot{"error": err.Error()}
		}
		return graph.NodeResult[State]{
			Delta: State{AcknowledgmentResult: response},
			Route: graph.Goto(RouteAfterAcknowledgment(s)),
		}
	})
}

// newGenerateConfirmationAcknowledgmentNode enforces the "override to
// clarification" policy: when the validator still reports missing fields
// at this point, it records an error in its own slot instead of calling
// the generator, so the following routing decision (on its own output)
// sends the turn to update_thread without assigning forwarders.
func newGenerateConfirmationAcknowledgmentNode(adapter agents.Adapter) graph.Node[State] {
	return graph.NodeFunc[State](func(ctx context.Context, s State) graph.NodeResult[State] {
		if missing := strSlice(s.Validation, "missing_fields"); len(missing) > 0 {
			result := Slot{"error": "mandatory fields missing"}
			return graph.NodeResult[State]{
				Delta: State{ConfirmationAcknowledgmentResult: result},
				Route: graph.Goto(RouteAfterConfirmationAcknowledgment(State{ConfirmationAcknowledgmentResult: result})),
			}
		}

		response, err := adapter.Process(ctx, responseRequest(s))
		if err != nil {
			response = Slot{"error": err.Error()}
		}
		return graph.NodeResult[State]{
			Delta: State{ConfirmationAcknowledgmentResult: response},
			Route: graph.Goto(RouteAfterConfirmationAcknowledgment(State{ConfirmationAcknowledgmentResult: response})),
		}
	})
}

func newDetectForwarderNode(detector agents.Adapter) graph.Node[State] {
	return adapterNode(func(d *State, r Slot) { d.ForwarderDetectionResult = r }, detector, func(s State) map[string]any {
		return map[string]any{
			"sender_type":       str(s.Classification, "sender_type"),
			"forwarder_context": s.ForwarderContext,
		}
	}, NodeAssignForwarders)
}

// newAssignForwardersNode selects a forwarder deterministically per the
// §4.8 country-matching policy (core orchestrator logic, not a
// collaborator internal), then hands the selection to the drafting
// adapter to produce the outbound rate-request payload. On no match it
// records the deterministic "no forwarder available" result itself,
// without calling the adapter at all, and the turn still commits.
func newAssignForwardersNode(drafter agents.Adapter) graph.Node[State] {
	return graph.NodeFunc[State](func(ctx context.Context, s State) graph.NodeResult[State] {
		sd := s.CumulativeAtTurnStart.ShipmentDetails
		registry := forwarderRegistryFrom(s.ForwarderContext)
		forwarder, ok := assignForwarderForRoute(registry, sd.OriginCountry, sd.DestinationCountry)
		if !ok {
			return graph.NodeResult[State]{
				Delta: State{ForwarderAssignmentResult: Slot{"error": "no forwarder available"}},
				Route: graph.Goto(NodeUpdateThread),
			}
		}

		response, err := drafter.Process(ctx, map[string]any{
			"shipment_details": sd,
			"assigned_forwarder": map[string]any{
				"name":     forwarder.Name,
				"country":  forwarder.Country,
				"operator": forwarder.Operator,
				"email":    forwarder.Email,
				"company":  forwarder.Company,
			},
		})
		if err != nil {
			response = Slot{"error": err.Error()}
		}
		if response == nil {
			response = Slot{}
		}
		response["assigned_forwarder"] = forwarder.Name
		response["assigned_forwarder_country"] = forwarder.Country

		return graph.NodeResult[State]{
			Delta: State{ForwarderAssignmentResult: response},
			Route: graph.Goto(NodeUpdateThread),
		}
	})
}

func newProcessForwarderResponseNode(processor agents.Adapter) graph.Node[State] {
	return adapterNode(func(d *State, r Slot) { d.ForwarderResponseResult = r }, processor, func(s State) map[string]any {
		return map[string]any{
			"content":          s.Email.Content,
			"rate_information": s.CumulativeAtTurnStart.RateInformation,
		}
	}, NodeNotifySales)
}

// newNotifySalesNode's follow-up destination depends on
// ForwarderResponseResult, which was set by the earlier
// process_forwarder_response node and is already present in the incoming
// state, so it evaluates RouteAfterNotifySales directly.
func newNotifySalesNode(notifier agents.Adapter) graph.Node[State] {
	return graph.NodeFunc[State](func(ctx context.Context, s State) graph.NodeResult[State] {
		response, err := notifier.Process(ctx, map[string]any{
			"notification_type":  "forwarder_response",
			"customer_details":   s.CumulativeAtTurnStart.ContactInformation,
			"shipment_details":   s.CumulativeAtTurnStart.ShipmentDetails,
			"forwarder_rates":    s.ForwarderResponseResult,
			"timeline":           s.CumulativeAtTurnStart.TimelineInformation,
			"conversation_state": s.ConversationState,
			"thread_id":          s.Email.ThreadID,
			"urgency":            s.CumulativeAtTurnStart.TimelineInformation.Urgency,
		})
		if err != nil {
			response = Slot{"error": err.Error()}
		}
		return graph.NodeResult[State]{
			Delta: State{SalesNotificationResult: response},
			Route: graph.Goto(RouteAfterNotifySales(s)),
		}
	})
}

func newGenerateCustomerQuoteNode(adapter agents.Adapter) graph.Node[State] {
	return adapterNode(func(d *State, r Slot) { d.CustomerQuoteResult = r }, adapter, responseRequest, NodeUpdateThread)
}

// decodeExtraction converts the loosely-typed extracted_data payload a
// collaborator returns into a threadstore.Extraction. A map decode failure
// (wrong shape, missing keys) yields a zero-value Extraction rather than an
// error: the merge engine treats a zero extraction as "no update."
func decodeExtraction(raw any) threadstore.Extraction {
	m, ok := raw.(map[string]any)
	if !ok {
		return threadstore.Extraction{}
	}

	var ex threadstore.Extraction
	ex.ShipmentDetails = threadstore.ShipmentDetails{
		Origin:             stringField(m, "origin"),
		Destination:        stringField(m, "destination"),
		OriginCountry:      stringField(m, "origin_country"),
		DestinationCountry: stringField(m, "destination_country"),
		ContainerType:      stringField(m, "container_type"),
		ContainerCount:     stringField(m, "container_count"),
		Commodity:          stringField(m, "commodity"),
		Weight:             stringField(m, "weight"),
		Volume:             stringField(m, "volume"),
		ShipmentType:       stringField(m, "shipment_type"),
		ShipmentDate:       stringField(m, "shipment_date"),
		Incoterm:           stringField(m, "incoterm"),
	}
	ex.ContactInformation = threadstore.ContactInformation{
		Name:     stringField(m, "name"),
		Email:    stringField(m, "email"),
		Phone:    stringField(m, "phone"),
		Whatsapp: stringField(m, "whatsapp"),
		Company:  stringField(m, "company"),
	}
	ex.TimelineInformation = threadstore.TimelineInformation{
		RequestedDates: stringField(m, "requested_dates"),
		TransitTime:    stringField(m, "transit_time"),
		Urgency:        stringField(m, "urgency"),
		Deadline:       stringField(m, "deadline"),
	}
	ex.SpecialRequirements = strSliceAny(m["special_requirements"])
	ex.AdditionalNotes = stringField(m, "additional_notes")
	if rates, ok := m["rate_information"].(map[string]any); ok {
		ex.RateInformation = make(map[string]string, len(rates))
		for k, v := range rates {
			if s, ok := v.(string); ok {
				ex.RateInformation[k] = s
			}
		}
	}
	return ex
}

func stringField(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func strSliceAny(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// portLookupResultFrom decodes the PortLookup slot's {"origin": ...,
// "destination": ...} shape into threadstore.PortLookupResult for Validate.
func portLookupResultFrom(slot Slot) threadstore.PortLookupResult {
	return threadstore.PortLookupResult{
		Origin:      portInfoFrom(slot["origin"]),
		Destination: portInfoFrom(slot["destination"]),
	}
}

func portInfoFrom(v any) *threadstore.PortInfo {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	isCountry, _ := m["is_country"].(bool)
	return &threadstore.PortInfo{
		PortName:  stringField(m, "port_name"),
		PortCode:  stringField(m, "port_code"),
		Country:   stringField(m, "country"),
		IsCountry: isCountry,
	}
}
