package workflow

import (
	"time"

	"github.com/kestrelfreight/logiflow/graph"
	"github.com/kestrelfreight/logiflow/graph/emit"
	"github.com/kestrelfreight/logiflow/internal/agents"
	"github.com/kestrelfreight/logiflow/internal/threadstore"
)

// Collaborators names the one adapter per external collaborator the
// orchestrator wires into the graph. Non-LLM adapters (port lookup,
// container standardization) are typically long-lived, cache-holding
// values; LLM-backed ones are thin wrappers around a shared ChatModel.
type Collaborators struct {
	Classifier                          agents.Adapter
	ConversationState                   agents.Adapter
	ThreadAnalyzer                      agents.Adapter
	Extractor                           agents.Adapter
	Validator                           agents.Adapter
	PortLookup                          agents.Adapter
	ContainerStandardizer               agents.Adapter
	RateRecommender                     agents.Adapter
	NextAction                          agents.Adapter
	ClarificationResponder              agents.Adapter
	ConfirmationResponder               agents.Adapter
	AcknowledgmentResponder             agents.Adapter
	ConfirmationAcknowledgmentResponder agents.Adapter
	ForwarderDetector                   agents.Adapter
	ForwarderAssigner                   agents.Adapter
	ForwarderResponseProcessor          agents.Adapter
	SalesNotifier                       agents.Adapter
	CustomerQuoteResponder              agents.Adapter
}

// EngineOptions configures NewOrchestratorGraph beyond the collaborator
// set: the thread store, the clock (for deterministic tests), the
// emitter, metrics, and the step budget.
type EngineOptions struct {
	Store    threadstore.Store
	Now      func() time.Time
	Emitter  emit.Emitter
	Metrics  *graph.PrometheusMetrics
	MaxSteps int
}

// NewOrchestratorGraph wires the twenty named processing steps into a
// graph.Engine[State]. Every node sets its own explicit route (via
// graph.Goto/graph.Stop) rather than relying on Engine.Connect: the
// router's decision functions return destination node ids directly
// (graph.Predicate is a boolean gate suited to independent conditional
// edges, not a multi-way dispatch), so each decision node evaluates its
// router function inline and returns the result as an explicit Route.
func NewOrchestratorGraph(collaborators Collaborators, opts EngineOptions) (*graph.Engine[State], error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	engineOpts := []graph.Option{}
	if opts.MaxSteps > 0 {
		engineOpts = append(engineOpts, graph.WithMaxSteps(opts.MaxSteps))
	}
	if opts.Metrics != nil {
		engineOpts = append(engineOpts, graph.WithMetrics(opts.Metrics))
	}

	engine, err := graph.New[State](Reduce, opts.Emitter, engineOpts...)
	if err != nil {
		return nil, err
	}

	engine.
		Add(NodeClassifyEmail, newClassifyEmailNode(collaborators.Classifier)).
		Add(NodeConversationState, newConversationStateNode(collaborators.ConversationState)).
		Add(NodeAnalyzeThread, newAnalyzeThreadNode(collaborators.ThreadAnalyzer)).
		Add(NodeExtractInformation, newExtractInformationNode(collaborators.Extractor)).
		Add(NodeLookupPorts, newLookupPortsNode(collaborators.PortLookup)).
		Add(NodeStandardizeContainer, newStandardizeContainerNode(collaborators.ContainerStandardizer)).
		Add(NodeRecommendRate, newRecommendRateNode(collaborators.RateRecommender)).
		Add(NodeValidateData, newValidateDataNode(collaborators.Validator)).
		Add(NodeDetermineNextAction, newDetermineNextActionNode(collaborators.NextAction)).
		Add(NodeAssignSalesPerson, newAssignSalesPersonNode()).
		Add(NodeGenerateClarificationResponse, newGenerateClarificationResponseNode(collaborators.ClarificationResponder)).
		Add(NodeGenerateConfirmationResponse, newGenerateConfirmationResponseNode(collaborators.ConfirmationResponder)).
		Add(NodeGenerateAcknowledgmentResponse, newGenerateAcknowledgmentResponseNode(collaborators.AcknowledgmentResponder)).
		Add(NodeGenerateConfirmationAcknowledgment, newGenerateConfirmationAcknowledgmentNode(collaborators.ConfirmationAcknowledgmentResponder)).
		Add(NodeDetectForwarder, newDetectForwarderNode(collaborators.ForwarderDetector)).
		Add(NodeAssignForwarders, newAssignForwardersNode(collaborators.ForwarderAssigner)).
		Add(NodeProcessForwarderResponse, newProcessForwarderResponseNode(collaborators.ForwarderResponseProcessor)).
		Add(NodeNotifySales, newNotifySalesNode(collaborators.SalesNotifier)).
		Add(NodeGenerateCustomerQuote, newGenerateCustomerQuoteNode(collaborators.CustomerQuoteResponder)).
		Add(NodeUpdateThread, newUpdateThreadNode(opts.Store, now)).
		StartAt(NodeClassifyEmail)

	if err := engine.ValidateManifest(edgeManifest); err != nil {
		return nil, err
	}

	return engine, nil
}
