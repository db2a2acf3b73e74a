package workflow

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/kestrelfreight/logiflow/graph"
	"github.com/kestrelfreight/logiflow/internal/ids"
	"github.com/kestrelfreight/logiflow/internal/threadlock"
	"github.com/kestrelfreight/logiflow/internal/threadstore"
)

// Result is process_email's return shape: a workflow id, the thread id
// the turn was recorded against, a status, and the final turn state.
type Result struct {
	WorkflowID string
	ThreadID   string
	Status     string // "completed" or "failed"
	State      State
}

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Orchestrator is the sole entry point: it normalizes an inbound email,
// acquires the thread's logical lock, loads history, runs the graph
// engine, and returns a status together with whatever slots were filled.
type Orchestrator struct {
	engine *graph.Engine[State]
	store  threadstore.Store
	locks  *threadlock.Locker
	now    func() time.Time
}

// NewOrchestrator builds an Orchestrator around a pre-wired graph engine
// (see NewOrchestratorGraph) and the same thread store the engine's
// update_thread node commits to.
func NewOrchestrator(engine *graph.Engine[State], store threadstore.Store, now func() time.Time) *Orchestrator {
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{engine: engine, store: store, locks: threadlock.New(), now: now}
}

// ProcessEmail normalizes fields, synthesizes a thread id when none is
// given, serializes turns for the same thread via the per-thread lock,
// loads prior thread state, and drives it through the graph engine.
//
// Grounded on langgraph_workflow_orchestrator.py::process_email.
func (o *Orchestrator) ProcessEmail(ctx context.Context, fields map[string]string) (Result, error) {
	now := o.now()
	email := NormalizeEmail(fields, now)
	workflowID := ids.NewWorkflowID(now)

	o.locks.Lock(email.ThreadID)
	defer o.locks.Unlock(email.ThreadID)

	thread, err := o.store.Load(ctx, email.ThreadID)
	if err != nil && !errors.Is(err, threadstore.ErrNotFound) {
		return Result{WorkflowID: workflowID, ThreadID: email.ThreadID, Status: StatusFailed}, err
	}

	initial := State{
		Email:                 email,
		ThreadHistory:         thread.Emails,
		CustomerContext:       thread.CustomerContext,
		ForwarderContext:      thread.ForwarderContext,
		CumulativeAtTurnStart: thread.CumulativeExtraction,
	}

	final, runErr := o.engine.Run(ctx, workflowID, initial)
	if runErr != nil {
		return Result{
			WorkflowID: workflowID,
			ThreadID:   email.ThreadID,
			Status:     StatusFailed,
			State:      final,
		}, runErr
	}

	return Result{
		WorkflowID: workflowID,
		ThreadID:   email.ThreadID,
		Status:     StatusCompleted,
		State:      final,
	}, nil
}
