// Package graph provides the core graph execution engine for LangGraph-Go.
package graph

import "github.com/go-faster/errors"

// ErrMaxStepsExceeded indicates that graph execution reached the maximum
// allowed step count without reaching a terminal node. This guards against
// infinite loops caused by a missing or misconfigured exit edge.
var ErrMaxStepsExceeded = errors.New("execution exceeded maximum steps limit")

// ErrUnknownNode indicates that routing referenced a node ID never
// registered via Engine.Add.
var ErrUnknownNode = errors.New("unknown node id")

// ErrNoEntryPoint indicates Run was called before StartAt configured an
// entry node.
var ErrNoEntryPoint = errors.New("no entry point configured")
