// Package assistant defines the chat panel's external collaborator: something
// that turns a query plus the current selection into a reply. The default
// implementation is a canned, fixed-delay responder; real inference clients
// plug in behind the same interface.
package assistant

import (
	"context"
	"errors"

	"github.com/longevitylab/gerograph/internal/gaps"
	"github.com/longevitylab/gerograph/internal/graph"
)

var (
	// ErrNetwork marks a failure reaching the assistant backend.
	ErrNetwork = errors.New("assistant: network error")
	// ErrTimeout marks a reply that did not arrive in time.
	ErrTimeout = errors.New("assistant: timed out")
)

// QueryContext carries the submitted text and whichever of node/gap is
// currently selected. At most one of SelectedNode/SelectedGap is non-nil.
type QueryContext struct {
	SelectedNode *graph.Node
	SelectedGap  *gaps.HypothesisGap
	Text         string
}

type Assistant interface {
	SubmitQuery(ctx context.Context, qc QueryContext) (string, error)
}
