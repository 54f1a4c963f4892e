// Package charapi defines the charity evaluation collaborator.
//
// The pipeline treats evaluation as a black box behind the Evaluator
// interface; the bundled implementation is a mock with placeholder scoring.
// A missing or failed evaluation means "no data", never an error for the
// caller.
package charapi

import "context"

// Evaluator scores a payee. Implementations must be safe for sequential
// reuse across payees within a run.
type Evaluator interface {
	// Evaluate returns the evaluation for one payee identifier.
	Evaluate(ctx context.Context, payeeID string) (*Evaluation, error)

	// BatchEvaluate evaluates many payees. Failed lookups are simply absent
	// from the returned map.
	BatchEvaluate(ctx context.Context, payeeIDs []string) (map[string]*Evaluation, error)
}
