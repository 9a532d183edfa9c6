// Package prover invokes the external proving collaborator. The proving
// engine itself is opaque to this system: it consumes a validated request
// and returns an artifact whose public outputs the binding checker
// cross-checks before anything is relayed onward.
package prover

import (
	"context"
	"errors"

	"github.com/typeproof/typeproof/internal/binding"
	"github.com/typeproof/typeproof/internal/validator"
)

// ErrProve wraps any non-success proving outcome. It is the one error
// category a caller may retry, since the cause can be transient resource
// exhaustion rather than bad input.
var ErrProve = errors.New("prover: proving failed")

// Prover is a long-running, cancellable, single-shot call per submission.
// Implementations must be safe for concurrent use; each submission carries
// its own request and artifact with no shared state in between.
type Prover interface {
	Prove(ctx context.Context, req *validator.ProofRequest) (*binding.Artifact, error)
}
