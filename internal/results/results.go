// Package results carries the generic success/failure envelope service
// operations return. Business failures travel in the Failure payload; Go
// errors are reserved for infrastructure problems.
package results

// OperationResult holds either a success or a failure payload. Both nil is a
// legal zero value for operations aborted before producing an outcome.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// Success wraps a success payload.
func Success[S any, F any](payload S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &payload}
}

// Failure wraps a failure payload.
func Failure[S any, F any](payload F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &payload}
}

func (r OperationResult[S, F]) IsSuccess() bool { return r.Success != nil }

func (r OperationResult[S, F]) IsFailure() bool { return r.Failure != nil }
