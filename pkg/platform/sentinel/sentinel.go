package sentinel

import "errors"

// Infrastructure facts reported by stores and sinks. Services translate them
// into coded errors from pkg/domain-errors; handlers never see them directly.
//
//   - ErrNotFound: the row or key does not exist
//   - ErrConflict: a write lost against a concurrent write
//   - ErrUnavailable: the backing service could not be reached
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
