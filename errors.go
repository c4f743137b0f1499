package normalizer

import (
	"errors"
	"fmt"
)

// ErrUnresolvedMarker matches UnresolvedMarkerError with errors.Is
var ErrUnresolvedMarker = errors.New("normalizer: unresolved marker")

// UnresolvedMarkerError reports a marker without registered module
type UnresolvedMarkerError struct {
	Marker string
}

func (e *UnresolvedMarkerError) Error() string {
	return fmt.Sprintf("normalizer: no module %q found", e.Marker)
}

// Is returns true for ErrUnresolvedMarker
func (e *UnresolvedMarkerError) Is(target error) bool {
	return target == ErrUnresolvedMarker
}
