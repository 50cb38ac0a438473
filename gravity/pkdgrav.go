package gravity

import (
	"errors"

	"github.com/astrokit/snappot/snap"
)

// ErrNotImplemented is returned when the pkdgrav backend is selected. The
// external tree-code invocation has never been wired up.
var ErrNotImplemented = errors.New("gravity: pkdgrav backend is not implemented")

// PKDGrav is a placeholder for an external tree-code gravity solver. It
// fails before any computation is attempted.
type PKDGrav struct{}

func (p *PKDGrav) Compute(e *snap.Ensemble, points []Vec) ([]float64, []Vec, error) {
	return nil, nil, ErrNotImplemented
}
