package repoerrs

import (
	"errors"
	"fmt"
)

// ErrStorage marks persistence-layer faults: connectivity, constraint
// violations, scan failures.
var ErrStorage = errors.New("storage error")

func Storage(err error) error {
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
