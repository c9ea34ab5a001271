package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
)

// wrapStorage classifies a storage failure. Timeouts and connection-level
// failures become TransientError so callers can apply their retry budget;
// everything else is wrapped as-is and treated as fatal for the request.
func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		errors.As(err, &netErr):
		return &domain.TransientError{Op: op, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}
