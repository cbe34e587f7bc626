package session

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownMode         = errors.New("unknown interaction mode")
	ErrSelfTarget          = errors.New("initiator and counterpart must differ")
	ErrCounterpartRequired = errors.New("counterpart is required for this mode")
	ErrScopeCapacity       = errors.New("group already has the maximum number of live sessions")
	ErrInitiatorCapacity   = errors.New("initiator already has the maximum number of live sessions")
)

// RateLimitedError rejects an admission attempted inside the cooldown
// window. RetryAfter is how long the caller should wait.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited: retry in %s", e.RetryAfter.Round(time.Second))
}
