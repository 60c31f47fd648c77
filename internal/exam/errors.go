package exam

import (
	"errors"
	"fmt"
)

// ErrContentGenerationFailed wraps a generation request that errored or
// returned unparseable content. The session reverts to setup; the caller
// surfaces a retryable message.
var ErrContentGenerationFailed = errors.New("content generation failed")

// ErrInvalidTransition reports an operation invoked from a phase that does
// not permit it. A caller bug; returned loudly rather than ignored.
type ErrInvalidTransition struct {
	Op   string
	From Phase
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid transition: %s from phase %s", e.Op, e.From)
}
