package ports

import "context"

// Offloader runs blocking work on a bounded set of workers. Do returns the
// task's error, or ctx.Err() if the caller stops waiting first; a task that
// already started always runs to completion.
type Offloader interface {
	Do(ctx context.Context, task func() error) error
}
