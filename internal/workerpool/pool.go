// Package workerpool bounds how many blocking codec calls run at once.
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/bnema/plza-save-editor/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const DefaultSize = 10

var ErrPoolClosed = errors.New("worker pool closed")

// PanicError carries a panic recovered from a task.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%v: %v", domain.ErrTaskPanicked, e.Value)
}

func (e *PanicError) Unwrap() error {
	return domain.ErrTaskPanicked
}

// Pool admits at most size tasks at a time; further callers queue in FIFO
// order on the semaphore.
type Pool struct {
	size   int
	sem    *semaphore.Weighted
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ ports.Offloader = (*Pool)(nil)

func New(size int, logger *zap.Logger) (*Pool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("worker pool size must be positive, got %d", size)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pool{
		size:   size,
		sem:    semaphore.NewWeighted(int64(size)),
		logger: logger,
	}, nil
}

func (p *Pool) Size() int {
	return p.size
}

// Do runs task on a worker. When ctx ends first Do returns ctx.Err(); a task
// that was already admitted keeps running and Close waits for it.
func (p *Pool) Do(ctx context.Context, task func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrPoolClosed
	}
	p.wg.Add(1)
	p.mu.RUnlock()

	if err := p.sem.Acquire(ctx, 1); err != nil {
		p.wg.Done()
		return err
	}

	done := make(chan error, 1)
	go func() {
		defer p.wg.Done()
		defer p.sem.Release(1)
		done <- p.run(task)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		p.logger.Debug("caller stopped waiting for offloaded task", zap.Error(ctx.Err()))
		return ctx.Err()
	}
}

func (p *Pool) run(task func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("offloaded task panicked", zap.Any("panic", r))
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	return task()
}

// Close stops admitting tasks and waits for queued and running ones.
func (p *Pool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

// Run is Do for tasks that produce a value. On error the zero value is
// returned, and nothing the task writes after ctx ended is observed.
func Run[T any](ctx context.Context, o ports.Offloader, fn func() (T, error)) (T, error) {
	var out T
	err := o.Do(ctx, func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return out, nil
}
