package worker

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/ChronoFarm_Go/internal/logger"
)

// BaseWorker tracks in-flight background tasks so they can be cancelled and
// awaited on shutdown
type BaseWorker struct {
	mu       sync.Mutex
	tasks    map[uuid.UUID]context.CancelFunc
	shutdown chan struct{}
	closed   bool
	wg       sync.WaitGroup
}

func (w *BaseWorker) init() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.tasks == nil {
		w.tasks = make(map[uuid.UUID]context.CancelFunc)
	}
	if w.shutdown == nil {
		w.shutdown = make(chan struct{})
	}
}

// spawn runs fn in a tracked goroutine. The context handed to fn keeps the
// caller's values but not its cancellation, and is cancelled on shutdown.
func (w *BaseWorker) spawn(ctx context.Context, fn func(ctx context.Context)) bool {
	w.init()
	taskCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	id := uuid.New()

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		cancel()
		return false
	}
	w.tasks[id] = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		defer w.removeTask(id)
		fn(taskCtx)
	}()
	return true
}

func (w *BaseWorker) removeTask(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if cancel, ok := w.tasks[id]; ok {
		cancel()
		delete(w.tasks, id)
	}
}

// InFlight returns the number of running tasks
func (w *BaseWorker) InFlight() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.tasks)
}

func (w *BaseWorker) shutdownInternal(ctx context.Context, workerName string) error {
	w.init()
	log := logger.FromContext(ctx)
	log.Info("Shutting down " + workerName)

	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.shutdown)
	}
	for id, cancel := range w.tasks {
		cancel()
		log.Info("Cancelled in-flight "+workerName+" task", "taskID", id)
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(workerName + " shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn(workerName + " shutdown timeout")
		return ctx.Err()
	}
}
