package workerpool

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Goofygiraffe06/parewa/internal/logging"
)

// Task represents a unit of work to be executed by the pool.
// The context is cancelled when the task exceeds the pool's task timeout.
type Task func(ctx context.Context)

var (
	// ErrPoolClosed is returned when submitting to a closed pool.
	ErrPoolClosed = errors.New("worker pool closed")
	// ErrQueueFull is returned when the queue cannot take another task.
	ErrQueueFull = errors.New("worker pool queue full")
)

// Pool is a bounded worker pool executing submitted tasks.
type Pool struct {
	name        string
	size        int
	taskTimeout time.Duration
	queue       chan Task
	wg          sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// New creates a new worker pool with given size and queue capacity.
func New(name string, size, queueCap int) *Pool {
	if size <= 0 {
		size = 1
	}
	if queueCap <= 0 {
		queueCap = 1
	}
	p := &Pool{
		name:        name,
		size:        size,
		taskTimeout: 30 * time.Second,
		queue:       make(chan Task, queueCap),
	}
	p.start()
	return p
}

func (p *Pool) start() {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			for task := range p.queue {
				p.run(id, task)
			}
		}(i)
	}
}

func (p *Pool) run(id int, task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), p.taskTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			logging.ErrorLog("workerpool '%s' worker %d recovered from panic: %v", p.name, id, r)
		}
	}()
	task(ctx)
}

// Submit enqueues a task without blocking.
func (p *Pool) Submit(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.queue <- task:
		return nil
	default:
		logging.WarnLog("workerpool '%s' queue full; dropping task", p.name)
		return ErrQueueFull
	}
}

// Close stops accepting tasks, drains the queue and waits for workers, up to timeout.
func (p *Pool) Close(timeout time.Duration) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		logging.WarnLog("workerpool '%s' shutdown timed out", p.name)
	}
}
