// Package pool provides a fixed-size worker pool with a bounded task queue.
//
// Tasks are independent closures executed exactly once by exactly one
// worker. The queue is bounded so a fast producer is back-pressured instead
// of buffering unbounded work, and a panicking task is contained so one bad
// unit of work cannot take the pool down.
package pool

import (
	"fmt"
	"os"
	"runtime"
	"sync"
)

const (
	// defaultWorkers is used when the hardware parallelism cannot be
	// determined.
	defaultWorkers = 8

	// queueMultiplier sizes the task queue relative to the worker count.
	queueMultiplier = 4
)

// Task is a unit of work. It captures its inputs by value and is invoked
// exactly once.
type Task func()

// Logger receives reports of task faults. Optional: a nil logger sends
// fault reports to stderr.
type Logger interface {
	Errorf(format string, args ...any)
}

// Pool is a fixed set of worker goroutines consuming tasks from one shared
// bounded queue.
type Pool struct {
	tasks  chan Task
	wg     sync.WaitGroup
	logger Logger
}

// New creates a pool of n workers with a queue holding n*queueMultiplier
// pending tasks. It panics if n is not positive: the worker count is a
// caller bug, not a runtime condition.
func New(n int) *Pool {
	return NewWithLogger(n, nil)
}

// NewWithLogger is New with a destination for task fault reports.
func NewWithLogger(n int, logger Logger) *Pool {
	if n <= 0 {
		panic(fmt.Sprintf("pool: worker count must be positive, got %d", n))
	}

	p := &Pool{
		tasks:  make(chan Task, n*queueMultiplier),
		logger: logger,
	}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// AllCores creates a pool with one worker per available CPU, falling back
// to defaultWorkers if the count cannot be determined.
func AllCores() *Pool {
	return AllCoresWithLogger(nil)
}

// AllCoresWithLogger is AllCores with a destination for task fault reports.
func AllCoresWithLogger(logger Logger) *Pool {
	n := runtime.NumCPU()
	if n < 1 {
		n = defaultWorkers
	}
	return NewWithLogger(n, logger)
}

// Execute queues a task, blocking the caller while the queue is full. Work
// is never dropped. Calling Execute after Wait panics: the pool is not
// reusable.
func (p *Pool) Execute(task Task) {
	p.tasks <- task
}

// Wait closes the submission side, lets the workers drain the queue, and
// joins them. Every task submitted before Wait has run to completion or
// isolated failure when it returns.
func (p *Pool) Wait() {
	close(p.tasks)
	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

// run executes one task, containing any panic so the worker survives to
// pull the next one.
func (p *Pool) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.fault(r)
		}
	}()
	task()
}

func (p *Pool) fault(r any) {
	if p.logger != nil {
		p.logger.Errorf("worker caught a panic in a task: %v", r)
		return
	}
	fmt.Fprintf(os.Stderr, "worker caught a panic in a task: %v\n", r)
}
