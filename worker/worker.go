package worker

import (
	"runtime"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
)

// Pool runs submitted tasks on a fixed set of goroutines. A task that panics is reported to sentry
// and does not take its worker down.
type Pool struct {
	queue   chan func()
	workers sync.WaitGroup
	close   sync.Once

	// OnPanic, if set, is called with the recovered value of a panicking task.
	OnPanic func(v any)
}

// New starts a pool with n workers, or one per CPU if n is not positive.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p := &Pool{queue: make(chan func(), n)}
	p.workers.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.workers.Done()
	for f := range p.queue {
		p.exec(f)
	}
}

func (p *Pool) exec(f func()) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		hub := sentry.CurrentHub().Clone()
		hub.Recover(v)
		hub.Flush(2 * time.Second)
		if p.OnPanic != nil {
			p.OnPanic(v)
		}
	}()
	f()
}

// Submit queues f. It blocks while every worker is busy and the queue is full.
func (p *Pool) Submit(f func()) {
	p.queue <- f
}

// Close stops accepting tasks and waits for queued ones to finish.
func (p *Pool) Close() {
	p.close.Do(func() {
		close(p.queue)
	})
	p.workers.Wait()
}

// Group is a set of tasks submitted to a pool that can be waited on together.
type Group struct {
	p  *Pool
	wg sync.WaitGroup
}

func (p *Pool) Group() *Group {
	return &Group{p: p}
}

// Go submits f as part of the group.
func (g *Group) Go(f func()) {
	g.wg.Add(1)
	g.p.Submit(func() {
		defer g.wg.Done()
		f()
	})
}

// Wait blocks until every task of the group has returned or panicked.
func (g *Group) Wait() {
	g.wg.Wait()
}
