package worker

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestGroupWaitsForAllTasks(t *testing.T) {
	p := New(4)
	defer p.Close()

	var sum atomic.Int64
	g := p.Group()
	for i := 1; i <= 100; i++ {
		g.Go(func() { sum.Add(int64(i)) })
	}
	g.Wait()
	if sum.Load() != 5050 {
		t.Fatalf("expected 5050, got %d", sum.Load())
	}
}

func TestPanicIsRecovered(t *testing.T) {
	p := New(1)
	defer p.Close()

	var (
		mu        sync.Mutex
		recovered []any
	)
	p.OnPanic = func(v any) {
		mu.Lock()
		recovered = append(recovered, v)
		mu.Unlock()
	}

	g := p.Group()
	g.Go(func() { panic("boom") })
	ran := false
	g.Go(func() { ran = true })
	g.Wait()

	if !ran {
		t.Fatalf("expected the worker to survive the panic")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(recovered) != 1 || recovered[0] != "boom" {
		t.Fatalf("expected the panic to be reported, got %v", recovered)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	p := New(0)
	p.Close()
	p.Close()
}
