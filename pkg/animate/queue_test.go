package animate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/snaker/pkg/grid"
	"github.com/matzehuels/snaker/pkg/render"
)

func steps(n int) []render.SceneStep {
	out := make([]render.SceneStep, n)
	for i := range out {
		out[i] = render.SceneStep{PathStep: grid.PathStep{Cell: grid.Coord{X: i}}, Index: i}
	}
	return out
}

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	q.Push(steps(3)...)
	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}
	for i := range 3 {
		s, ok := q.Pop()
		if !ok || s.Index != i {
			t.Fatalf("Pop() = %d, %v; want %d", s.Index, ok, i)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("Pop() on empty queue succeeded")
	}
}

func TestQueue_CloseAndClear(t *testing.T) {
	q := NewQueue()
	q.Push(steps(4)...)
	if n := q.Clear(); n != 4 || q.Len() != 0 {
		t.Errorf("Clear() = %d, Len() = %d", n, q.Len())
	}
	q.Close()
	if !q.Closed() {
		t.Error("Closed() = false after Close")
	}
	if q.Push(steps(1)...) {
		t.Error("Push after Close succeeded")
	}
}

func TestQueue_Concurrent(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				q.Push(steps(1)...)
			}
		}()
	}
	wg.Wait()
	if q.Len() != 400 {
		t.Errorf("Len() = %d, want 400", q.Len())
	}
}

func TestDrain_InOrderUntilClosed(t *testing.T) {
	q := NewQueue()
	q.Push(steps(5)...)
	q.Close()

	var got []int
	err := Drain(context.Background(), q, time.Millisecond, func(s render.SceneStep) error {
		got = append(got, s.Index)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 {
		t.Fatalf("drained %v", got)
	}
	for i, idx := range got {
		if idx != i {
			t.Errorf("got[%d] = %d", i, idx)
		}
	}
}

func TestDrain_WaitsForProducer(t *testing.T) {
	q := NewQueue()
	go func() {
		for i := range 3 {
			time.Sleep(2 * time.Millisecond)
			q.Push(steps(i + 1)[i])
		}
		q.Close()
	}()

	n := 0
	err := Drain(context.Background(), q, time.Millisecond, func(render.SceneStep) error {
		n++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("drained %d steps, want 3", n)
	}
}

func TestDrain_ContextCancel(t *testing.T) {
	q := NewQueue() // never closed
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := Drain(ctx, q, time.Millisecond, func(render.SceneStep) error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Drain() = %v, want deadline exceeded", err)
	}
}

func TestDrain_CallbackError(t *testing.T) {
	q := NewQueue()
	q.Push(steps(3)...)
	stop := errors.New("stop")

	calls := 0
	err := Drain(context.Background(), q, time.Millisecond, func(render.SceneStep) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("Drain() = %v after %d calls", err, calls)
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}
}
