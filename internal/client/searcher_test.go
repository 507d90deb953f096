package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/usecase"
	"github.com/DRSN-tech/price-compare/pkg/logger"
)

// controlledComparison отвечает на запрос только после release(query).
type controlledComparison struct {
	mu      sync.Mutex
	release map[string]chan error
	started chan string
}

func newControlledComparison() *controlledComparison {
	return &controlledComparison{
		release: make(map[string]chan error),
		started: make(chan string, 10),
	}
}

func (c *controlledComparison) gate(query string) chan error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch, ok := c.release[query]
	if !ok {
		ch = make(chan error, 1)
		c.release[query] = ch
	}

	return ch
}

func (c *controlledComparison) Compare(ctx context.Context, req *usecase.CompareReq) (*usecase.CompareRes, error) {
	gate := c.gate(req.Query)
	c.started <- req.Query

	// ответ приходит даже после отмены, чтобы проверить отбрасывание устаревших ответов
	err := <-gate
	if err != nil {
		return nil, err
	}

	return usecase.NewCompareRes(req.Query, nil, req.Session.IsGuest(), false), nil
}

func (c *controlledComparison) ProductSeries(context.Context, *usecase.ProductSeriesReq) (*usecase.ProductSeriesRes, error) {
	return nil, errors.New("not used")
}

func waitStarted(t *testing.T, c *controlledComparison, query string) {
	t.Helper()

	select {
	case got := <-c.started:
		if got != query {
			t.Fatalf("started %q, want %q", got, query)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("search %q did not start", query)
	}
}

func TestSearcher_Lifecycle(t *testing.T) {
	uc := newControlledComparison()

	var (
		mu     sync.Mutex
		states []State
	)
	s := NewSearcher(uc, logger.NewNopLogger(), func(snap Snapshot) {
		mu.Lock()
		states = append(states, snap.State)
		mu.Unlock()
	})

	if s.Snapshot().State != StateIdle {
		t.Fatalf("initial state = %v, want idle", s.Snapshot().State)
	}

	gen := s.Submit(context.Background(), nil, "milk")
	if snap := s.Snapshot(); snap.State != StateLoading || snap.Generation != gen || snap.Result != nil {
		t.Fatalf("unexpected snapshot after submit: %+v", snap)
	}

	waitStarted(t, uc, "milk")
	uc.gate("milk") <- nil
	s.Wait()

	snap := s.Snapshot()
	if snap.State != StateResults || snap.Result == nil || snap.Result.Query != "milk" {
		t.Fatalf("unexpected snapshot after response: %+v", snap)
	}

	uc.gate("bread") <- errors.New("upstream down")
	s.Submit(context.Background(), domain.NewSession("tok", "", nil), "bread")
	waitStarted(t, uc, "bread")
	s.Wait()

	snap = s.Snapshot()
	if snap.State != StateError || snap.Err == nil || snap.Result != nil {
		t.Fatalf("unexpected snapshot after failure: %+v", snap)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []State{StateLoading, StateResults, StateLoading, StateError}
	if len(states) != len(want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("states[%d] = %v, want %v", i, states[i], want[i])
		}
	}
}

func TestSearcher_DropsStaleResponse(t *testing.T) {
	uc := newControlledComparison()
	s := NewSearcher(uc, logger.NewNopLogger(), nil)

	first := s.Submit(context.Background(), nil, "mil")
	waitStarted(t, uc, "mil")

	second := s.Submit(context.Background(), nil, "milk")
	waitStarted(t, uc, "milk")

	if second <= first {
		t.Fatalf("generation must grow: first %d, second %d", first, second)
	}

	// новый ответ приходит раньше старого
	uc.gate("milk") <- nil
	uc.gate("mil") <- nil
	s.Wait()

	snap := s.Snapshot()
	if snap.Generation != second || snap.Result == nil || snap.Result.Query != "milk" {
		t.Errorf("stale response was applied: %+v", snap)
	}
}

func TestSearcher_SubmitCancelsPrevious(t *testing.T) {
	var canceled sync.WaitGroup
	canceled.Add(1)
	cancelAware := &cancelAwareComparison{onCancel: canceled.Done}

	s := NewSearcher(cancelAware, logger.NewNopLogger(), nil)
	s.Submit(context.Background(), nil, "first")
	s.Submit(context.Background(), nil, "second")

	done := make(chan struct{})
	go func() {
		canceled.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("previous request was not cancelled")
	}

	s.Cancel()
	s.Wait()

	if snap := s.Snapshot(); snap.Query != "second" || snap.State != StateError {
		t.Errorf("unexpected snapshot after cancel: %+v", snap)
	}
}

// cancelAwareComparison блокируется до отмены контекста.
type cancelAwareComparison struct {
	once     sync.Once
	onCancel func()
}

func (c *cancelAwareComparison) Compare(ctx context.Context, req *usecase.CompareReq) (*usecase.CompareRes, error) {
	<-ctx.Done()
	if req.Query == "first" {
		c.once.Do(c.onCancel)
	}

	return nil, ctx.Err()
}

func (c *cancelAwareComparison) ProductSeries(context.Context, *usecase.ProductSeriesReq) (*usecase.ProductSeriesRes, error) {
	return nil, errors.New("not used")
}
