package client

import (
	"context"
	"sync"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/usecase"
	"github.com/DRSN-tech/price-compare/pkg/logger"
)

// State — состояние поиска.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateResults
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateResults:
		return "results"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot — состояние поиска на момент изменения.
type Snapshot struct {
	State      State
	Generation uint64
	Query      string
	Result     *usecase.CompareRes
	Err        error
}

// Searcher выполняет не более одного поиска одновременно.
// Каждый запрос получает номер поколения; новый запрос отменяет предыдущий,
// а ответ применяется, только если его поколение последнее.
type Searcher struct {
	comparison usecase.ComparisonUC
	logger     logger.Logger
	onUpdate   func(Snapshot)

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	snapshot   Snapshot
	wg         sync.WaitGroup
}

// NewSearcher создаёт Searcher. onUpdate вызывается при каждой смене состояния под внутренней блокировкой,
// поэтому не должен вызывать методы Searcher. onUpdate может быть nil.
func NewSearcher(comparison usecase.ComparisonUC, logger logger.Logger, onUpdate func(Snapshot)) *Searcher {
	if onUpdate == nil {
		onUpdate = func(Snapshot) {}
	}

	return &Searcher{
		comparison: comparison,
		logger:     logger,
		onUpdate:   onUpdate,
		snapshot:   Snapshot{State: StateIdle},
	}
}

// Submit отправляет новый поиск и возвращает его поколение. Предыдущие результаты сбрасываются сразу.
func (s *Searcher) Submit(ctx context.Context, session *domain.Session, query string) uint64 {
	reqCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	s.cancel = cancel
	s.snapshot = Snapshot{State: StateLoading, Generation: gen, Query: query}
	s.onUpdate(s.snapshot)
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		res, err := s.comparison.Compare(reqCtx, usecase.NewCompareReq(session, query))
		s.apply(gen, query, res, err)
	}()

	return gen
}

// apply применяет ответ, если он относится к последнему поколению. Устаревшие ответы отбрасываются.
func (s *Searcher) apply(gen uint64, query string, res *usecase.CompareRes, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debugf("dropping stale search response: generation %d, latest %d, query %q", gen, s.generation, query)
		return
	}

	s.cancel = nil
	if err != nil {
		s.snapshot = Snapshot{State: StateError, Generation: gen, Query: query, Err: err}
	} else {
		s.snapshot = Snapshot{State: StateResults, Generation: gen, Query: query, Result: res}
	}
	s.onUpdate(s.snapshot)
}

// Snapshot возвращает текущее состояние.
func (s *Searcher) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot
}

// Cancel отменяет запрос в полёте, если он есть.
func (s *Searcher) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
}

// Wait ожидает завершения всех запущенных запросов, включая отменённые.
func (s *Searcher) Wait() {
	s.wg.Wait()
}
