package inspect

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/shipshape/internal/config"
	"github.com/alexisbeaulieu97/shipshape/internal/logger"
)

const requestQueueSize = 16

// Outcome is what the evaluation worker reports back for one request.
// Err is set when the evaluation itself failed rather than returning a
// negative result.
type Outcome struct {
	ItemID string
	Result Result
	Err    error
}

// Service funnels evaluation requests through a single background worker.
// One queue, one consumer: requests are processed in order, so a stale
// request for an item the UI has moved past resolves cheaply off the result
// cache instead of needing a cancellation primitive.
type Service struct {
	eval *Evaluator
	log  *logger.Logger

	requests chan config.Item
	outcomes chan Outcome
	done     chan struct{}

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
}

// NewService builds a Service around an evaluator.
func NewService(eval *Evaluator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		eval:     eval,
		log:      log.WithComponent("inspect.service"),
		requests: make(chan config.Item, requestQueueSize),
		outcomes: make(chan Outcome, requestQueueSize),
		done:     make(chan struct{}),
	}
}

// Start launches the worker goroutine. It returns immediately; outcomes are
// delivered on the Outcomes channel until Stop is called or the context is
// cancelled.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)
	defer close(s.outcomes)
	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-s.requests:
			if !ok {
				return
			}
			result, err := s.eval.Evaluate(ctx, item)
			if err != nil && ctx.Err() != nil {
				return
			}
			if err != nil {
				s.log.WithFields(map[string]any{"item": item.ID, "error": err}).Warn("evaluation failed")
			}
			outcome := Outcome{ItemID: item.ID, Result: result, Err: err}
			select {
			case s.outcomes <- outcome:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Request enqueues an item for evaluation. It never blocks: when the queue
// is saturated the request is dropped and false is returned, on the grounds
// that another poll tick will come around shortly.
func (s *Service) Request(item config.Item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || !s.started {
		return false
	}
	select {
	case s.requests <- item:
		return true
	default:
		s.log.WithFields(map[string]any{"item": item.ID}).Debug("request queue full, dropping")
		return false
	}
}

// Outcomes returns the channel evaluation outcomes arrive on. It is closed
// once the worker exits.
func (s *Service) Outcomes() <-chan Outcome {
	return s.outcomes
}

// Stop shuts the worker down and waits for it to exit. Safe to call more
// than once.
func (s *Service) Stop() {
	s.mu.Lock()
	if s.stopped || !s.started {
		s.stopped = true
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.requests)
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	<-s.done
}
