package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driven"
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driving"
	"github.com/custodia-labs/iajur-cli/internal/core/render"
	"github.com/custodia-labs/iajur-cli/internal/logger"
)

// Ensure QueryController implements the interface.
var _ driving.QueryController = (*QueryController)(nil)

// QueryController runs one query at a time through
// Idle -> Submitting -> Rendering -> Idle, or Submitting -> Failed.
//
// Overlapping submits are not rejected; each runs independently and the
// last one to finish owns the observable state.
type QueryController struct {
	answering driven.AnsweringService
	history   driving.HistoryService
	metrics   driving.MetricsService
	watcher   driven.HistoryWatcher

	mu           sync.Mutex
	state        domain.ControllerState
	lastErr      error
	lastOutcome  *domain.QueryOutcome
	lastQuestion string

	stopWatch context.CancelFunc
	watchDone chan struct{}

	now func() time.Time
}

// NewQueryController creates a controller in the Idle state.
func NewQueryController(
	answering driven.AnsweringService,
	history driving.HistoryService,
	metrics driving.MetricsService,
) *QueryController {
	return &QueryController{
		answering: answering,
		history:   history,
		metrics:   metrics,
		state:     domain.StateIdle,
		now:       time.Now,
	}
}

// SetWatcher attaches a history watcher. After Start, external rewrites of
// the history document are reloaded. The controller closes it on Close.
func (c *QueryController) SetWatcher(w driven.HistoryWatcher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watcher = w
}

// Start loads history and refreshes metrics concurrently.
func (c *QueryController) Start(ctx context.Context) error {
	logger.Section("Start")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.history.Load(gctx)
		return nil
	})
	g.Go(func() error {
		c.metrics.RefreshFromRemote(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	c.startWatching()
	return nil
}

func (c *QueryController) startWatching() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watcher == nil || c.stopWatch != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.stopWatch = cancel
	c.watchDone = make(chan struct{})

	go func(changes <-chan struct{}, done chan struct{}) {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				logger.Debug("history changed on disk, reloading")
				c.history.Reload(ctx)
			}
		}
	}(c.watcher.Changes(), c.watchDone)
}

// Submit sends a question and, on success, renders the answer, records it
// in history and updates metrics, in that order.
func (c *QueryController) Submit(ctx context.Context, question string) (*domain.QueryOutcome, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrEmptyInput
	}

	logger.Section("Consult")
	logger.Debug("Question: %q", question)

	c.mu.Lock()
	c.state = domain.StateSubmitting
	c.lastQuestion = question
	c.lastErr = nil
	c.lastOutcome = nil
	c.mu.Unlock()

	start := c.now()
	resp, err := c.answering.Consult(ctx, question)
	elapsed := roundSeconds(c.now().Sub(start))

	if err != nil {
		c.mu.Lock()
		c.state = domain.StateFailed
		c.lastErr = err
		c.mu.Unlock()

		logger.Warn("consult failed after %.2fs: %v", elapsed, err)
		return nil, fmt.Errorf("consult: %w", err)
	}

	c.setState(domain.StateRendering)

	blocks := render.Render(resp.Answer)
	recorded := c.history.Record(ctx, question, resp, elapsed)
	c.metrics.Recompute(c.history.List(), elapsed, resp.SourceCount)

	outcome := &domain.QueryOutcome{
		Query:           recorded,
		Blocks:          blocks,
		DurationSeconds: elapsed,
		SourceCount:     resp.SourceCount,
		WorkflowID:      resp.WorkflowOrDefault(),
		IsFollowup:      resp.Followup(),
	}

	c.mu.Lock()
	c.state = domain.StateIdle
	c.lastOutcome = outcome
	c.mu.Unlock()

	logger.Info("answered in %.2fs with %d sources (workflow %s)", elapsed, resp.SourceCount, outcome.WorkflowID)
	return outcome, nil
}

// Retry resubmits the last question.
func (c *QueryController) Retry(ctx context.Context) (*domain.QueryOutcome, error) {
	return c.Submit(ctx, c.LastQuestion())
}

// NewConsult clears display state. History and metrics are untouched.
func (c *QueryController) NewConsult() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = domain.StateIdle
	c.lastErr = nil
	c.lastOutcome = nil
	c.lastQuestion = ""
}

// State returns the current lifecycle state.
func (c *QueryController) State() domain.ControllerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError returns the error of the most recent failed submit.
func (c *QueryController) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// LastOutcome returns the most recent successful outcome.
func (c *QueryController) LastOutcome() *domain.QueryOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastOutcome
}

// LastQuestion returns the most recently submitted question.
func (c *QueryController) LastQuestion() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastQuestion
}

// Close stops the history watcher.
func (c *QueryController) Close() error {
	c.mu.Lock()
	stop, done, w := c.stopWatch, c.watchDone, c.watcher
	c.stopWatch, c.watchDone, c.watcher = nil, nil, nil
	c.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}
	if w != nil {
		return w.Close()
	}
	return nil
}

func (c *QueryController) setState(s domain.ControllerState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

// roundSeconds converts d to seconds with two decimals.
func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
