// Copyright 2025 Quarry Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/quarrylabs/quarry/core"
	"github.com/quarrylabs/quarry/storage"
)

// Handler executes one workflow run. The payload is the trigger payload
// verbatim. Handlers perform their side effects through durable steps so an
// interrupted run can resume without repeating committed work.
type Handler func(ctx context.Context, run *Run, payload []byte) error

// FailureHandler is invoked after a run fails terminally. It runs at most
// once per run, outside the run's canceled context.
type FailureHandler func(ctx context.Context, runID string, payload []byte, cause error)

// registration holds one workflow's handler and admission policy.
type registration struct {
	handler   Handler
	onFailure FailureHandler
	flow      *FlowControl
}

// RegisterOption configures a workflow registration.
type RegisterOption func(*registration)

// WithFlowControl bounds the workflow's concurrency and start rate.
func WithFlowControl(flow *FlowControl) RegisterOption {
	return func(r *registration) {
		r.flow = flow
	}
}

// WithFailureHandler sets the callback invoked after a run fails.
func WithFailureHandler(fn FailureHandler) RegisterOption {
	return func(r *registration) {
		r.onFailure = fn
	}
}

// Executor runs registered workflows on a shared worker pool, persisting a
// run record and a per-run step log so runs survive interruption and can be
// replayed.
type Executor struct {
	steps  storage.StepLogRepository
	pool   *ants.Pool
	logger *slog.Logger

	mu        sync.Mutex
	workflows map[string]*registration
	running   map[string]context.CancelFunc
	closed    bool

	wg sync.WaitGroup
}

// Option configures an Executor.
type Option func(*Executor) error

// WithPoolSize sets the worker pool size for run execution.
// Default is runtime.NumCPU() * 16, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Executor) error {
		if size < 1 {
			size = 1
		}

		if e.pool != nil {
			e.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExecutor creates a workflow executor backed by the given step log.
func NewExecutor(steps storage.StepLogRepository, opts ...Option) (*Executor, error) {
	if steps == nil {
		return nil, ErrStepLogRequired
	}

	// Runs spend most of their time on IO, so the pool is sized well above
	// the CPU count.
	poolSize := runtime.NumCPU() * 16
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	e := &Executor{
		steps:     steps,
		pool:      pool,
		logger:    slog.Default(),
		workflows: make(map[string]*registration),
		running:   make(map[string]context.CancelFunc),
	}

	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.pool.Release()
			return nil, optErr
		}
	}

	return e, nil
}

// Register binds a handler to a workflow name. Registration must happen
// before the first trigger for that name.
func (e *Executor) Register(workflow string, handler Handler, opts ...RegisterOption) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrExecutorClosed
	}
	if _, ok := e.workflows[workflow]; ok {
		return fmt.Errorf("%w: %s", ErrWorkflowRegistered, workflow)
	}

	reg := &registration{handler: handler}
	for _, opt := range opts {
		opt(reg)
	}
	e.workflows[workflow] = reg
	return nil
}

// Trigger starts a new run of the named workflow and returns its run id.
// The run executes asynchronously on the worker pool; flow control applies
// at execution time, not at trigger time.
func (e *Executor) Trigger(ctx context.Context, workflow string, payload []byte) (string, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return "", ErrExecutorClosed
	}
	reg, ok := e.workflows[workflow]
	e.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownWorkflow, workflow)
	}

	runID := uuid.NewString()
	record := &core.RunRecord{
		Id:        runID,
		Workflow:  workflow,
		Payload:   payload,
		Status:    core.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := e.steps.SaveRun(ctx, record); err != nil {
		return "", err
	}

	if err := e.submit(runID, workflow, reg, payload); err != nil {
		return "", err
	}
	return runID, nil
}

// TriggerBatch starts one run per payload and returns the run ids in
// payload order. Payloads that fail to trigger abort the batch; runs already
// started are not rolled back.
func (e *Executor) TriggerBatch(ctx context.Context, workflow string, payloads [][]byte) ([]string, error) {
	runIDs := make([]string, 0, len(payloads))
	for _, payload := range payloads {
		runID, err := e.Trigger(ctx, workflow, payload)
		if err != nil {
			return runIDs, err
		}
		runIDs = append(runIDs, runID)
	}
	return runIDs, nil
}

// Resume re-executes an interrupted run under its original run id. Steps
// already recorded in the step log are replayed from their stored results.
func (e *Executor) Resume(ctx context.Context, runID string) error {
	record, err := e.steps.LoadRun(ctx, runID)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("run %s: %w", runID, storage.ErrNotFound)
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrExecutorClosed
	}
	reg, ok := e.workflows[record.Workflow]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownWorkflow, record.Workflow)
	}
	if _, active := e.running[runID]; active {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	record.Status = core.RunStatusRunning
	record.Error = ""
	if err := e.steps.SaveRun(ctx, record); err != nil {
		return err
	}
	return e.submit(runID, record.Workflow, reg, record.Payload)
}

// ResumePending resubmits every run a previous process left in RUNNING
// state. Call it after all workflows are registered; runs whose workflow is
// not registered are skipped with a warning so one stale record cannot block
// recovery. Returns the number of runs resubmitted.
func (e *Executor) ResumePending(ctx context.Context) (int, error) {
	records, err := e.steps.ListRuns(ctx, core.RunStatusRunning)
	if err != nil {
		return 0, err
	}

	resumed := 0
	for _, record := range records {
		err := e.Resume(ctx, record.Id)
		if errors.Is(err, ErrUnknownWorkflow) {
			e.logger.Warn("skipping interrupted run with unregistered workflow",
				"workflow", record.Workflow, "run", record.Id)
			continue
		}
		if err != nil {
			return resumed, err
		}
		resumed++
	}
	return resumed, nil
}

// Cancel requests best-effort cancellation of the given runs. Runs that are
// waiting for admission or executing observe a canceled context; runs that
// already finished are unaffected.
func (e *Executor) Cancel(runIDs ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, runID := range runIDs {
		if cancel, ok := e.running[runID]; ok {
			cancel()
		}
	}
}

// PurgeRun deletes a run's record and step log. Used once a run's effects
// are fully superseded, such as after its job row is removed.
func (e *Executor) PurgeRun(ctx context.Context, runID string) error {
	return e.steps.DeleteRun(ctx, runID)
}

// Close stops accepting triggers, waits for in-flight runs to finish, and
// releases the worker pool.
func (e *Executor) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	e.wg.Wait()
	e.pool.Release()
	return nil
}

func (e *Executor) submit(runID, workflow string, reg *registration, payload []byte) error {
	runCtx, cancel := context.WithCancel(context.Background())

	e.mu.Lock()
	e.running[runID] = cancel
	e.mu.Unlock()

	e.wg.Add(1)
	err := e.pool.Submit(func() {
		defer e.wg.Done()
		defer func() {
			e.mu.Lock()
			delete(e.running, runID)
			e.mu.Unlock()
			cancel()
		}()
		e.execute(runCtx, runID, workflow, reg, payload)
	})
	if err != nil {
		e.wg.Done()
		e.mu.Lock()
		delete(e.running, runID)
		e.mu.Unlock()
		cancel()
		return err
	}
	return nil
}

func (e *Executor) execute(ctx context.Context, runID, workflow string, reg *registration, payload []byte) {
	if reg.flow != nil {
		release, err := reg.flow.Acquire(ctx)
		if err != nil {
			e.finishRun(runID, workflow, payload, reg, err)
			return
		}
		defer release()
	}

	run := &Run{
		id:       runID,
		workflow: workflow,
		ctx:      ctx,
		steps:    e.steps,
		logger:   e.logger,
	}

	e.logger.Debug("run started", "workflow", workflow, "run", runID)
	err := reg.handler(ctx, run, payload)
	e.finishRun(runID, workflow, payload, reg, err)
}

// finishRun records the run's terminal status and fires the failure handler
// for failed runs. Cancellation is terminal but does not count as failure.
func (e *Executor) finishRun(runID, workflow string, payload []byte, reg *registration, runErr error) {
	// The run's own context may already be canceled, so bookkeeping uses a
	// fresh one.
	bg := context.Background()
	record, err := e.steps.LoadRun(bg, runID)
	if err != nil {
		e.logger.Error("failed to load run record", "workflow", workflow, "run", runID, "err", err)
	}
	if record == nil {
		record = &core.RunRecord{Id: runID, Workflow: workflow, Payload: payload}
	}
	record.FinishedAt = time.Now().UTC()

	switch {
	case runErr == nil:
		record.Status = core.RunStatusCompleted
		e.logger.Debug("run completed", "workflow", workflow, "run", runID)
	case errors.Is(runErr, context.Canceled):
		record.Status = core.RunStatusCanceled
		record.Error = ErrRunCanceled.Error()
		e.logger.Info("run canceled", "workflow", workflow, "run", runID)
	default:
		record.Status = core.RunStatusFailed
		record.Error = runErr.Error()
		e.logger.Error("run failed", "workflow", workflow, "run", runID, "err", runErr)
	}

	if err := e.steps.SaveRun(bg, record); err != nil {
		e.logger.Error("failed to save run record", "workflow", workflow, "run", runID, "err", err)
	}

	if record.Status == core.RunStatusFailed && reg.onFailure != nil {
		reg.onFailure(bg, runID, payload, runErr)
	}
}
