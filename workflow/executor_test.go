package workflow

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quarrylabs/quarry/core"
	"github.com/quarrylabs/quarry/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor(t *testing.T) (*Executor, *badger.Stores) {
	t.Helper()

	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })

	executor, err := NewExecutor(stores.StepLog)
	require.NoError(t, err)
	t.Cleanup(func() { executor.Close() })

	return executor, stores
}

func waitForRunStatus(t *testing.T, stores *badger.Stores, runID string, want core.RunStatus) *core.RunRecord {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		record, err := stores.StepLog.LoadRun(context.Background(), runID)
		require.NoError(t, err)
		if record.Status == want {
			return record
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("run %s never reached status %v", runID, want)
	return nil
}

func TestTriggerRunsHandlerToCompletion(t *testing.T) {
	executor, stores := newTestExecutor(t)

	var got atomic.Value
	err := executor.Register("greet", func(ctx context.Context, run *Run, payload []byte) error {
		got.Store(string(payload))
		return nil
	})
	require.NoError(t, err)

	runID, err := executor.Trigger(context.Background(), "greet", []byte(`{"name":"ada"}`))
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	record := waitForRunStatus(t, stores, runID, core.RunStatusCompleted)
	assert.Equal(t, "greet", record.Workflow)
	assert.Equal(t, `{"name":"ada"}`, got.Load())
}

func TestTriggerUnknownWorkflow(t *testing.T) {
	executor, _ := newTestExecutor(t)

	_, err := executor.Trigger(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrUnknownWorkflow)
}

func TestDuplicateRegistration(t *testing.T) {
	executor, _ := newTestExecutor(t)

	noop := func(ctx context.Context, run *Run, payload []byte) error { return nil }
	require.NoError(t, executor.Register("dup", noop))
	assert.ErrorIs(t, executor.Register("dup", noop), ErrWorkflowRegistered)
}

func TestStepResultsAreDurable(t *testing.T) {
	executor, stores := newTestExecutor(t)

	var calls atomic.Int32
	err := executor.Register("count", func(ctx context.Context, run *Run, payload []byte) error {
		n, err := Step(run, "compute", func() (int, error) {
			calls.Add(1)
			return 42, nil
		})
		if err != nil {
			return err
		}
		if n != 42 {
			return errors.New("unexpected step result")
		}
		return nil
	})
	require.NoError(t, err)

	runID, err := executor.Trigger(context.Background(), "count", nil)
	require.NoError(t, err)
	waitForRunStatus(t, stores, runID, core.RunStatusCompleted)

	// Resuming the finished run replays the step from the log.
	require.NoError(t, executor.Resume(context.Background(), runID))
	waitForRunStatus(t, stores, runID, core.RunStatusCompleted)

	assert.Equal(t, int32(1), calls.Load())

	step, err := stores.StepLog.LoadStep(context.Background(), runID, "compute")
	require.NoError(t, err)
	require.NotNil(t, step)
	assert.Equal(t, core.StepStatusCompleted, step.Status)
	assert.Equal(t, "42", string(step.Result))
}

func TestResumeSkipsCompletedSteps(t *testing.T) {
	executor, stores := newTestExecutor(t)

	var firstCalls, secondCalls atomic.Int32
	fail := atomic.Bool{}
	fail.Store(true)

	err := executor.Register("flaky", func(ctx context.Context, run *Run, payload []byte) error {
		if err := StepDo(run, "first", func() error {
			firstCalls.Add(1)
			return nil
		}); err != nil {
			return err
		}
		return StepDo(run, "second", func() error {
			secondCalls.Add(1)
			if fail.Load() {
				return errors.New("transient outage")
			}
			return nil
		})
	})
	require.NoError(t, err)

	runID, err := executor.Trigger(context.Background(), "flaky", nil)
	require.NoError(t, err)
	record := waitForRunStatus(t, stores, runID, core.RunStatusFailed)
	assert.Contains(t, record.Error, "transient outage")

	fail.Store(false)
	require.NoError(t, executor.Resume(context.Background(), runID))
	waitForRunStatus(t, stores, runID, core.RunStatusCompleted)

	assert.Equal(t, int32(1), firstCalls.Load(), "completed step must not re-execute")
	assert.Equal(t, int32(2), secondCalls.Load())
}

func TestResumePendingRecoversInterruptedRuns(t *testing.T) {
	executor, stores := newTestExecutor(t)

	var calls atomic.Int32
	err := executor.Register("recover", func(ctx context.Context, run *Run, payload []byte) error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)

	// A RUNNING record with no live goroutine is what a crash leaves behind.
	ctx := context.Background()
	require.NoError(t, stores.StepLog.SaveRun(ctx, &core.RunRecord{
		Id:        "run-interrupted",
		Workflow:  "recover",
		Payload:   []byte("p"),
		Status:    core.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}))
	require.NoError(t, stores.StepLog.SaveRun(ctx, &core.RunRecord{
		Id:       "run-finished",
		Workflow: "recover",
		Status:   core.RunStatusCompleted,
	}))

	resumed, err := executor.ResumePending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, resumed)

	waitForRunStatus(t, stores, "run-interrupted", core.RunStatusCompleted)
	assert.Equal(t, int32(1), calls.Load(), "finished runs must not re-execute")
}

func TestResumePendingSkipsUnregisteredWorkflows(t *testing.T) {
	executor, stores := newTestExecutor(t)

	require.NoError(t, stores.StepLog.SaveRun(context.Background(), &core.RunRecord{
		Id:       "run-orphan",
		Workflow: "retired-workflow",
		Status:   core.RunStatusRunning,
	}))

	resumed, err := executor.ResumePending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resumed)
}

func TestFailureHandlerFiresOnce(t *testing.T) {
	executor, stores := newTestExecutor(t)

	var failures atomic.Int32
	var gotCause atomic.Value
	err := executor.Register("doomed",
		func(ctx context.Context, run *Run, payload []byte) error {
			return errors.New("boom")
		},
		WithFailureHandler(func(ctx context.Context, runID string, payload []byte, cause error) {
			failures.Add(1)
			gotCause.Store(cause.Error())
		}),
	)
	require.NoError(t, err)

	runID, err := executor.Trigger(context.Background(), "doomed", []byte("p"))
	require.NoError(t, err)
	waitForRunStatus(t, stores, runID, core.RunStatusFailed)

	assert.Eventually(t, func() bool { return failures.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "boom", gotCause.Load())
}

func TestCancelRunningRun(t *testing.T) {
	executor, stores := newTestExecutor(t)

	started := make(chan struct{})
	var failureCalled atomic.Bool
	err := executor.Register("slow",
		func(ctx context.Context, run *Run, payload []byte) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		},
		WithFailureHandler(func(ctx context.Context, runID string, payload []byte, cause error) {
			failureCalled.Store(true)
		}),
	)
	require.NoError(t, err)

	runID, err := executor.Trigger(context.Background(), "slow", nil)
	require.NoError(t, err)
	<-started

	executor.Cancel(runID)
	waitForRunStatus(t, stores, runID, core.RunStatusCanceled)

	assert.False(t, failureCalled.Load(), "cancellation must not invoke the failure handler")
}

func TestCancelUnknownRunIsNoop(t *testing.T) {
	executor, _ := newTestExecutor(t)
	executor.Cancel("does-not-exist")
}

func TestTriggerBatchPreservesOrder(t *testing.T) {
	executor, stores := newTestExecutor(t)

	err := executor.Register("batch", func(ctx context.Context, run *Run, payload []byte) error {
		return nil
	})
	require.NoError(t, err)

	payloads := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	runIDs, err := executor.TriggerBatch(context.Background(), "batch", payloads)
	require.NoError(t, err)
	require.Len(t, runIDs, 3)

	for i, runID := range runIDs {
		record := waitForRunStatus(t, stores, runID, core.RunStatusCompleted)
		assert.Equal(t, string(payloads[i]), string(record.Payload))
	}
}

func TestFlowControlBoundsParallelism(t *testing.T) {
	executor, stores := newTestExecutor(t)

	flow, err := NewFlowControl(2, 100, time.Second)
	require.NoError(t, err)

	var mu sync.Mutex
	inFlight, peak := 0, 0
	err = executor.Register("bounded",
		func(ctx context.Context, run *Run, payload []byte) error {
			mu.Lock()
			inFlight++
			if inFlight > peak {
				peak = inFlight
			}
			mu.Unlock()

			time.Sleep(50 * time.Millisecond)

			mu.Lock()
			inFlight--
			mu.Unlock()
			return nil
		},
		WithFlowControl(flow),
	)
	require.NoError(t, err)

	runIDs := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		runID, err := executor.Trigger(context.Background(), "bounded", nil)
		require.NoError(t, err)
		runIDs = append(runIDs, runID)
	}
	for _, runID := range runIDs {
		waitForRunStatus(t, stores, runID, core.RunStatusCompleted)
	}

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, 2)
}

func TestTriggerAfterClose(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	executor, err := NewExecutor(stores.StepLog)
	require.NoError(t, err)
	require.NoError(t, executor.Register("w", func(ctx context.Context, run *Run, payload []byte) error { return nil }))
	require.NoError(t, executor.Close())

	_, err = executor.Trigger(context.Background(), "w", nil)
	assert.ErrorIs(t, err, ErrExecutorClosed)
}

func TestPurgeRunRemovesStepLog(t *testing.T) {
	executor, stores := newTestExecutor(t)

	err := executor.Register("purgeable", func(ctx context.Context, run *Run, payload []byte) error {
		return StepDo(run, "only", func() error { return nil })
	})
	require.NoError(t, err)

	runID, err := executor.Trigger(context.Background(), "purgeable", nil)
	require.NoError(t, err)
	waitForRunStatus(t, stores, runID, core.RunStatusCompleted)

	require.NoError(t, executor.PurgeRun(context.Background(), runID))

	step, err := stores.StepLog.LoadStep(context.Background(), runID, "only")
	require.NoError(t, err)
	assert.Nil(t, step)
}
