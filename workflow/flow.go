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
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// FlowControl bounds how fast runs of one workflow are admitted: at most
// parallelism runs in flight at once, and at most events run starts per
// period. Admission blocks until both bounds allow the run or the context
// is canceled.
type FlowControl struct {
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

// NewFlowControl creates a flow control gate. parallelism bounds concurrent
// runs; events per period bounds the run start rate.
func NewFlowControl(parallelism int, events int, period time.Duration) (*FlowControl, error) {
	if parallelism <= 0 {
		return nil, ErrInvalidParallelism
	}
	if events <= 0 || period <= 0 {
		return nil, ErrInvalidRate
	}

	return &FlowControl{
		sem:     semaphore.NewWeighted(int64(parallelism)),
		limiter: rate.NewLimiter(rate.Every(period/time.Duration(events)), events),
	}, nil
}

// Acquire blocks until the run is admitted, then returns a release function
// that must be called when the run finishes. Returns the context's error if
// it is canceled while waiting.
func (f *FlowControl) Acquire(ctx context.Context) (func(), error) {
	if err := f.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	if err := f.limiter.Wait(ctx); err != nil {
		f.sem.Release(1)
		return nil, err
	}
	return func() { f.sem.Release(1) }, nil
}
