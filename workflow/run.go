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
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/quarrylabs/quarry/core"
	"github.com/quarrylabs/quarry/storage"
)

// Run is the handle a workflow handler uses to execute durable steps.
// Each named step runs at most once per run id: its result is persisted
// before the handler continues, and a replay of the run returns the
// persisted result instead of re-executing the step.
//
// A Run is confined to the goroutine executing its handler.
type Run struct {
	id       string
	workflow string
	ctx      context.Context
	steps    storage.StepLogRepository
	seq      int
	logger   *slog.Logger
}

// Id returns the run's unique identifier.
func (r *Run) Id() string {
	return r.id
}

// Workflow returns the name of the workflow this run executes.
func (r *Run) Workflow() string {
	return r.workflow
}

// Step executes fn as a durable step named name and returns its result.
// If a completed record for name already exists in the run's step log, fn is
// not called and the persisted result is returned instead. Results are
// serialized as JSON, so T must round-trip through encoding/json.
//
// Step names must be unique within a run. Loops emit indexed names such as
// "create-documents-2" so each iteration replays independently.
func Step[T any](r *Run, name string, fn func() (T, error)) (T, error) {
	var zero T

	prior, err := r.steps.LoadStep(r.ctx, r.id, name)
	if err != nil {
		return zero, fmt.Errorf("load step %q: %w", name, err)
	}
	if prior != nil && prior.Status == core.StepStatusCompleted {
		r.seq = prior.Seq + 1
		var result T
		if len(prior.Result) > 0 {
			if err := json.Unmarshal(prior.Result, &result); err != nil {
				return zero, fmt.Errorf("replay step %q: %w", name, err)
			}
		}
		r.logger.Debug("replayed step from log", "run", r.id, "step", name)
		return result, nil
	}

	result, err := fn()
	if err != nil {
		// Failed steps are not persisted. A resumed run re-executes them.
		return zero, err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return zero, fmt.Errorf("serialize step %q result: %w", name, err)
	}

	record := &core.StepRecord{
		RunId:     r.id,
		Seq:       r.seq,
		Name:      name,
		Status:    core.StepStatusCompleted,
		Result:    payload,
		UpdatedAt: time.Now().UTC(),
	}
	if err := r.steps.SaveStep(r.ctx, record); err != nil {
		return zero, fmt.Errorf("save step %q: %w", name, err)
	}
	r.seq++

	return result, nil
}

// StepDo executes fn as a durable step that produces no result.
func StepDo(r *Run, name string, fn func() error) error {
	_, err := Step(r, name, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}
