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

import "errors"

var (
	// ErrStepLogRequired indicates a nil step log repository was provided.
	ErrStepLogRequired = errors.New("step log repository is required")

	// ErrUnknownWorkflow indicates a trigger named a workflow with no
	// registered handler.
	ErrUnknownWorkflow = errors.New("unknown workflow")

	// ErrWorkflowRegistered indicates a duplicate handler registration.
	ErrWorkflowRegistered = errors.New("workflow already registered")

	// ErrExecutorClosed indicates an operation on a closed executor.
	ErrExecutorClosed = errors.New("executor is closed")

	// ErrRunCanceled indicates a run was canceled before it finished.
	ErrRunCanceled = errors.New("run canceled")

	// ErrInvalidParallelism indicates a non-positive parallelism bound.
	ErrInvalidParallelism = errors.New("parallelism must be positive")

	// ErrInvalidRate indicates a non-positive rate bound.
	ErrInvalidRate = errors.New("rate must be positive")

	// ErrInvalidMaxAttempts indicates a non-positive retry attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")
)
