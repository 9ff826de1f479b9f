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

// Package workflow provides a small durable execution substrate for
// long-running background jobs.
//
// A workflow is a named handler registered on an Executor. Triggering a
// workflow creates a run with a unique id and executes the handler on a
// shared worker pool. Handlers perform their side effects through durable
// steps (Step, StepDo): each step's result is persisted to a step log before
// the handler proceeds, so resuming an interrupted run replays completed
// steps from storage instead of re-executing them.
//
// Per-workflow FlowControl bounds how many runs execute concurrently and how
// fast new runs are admitted. Cancellation is best effort: canceled runs
// observe a canceled context and finish with a canceled status without
// invoking the workflow's failure handler.
package workflow
