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

// Package ai defines interfaces and configuration for the AI services used
// by the retrieval pipeline: text embedding and result re-ranking.
//
// The interfaces are implemented by provider packages (openai, cohere) and
// by the mock package for testing. Code that consumes AI services should
// depend on these interfaces rather than on concrete implementations.
package ai
