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

package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidPayload indicates an ingest payload failed validation.
	ErrInvalidPayload = errors.New("invalid ingest payload")

	// ErrInvalidSource indicates a document source failed validation.
	ErrInvalidSource = errors.New("invalid document source")

	// ErrUnknownPayloadType indicates an unrecognized payload variant tag.
	ErrUnknownPayloadType = errors.New("unknown payload type")

	// ErrUnknownSourceType indicates an unrecognized source variant tag.
	ErrUnknownSourceType = errors.New("unknown source type")

	// ErrEmptyText indicates a TEXT payload with no text.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrEmptyFileURL indicates a FILE payload with no file URL.
	ErrEmptyFileURL = errors.New("file URL cannot be empty")

	// ErrEmptyKey indicates a MANAGED_FILE payload with no storage key.
	ErrEmptyKey = errors.New("storage key cannot be empty")

	// ErrEmptyFileList indicates a MANAGED_FILES payload with no files.
	ErrEmptyFileList = errors.New("file list cannot be empty")

	// ErrEmptyURLList indicates a URLS payload with no urls.
	ErrEmptyURLList = errors.New("url list cannot be empty")

	// ErrMissingNamespace indicates an ingest job without an owning namespace.
	ErrMissingNamespace = errors.New("namespace id required")
)
