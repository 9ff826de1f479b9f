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

import "fmt"

// ValidatePayload validates an ingest payload according to its variant.
//
// The switch is exhaustive over PayloadType: an unrecognized tag is a
// validation failure, never silently accepted.
func ValidatePayload(p *Payload) error {
	if p == nil {
		return fmt.Errorf("%w: payload is nil", ErrInvalidPayload)
	}

	switch p.Type {
	case PayloadTypeText:
		if p.Text == "" {
			return fmt.Errorf("%w: %w", ErrInvalidPayload, ErrEmptyText)
		}
	case PayloadTypeFile:
		if p.FileURL == "" {
			return fmt.Errorf("%w: %w", ErrInvalidPayload, ErrEmptyFileURL)
		}
	case PayloadTypeManagedFile:
		if p.Key == "" {
			return fmt.Errorf("%w: %w", ErrInvalidPayload, ErrEmptyKey)
		}
	case PayloadTypeManagedFiles:
		if len(p.Files) == 0 {
			return fmt.Errorf("%w: %w", ErrInvalidPayload, ErrEmptyFileList)
		}
		for i, file := range p.Files {
			if file.Key == "" {
				return fmt.Errorf("%w: file %d: %w", ErrInvalidPayload, i, ErrEmptyKey)
			}
		}
	case PayloadTypeURLs:
		if len(p.URLs) == 0 {
			return fmt.Errorf("%w: %w", ErrInvalidPayload, ErrEmptyURLList)
		}
		for i, url := range p.URLs {
			if url == "" {
				return fmt.Errorf("%w: url %d: %w", ErrInvalidPayload, i, ErrEmptyFileURL)
			}
		}
	default:
		return fmt.Errorf("%w: %w: value %d", ErrInvalidPayload, ErrUnknownPayloadType, p.Type)
	}

	return nil
}

// ValidateSource validates a document source according to its variant.
func ValidateSource(s *DocumentSource) error {
	if s == nil {
		return fmt.Errorf("%w: source is nil", ErrInvalidSource)
	}

	switch s.Type {
	case SourceTypeText:
		if s.Text == "" {
			return fmt.Errorf("%w: %w", ErrInvalidSource, ErrEmptyText)
		}
	case SourceTypeFile:
		if s.FileURL == "" {
			return fmt.Errorf("%w: %w", ErrInvalidSource, ErrEmptyFileURL)
		}
	case SourceTypeManagedFile:
		if s.Key == "" {
			return fmt.Errorf("%w: %w", ErrInvalidSource, ErrEmptyKey)
		}
	default:
		return fmt.Errorf("%w: %w: value %d", ErrInvalidSource, ErrUnknownSourceType, s.Type)
	}

	return nil
}

// ValidateIngestJob validates an IngestJob according to domain rules.
//
// Validation rules:
//   - NamespaceId must be set
//   - Payload must be valid for its variant
//
// NOT validated (populated by the orchestrator):
//   - Status timestamps
//   - WorkflowRunsIds
//   - ID (0 is valid from database sequences)
func ValidateIngestJob(job *IngestJob) error {
	if job == nil {
		return fmt.Errorf("%w: job is nil", ErrInvalidPayload)
	}

	if job.NamespaceId == 0 {
		return ErrMissingNamespace
	}

	return ValidatePayload(&job.Payload)
}
