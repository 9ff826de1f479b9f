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

package storage

import (
	"github.com/quarrylabs/quarry/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalIngestJob serializes an IngestJob to bytes.
func MarshalIngestJob(job *core.IngestJob) []byte {
	buf := make([]byte, core.IngestJobMUS.Size(*job))
	core.IngestJobMUS.Marshal(*job, buf)
	return buf
}

// UnmarshalIngestJob deserializes an IngestJob from bytes.
func UnmarshalIngestJob(data []byte) (*core.IngestJob, error) {
	job, _, err := core.IngestJobMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, core.DocumentMUS.Size(*doc))
	core.DocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := core.DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarshalNamespace serializes a Namespace to bytes.
func MarshalNamespace(ns *core.Namespace) []byte {
	buf := make([]byte, core.NamespaceMUS.Size(*ns))
	core.NamespaceMUS.Marshal(*ns, buf)
	return buf
}

// UnmarshalNamespace deserializes a Namespace from bytes.
func UnmarshalNamespace(data []byte) (*core.Namespace, error) {
	ns, _, err := core.NamespaceMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &ns, nil
}

// MarshalOrganization serializes an Organization to bytes.
func MarshalOrganization(org *core.Organization) []byte {
	buf := make([]byte, core.OrganizationMUS.Size(*org))
	core.OrganizationMUS.Marshal(*org, buf)
	return buf
}

// UnmarshalOrganization deserializes an Organization from bytes.
func UnmarshalOrganization(data []byte) (*core.Organization, error) {
	org, _, err := core.OrganizationMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// MarshalStepRecord serializes a StepRecord to bytes.
func MarshalStepRecord(step *core.StepRecord) []byte {
	buf := make([]byte, core.StepRecordMUS.Size(*step))
	core.StepRecordMUS.Marshal(*step, buf)
	return buf
}

// UnmarshalStepRecord deserializes a StepRecord from bytes.
func UnmarshalStepRecord(data []byte) (*core.StepRecord, error) {
	step, _, err := core.StepRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &step, nil
}

// MarshalRunRecord serializes a RunRecord to bytes.
func MarshalRunRecord(run *core.RunRecord) []byte {
	buf := make([]byte, core.RunRecordMUS.Size(*run))
	core.RunRecordMUS.Marshal(*run, buf)
	return buf
}

// UnmarshalRunRecord deserializes a RunRecord from bytes.
func UnmarshalRunRecord(data []byte) (*core.RunRecord, error) {
	run, _, err := core.RunRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// MarshalVectorEntry serializes a VectorEntry to bytes.
func MarshalVectorEntry(entry *core.VectorEntry) []byte {
	buf := make([]byte, core.VectorEntryMUS.Size(*entry))
	core.VectorEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalVectorEntry deserializes a VectorEntry from bytes.
func UnmarshalVectorEntry(data []byte) (*core.VectorEntry, error) {
	entry, _, err := core.VectorEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
