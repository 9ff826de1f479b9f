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

package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/quarrylabs/quarry/core"
)

// Key prefixes for different data types
const (
	orgRecordPrefix = "orgrec"
	orgIDSeq        = "orgrecseq"

	nsRecordPrefix = "nsrec"
	nsOrgPrefix    = "nsorg"
	nsIDSeq        = "nsrecseq"

	jobRecordPrefix = "jobrec"
	jobNsPrefix     = "jobns"
	jobIDSeq        = "jobrecseq"

	docRecordPrefix = "docrec"
	docJobPrefix    = "docjob"

	runRecordPrefix  = "wfrun"
	stepRecordPrefix = "wfstep"

	vectorRecordPrefix = "vecrec"
)

// makeOrgKey generates a key for an organization by ID.
func makeOrgKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", orgRecordPrefix, id))
}

// makeNamespaceKey generates a key for a namespace by ID.
func makeNamespaceKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", nsRecordPrefix, id))
}

// makeNamespaceOrgKey generates a composite key for the org->namespace index.
// Format: prefix:orgID:namespaceID
func makeNamespaceOrgKey(orgID, nsID core.ID) []byte {
	return makeCompositeKey(nsOrgPrefix, orgID, nsID)
}

// makePartialNamespaceOrgKey generates a partial key for listing an org's namespaces.
func makePartialNamespaceOrgKey(orgID core.ID) []byte {
	return makePartialCompositeKey(nsOrgPrefix, orgID)
}

// makeJobKey generates a key for an ingest job by ID.
func makeJobKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", jobRecordPrefix, id))
}

// makeJobNamespaceKey generates a composite key for the namespace->job index.
// Format: prefix:namespaceID:jobID
func makeJobNamespaceKey(nsID, jobID core.ID) []byte {
	return makeCompositeKey(jobNsPrefix, nsID, jobID)
}

// makePartialJobNamespaceKey generates a partial key for listing a namespace's jobs.
func makePartialJobNamespaceKey(nsID core.ID) []byte {
	return makePartialCompositeKey(jobNsPrefix, nsID)
}

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", docRecordPrefix, id))
}

// makeDocumentJobKey generates a composite key for the job->document index.
// Format: prefix:jobID:documentID
func makeDocumentJobKey(jobID, docID core.ID) []byte {
	return makeCompositeKey(docJobPrefix, jobID, docID)
}

// makePartialDocumentJobKey generates a partial key for listing a job's documents.
func makePartialDocumentJobKey(jobID core.ID) []byte {
	return makePartialCompositeKey(docJobPrefix, jobID)
}

// makeRunKey generates a key for a workflow run record.
func makeRunKey(runID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", runRecordPrefix, runID))
}

// makeStepKey generates a key for a workflow step record.
// Format: prefix:runID:stepName
func makeStepKey(runID, name string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", stepRecordPrefix, runID, name))
}

// makePartialStepKey generates a partial key for iterating a run's steps.
func makePartialStepKey(runID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", stepRecordPrefix, runID))
}

// makeVectorKey generates a key for a vector entry within a partition.
func makeVectorKey(partition, id string) []byte {
	return append(makePartialVectorKey(partition), id...)
}

// makePartialVectorKey generates a partial key for iterating a partition.
// The partition segment is length-prefixed: partition names can contain the
// separator, so a plain "prefix:partition:" scan over one partition would also
// match every partition it is a string prefix of.
// Format: prefix:len:partition:
func makePartialVectorKey(partition string) []byte {
	return []byte(fmt.Sprintf("%s:%d:%s:", vectorRecordPrefix, len(partition), partition))
}

// makeCompositeKey builds prefix:parentID:childID with both IDs written in
// BigEndian order so lexicographic sort works correctly.
func makeCompositeKey(prefix string, parentID, childID core.ID) []byte {
	prefixBytes := []byte(prefix + ":")
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes per ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(parentID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(childID))
	return buf
}

// makePartialCompositeKey builds prefix:parentID for range scans.
func makePartialCompositeKey(prefix string, parentID core.ID) []byte {
	prefixBytes := []byte(prefix + ":")
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(parentID))
	return buf
}
