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

import (
	"encoding/json"
	"strconv"
)

// MetadataNodeContent is the vector metadata key carrying the serialized
// content node for a chunk.
const MetadataNodeContent = "_node_content"

// MetadataDocumentId is the vector metadata key carrying the owning
// document's id.
const MetadataDocumentId = "documentId"

// ContentNode is the chunk payload stored under MetadataNodeContent. The
// field tags follow the llama-index node serialization so indexes written by
// other tooling stay readable.
type ContentNode struct {
	Id            string         `json:"id_"`
	Text          string         `json:"text"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	Relationships map[string]any `json:"relationships,omitempty"`
}

// EncodeContentNode serializes a node for storage in vector metadata.
func EncodeContentNode(node *ContentNode) (string, error) {
	raw, err := json.Marshal(node)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeContentNode parses a serialized content node. Returns an error for
// malformed payloads; callers decide whether to drop or fail.
func DecodeContentNode(raw string) (*ContentNode, error) {
	var node ContentNode
	if err := json.Unmarshal([]byte(raw), &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// Partition returns the vector-index partition for a namespace, scoped
// further by tenant when the namespace is multi-tenant. Partition-level
// isolation means tenant data never shares a scan range.
func Partition(namespaceID ID, tenantID string) string {
	name := "quarry:" + strconv.FormatUint(uint64(namespaceID), 10)
	if tenantID != "" {
		name += ":" + tenantID
	}
	return name
}
