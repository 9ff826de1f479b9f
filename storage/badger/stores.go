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

// Stores bundles all repositories sharing one backend.
type Stores struct {
	Backend       *Backend
	Organizations *OrganizationRepository
	Namespaces    *NamespaceRepository
	Jobs          *JobRepository
	Documents     *DocumentRepository
	StepLog       *StepLogRepository
	Vectors       *VectorIndex
}

// Close closes all repositories and the backend.
func (s *Stores) Close() error {
	s.Jobs.Close()
	s.Documents.Close()
	s.Namespaces.Close()
	s.Organizations.Close()
	return s.Backend.Close()
}

// NewStores opens a backend at filePath and creates all repositories on it.
func NewStores(filePath string, inMemory bool) (*Stores, error) {
	backend, err := OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	orgRepo, err := NewOrganizationRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	nsRepo, err := NewNamespaceRepository(backend)
	if err != nil {
		orgRepo.Close()
		backend.Close()
		return nil, err
	}

	jobRepo, err := NewJobRepository(backend)
	if err != nil {
		nsRepo.Close()
		orgRepo.Close()
		backend.Close()
		return nil, err
	}

	docRepo, err := NewDocumentRepository(backend)
	if err != nil {
		jobRepo.Close()
		nsRepo.Close()
		orgRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Stores{
		Backend:       backend,
		Organizations: orgRepo,
		Namespaces:    nsRepo,
		Jobs:          jobRepo,
		Documents:     docRepo,
		StepLog:       NewStepLogRepository(backend),
		Vectors:       NewVectorIndex(backend),
	}, nil
}

// NewMemoryStores creates in-memory repositories for testing.
// Caller must close the returned stores when done.
func NewMemoryStores() (*Stores, error) {
	return NewStores("", true)
}
