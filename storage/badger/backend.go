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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

const (
	defaultSequenceBandwidth = 100

	// conflictRetries bounds commit retries when two transactions touch the
	// same counter row.
	conflictRetries = 5
)

// Backend owns the BadgerDB handle shared by every repository in this
// package. Repositories never open their own transactions directly; they go
// through WithTx or WithWriteTx so discard and commit semantics stay in one
// place.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// dbLogger routes BadgerDB's internal logging through slog.
type dbLogger struct {
	logger *slog.Logger
}

var _ badger.Logger = (*dbLogger)(nil)

func (l *dbLogger) logf(level slog.Level, msg string, items ...any) {
	l.logger.Log(context.Background(), level, fmt.Sprintf(msg, items...))
}

func (l *dbLogger) Errorf(msg string, items ...any)   { l.logf(slog.LevelError, msg, items...) }
func (l *dbLogger) Warningf(msg string, items ...any) { l.logf(slog.LevelWarn, msg, items...) }
func (l *dbLogger) Infof(msg string, items ...any)    { l.logf(slog.LevelInfo, msg, items...) }
func (l *dbLogger) Debugf(msg string, items ...any)   { l.logf(slog.LevelDebug, msg, items...) }

// OpenBackend opens the database at filePath, creating the directory when
// missing. With inMemory set the path is ignored and nothing touches disk.
func OpenBackend(filePath string, inMemory bool) (*Backend, error) {
	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := ensureDataDir(filePath); err != nil {
			return nil, err
		}
		opts = badger.DefaultOptions(filePath)
	}

	logger := slog.Default()
	opts.Logger = &dbLogger{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger database: %w", err)
	}

	return &Backend{db: db, logger: logger}, nil
}

func ensureDataDir(filePath string) error {
	info, err := os.Stat(filePath)
	switch {
	case os.IsNotExist(err):
		return os.MkdirAll(filePath, 0755)
	case err != nil:
		return err
	case !info.IsDir():
		return fmt.Errorf("%s is not a directory", filePath)
	}
	return nil
}

// Close closes the underlying database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed reports whether the database has been closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// WithTx runs fn inside a transaction, read-write when isWrite is set.
// The transaction is discarded on return; writers commit inside fn.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// WithWriteTx executes fn in a read-write transaction and commits it,
// retrying a bounded number of times when the commit conflicts with a
// concurrent transaction on the same keys. Counter rows on namespaces and
// organizations are shared between otherwise independent cascades, so
// conflicts are expected under load.
func (b *Backend) WithWriteTx(fn func(tx *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < conflictRetries; attempt++ {
		err = b.WithTx(func(tx *badger.Txn) error {
			if err := fn(tx); err != nil {
				return err
			}
			return tx.Commit()
		}, true)

		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		b.logger.Debug("transaction conflict, retrying", "attempt", attempt+1)
	}
	return err
}

// Sequence returns a named BadgerDB sequence for id allocation.
func (b *Backend) Sequence(name string) (*badger.Sequence, error) {
	return b.db.GetSequence([]byte(name), defaultSequenceBandwidth)
}
