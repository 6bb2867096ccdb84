package badger

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/lingclip/core"
)

// structureVersion is the structural layout version of the store. Opening a
// database whose on-disk structural version is below this value re-declares
// the collection markers before any operation runs.
const structureVersion = 2

// Backend wraps a BadgerDB instance and provides low-level operations.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenBackend opens a BadgerDB database at the specified path.
// Creates the directory if it doesn't exist, then performs one-time
// structural setup when the on-disk structural version is stale.
func OpenBackend(filePath string, inMemory bool) (*Backend, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		// Ensure directory exists
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	b := &Backend{
		db:     db,
		logger: slog.Default(),
	}

	if err := b.setupStructure(); err != nil {
		db.Close()
		return nil, err
	}

	return b, nil
}

// Close closes the BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed returns true if the database is closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// WithTx executes a function within a BadgerDB transaction.
// If isWrite is true, creates a read-write transaction.
// The transaction is automatically discarded if fn returns an error.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// setupStructure declares the fixed collections when opening a fresh store or
// one written by an older structural layout. The structural version is
// separate from the record schema version tracked in the meta collection:
// this one describes how keys are laid out, not how records are shaped.
func (b *Backend) setupStructure() error {
	return b.WithTx(func(tx *badger.Txn) error {
		stored := 0
		item, err := tx.Get([]byte(structVersionKey))
		switch err {
		case nil:
			err = item.Value(func(val []byte) error {
				v, parseErr := strconv.Atoi(string(val))
				if parseErr != nil {
					// Unreadable version marker: redo setup.
					return nil
				}
				stored = v
				return nil
			})
			if err != nil {
				return err
			}
		case badger.ErrKeyNotFound:
			// Fresh store.
		default:
			return err
		}

		if stored >= structureVersion {
			return nil
		}

		b.logger.Info("declaring collections", "from", stored, "to", structureVersion)
		for _, col := range core.Collections() {
			if err := tx.Set(makeCollectionMarkerKey(col), []byte{1}); err != nil {
				return err
			}
		}
		if err := tx.Set([]byte(structVersionKey), []byte(strconv.Itoa(structureVersion))); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
