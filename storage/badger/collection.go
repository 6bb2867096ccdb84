package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/lingclip/core"
	"github.com/poiesic/lingclip/storage"
)

var _ storage.PrimaryStore = (*Backend)(nil)

// ListAll returns every record in a collection.
func (b *Backend) ListAll(ctx context.Context, col core.Collection) ([]storage.Record, error) {
	var results []storage.Record
	err := b.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(col)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			val, err := iter.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			results = append(results, storage.Record(val))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Get retrieves one record by primary key.
func (b *Backend) Get(ctx context.Context, col core.Collection, key string) (storage.Record, error) {
	var result storage.Record
	err := b.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRecordKey(col, key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		result = storage.Record(val)
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Put inserts or replaces the record stored under key.
func (b *Backend) Put(ctx context.Context, col core.Collection, key string, rec storage.Record) error {
	return b.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeRecordKey(col, key), []byte(rec)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Delete removes the record stored under key. Deleting a missing key is not
// an error.
func (b *Backend) Delete(ctx context.Context, col core.Collection, key string) error {
	return b.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeRecordKey(col, key)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Clear removes every record in a collection.
func (b *Backend) Clear(ctx context.Context, col core.Collection) error {
	return b.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(col)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)

		var keys [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}
