// Copyright 2025 Poiesic Systems
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
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/tabrag/storage"
)

// Collection is a badger-backed storage.Collection.
type Collection struct {
	backend *Backend
	name    string
}

var _ storage.Collection = (*Collection)(nil)

// GetOrCreateCollection returns the named collection, registering it on
// first use.
func (b *Backend) GetOrCreateCollection(name string) (storage.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsRune(name, 0) {
		return nil, storage.ErrInvalidCollection
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.collections[name]; ok {
		return c, nil
	}

	err := b.WithTx(func(tx *badger.Txn) error {
		key := makeCollectionKey(name)
		_, err := tx.Get(key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		created := time.Now().UTC().Format(time.RFC3339)
		if err := tx.Set(key, []byte(created)); err != nil {
			return err
		}
		b.logger.Debug("created collection", "name", name)
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, fmt.Errorf("get or create collection %q: %w", name, err)
	}

	c := &Collection{backend: b, name: name}
	b.collections[name] = c
	return c, nil
}

// ListCollections returns the registered collection names, sorted.
func (b *Backend) ListCollections() ([]string, error) {
	names := []string{}
	err := b.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makeCollectionKey("")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			names = append(names, collectionNameFromKey(iter.Item().Key()))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// Add stores documents, assigning content-derived IDs where missing.
func (c *Collection) Add(ctx context.Context, docs ...*storage.Document) ([]*storage.Document, error) {
	for _, doc := range docs {
		if strings.TrimSpace(doc.Content) == "" {
			return nil, storage.ErrEmptyContent
		}
	}

	err := c.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC().Truncate(time.Microsecond)
		for _, doc := range docs {
			if err := ctx.Err(); err != nil {
				return err
			}
			if doc.ID == "" {
				doc.ID = storage.IDFromContent(doc.Content)
			}
			if doc.InsertedAt.IsZero() {
				doc.InsertedAt = now
			}
			key := makeDocumentKey(c.name, doc.ID)
			if err := tx.Set(key, storage.MarshalDocument(doc)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Get retrieves a single document by ID.
func (c *Collection) Get(ctx context.Context, id string) (*storage.Document, error) {
	var doc *storage.Document
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDocumentKey(c.name, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			doc, err = storage.UnmarshalDocument(id, val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Count returns the number of documents in the collection.
func (c *Collection) Count(ctx context.Context) (int, error) {
	count := 0
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makePartialDocumentKey(c.name)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Delete removes documents by ID. Either all are removed or none.
func (c *Collection) Delete(ctx context.Context, ids ...string) error {
	return c.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeDocumentKey(c.name, id)
			if _, err := tx.Get(key); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
				}
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}
