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

package storage

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Document is a single entry in a vector-store collection.
type Document struct {
	ID         string
	Content    string
	Metadata   map[string]string
	Vector     []float32
	InsertedAt time.Time
}

// IDFromContent derives a stable 64-bit document ID from text.
func IDFromContent(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Collection is a named set of documents in a persistent vector store.
// Implementations must be thread-safe.
type Collection interface {
	// Name returns the collection name.
	Name() string

	// Add stores one or more documents.
	// Documents with an empty ID get IDFromContent(Content).
	// Sets InsertedAt if not already set.
	// Returns ErrEmptyContent if any document has no content; nothing is written in that case.
	Add(ctx context.Context, docs ...*Document) ([]*Document, error)

	// Get retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	Get(ctx context.Context, id string) (*Document, error)

	// Count returns the number of documents in the collection.
	Count(ctx context.Context) (int, error)

	// Delete removes documents by ID.
	// Returns ErrNotFound if any document doesn't exist.
	Delete(ctx context.Context, ids ...string) error
}
