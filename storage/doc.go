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

// Package storage provides the persistent vector-store abstraction used to hold
// embedded documents alongside the tabular database.
//
// This package defines the Collection interface and the Document model, and
// decouples them from a concrete backend. The only shipped backend lives in
// storage/badger.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the storage.Collection
// interface rather than a concrete type:
//
//	backend, err := badger.OpenBackend("/path/to/persist", false)
//	coll, err := backend.GetOrCreateCollection("rag-chat")  // storage.Collection
//
// # Documents
//
// A Document carries text content, string metadata and an optional
// embedding vector. Documents added without an ID receive one derived from
// their content with IDFromContent, so adding the same text twice stores a
// single document.
//
// # Thread Safety
//
// Collection implementations must be safe for concurrent use.
//
// # Context Support
//
// All collection methods accept context.Context. Pass context.Background()
// for operations without specific timeout requirements.
package storage
