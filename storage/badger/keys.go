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

import "strings"

const (
	collectionPrefix = "coll"
	documentPrefix   = "doc"
)

func makeCollectionKey(name string) []byte {
	return []byte(collectionPrefix + ":" + name)
}

func collectionNameFromKey(key []byte) string {
	return strings.TrimPrefix(string(key), collectionPrefix+":")
}

// Document keys embed the collection name followed by a NUL separator so one
// collection's prefix never matches another whose name it prefixes.
func makePartialDocumentKey(collection string) []byte {
	prefix := documentPrefix + ":"
	buf := make([]byte, 0, len(prefix)+len(collection)+1)
	buf = append(buf, prefix...)
	buf = append(buf, collection...)
	return append(buf, 0)
}

func makeDocumentKey(collection, id string) []byte {
	return append(makePartialDocumentKey(collection), id...)
}
