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
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MarshalDocument serializes a Document to bytes.
// The ID is not part of the payload; it is the storage key.
func MarshalDocument(doc *Document) []byte {
	buf := make([]byte, documentSize(doc))
	n := ord.String.Marshal(doc.Content, buf)
	n += varint.PositiveInt.Marshal(len(doc.Metadata), buf[n:])
	for _, k := range slices.Sorted(maps.Keys(doc.Metadata)) {
		n += ord.String.Marshal(k, buf[n:])
		n += ord.String.Marshal(doc.Metadata[k], buf[n:])
	}
	n += varint.PositiveInt.Marshal(len(doc.Vector), buf[n:])
	for _, v := range doc.Vector {
		n += raw.Float32.Marshal(v, buf[n:])
	}
	varint.Int64.Marshal(doc.InsertedAt.UnixMicro(), buf[n:])
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(id string, data []byte) (doc *Document, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrSerializationFailed, err)
		}
	}()

	doc = &Document{ID: id}
	var n, m int

	if doc.Content, m, err = ord.String.Unmarshal(data); err != nil {
		return nil, err
	}
	n += m

	var count int
	if count, m, err = varint.PositiveInt.Unmarshal(data[n:]); err != nil {
		return nil, err
	}
	n += m
	if count > len(data)-n {
		return nil, ErrTruncatedData
	}
	if count > 0 {
		doc.Metadata = make(map[string]string, count)
	}
	for i := 0; i < count; i++ {
		var k, v string
		if k, m, err = ord.String.Unmarshal(data[n:]); err != nil {
			return nil, err
		}
		n += m
		if v, m, err = ord.String.Unmarshal(data[n:]); err != nil {
			return nil, err
		}
		n += m
		doc.Metadata[k] = v
	}

	if count, m, err = varint.PositiveInt.Unmarshal(data[n:]); err != nil {
		return nil, err
	}
	n += m
	if count*4 > len(data)-n {
		return nil, ErrTruncatedData
	}
	if count > 0 {
		doc.Vector = make([]float32, count)
	}
	for i := 0; i < count; i++ {
		if doc.Vector[i], m, err = raw.Float32.Unmarshal(data[n:]); err != nil {
			return nil, err
		}
		n += m
	}

	var micros int64
	if micros, _, err = varint.Int64.Unmarshal(data[n:]); err != nil {
		return nil, err
	}
	doc.InsertedAt = time.UnixMicro(micros).UTC()
	return doc, nil
}

func documentSize(doc *Document) int {
	size := ord.String.Size(doc.Content)
	size += varint.PositiveInt.Size(len(doc.Metadata))
	for k, v := range doc.Metadata {
		size += ord.String.Size(k) + ord.String.Size(v)
	}
	size += varint.PositiveInt.Size(len(doc.Vector))
	for _, v := range doc.Vector {
		size += raw.Float32.Size(v)
	}
	size += varint.Int64.Size(doc.InsertedAt.UnixMicro())
	return size
}
