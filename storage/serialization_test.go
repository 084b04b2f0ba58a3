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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	a := IDFromContent("titanic.csv")
	b := IDFromContent("titanic.csv")
	c := IDFromContent("diabetes.csv")

	assert.Len(t, a, 16)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestMarshalUnmarshalDocument(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		doc  *Document
	}{
		{
			name: "content only",
			doc: &Document{
				ID:         "a1",
				Content:    "Hello",
				InsertedAt: now,
			},
		},
		{
			name: "with metadata",
			doc: &Document{
				ID:      "a2",
				Content: "table titanic has 891 rows",
				Metadata: map[string]string{
					"source": "titanic.csv",
					"table":  "titanic",
				},
				InsertedAt: now,
			},
		},
		{
			name: "with vector",
			doc: &Document{
				ID:         "a3",
				Content:    "embedded",
				Vector:     []float32{0.1, -0.25, 0.5, 1},
				InsertedAt: now,
			},
		},
		{
			name: "unicode content",
			doc: &Document{
				ID:         "a4",
				Content:    "Ünïcödé 数据 🚀",
				Metadata:   map[string]string{"lang": "多"},
				Vector:     []float32{0.3},
				InsertedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalDocument(tt.doc)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalDocument(tt.doc.ID, data)
			require.NoError(t, err)
			assert.Equal(t, tt.doc, decoded)
		})
	}
}

func TestMarshalDocument_Deterministic(t *testing.T) {
	doc := &Document{
		Content:  "x",
		Metadata: map[string]string{"b": "2", "a": "1", "c": "3"},
	}
	assert.Equal(t, MarshalDocument(doc), MarshalDocument(doc))
}

func TestUnmarshalDocument_Invalid(t *testing.T) {
	valid := MarshalDocument(&Document{
		Content:  "some content",
		Metadata: map[string]string{"k": "v"},
		Vector:   []float32{1, 2, 3},
	})

	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated", valid[:len(valid)/2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalDocument("x", tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}
