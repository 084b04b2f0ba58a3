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

package tabular

import (
	"fmt"
	"strings"
)

// Column is a named, typed sequence of values. Values are aligned by row
// index with the other columns of the same RecordSet. A nil value is null.
type Column struct {
	Name   string
	Type   Type
	Values []any
}

// RecordSet is an in-memory, column-oriented view of one source file.
type RecordSet struct {
	// Name is the destination table name.
	Name    string
	Columns []Column
}

// Rows returns the number of rows in the record set.
func (rs *RecordSet) Rows() int {
	if rs == nil || len(rs.Columns) == 0 {
		return 0
	}
	return len(rs.Columns[0].Values)
}

// ColumnNames returns the column names in order.
func (rs *RecordSet) ColumnNames() []string {
	names := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		names[i] = c.Name
	}
	return names
}

// Row returns the values of row i across all columns.
func (rs *RecordSet) Row(i int) []any {
	row := make([]any, len(rs.Columns))
	for j, c := range rs.Columns {
		row[j] = c.Values[i]
	}
	return row
}

// fromRows builds a RecordSet from a header and string rows, applying the
// null, padding and type inference rules.
func fromRows(name string, header []string, rows [][]string) (*RecordSet, error) {
	names := headerNames(header)
	cols := make([][]string, len(names))
	present := make([][]bool, len(names))

	line := 1
	for _, row := range rows {
		line++
		if isBlank(row) {
			continue
		}
		if len(row) > len(names) {
			return nil, fmt.Errorf("%w: row %d has %d fields, expected %d", ErrMalformedRow, line, len(row), len(names))
		}
		for j := range names {
			var cell string
			ok := false
			if j < len(row) {
				cell = strings.TrimSpace(row[j])
				ok = cell != ""
			}
			cols[j] = append(cols[j], cell)
			present[j] = append(present[j], ok)
		}
	}

	rs := &RecordSet{Name: name, Columns: make([]Column, len(names))}
	for j, n := range names {
		typ, values := inferColumn(cols[j], present[j])
		rs.Columns[j] = Column{Name: n, Type: typ, Values: values}
	}
	return rs, nil
}

// headerNames fills empty header cells with "Unnamed: <i>" and disambiguates
// repeated names as "name.1", "name.2", ...
func headerNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		if _, dup := seen[name]; dup {
			k := seen[h]
			for {
				k++
				name = fmt.Sprintf("%s.%d", h, k)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[h] = k
		}
		seen[name] = 0
		names[i] = name
	}
	return names
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
