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
	"path/filepath"
	"strings"
)

// Format identifies how a source file is decoded.
type Format int

const (
	// FormatCSV is a comma-separated values file.
	FormatCSV Format = iota + 1
	// FormatXLSX is an Office Open XML spreadsheet.
	FormatXLSX
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// Classify returns the Format for a file name based on its extension.
// Matching is exact: "data.CSV" is not a CSV file.
func Classify(name string) (Format, error) {
	switch filepath.Ext(name) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedExtension, filepath.Ext(name))
	}
}

// TableName derives a table name from a file name by stripping its final
// extension. The result is used verbatim.
func TableName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
