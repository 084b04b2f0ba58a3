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
	"io"

	"github.com/xuri/excelize/v2"
)

// DecodeXLSX reads the first worksheet of a workbook into a RecordSet named
// name. Cell values are read raw, without number formatting applied.
func DecodeXLSX(r io.Reader, name string) (*RecordSet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	// Leading blank rows are skipped before the header, as with CSV input.
	for len(rows) > 0 && isBlank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	return fromRows(name, widenHeader(rows[0], rows[1:]), rows[1:])
}

// widenHeader pads header with empty cells up to the widest data row, so
// values outside the labelled range become "Unnamed: <i>" columns.
func widenHeader(header []string, rows [][]string) []string {
	width := len(header)
	for _, row := range rows {
		width = max(width, len(row))
	}
	if width == len(header) {
		return header
	}
	widened := make([]string, width)
	copy(widened, header)
	return widened
}
