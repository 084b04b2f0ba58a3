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

import "errors"

var (
	// ErrUnsupportedExtension is returned when a file's extension is not one of
	// the supported formats (.csv, .xlsx).
	ErrUnsupportedExtension = errors.New("unsupported file extension")

	// ErrEmptyFile is returned when a file has no header row.
	ErrEmptyFile = errors.New("file has no header row")

	// ErrMalformedRow is returned when a data row has more fields than the header.
	ErrMalformedRow = errors.New("row has more fields than header")

	// ErrNoSheets is returned when a workbook contains no worksheets.
	ErrNoSheets = errors.New("workbook has no sheets")
)
