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

// Package tabular decodes comma-separated and spreadsheet files into
// column-oriented record sets.
//
// A RecordSet is the unit of transfer between a source file and a database
// table. Decoding follows the usual tabular conventions:
//   - The first row is the header and names the columns
//   - Empty cells become nil (SQL NULL)
//   - Blank rows are skipped
//   - Rows shorter than the header are padded with nil
//
// Each column carries an inferred Type (integer, real or text) computed from
// the values observed in that column.
package tabular
