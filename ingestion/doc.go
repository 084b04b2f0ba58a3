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

// Package ingestion loads a directory of tabular files into an embedded
// relational database.
//
// The Pipeline type runs the import as a single, sequential pass:
//   - List the source directory (sorted by name unless WithUnsortedListing is set)
//   - Decode each .csv or .xlsx file into a tabular.RecordSet
//   - Persist each record set as a table named after the file, extension stripped
//   - Read back the table catalog and report it
//
// The first file that cannot be decoded or persisted aborts the run. The
// returned *FileError matches ErrUnsupportedFileType and unwraps to the
// underlying cause, so callers can tell an unknown extension from a
// malformed file or a database failure.
package ingestion
