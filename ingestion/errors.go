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

package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFileType matches every per-file ingestion failure.
	ErrUnsupportedFileType = errors.New("the selected file type is not supported")

	// ErrSourceDirRequired is returned when no source directory is provided.
	ErrSourceDirRequired = errors.New("source directory required")

	// ErrLocatorRequired is returned when no database locator is provided.
	ErrLocatorRequired = errors.New("database locator required")

	// ErrDatabasePathRequired is returned when the locator yields an empty path.
	ErrDatabasePathRequired = errors.New("database path required")

	// ErrDuplicateTableName is returned when two source files map to the same
	// table name.
	ErrDuplicateTableName = errors.New("duplicate table name")
)

// Kind classifies a per-file failure.
type Kind int

const (
	// KindUnsupportedExtension means the file is neither .csv nor .xlsx.
	KindUnsupportedExtension Kind = iota + 1
	// KindDecode means the file could not be read into a record set.
	KindDecode
	// KindPersist means the record set could not be written to the database.
	KindPersist
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedExtension:
		return "unsupported extension"
	case KindDecode:
		return "decode failure"
	case KindPersist:
		return "persist failure"
	default:
		return "unknown"
	}
}

// FileError reports the file that aborted a run and why.
type FileError struct {
	File string
	Kind Kind
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%v: %s: %s: %v", ErrUnsupportedFileType, e.File, e.Kind, e.Err)
}

// Unwrap exposes both ErrUnsupportedFileType and the underlying cause.
func (e *FileError) Unwrap() []error {
	return []error{ErrUnsupportedFileType, e.Err}
}
