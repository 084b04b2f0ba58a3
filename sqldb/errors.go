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

package sqldb

import "errors"

var (
	// ErrTableExists is returned by WriteTable in IfExistsFail mode when the
	// destination table is already present.
	ErrTableExists = errors.New("table already exists")

	// ErrEmptyTableName is returned when a record set has no name.
	ErrEmptyTableName = errors.New("table name cannot be empty")

	// ErrNoColumns is returned when a record set has no columns.
	ErrNoColumns = errors.New("record set has no columns")

	// ErrInvalidMode is returned for an unknown write mode.
	ErrInvalidMode = errors.New("invalid write mode")

	// ErrInvalidMaxAttempts is returned when retry attempts are not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than 0")
)
