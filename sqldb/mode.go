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

import "fmt"

// Mode determines what WriteTable does when the destination table exists.
type Mode string

const (
	IfExistsReplace Mode = "replace" // drop the table and recreate it
	IfExistsAppend  Mode = "append"  // insert rows into the existing table
	IfExistsFail    Mode = "fail"    // return ErrTableExists
)

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case IfExistsReplace, IfExistsAppend, IfExistsFail:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}
