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
	"os"
)

// DecodeFile classifies path by extension and decodes it. The RecordSet is
// named after the file with its extension stripped.
func DecodeFile(path string) (*RecordSet, error) {
	format, err := Classify(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	name := TableName(path)
	switch format {
	case FormatCSV:
		return DecodeCSV(f, name)
	case FormatXLSX:
		return DecodeXLSX(f, name)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExtension, format)
	}
}
