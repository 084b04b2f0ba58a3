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
	"strconv"
	"strings"
)

// Type is the inferred storage type of a column.
type Type int

const (
	// TypeText holds strings. Columns with mixed or all-null values are text.
	TypeText Type = iota
	// TypeInteger holds int64 values.
	TypeInteger
	// TypeReal holds float64 values.
	TypeReal
	// TypeBoolean holds bool values.
	TypeBoolean
)

func (t Type) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeReal:
		return "real"
	case TypeBoolean:
		return "boolean"
	default:
		return "text"
	}
}

// nullTokens are cell contents treated as missing values in addition to the
// empty string.
var nullTokens = map[string]struct{}{
	"#N/A": {}, "#NA": {}, "N/A": {}, "n/a": {}, "NA": {}, "<NA>": {},
	"NULL": {}, "null": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"None": {},
}

// IsNull reports whether a trimmed cell denotes a missing value.
func IsNull(cell string) bool {
	if cell == "" {
		return true
	}
	_, ok := nullTokens[cell]
	return ok
}

// inferColumn picks the narrowest type every present value parses as and
// converts the column to that type. present[i] false means the cell is null.
func inferColumn(cells []string, present []bool) (Type, []any) {
	for i, c := range cells {
		if present[i] && IsNull(c) {
			present[i] = false
		}
	}

	typ := detect(cells, present)
	values := make([]any, len(cells))
	for i, c := range cells {
		if !present[i] {
			continue
		}
		values[i] = convert(typ, c)
	}
	return typ, values
}

func detect(cells []string, present []bool) Type {
	seen := false
	isInt, isReal, isBool := true, true, true
	for i, c := range cells {
		if !present[i] {
			continue
		}
		seen = true
		if isInt {
			if _, err := strconv.ParseInt(c, 10, 64); err != nil {
				isInt = false
			}
		}
		if isReal {
			if _, err := strconv.ParseFloat(c, 64); err != nil {
				isReal = false
			}
		}
		if isBool {
			if _, ok := parseBool(c); !ok {
				isBool = false
			}
		}
		if !isInt && !isReal && !isBool {
			return TypeText
		}
	}

	switch {
	case !seen:
		return TypeText
	case isInt:
		return TypeInteger
	case isReal:
		return TypeReal
	case isBool:
		return TypeBoolean
	default:
		return TypeText
	}
}

func convert(typ Type, cell string) any {
	switch typ {
	case TypeInteger:
		v, _ := strconv.ParseInt(cell, 10, 64)
		return v
	case TypeReal:
		v, _ := strconv.ParseFloat(cell, 64)
		return v
	case TypeBoolean:
		v, _ := parseBool(cell)
		return v
	default:
		return cell
	}
}

func parseBool(s string) (bool, bool) {
	switch {
	case strings.EqualFold(s, "true"):
		return true, true
	case strings.EqualFold(s, "false"):
		return false, true
	}
	return false, false
}
