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

package config

import (
	"fmt"
	"io"
	"os"
)

// RemoveDirectory removes path and its contents if it exists, reporting the
// outcome to w.
func RemoveDirectory(path string, w io.Writer) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(w, "The directory '%s' does not exist.\n", path)
			return nil
		}
		return err
	}

	if err := os.RemoveAll(path); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return err
	}
	fmt.Fprintf(w, "The directory '%s' has been successfully removed.\n", path)
	return nil
}
