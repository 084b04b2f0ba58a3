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

import "errors"

var (
	// ErrConfigNotFound is returned when the YAML configuration file does not exist.
	// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
	ErrConfigNotFound = errors.New("config file not found")

	// ErrProjectRootNotFound is returned when no project root marker is found.
	ErrProjectRootNotFound = errors.New("project root not found")

	// ErrMissingDirectory is returned when a required directory setting is empty.
	ErrMissingDirectory = errors.New("required directory not configured")

	// ErrMissingCollection is returned when no vector collection name is set.
	ErrMissingCollection = errors.New("collection name required")

	// ErrInvalidTopK is returned when top_k is less than 1.
	ErrInvalidTopK = errors.New("top_k must be at least 1")

	// ErrInvalidTemperature is returned when temperature is outside [0, 2].
	ErrInvalidTemperature = errors.New("temperature must be between 0 and 2")
)
