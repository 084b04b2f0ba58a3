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

// Package config loads application configuration from a YAML file and
// environment variables.
//
// Paths in the YAML file are resolved against the project root, which is
// located by walking up from the working directory. Credentials for the hosted
// chat and embedding services come from the environment, optionally seeded
// from a .env file in the project root. Values already set in the process
// environment take precedence over the .env file.
package config
