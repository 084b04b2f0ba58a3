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
	"fmt"
	"io"
	"time"
)

// progressTracker prints a single, rewritten progress line while files are
// ingested.
type progressTracker struct {
	writer    io.Writer
	total     int
	current   int
	startTime time.Time
	reported  bool
}

func newProgressTracker(writer io.Writer, total int) *progressTracker {
	return &progressTracker{writer: writer, total: total}
}

func (p *progressTracker) start() {
	p.startTime = time.Now()
	p.current = 0
	p.reported = false
}

func (p *progressTracker) increment() {
	p.current++
	if p.current > p.total {
		p.current = p.total
	}
	p.report()
}

// stop ends the progress line so that following output starts on a new line.
func (p *progressTracker) stop() {
	if p.reported {
		fmt.Fprintln(p.writer)
		p.reported = false
	}
}

func (p *progressTracker) report() {
	elapsed := time.Since(p.startTime)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(p.current) / elapsed.Seconds()
	}

	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rProgress: %d/%d (%.1f%%) - %.1f files/s",
		p.current, p.total, percentage, rate)
	p.reported = true
}
