// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package util

import (
	"fmt"
	"runtime"
	"time"
)

// PerfStats records the time taken and memory allocated since it was created.
type PerfStats struct {
	startTime time.Time
	startMem  uint64
	startGc   uint32
}

// NewPerfStats creates a snapshot of the current time and memory allocation.
func NewPerfStats() *PerfStats {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	return &PerfStats{time.Now(), m.TotalAlloc, m.NumGC}
}

// Report summarises the difference between now and when this snapshot was
// taken, e.g. "loading took 0.12s using 3 Mb (1 GC events)".
func (p *PerfStats) Report(prefix string) string {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	alloc := (m.TotalAlloc - p.startMem) / 1024 / 1024
	gcs := m.NumGC - p.startGc
	//
	return fmt.Sprintf("%s took %0.2fs using %v Mb (%v GC events)", prefix, time.Since(p.startTime).Seconds(), alloc, gcs)
}
