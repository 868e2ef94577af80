// Copyright 2026 Google LLC
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


package report

import (
	"math"
	"slices"
	"time"
)

// Percentiles is a latency distribution summary.
type Percentiles struct {
	P50, P90, P99 time.Duration
}

// computePercentiles returns false when vals is empty. vals need not be
// sorted and is left untouched. Each percentile interpolates linearly
// between the two observations around its rank, rounded to the nanosecond.
func computePercentiles(vals []time.Duration) (Percentiles, bool) {
	if len(vals) == 0 {
		return Percentiles{}, false
	}
	sorted := slices.Clone(vals)
	slices.Sort(sorted)
	last := len(sorted) - 1

	// q is in [0, 1].
	at := func(q float64) time.Duration {
		rank := q * float64(last)
		lo := int(rank)
		if lo >= last {
			return sorted[last]
		}
		gap := float64(sorted[lo+1] - sorted[lo])
		return sorted[lo] + time.Duration(math.Round((rank-float64(lo))*gap))
	}

	return Percentiles{
		P50: at(0.50),
		P90: at(0.90),
		P99: at(0.99),
	}, true
}
