// Copyright 2018 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pixelplate

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
)

// VectorMetric is a function that takes two vectors of the same length and
// returns a metric value ("distance") of the two.
type VectorMetric func(p, q []float64) float64

// MeanAbsoluteDeviation returns (|p1 - q1| + ... + |pn - qn|) / n.
func MeanAbsoluteDeviation(p, q []float64) float64 {
	if len(p) == 0 {
		return 0
	}
	return floats.Distance(p, q, 1) / float64(len(p))
}

// MeanSquaredDeviation returns ((p1 - q1)² + ... + (pn - qn)²) / n.
func MeanSquaredDeviation(p, q []float64) float64 {
	if len(p) == 0 {
		return 0
	}
	diff := make([]float64, len(p))
	floats.SubTo(diff, p, q)
	return floats.Dot(diff, diff) / float64(len(p))
}

// ColorVector returns the components of the color as a vector [r, g, b].
func ColorVector(c colorful.Color) []float64 {
	return []float64{c.R, c.G, c.B}
}

// NearestEntry returns the entry whose color has the smallest metric value
// compared with the target color. If several entries have the same value
// the first one is returned.
// The second return value is false if entries is empty.
func NearestEntry(entries []PaletteEntry, target colorful.Color, metric VectorMetric) (PaletteEntry, bool) {
	if len(entries) == 0 {
		return PaletteEntry{}, false
	}
	targetVec := ColorVector(target)
	best := 0
	bestDist := math.Inf(1)
	for i, entry := range entries {
		dist := metric(targetVec, ColorVector(entry.Color))
		if dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return entries[best], true
}
