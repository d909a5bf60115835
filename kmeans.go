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
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// Clusterer partitions a set of observations into k clusters.
// Implementations must be deterministic: The same input must always result
// in the same clusters (in the same order).
type Clusterer interface {
	Partition(data clusters.Observations, k int) (clusters.Clusters, error)
}

// KMeans is a Clusterer using Lloyd's algorithm with k-means++ seeding.
//
// The algorithm is run Restarts times, each time with different initial
// centers (drawn from a random source seeded with Seed). The run with the
// smallest inertia (sum of squared distances of the observations to their
// centers) is returned. A run stops after MaxIterations iterations or when
// the sum of squared center shifts is at most Tolerance times the mean
// variance of the data.
type KMeans struct {
	Seed          int64
	Restarts      int
	MaxIterations int
	Tolerance     float64
}

// NewKMeans returns a KMeans with the default parameters: seed 27, 100
// restarts, at most 1000 iterations and tolerance 1e-5.
func NewKMeans() *KMeans {
	return &KMeans{
		Seed:          27,
		Restarts:      100,
		MaxIterations: 1000,
		Tolerance:     1e-5,
	}
}

// ColorObservations converts colors to observations with coordinates
// [r, g, b].
func ColorObservations(colors []colorful.Color) clusters.Observations {
	res := make(clusters.Observations, len(colors))
	for i, c := range colors {
		res[i] = clusters.Coordinates{c.R, c.G, c.B}
	}
	return res
}

// ClusterCentroid returns the mean of the observations of the cluster, if
// the cluster is empty its center is returned.
func ClusterCentroid(c clusters.Cluster) clusters.Coordinates {
	if center, err := c.Observations.Center(); err == nil {
		return center
	}
	return c.Center
}

func meanVariance(data clusters.Observations) float64 {
	if len(data) < 2 {
		return 0
	}
	dims := len(data[0].Coordinates())
	column := make([]float64, len(data))
	sum := 0.0
	for d := 0; d < dims; d++ {
		for i, obs := range data {
			column[i] = obs.Coordinates()[d]
		}
		sum += stat.Variance(column, nil)
	}
	res := sum / float64(dims)
	if math.IsNaN(res) {
		return 0
	}
	return res
}

// squaredDistance is the squared euclidean distance of a and b.
func squaredDistance(a, b []float64) float64 {
	res := 0.0
	for i, v := range a {
		d := v - b[i]
		res += d * d
	}
	return res
}

// Partition implements Clusterer.
//
// The runs work on the raw coordinates and a label per observation, the
// clusters are only built for the best run.
func (km *KMeans) Partition(data clusters.Observations, k int) (clusters.Clusters, error) {
	if len(data) == 0 || len(data[0].Coordinates()) == 0 {
		return nil, errors.New("Can't cluster an empty set of observations")
	}
	if k <= 0 {
		return nil, fmt.Errorf("Number of clusters must be positive, got %d", k)
	}
	restarts := max(km.Restarts, 1)
	rng := rand.New(rand.NewSource(km.Seed))
	tol := km.Tolerance * meanVariance(data)

	points := make([][]float64, len(data))
	for i, obs := range data {
		points[i] = obs.Coordinates()
	}
	labels := make([]int, len(points))

	var bestCenters [][]float64
	var bestLabels []int
	bestInertia := math.Inf(1)
	bestRun := -1
	for run := 0; run < restarts; run++ {
		centers := km.seed(points, k, rng)
		iterations := km.lloyd(points, centers, labels, tol)
		inertia, _ := assign(points, centers, labels)
		if inertia < bestInertia {
			bestCenters, bestLabels = centers, slices.Clone(labels)
			bestInertia, bestRun = inertia, run
		}
		if log.IsLevelEnabled(log.TraceLevel) {
			log.WithFields(log.Fields{
				"run":        run,
				"iterations": iterations,
				"inertia":    inertia,
			}).Trace("k-means run done")
		}
	}
	log.WithFields(log.Fields{
		"k":            k,
		"observations": len(data),
		"run":          bestRun,
		"inertia":      bestInertia,
	}).Debug("k-means finished")

	res := make(clusters.Clusters, len(bestCenters))
	for i, center := range bestCenters {
		res[i] = clusters.Cluster{Center: clusters.Coordinates(center)}
	}
	for j, obs := range data {
		l := bestLabels[j]
		res[l].Observations = append(res[l].Observations, obs)
	}
	return res, nil
}

// seed selects k initial centers with the k-means++ strategy: The first center
// is chosen uniformly, each further center is chosen with probability
// proportional to the squared distance to the closest center selected so far.
func (km *KMeans) seed(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	centers = append(centers, slices.Clone(points[rng.Intn(len(points))]))
	dist := make([]float64, len(points))
	for i, p := range points {
		dist[i] = squaredDistance(p, centers[0])
	}
	for len(centers) < k {
		total := 0.0
		for _, d := range dist {
			total += d
		}
		var next int
		if total <= 0 {
			// all observations are covered by a center already
			next = rng.Intn(len(points))
		} else {
			target := rng.Float64() * total
			next = len(points) - 1
			for i, d := range dist {
				target -= d
				if target < 0 {
					next = i
					break
				}
			}
		}
		center := slices.Clone(points[next])
		centers = append(centers, center)
		for i, p := range points {
			dist[i] = math.Min(dist[i], squaredDistance(p, center))
		}
	}
	return centers
}

// lloyd runs the iterations of Lloyd's algorithm and returns the number of
// iterations. centers are updated in place, labels holds the assignment of
// the last iteration.
func (km *KMeans) lloyd(points, centers [][]float64, labels []int, tol float64) int {
	maxIter := max(km.MaxIterations, 1)
	dims := len(points[0])
	sums := make([][]float64, len(centers))
	for i := range sums {
		sums[i] = make([]float64, dims)
	}
	counts := make([]int, len(centers))
	for i := range labels {
		labels[i] = -1
	}
	for iter := 0; iter < maxIter; iter++ {
		if _, changed := assign(points, centers, labels); changed == 0 {
			return iter + 1
		}
		clear(counts)
		for i := range sums {
			clear(sums[i])
		}
		for j, p := range points {
			l := labels[j]
			counts[l]++
			for d, v := range p {
				sums[l][d] += v
			}
		}
		used := make(map[int]struct{})
		shift := 0.0
		for i := range centers {
			var center []float64
			if counts[i] > 0 {
				center = make([]float64, dims)
				for d, v := range sums[i] {
					center[d] = v / float64(counts[i])
				}
			} else {
				center = farthestPoint(points, centers, labels, used)
			}
			if center == nil {
				continue
			}
			shift += squaredDistance(center, centers[i])
			centers[i] = center
		}
		if shift <= tol {
			return iter + 1
		}
	}
	return maxIter
}

// assign assigns each point to the nearest center (the first one on ties).
// It returns the inertia of the assignment and the number of points that
// changed their label.
func assign(points, centers [][]float64, labels []int) (float64, int) {
	inertia := 0.0
	changed := 0
	for j, p := range points {
		nearest, nearestDist := 0, squaredDistance(p, centers[0])
		for i := 1; i < len(centers); i++ {
			if d := squaredDistance(p, centers[i]); d < nearestDist {
				nearest, nearestDist = i, d
			}
		}
		if labels[j] != nearest {
			labels[j] = nearest
			changed++
		}
		inertia += nearestDist
	}
	return inertia, changed
}

// farthestPoint is used to re-seed empty clusters: It returns a copy of the
// point that is farthest from the center of its cluster, ignoring points
// already used for re-seeding.
func farthestPoint(points, centers [][]float64, labels []int, used map[int]struct{}) []float64 {
	best := -1
	bestDist := -1.0
	for j, p := range points {
		if _, has := used[j]; has {
			continue
		}
		if d := squaredDistance(p, centers[labels[j]]); d > bestDist {
			best, bestDist = j, d
		}
	}
	if best < 0 {
		return nil
	}
	used[best] = struct{}{}
	return slices.Clone(points[best])
}
