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
	"fmt"
	"image"
	"math"
	"runtime"

	"github.com/lucasb-eyer/go-colorful"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultMaxCandidates is the default limit for the number of candidate
	// fills of a single tile.
	DefaultMaxCandidates = 1 << 20
)

// QuantizeOptions controls the execution of Quantize.
type QuantizeOptions struct {
	// NumRoutines is the number of go routines that evaluate blocks
	// concurrently. Values ≤ 0 mean one routine.
	NumRoutines int

	// MaxCandidates is the maximal number of candidate fills of a tile,
	// that is palette size ^ tile area. If there are more candidates
	// Quantize returns an error wrapping ErrResourceExhausted.
	// Values ≤ 0 mean DefaultMaxCandidates.
	MaxCandidates int

	// Progress is called after each block with the number of blocks done so
	// far, it may be nil.
	Progress ProgressFunc
}

// DefaultQuantizeOptions returns options using one routine per CPU and the
// default candidate limit.
func DefaultQuantizeOptions() QuantizeOptions {
	return QuantizeOptions{
		NumRoutines:   runtime.NumCPU(),
		MaxCandidates: DefaultMaxCandidates,
	}
}

// NumCandidates returns paletteSize ^ area, the number of different fills
// of a tile with area cells. The second return value is false if the number
// exceeds limit or if paletteSize is not positive.
func NumCandidates(paletteSize, area, limit int) (int, bool) {
	if paletteSize <= 0 {
		return 0, false
	}
	res := 1
	for i := 0; i < area; i++ {
		if res > limit/paletteSize {
			return -1, false
		}
		res *= paletteSize
	}
	return res, res <= limit
}

// candidateCounter enumerates all fills of a tile. It is a counter with
// one digit per cell, each digit is an index in the palette. The last
// digit changes fastest.
type candidateCounter struct {
	radix  int
	digits []int
}

func newCandidateCounter(radix, length int) *candidateCounter {
	return &candidateCounter{radix: radix, digits: make([]int, length)}
}

// Next advances to the next candidate. It returns false once all
// candidates have been enumerated, the counter is back to all zeros then.
func (c *candidateCounter) Next() bool {
	for i := len(c.digits) - 1; i >= 0; i-- {
		c.digits[i]++
		if c.digits[i] < c.radix {
			return true
		}
		c.digits[i] = 0
	}
	return false
}

// TileScore is the score of a candidate fill for a block. Mean is the
// difference of the average colors of block and candidate, Detail the
// average difference per cell. Scores are compared lexicographically, see
// Less.
type TileScore struct {
	Mean, Detail float64
}

// Less returns true if s is a better score than other: Either the mean
// difference is smaller or the mean difference is equal and the detail
// difference is smaller.
func (s TileScore) Less(other TileScore) bool {
	if s.Mean != other.Mean {
		return s.Mean < other.Mean
	}
	return s.Detail < other.Detail
}

// tileMatcher finds the best fills for blocks. It holds the mean color of
// each candidate, indexed in enumeration order.
type tileMatcher struct {
	area    int
	palette []colorful.Color
	means   []colorful.Color
}

func newTileMatcher(palette []colorful.Color, area, maxCandidates int) (*tileMatcher, error) {
	num, ok := NumCandidates(len(palette), area, maxCandidates)
	if !ok {
		return nil, fmt.Errorf("%w: %d colors and %d cells per tile exceed the limit of %d candidates",
			ErrResourceExhausted, len(palette), area, maxCandidates)
	}
	m := &tileMatcher{
		area:    area,
		palette: palette,
		means:   make([]colorful.Color, 0, num),
	}
	counts := make([]int, len(palette))
	counter := newCandidateCounter(len(palette), area)
	for {
		clear(counts)
		for _, d := range counter.digits {
			counts[d]++
		}
		m.means = append(m.means, m.countMean(counts))
		if !counter.Next() {
			break
		}
	}
	return m, nil
}

// countMean computes the mean color of a candidate given how often each
// palette color occurs. The sum is always computed in palette order, so all
// candidates with the same colors (in any arrangement) get exactly the same
// mean.
func (m *tileMatcher) countMean(counts []int) colorful.Color {
	var r, g, b float64
	for p, n := range counts {
		if n == 0 {
			continue
		}
		c := m.palette[p]
		r += float64(n) * c.R
		g += float64(n) * c.G
		b += float64(n) * c.B
	}
	n := float64(m.area)
	return colorful.Color{R: r / n, G: g / n, B: b / n}
}

func meanColor(colors []colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	n := float64(len(colors))
	return colorful.Color{R: r / n, G: g / n, B: b / n}
}

func meanScore(a, b colorful.Color) float64 {
	return (math.Abs(a.R-b.R) + math.Abs(a.G-b.G) + math.Abs(a.B-b.B)) / 3
}

func (m *tileMatcher) detailScore(block []colorful.Color, digits []int) float64 {
	sum := 0.0
	for i, c := range block {
		p := m.palette[digits[i]]
		sum += math.Abs(c.R-p.R) + math.Abs(c.G-p.G) + math.Abs(c.B-p.B)
	}
	return sum / float64(3*len(block))
}

// bestMatch returns the palette indices of the best fill for the block
// (cells in row major order) and its score. If two candidates have the same
// score the one enumerated first wins.
func (m *tileMatcher) bestMatch(block []colorful.Color) ([]int, TileScore) {
	blockMean := meanColor(block)
	counter := newCandidateCounter(len(m.palette), m.area)
	best := make([]int, m.area)
	bestScore := TileScore{Mean: math.Inf(1), Detail: math.Inf(1)}
	for k := 0; ; k++ {
		mean := meanScore(blockMean, m.means[k])
		// the detail score is only required if the candidate can win
		if mean <= bestScore.Mean {
			score := TileScore{Mean: mean, Detail: m.detailScore(block, counter.digits)}
			if score.Less(bestScore) {
				bestScore = score
				copy(best, counter.digits)
			}
		}
		if !counter.Next() {
			break
		}
	}
	return best, bestScore
}

// Quantize assigns each cell of the reduced image a palette color.
//
// The reduced image is divided into blocks of tile.Cols x tile.Rows cells.
// For each block all possible fills with palette colors (each cell gets one
// color) are compared with the block and the best one is used. A fill is
// better than another if the average color of the fill is closer to the
// average color of the block (mean absolute difference over the channels).
// If both are equally close the one with the smaller mean absolute
// difference per cell wins.
//
// The result is the number image containing the ids and the pixel image
// containing the colors of the selected fills.
//
// The grid dimensions must be multiples of the tile size, otherwise an
// error wrapping ErrIncompatibleTileSize is returned before any work is done.
// Blocks are evaluated by opts.NumRoutines go routines concurrently.
func Quantize(reduced *ColorGrid, palette *Palette, tile GridSize, opts QuantizeOptions) (*NumberImage, *ColorGrid, error) {
	division, divErr := NewFixedSizeDivider(tile.Cols, tile.Rows).Divide(image.Rect(0, 0, reduced.Cols, reduced.Rows))
	if divErr != nil {
		return nil, nil, divErr
	}
	if palette == nil || palette.Len() == 0 {
		return nil, nil, ErrEmptyPalette
	}
	maxCandidates := opts.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}
	colors := make([]colorful.Color, palette.Len())
	for i, entry := range palette.Entries {
		colors[i] = entry.Color
	}
	matcher, matcherErr := newTileMatcher(colors, tile.Area(), maxCandidates)
	if matcherErr != nil {
		return nil, nil, matcherErr
	}
	numRoutines := opts.NumRoutines
	if numRoutines <= 0 {
		numRoutines = 1
	}
	numbers := NewNumberImage(reduced.Rows, reduced.Cols)
	pixels := NewColorGrid(reduced.Rows, reduced.Cols)
	numBlocks := division.Size()

	log.WithFields(log.Fields{
		"blocks":     numBlocks,
		"candidates": len(matcher.means),
		"routines":   numRoutines,
	}).Debug("Quantizing blocks")

	// each job writes only the cells of its block, so no synchronization is
	// required on the result grids
	jobs := make(chan image.Rectangle, BufferSize)
	done := make(chan bool, BufferSize)

	for w := 0; w < numRoutines; w++ {
		go func() {
			block := make([]colorful.Color, 0, tile.Area())
			for r := range jobs {
				block = block[:0]
				for row := r.Min.Y; row < r.Max.Y; row++ {
					for col := r.Min.X; col < r.Max.X; col++ {
						block = append(block, reduced.At(row, col))
					}
				}
				best, _ := matcher.bestMatch(block)
				k := 0
				for row := r.Min.Y; row < r.Max.Y; row++ {
					for col := r.Min.X; col < r.Max.X; col++ {
						entry := palette.Entries[best[k]]
						numbers.Set(row, col, entry.ID)
						pixels.Set(row, col, entry.Color)
						k++
					}
				}
				done <- true
			}
		}()
	}

	go func() {
		for _, row := range division {
			for _, r := range row {
				jobs <- r
			}
		}
		close(jobs)
	}()

	for i := 0; i < numBlocks; i++ {
		<-done
		if opts.Progress != nil {
			opts.Progress(i + 1)
		}
	}
	return numbers, pixels, nil
}
