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
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	// BufferSize is the size of the job and result channels used by the
	// quantizer. The channels only carry block rectangles and done signals.
	BufferSize = 1000
)

// ProgressFunc is a function that is used to inform a caller about the progress
// of a called function.
// For example if we quantize thousands of blocks we might wish to know
// how far the call is and give feedback to the user.
// The called method calls the progress function after each iteration with
// the number of items done so far.
type ProgressFunc func(num int)

// ProgressIgnore is a ProgressFunc that does nothing.
func ProgressIgnore(num int) {}

func progressPercent(num, max int) float64 {
	percent := (float64(num) / float64(max)) * 100.0
	if percent > 100.0 {
		percent = 100.0
	}
	return percent
}

// LoggerProgressFunc returns a ProgressFunc that logs with level info how many
// of max items are done, prefixed by prefix. A message is logged every step
// items and for the last item, step < 0 logs every item and step = 0
// nothing.
func LoggerProgressFunc(prefix string, max, step int) ProgressFunc {
	return func(num int) {
		if step == 0 || max == 0 {
			return
		}
		if !(step < 0 || num%step == 0 || num == max) {
			return
		}
		percent := progressPercent(num, max)
		if prefix == "" {
			log.Infof("Progress: %d of %d (%.1f%%)", num, max, percent)
		} else {
			log.Infof("%s: %d of %d (%.1f%%)", prefix, num, max, percent)
		}
	}
}

// StdProgressFunc is a parameterized ProgressFunc that writes to the
// specified writer.
// It works as LoggerProgressFunc.
func StdProgressFunc(w io.Writer, prefix string, max, step int) ProgressFunc {
	return func(num int) {
		if step == 0 || max == 0 {
			return
		}
		if !(step < 0 || num%step == 0 || num == max) {
			return
		}
		percent := progressPercent(num, max)
		if prefix == "" {
			fmt.Fprintf(w, "Progress: %d of %d (%.1f%%)\n", num, max, percent)
		} else {
			fmt.Fprintf(w, "%s: %d of %d (%.1f%%)\n", prefix, num, max, percent)
		}
	}
}

// GridSize describes a two dimensional number of cells, for example the
// number of plates in the mosaic or the shape of a tile.
type GridSize struct {
	Cols, Rows int
}

// Area returns Cols * Rows.
func (s GridSize) Area() int {
	return s.Cols * s.Rows
}

// Rect returns the rectangle from (0, 0) to (Cols, Rows).
func (s GridSize) Rect() image.Rectangle {
	return image.Rect(0, 0, s.Cols, s.Rows)
}

func (s GridSize) String() string {
	return fmt.Sprintf("%dx%d", s.Cols, s.Rows)
}

// ParseGridSize parses a string of the form "A" or "AxB" where A and B are
// positive integers. "AxB" describes A columns and B rows, "A" is the same
// as "AxA".
func ParseGridSize(s string) (GridSize, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, "x") > 1 {
		return GridSize{}, fmt.Errorf("%w: invalid dimension format %q, expect \"A\" or \"AxB\"",
			ErrConfiguration, s)
	}
	first, second, hasSecond := strings.Cut(s, "x")
	cols, colsErr := parsePositive(first)
	if colsErr != nil {
		return GridSize{}, fmt.Errorf("%w: invalid dimension %q: %s", ErrConfiguration, s, colsErr.Error())
	}
	if !hasSecond {
		return GridSize{Cols: cols, Rows: cols}, nil
	}
	rows, rowsErr := parsePositive(second)
	if rowsErr != nil {
		return GridSize{}, fmt.Errorf("%w: invalid dimension %q: %s", ErrConfiguration, s, rowsErr.Error())
	}
	return GridSize{Cols: cols, Rows: rows}, nil
}

func parsePositive(s string) (int, error) {
	val, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return -1, err
	}
	if val <= 0 {
		return -1, fmt.Errorf("Value must be positive, got %d", val)
	}
	return val, nil
}

// ceilDiv returns ⌈a / b⌉ for a ≥ 0 and b > 0.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
