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
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Alignment describes where the sampled area is placed inside the source
// image if the image is larger than required.
//
// Both values are fractions in [0, 1]. Row = 0 means the area is flush with
// the top of the image, Row = 1 flush with the bottom. Col = 0 means flush with
// the left border, Col = 1 flush with the right border.
type Alignment struct {
	Row, Col float64
}

// CenterAlignment centers the sampled area in both directions.
var CenterAlignment = Alignment{Row: 0.5, Col: 0.5}

func parseAlignValue(s, low, high string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case low:
		return 0.0, nil
	case high:
		return 1.0, nil
	case "center", "centre":
		return 0.5, nil
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return -1, fmt.Errorf("%w: invalid alignment %q, expected %s, %s, center or a number between 0 and 1",
			ErrConfiguration, s, low, high)
	}
	if val < 0 || val > 1 {
		return -1, fmt.Errorf("%w: alignment must be between 0 and 1, got %v", ErrConfiguration, val)
	}
	return val, nil
}

// ParseHorizontalAlign parses a horizontal alignment: "left" (0), "right" (1),
// "center" / "centre" (0.5) or a number in [0, 1].
// The result is the column fraction of Alignment.
func ParseHorizontalAlign(s string) (float64, error) {
	return parseAlignValue(s, "left", "right")
}

// ParseVerticalAlign parses a vertical alignment: "bottom" (0), "top" (1),
// "center" / "centre" (0.5) or a number in [0, 1].
//
// Because rows are counted from the top of the image the value is inverted,
// so the result is the row fraction of Alignment ("top" returns 0).
func ParseVerticalAlign(s string) (float64, error) {
	val, err := parseAlignValue(s, "bottom", "top")
	if err != nil {
		return -1, err
	}
	return 1 - val, nil
}

// ParseAlign parses an alignment of the form "H V" where H is a horizontal
// and V a vertical alignment, for example "center center" or "left top".
// H and V might also be separated by "*".
func ParseAlign(s string) (Alignment, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '*'
	})
	if len(parts) != 2 {
		return Alignment{}, fmt.Errorf("%w: invalid alignment %q, expected \"HORIZONTAL VERTICAL\"",
			ErrConfiguration, s)
	}
	col, colErr := ParseHorizontalAlign(parts[0])
	if colErr != nil {
		return Alignment{}, colErr
	}
	row, rowErr := ParseVerticalAlign(parts[1])
	if rowErr != nil {
		return Alignment{}, rowErr
	}
	return Alignment{Row: row, Col: col}, nil
}

// ReductionFactor returns the edge length of the square source block that is
// averaged into one cell when reducing an image with srcRows x srcCols pixels
// to rows x cols cells.
func ReductionFactor(srcRows, srcCols, rows, cols int) int {
	return min(srcRows/rows, srcCols/cols)
}

// alignOffset distributes the unused margin given the alignment fraction.
func alignOffset(align float64, margin int) int {
	return int(0.5 + align*float64(margin))
}

// blockAverage computes the average color of the size x size block with the
// top left corner in (row, col).
func blockAverage(src *ColorGrid, row, col, size int) colorful.Color {
	var r, g, b float64
	for i := row; i < row+size; i++ {
		for _, c := range src.Pix[i*src.Cols+col : i*src.Cols+col+size] {
			r += c.R
			g += c.G
			b += c.B
		}
	}
	n := float64(size * size)
	return colorful.Color{R: r / n, G: g / n, B: b / n}
}

// Reduce computes the reduced image with rows x cols cells.
//
// The source is sampled in square blocks of mult x mult pixels where mult is
// the largest number s.t. the blocks fit into the image in both directions
// (see ReductionFactor). Each cell is the average of its block.
// The remaining margin is distributed according to the alignment.
//
// If the source image is too small (mult < 1) an error wrapping
// ErrInsufficientResolution is returned.
func Reduce(src *SourceImage, rows, cols int, align Alignment) (*ColorGrid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid dimensions must be positive, got %dx%d", ErrConfiguration, cols, rows)
	}
	if align.Row < 0 || align.Row > 1 || align.Col < 0 || align.Col > 1 {
		return nil, fmt.Errorf("%w: alignment must be between 0 and 1, got %v", ErrConfiguration, align)
	}
	mult := ReductionFactor(src.Rows, src.Cols, rows, cols)
	if mult < 1 {
		return nil, fmt.Errorf("%w: image with %dx%d pixels can't be reduced to %dx%d cells",
			ErrInsufficientResolution, src.Cols, src.Rows, cols, rows)
	}
	dRow := alignOffset(align.Row, src.Rows-mult*rows)
	dCol := alignOffset(align.Col, src.Cols-mult*cols)
	res := NewColorGrid(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			res.Set(i, j, blockAverage(&src.ColorGrid, dRow+mult*i, dCol+mult*j, mult))
		}
	}
	return res, nil
}
