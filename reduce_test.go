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
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestReduceShape(t *testing.T) {
	src := &SourceImage{ColorGrid: *NewColorGrid(7, 9)}
	for i := range src.Pix {
		v := float64(i) / float64(len(src.Pix))
		src.Pix[i] = colorful.Color{R: v, G: 1 - v, B: 0.5}
	}
	rim, err := Reduce(src, 3, 4, CenterAlignment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rim.Rows != 3 || rim.Cols != 4 || len(rim.Pix) != 12 {
		t.Fatalf("shape: got %dx%d (%d cells) want 4x3", rim.Cols, rim.Rows, len(rim.Pix))
	}
	// every cell lies between the smallest and largest value of the source
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range src.Pix {
		lo, hi = math.Min(lo, c.R), math.Max(hi, c.R)
	}
	for _, c := range rim.Pix {
		if c.R < lo || c.R > hi {
			t.Fatalf("cell value %v outside of [%v, %v]", c.R, lo, hi)
		}
	}
}

func TestReduceAlignment(t *testing.T) {
	// 8x8 pixels reduced to 3x3 cells: blocks of 2x2 pixels and a margin of
	// two pixels in each direction
	tests := []struct {
		name             string
		align            Alignment
		markRow, markCol int
		cellRow, cellCol int
	}{
		{"top left", Alignment{Row: 0, Col: 0}, 0, 0, 0, 0},
		{"bottom right", Alignment{Row: 1, Col: 1}, 7, 7, 2, 2},
		{"center", CenterAlignment, 1, 1, 0, 0},
		{"center bottom right", CenterAlignment, 6, 6, 2, 2},
	}
	for _, tc := range tests {
		src := solidSource(8, 8, black)
		src.Set(tc.markRow, tc.markCol, white)
		rim, err := Reduce(src, 3, 3, tc.align)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				want := 0.0
				if row == tc.cellRow && col == tc.cellCol {
					want = 0.25
				}
				if got := rim.At(row, col).R; got != want {
					t.Fatalf("%s: cell (%d, %d): got %v want %v", tc.name, row, col, got, want)
				}
			}
		}
	}
}

func TestReduceCenterSkipsCorner(t *testing.T) {
	src := solidSource(8, 8, black)
	src.Set(0, 0, white)
	rim, err := Reduce(src, 3, 3, CenterAlignment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, c := range rim.Pix {
		if c != black {
			t.Fatalf("cell %d: got %v want %v", i, c, black)
		}
	}
}

func TestReduceInsufficientResolution(t *testing.T) {
	src := solidSource(10, 10, red)
	if _, err := Reduce(src, 50, 40, CenterAlignment); !errors.Is(err, ErrInsufficientResolution) {
		t.Fatalf("got %v want %v", err, ErrInsufficientResolution)
	}
	if _, err := Reduce(src, 0, 4, CenterAlignment); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("got %v want %v", err, ErrConfiguration)
	}
}

func TestParseAlign(t *testing.T) {
	tests := []struct {
		in   string
		want Alignment
	}{
		{"center center", Alignment{Row: 0.5, Col: 0.5}},
		{"centre centre", Alignment{Row: 0.5, Col: 0.5}},
		{"left top", Alignment{Row: 0, Col: 0}},
		{"right bottom", Alignment{Row: 1, Col: 1}},
		{"0.25*0.75", Alignment{Row: 0.25, Col: 0.25}},
		{"Left  Bottom", Alignment{Row: 1, Col: 0}},
	}
	for _, tc := range tests {
		got, err := ParseAlign(tc.in)
		if err != nil {
			t.Fatalf("ParseAlign(%q): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseAlign(%q): got %v want %v", tc.in, got, tc.want)
		}
	}
	for _, in := range []string{"", "left", "middle center", "1.5 center", "center -0.1", "top left"} {
		if _, err := ParseAlign(in); !errors.Is(err, ErrConfiguration) {
			t.Fatalf("ParseAlign(%q): got %v want %v", in, err, ErrConfiguration)
		}
	}
}
