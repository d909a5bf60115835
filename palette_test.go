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
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestCompareColorIDs(t *testing.T) {
	tests := []struct {
		a, b ColorID
		sign int
	}{
		{"9", "10", 1},
		{"10", "9", -1},
		{"21", "21", 0},
		{"194", "23", -1},
		{"010", "10", -1},
		{"5", "21", 1},
	}
	for _, tc := range tests {
		got := CompareColorIDs(tc.a, tc.b)
		switch {
		case tc.sign < 0 && got >= 0, tc.sign > 0 && got <= 0, tc.sign == 0 && got != 0:
			t.Fatalf("CompareColorIDs(%s, %s): got %d want sign %d", tc.a, tc.b, got, tc.sign)
		}
	}
}

func TestReadColorDictionary(t *testing.T) {
	in := `{"21": [255, 0, 0], "5": [0, 0, 255], "194": [255, 255, 0]}`
	dict, err := ReadColorDictionary(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantIDs := []ColorID{"21", "5", "194"}
	wantColors := []colorful.Color{red, blue, yellow}
	if dict.Len() != len(wantIDs) {
		t.Fatalf("length: got %d want %d", dict.Len(), len(wantIDs))
	}
	for i, entry := range dict.Entries() {
		if entry.ID != wantIDs[i] || entry.Color != wantColors[i] {
			t.Fatalf("entry %d: got %s %v want %s %v", i, entry.ID, entry.Color, wantIDs[i], wantColors[i])
		}
	}

	var buf bytes.Buffer
	if err := dict.WriteJSON(&buf); err != nil {
		t.Fatalf("can't write dictionary: %v", err)
	}
	again, err := ReadColorDictionary(&buf)
	if err != nil {
		t.Fatalf("can't read written dictionary: %v", err)
	}
	if !slices.Equal(again.Entries(), dict.Entries()) {
		t.Fatalf("written dictionary: got %v want %v", again.Entries(), dict.Entries())
	}
}

func TestReadColorDictionaryInvalid(t *testing.T) {
	for _, in := range []string{
		`[1, 2, 3]`,
		`{"21": [1, 0]}`,
		`{"red": [1, 0, 0]}`,
		`{"21": [1, 0, 0], "21": [0, 0, 1]}`,
	} {
		if _, err := ReadColorDictionary(strings.NewReader(in)); err == nil {
			t.Fatalf("ReadColorDictionary(%s): expected an error", in)
		}
	}
}

func TestNewPalette(t *testing.T) {
	dict := testDictionary(t)
	palette, err := NewPalette(dict, []ColorID{"24", "5", "21", "5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ColorID{"21", "24", "5"}
	if got := palette.IDs(); !slices.Equal(got, want) {
		t.Fatalf("ids: got %v want %v", got, want)
	}
	if got := palette.String(); got != "21-24-5" {
		t.Fatalf("string: got %s want 21-24-5", got)
	}
	if c, _ := palette.Color("21"); c != red {
		t.Fatalf("color of 21: got %v want %v", c, red)
	}
	if _, err := NewPalette(dict, []ColorID{"21", "99"}); !errors.Is(err, ErrUnknownPaletteID) {
		t.Fatalf("unknown id: got %v want %v", err, ErrUnknownPaletteID)
	}
	if _, err := NewPalette(dict, nil); !errors.Is(err, ErrEmptyPalette) {
		t.Fatalf("no ids: got %v want %v", err, ErrEmptyPalette)
	}
}

func TestNamedColor(t *testing.T) {
	tests := []struct {
		name string
		want colorful.Color
	}{
		{"red", red},
		{"Blue", blue},
		{"r", red},
		{"w", white},
		{"#ffff00", yellow},
		{"tab:blue", colorful.Color{R: 0x1f / 255.0, G: 0x77 / 255.0, B: 0xb4 / 255.0}},
	}
	for _, tc := range tests {
		got, err := NamedColor(tc.name)
		if err != nil {
			t.Fatalf("NamedColor(%q): unexpected error %v", tc.name, err)
		}
		if !got.AlmostEqualRgb(tc.want) {
			t.Fatalf("NamedColor(%q): got %v want %v", tc.name, got, tc.want)
		}
	}
	for _, name := range []string{"", "nocolor", "#12", "tab:nocolor"} {
		if _, err := NamedColor(name); !errors.Is(err, ErrInvalidColorSpec) {
			t.Fatalf("NamedColor(%q): got %v want %v", name, err, ErrInvalidColorSpec)
		}
	}
}

func TestNearestEntry(t *testing.T) {
	dict := testDictionary(t)
	crimson, _ := NamedColor("crimson")
	entry, ok := NearestEntry(dict.Entries(), crimson, MeanSquaredDeviation)
	if !ok || entry.ID != "21" {
		t.Fatalf("crimson: got %s want 21", entry.ID)
	}
	// gray is equally close to black and white, the first entry wins
	gray := colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	grays := []PaletteEntry{{ID: "1", Color: white}, {ID: "5", Color: black}}
	entry, _ = NearestEntry(grays, gray, MeanAbsoluteDeviation)
	if entry.ID != "1" {
		t.Fatalf("gray: got %s want 1", entry.ID)
	}
	if _, ok := NearestEntry(nil, gray, MeanAbsoluteDeviation); ok {
		t.Fatalf("empty entries: expected no result")
	}
}

func TestDeviations(t *testing.T) {
	p := []float64{1, 0, 0.5}
	q := []float64{0, 0, 1}
	if got := MeanAbsoluteDeviation(p, q); got != 0.5 {
		t.Fatalf("mean absolute deviation: got %v want 0.5", got)
	}
	if got := MeanSquaredDeviation(p, q); got != 1.25/3 {
		t.Fatalf("mean squared deviation: got %v want %v", got, 1.25/3)
	}
}
