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
	"encoding/json"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func testSettings(t *testing.T, colours, dimension, tileSize string) *Settings {
	t.Helper()
	config := DefaultConfig()
	config.Colours = colours
	config.Dimension = dimension
	config.TileSize = tileSize
	settings, err := config.Settings()
	if err != nil {
		t.Fatalf("invalid settings: %v", err)
	}
	settings.Quantize.Progress = ProgressIgnore
	return settings
}

func TestRunSolidRed(t *testing.T) {
	var stages []Stage
	observer := ObserverFunc(func(stage Stage, elapsed time.Duration) {
		stages = append(stages, stage)
	})
	settings := testSettings(t, "primary", "1", "1")
	res, err := Run(solidSource(100, 100, red), testDictionary(t), settings, observer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []ColorID{"21", "23", "24"}; !slices.Equal(res.Palette.IDs(), want) {
		t.Fatalf("palette: got %v want %v", res.Palette.IDs(), want)
	}
	if res.Numbers.Rows != 50 || res.Numbers.Cols != 40 {
		t.Fatalf("number image: got %dx%d want 40x50", res.Numbers.Cols, res.Numbers.Rows)
	}
	for i, id := range res.Numbers.IDs {
		if id != "21" {
			t.Fatalf("cell %d: got %s want 21", i, id)
		}
	}
	if len(res.Bill.Entries) != 1 {
		t.Fatalf("bill: got %d entries want 1", len(res.Bill.Entries))
	}
	entry := res.Bill.Entries[0]
	if entry.ID != "21" || entry.Pixels != 2000 || entry.Pieces != 15 || entry.Leftover != 100 {
		t.Fatalf("bill entry: got %+v", entry)
	}
	if res.Bill.RunID == "" {
		t.Fatalf("bill has no run id")
	}
	if len(res.Plates.Plates) != 1 || !res.Layout.Rotated() {
		t.Fatalf("plates: got %d (rotated %v) want 1 rotated plate", len(res.Plates.Plates), res.Layout.Rotated())
	}
	want := []Stage{StageReduce, StageResolve, StageQuantize, StagePartition}
	if !slices.Equal(stages, want) {
		t.Fatalf("stages: got %v want %v", stages, want)
	}
}

func TestRunReport(t *testing.T) {
	settings := testSettings(t, "21-23", "2x1", "1")
	settings.Orientation = OrientationHorizontal
	src := solidSource(40, 100, red)
	for row := 0; row < src.Rows; row++ {
		for col := src.Cols / 2; col < src.Cols; col++ {
			src.Set(row, col, blue)
		}
	}
	res, err := Run(src, testDictionary(t), settings, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := res.Report().WriteJSON(&buf); err != nil {
		t.Fatalf("can't write report: %v", err)
	}
	var report Report
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("can't read report: %v", err)
	}
	if report.Palette != "21-23" || report.Orientation != "horizontal" || report.Dimension != "2x1" {
		t.Fatalf("report header: got %s, %s, %s", report.Palette, report.Orientation, report.Dimension)
	}
	if len(report.Bill.Entries) != 2 || report.Bill.RunID != res.Bill.RunID {
		t.Fatalf("report bill: got %+v", report.Bill)
	}
	if len(report.Plates) != 2 {
		t.Fatalf("report plates: got %d want 2", len(report.Plates))
	}
	for i, id := range []ColorID{"21", "23"} {
		plate := report.Plates[i]
		if plate.Column != i+1 || plate.Row != 1 || len(plate.Colors) != 1 || plate.Colors[0].ID != id {
			t.Fatalf("report plate %d: got %+v", i, plate)
		}
		if plate.Colors[0].Pixels != 2000 || plate.Colors[0].Remainder != 40 {
			t.Fatalf("report plate %d: got record %+v", i, plate.Colors[0].PieceRecord)
		}
	}
}

func TestReportFile(t *testing.T) {
	settings := testSettings(t, "primary", "1", "1")
	res, err := Run(solidSource(50, 40, blue), testDictionary(t), settings, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "plates.json")
	if err := res.Report().WriteJSONFile(path); err != nil {
		t.Fatalf("can't write report: %v", err)
	}
	report, err := ReadReportFile(path)
	if err != nil {
		t.Fatalf("can't read report: %v", err)
	}
	if report.Version != Version || report.Bill.RunID != res.Bill.RunID {
		t.Fatalf("report: got version %s and run %s", report.Version, report.Bill.RunID)
	}
	if len(report.Plates) != 1 || report.Plates[0].Colors[0].ID != "23" {
		t.Fatalf("report plates: got %+v", report.Plates)
	}
}

func TestRunIncompatibleTileSizeFirst(t *testing.T) {
	// the image is too small as well, but the tile size is checked first
	settings := testSettings(t, "primary", "1", "3")
	_, err := Run(solidSource(10, 10, red), testDictionary(t), settings, nil)
	if !errors.Is(err, ErrIncompatibleTileSize) {
		t.Fatalf("got %v want %v", err, ErrIncompatibleTileSize)
	}
}

func TestRunInsufficientResolution(t *testing.T) {
	settings := testSettings(t, "primary", "2", "1")
	_, err := Run(solidSource(60, 60, red), testDictionary(t), settings, nil)
	if !errors.Is(err, ErrInsufficientResolution) {
		t.Fatalf("got %v want %v", err, ErrInsufficientResolution)
	}
}

func TestRunRepeatable(t *testing.T) {
	settings := testSettings(t, "all", "1", "2")
	src := solidSource(100, 80, red)
	for row := 0; row < src.Rows; row++ {
		for col := 0; col < src.Cols; col += 3 {
			src.Set(row, col, yellow)
		}
	}
	first, err := Run(src, testDictionary(t), settings, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Run(src, testDictionary(t), settings, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(first.Numbers.IDs, second.Numbers.IDs) {
		t.Fatalf("second run: number images differ")
	}
	if !slices.Equal(first.Bill.Entries, second.Bill.Entries) {
		t.Fatalf("second run: got bill %v want %v", second.Bill.Entries, first.Bill.Entries)
	}
	if first.Bill.RunID == second.Bill.RunID {
		t.Fatalf("both runs have run id %s", first.Bill.RunID)
	}
}
