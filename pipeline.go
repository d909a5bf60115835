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
	"time"

	log "github.com/sirupsen/logrus"
)

// Stage is one of the steps of Run.
type Stage int

const (
	StageReduce Stage = iota
	StageResolve
	StageQuantize
	StagePartition
)

func (s Stage) String() string {
	switch s {
	case StageReduce:
		return "reduce"
	case StageResolve:
		return "resolve palette"
	case StageQuantize:
		return "quantize"
	case StagePartition:
		return "partition"
	default:
		return "unknown"
	}
}

// Observer is informed by Run after each stage.
type Observer interface {
	StageDone(stage Stage, elapsed time.Duration)
}

// ObserverFunc is an Observer given by a function.
type ObserverFunc func(stage Stage, elapsed time.Duration)

// StageDone calls f.
func (f ObserverFunc) StageDone(stage Stage, elapsed time.Duration) {
	f(stage, elapsed)
}

// LogObserver logs the duration of each stage with level info.
type LogObserver struct{}

// StageDone implements Observer.
func (LogObserver) StageDone(stage Stage, elapsed time.Duration) {
	log.WithFields(log.Fields{
		"stage":   stage.String(),
		"elapsed": elapsed,
	}).Info("Stage done")
}

// Result contains the outputs of all stages of Run.
type Result struct {
	Layout  PlateLayout
	Reduced *ColorGrid
	Palette *Palette
	Numbers *NumberImage
	Pixels  *ColorGrid
	Plates  *PlateSet
	Bill    *BillOfMaterials
}

// Report returns the report containing the bill of materials and the
// piece records of all plates.
func (r *Result) Report() *Report {
	res := r.Plates.Report()
	res.Palette = r.Palette.String()
	res.Bill = r.Bill
	return res
}

// Run creates a mosaic: It reduces the source image to the grid of the
// plate layout, resolves the palette, quantizes the reduced image and
// partitions the result into plates.
//
// The result only depends on the inputs, with one exception: Each run gets
// a new random Bill.RunID.
//
// observer may be nil. If settings.Quantize.Progress is nil the progress
// is logged.
func Run(src *SourceImage, dict *ColorDictionary, settings *Settings, observer Observer) (*Result, error) {
	if observer == nil {
		observer = ObserverFunc(func(Stage, time.Duration) {})
	}
	orientation := settings.Orientation.Resolve(src.Rows, src.Cols)
	layout := NewPlateLayout(orientation, settings.Dimension)
	size := layout.Size()
	log.WithFields(log.Fields{
		"orientation": orientation,
		"plates":      settings.Dimension,
		"cells":       size,
		"tile":        settings.TileSize,
	}).Info("Creating mosaic")

	// fail before any work if the tiles don't fit
	if _, err := NewFixedSizeDivider(settings.TileSize.Cols, settings.TileSize.Rows).Divide(size.Rect()); err != nil {
		return nil, err
	}

	res := &Result{Layout: layout}

	start := time.Now()
	reduced, err := Reduce(src, size.Rows, size.Cols, settings.Align)
	if err != nil {
		return nil, err
	}
	res.Reduced = reduced
	observer.StageDone(StageReduce, time.Since(start))

	start = time.Now()
	palette, err := ResolvePalette(settings.Colours, dict, reduced)
	if err != nil {
		return nil, err
	}
	res.Palette = palette
	log.WithField("palette", palette.String()).Info("Using palette")
	observer.StageDone(StageResolve, time.Since(start))

	start = time.Now()
	opts := settings.Quantize
	if opts.Progress == nil {
		numBlocks := size.Area() / settings.TileSize.Area()
		opts.Progress = LoggerProgressFunc("Quantizing", numBlocks, max(numBlocks/10, 1))
	}
	numbers, pixels, err := Quantize(reduced, palette, settings.TileSize, opts)
	if err != nil {
		return nil, err
	}
	res.Numbers, res.Pixels = numbers, pixels
	observer.StageDone(StageQuantize, time.Since(start))

	start = time.Now()
	plates, err := Partition(numbers, layout)
	if err != nil {
		return nil, err
	}
	res.Plates = plates
	res.Bill = NewBillOfMaterials(numbers)
	observer.StageDone(StagePartition, time.Since(start))
	return res, nil
}
