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
	"strings"

	log "github.com/sirupsen/logrus"
)

// PieceCapacity is the number of cells a single physical piece covers
// (a 6x6 piece with four studs on each side minus the four corners).
const PieceCapacity = 6*6*4 - 4

// Orientation describes how the plates are placed.
type Orientation int

const (
	// OrientationAuto uses vertical plates for portrait (or square) images and
	// horizontal plates for landscape images, see Resolve.
	OrientationAuto Orientation = iota
	// OrientationVertical uses plates with 50 rows and 40 columns.
	OrientationVertical
	// OrientationHorizontal uses plates with 40 rows and 50 columns.
	OrientationHorizontal
)

func (o Orientation) String() string {
	switch o {
	case OrientationAuto:
		return "auto"
	case OrientationVertical:
		return "vertical"
	case OrientationHorizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ParseOrientation parses "vertical" (or "v"), "horizontal" (or "h") and
// "auto" (or "default").
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "v":
		return OrientationVertical, nil
	case "horizontal", "h":
		return OrientationHorizontal, nil
	case "auto", "default", "":
		return OrientationAuto, nil
	default:
		return OrientationAuto, fmt.Errorf("%w: invalid orientation %q, expected vertical, horizontal or auto",
			ErrConfiguration, s)
	}
}

// Resolve replaces OrientationAuto by vertical if the source has at least as
// many rows as columns and by horizontal otherwise. Other orientations are
// returned unchanged.
func (o Orientation) Resolve(srcRows, srcCols int) Orientation {
	if o != OrientationAuto {
		return o
	}
	if srcRows >= srcCols {
		return OrientationVertical
	}
	return OrientationHorizontal
}

// PlateCells returns the cell grid of a single plate. OrientationAuto is
// treated as vertical, call Resolve first.
func PlateCells(o Orientation) GridSize {
	if o == OrientationHorizontal {
		return GridSize{Cols: 50, Rows: 40}
	}
	return GridSize{Cols: 40, Rows: 50}
}

// PlateLayout describes the cells of a single plate and the arrangement of
// the plates.
type PlateLayout struct {
	Cells GridSize
	Grid  GridSize
}

// NewPlateLayout returns the layout of grid plates with the given
// orientation. The orientation must not be OrientationAuto.
func NewPlateLayout(o Orientation, grid GridSize) PlateLayout {
	return PlateLayout{Cells: PlateCells(o), Grid: grid}
}

// Size returns the number of cells of the whole mosaic.
func (l PlateLayout) Size() GridSize {
	return GridSize{Cols: l.Cells.Cols * l.Grid.Cols, Rows: l.Cells.Rows * l.Grid.Rows}
}

// Rotated returns true if plates are rotated before the masks are created.
// This is the case if plates are taller than wide.
func (l PlateLayout) Rotated() bool {
	return l.Cells.Rows > l.Cells.Cols
}

// PieceRecord describes how many pieces are required for a number of
// cells.
type PieceRecord struct {
	// Pixels is the number of cells.
	Pixels int `json:"pixels"`
	// Pieces is the number of pieces required, ⌈Pixels / PieceCapacity⌉.
	Pieces int `json:"pieces"`
	// Leftover is the number of unused positions on the last piece.
	Leftover int `json:"leftover"`
	// FullPieces is the number of completely used pieces.
	FullPieces int `json:"full_pieces"`
	// Remainder is the number of cells on the last, partially used piece.
	Remainder int `json:"remainder"`
}

// NewPieceRecord returns the record for the given number of cells.
func NewPieceRecord(pixels int) PieceRecord {
	pieces := ceilDiv(pixels, PieceCapacity)
	return PieceRecord{
		Pixels:     pixels,
		Pieces:     pieces,
		Leftover:   PieceCapacity*pieces - pixels,
		FullPieces: pixels / PieceCapacity,
		Remainder:  pixels % PieceCapacity,
	}
}

// PlateColor is the mask of one color on a plate.
type PlateColor struct {
	ID   ColorID
	Mask *BoolGrid
	PieceRecord
}

// Plate is a single plate of the mosaic.
//
// Column and Row are the labels of the plate used in the build
// instructions. Columns are counted from the left starting with 1, rows
// from the bottom starting with 1.
// Bounds are the cells of the plate in the number image (X are columns,
// Y rows). If Rotated is true the masks are rotated by 90 degrees counter
// clockwise relative to Bounds.
type Plate struct {
	Column, Row int
	Bounds      image.Rectangle
	Rotated     bool
	Colors      []PlateColor
}

// Color returns the mask of the color with the given id. If the color is
// not used on the plate the second return value is false.
func (p *Plate) Color(id ColorID) (PlateColor, bool) {
	for _, c := range p.Colors {
		if c.ID == id {
			return c, true
		}
	}
	return PlateColor{}, false
}

// PlateSet is the result of Partition.
type PlateSet struct {
	Layout PlateLayout
	// Plates in the order of the number image: the top row of plates from
	// left to right first.
	Plates []Plate
}

// Get returns the plate with the given labels.
func (s *PlateSet) Get(column, row int) (*Plate, bool) {
	for i := range s.Plates {
		if s.Plates[i].Column == column && s.Plates[i].Row == row {
			return &s.Plates[i], true
		}
	}
	return nil, false
}

// subNumberImage copies the cells in bounds to a new image.
func subNumberImage(img *NumberImage, bounds image.Rectangle) *NumberImage {
	res := NewNumberImage(bounds.Dy(), bounds.Dx())
	for row := bounds.Min.Y; row < bounds.Max.Y; row++ {
		copy(res.IDs[(row-bounds.Min.Y)*res.Cols:], img.IDs[row*img.Cols+bounds.Min.X:row*img.Cols+bounds.Max.X])
	}
	return res
}

// rotateCCW rotates the image by 90 degrees counter clockwise: The last
// column becomes the first row.
func rotateCCW(img *NumberImage) *NumberImage {
	res := NewNumberImage(img.Cols, img.Rows)
	for i := 0; i < res.Rows; i++ {
		for j := 0; j < res.Cols; j++ {
			res.Set(i, j, img.At(j, img.Cols-1-i))
		}
	}
	return res
}

// Partition divides the number image into the plates of layout and creates
// the masks of each color for each plate.
//
// The number image must have exactly the size of the layout, otherwise an
// error wrapping ErrConfiguration is returned.
func Partition(nim *NumberImage, layout PlateLayout) (*PlateSet, error) {
	size := layout.Size()
	if nim.Rows != size.Rows || nim.Cols != size.Cols {
		return nil, fmt.Errorf("%w: number image with %dx%d cells does not match plate layout with %s cells",
			ErrConfiguration, nim.Cols, nim.Rows, size)
	}
	division, err := NewFixedSizeDivider(layout.Cells.Cols, layout.Cells.Rows).Divide(image.Rect(0, 0, nim.Cols, nim.Rows))
	if err != nil {
		return nil, err
	}
	rotate := layout.Rotated()
	res := &PlateSet{Layout: layout, Plates: make([]Plate, 0, division.Size())}
	for i, row := range division {
		for j, bounds := range row {
			sub := subNumberImage(nim, bounds)
			if rotate {
				sub = rotateCCW(sub)
			}
			masks := ColorMasks(sub)
			plate := Plate{
				Column:  j + 1,
				Row:     len(division) - i,
				Bounds:  bounds,
				Rotated: rotate,
				Colors:  make([]PlateColor, len(masks)),
			}
			for k, m := range masks {
				plate.Colors[k] = PlateColor{ID: m.ID, Mask: m.Mask, PieceRecord: NewPieceRecord(m.Pixels)}
			}
			res.Plates = append(res.Plates, plate)
		}
	}
	log.WithFields(log.Fields{
		"plates":  len(res.Plates),
		"rotated": rotate,
	}).Debug("Partitioned number image")
	return res, nil
}
