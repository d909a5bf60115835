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
)

// TileDivision represents the divison of a grid into rectangles, for example
// the blocks of the quantizer or the plates of the mosaic.
// In the rectangles X describes the columns and Y the rows of the grid.
//
// Rectangles are stored in the fashion [row][col].
type TileDivision [][]image.Rectangle

// Size returns the number of rectangles in the division.
func (div TileDivision) Size() int {
	res := 0
	for _, row := range div {
		res += len(row)
	}
	return res
}

// FixedSizeDivider divides a grid into tiles where each tile has the
// given width and height.
// The width and height of the grid must be multiples of the tile size.
type FixedSizeDivider struct {
	Width, Height int
}

// NewFixedSizeDivider returns a new FixedSizeDivider.
func NewFixedSizeDivider(width, height int) FixedSizeDivider {
	return FixedSizeDivider{Width: width, Height: height}
}

// Divide returns the division of bounds in tiles. If the bounds can't be
// divided an error wrapping ErrIncompatibleTileSize is returned.
func (divider FixedSizeDivider) Divide(bounds image.Rectangle) (TileDivision, error) {
	if divider.Width <= 0 || divider.Height <= 0 {
		return nil, fmt.Errorf("%w: tile size must be positive, got %dx%d",
			ErrIncompatibleTileSize, divider.Width, divider.Height)
	}
	gridWidth, gridHeight := bounds.Dx(), bounds.Dy()
	if gridWidth%divider.Width != 0 || gridHeight%divider.Height != 0 {
		return nil, fmt.Errorf("%w: %dx%d tiles don't divide a grid of %dx%d cells",
			ErrIncompatibleTileSize, divider.Width, divider.Height, gridWidth, gridHeight)
	}
	numRows := gridHeight / divider.Height
	numCols := gridWidth / divider.Width
	res := make(TileDivision, numRows)
	for i := 0; i < numRows; i++ {
		res[i] = make([]image.Rectangle, numCols)
		for j := 0; j < numCols; j++ {
			x0 := bounds.Min.X + j*divider.Width
			y0 := bounds.Min.Y + i*divider.Height
			res[i][j] = image.Rect(x0, y0, x0+divider.Width, y0+divider.Height)
		}
	}
	return res, nil
}
