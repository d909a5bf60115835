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
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// SupportedImageFunc is a function that takes a file extension and decides if
// this file extension is supported.
//
// The extension passed to this function could be for example ".txt" or ".jpg".
type SupportedImageFunc func(ext string) bool

// JPGAndPNG is an implementation of SupportedImageFunc accepting jpg and png
// file extensions.
func JPGAndPNG(ext string) bool {
	ext = strings.ToLower(ext)
	switch ext {
	case ".jpg", ".jpeg", ".png":
		return true
	default:
		return false
	}
}

// ColorGrid is a dense grid of RGB colors with components in [0, 1].
// Colors are stored row by row, row 0 is the top row of the image.
//
// Grids are created by one of the stages and not modified once the stage
// returned.
type ColorGrid struct {
	Rows, Cols int
	Pix        []colorful.Color
}

// NewColorGrid returns a black grid with the given dimensions.
func NewColorGrid(rows, cols int) *ColorGrid {
	return &ColorGrid{Rows: rows, Cols: cols, Pix: make([]colorful.Color, rows*cols)}
}

// At returns the color in the given row and column.
func (g *ColorGrid) At(row, col int) colorful.Color {
	return g.Pix[row*g.Cols+col]
}

// Set sets the color in the given row and column.
func (g *ColorGrid) Set(row, col int, c colorful.Color) {
	g.Pix[row*g.Cols+col] = c
}

// Size returns the number of cells in the grid.
func (g *ColorGrid) Size() int {
	return g.Rows * g.Cols
}

// SourceImage is the image a mosaic is created from.
type SourceImage struct {
	ColorGrid
}

// NewSourceImage converts an image to a SourceImage.
// Transparent parts are blended against black, that is each channel is
// multiplied with the alpha value (the RGBA method of color.Color returns
// alpha-premultiplied values).
func NewSourceImage(img image.Image) *SourceImage {
	bounds := img.Bounds()
	res := &SourceImage{ColorGrid: *NewColorGrid(bounds.Dy(), bounds.Dx())}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			res.Set(y-bounds.Min.Y, x-bounds.Min.X, colorful.Color{
				R: float64(r) / 65535.0,
				G: float64(g) / 65535.0,
				B: float64(b) / 65535.0,
			})
		}
	}
	return res
}

// NewSourceImageFromFloats creates a SourceImage from raw pixel data. data
// contains rows * cols * channels values, channels must be 3 (RGB) or 4
// (RGBA). If any value is greater than 1 all values are assumed to be in
// [0, 255] and are rescaled. An alpha channel is multiplied into the color
// channels.
func NewSourceImageFromFloats(rows, cols, channels int, data []float64) (*SourceImage, error) {
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("%w: expected 3 or 4 channels, got %d", ErrConfiguration, channels)
	}
	if rows <= 0 || cols <= 0 || len(data) != rows*cols*channels {
		return nil, fmt.Errorf("%w: pixel data of length %d does not match %dx%dx%d",
			ErrConfiguration, len(data), rows, cols, channels)
	}
	scale := 1.0
	if slices.Max(data) > 1 {
		scale = 255.0
	}
	res := &SourceImage{ColorGrid: *NewColorGrid(rows, cols)}
	for i := range res.Pix {
		px := data[i*channels : (i+1)*channels]
		alpha := 1.0
		if channels == 4 {
			alpha = px[3] / scale
		}
		res.Pix[i] = colorful.Color{
			R: px[0] / scale * alpha,
			G: px[1] / scale * alpha,
			B: px[2] / scale * alpha,
		}
	}
	return res, nil
}

// BoolGrid is a dense grid of booleans, used for masks of single colors.
type BoolGrid struct {
	Rows, Cols int
	Cells      []bool
}

// NewBoolGrid returns a grid with all cells set to false.
func NewBoolGrid(rows, cols int) *BoolGrid {
	return &BoolGrid{Rows: rows, Cols: cols, Cells: make([]bool, rows*cols)}
}

// At returns the value in the given row and column.
func (g *BoolGrid) At(row, col int) bool {
	return g.Cells[row*g.Cols+col]
}

// Set sets the value in the given row and column.
func (g *BoolGrid) Set(row, col int, val bool) {
	g.Cells[row*g.Cols+col] = val
}

// Count returns the number of cells set to true.
func (g *BoolGrid) Count() int {
	res := 0
	for _, val := range g.Cells {
		if val {
			res++
		}
	}
	return res
}

// NumberImage is the quantized mosaic: Each cell contains the id of the
// palette color used for that cell.
type NumberImage struct {
	Rows, Cols int
	IDs        []ColorID
}

// NewNumberImage returns a new number image with all ids empty.
func NewNumberImage(rows, cols int) *NumberImage {
	return &NumberImage{Rows: rows, Cols: cols, IDs: make([]ColorID, rows*cols)}
}

// At returns the id in the given row and column.
func (img *NumberImage) At(row, col int) ColorID {
	return img.IDs[row*img.Cols+col]
}

// Set sets the id in the given row and column.
func (img *NumberImage) Set(row, col int, id ColorID) {
	img.IDs[row*img.Cols+col] = id
}

// Distinct returns all ids that appear in the image, sorted by id (see
// CompareColorIDs).
func (img *NumberImage) Distinct() []ColorID {
	seen := make(map[ColorID]struct{})
	res := make([]ColorID, 0)
	for _, id := range img.IDs {
		if _, has := seen[id]; has {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	SortColorIDs(res)
	return res
}

// ColorMask is the mask of a single color in a number image.
type ColorMask struct {
	ID     ColorID
	Mask   *BoolGrid
	Pixels int
}

// ColorMasks returns a mask for each color used in the image, sorted by id.
// A cell in the mask of color c is true iff the cell has id c.
func ColorMasks(img *NumberImage) []ColorMask {
	ids := img.Distinct()
	index := make(map[ColorID]int, len(ids))
	res := make([]ColorMask, len(ids))
	for i, id := range ids {
		index[id] = i
		res[i] = ColorMask{ID: id, Mask: NewBoolGrid(img.Rows, img.Cols)}
	}
	for i, id := range img.IDs {
		entry := &res[index[id]]
		entry.Mask.Cells[i] = true
		entry.Pixels++
	}
	return res
}
