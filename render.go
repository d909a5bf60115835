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
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

// ImageResizer resizes an image to the given width and height.
type ImageResizer interface {
	Resize(width, height uint, img image.Image) image.Image
}

// NfntResizer uses the nfnt/resize package to resize an image.
type NfntResizer struct {
	// InterP is the interpolation function to use.
	InterP resize.InterpolationFunction
}

// NewNfntResizer returns a new resizer given the interpolation function.
func NewNfntResizer(interP resize.InterpolationFunction) NfntResizer {
	return NfntResizer{interP}
}

// GetInterP returns an interpolation function given a desired quality.
// Quality 0 is nearest neighbor, which keeps the cells of a mosaic sharp.
// Higher values up to 4 select smoother interpolations, values greater
// than 4 are treated as 4.
func GetInterP(quality uint) resize.InterpolationFunction {
	switch quality {
	case 0:
		return resize.NearestNeighbor
	case 1:
		return resize.Bilinear
	case 2:
		return resize.Bicubic
	case 3:
		return resize.MitchellNetravali
	default:
		return resize.Lanczos2
	}
}

var (
	// DefaultResizer is used for previews, it scales with nearest neighbor
	// interpolation.
	DefaultResizer = NewNfntResizer(GetInterP(0))
)

// Resize calls nfnt/resize methods.
func (resizer NfntResizer) Resize(width, height uint, img image.Image) image.Image {
	return resize.Resize(width, height, img, resizer.InterP)
}

// ToImage converts a color grid to an image with one pixel per cell.
func ToImage(grid *ColorGrid) *image.RGBA {
	res := image.NewRGBA(image.Rect(0, 0, grid.Cols, grid.Rows))
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			r, g, b := grid.At(row, col).Clamped().RGB255()
			res.SetRGBA(col, row, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return res
}

// Preview renders the pixel image with scale x scale pixels per cell.
// If resizer is nil DefaultResizer is used.
func Preview(pim *ColorGrid, scale int, resizer ImageResizer) image.Image {
	img := ToImage(pim)
	if scale <= 1 {
		return img
	}
	if resizer == nil {
		resizer = DefaultResizer
	}
	return resizer.Resize(uint(scale*pim.Cols), uint(scale*pim.Rows), img)
}

// MaskImage converts a mask to a gray image, cells in the mask are black and
// all other cells white.
func MaskImage(mask *BoolGrid) *image.Gray {
	res := image.NewGray(image.Rect(0, 0, mask.Cols, mask.Rows))
	for row := 0; row < mask.Rows; row++ {
		for col := 0; col < mask.Cols; col++ {
			if mask.At(row, col) {
				res.SetGray(col, row, color.Gray{Y: 0})
			} else {
				res.SetGray(col, row, color.Gray{Y: 255})
			}
		}
	}
	return res
}

// checkExtension returns an error if the extension of file is not accepted
// by supported.
func checkExtension(file string, supported SupportedImageFunc) error {
	if ext := filepath.Ext(file); !supported(ext) {
		return fmt.Errorf("Unsupported file type: %q", ext)
	}
	return nil
}

// LoadImage reads a jpg or png image from a file.
func LoadImage(path string) (image.Image, error) {
	if err := checkExtension(path, JPGAndPNG); err != nil {
		return nil, err
	}
	r, openErr := os.Open(path)
	if openErr != nil {
		return nil, openErr
	}
	defer r.Close()
	img, _, decodeErr := image.Decode(r)
	return img, decodeErr
}

// SaveImage writes an image to a file, the format depends on the file
// extension which must be accepted by JPGAndPNG.
func SaveImage(file string, img image.Image, jpgQuality int) error {
	if err := checkExtension(file, JPGAndPNG); err != nil {
		return err
	}
	outFile, outErr := os.Create(file)
	if outErr != nil {
		return outErr
	}
	defer outFile.Close()
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png":
		return png.Encode(outFile, img)
	default:
		return jpeg.Encode(outFile, img, &jpeg.Options{Quality: jpgQuality})
	}
}
