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
)

// The following errors describe the different reasons a run can fail.
// Most functions wrap them with some details (for example the offending
// token), use errors.Is to test for them.
//
// None of these errors is transient, running the same input again will
// always fail in the same way.
var (
	// ErrConfiguration is returned for malformed alignment, dimension, tile
	// size or orientation strings.
	ErrConfiguration = errors.New("Invalid configuration")

	// ErrInsufficientResolution is returned if the source image is too small
	// for the requested grid.
	ErrInsufficientResolution = errors.New("Insufficient image resolution")

	// ErrIncompatibleTileSize is returned if the tile size does not divide the
	// grid dimensions.
	ErrIncompatibleTileSize = errors.New("Incompatible tile size")

	// ErrUnknownPaletteID is returned if a palette id is not found in the color
	// dictionary.
	ErrUnknownPaletteID = errors.New("Unknown palette id")

	// ErrInvalidColorSpec is returned for malformed color tokens.
	ErrInvalidColorSpec = errors.New("Invalid color specification")

	// ErrEmptyPalette is returned if no color could be selected.
	ErrEmptyPalette = errors.New("Empty palette")

	// ErrResourceExhausted is returned if the number of candidate fills of a
	// tile exceeds the configured limit. Reduce the tile size or the number of
	// colors in this case.
	ErrResourceExhausted = errors.New("Too many tile candidates, reduce the tile size or the number of colors")
)
