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
	"io"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

// Config contains the options of a run as entered by the user, for example
// in a config file or on the command line. Use Settings to validate and
// parse it.
//
// An example config file:
//
//	orientation = "vertical"
//	align = "center top"
//	dimension = "2x1"
//	colours = "top8image"
//	tile_size = "1"
//	palette = "~/pixelplate/rgb.json"
type Config struct {
	// Orientation is "vertical", "horizontal" or "auto".
	Orientation string `toml:"orientation"`

	// Align is the combined alignment "HORIZONTAL VERTICAL", see ParseAlign.
	// If HorizontalAlign or VerticalAlign is set it overwrites the
	// corresponding part.
	Align           string `toml:"align"`
	HorizontalAlign string `toml:"horizontal_align"`
	VerticalAlign   string `toml:"vertical_align"`

	// Dimension is the number of plates, "A" or "AxB" (columns x rows).
	Dimension string `toml:"dimension"`

	// Colours is the palette request, see PaletteResolver.Resolve.
	Colours string `toml:"colours"`

	// TileSize is the block size of the quantizer, "A" or "AxB".
	TileSize string `toml:"tile_size"`

	// Palette is the path of the color dictionary.
	Palette string `toml:"palette"`

	NumRoutines   int `toml:"routines"`
	MaxCandidates int `toml:"max_candidates"`
}

// DefaultConfig returns the default options: automatic orientation,
// centered, one plate, all colors and a tile size of one.
func DefaultConfig() Config {
	return Config{
		Orientation:   "auto",
		Align:         "center center",
		Dimension:     "1",
		Colours:       AllColors,
		TileSize:      "1",
		Palette:       "rgb.json",
		NumRoutines:   runtime.NumCPU(),
		MaxCandidates: DefaultMaxCandidates,
	}
}

// Settings are the parsed and validated options of a run.
type Settings struct {
	Orientation Orientation
	Align       Alignment
	Dimension   GridSize
	Colours     string
	TileSize    GridSize
	Quantize    QuantizeOptions
}

// Settings parses all options. All errors wrap ErrConfiguration.
// The palette request is only checked for being non-empty, it is validated
// by the resolver.
func (c Config) Settings() (*Settings, error) {
	orientation, err := ParseOrientation(c.Orientation)
	if err != nil {
		return nil, err
	}
	align := CenterAlignment
	if strings.TrimSpace(c.Align) != "" {
		if align, err = ParseAlign(c.Align); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(c.HorizontalAlign) != "" {
		if align.Col, err = ParseHorizontalAlign(c.HorizontalAlign); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(c.VerticalAlign) != "" {
		if align.Row, err = ParseVerticalAlign(c.VerticalAlign); err != nil {
			return nil, err
		}
	}
	dimension, err := ParseGridSize(c.Dimension)
	if err != nil {
		return nil, err
	}
	tileSize, err := ParseGridSize(c.TileSize)
	if err != nil {
		return nil, err
	}
	colours := strings.TrimSpace(c.Colours)
	if colours == "" {
		return nil, fmt.Errorf("%w: no colours given", ErrConfiguration)
	}
	if c.NumRoutines < 0 || c.MaxCandidates < 0 {
		return nil, fmt.Errorf("%w: routines and max_candidates must not be negative", ErrConfiguration)
	}
	return &Settings{
		Orientation: orientation,
		Align:       align,
		Dimension:   dimension,
		Colours:     colours,
		TileSize:    tileSize,
		Quantize: QuantizeOptions{
			NumRoutines:   c.NumRoutines,
			MaxCandidates: c.MaxCandidates,
		},
	}, nil
}

// ReadConfig decodes a toml config. Options not set in the input keep
// the values of DefaultConfig.
func ReadConfig(r io.Reader) (Config, error) {
	res := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&res)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfiguration, err.Error())
	}
	logUndecoded(md)
	return res, nil
}

// LoadConfigFile reads a toml config file, see ReadConfig.
func LoadConfigFile(path string) (Config, error) {
	res := DefaultConfig()
	md, err := toml.DecodeFile(path, &res)
	if err != nil {
		return Config{}, fmt.Errorf("%w: can't read config file %s: %s", ErrConfiguration, path, err.Error())
	}
	logUndecoded(md)
	return res, nil
}

func logUndecoded(md toml.MetaData) {
	for _, key := range md.Undecoded() {
		log.WithField("key", key.String()).Warn("Ignoring unknown config option")
	}
}
