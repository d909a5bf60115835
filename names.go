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
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Colors that are not part of the CSS names: the tableau colors (prefix
// "tab:") and the single letter base colors.
var (
	tableauColors = map[string]string{
		"tab:blue":   "#1f77b4",
		"tab:orange": "#ff7f0e",
		"tab:green":  "#2ca02c",
		"tab:red":    "#d62728",
		"tab:purple": "#9467bd",
		"tab:brown":  "#8c564b",
		"tab:pink":   "#e377c2",
		"tab:gray":   "#7f7f7f",
		"tab:grey":   "#7f7f7f",
		"tab:olive":  "#bcbd22",
		"tab:cyan":   "#17becf",
	}

	baseColors = map[string]colorful.Color{
		"b": {R: 0, G: 0, B: 1},
		"g": {R: 0, G: 0.5, B: 0},
		"r": {R: 1, G: 0, B: 0},
		"c": {R: 0, G: 0.75, B: 0.75},
		"m": {R: 0.75, G: 0, B: 0.75},
		"y": {R: 0.75, G: 0.75, B: 0},
		"k": {R: 0, G: 0, B: 0},
		"w": {R: 1, G: 1, B: 1},
	}
)

// NamedColor returns the color for a color name. Supported are the CSS
// color names (like "crimson" or "royalblue"), the tableau colors
// ("tab:blue"), single letter base colors ("r", "k") and hex strings of the
// form "#rrggbb".
// Names are case insensitive.
func NamedColor(name string) (colorful.Color, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if c, has := baseColors[lower]; has {
		return c, nil
	}
	if hex, has := tableauColors[lower]; has {
		return colorful.Hex(hex)
	}
	if strings.HasPrefix(lower, "#") {
		c, err := colorful.Hex(lower)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("%w: invalid hex color %q", ErrInvalidColorSpec, name)
		}
		return c, nil
	}
	if rgba, has := colornames.Map[lower]; has {
		c, _ := colorful.MakeColor(rgba)
		return c, nil
	}
	return colorful.Color{}, fmt.Errorf("%w: unknown color name %q", ErrInvalidColorSpec, name)
}
