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

// This file contains the predefined palettes that can be requested by name.
// This way we have some easy way to create mosaics without requiring the user
// to know the ids of the piece colors.

var (
	// PresetPrimary contains the three primary colors.
	PresetPrimary = "blue-red-yellow"

	// PresetBasic contains white and six tableau colors.
	PresetBasic = "white-tab:blue-tab:red-tab:green-tab:pink-tab:orange-tab:brown"

	// PresetClassic contains seven colors that work well for portraits.
	PresetClassic = "peachpuff-crimson-ivory-gold-royalblue-navy-forestgreen"
)

// AllColors is the request that selects the whole color dictionary.
const AllColors = "all"

// Presets maps the names of predefined palettes to the color request they
// stand for.
var Presets = map[string]string{
	"primary": PresetPrimary,
	"basic":   PresetBasic,
	"classic": PresetClassic,
}
