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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorID identifies a piece color, it is a string of decimal digits
// (usually the part number of the piece).
type ColorID string

// IsColorID returns true if s is a non-empty string of decimal digits.
func IsColorID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CompareColorIDs compares two ids as strings, so "10" comes before "9".
// This is the order of the keys in a palette file sorted as text.
func CompareColorIDs(a, b ColorID) int {
	return strings.Compare(string(a), string(b))
}

// SortColorIDs sorts the ids ascending, see CompareColorIDs.
func SortColorIDs(ids []ColorID) {
	slices.SortFunc(ids, CompareColorIDs)
}

// PaletteEntry is a single piece color.
type PaletteEntry struct {
	ID    ColorID
	Color colorful.Color
}

// ColorDictionary contains all piece colors that are available. It is the
// source from which palettes are created.
//
// The order of the entries is the order in which they were added (for
// dictionaries read from a file the order in the file). This order is
// relevant: If two entries are equally close to a requested color the first
// one is chosen.
type ColorDictionary struct {
	entries []PaletteEntry
	index   map[ColorID]int
}

// NewColorDictionary returns a dictionary containing the entries.
// Duplicate or invalid ids are not allowed.
func NewColorDictionary(entries []PaletteEntry) (*ColorDictionary, error) {
	res := &ColorDictionary{
		entries: make([]PaletteEntry, 0, len(entries)),
		index:   make(map[ColorID]int, len(entries)),
	}
	for _, entry := range entries {
		if !IsColorID(string(entry.ID)) {
			return nil, fmt.Errorf("Invalid id in color dictionary: %q, must be a string of digits", entry.ID)
		}
		if _, has := res.index[entry.ID]; has {
			return nil, fmt.Errorf("Duplicate id in color dictionary: %s", entry.ID)
		}
		res.index[entry.ID] = len(res.entries)
		res.entries = append(res.entries, entry)
	}
	return res, nil
}

// Len returns the number of entries in the dictionary.
func (d *ColorDictionary) Len() int {
	return len(d.entries)
}

// Entries returns all entries in dictionary order. The slice must not be
// modified.
func (d *ColorDictionary) Entries() []PaletteEntry {
	return d.entries
}

// Lookup returns the color with the given id.
func (d *ColorDictionary) Lookup(id ColorID) (colorful.Color, bool) {
	if i, has := d.index[id]; has {
		return d.entries[i].Color, true
	}
	return colorful.Color{}, false
}

// ReadColorDictionary reads a dictionary encoded as a JSON object mapping ids
// to [r, g, b] lists, for example {"101": [0.9, 0.1, 0.1]}.
// The order of the keys is retained. If any component is greater than 1 all
// components are assumed to be in [0, 255] and are rescaled to [0, 1].
func ReadColorDictionary(r io.Reader) (*ColorDictionary, error) {
	dec := json.NewDecoder(r)
	start, tokenErr := dec.Token()
	if tokenErr != nil {
		return nil, tokenErr
	}
	if delim, ok := start.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("Invalid color dictionary: expected a JSON object")
	}
	type rawEntry struct {
		id  ColorID
		rgb []float64
	}
	raw := make([]rawEntry, 0, 100)
	maxValue := 0.0
	for dec.More() {
		keyToken, keyErr := dec.Token()
		if keyErr != nil {
			return nil, keyErr
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("Invalid color dictionary key: %v", keyToken)
		}
		var rgb []float64
		if decodeErr := dec.Decode(&rgb); decodeErr != nil {
			return nil, fmt.Errorf("Invalid color for id %s: %s", key, decodeErr.Error())
		}
		if len(rgb) != 3 {
			return nil, fmt.Errorf("Invalid color for id %s: expected 3 components, got %d", key, len(rgb))
		}
		maxValue = max(maxValue, slices.Max(rgb))
		raw = append(raw, rawEntry{id: ColorID(key), rgb: rgb})
	}
	if _, endErr := dec.Token(); endErr != nil {
		return nil, endErr
	}
	scale := 1.0
	if maxValue > 1 {
		scale = 255.0
	}
	entries := make([]PaletteEntry, len(raw))
	for i, e := range raw {
		entries[i] = PaletteEntry{
			ID:    e.id,
			Color: colorful.Color{R: e.rgb[0] / scale, G: e.rgb[1] / scale, B: e.rgb[2] / scale},
		}
	}
	return NewColorDictionary(entries)
}

// LoadColorDictionary reads a dictionary from a JSON file, see
// ReadColorDictionary.
func LoadColorDictionary(path string) (*ColorDictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadColorDictionary(f)
}

// WriteJSON writes the dictionary in the format read by ReadColorDictionary.
func (d *ColorDictionary) WriteJSON(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("{\n")
	for i, entry := range d.entries {
		key, _ := json.Marshal(string(entry.ID))
		value, _ := json.Marshal([]float64{entry.Color.R, entry.Color.G, entry.Color.B})
		fmt.Fprintf(&sb, "  %s: %s", key, value)
		if i+1 < len(d.entries) {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// Palette is the set of colors used for a mosaic. Each id appears only once.
// The order of the entries matters: If two colors are equally good the
// quantizer picks the one that comes first.
//
// Palettes created with NewPalette are sorted by id (see CompareColorIDs),
// the palette of the whole dictionary (see ColorDictionary.Palette) keeps the
// dictionary order.
type Palette struct {
	Entries []PaletteEntry
}

// NewPalette returns the palette with the given ids, the colors are looked up
// in the dictionary. Duplicate ids are removed.
// If an id is not found an error wrapping ErrUnknownPaletteID is returned,
// an empty list of ids results in ErrEmptyPalette.
func NewPalette(dict *ColorDictionary, ids []ColorID) (*Palette, error) {
	sorted := slices.Clone(ids)
	SortColorIDs(sorted)
	sorted = slices.Compact(sorted)
	if len(sorted) == 0 {
		return nil, ErrEmptyPalette
	}
	res := &Palette{Entries: make([]PaletteEntry, len(sorted))}
	for i, id := range sorted {
		c, has := dict.Lookup(id)
		if !has {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPaletteID, id)
		}
		res.Entries[i] = PaletteEntry{ID: id, Color: c}
	}
	return res, nil
}

// Palette returns a palette with all entries of the dictionary in dictionary
// order.
func (d *ColorDictionary) Palette() (*Palette, error) {
	if d.Len() == 0 {
		return nil, ErrEmptyPalette
	}
	return &Palette{Entries: slices.Clone(d.Entries())}, nil
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	return len(p.Entries)
}

// IDs returns the ids of all colors in the palette.
func (p *Palette) IDs() []ColorID {
	res := make([]ColorID, len(p.Entries))
	for i, entry := range p.Entries {
		res[i] = entry.ID
	}
	return res
}

// Color returns the color with the given id.
func (p *Palette) Color(id ColorID) (colorful.Color, bool) {
	for _, entry := range p.Entries {
		if entry.ID == id {
			return entry.Color, true
		}
	}
	return colorful.Color{}, false
}

func (p *Palette) String() string {
	ids := p.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, "-")
}
