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
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	log "github.com/sirupsen/logrus"
)

// TopRequest is a parsed request of the form "topN" or "topNimage".
type TopRequest struct {
	N        int
	UseImage bool
}

// ParseTopRequest parses a request "topN" or "topNimage". The second return
// value is false if the request does not start with "top", in this case
// the request is not a top request at all. If the prefix is present but
// N is not a positive integer an error wrapping ErrInvalidColorSpec is
// returned.
func ParseTopRequest(request string) (TopRequest, bool, error) {
	if !strings.HasPrefix(request, "top") {
		return TopRequest{}, false, nil
	}
	rest := strings.TrimPrefix(request, "top")
	res := TopRequest{}
	if strings.HasSuffix(rest, "image") {
		res.UseImage = true
		rest = strings.TrimSuffix(rest, "image")
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 || !IsColorID(rest) {
		return TopRequest{}, true, fmt.Errorf("%w: invalid top request %q, expected topN or topNimage with N > 0",
			ErrInvalidColorSpec, request)
	}
	res.N = n
	return res, true, nil
}

// PaletteResolver creates palettes from color requests, see Resolve for
// details.
type PaletteResolver struct {
	Dictionary *ColorDictionary
	Clusterer  Clusterer
}

// NewPaletteResolver returns a resolver for the dictionary, it uses the
// default k-means implementation for top requests.
func NewPaletteResolver(dict *ColorDictionary) *PaletteResolver {
	return &PaletteResolver{Dictionary: dict, Clusterer: NewKMeans()}
}

// ResolvePalette is a shortcut for creating a PaletteResolver with
// NewPaletteResolver and calling Resolve.
func ResolvePalette(request string, dict *ColorDictionary, reduced *ColorGrid) (*Palette, error) {
	return NewPaletteResolver(dict).Resolve(request, reduced)
}

// Resolve returns the palette described by the request.
//
// The following requests are supported:
//
// "all" selects the whole dictionary in dictionary order. All other palettes
// are sorted by id.
//
// A preset name (see Presets) is replaced by the list of colors of the preset.
//
// "topN" clusters the colors of the dictionary into N clusters,
// "topNimage" clusters all cells of the reduced image into N clusters.
// For each cluster the dictionary entry closest to the cluster mean is
// selected (smallest mean absolute deviation). Two clusters may select the
// same entry, so the palette may contain less than N colors.
//
// Everything else is a list of tokens separated by "-", each token is either
// an id from the dictionary or a color name (see NamedColor). Names are
// replaced by the dictionary entry with the smallest mean squared deviation.
//
// reduced is only required for "topNimage" requests and may be nil otherwise.
func (r *PaletteResolver) Resolve(request string, reduced *ColorGrid) (*Palette, error) {
	request = strings.TrimSpace(request)
	if r.Dictionary.Len() == 0 {
		return nil, ErrEmptyPalette
	}
	if request == AllColors {
		return r.Dictionary.Palette()
	}
	if preset, has := Presets[request]; has {
		request = preset
	}
	var ids []ColorID
	top, isTop, topErr := ParseTopRequest(request)
	switch {
	case topErr != nil:
		return nil, topErr
	case isTop:
		var clusterErr error
		ids, clusterErr = r.topColors(top, reduced)
		if clusterErr != nil {
			return nil, clusterErr
		}
	default:
		var listErr error
		ids, listErr = r.listColors(request)
		if listErr != nil {
			return nil, listErr
		}
	}
	palette, err := NewPalette(r.Dictionary, ids)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"request": request,
		"colors":  palette.Len(),
	}).Debug("Resolved palette")
	return palette, nil
}

func (r *PaletteResolver) listColors(request string) ([]ColorID, error) {
	tokens := strings.Split(request, "-")
	res := make([]ColorID, 0, len(tokens))
	for _, token := range tokens {
		id, err := r.resolveToken(token)
		if err != nil {
			return nil, err
		}
		res = append(res, id)
	}
	return res, nil
}

func (r *PaletteResolver) resolveToken(token string) (ColorID, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: empty color token", ErrInvalidColorSpec)
	}
	if IsColorID(token) {
		if _, has := r.Dictionary.Lookup(ColorID(token)); !has {
			return "", fmt.Errorf("%w: %s", ErrUnknownPaletteID, token)
		}
		return ColorID(token), nil
	}
	c, err := NamedColor(token)
	if err != nil {
		return "", err
	}
	entry, _ := NearestEntry(r.Dictionary.Entries(), c, MeanSquaredDeviation)
	return entry.ID, nil
}

func (r *PaletteResolver) topColors(top TopRequest, reduced *ColorGrid) ([]ColorID, error) {
	var data clusters.Observations
	if top.UseImage {
		if reduced == nil {
			return nil, fmt.Errorf("%w: top%dimage requires a reduced image", ErrConfiguration, top.N)
		}
		data = ColorObservations(reduced.Pix)
	} else {
		colors := make([]colorful.Color, 0, r.Dictionary.Len())
		for _, entry := range r.Dictionary.Entries() {
			colors = append(colors, entry.Color)
		}
		data = ColorObservations(colors)
	}
	clusterer := r.Clusterer
	if clusterer == nil {
		clusterer = NewKMeans()
	}
	cc, err := clusterer.Partition(data, top.N)
	if err != nil {
		return nil, err
	}
	res := make([]ColorID, 0, len(cc))
	for _, cluster := range cc {
		centroid := ClusterCentroid(cluster)
		target := colorful.Color{R: centroid[0], G: centroid[1], B: centroid[2]}
		entry, _ := NearestEntry(r.Dictionary.Entries(), target, MeanAbsoluteDeviation)
		res = append(res, entry.ID)
	}
	return res, nil
}
