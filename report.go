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
	"io"
	"os"

	"github.com/google/uuid"
)

// Version is the version of the report format, it is stored in each
// report.
const Version = "1.0"

// BillEntry is the number of pieces required for one color.
type BillEntry struct {
	ID ColorID `json:"id"`
	PieceRecord
}

// BillOfMaterials lists the pieces required for the whole mosaic, one entry
// per used color sorted by id.
type BillOfMaterials struct {
	RunID   string      `json:"run_id"`
	Entries []BillEntry `json:"colors"`
}

// NewBillOfMaterials counts the colors of the number image. Each bill gets
// a new random run id.
func NewBillOfMaterials(nim *NumberImage) *BillOfMaterials {
	masks := ColorMasks(nim)
	res := &BillOfMaterials{
		RunID:   uuid.NewString(),
		Entries: make([]BillEntry, len(masks)),
	}
	for i, m := range masks {
		res.Entries[i] = BillEntry{ID: m.ID, PieceRecord: NewPieceRecord(m.Pixels)}
	}
	return res
}

// Get returns the entry for the color with the given id.
func (b *BillOfMaterials) Get(id ColorID) (BillEntry, bool) {
	for _, entry := range b.Entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return BillEntry{}, false
}

// TotalPieces returns the number of pieces over all colors.
func (b *BillOfMaterials) TotalPieces() int {
	res := 0
	for _, entry := range b.Entries {
		res += entry.Pieces
	}
	return res
}

// WriteJSON writes the bill encoded in json.
func (b *BillOfMaterials) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// PlateReport is the json representation of a plate without the masks.
type PlateReport struct {
	Column  int         `json:"column"`
	Row     int         `json:"row"`
	Rotated bool        `json:"rotated"`
	Colors  []BillEntry `json:"colors"`
}

// Report contains everything required to order the pieces and build the
// plates.
type Report struct {
	Version     string           `json:"version"`
	Orientation string           `json:"orientation"`
	Dimension   string           `json:"dimension"`
	Palette     string           `json:"palette"`
	Bill        *BillOfMaterials `json:"bill"`
	Plates      []PlateReport    `json:"plates"`
}

// Report returns the report of the plate set. The palette and bill are
// set by the caller, see Result.Report.
func (s *PlateSet) Report() *Report {
	res := &Report{
		Version:   Version,
		Dimension: s.Layout.Grid.String(),
		Plates:    make([]PlateReport, len(s.Plates)),
	}
	if s.Layout.Rotated() {
		res.Orientation = OrientationVertical.String()
	} else {
		res.Orientation = OrientationHorizontal.String()
	}
	for i, plate := range s.Plates {
		entries := make([]BillEntry, len(plate.Colors))
		for k, c := range plate.Colors {
			entries[k] = BillEntry{ID: c.ID, PieceRecord: c.PieceRecord}
		}
		res.Plates[i] = PlateReport{
			Column:  plate.Column,
			Row:     plate.Row,
			Rotated: plate.Rotated,
			Colors:  entries,
		}
	}
	return res
}

// WriteJSON writes the report encoded in json.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteJSONFile writes the report to a file encoded in json format.
func (r *Report) WriteJSONFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.WriteJSON(f)
}

// ReadReportFile reads a report from the specified file.
func ReadReportFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	res := &Report{}
	if err := dec.Decode(res); err != nil {
		return nil, err
	}
	return res, nil
}
