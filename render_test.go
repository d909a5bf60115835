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
	"image/color"
	"path/filepath"
	"testing"
)

func TestToImage(t *testing.T) {
	pim := NewColorGrid(1, 2)
	pim.Pix[0] = red
	pim.Pix[1] = blue
	img := ToImage(pim)
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Fatalf("bounds: got %v want 2x1", b)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("pixel 0: got %v", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Fatalf("pixel 1: got %v", got)
	}
}

func TestPreview(t *testing.T) {
	pim := NewColorGrid(2, 3)
	for i := range pim.Pix {
		pim.Pix[i] = yellow
	}
	img := Preview(pim, 4, nil)
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 8 {
		t.Fatalf("bounds: got %v want 12x8", b)
	}
	r, g, b, a := img.At(5, 5).RGBA()
	if r != 0xffff || g != 0xffff || b != 0 || a != 0xffff {
		t.Fatalf("pixel (5, 5): got %d %d %d %d", r, g, b, a)
	}
	if same := Preview(pim, 1, nil); same.Bounds().Dx() != 3 {
		t.Fatalf("scale 1: got width %d want 3", same.Bounds().Dx())
	}
}

func TestPreviewInterpolation(t *testing.T) {
	pim := NewColorGrid(1, 2)
	pim.Pix[0] = black
	pim.Pix[1] = white
	// the cells stay sharp with nearest neighbor, smoother interpolations
	// blend the colors at the border
	sharp := Preview(pim, 8, NewNfntResizer(GetInterP(0)))
	if r, _, _, _ := sharp.At(7, 4).RGBA(); r != 0 {
		t.Fatalf("nearest neighbor: got red %d want 0", r)
	}
	for quality := uint(1); quality <= 5; quality++ {
		smooth := Preview(pim, 8, NewNfntResizer(GetInterP(quality)))
		if b := smooth.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
			t.Fatalf("quality %d: got bounds %v want 16x8", quality, b)
		}
		if r, _, _, _ := smooth.At(7, 4).RGBA(); r == 0 || r == 0xffff {
			t.Fatalf("quality %d: got red %d at the border, expected a blend", quality, r)
		}
	}
}

func TestMaskImage(t *testing.T) {
	mask := NewBoolGrid(2, 2)
	mask.Set(1, 0, true)
	img := MaskImage(mask)
	if got := img.GrayAt(0, 1).Y; got != 0 {
		t.Fatalf("masked cell: got %d want 0", got)
	}
	if got := img.GrayAt(1, 1).Y; got != 255 {
		t.Fatalf("unmasked cell: got %d want 255", got)
	}
}

func TestSaveAndLoadImage(t *testing.T) {
	pim := NewColorGrid(2, 2)
	pim.Pix[3] = white
	path := filepath.Join(t.TempDir(), "preview.png")
	if err := SaveImage(path, ToImage(pim), 100); err != nil {
		t.Fatalf("can't save image: %v", err)
	}
	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("can't load image: %v", err)
	}
	src := NewSourceImage(img)
	if src.At(1, 1) != white || src.At(0, 0) != black {
		t.Fatalf("loaded pixels: got %v and %v", src.At(1, 1), src.At(0, 0))
	}
	if err := SaveImage(filepath.Join(t.TempDir(), "preview.gif"), ToImage(pim), 100); err == nil {
		t.Fatalf("save gif: expected an error")
	}
	if _, err := LoadImage(filepath.Join(t.TempDir(), "preview.gif")); err == nil {
		t.Fatalf("load gif: expected an error")
	}
	if err := SaveImage(filepath.Join(t.TempDir(), "preview.JPG"), ToImage(pim), 90); err != nil {
		t.Fatalf("can't save jpg: %v", err)
	}
}
