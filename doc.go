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

// Package pixelplate turns a photograph into a mosaic that can be built
// from colored unit pieces on physical plates. Each plate is a fixed grid of
// cells (50x40), the whole mosaic is a grid of such plates.
//
// The work is done in four stages: The source image is reduced to one color
// per cell (Reduce), the palette of usable colors is resolved from a request
// string (ResolvePalette), each block of cells gets the best combination of
// palette colors (Quantize) and finally the result is cut into plates with
// the number of pieces required per color (Partition).
//
// Run executes all stages, the program in cmd/pixelplate writes the
// results to the filesystem.
package pixelplate
