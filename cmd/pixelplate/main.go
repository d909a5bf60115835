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

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Since we're not in the pixelplate package we have to import it
	"github.com/FabianWe/pixelplate"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
)

func main() {
	defaults := pixelplate.DefaultConfig()
	imagePath := flag.String("image", "", "The image to create the mosaic from (.jpg or .png).")
	configPath := flag.String("config", "", "Optional toml config file, flags overwrite the values from the file.")
	orientation := flag.String("orientation", defaults.Orientation, "Placement of the plates: vertical, horizontal or auto.")
	align := flag.String("align", defaults.Align, "Alignment of the image on the plates, for example \"center center\" or \"left top\".")
	dimension := flag.String("dimension", defaults.Dimension, "Number of plates, A or AxB (columns x rows).")
	colours := flag.String("colours", defaults.Colours,
		"The palette: all, a preset (primary, basic, classic), topN, topNimage or a list of ids / names separated by -.")
	tileSize := flag.String("tilesize", defaults.TileSize, "Number of cells matched at once, A or AxB.")
	palettePath := flag.String("palette", defaults.Palette, "The json file with the piece colors.")
	outDir := flag.String("out", "mosaic", "The output directory.")
	routines := flag.Int("routines", defaults.NumRoutines, "Number of go routines used to quantize the image.")
	scale := flag.Int("scale", 10, "Pixels per cell in the preview image.")
	interp := flag.Uint("interp", 0,
		"Interpolation quality of the preview, 0 keeps the cells sharp, 1 to 4 blend them (bilinear, bicubic, Mitchell-Netravali, Lanczos2).")
	verbose := flag.Bool("verbose", false, "Print debug output.")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if *imagePath == "" {
		fmt.Println("Usage:", os.Args[0], "-image <IMAGE> [OPTIONS]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	config := defaults
	if *configPath != "" {
		var configErr error
		config, configErr = pixelplate.LoadConfigFile(expand(*configPath))
		if configErr != nil {
			log.WithError(configErr).Fatal("Can't read config")
		}
	}
	// only flags set explicitly overwrite the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "orientation":
			config.Orientation = *orientation
		case "align":
			config.Align = *align
			config.HorizontalAlign, config.VerticalAlign = "", ""
		case "dimension":
			config.Dimension = *dimension
		case "colours":
			config.Colours = *colours
		case "tilesize":
			config.TileSize = *tileSize
		case "palette":
			config.Palette = *palettePath
		case "routines":
			config.NumRoutines = *routines
		}
	})
	settings, settingsErr := config.Settings()
	if settingsErr != nil {
		log.WithError(settingsErr).Fatal("Invalid options")
	}

	dict, dictErr := pixelplate.LoadColorDictionary(expand(config.Palette))
	if dictErr != nil {
		log.WithError(dictErr).Fatal("Can't read palette")
	}
	img, imgErr := pixelplate.LoadImage(expand(*imagePath))
	if imgErr != nil {
		log.WithError(imgErr).Fatal("Can't read image")
	}

	start := time.Now()
	result, runErr := pixelplate.Run(pixelplate.NewSourceImage(img), dict, settings, pixelplate.LogObserver{})
	if runErr != nil {
		log.WithError(runErr).Fatal("Can't create mosaic")
	}
	resizer := pixelplate.NewNfntResizer(pixelplate.GetInterP(*interp))
	if err := writeOutput(expand(*outDir), result, *scale, resizer); err != nil {
		log.WithError(err).Fatal("Can't write output")
	}
	log.WithFields(log.Fields{
		"colors":  len(result.Bill.Entries),
		"pieces":  result.Bill.TotalPieces(),
		"run":     result.Bill.RunID,
		"elapsed": time.Since(start),
	}).Info("Done")
}

func expand(path string) string {
	res, err := homedir.Expand(path)
	if err != nil {
		log.WithError(err).Warn("Can't expand path")
		return path
	}
	return res
}

// writeOutput writes the preview, one mask per color and the report.
func writeOutput(dir string, result *pixelplate.Result, scale int, resizer pixelplate.ImageResizer) error {
	nimsDir := filepath.Join(dir, "nims")
	if err := os.MkdirAll(nimsDir, 0755); err != nil {
		return err
	}
	preview := pixelplate.Preview(result.Pixels, scale, resizer)
	if err := pixelplate.SaveImage(filepath.Join(dir, "preview.png"), preview, 100); err != nil {
		return err
	}
	for _, mask := range pixelplate.ColorMasks(result.Numbers) {
		file := filepath.Join(nimsDir, string(mask.ID)+".png")
		if err := pixelplate.SaveImage(file, pixelplate.MaskImage(mask.Mask), 100); err != nil {
			return err
		}
	}
	report := filepath.Join(dir, "plates.json")
	if err := result.Report().WriteJSONFile(report); err != nil {
		return err
	}
	log.WithField("dir", dir).Info("Wrote output")
	return nil
}
