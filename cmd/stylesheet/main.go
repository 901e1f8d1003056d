package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/wbrown/imgedit"
	"github.com/wbrown/imgedit/imageutil"
)

// parseStyles parses a comma separated style list. An empty list selects
// every style.
func parseStyles(list string) ([]imgedit.Style, error) {
	if strings.TrimSpace(list) == "" {
		return imgedit.Styles(), nil
	}
	var styles []imgedit.Style
	for _, name := range strings.Split(list, ",") {
		s, err := imgedit.ParseStyle(name)
		if err != nil {
			return nil, err
		}
		styles = append(styles, s)
	}
	return styles, nil
}

func main() {
	inputFile := flag.String("input", "", "Path to the input image file (required)")
	outputFile := flag.String("output", "", "Path to save the contact sheet (required)")
	configFile := flag.String("config", "", "Settings file whose sliders apply to every thumbnail")
	columns := flag.Int("columns", imgedit.DefaultSheetColumns, "Thumbnails per row")
	thumbSize := flag.Int("thumb", imgedit.DefaultSheetThumbSize, "Thumbnail bounding box in pixels")
	styleList := flag.String("styles", "", "Comma separated styles to include (default: all)")
	captions := flag.Bool("captions", true, "Draw the style name under each thumbnail")
	filterName := flag.String("filter", imageutil.InterpolationLanczos.String(),
		"Thumbnail scaling filter: area, linear, nearest or lanczos")
	flag.Parse()

	if *inputFile == "" || *outputFile == "" {
		fmt.Println("Both -input and -output flags are required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	settings, err := imgedit.LoadSettings(*configFile)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	styles, err := parseStyles(*styleList)
	if err != nil {
		log.Fatalf("Invalid -styles: %v", err)
	}

	filter, err := imageutil.ParseInterpolation(*filterName)
	if err != nil {
		log.Fatalf("Invalid -filter: %v", err)
	}

	img, err := imageutil.LoadImage(*inputFile)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}
	log.Infof("Rendering %d styles for %s (%dx%d)", len(styles), *inputFile, img.Width(), img.Height())

	sheet, err := imgedit.ContactSheet(img, settings,
		imgedit.WithColumns(*columns),
		imgedit.WithThumbSize(*thumbSize),
		imgedit.WithStyles(styles...),
		imgedit.WithCaptions(*captions),
		imgedit.WithThumbFilter(filter),
	)
	if err != nil {
		log.Fatalf("Failed to build contact sheet: %v", err)
	}

	if err := imageutil.SaveImage(sheet, *outputFile); err != nil {
		log.Fatalf("Failed to save contact sheet: %v", err)
	}

	fileInfo, err := os.Stat(*outputFile)
	if err == nil {
		log.Infof("Saved %dx%d contact sheet to %s (%.2f KB)",
			sheet.Width(), sheet.Height(), *outputFile, float64(fileInfo.Size())/1024)
	}
}
