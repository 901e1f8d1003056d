package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/wbrown/imgedit"
	"github.com/wbrown/imgedit/imageutil"
)

func main() {
	inputFile := flag.String("input", "",
		"Path to the input image file (required)")
	outputFile := flag.String("output", "",
		"Path to save the result (default: edited-image-<unix ms>.png)")
	configFile := flag.String("config", "",
		"Settings file (YAML, JSON or TOML); IMGEDIT_* variables override it")
	style := flag.String("style", "",
		"Style preset, e.g. sepia, \"Edge Detection\", gaussian-blur (see -list)")
	brightness := flag.Int("brightness", 0, "Brightness offset, -100 to 100")
	contrast := flag.Int("contrast", 0, "Contrast offset, -100 to 100")
	saturation := flag.Int("saturation", 0, "Saturation offset, -100 to 100")
	hue := flag.Int("hue", 0, "Hue rotation in degrees, -180 to 180")
	rotate := flag.String("rotate", "",
		"Quarter turns applied before cropping: comma separated cw/ccw, e.g. cw,cw")
	crop := flag.String("crop", "",
		"Crop selection x,y,w,h in display units")
	display := flag.String("display", "",
		"Size WxH the crop selection was drawn on (default: image size)")
	list := flag.Bool("list", false, "List the style presets and exit")
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	logFile := flag.String("log-file", "",
		"Also write logs to this file, rotated at 10 MB")
	flag.Parse()

	if *list {
		for _, s := range imgedit.Styles() {
			fmt.Println(s)
		}
		return
	}

	logger := initLogger(*debugMode, *logFile)

	if *inputFile == "" {
		fmt.Println("Please provide the image using the -input flag")
		flag.PrintDefaults()
		return
	}

	settings, err := imgedit.LoadSettings(*configFile)
	if err != nil {
		logger.WithError(err).Error("Error loading settings")
		os.Exit(1)
	}

	// Flags given on the command line win over the settings file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "brightness":
			settings.Brightness = *brightness
		case "contrast":
			settings.Contrast = *contrast
		case "saturation":
			settings.Saturation = *saturation
		case "hue":
			settings.Hue = *hue
		case "style":
			settings.Style, err = imgedit.ParseStyle(*style)
		}
	})
	if err != nil {
		logger.WithError(err).Error("Invalid -style")
		os.Exit(1)
	}

	session, err := imgedit.OpenSession(*inputFile, imgedit.WithLogger(logger))
	if err != nil {
		logger.WithError(err).WithField("input", *inputFile).Error("Error loading image")
		os.Exit(1)
	}
	if err := session.SetSettings(settings); err != nil {
		logger.WithError(err).Error("Invalid settings")
		os.Exit(1)
	}

	if *rotate != "" {
		for _, turn := range strings.Split(*rotate, ",") {
			dir, err := parseRotation(turn)
			if err == nil {
				err = session.Rotate(dir)
			}
			if err != nil {
				logger.WithError(err).Error("Error rotating image")
				os.Exit(1)
			}
		}
	}

	if *crop != "" {
		sel, err := parseRect(*crop)
		if err != nil {
			logger.WithError(err).Error("Invalid -crop")
			os.Exit(1)
		}
		cur := session.Current()
		displayW, displayH := float64(cur.Width()), float64(cur.Height())
		if *display != "" {
			if displayW, displayH, err = parseSize(*display); err != nil {
				logger.WithError(err).Error("Invalid -display")
				os.Exit(1)
			}
		}
		if err := session.Crop(sel, displayW, displayH); err != nil {
			logger.WithError(err).Error("Error cropping image")
			os.Exit(1)
		}
	}

	beginRender := time.Now()
	out, err := session.Render()
	if err != nil {
		logger.WithError(err).Error("Error rendering image")
		os.Exit(1)
	}

	if *outputFile == "" {
		*outputFile = imgedit.ExportFileName(time.Now())
	}
	if err := imageutil.SaveImage(out, *outputFile); err != nil {
		logger.WithError(err).Error("Error saving image")
		os.Exit(1)
	}

	logger.WithFields(logrus.Fields{
		"input":  *inputFile,
		"output": *outputFile,
		"style":  settings.Style.String(),
		"width":  out.Width(),
		"height": out.Height(),
		"render": time.Since(beginRender),
	}).Info("Saved image")
}

// initLogger initializes the logger with appropriate level. With a log file
// the output goes to stdout and a rotated file.
func initLogger(debugMode bool, logFile string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if logFile != "" {
		logger.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
			LocalTime:  true,
		}))
	}

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   logFile == "",
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}

func parseRotation(s string) (imageutil.Rotation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cw", "clockwise", "right":
		return imageutil.RotateClockwise, nil
	case "ccw", "counterclockwise", "left":
		return imageutil.RotateCounterClockwise, nil
	}
	return 0, fmt.Errorf("%w: %q", imageutil.ErrInvalidRotation, s)
}

// parseRect parses "x,y,w,h".
func parseRect(s string) (imageutil.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return imageutil.Rect{}, fmt.Errorf("want x,y,w,h, got %q", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return imageutil.Rect{}, fmt.Errorf("crop %q: %w", s, err)
		}
		v[i] = f
	}
	return imageutil.Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}

// parseSize parses "WxH".
func parseSize(s string) (float64, float64, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("want WxH, got %q", s)
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("display %q: %w", s, err)
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("display %q: %w", s, err)
	}
	return width, height, nil
}
