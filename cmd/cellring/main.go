package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cellring/internal/config"
	"cellring/internal/convert"
	"cellring/internal/engine2D"
	"cellring/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type options struct {
	width, height int
	fps           int
	mode          engine2D.Mode
	pointer       string
	fallback      string
	tuning        config.Tuning
	atlasIn       string
	atlasOut      string
}

func main() {
	width := flag.Int("width", 1440, "Initial window width")
	height := flag.Int("height", 900, "Initial window height")
	fps := flag.Int("fps", 60, "Target frame rate")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides -debug)")
	raylibInfo := flag.Bool("raylib-info", false, "Show raylib info messages")
	modeFlag := flag.String("mode", "normal", "Visual mode: normal or active")
	pointerFlag := flag.String("pointer", "window", "Pointer source: window or x11")
	fallbackFlag := flag.String("fallback", "", "Static image (.png, .jpg or .tex) shown below the mobile breakpoint")
	tuningFlag := flag.String("tuning", "", "JSON file overriding tuning constants")
	assetsFlag := flag.String("assets", "", "Extra directory searched for assets")
	atlasIn := flag.String("atlas", "", "Load the sprite atlas from a snapshot instead of building it")
	atlasOut := flag.String("atlas-out", "", "Write the sprite atlas snapshot to this file")
	decodeFlag := flag.String("decode", "", "Convert a .tex file to .png next to it and exit")
	flag.Parse()

	if *debugFlag {
		utils.CurrentLevel = utils.LevelDebug
	}
	if *logLevel != "" {
		level, err := utils.ParseLevel(*logLevel)
		if err != nil {
			utils.Error("%v", err)
			os.Exit(1)
		}
		utils.CurrentLevel = level
	}
	utils.ShowRaylibInfo = *raylibInfo
	utils.AssetsDir = *assetsFlag

	if *decodeFlag != "" {
		if err := runDecode(*decodeFlag); err != nil {
			utils.Error("Decode failed: %v", err)
			os.Exit(1)
		}
		return
	}

	opts, err := buildOptions(*width, *height, *fps, *modeFlag, *pointerFlag, *fallbackFlag, *tuningFlag)
	if err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
	opts.atlasIn = *atlasIn
	opts.atlasOut = *atlasOut

	rl.SetTraceLogCallback(utils.RaylibLogCallback)

	utils.Info("--- Cell Ring Start ---")
	window := NewWindow(opts)
	window.Run()
	window.Close()
}

func buildOptions(width, height, fps int, mode, pointer, fallback, tuningPath string) (options, error) {
	if width <= 0 || height <= 0 {
		return options{}, fmt.Errorf("invalid window size %dx%d", width, height)
	}

	m, err := engine2D.ParseMode(mode)
	if err != nil {
		return options{}, err
	}

	switch pointer {
	case "window", "x11":
	default:
		return options{}, fmt.Errorf("unknown pointer source %q", pointer)
	}

	tuning, err := config.LoadTuning(tuningPath)
	if err != nil {
		return options{}, fmt.Errorf("load tuning: %w", err)
	}

	if fallback != "" {
		fallback = resolveFallback(fallback)
	}

	return options{
		width:    width,
		height:   height,
		fps:      fps,
		mode:     m,
		pointer:  pointer,
		fallback: fallback,
		tuning:   tuning,
	}, nil
}

// resolveFallback finds the fallback image on disk. Archive paths
// ("scene.pkg:materials/a.tex") resolve the archive only.
func resolveFallback(path string) string {
	if pkg, entry, ok := strings.Cut(path, ".pkg:"); ok {
		archive := utils.ResolveAssetPath(pkg + ".pkg")
		if _, err := os.Stat(archive); err != nil {
			utils.Warn("Fallback archive not found: %s", pkg+".pkg")
			return ""
		}
		return archive + ":" + entry
	}

	resolved := utils.FindImageFile(path)
	if resolved == "" {
		utils.Warn("Fallback image not found: %s", path)
	}
	return resolved
}

// runDecode writes the PNG next to the texture, or into the working
// directory for archive entries.
func runDecode(texPath string) error {
	name := texPath
	if _, entry, ok := strings.Cut(texPath, ".pkg:"); ok {
		name = filepath.Base(entry)
	}
	outPath := strings.TrimSuffix(name, filepath.Ext(name)) + ".png"
	utils.Info("Decoding %s -> %s", texPath, outPath)
	return convert.DecodeToPNG(texPath, outPath)
}
