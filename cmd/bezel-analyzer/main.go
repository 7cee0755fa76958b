package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	bezelanalyzer "github.com/attractmode/bezel-analyzer"
	"github.com/attractmode/bezel-analyzer/internal/config"
	"github.com/attractmode/bezel-analyzer/internal/logging"
)

func main() {
	var configPath, envPath string
	var romlistPath, artworkDirs, outDir, supportDir string
	var rescale, excludeGeneric, clearOutput bool
	var maxRes int
	var tool string
	var debug, showVersion bool

	flag.StringVar(&configPath, "config", "", "JSON configuration file (flags override it)")
	flag.StringVar(&envPath, "env", "", "optional .env file with directory variables")

	flag.StringVar(&romlistPath, "romlist", "", "Attract-Mode romlist file (e.g. ~/.attract/romlists/mame.txt)")
	flag.StringVar(&artworkDirs, "artwork", "", "comma-separated roots containing unzipped MAME artwork")
	flag.StringVar(&outDir, "out", "", "directory where AM bezels are saved")
	flag.StringVar(&supportDir, "support", "", "directory holding AMbezels.ini and bezelexceptions.txt")

	flag.BoolVar(&rescale, "rescale", false, "create low-resolution bezel copies instead of links")
	flag.IntVar(&maxRes, "maxres", 800, "maximum bezel resolution in pixels, applied to the larger dimension")
	flag.BoolVar(&excludeGeneric, "exclude-generic", true, "exclude generic (manufacturer-standard) bezels")
	flag.BoolVar(&clearOutput, "clear", false, "remove all .png files from the output directory first")
	flag.StringVar(&tool, "tool", config.ToolAuto, "resize tool: auto|native|sips")

	flag.BoolVar(&debug, "debug", false, "enable per-game debug output")
	flag.BoolVar(&showVersion, "version", false, "show version and exit")

	flag.Parse()

	if showVersion {
		fmt.Printf("bezel-analyzer version %s\n", bezelanalyzer.GetVersion())
		return
	}

	if err := config.LoadEnvFile(envPath); err != nil {
		log.Fatal(err)
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	// Flags override whatever the config file said.
	if romlistPath != "" {
		cfg.Directories.RomlistPath = romlistPath
	}
	if artworkDirs != "" {
		cfg.Directories.ArtworkDirs = strings.Split(artworkDirs, ",")
	}
	if outDir != "" {
		cfg.Directories.OutputDir = outDir
	}
	if supportDir != "" {
		cfg.Directories.SupportDir = supportDir
	}
	cfg.Options.Rescale = rescale
	cfg.Options.MaxResolution = maxRes
	cfg.Options.ExcludeGeneric = excludeGeneric
	cfg.Options.ClearOutput = clearOutput
	cfg.Options.ResizeTool = tool
	cfg.Logging.Development = debug
	if debug {
		cfg.Logging.Level = "debug"
	}

	cfg.Expand()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	stats, err := bezelanalyzer.New(cfg, logger).Run()
	if err != nil {
		logger.Error("analysis failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("analysis complete",
		zap.Int("games", stats.Total),
		zap.Int("with_artwork", stats.WithArtwork),
		zap.Int("records", stats.Records()),
		zap.Int("propagated_clones", stats.Propagated))
}
