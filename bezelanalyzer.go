// Package bezelanalyzer analyzes unzipped MAME bezel artwork and produces a
// per-game record store for Attract-Mode layouts.
//
// The analysis is based on the .lay file structure described at
// http://wiki.mamedev.org/index.php/LAY_File_Basics_-_Part_I. For every game
// in an Attract-Mode romlist the analyzer locates the game's artwork
// directory, extracts the bezel geometry from its layout document, writes a
// low-resolution copy of (or a symbolic link to) the bezel image, and saves
// the collected data to AMbezels.ini so layouts can display bezels through
// the file-format module.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//
//		bezelanalyzer "github.com/attractmode/bezel-analyzer"
//		"github.com/attractmode/bezel-analyzer/internal/config"
//		"github.com/attractmode/bezel-analyzer/internal/logging"
//	)
//
//	func main() {
//		cfg := config.Default()
//		cfg.Expand()
//
//		logger, err := logging.New(cfg.Logging)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		analyzer := bezelanalyzer.New(cfg, logger)
//		stats, err := analyzer.Run()
//		if err != nil {
//			log.Fatal(err)
//		}
//		logger.Sugar().Infof("%d bezel records written", stats.Records())
//	}
//
// The package consists of these main components:
//
//  1. Layout (pkg/layout): pattern catalog and staged extraction from .lay text
//  2. Artwork (pkg/artwork): artwork directory index and layout file location
//  3. Geometry (pkg/geometry): proportional coordinate rescaling
//  4. Imagetool (pkg/imagetool): resize/measure operations (built-in or sips)
//  5. Materialize (pkg/materialize): resized copies or links in the output dir
//  6. Pipeline (pkg/pipeline): per-game orchestration and clone propagation
//  7. Store (pkg/store): the AMbezels.ini record store writer
package bezelanalyzer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/attractmode/bezel-analyzer/internal/config"
	"github.com/attractmode/bezel-analyzer/internal/utils"
	"github.com/attractmode/bezel-analyzer/pkg/artwork"
	"github.com/attractmode/bezel-analyzer/pkg/imagetool"
	"github.com/attractmode/bezel-analyzer/pkg/layout"
	"github.com/attractmode/bezel-analyzer/pkg/materialize"
	"github.com/attractmode/bezel-analyzer/pkg/pipeline"
	"github.com/attractmode/bezel-analyzer/pkg/romlist"
	"github.com/attractmode/bezel-analyzer/pkg/store"
)

// Version of the bezel analyzer
const Version = "1.0.0"

// ErrNoArtwork is returned when no game in the romlist has an unzipped
// artwork directory under any configured root.
var ErrNoArtwork = errors.New("bezelanalyzer: no game has unzipped bezel artwork")

// Analyzer runs the whole bezel analysis for one configuration.
type Analyzer struct {
	cfg    *config.Config
	logger *zap.Logger
}

// New creates an Analyzer. The configuration is expected to be expanded and
// validated by the caller.
func New(cfg *config.Config, logger *zap.Logger) *Analyzer {
	return &Analyzer{cfg: cfg, logger: logger}
}

// Run executes one full analysis: romlist in, AMbezels.ini and materialized
// assets out. Per-game failures never abort the run; the returned error
// covers only run-fatal conditions, and no partial record store is written
// when one occurs.
func (a *Analyzer) Run() (pipeline.Stats, error) {
	games, _, err := romlist.Load(a.cfg.Directories.RomlistPath)
	if err != nil {
		return pipeline.Stats{}, fmt.Errorf("bezelanalyzer: load romlist: %w", err)
	}

	index, err := artwork.BuildIndex(a.cfg.Directories.ArtworkDirs)
	if err != nil {
		return pipeline.Stats{}, err
	}

	withArtwork := 0
	for _, game := range games {
		if _, ok := index.Dir(game.Name); ok {
			withArtwork++
		}
	}
	if withArtwork == 0 {
		return pipeline.Stats{}, ErrNoArtwork
	}

	excluded := a.loadExceptions()

	if err := utils.EnsureDir(a.cfg.Directories.OutputDir); err != nil {
		return pipeline.Stats{}, fmt.Errorf("bezelanalyzer: create output dir: %w", err)
	}
	if a.cfg.Options.ClearOutput {
		removed, err := utils.RemoveFilesWithExt(a.cfg.Directories.OutputDir, ".png")
		if err != nil {
			return pipeline.Stats{}, fmt.Errorf("bezelanalyzer: clear output dir: %w", err)
		}
		a.logger.Info("cleared output directory", zap.Int("removed", removed))
	}

	var tool imagetool.Tool
	if a.cfg.Options.Rescale {
		tool, err = imagetool.Detect(a.cfg.Options.ResizeTool)
		if err != nil {
			return pipeline.Stats{}, err
		}
		if tool != nil {
			a.logger.Info("resize tool selected", zap.String("tool", tool.Name()))
		}
	}

	mat := materialize.New(a.cfg.Options.Rescale, tool, a.cfg.Directories.OutputDir,
		a.cfg.Options.MaxResolution, a.logger)

	extractor := layout.NewExtractor(layout.NewCatalog(),
		layout.NewGenericFilter(a.cfg.Options.ExcludeGeneric))

	p := pipeline.New(extractor, index, excluded, mat, a.logger)
	records, stats, err := p.Run(games)
	if err != nil {
		return stats, err
	}

	if err := store.Write(a.cfg.StorePath(), records); err != nil {
		return stats, err
	}

	a.reportStats(stats)
	return stats, nil
}

func (a *Analyzer) loadExceptions() []string {
	path := a.cfg.ExceptionsPath()
	if !utils.FileExists(path) {
		a.logger.Info("no exclusion list", zap.String("path", path))
		return nil
	}
	lines, err := utils.ReadLines(path)
	if err != nil {
		a.logger.Warn("failed to read exclusion list", zap.Error(err))
		return nil
	}
	return lines
}

func (a *Analyzer) reportStats(stats pipeline.Stats) {
	for _, kind := range layout.FailureKinds() {
		if count := stats.Failures[kind]; count > 0 {
			a.logger.Info("games skipped",
				zap.String("reason", kind.String()),
				zap.Int("count", count))
		}
	}
	a.logger.Sugar().Infof("%d out of %d games have artwork", stats.WithArtwork, stats.Total)
	a.logger.Sugar().Infof("%d out of %d games have bezel artwork", stats.Records(), stats.WithArtwork)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
