// Package pipeline runs the per-game bezel analysis end to end: extraction,
// materialization, rescaling, clone propagation and diagnostics.
package pipeline

import (
	"errors"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/attractmode/bezel-analyzer/pkg/artwork"
	"github.com/attractmode/bezel-analyzer/pkg/layout"
	"github.com/attractmode/bezel-analyzer/pkg/materialize"
	"github.com/attractmode/bezel-analyzer/pkg/types"
)

// ErrNoGames is returned when the input game list is empty.
var ErrNoGames = errors.New("pipeline: game list is empty")

// Stats counts per-stage outcomes for the end-of-run report.
type Stats struct {
	Total       int
	WithArtwork int
	Extracted   int
	Propagated  int
	Failures    map[layout.FailureKind]int
}

// WithoutBezel is the number of games that had artwork but produced no
// usable bezel record of their own.
func (s Stats) WithoutBezel() int {
	n := 0
	for kind, count := range s.Failures {
		if kind != layout.ExcludedGame && kind != layout.NoArtwork {
			n += count
		}
	}
	return n
}

// Records is the number of records produced, own extractions plus clones.
func (s Stats) Records() int {
	return s.Extracted + s.Propagated
}

// Pipeline processes games strictly one at a time in input order. Per-run
// state (the record list, the without-bezel list) is append-only and only
// touched between games, so no locking is involved.
type Pipeline struct {
	extractor    *layout.Extractor
	index        artwork.Index
	excluded     map[string]struct{}
	materializer *materialize.Materializer
	logger       *zap.Logger
}

// New assembles a Pipeline. excludedGames holds romnames to skip entirely.
func New(extractor *layout.Extractor, index artwork.Index, excludedGames []string,
	materializer *materialize.Materializer, logger *zap.Logger) *Pipeline {

	excluded := make(map[string]struct{}, len(excludedGames))
	for _, name := range excludedGames {
		excluded[name] = struct{}{}
	}

	return &Pipeline{
		extractor:    extractor,
		index:        index,
		excluded:     excluded,
		materializer: materializer,
		logger:       logger,
	}
}

// Run analyzes every game and returns the final record list, including
// records propagated from parents to clones.
func (p *Pipeline) Run(games []types.Game) ([]types.BezelRecord, Stats, error) {
	if len(games) == 0 {
		return nil, Stats{}, ErrNoGames
	}

	stats := Stats{
		Total:    len(games),
		Failures: make(map[layout.FailureKind]int),
	}

	var records []types.BezelRecord
	var withoutBezel []types.Game

	for _, game := range games {
		p.logger.Debug("analyzing bezel", zap.String("game", game.Name))

		_, isExcluded := p.excluded[game.Name]
		dir, hasArtwork := p.index.Dir(game.Name)
		if hasArtwork {
			stats.WithArtwork++
		}

		var doc string
		if hasArtwork && !isExcluded {
			text, err := artwork.ReadLayout(dir)
			if err != nil {
				// No readable layout means no bezel declaration to find;
				// the extractor reports it as such.
				p.logger.Debug("layout unreadable", zap.String("game", game.Name), zap.Error(err))
			} else {
				doc = text
			}
		}

		res := p.extractor.Extract(doc, isExcluded, hasArtwork)
		if !res.OK {
			stats.Failures[res.Failure]++
			withoutBezel = append(withoutBezel, game)
			p.logger.Debug("no bezel",
				zap.String("game", game.Name),
				zap.String("reason", res.Failure.String()))
			continue
		}

		rescaler := p.materializer.Materialize(game.Name, filepath.Join(dir, res.Filename))

		rec := types.BezelRecord{
			Name:     game.Name,
			Filename: res.Filename,
			Screen:   res.Screen,
			Bezel:    res.Bezel,
			Total:    res.Total,
		}
		records = append(records, rescaler.ApplyAll(rec))
		stats.Extracted++

		p.logger.Debug("bezel data saved",
			zap.String("game", game.Name),
			zap.String("file", res.Filename),
			zap.String("view", res.ViewName))
	}

	propagated := Propagate(records, withoutBezel)
	stats.Propagated = len(propagated) - len(records)
	return propagated, stats, nil
}
