// Package materialize produces the per-game bezel asset in the output
// directory: either a resized raster copy or a symbolic link to the
// original, chosen once per run.
package materialize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/attractmode/bezel-analyzer/internal/utils"
	"github.com/attractmode/bezel-analyzer/pkg/geometry"
	"github.com/attractmode/bezel-analyzer/pkg/imagetool"
)

// Mode is the run-wide materialization choice.
type Mode int

const (
	// LinkMode creates symbolic links to the original assets.
	LinkMode Mode = iota
	// ResizeMode copies assets and shrinks them to the configured bound.
	ResizeMode
)

func (m Mode) String() string {
	if m == ResizeMode {
		return "resize"
	}
	return "link"
}

// Materializer writes one output asset per game and reports the coordinate
// rescaling the operation implies.
type Materializer struct {
	mode     Mode
	tool     imagetool.Tool
	outDir   string
	maxBound int
	logger   *zap.Logger
}

// New builds a Materializer. When rescaling is requested but tool is nil
// (the startup probe found no usable resize tool), the whole run downgrades
// to link mode; this is logged once here.
func New(rescale bool, tool imagetool.Tool, outDir string, maxBound int, logger *zap.Logger) *Materializer {
	mode := LinkMode
	if rescale {
		if tool == nil {
			logger.Warn("resize tool unavailable, creating links to original bezels instead")
		} else {
			mode = ResizeMode
		}
	}
	return &Materializer{
		mode:     mode,
		tool:     tool,
		outDir:   outDir,
		maxBound: maxBound,
		logger:   logger,
	}
}

// Mode returns the effective run-wide mode.
func (m *Materializer) Mode() Mode {
	return m.mode
}

// Materialize produces the output asset for one game and returns the
// rescaler to apply to that game's coordinates. Problems with the external
// operation never fail the game: the asset stays as-is and coordinates pass
// through in native space under an identity rescale.
func (m *Materializer) Materialize(romname, srcPath string) geometry.Rescaler {
	dest := filepath.Join(m.outDir, romname+".png")

	if m.mode == LinkMode {
		m.link(romname, srcPath, dest)
		return geometry.Identity()
	}
	return m.resize(romname, srcPath, dest)
}

func (m *Materializer) link(romname, srcPath, dest string) {
	err := os.Symlink(srcPath, dest)
	switch {
	case err == nil:
		m.logger.Debug("created bezel link", zap.String("game", romname), zap.String("target", srcPath))
	case errors.Is(err, fs.ErrExist):
		// Idempotent: a re-run finds the links from the previous one.
		m.logger.Debug("bezel link exists", zap.String("game", romname))
	default:
		m.logger.Warn("failed to create bezel link", zap.String("game", romname), zap.Error(err))
	}
}

func (m *Materializer) resize(romname, srcPath, dest string) geometry.Rescaler {
	if err := utils.CopyFile(srcPath, dest); err != nil {
		m.logger.Warn("failed to copy bezel", zap.String("game", romname), zap.Error(err))
		return geometry.Identity()
	}

	oldW, oldH, err := m.tool.Measure(dest)
	if err != nil {
		m.logger.Warn("dimension query failed, keeping native coordinates",
			zap.String("game", romname), zap.Error(err))
		return geometry.Identity()
	}

	if err := m.tool.Resize(dest, m.maxBound); err != nil {
		m.logger.Warn("resize failed, keeping native coordinates",
			zap.String("game", romname), zap.Error(err))
		return geometry.Identity()
	}

	newW, newH, err := m.tool.Measure(dest)
	if err != nil {
		m.logger.Warn("dimension query failed after resize, keeping native coordinates",
			zap.String("game", romname), zap.Error(err))
		return geometry.Identity()
	}

	m.logger.Debug("created low-resolution bezel",
		zap.String("game", romname),
		zap.String("from", fmt.Sprintf("%dx%d", oldW, oldH)),
		zap.String("to", fmt.Sprintf("%dx%d", newW, newH)))

	return geometry.NewRescaler(float64(oldW), float64(oldH), float64(newW), float64(newH))
}
