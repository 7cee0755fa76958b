// Package artwork locates unzipped MAME artwork on disk: which directory
// holds a game's artwork, and which layout file inside it to read.
package artwork

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/attractmode/bezel-analyzer/internal/utils"
)

// ErrNoRoots is returned when none of the configured artwork roots exists.
var ErrNoRoots = errors.New("artwork: no usable artwork root directories")

// ErrNoLayout is returned when a game's artwork directory holds no .lay file.
var ErrNoLayout = errors.New("artwork: no layout file")

// Index maps romname to the directory holding that game's unpacked artwork.
type Index map[string]string

// BuildIndex scans each root for immediate subdirectories and records them
// under their directory name (the romname). When a romname appears under
// more than one root, the LAST match in scan order wins; this is a
// deliberate, documented policy (the upstream tool behaved the same way by
// iteration-order accident).
//
// Roots that do not exist are skipped; if none exists, ErrNoRoots is
// returned.
func BuildIndex(roots []string) (Index, error) {
	index := make(Index)
	usable := 0

	for _, root := range roots {
		if !utils.DirExists(root) {
			continue
		}
		names, err := utils.ListSubdirNames(root)
		if err != nil {
			return nil, fmt.Errorf("artwork: scan %s: %w", root, err)
		}
		usable++
		for _, name := range names {
			index[name] = filepath.Join(root, name)
		}
	}

	if usable == 0 {
		return nil, ErrNoRoots
	}
	return index, nil
}

// Dir returns the artwork directory for a romname, if any.
func (idx Index) Dir(romname string) (string, bool) {
	dir, ok := idx[romname]
	return dir, ok
}

// FindLayoutFile returns the path of the .lay file inside dir. A directory
// is expected to contain exactly one; when several exist, the LAST in
// directory-listing order wins (same documented policy as BuildIndex).
func FindLayoutFile(dir string) (string, error) {
	names, err := utils.ListFilesWithSuffix(dir, ".lay")
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoLayout, dir)
	}
	return filepath.Join(dir, names[len(names)-1]), nil
}

// ReadLayout locates and reads the layout document for one artwork
// directory.
func ReadLayout(dir string) (string, error) {
	path, err := FindLayoutFile(dir)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("artwork: read %s: %w", path, err)
	}
	return string(data), nil
}
