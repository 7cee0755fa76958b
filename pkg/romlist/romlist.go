// Package romlist reads Attract-Mode romlist files.
//
// A romlist is a semicolon-delimited table with a header line:
//
//	#Name;Title;Emulator;CloneOf;Year;Manufacturer;Category;Players;...
//
// Only the fields the bezel pipeline needs are mapped onto types.Game; the
// remaining columns are ignored but tolerated.
package romlist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/attractmode/bezel-analyzer/pkg/types"
)

// Column positions in an Attract-Mode romlist row.
const (
	colName     = 0
	colTitle    = 1
	colEmulator = 2
	colCloneOf  = 3
	colYear     = 4
	colAltTitle = 14
)

// ErrEmpty is returned when the romlist contains a header but no games.
var ErrEmpty = errors.New("romlist: no games")

// Parse reads games from romlist text. The first line is the header and is
// returned verbatim so callers can rewrite the file later.
func Parse(r *bufio.Scanner) ([]types.Game, string, error) {
	if !r.Scan() {
		if err := r.Err(); err != nil {
			return nil, "", fmt.Errorf("romlist: read header: %w", err)
		}
		return nil, "", ErrEmpty
	}
	header := r.Text()

	var games []types.Game
	for r.Scan() {
		line := r.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		games = append(games, parseRow(line))
	}
	if err := r.Err(); err != nil {
		return nil, "", fmt.Errorf("romlist: read rows: %w", err)
	}
	if len(games) == 0 {
		return nil, header, ErrEmpty
	}
	return games, header, nil
}

// Load reads games from a romlist file on disk.
func Load(path string) ([]types.Game, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("romlist: open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	// Romlist rows can outgrow the default scanner buffer on large lists.
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return Parse(sc)
}

func parseRow(line string) types.Game {
	fields := strings.Split(strings.TrimRight(line, "\n"), ";")

	field := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	return types.Game{
		Name:     field(colName),
		Title:    field(colTitle),
		Emulator: field(colEmulator),
		CloneOf:  field(colCloneOf),
		Year:     field(colYear),
		AltTitle: field(colAltTitle),
	}
}
