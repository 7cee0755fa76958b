// Package store persists the final bezel records as a flat key-value file
// (AMbezels.ini), the format Attract-Mode layouts read through the
// file-format module.
package store

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/ini.v1"

	"github.com/attractmode/bezel-analyzer/pkg/types"
)

// Write serializes the records to path, one [romname] section per record in
// list order. The file is truncated and fully rewritten; nothing from a
// previous run survives. Coordinates are rounded to the nearest integer
// here and nowhere earlier.
func Write(path string, records []types.BezelRecord) error {
	// Attract-Mode's reader wants bare key=value lines.
	ini.PrettyFormat = false

	f := ini.Empty()
	for _, rec := range records {
		sec, err := f.NewSection(rec.Name)
		if err != nil {
			return fmt.Errorf("store: section %s: %w", rec.Name, err)
		}
		if _, err := sec.NewKey("filename", rec.Filename); err != nil {
			return fmt.Errorf("store: record %s: %w", rec.Name, err)
		}
		writeBox(sec, "screen", rec.Screen)
		writeBox(sec, "bezel", rec.Bezel)
		writeBox(sec, "bezeltotal", rec.Total)
	}

	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("store: save %s: %w", path, err)
	}
	return nil
}

func writeBox(sec *ini.Section, prefix string, b types.Box) {
	sec.NewKey(prefix+"_xtopleft", roundInt(b.X))
	sec.NewKey(prefix+"_ytopleft", roundInt(b.Y))
	sec.NewKey(prefix+"_width", roundInt(b.Width))
	sec.NewKey(prefix+"_height", roundInt(b.Height))
}

func roundInt(v float64) string {
	return strconv.FormatInt(int64(math.Round(v)), 10)
}
