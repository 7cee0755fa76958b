package pipeline

import "github.com/attractmode/bezel-analyzer/pkg/types"

// Propagate copies bezel records from parents to clones that produced none
// of their own. Only records that existed before propagation are eligible
// sources: a clone whose immediate parent also failed stays unresolved,
// even when that parent itself inherited a record during this pass.
func Propagate(records []types.BezelRecord, withoutBezel []types.Game) []types.BezelRecord {
	byName := make(map[string]types.BezelRecord, len(records))
	for _, rec := range records {
		byName[rec.Name] = rec
	}

	out := records
	for _, game := range withoutBezel {
		if !game.IsClone() {
			continue
		}
		parent, ok := byName[game.CloneOf]
		if !ok {
			continue
		}
		out = append(out, parent.WithName(game.Name))
	}
	return out
}
