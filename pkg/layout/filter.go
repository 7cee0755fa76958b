package layout

import "strings"

// Known generic bezel artwork: manufacturer-standard surrounds reused across
// many unrelated games. Exact basenames first, then prefixes.
var genericFilenames = map[string]struct{}{
	"taito_f3_bezel.png":                {},
	"bally_sente_bezel_sac1.png":        {},
	"bally_sente_bezel_sac1_deluxe.png": {},
	"bm_1_vert.png":                     {},
	"bm_2_vert.png":                     {},
	"bm_1_horiz.png":                    {},
	"bm_2_horiz.png":                    {},
}

var genericPrefixes = []string{
	"rockola_bezel_",
	"deco_bezel",
	"generic_bezel",
}

// Element names starting with this prefix denote Bally Sente SAC cabinet
// artwork, which is never game-specific.
const genericElementPrefix = "sac"

// GenericFilter decides whether an asset is known shared artwork that
// should be excluded from per-game output. When not enabled, everything
// passes.
type GenericFilter struct {
	enabled bool
}

// NewGenericFilter creates a filter; enabled=false makes it pass everything.
func NewGenericFilter(enabled bool) *GenericFilter {
	return &GenericFilter{enabled: enabled}
}

// Enabled reports whether filtering is active.
func (f *GenericFilter) Enabled() bool {
	return f.enabled
}

// IsGenericFilename reports whether the asset filename is known generic
// artwork, by exact basename or prefix.
func (f *GenericFilter) IsGenericFilename(filename string) bool {
	if !f.enabled {
		return false
	}
	if _, ok := genericFilenames[filename]; ok {
		return true
	}
	for _, prefix := range genericPrefixes {
		if strings.HasPrefix(filename, prefix) {
			return true
		}
	}
	return false
}

// IsGenericElement reports whether a view/element pair resolved through the
// secondary (cocktail) pattern list names non-differentiated cabinet
// artwork. Primary-list matches are never rejected here.
func (f *GenericFilter) IsGenericElement(element string, fromSecondary bool) bool {
	if !f.enabled || !fromSecondary {
		return false
	}
	return strings.HasPrefix(element, genericElementPrefix)
}
