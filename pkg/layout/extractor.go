package layout

import "github.com/attractmode/bezel-analyzer/pkg/types"

// FailureKind tags the stage at which extraction stopped for one game.
type FailureKind int

const (
	FailureNone FailureKind = iota
	ExcludedGame
	NoArtwork
	NoBezelTag
	NoViewElement
	NoAssetFile
	GenericAsset
	NoScreenBounds
	NoBezelBounds
)

var failureNames = map[FailureKind]string{
	FailureNone:    "none",
	ExcludedGame:   "excluded game",
	NoArtwork:      "no artwork",
	NoBezelTag:     "no bezel declaration",
	NoViewElement:  "no view/element match",
	NoAssetFile:    "no asset file",
	GenericAsset:   "generic asset",
	NoScreenBounds: "no screen bounds",
	NoBezelBounds:  "no bezel bounds",
}

func (k FailureKind) String() string {
	if name, ok := failureNames[k]; ok {
		return name
	}
	return "unknown"
}

// FailureKinds lists all terminal kinds in stage order, for diagnostics.
func FailureKinds() []FailureKind {
	return []FailureKind{
		ExcludedGame, NoArtwork, NoBezelTag, NoViewElement,
		NoAssetFile, GenericAsset, NoScreenBounds, NoBezelBounds,
	}
}

// Result is the structured outcome of extracting one game's layout. When OK
// is false, Failure identifies the terminating stage and the remaining
// fields are zero.
type Result struct {
	OK      bool
	Failure FailureKind

	ViewName    string
	ElementName string
	Filename    string

	Screen types.Box
	Bezel  types.Box
	Total  types.Box

	// FromSecondary records that the view/element pair came from the
	// cocktail fallback list rather than the primary one.
	FromSecondary bool
}

func fail(kind FailureKind) Result {
	return Result{Failure: kind}
}

// Extractor runs the staged pattern cascade over layout documents.
type Extractor struct {
	catalog *Catalog
	filter  *GenericFilter
}

// NewExtractor creates an Extractor. filter may be a disabled filter, in
// which case the generic-asset stage passes everything through.
func NewExtractor(catalog *Catalog, filter *GenericFilter) *Extractor {
	if catalog == nil {
		catalog = NewCatalog()
	}
	if filter == nil {
		filter = NewGenericFilter(false)
	}
	return &Extractor{catalog: catalog, filter: filter}
}

// Extract processes one game's layout text through the ordered stages.
// excluded and hasArtwork cover the two membership stages that precede
// reading the document; doc may be empty when hasArtwork is false.
//
// Order is load-bearing: a later stage's pattern never influences the
// outcome of a document that already failed an earlier stage.
func (e *Extractor) Extract(doc string, excluded, hasArtwork bool) Result {
	if excluded {
		return fail(ExcludedGame)
	}
	if !hasArtwork {
		return fail(NoArtwork)
	}
	if !e.catalog.DeclaresBezel(doc) {
		return fail(NoBezelTag)
	}

	view, element, fromSecondary, ok := e.catalog.ResolveViewElement(doc)
	if !ok {
		return fail(NoViewElement)
	}

	filename, ok := e.catalog.AssetFilename(doc, element)
	if !ok {
		return fail(NoAssetFile)
	}

	if e.filter.IsGenericElement(element, fromSecondary) || e.filter.IsGenericFilename(filename) {
		return fail(GenericAsset)
	}

	screen, ok := e.catalog.ScreenBounds(doc, view)
	if !ok {
		return fail(NoScreenBounds)
	}

	bezel, ok := e.catalog.BezelBounds(doc, view, element)
	if !ok {
		return fail(NoBezelBounds)
	}

	// Total canvas bounds are best-effort; absent means the bezel box is
	// the whole canvas.
	total, ok := e.catalog.TotalBounds(doc, view)
	if !ok {
		total = bezel
	}

	return Result{
		OK:            true,
		ViewName:      view,
		ElementName:   element,
		Filename:      filename,
		Screen:        screen,
		Bezel:         bezel,
		Total:         total,
		FromSecondary: fromSecondary,
	}
}
