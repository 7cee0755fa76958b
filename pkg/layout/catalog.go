// Package layout extracts bezel geometry from MAME .lay documents.
//
// A .lay file describes one or more views, each composed of named elements
// (screen, bezel, ...) with pixel bounding boxes. The vocabulary is loose
// and the files are hand-written, so extraction is deliberately an ordered
// cascade of independent regular expressions tried first-match-wins, not a
// grammar parser. See http://wiki.mamedev.org/index.php/LAY_File_Basics_-_Part_I
package layout

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/attractmode/bezel-analyzer/pkg/types"
)

const num = `(-?\d+(?:\.\d+)?)`

var boundsAttrs = `<\s*bounds\s+x\s*=\s*"` + num + `"\s*y\s*=\s*"` + num +
	`"\s*width\s*=\s*"` + num + `"\s*height\s*=\s*"` + num + `"`

// Artwork-type declaration forms, tried in order. The first is the classic
// comment header; the second captures list-style type fields whose tokens
// are checked for a case-insensitive "bezel".
var (
	bezelCommentPattern  = regexp.MustCompile(`-\s*Artwork\s+type:\s*Bezel`)
	bezelTypeListPattern = regexp.MustCompile(`(?i)artwork\s+type\s*[:=]\s*([^\r\n<]+)`)
)

// viewElement pairs a view-name shape with a bezel-element-name shape. The
// generated regex captures (viewName, elementName) anywhere in the document.
type viewElement struct {
	re *regexp.Regexp
}

func newViewElement(viewShape, elementShape string) viewElement {
	return viewElement{re: regexp.MustCompile(
		`(?is)<\s*view\s+name\s*=\s*"(` + viewShape + `)"\s*>.*?` +
			`<\s*bezel\s+element\s*=\s*"(` + elementShape + `)"`)}
}

// Catalog holds the ordered pattern sets. Patterns within a list are tried
// strictly in order; the first match wins and nothing later is consulted.
type Catalog struct {
	primary   []viewElement
	secondary []viewElement
}

// NewCatalog builds the default catalog. The primary list is biased toward
// upright-facing views and the element names bezel artwork actually uses
// (bezel*, outer*, inner*, sac*); the secondary list catches cocktail
// cabinets, whose artwork is rarely game-specific.
func NewCatalog() *Catalog {
	upView := `[^"]*[Uu]p(?:right)?[^"]*`
	cocktailView := `[^"]*[Cc]ocktail[^"]*`

	return &Catalog{
		primary: []viewElement{
			newViewElement(upView, `bezel\w*`),
			newViewElement(upView, `outer\w*`),
			newViewElement(upView, `inner\w*`),
			newViewElement(upView, `sac\w*`),
		},
		secondary: []viewElement{
			newViewElement(cocktailView, `bezel\w*`),
			newViewElement(cocktailView, `sac\w*`),
		},
	}
}

// DeclaresBezel reports whether the document declares bezel-type artwork.
func (c *Catalog) DeclaresBezel(doc string) bool {
	if bezelCommentPattern.MatchString(doc) {
		return true
	}
	m := bezelTypeListPattern.FindStringSubmatch(doc)
	if m == nil {
		return false
	}
	for _, token := range strings.FieldsFunc(m[1], func(r rune) bool {
		return r == ',' || r == ';' || r == '/'
	}) {
		if strings.EqualFold(strings.TrimSpace(token), "bezel") {
			return true
		}
	}
	return false
}

// ResolveViewElement finds the view/element pair holding the bezel artwork.
// The primary list is exhausted before the secondary one is consulted;
// fromSecondary reports which list produced the match.
func (c *Catalog) ResolveViewElement(doc string) (view, element string, fromSecondary, ok bool) {
	for _, p := range c.primary {
		if m := p.re.FindStringSubmatch(doc); m != nil {
			return m[1], m[2], false, true
		}
	}
	for _, p := range c.secondary {
		if m := p.re.FindStringSubmatch(doc); m != nil {
			return m[1], m[2], true, true
		}
	}
	return "", "", false, false
}

// AssetFilename locates the image file declared for the named element.
func (c *Catalog) AssetFilename(doc, element string) (string, bool) {
	re := regexp.MustCompile(
		`(?is)<\s*element\s+name\s*=\s*"` + regexp.QuoteMeta(element) +
			`"\s*>\s*<\s*image\s+file\s*=\s*"(\w+\.png)"`)
	m := re.FindStringSubmatch(doc)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ScreenBounds extracts the visible screen box declared inside the named
// view's screen sub-block.
func (c *Catalog) ScreenBounds(doc, view string) (types.Box, bool) {
	re := regexp.MustCompile(
		`(?is)<\s*view\s+name\s*=\s*"` + regexp.QuoteMeta(view) + `"\s*>.*?` +
			`<\s*screen\s+index\s*=\s*"\d+"\s*>\s*` + boundsAttrs)
	return matchBounds(re, doc)
}

// BezelBounds extracts the bezel artwork box declared for the resolved
// element inside the named view.
func (c *Catalog) BezelBounds(doc, view, element string) (types.Box, bool) {
	re := regexp.MustCompile(
		`(?is)<\s*view\s+name\s*=\s*"` + regexp.QuoteMeta(view) + `"\s*>.*?` +
			`<\s*bezel\s+element\s*=\s*"` + regexp.QuoteMeta(element) + `"\s*>\s*` + boundsAttrs)
	return matchBounds(re, doc)
}

// TotalBounds extracts a box declared directly under the view open tag,
// outside any sub-element. It marks the total bezel canvas and is optional.
func (c *Catalog) TotalBounds(doc, view string) (types.Box, bool) {
	re := regexp.MustCompile(
		`(?is)<\s*view\s+name\s*=\s*"` + regexp.QuoteMeta(view) + `"\s*>\s*` + boundsAttrs)
	return matchBounds(re, doc)
}

func matchBounds(re *regexp.Regexp, doc string) (types.Box, bool) {
	m := re.FindStringSubmatch(doc)
	if m == nil {
		return types.Box{}, false
	}
	vals := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return types.Box{}, false
		}
		vals[i] = v
	}
	return types.Box{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, true
}
