package pipeline

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/attractmode/bezel-analyzer/pkg/artwork"
	"github.com/attractmode/bezel-analyzer/pkg/imagetool"
	"github.com/attractmode/bezel-analyzer/pkg/layout"
	"github.com/attractmode/bezel-analyzer/pkg/materialize"
	"github.com/attractmode/bezel-analyzer/pkg/types"
)

const bezelLayout = `MAME bezel artwork - Artwork type: Bezel

<mamelayout version="2">
	<element name="bezel_outer">
		<image file="cab1.png" />
	</element>
	<view name="JoystickUp">
		<screen index="0">
			<bounds x="10" y="20" width="300" height="200" />
		</screen>
		<bezel element="bezel_outer">
			<bounds x="0" y="0" width="320" height="240" />
		</bezel>
	</view>
</mamelayout>
`

// addArtwork creates an artwork directory for romname with a layout file
// and an optional real PNG asset.
func addArtwork(t *testing.T, root, romname, layText string, pngSize int) {
	t.Helper()
	dir := filepath.Join(root, romname)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "default.lay"), []byte(layText), 0644); err != nil {
		t.Fatal(err)
	}
	if pngSize > 0 {
		img := image.NewRGBA(image.Rect(0, 0, pngSize, pngSize*3/4))
		for y := 0; y < img.Bounds().Dy(); y++ {
			for x := 0; x < pngSize; x++ {
				img.Set(x, y, color.RGBA{10, 20, 30, 255})
			}
		}
		f, err := os.Create(filepath.Join(dir, "cab1.png"))
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
	}
}

func newTestPipeline(t *testing.T, root string, excluded []string, rescale bool, maxBound int) *Pipeline {
	t.Helper()

	index, err := artwork.BuildIndex([]string{root})
	if err != nil {
		t.Fatal(err)
	}

	var tool imagetool.Tool
	if rescale {
		tool = imagetool.Native{}
	}
	mat := materialize.New(rescale, tool, t.TempDir(), maxBound, zap.NewNop())

	extractor := layout.NewExtractor(layout.NewCatalog(), layout.NewGenericFilter(true))
	return New(extractor, index, excluded, mat, zap.NewNop())
}

func TestRunExtractsRecord(t *testing.T) {
	root := t.TempDir()
	addArtwork(t, root, "pacman", bezelLayout, 0)

	p := newTestPipeline(t, root, nil, false, 0)
	records, stats, err := p.Run([]types.Game{{Name: "pacman"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.Name != "pacman" || rec.Filename != "cab1.png" {
		t.Errorf("record = %+v", rec)
	}
	if rec.Screen != (types.Box{X: 10, Y: 20, Width: 300, Height: 200}) {
		t.Errorf("screen = %+v", rec.Screen)
	}
	if rec.Total != rec.Bezel {
		t.Errorf("total = %+v, want bezel box", rec.Total)
	}

	if stats.WithArtwork != 1 || stats.Extracted != 1 || stats.Records() != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRunRescalesCoordinates(t *testing.T) {
	root := t.TempDir()
	// 640x480 native asset, bound 320 -> scale 0.5.
	addArtwork(t, root, "pacman", bezelLayout, 640)

	p := newTestPipeline(t, root, nil, true, 320)
	records, _, err := p.Run([]types.Game{{Name: "pacman"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.Screen != (types.Box{X: 5, Y: 10, Width: 150, Height: 100}) {
		t.Errorf("screen = %+v, want half-scale", rec.Screen)
	}
	if rec.Bezel != (types.Box{X: 0, Y: 0, Width: 160, Height: 120}) {
		t.Errorf("bezel = %+v, want half-scale", rec.Bezel)
	}
	if rec.Total != rec.Bezel {
		t.Errorf("total = %+v", rec.Total)
	}
}

func TestRunFailureAccounting(t *testing.T) {
	root := t.TempDir()
	addArtwork(t, root, "pacman", bezelLayout, 0)
	addArtwork(t, root, "nobezel", "<mamelayout></mamelayout>", 0)

	games := []types.Game{
		{Name: "pacman"},
		{Name: "nobezel"},  // artwork without bezel declaration
		{Name: "noart"},    // no artwork directory
		{Name: "excluded"}, // on the exclusion list
	}

	p := newTestPipeline(t, root, []string{"excluded"}, false, 0)
	records, stats, err := p.Run(games)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1", len(records))
	}

	if stats.Total != 4 || stats.WithArtwork != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Failures[layout.NoBezelTag] != 1 {
		t.Errorf("NoBezelTag count = %d", stats.Failures[layout.NoBezelTag])
	}
	if stats.Failures[layout.NoArtwork] != 1 {
		t.Errorf("NoArtwork count = %d", stats.Failures[layout.NoArtwork])
	}
	if stats.Failures[layout.ExcludedGame] != 1 {
		t.Errorf("ExcludedGame count = %d", stats.Failures[layout.ExcludedGame])
	}
	if stats.WithoutBezel() != 1 {
		t.Errorf("WithoutBezel = %d, want 1 (only the no-bezel-tag game)", stats.WithoutBezel())
	}
}

func TestRunGenericAssetExcluded(t *testing.T) {
	generic := `- Artwork type: Bezel
<element name="bezel_main">
	<image file="generic_bezel_x.png" />
</element>
<view name="Upright">
	<screen index="0"><bounds x="1" y="1" width="2" height="2" /></screen>
	<bezel element="bezel_main"><bounds x="0" y="0" width="3" height="3" /></bezel>
</view>`

	root := t.TempDir()
	addArtwork(t, root, "genericgame", generic, 0)

	p := newTestPipeline(t, root, nil, false, 0)
	records, stats, err := p.Run([]types.Game{{Name: "genericgame"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
	if stats.Failures[layout.GenericAsset] != 1 {
		t.Errorf("GenericAsset count = %d", stats.Failures[layout.GenericAsset])
	}
}

func TestRunClonePropagation(t *testing.T) {
	root := t.TempDir()
	addArtwork(t, root, "pacman", bezelLayout, 0)

	games := []types.Game{
		{Name: "pacman"},
		{Name: "pacmanc", CloneOf: "pacman"}, // no artwork of its own
	}

	p := newTestPipeline(t, root, nil, false, 0)
	records, stats, err := p.Run(games)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	clone := records[1]
	if clone.Name != "pacmanc" {
		t.Errorf("clone name = %q", clone.Name)
	}
	if clone.Filename != records[0].Filename || clone.Screen != records[0].Screen {
		t.Errorf("clone differs from parent: %+v vs %+v", clone, records[0])
	}
	if stats.Propagated != 1 || stats.Records() != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRunEmptyGameList(t *testing.T) {
	root := t.TempDir()
	addArtwork(t, root, "pacman", bezelLayout, 0)

	p := newTestPipeline(t, root, nil, false, 0)
	if _, _, err := p.Run(nil); !errors.Is(err, ErrNoGames) {
		t.Errorf("err = %v, want ErrNoGames", err)
	}
}
