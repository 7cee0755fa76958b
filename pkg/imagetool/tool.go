// Package imagetool wraps the resize-and-measure operations the bezel
// pipeline needs. Two implementations exist: a built-in one backed by the
// imaging library, and a wrapper around the macOS sips binary (what the
// original workflow used). The caller probes once at startup; a run without
// a usable tool falls back to linking originals instead of resizing.
package imagetool

import (
	"fmt"
	"image"
	"os"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Tool resizes an image file in place and reports pixel dimensions.
type Tool interface {
	// Name identifies the implementation in logs.
	Name() string
	// Measure returns the pixel dimensions of the image at path.
	Measure(path string) (width, height int, err error)
	// Resize shrinks the image at path, in place, so that its larger
	// dimension does not exceed maxBound. Smaller images are left alone.
	Resize(path string, maxBound int) error
}

// Detect resolves the configured tool preference to a usable Tool. It
// returns nil (and no error) when the preferred tool is not available on
// the host; the caller is expected to downgrade to link mode.
func Detect(preference string) (Tool, error) {
	switch preference {
	case "native", "":
		return Native{}, nil
	case "sips":
		if path, err := exec.LookPath("sips"); err == nil {
			return Sips{path: path}, nil
		}
		return nil, nil
	case "auto":
		if path, err := exec.LookPath("sips"); err == nil {
			return Sips{path: path}, nil
		}
		return Native{}, nil
	default:
		return nil, fmt.Errorf("imagetool: unknown tool %q", preference)
	}
}

// Native implements Tool with the imaging library. It is always available.
type Native struct{}

// Name identifies the implementation in logs.
func (Native) Name() string { return "native" }

// Measure decodes only the image header.
func (Native) Measure(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("imagetool: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("imagetool: decode %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// Resize shrinks the image in place, bounding the larger dimension.
func (Native) Resize(path string, maxBound int) error {
	img, err := loadImage(path)
	if err != nil {
		return err
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxBound && h <= maxBound {
		return nil
	}

	if w >= h {
		img = imaging.Resize(img, maxBound, 0, imaging.Lanczos)
	} else {
		img = imaging.Resize(img, 0, maxBound, imaging.Lanczos)
	}

	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("imagetool: save %s: %w", path, err)
	}
	return nil
}

// loadImage opens an image with a WebP fallback for files the registered
// decoders reject.
func loadImage(path string) (image.Image, error) {
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imagetool: open %s: %w", path, err)
	}
	defer f.Close()

	if img, err := webp.Decode(f); err == nil {
		return img, nil
	}
	if _, err := f.Seek(0, 0); err == nil {
		if img, _, err := image.Decode(f); err == nil {
			return img, nil
		}
	}
	return nil, fmt.Errorf("imagetool: unknown format for %s", path)
}

var (
	pixelWidthPattern  = regexp.MustCompile(`pixelWidth:\s*(\d+)`)
	pixelHeightPattern = regexp.MustCompile(`pixelHeight:\s*(\d+)`)
)

// Sips implements Tool by shelling out to the macOS sips utility.
type Sips struct {
	path string
}

// Name identifies the implementation in logs.
func (Sips) Name() string { return "sips" }

// Measure queries pixelWidth and pixelHeight from sips.
func (s Sips) Measure(path string) (int, int, error) {
	out, err := exec.Command(s.path, "-g", "pixelWidth", "-g", "pixelHeight", path).Output()
	if err != nil {
		return 0, 0, fmt.Errorf("imagetool: sips query %s: %w", path, err)
	}

	width, err := parseSipsValue(pixelWidthPattern, string(out), "pixelWidth")
	if err != nil {
		return 0, 0, err
	}
	height, err := parseSipsValue(pixelHeightPattern, string(out), "pixelHeight")
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

// Resize runs sips -Z, which bounds the larger dimension.
func (s Sips) Resize(path string, maxBound int) error {
	if err := exec.Command(s.path, "-Z", strconv.Itoa(maxBound), path).Run(); err != nil {
		return fmt.Errorf("imagetool: sips resize %s: %w", path, err)
	}
	return nil
}

func parseSipsValue(re *regexp.Regexp, out, name string) (int, error) {
	m := re.FindStringSubmatch(out)
	if m == nil {
		return 0, fmt.Errorf("imagetool: sips output missing %s", name)
	}
	return strconv.Atoi(m[1])
}
