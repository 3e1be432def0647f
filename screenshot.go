package corkboard

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot asks for a PNG of the board as it is drawn next, without the
// debug overlay. Files land in Options.ScreenshotDir.
func (b *Board) Screenshot(label string) {
	b.screenshotQueue = append(b.screenshotQueue, label)
}

// flushScreenshots writes one file per queued label from the composed canvas.
func (b *Board) flushScreenshots(canvas *ebiten.Image) {
	if len(b.screenshotQueue) == 0 {
		return
	}
	labels := b.screenshotQueue
	b.screenshotQueue = b.screenshotQueue[:0]

	if err := os.MkdirAll(b.opts.ScreenshotDir, 0o755); err != nil {
		b.log.Warn("screenshot dir", "dir", b.opts.ScreenshotDir, "err", err)
		return
	}
	img := readCanvas(canvas)
	now := time.Now()
	for _, label := range labels {
		b.shots++
		path := filepath.Join(b.opts.ScreenshotDir, shotName(now, b.shots, label))
		if err := encodePNG(path, img); err != nil {
			b.log.Warn("screenshot", "label", label, "err", err)
			continue
		}
		b.log.Info("screenshot saved", "path", path, "items", len(b.items))
	}
}

// readCanvas copies the canvas pixels. ReadPixels yields premultiplied
// RGBA, which is what image.RGBA holds.
func readCanvas(canvas *ebiten.Image) *image.RGBA {
	r := canvas.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	canvas.ReadPixels(img.Pix)
	return img
}

func encodePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// shotName builds "<stamp>-<seq>-<slug>.png". The sequence keeps captures
// taken within the same second apart.
func shotName(at time.Time, seq int, label string) string {
	name := fmt.Sprintf("%s-%03d", at.Format("20060102-150405"), seq)
	if s := slug(label); s != "" {
		name += "-" + s
	}
	return name + ".png"
}

// slug lowercases label and joins its letter and digit runs with '-'.
func slug(label string) string {
	fields := strings.FieldsFunc(strings.ToLower(label), func(r rune) bool {
		return r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	return strings.Join(fields, "-")
}
