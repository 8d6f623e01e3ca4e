// Command retouchdemo demonstrates the retouch rendering core by replaying
// a scripted stroke sequence over a photo and writing the result.
package main

import (
	"flag"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/retouch"
	_ "github.com/gogpu/retouch/gpu"
)

func main() {
	var (
		input   = flag.String("input", "", "source image (PNG or JPEG); synthetic portrait when empty")
		output  = flag.String("output", "retouched.png", "output file")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		retouch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	src, err := loadSource(*input)
	if err != nil {
		log.Fatalf("Failed to load source: %v", err)
	}

	session := retouch.NewSession()
	defer session.Close()

	if err := session.Initialize(src); err != nil {
		log.Fatalf("Failed to initialize session: %v", err)
	}

	viewport := retouch.NewViewport(float64(src.Width()), float64(src.Height()))
	editor := retouch.NewEditor(session, viewport)

	// Scripted gestures: smooth a diagonal band, dab two blemishes, whiten
	// the lower-center region, then auto enhance.
	editor.SetTool(retouch.ToolSmooth)
	editor.SetBrushSize(80)
	editor.SetBrushStrength(0.7)
	drag(editor, src, 0.25, 0.30, 0.75, 0.55)

	editor.SetTool(retouch.ToolBlemish)
	editor.SetBrushSize(30)
	editor.SetBrushStrength(1.0)
	tap(editor, src, 0.40, 0.45)
	tap(editor, src, 0.62, 0.38)

	editor.SetTool(retouch.ToolTeethWhitening)
	editor.SetBrushSize(50)
	editor.SetBrushStrength(0.8)
	drag(editor, src, 0.42, 0.70, 0.58, 0.70)

	editor.SetTool(retouch.ToolAuto)
	tap(editor, src, 0.5, 0.5)

	result, err := editor.Confirm()
	if err != nil {
		log.Fatalf("Failed to resolve result: %v", err)
	}

	if err := result.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	stats := session.Stats()
	log.Printf("Saved %s (%dx%d, %d history entries, backend %q)\n",
		*output, result.Width(), result.Height(), stats.HistoryLen, stats.Backend)
}

// tap presses and releases at a normalized position.
func tap(e *retouch.Editor, src *retouch.Pixmap, x, y float64) {
	e.PointerDown(screenPt(src, x, y))
	e.PointerUp()
}

// drag sweeps the pointer between two normalized positions in small steps,
// the way a real gesture stream arrives.
func drag(e *retouch.Editor, src *retouch.Pixmap, x0, y0, x1, y1 float64) {
	const steps = 16
	e.PointerDown(screenPt(src, x0, y0))
	for i := 1; i <= steps; i++ {
		t := float64(i) / steps
		e.PointerMove(screenPt(src, x0+(x1-x0)*t, y0+(y1-y0)*t))
	}
	e.PointerUp()
}

func screenPt(src *retouch.Pixmap, x, y float64) retouch.Point {
	return retouch.Pt(x*float64(src.Width()), y*float64(src.Height()))
}

// loadSource decodes the input image, or synthesizes a soft portrait-like
// test image when no input is given.
func loadSource(path string) (*retouch.Pixmap, error) {
	if path == "" {
		return syntheticPortrait(640, 800), nil
	}

	f, err := os.Open(path) //nolint:gosec // path comes from the CLI flag
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return retouch.FromImage(img), nil
}

// syntheticPortrait builds a skin-toned gradient with a few dark speckles so
// the blemish and smooth passes have something to act on.
func syntheticPortrait(w, h int) *retouch.Pixmap {
	pm := retouch.NewPixmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := float64(y) / float64(h)
			pm.SetPixel(x, y, retouch.RGBA{
				R: 0.86 - 0.10*t,
				G: 0.68 - 0.08*t,
				B: 0.56 - 0.06*t,
				A: 1,
			})
		}
	}
	for i := 0; i < 40; i++ {
		cx := (i*97 + 53) % w
		cy := (i*211 + 89) % h
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				pm.SetPixel(cx+dx, cy+dy, retouch.RGBA{R: 0.45, G: 0.28, B: 0.22, A: 1})
			}
		}
	}
	return pm
}
