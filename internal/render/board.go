// Package render draws snake boards as images for screenshots, replays and
// the HTTP board endpoint.
package render

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Options controls how a board is drawn.
type Options struct {
	PixelsPerCell int
	Width         int // Downscale target, 0 keeps full size
	Theme         config.ThemeConfig
}

// OptionsFrom builds render options from the loaded configuration.
func OptionsFrom(cfg config.Config) Options {
	return Options{
		PixelsPerCell: cfg.Render.PixelsPerCell,
		Width:         cfg.Render.Width,
		Theme:         cfg.Theme,
	}
}

// maxBoardPixels caps the canvas area. Larger fields get fewer pixels per cell.
const maxBoardPixels = 4096 * 4096

// pixelsPerCell returns the largest cell size up to want that keeps a
// cols by rows canvas within maxBoardPixels, and never less than 1.
func pixelsPerCell(want, cols, rows int) int {
	ppc := want
	if ppc <= 0 {
		ppc = 16
	}
	for ppc > 1 && cols*ppc*rows*ppc > maxBoardPixels {
		ppc--
	}
	return ppc
}

// Board draws a snapshot of a game played on bounds. The canvas covers the
// inclusive range [Min, Max] on both axes; a head that has left the field
// is clipped.
func Board(s snake.Snapshot, b snake.Bounds, opts Options) image.Image {
	cols := b.Columns() + 1
	rows := b.Rows() + 1
	ppc := pixelsPerCell(opts.PixelsPerCell, cols, rows)
	width, height := cols*ppc, rows*ppc

	dc := gg.NewContext(width, height)
	dc.SetHexColor(opts.Theme.Background)
	dc.Clear()
	drawGrid(dc, width, height, ppc, opts.Theme.Border)

	// cellOrigin maps a cell to its top-left pixel.
	cellOrigin := func(c snake.Cell) (float64, float64) {
		return float64((c.X - b.MinX) / b.CellSize * ppc), float64((c.Y - b.MinY) / b.CellSize * ppc)
	}
	half := float64(ppc) / 2

	x, y := cellOrigin(s.Food)
	dc.SetHexColor(opts.Theme.Food)
	dc.DrawCircle(x+half, y+half, half-1)
	dc.Fill()

	// A short snake is drawn all body, like the terminal renderer.
	for i := len(s.Body) - 1; i >= 0; i-- {
		x, y := cellOrigin(s.Body[i])
		if i == 0 && len(s.Body) > 2 {
			dc.SetHexColor(opts.Theme.Head)
			dc.DrawCircle(x+half, y+half, half-1)
		} else {
			dc.SetHexColor(opts.Theme.Body)
			dc.DrawRectangle(x+1, y+1, float64(ppc)-2, float64(ppc)-2)
		}
		dc.Fill()
	}

	if s.GameOver {
		dc.SetHexColor(opts.Theme.Dialog)
		dc.SetLineWidth(3)
		dc.DrawRectangle(1.5, 1.5, float64(width)-3, float64(height)-3)
		dc.Stroke()
	}

	return Thumbnail(dc.Image(), opts.Width)
}

func drawGrid(dc *gg.Context, width, height, ppc int, hex string) {
	dc.SetHexColor(hex)
	dc.SetLineWidth(1)
	for x := 0; x <= width; x += ppc {
		dc.DrawLine(float64(x), 0, float64(x), float64(height))
		dc.Stroke()
	}
	for y := 0; y <= height; y += ppc {
		dc.DrawLine(0, float64(y), float64(width), float64(y))
		dc.Stroke()
	}
}

// Thumbnail downscales img to width pixels, keeping the aspect ratio.
// Images already at most width wide are returned unchanged.
func Thumbnail(img image.Image, width int) image.Image {
	if width <= 0 || width >= img.Bounds().Dx() {
		return img
	}
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("render: encode: %w", err)
	}
	return nil
}

// Save writes img to path. The format follows the file extension.
func Save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("render: cannot create directory: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}
