package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/jbeda/geom"
	"github.com/piwi3910/BoxPleat/internal/model"
	"golang.org/x/image/vector"
)

var (
	paperFill     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	background    = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	outlineColor  = color.RGBA{A: 255}
	mountainColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	valleyColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
)

const (
	pngMargin = 8.0
	pngStroke = 2.0
)

// RenderPNG rasterizes r at scale pixels per footprint unit.
func RenderPNG(r model.Result, scale float64) (*image.RGBA, error) {
	f, err := newFrame(r, scale, pngMargin)
	if err != nil {
		return nil, err
	}
	w, h := int(math.Ceil(f.Width())), int(math.Ceil(f.Height()))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	z := vector.NewRasterizer(w, h)
	paper := make([]geom.Coord, len(r.Paper))
	for i, p := range r.Paper {
		paper[i] = f.at(p)
	}
	fillPolygon(z, paper)
	z.Draw(dst, dst.Bounds(), image.NewUniform(paperFill), image.Point{})

	z.Reset(w, h)
	for i := range paper {
		strokeLine(z, paper[i], paper[(i+1)%len(paper)], 1)
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(outlineColor), image.Point{})

	z.Reset(w, h)
	for _, s := range r.Crease.Mountain {
		strokeLine(z, f.at(s.Start), f.at(s.End), pngStroke)
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(mountainColor), image.Point{})

	z.Reset(w, h)
	for _, s := range r.Crease.Valley {
		for _, d := range dashes(f.at(s.Start), f.at(s.End), 3*pngStroke, 2*pngStroke) {
			strokeLine(z, d[0], d[1], pngStroke)
		}
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(valleyColor), image.Point{})

	return dst, nil
}

func fillPolygon(z *vector.Rasterizer, pts []geom.Coord) {
	if len(pts) < 3 {
		return
	}
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
}

// strokeLine adds a filled quad of the given width around a-b.
func strokeLine(z *vector.Rasterizer, a, b geom.Coord, width float64) {
	d := b.Minus(a)
	if d.Magnitude() == 0 {
		return
	}
	n := geom.Coord{X: -d.Y, Y: d.X}.Unit().Times(width / 2)
	fillPolygon(z, []geom.Coord{a.Plus(n), b.Plus(n), b.Minus(n), a.Minus(n)})
}

// ExportPNG writes r to path as a PNG image.
func ExportPNG(path string, r model.Result, scale float64) error {
	img, err := RenderPNG(r, scale)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return out.Close()
}
