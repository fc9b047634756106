package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jbeda/geom"
	"github.com/piwi3910/BoxPleat/internal/model"
)

// Stroke styles shared by the vector outputs.
const (
	paperStyle    = "fill:none;stroke:#000000;stroke-width:1"
	mountainStyle = "stroke:#d62728;stroke-width:1.5;stroke-linecap:round"
	valleyStyle   = "stroke:#1f77b4;stroke-width:1.5;stroke-dasharray:6,3"
	svgMargin     = 10.0
)

// SVG is a minimal streaming SVG serializer.
type SVG struct {
	writer io.Writer
	err    error
}

func NewSVG(w io.Writer) *SVG {
	return &SVG{writer: w}
}

func (svg *SVG) printf(format string, a ...interface{}) {
	if svg.err != nil {
		return
	}
	_, svg.err = fmt.Fprintf(svg.writer, format, a...)
}

// extraparams turns "k=v" entries into attributes and anything else into a style.
func extraparams(s []string) string {
	var b strings.Builder
	for _, p := range s {
		switch {
		case strings.Index(p, "=") > 0:
			b.WriteString(p + " ")
		case p != "":
			fmt.Fprintf(&b, "style='%s' ", p)
		}
	}
	return b.String()
}

func (svg *SVG) Start(viewBox geom.Rect, s ...string) {
	svg.printf(`<?xml version="1.0"?>
<svg version="1.1"
     width="%f" height="%f"
     viewBox="%f %f %f %f"
     xmlns="http://www.w3.org/2000/svg" %s>
`, viewBox.Width(), viewBox.Height(),
		viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height(), extraparams(s))
}

func (svg *SVG) End() {
	svg.printf("</svg>\n")
}

func (svg *SVG) StartGroup(id string, s ...string) {
	svg.printf("<g id='%s' %s>\n", id, extraparams(s))
}

func (svg *SVG) EndGroup() {
	svg.printf("</g>\n")
}

func (svg *SVG) Line(p1, p2 geom.Coord, s ...string) {
	svg.printf("<line x1='%f' y1='%f' x2='%f' y2='%f' %s/>\n", p1.X, p1.Y, p2.X, p2.Y, extraparams(s))
}

func (svg *SVG) Polygon(pts []geom.Coord, s ...string) {
	coords := make([]string, len(pts))
	for i, p := range pts {
		coords[i] = fmt.Sprintf("%f,%f", p.X, p.Y)
	}
	svg.printf("<polygon points='%s' %s/>\n", strings.Join(coords, " "), extraparams(s))
}

// WriteSVG renders the paper outline and fold lines of r. scale is the
// number of SVG user units per footprint unit.
func WriteSVG(w io.Writer, r model.Result, scale float64) error {
	f, err := newFrame(r, scale, svgMargin)
	if err != nil {
		return err
	}

	svg := NewSVG(w)
	svg.Start(geom.Rect{Max: geom.Coord{X: f.Width(), Y: f.Height()}})

	paper := make([]geom.Coord, len(r.Paper))
	for i, p := range r.Paper {
		paper[i] = f.at(p)
	}
	svg.StartGroup("paper")
	svg.Polygon(paper, paperStyle)
	svg.EndGroup()

	svg.StartGroup("mountain")
	for _, s := range r.Crease.Mountain {
		svg.Line(f.at(s.Start), f.at(s.End), mountainStyle)
	}
	svg.EndGroup()

	svg.StartGroup("valley")
	for _, s := range r.Crease.Valley {
		svg.Line(f.at(s.Start), f.at(s.End), valleyStyle)
	}
	svg.EndGroup()

	svg.End()
	return svg.err
}

// ExportSVG writes r to path as an SVG document.
func ExportSVG(path string, r model.Result, scale float64) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create svg: %w", err)
	}
	bw := bufio.NewWriter(out)
	if err := WriteSVG(bw, r, scale); err != nil {
		out.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
