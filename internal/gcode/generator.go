// Package gcode turns a crease pattern into a scoring program for a
// CNC creasing wheel or drag knife. Valley folds are scored on the face of
// the sheet; mountain folds are scored on the reverse after the operator
// flips the sheet about its vertical axis.
package gcode

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/BoxPleat/internal/model"
)

// Generator produces GCode from a synthesized crease pattern.
type Generator struct {
	Settings model.Settings
	profile  model.ScoringProfile
}

func New(settings model.Settings) *Generator {
	return &Generator{
		Settings: settings,
		profile:  model.GetScoringProfile(settings.ScoringProfile),
	}
}

// pass is one side of the sheet: the folds scored on it and their depth.
type pass struct {
	name  string
	depth float64
	segs  []model.LineSegment
}

// Generate produces the complete scoring program for r.
func (g *Generator) Generate(r model.Result) string {
	var b strings.Builder

	g.writeHeader(&b, r)

	w, _ := r.PaperSize()
	min, _ := r.Paper.BoundingBox()
	passes := []pass{
		{name: "Valley folds (face up)", depth: g.Settings.ValleyDepth, segs: r.Crease.Valley},
		{name: "Mountain folds (reverse side)", depth: g.Settings.MountainDepth, segs: mirror(r.Crease.Mountain, min.X, w)},
	}

	for i, p := range passes {
		if len(p.segs) == 0 {
			continue
		}
		if i > 0 && len(passes[0].segs) > 0 {
			b.WriteString(g.comment("Flip the sheet about its vertical axis"))
			b.WriteString("M0\n")
		}
		g.writePass(&b, p)
	}

	g.writeFooter(&b)
	return b.String()
}

func (g *Generator) writeHeader(b *strings.Builder, r model.Result) {
	p := g.profile
	w, h := r.PaperSize()

	b.WriteString(g.comment(fmt.Sprintf("BoxPleat scoring program %s", r.ID)))
	b.WriteString(g.comment(fmt.Sprintf("Paper: %.1f x %.1f mm", w, h)))
	b.WriteString(g.comment(fmt.Sprintf("Valley: %d at %.2fmm, Mountain: %d at %.2fmm",
		len(r.Crease.Valley), g.Settings.ValleyDepth, len(r.Crease.Mountain), g.Settings.MountainDepth)))
	b.WriteString(g.comment(fmt.Sprintf("Feed: %.0f mm/min, Plunge: %.0f mm/min",
		g.Settings.FeedRate, g.Settings.PlungeRate)))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}

	g.toolUp(b)
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(0), g.format(0)))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	b.WriteString("\n")
	b.WriteString(g.comment("=== Job complete ==="))
	for _, code := range g.profile.EndCode {
		code = strings.ReplaceAll(code, "[SafeZ]", g.format(g.Settings.SafeZ))
		b.WriteString(code + "\n")
	}
}

func (g *Generator) writePass(b *strings.Builder, ps pass) {
	ordered := orderSegments(ps.segs)
	b.WriteString(g.comment(fmt.Sprintf("--- %s: %d runs ---", ps.name, len(ordered))))

	for _, s := range ordered {
		b.WriteString(fmt.Sprintf("%s X%s Y%s\n", g.profile.RapidMove,
			g.format(s.Start.X), g.format(s.Start.Y)))
		g.toolDown(b, ps.depth)
		b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", g.profile.FeedMove,
			g.format(s.End.X), g.format(s.End.Y), g.format(g.Settings.FeedRate)))
		g.toolUp(b)
	}
	b.WriteString("\n")
}

// toolDown engages the scoring tool, by command when the profile has one
// and by plunging to -depth otherwise.
func (g *Generator) toolDown(b *strings.Builder, depth float64) {
	if g.profile.ToolDown != "" {
		b.WriteString(g.profile.ToolDown + "\n")
		return
	}
	b.WriteString(fmt.Sprintf("%s Z%s F%s\n", g.profile.FeedMove,
		g.format(-depth), g.format(g.Settings.PlungeRate)))
}

func (g *Generator) toolUp(b *strings.Builder) {
	if g.profile.ToolUp != "" {
		b.WriteString(g.profile.ToolUp + "\n")
		return
	}
	b.WriteString(fmt.Sprintf("%s Z%s\n", g.profile.RapidMove, g.format(g.Settings.SafeZ)))
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	format := fmt.Sprintf("%%.%df", g.profile.DecimalPlaces)
	return fmt.Sprintf(format, v)
}

// mirror reflects segments about the vertical centre line of a sheet that
// starts at x0 and is w wide.
func mirror(segs []model.LineSegment, x0, w float64) []model.LineSegment {
	out := make([]model.LineSegment, len(segs))
	for i, s := range segs {
		out[i] = model.LineSegment{
			Start: model.Point{X: 2*x0 + w - s.Start.X, Y: s.Start.Y},
			End:   model.Point{X: 2*x0 + w - s.End.X, Y: s.End.Y},
		}
	}
	return out
}

// orderSegments chains segments greedily from the origin, always scoring
// the nearest unscored run next and reversing it when its far end is closer.
func orderSegments(segs []model.LineSegment) []model.LineSegment {
	out := make([]model.LineSegment, 0, len(segs))
	used := make([]bool, len(segs))
	cur := model.Point{}

	for range segs {
		best, bestDist, reverse := -1, math.Inf(1), false
		for i, s := range segs {
			if used[i] {
				continue
			}
			if d := dist(cur, s.Start); d < bestDist {
				best, bestDist, reverse = i, d, false
			}
			if d := dist(cur, s.End); d < bestDist {
				best, bestDist, reverse = i, d, true
			}
		}
		used[best] = true
		s := segs[best]
		if reverse {
			s.Start, s.End = s.End, s.Start
		}
		out = append(out, s)
		cur = s.End
	}
	return out
}

func dist(a, b model.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
