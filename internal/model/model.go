package model

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Point is a 2D coordinate in footprint units (usually mm).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Footprint is a closed rectilinear polygon as a sequence of points.
// The footprint is implicitly closed: the last point connects back to the first.
type Footprint []Point

// BoundingBox returns the min and max corners of the footprint.
func (f Footprint) BoundingBox() (min, max Point) {
	if len(f) == 0 {
		return Point{}, Point{}
	}
	min = f[0]
	max = f[0]
	for _, p := range f[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (f Footprint) Translate(dx, dy float64) Footprint {
	result := make(Footprint, len(f))
	for i, p := range f {
		result[i] = Point{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Area returns the signed shoelace area; positive for counter-clockwise order.
func (f Footprint) Area() float64 {
	var sum float64
	for i := range f {
		a, b := f[i], f[(i+1)%len(f)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Axis names one of the two grid axes.
type Axis int

const (
	AxisX Axis = iota // lines of constant x (vertical)
	AxisY             // lines of constant y (horizontal)
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// GridPoint is a vertex in grid units (coordinate divided by the pitch).
type GridPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p GridPoint) Add(q GridPoint) GridPoint { return GridPoint{p.X + q.X, p.Y + q.Y} }
func (p GridPoint) Sub(q GridPoint) GridPoint { return GridPoint{p.X - q.X, p.Y - q.Y} }
func (p GridPoint) Scale(k int) GridPoint { return GridPoint{p.X * k, p.Y * k} }
func (p GridPoint) Dot(q GridPoint) int { return p.X*q.X + p.Y*q.Y }
func (p GridPoint) Cross(q GridPoint) int { return p.X*q.Y - p.Y*q.X }
func (p GridPoint) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }
func (p GridPoint) ToPoint(pitch float64) Point { return Point{float64(p.X) * pitch, float64(p.Y) * pitch} }

// Polyline is an ordered open chain of grid points.
type Polyline []GridPoint

// Len returns the summed edge length in grid units.
func (pl Polyline) Len() int {
	total := 0
	for i := 1; i < len(pl); i++ {
		d := pl[i].Sub(pl[i-1])
		total += abs(d.X) + abs(d.Y)
	}
	return total
}

func (pl Polyline) First() GridPoint { return pl[0] }
func (pl Polyline) Last() GridPoint { return pl[len(pl)-1] }

func (pl Polyline) String() string {
	s := ""
	for i, p := range pl {
		if i > 0 {
			s += " "
		}
		s += p.String()
	}
	return "[" + s + "]"
}

// Shift is a unit growth direction in grid units: exactly one component is ±1.
type Shift struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

func (s Shift) Vec() GridPoint { return GridPoint{s.DX, s.DY} }

// Rotated returns the shift turned a quarter turn counter-clockwise.
func (s Shift) Rotated() Shift { return Shift{-s.DY, s.DX} }

// ThreePart is the left/center/right split of one polyline by one inscribed rectangle.
type ThreePart struct {
	Shift  Shift    `json:"shift"`
	Source Polyline `json:"source"`
	Left   Polyline `json:"left"`
	Center Polyline `json:"center"`
	Right  Polyline `json:"right"`
	Depth  int      `json:"depth"`
}

// OrthogonalLine is an infinite grid line: x = Coord for AxisX, y = Coord for AxisY.
type OrthogonalLine struct {
	Axis  Axis `json:"axis"`
	Coord int  `json:"coord"`
}

func (l OrthogonalLine) String() string {
	return fmt.Sprintf("%s=%d", l.Axis, l.Coord)
}

// GridSegment is an axis-aligned segment in grid units.
type GridSegment struct {
	Start GridPoint `json:"start"`
	End   GridPoint `json:"end"`
}

// Canonical orders the endpoints so Start is the smaller one.
func (s GridSegment) Canonical() GridSegment {
	if s.End.X < s.Start.X || (s.End.X == s.Start.X && s.End.Y < s.Start.Y) {
		return GridSegment{Start: s.End, End: s.Start}
	}
	return s
}

// Vertical reports whether the segment runs along y.
func (s GridSegment) Vertical() bool { return s.Start.X == s.End.X }

// Line returns the grid line carrying the segment.
func (s GridSegment) Line() OrthogonalLine {
	if s.Vertical() {
		return OrthogonalLine{Axis: AxisX, Coord: s.Start.X}
	}
	return OrthogonalLine{Axis: AxisY, Coord: s.Start.Y}
}

// Len returns the segment length in grid units.
func (s GridSegment) Len() int {
	d := s.End.Sub(s.Start)
	return abs(d.X) + abs(d.Y)
}

func (s GridSegment) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// Side is one of the four directional budgets.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	default:
		return "bottom"
	}
}

// Budgets holds the four directional spacing budgets in grid units.
type Budgets struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

func (b Budgets) Get(s Side) int {
	switch s {
	case SideLeft:
		return b.Left
	case SideRight:
		return b.Right
	case SideTop:
		return b.Top
	default:
		return b.Bottom
	}
}

func (b *Budgets) Set(s Side, v int) {
	switch s {
	case SideLeft:
		b.Left = v
	case SideRight:
		b.Right = v
	case SideTop:
		b.Top = v
	default:
		b.Bottom = v
	}
}

func (b Budgets) Plus(o Budgets) Budgets {
	return Budgets{b.Left + o.Left, b.Right + o.Right, b.Top + o.Top, b.Bottom + o.Bottom}
}

// Max returns the per-direction maximum of two budget sets.
func (b Budgets) Max(o Budgets) Budgets {
	return Budgets{max(b.Left, o.Left), max(b.Right, o.Right), max(b.Top, o.Top), max(b.Bottom, o.Bottom)}
}

// Horizontal is the envelope over bottom and top.
func (b Budgets) Horizontal() int { return max(b.Top, b.Bottom) }

// Vertical is the envelope over left and right.
func (b Budgets) Vertical() int { return max(b.Left, b.Right) }

// DividingDemand is the spacing one polygon edge asks for.
type DividingDemand struct {
	Segment    GridSegment `json:"segment"`
	Budgets    Budgets     `json:"budgets"`
	Horizontal int         `json:"horizontal"`
	Vertical   int         `json:"vertical"`
	Origin     Polyline    `json:"origin"`
	// Tagged are the part endpoints that produced the demand.
	Tagged []GridPoint `json:"tagged"`
}

// ResolvedAllocation is the globally consistent spacing of one segment on one line.
type ResolvedAllocation struct {
	Line       OrthogonalLine `json:"line"`
	Segment    GridSegment    `json:"segment"`
	Budgets    Budgets        `json:"budgets"`
	Horizontal int            `json:"horizontal"`
	Vertical   int            `json:"vertical"`
	Collision  bool           `json:"collision"`
}

// Total returns the spacing the allocation inserts across its line.
func (a ResolvedAllocation) Total() int {
	if a.Line.Axis == AxisX {
		return a.Budgets.Left + a.Budgets.Right
	}
	return a.Budgets.Top + a.Budgets.Bottom
}

// LineSegment is an axis-aligned segment in footprint units.
type LineSegment struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

func (s LineSegment) Length() float64 {
	return math.Hypot(s.End.X-s.Start.X, s.End.Y-s.Start.Y)
}

// CreasePattern is the mountain/valley fold layout.
type CreasePattern struct {
	Mountain []LineSegment `json:"mountainfold"`
	Valley   []LineSegment `json:"valleyfold"`
}

// Result is the complete output of one synthesis run.
type Result struct {
	ID          string               `json:"id"`
	Pitch       float64              `json:"pitch"`
	Paper       Footprint            `json:"paper"`
	Crease      CreasePattern        `json:"crease"`
	Parts       []Polyline           `json:"concave_parts"`
	ThreeParts  []ThreePart          `json:"three_parts"`
	Demands     []DividingDemand     `json:"demands"`
	Allocations []ResolvedAllocation `json:"allocations"`
}

// NewResult creates an empty result. Results carry no id until they are
// attached to a project, so identical runs compare equal.
func NewResult(pitch float64) Result {
	return Result{Pitch: pitch}
}

// PaperSize returns the width and height of the stretched sheet.
func (r Result) PaperSize() (w, h float64) {
	min, max := r.Paper.BoundingBox()
	return max.X - min.X, max.Y - min.Y
}

// FoldCount returns the number of emitted fold runs.
func (r Result) FoldCount() int {
	return len(r.Crease.Mountain) + len(r.Crease.Valley)
}

// Collisions returns the number of allocations flagged as colliding.
func (r Result) Collisions() int {
	n := 0
	for _, a := range r.Allocations {
		if a.Collision {
			n++
		}
	}
	return n
}

// Project ties everything together for save/load.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Footprint Footprint `json:"footprint"`
	Settings  Settings  `json:"settings"`
	Result    *Result   `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		ID:        newID(),
		Name:      "Untitled",
		Footprint: Footprint{},
		Settings:  DefaultSettings(),
	}
}

// SetResult stores r as the project's latest result, giving it an id
// unless it already has one.
func (p *Project) SetResult(r Result) {
	if r.ID == "" {
		r.ID = newID()
	}
	p.Result = &r
}

func newID() string { return uuid.New().String()[:8] }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
