// BoxPleat - Box-Pleating Crease Pattern Synthesizer
//
// Reads a rectilinear footprint on a square grid and computes the
// stretched paper outline and mountain/valley fold lines that fold into
// it. Results can be written as SVG, PNG, PDF, DXF, XLSX or a scoring
// GCode program.
//
// Build:
//   go build -o boxpleat ./cmd/boxpleat
//
// Examples:
//   boxpleat -points "0,0 40,0 40,20 20,20 20,40 0,40" -svg l.svg
//   boxpleat -in footprint.dxf -pitch 10 -pdf sheet.pdf -gcode score.nc
//   boxpleat -template Plus -compare

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/piwi3910/BoxPleat/internal/engine"
	"github.com/piwi3910/BoxPleat/internal/export"
	"github.com/piwi3910/BoxPleat/internal/gcode"
	"github.com/piwi3910/BoxPleat/internal/importer"
	"github.com/piwi3910/BoxPleat/internal/model"
	"github.com/piwi3910/BoxPleat/internal/project"
	"github.com/piwi3910/BoxPleat/internal/sketch"
)

// errUsage marks command-line mistakes, reported with exit status 2.
var errUsage = errors.New("usage")

type options struct {
	points    string
	in        string
	index     int
	template  string
	name      string
	config    string
	profiles  string
	templates string

	pitch         float64
	epsilon       float64
	maxIterations int
	profile       string
	snap          bool

	validate bool
	compare  bool
	asJSON   bool
	verbose  bool

	scale    float64
	svg      string
	png      string
	pdf      string
	dxf      string
	xlsx     string
	gcode    string
	save     string
	listTmpl bool

	stock  string
	copies int
	price  float64
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, set, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	engine.SetLogger(logger)

	if err := execute(opts, set, stdout, logger); err != nil {
		fmt.Fprintf(stderr, "boxpleat: %v\n", err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, map[string]bool, error) {
	var o options
	defaults := model.DefaultSettings()

	fs := flag.NewFlagSet("boxpleat", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.points, "points", "", `inline footprint, e.g. "0,0 40,0 40,20 0,20"`)
	fs.StringVar(&o.in, "in", "", "read the footprint from a .csv, .xlsx, .dxf or "+project.FileExtension+" file")
	fs.IntVar(&o.index, "index", 0, "footprint to use when the input file holds several")
	fs.StringVar(&o.template, "template", "", "use a stored or built-in footprint template")
	fs.StringVar(&o.name, "name", "", "project name")
	fs.StringVar(&o.config, "config", project.DefaultConfigPath(), "application config file")
	fs.StringVar(&o.profiles, "profiles", project.DefaultProfilesPath(), "custom scoring profiles file")
	fs.StringVar(&o.templates, "templates", project.DefaultTemplatePath(), "footprint templates file")
	fs.BoolVar(&o.listTmpl, "list-templates", false, "list available templates and exit")

	fs.Float64Var(&o.pitch, "pitch", defaults.Pitch, "grid pitch in footprint units")
	fs.Float64Var(&o.epsilon, "epsilon", defaults.Epsilon, "on-grid tolerance")
	fs.IntVar(&o.maxIterations, "max-iterations", defaults.MaxIterations, "iteration ceiling for every growth loop")
	fs.StringVar(&o.profile, "profile", defaults.ScoringProfile,
		"scoring profile ("+strings.Join(model.GetScoringProfileNames(), ", ")+")")
	fs.BoolVar(&o.snap, "snap", false, "snap input points to the grid before validation")

	fs.BoolVar(&o.validate, "validate", false, "only check the footprint")
	fs.BoolVar(&o.compare, "compare", false, "compare the current settings against what-if alternatives")
	fs.BoolVar(&o.asJSON, "json", false, "print the full result as JSON")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")

	fs.Float64Var(&o.scale, "scale", 4, "SVG/PNG units per footprint unit")
	fs.StringVar(&o.svg, "svg", "", "write the pattern as SVG")
	fs.StringVar(&o.png, "png", "", "write the pattern as PNG")
	fs.StringVar(&o.pdf, "pdf", "", "write a printable PDF sheet")
	fs.StringVar(&o.dxf, "dxf", "", "write the pattern as DXF")
	fs.StringVar(&o.xlsx, "xlsx", "", "write an XLSX fold report")
	fs.StringVar(&o.gcode, "gcode", "", "write a scoring GCode program")
	fs.StringVar(&o.save, "save", "", "save the project")

	fs.StringVar(&o.stock, "stock", "", `estimate stock paper use for a preset such as "A4" or sheets of WxH, e.g. "210x297"`)
	fs.IntVar(&o.copies, "copies", 1, "patterns to cut for the stock estimate")
	fs.Float64Var(&o.price, "price", 0, "price per stock sheet")

	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return o, nil, errUsage
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return o, set, nil
}

func execute(o options, set map[string]bool, stdout io.Writer, logger *slog.Logger) error {
	cfg, err := project.LoadAppConfig(o.config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	custom, err := project.LoadCustomProfiles(o.profiles)
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}
	model.CustomProfiles = custom

	templates, err := project.LoadTemplatesWithBuiltins(o.templates)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	if o.listTmpl {
		for _, t := range templates.Templates {
			fmt.Fprintf(stdout, "%-12s %s\n", t.Name, t.Description)
		}
		return nil
	}

	proj, err := loadFootprint(o, templates, logger)
	if err != nil {
		return err
	}
	if strings.ToLower(filepath.Ext(o.in)) != project.FileExtension {
		// Templates are drawn on their own pitch.
		pitch := proj.Settings.Pitch
		cfg.ApplyToSettings(&proj.Settings)
		if o.template != "" {
			proj.Settings.Pitch = pitch
		}
	}
	applyFlags(o, set, &proj.Settings)
	if err := proj.Settings.Validate(); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if o.snap || cfg.SnapInput {
		proj.Footprint = sketch.Snap(proj.Footprint, proj.Settings.Pitch)
	}
	if err := sketch.ValidateFootprint(proj.Footprint); err != nil {
		return err
	}
	if o.validate {
		fmt.Fprintf(stdout, "%s: %d vertices, closed and simple\n", proj.Name, len(proj.Footprint))
		return nil
	}

	if o.compare {
		return printComparison(stdout, proj)
	}

	result, err := engine.New(proj.Settings).Compute(proj.Footprint)
	if err != nil {
		return err
	}
	proj.SetResult(result)

	if o.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(proj.Result); err != nil {
			return err
		}
	} else {
		printSummary(stdout, proj)
	}

	if o.stock != "" {
		stock, err := resolveStock(o.stock)
		if err != nil {
			return err
		}
		if set["price"] {
			stock.PricePerSheet = o.price
		}
		printEstimate(stdout, stock.Estimate(result, proj.Footprint, o.copies))
	}

	if err := writeOutputs(o, proj); err != nil {
		return err
	}

	if o.save != "" {
		if err := project.Save(o.save, proj); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		if n := project.PruneRecentProjects(&cfg); n > 0 {
			logger.Debug("dropped missing recent projects", "count", n)
		}
		cfg.AddRecentProject(o.save)
		if err := project.SaveAppConfig(o.config, cfg); err != nil {
			logger.Warn("could not update recent projects", "err", err)
		}
	}
	return nil
}

// loadFootprint resolves exactly one footprint source into a new project.
func loadFootprint(o options, templates model.TemplateStore, logger *slog.Logger) (model.Project, error) {
	sources := 0
	for _, s := range []string{o.points, o.in, o.template} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return model.Project{}, fmt.Errorf("%w: give exactly one of -points, -in or -template", errUsage)
	}

	proj := model.NewProject()
	switch {
	case o.points != "":
		fp, err := importer.ParsePoints(o.points)
		if err != nil {
			return proj, fmt.Errorf("%w: -points: %v", errUsage, err)
		}
		proj.Footprint = fp

	case o.template != "":
		t := templates.FindByName(o.template)
		if t == nil {
			return proj, fmt.Errorf("%w: unknown template %q", errUsage, o.template)
		}
		proj = t.ToProject(t.Name)

	case strings.ToLower(filepath.Ext(o.in)) == project.FileExtension:
		loaded, err := project.Load(o.in)
		if err != nil {
			return proj, fmt.Errorf("load project: %w", err)
		}
		proj = loaded

	default:
		var res importer.ImportResult
		switch strings.ToLower(filepath.Ext(o.in)) {
		case ".csv", ".txt":
			res = importer.ImportCSV(o.in)
		case ".xlsx", ".xls":
			res = importer.ImportExcel(o.in)
		case ".dxf":
			res = importer.ImportDXF(o.in)
		default:
			return proj, fmt.Errorf("%w: unsupported input %s", errUsage, o.in)
		}
		for _, w := range res.Warnings {
			logger.Warn(w, "file", o.in)
		}
		if len(res.Errors) > 0 {
			return proj, fmt.Errorf("import %s: %s", o.in, strings.Join(res.Errors, "; "))
		}
		if o.index < 0 || o.index >= len(res.Footprints) {
			return proj, fmt.Errorf("%w: -index %d out of range, %s holds %d footprints",
				errUsage, o.index, o.in, len(res.Footprints))
		}
		fp := res.Footprints[o.index]
		proj.Name = fp.Name
		proj.Footprint = fp.Points
	}

	if o.name != "" {
		proj.Name = o.name
	}
	return proj, nil
}

// applyFlags overrides settings with the flags given on the command line.
func applyFlags(o options, set map[string]bool, s *model.Settings) {
	if set["pitch"] {
		s.Pitch = o.pitch
	}
	if set["epsilon"] {
		s.Epsilon = o.epsilon
	}
	if set["max-iterations"] {
		s.MaxIterations = o.maxIterations
	}
	if set["profile"] {
		s.ScoringProfile = o.profile
	}
}

func writeOutputs(o options, p model.Project) error {
	r := *p.Result
	outputs := []struct {
		path  string
		write func(string) error
	}{
		{o.svg, func(path string) error { return export.ExportSVG(path, r, o.scale) }},
		{o.png, func(path string) error { return export.ExportPNG(path, r, o.scale) }},
		{o.pdf, func(path string) error { return export.ExportPDF(path, p) }},
		{o.dxf, func(path string) error { return export.ExportDXF(path, r) }},
		{o.xlsx, func(path string) error { return export.ExportXLSX(path, p) }},
		{o.gcode, func(path string) error {
			code := gcode.New(p.Settings).Generate(r)
			return os.WriteFile(path, []byte(code), 0644)
		}},
	}
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err := out.write(out.path); err != nil {
			return fmt.Errorf("write %s: %w", out.path, err)
		}
	}
	return nil
}

func printSummary(w io.Writer, p model.Project) {
	r := *p.Result
	pw, ph := r.PaperSize()
	fmt.Fprintf(w, "%s [%s]\n", p.Name, r.ID)
	fmt.Fprintf(w, "  paper:      %.2f x %.2f\n", pw, ph)
	fmt.Fprintf(w, "  mountain:   %d\n", len(r.Crease.Mountain))
	fmt.Fprintf(w, "  valley:     %d\n", len(r.Crease.Valley))
	fmt.Fprintf(w, "  parts:      %d\n", len(r.Parts))
	fmt.Fprintf(w, "  collisions: %d\n", r.Collisions())
}

// resolveStock accepts a preset name from the default inventory or WxH.
func resolveStock(v string) (model.StockPreset, error) {
	inv := model.DefaultInventory()
	if sp := inv.FindStockByName(v); sp != nil {
		return *sp, nil
	}
	var w, h float64
	if _, err := fmt.Sscanf(v, "%gx%g", &w, &h); err != nil || w <= 0 || h <= 0 {
		return model.StockPreset{}, fmt.Errorf("%w: -stock %q: want WxH or one of %s",
			errUsage, v, strings.Join(inv.StockNames(), ", "))
	}
	return model.NewStockPreset(v, w, h, ""), nil
}

func printEstimate(w io.Writer, e model.PaperEstimate) {
	fmt.Fprintf(w, "stock %gx%g\n", e.StockWidth, e.StockHeight)
	fmt.Fprintf(w, "  stretch:    %.2f\n", e.StretchRatio)
	if !e.Fits {
		fmt.Fprintln(w, "  does not fit")
		return
	}
	turned := ""
	if e.Rotated {
		turned = " (rotated)"
	}
	fmt.Fprintf(w, "  per sheet:  %d%s\n", e.PatternsPerSheet, turned)
	fmt.Fprintf(w, "  sheets:     %d for %d copies\n", e.SheetsNeeded, e.Copies)
	fmt.Fprintf(w, "  waste:      %.1f%%\n", e.WastePercent)
	if e.PricePerSheet > 0 {
		fmt.Fprintf(w, "  cost:       %.2f\n", e.EstimatedCost)
	}
}

func printComparison(w io.Writer, p model.Project) error {
	results := engine.CompareScenarios(engine.BuildDefaultScenarios(p.Settings), p.Footprint)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tPITCH\tPAPER\tFOLDS\tCOLLISIONS\tERROR")
	for _, cr := range results {
		if cr.Err != nil {
			fmt.Fprintf(tw, "%s\t%g\t-\t-\t-\t%v\n", cr.Scenario.Name, cr.Scenario.Settings.Pitch, cr.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%g\t%.0fx%.0f\t%d\t%d\t\n", cr.Scenario.Name, cr.Scenario.Settings.Pitch,
			cr.PaperWidth, cr.PaperHeight, cr.FoldCount, cr.Collisions)
	}
	return tw.Flush()
}
