package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/PolyPack/internal/engine"
	"github.com/piwi3910/PolyPack/internal/export"
	"github.com/piwi3910/PolyPack/internal/importer"
	"github.com/piwi3910/PolyPack/internal/model"
	"github.com/piwi3910/PolyPack/internal/project"
)

const recentInputsLimit = 10

// Report formats accepted by --format.
const (
	formatCount   = "count"
	formatSummary = "summary"
	formatJSON    = "json"
)

type inputOptions struct {
	queries  string
	dxf      string
	cellSize float64
}

func (o *inputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.queries, "queries", "", "read queries from a CSV or XLSX table instead of the puzzle file")
	cmd.Flags().StringVar(&o.dxf, "shapes-dxf", "", "read shapes from closed outlines in a DXF drawing")
	cmd.Flags().Float64Var(&o.cellSize, "cell-size", importer.DefaultCellSize, "drawing length of one grid cell for --shapes-dxf")
}

type solveOptions struct {
	input   inputOptions
	format  string
	color   bool
	xlsx    string
	pdf     string
	cards   string
	archive string
}

func (a *app) solveCommand() *cobra.Command {
	opts := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve [puzzle]",
		Short: "Count the feasible queries of a puzzle",
		Long: `Solve reads a puzzle (shape blocks followed by "WxH: counts" query lines),
decides every query, and prints the number of feasible ones. Use "-" to read
the puzzle from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSolve(cmd, args, opts)
		},
	}
	addSolverFlags(cmd.Flags())
	opts.input.register(cmd)
	cmd.Flags().StringVar(&opts.format, "format", formatCount, "report format: count, summary or json")
	cmd.Flags().BoolVar(&opts.color, "color", false, "color verdicts in the summary report")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "also write an XLSX report to this path")
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "also write a PDF report to this path")
	cmd.Flags().StringVar(&opts.cards, "cards", "", "also write QR-coded shape cards to this PDF path")
	cmd.Flags().StringVar(&opts.archive, "archive", "", "save a JSON run archive to this path")
	return cmd
}

func (a *app) runSolve(cmd *cobra.Command, args []string, opts *solveOptions) error {
	switch opts.format {
	case formatCount, formatSummary, formatJSON:
	default:
		return fmt.Errorf("unknown format %q: want count, summary or json", opts.format)
	}

	settings, err := a.resolveSettings()
	if err != nil {
		return err
	}
	p, source, err := a.loadPuzzle(cmd, args, opts.input)
	if err != nil {
		return err
	}

	log.Debug().Str("input", source).Str("settings", describe(settings)).Msg("solving")
	br, err := engine.New(settings).Run(cmd.Context(), p)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case formatSummary:
		var style export.VerdictStyle
		if opts.color {
			style = styleVerdict
		}
		err = export.WriteSummary(out, p, br, style)
	case formatJSON:
		err = export.WriteJSON(out, p, br)
	default:
		err = export.WriteCount(out, br)
	}
	if err != nil {
		return err
	}

	return writeArtifacts(opts, source, p, br)
}

func writeArtifacts(opts *solveOptions, source string, p model.Puzzle, br model.BatchResult) error {
	if opts.xlsx != "" {
		if err := export.ExportXLSX(opts.xlsx, p, br); err != nil {
			return err
		}
		log.Info().Str("path", opts.xlsx).Msg("wrote XLSX report")
	}
	if opts.pdf != "" {
		if err := export.ExportPDF(opts.pdf, p, br); err != nil {
			return err
		}
		log.Info().Str("path", opts.pdf).Msg("wrote PDF report")
	}
	if opts.cards != "" {
		if err := export.ExportShapeCards(opts.cards, p); err != nil {
			return err
		}
		log.Info().Str("path", opts.cards).Msg("wrote shape cards")
	}
	if opts.archive != "" {
		if err := project.ExportRun(opts.archive, project.NewRunArchive(source, p, br)); err != nil {
			return err
		}
		log.Info().Str("path", opts.archive).Msg("wrote run archive")
	}
	return nil
}

// loadPuzzle reads the puzzle argument and applies the alternative shape
// and query sources. It returns the puzzle and a description of its source.
func (a *app) loadPuzzle(cmd *cobra.Command, args []string, opts inputOptions) (model.Puzzle, string, error) {
	p := model.NewPuzzle()
	var source string

	switch {
	case len(args) == 1 && args[0] == "-":
		parsed, err := importer.ParsePuzzle(cmd.InOrStdin())
		if err != nil {
			return model.Puzzle{}, "", err
		}
		p, source = parsed, "stdin"
		p.Name = "stdin"
	case len(args) == 1:
		parsed, err := importer.ParsePuzzleFile(args[0])
		if err != nil {
			return model.Puzzle{}, "", err
		}
		p, source = parsed, args[0]
		a.remember(args[0])
	case opts.dxf == "" || opts.queries == "":
		return model.Puzzle{}, "", fmt.Errorf("a puzzle file is required unless both --shapes-dxf and --queries are given")
	}

	if opts.dxf != "" {
		res := importer.ImportShapesDXF(opts.dxf, opts.cellSize)
		logWarnings(opts.dxf, res.Warnings)
		if err := res.Err(); err != nil {
			return model.Puzzle{}, "", err
		}
		p.Shapes = res.Shapes
		source = joinSource(source, opts.dxf)
		if len(args) == 0 {
			p.Name = baseName(opts.dxf)
		}
	}

	if opts.queries != "" {
		res, err := importQueries(opts.queries)
		if err != nil {
			return model.Puzzle{}, "", err
		}
		p.Queries = res.Queries
		source = joinSource(source, opts.queries)
	}

	if err := importer.ValidateQueries(p.Shapes, p.Queries); err != nil {
		return model.Puzzle{}, "", err
	}
	log.Debug().Int("shapes", len(p.Shapes)).Int("queries", len(p.Queries)).Msg("puzzle loaded")
	return p, source, nil
}

func importQueries(path string) (importer.ImportResult, error) {
	var res importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		res = importer.ImportExcel(path)
	default:
		res = importer.ImportCSV(path)
	}
	logWarnings(path, res.Warnings)
	return res, res.Err()
}

func logWarnings(path string, warnings []string) {
	for _, w := range warnings {
		log.Debug().Str("path", path).Msg(w)
	}
}

func joinSource(a, b string) string {
	if a == "" {
		return b
	}
	return a + "+" + b
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// remember records path in the recent inputs of the config file.
func (a *app) remember(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	a.config.AddRecentInput(abs, recentInputsLimit)
	if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
		log.Debug().Err(err).Str("path", a.configPath).Msg("could not save recent inputs")
	}
}

// fprintf writes formatted output, dropping write errors like fmt.Printf.
func fprintf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
