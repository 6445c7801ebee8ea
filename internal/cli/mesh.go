package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/infra/csvcoords"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/infra/geojsonexport"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/infra/geoscript"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/infra/logger"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/numeric"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/usecase"
)

// meshFlags are per-invocation overrides of the mesh config.
type meshFlags struct {
	points         int
	reynolds       float64
	yplus          float64
	mach           float64
	length         float64
	ratio          float64
	thickness      float64
	radius         float64
	farfieldPoints int
	meshSize       float64
	sizeFactor     float64
}

func (f *meshFlags) bind(fs *pflag.FlagSet) {
	fs.IntVar(&f.points, "points", 0, "Resampled points per surface")
	fs.Float64Var(&f.reynolds, "reynolds", 0, "Freestream Reynolds number")
	fs.Float64Var(&f.yplus, "yplus", 0, "Target first-cell y+")
	fs.Float64Var(&f.mach, "mach", 0, "Freestream Mach number")
	fs.Float64Var(&f.length, "length", 0, "Reference length")
	fs.Float64Var(&f.ratio, "ratio", 0, "Boundary-layer growth ratio")
	fs.Float64Var(&f.thickness, "thickness", 0, "Boundary-layer total thickness")
	fs.Float64Var(&f.radius, "radius", 0, "Farfield radius")
	fs.IntVar(&f.farfieldPoints, "farfield-points", 0, "Farfield point count")
	fs.Float64Var(&f.meshSize, "mesh-size", 0, "Characteristic length attached to every point")
	fs.Float64Var(&f.sizeFactor, "size-factor", 0, "Mesh.MeshSizeFactor")
}

// apply copies only the flags the user set.
func (f *meshFlags) apply(fs *pflag.FlagSet, cfg *domain.MeshConfig) {
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	set("points", func() { cfg.Points = f.points })
	set("reynolds", func() { cfg.Reynolds = f.reynolds })
	set("yplus", func() { cfg.YPlus = f.yplus })
	set("mach", func() { cfg.Mach = f.mach })
	set("length", func() { cfg.ReferenceLength = f.length })
	set("ratio", func() { cfg.GrowthRate = f.ratio })
	set("thickness", func() { cfg.BLThickness = f.thickness })
	set("radius", func() { cfg.FarfieldRadius = f.radius })
	set("farfield-points", func() { cfg.FarfieldPoints = f.farfieldPoints })
	set("mesh-size", func() { cfg.PointMeshSize = f.meshSize })
	set("size-factor", func() { cfg.MeshSizeFactor = f.sizeFactor })
}

func meshCmd() *cobra.Command {
	var workspace string
	var airfoil string
	var upper string
	var lower string
	var out string
	var geojsonPath string
	var dryRun bool
	var format string
	var overrides meshFlags

	c := &cobra.Command{
		Use:   "mesh",
		Short: "Generate a Gmsh .geo script from upper/lower surface coordinates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			ws, err := loadWorkspaceOrDefaults(workspace)
			if err != nil {
				return err
			}

			req, err := buildMeshRequest(ws, airfoil, upper, lower)
			if err != nil {
				return err
			}
			overrides.apply(cmd.Flags(), &req.Mesh)

			req.DryRun = dryRun
			req.OutputPath = strings.TrimSpace(out)
			if req.OutputPath == "" {
				req.OutputPath = geoscript.ScriptPath(req.UpperPath, req.Mesh.UpperSuffix)
			}
			req.GeoJSONPath = strings.TrimSpace(geojsonPath)

			uc := usecase.NewGenerateMesh(
				csvcoords.NewReader(),
				geoscript.NewWriter(),
				usecase.WithGeometryExporter(geojsonexport.NewExporter()),
				usecase.WithMeshLogger(logger.Component("mesh")),
			)

			sum, err := uc.Execute(req)
			if err != nil {
				return err
			}
			return printMesh(os.Stdout, sum, req, format)
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&airfoil, "airfoil", "a", "", "Airfoil name in the airfoils dir (e.g. naca0012)")
	c.Flags().StringVar(&upper, "upper", "", "Upper surface CSV (x,y)")
	c.Flags().StringVar(&lower, "lower", "", "Lower surface CSV (x,y)")
	c.Flags().StringVarP(&out, "out", "o", "", "Script path (default: upper path with its suffix replaced by .geo)")
	c.Flags().StringVar(&geojsonPath, "geojson", "", "Also write contour and farfield as GeoJSON")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "Build and validate only; write nothing")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	overrides.bind(c.Flags())
	return c
}

func buildMeshRequest(ws *workspaceCtx, airfoil, upper, lower string) (usecase.MeshRequest, error) {
	req := usecase.MeshRequest{
		Mesh:        ws.cfg.Mesh,
		Correlation: ws.cfg.Correlation,
	}

	name := strings.TrimSpace(airfoil)
	switch {
	case name != "" && (upper != "" || lower != ""):
		return req, fmt.Errorf("use either --airfoil or --upper/--lower, not both")
	case name != "":
		if ws.root == "" {
			return req, fmt.Errorf("--airfoil needs a workspace (tip: run `aerogrid init`)")
		}
		ref, err := ws.airfoils.Resolve(ws.root, name)
		if err != nil {
			return req, err
		}
		req.UpperPath, req.LowerPath = ref.Upper, ref.Lower
	case strings.TrimSpace(upper) != "" && strings.TrimSpace(lower) != "":
		req.UpperPath = strings.TrimSpace(upper)
		req.LowerPath = strings.TrimSpace(lower)
	default:
		return req, fmt.Errorf("an airfoil is required (use --airfoil, or both --upper and --lower)")
	}
	return req, nil
}

func printMesh(w io.Writer, sum usecase.MeshSummary, req usecase.MeshRequest, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	case "pretty", "":
		printPrettyMesh(w, sum, req)
		return nil
	default:
		return checkFormat(format)
	}
}

func trailingEdgeLabel(sum usecase.MeshSummary) string {
	switch {
	case sum.SharpTrailingEdge:
		return "sharp"
	case sum.Closure:
		return "blunt, closed"
	default:
		return "blunt, open"
	}
}

func printPrettyMesh(w io.Writer, sum usecase.MeshSummary, req usecase.MeshRequest) {
	fmt.Fprintln(w, styles.Title.Render("Mesh"))
	fmt.Fprintln(w, field("Upper", req.UpperPath))
	fmt.Fprintln(w, field("Lower", req.LowerPath))
	switch {
	case sum.Written:
		fmt.Fprintln(w, field("Script", styles.OK.Render(sum.ScriptPath)))
	case req.DryRun:
		fmt.Fprintln(w, field("Script", styles.Warn.Render("(dry run, not written)")))
	}
	if sum.GeoJSONPath != "" {
		fmt.Fprintln(w, field("GeoJSON", sum.GeoJSONPath))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, field("Points", fmt.Sprintf("%d (farfield %d, contour %d)", sum.Points, sum.FarfieldPoints, sum.ContourPoints)))
	fmt.Fprintln(w, field("Edges", sum.Edges))
	fmt.Fprintln(w, field("Leading edge", fmt.Sprintf("x = %s (kink %.1f deg)", numeric.FormatFloat(sum.LeadingEdgeX), sum.LeadingEdgeKink)))

	fmt.Fprintln(w, field("Trailing edge", trailingEdgeLabel(sum)))

	orient := "clockwise"
	if sum.CounterClockwise {
		orient = "counter-clockwise"
	}
	fmt.Fprintln(w, field("Contour", fmt.Sprintf("area %.6g, %s", sum.ContourArea, orient)))
	fmt.Fprintln(w, field("Extent", fmt.Sprintf("x [%.6g, %.6g]  y [%.6g, %.6g]",
		sum.Extent.Min.X(), sum.Extent.Max.X(), sum.Extent.Min.Y(), sum.Extent.Max.Y())))
	fmt.Fprintln(w, field("hwall_n", numeric.FormatFloat(sum.WallSpacing.Height)))
}
