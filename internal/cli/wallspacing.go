package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/mesh"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/numeric"
)

func wallSpacingCmd() *cobra.Command {
	var workspace string
	var format string
	var reynoldsNu bool
	var overrides meshFlags

	c := &cobra.Command{
		Use:   "wall-spacing",
		Short: "Estimate the first-cell wall height for a target y+",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			ws, err := loadWorkspaceOrDefaults(workspace)
			if err != nil {
				return err
			}

			cfg := ws.cfg.Mesh
			overrides.apply(cmd.Flags(), &cfg)

			corr := ws.cfg.Correlation
			if reynoldsNu {
				corr.KinematicViscosity = 0
			}

			in := mesh.WallSpacingInput{
				Reynolds:        cfg.Reynolds,
				YPlus:           cfg.YPlus,
				Mach:            cfg.Mach,
				ReferenceLength: cfg.ReferenceLength,
			}
			spacing, err := mesh.FirstLayerHeight(in, corr)
			if err != nil {
				return err
			}
			return printWallSpacing(os.Stdout, in, spacing, format)
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().BoolVar(&reynoldsNu, "reynolds-nu", false, "Derive the kinematic viscosity from the Reynolds number")
	overrides.bind(c.Flags())
	return c
}

func printWallSpacing(w io.Writer, in mesh.WallSpacingInput, ws domain.WallSpacing, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"reynolds":     in.Reynolds,
			"yplus":        in.YPlus,
			"mach":         in.Mach,
			"wall_spacing": ws,
		})
	case "pretty", "":
		fmt.Fprintln(w, styles.Title.Render("Wall spacing"))
		fmt.Fprintln(w, field("Reynolds", numeric.FormatFloat(in.Reynolds)))
		fmt.Fprintln(w, field("y+", numeric.FormatFloat(in.YPlus)))
		fmt.Fprintln(w, field("Mach", numeric.FormatFloat(in.Mach)))
		fmt.Fprintln(w)
		fmt.Fprintln(w, field("Cf", numeric.FormatFloat(ws.SkinFriction)))
		fmt.Fprintln(w, field("U_inf", numeric.FormatFloat(ws.FreestreamVelocity)))
		fmt.Fprintln(w, field("u_tau", numeric.FormatFloat(ws.FrictionVelocity)))
		fmt.Fprintln(w, field("nu", numeric.FormatFloat(ws.KinematicViscosity)))
		fmt.Fprintln(w, field("hwall_n", styles.OK.Render(numeric.FormatFloat(ws.Height))))
		return nil
	default:
		return checkFormat(format)
	}
}
