package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/infra/forces"
)

func forcesCmd() *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "forces <file>",
		Short: "Print the integrated coefficients of a forces breakdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			coeffs, warnings, err := forces.ReadFile(args[0])
			if err != nil {
				return err
			}
			return printForces(os.Stdout, coeffs, warnings, format)
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printForces(w io.Writer, f domain.ForceCoefficients, warnings []string, format string) error {
	switch format {
	case "json":
		if warnings == nil {
			warnings = []string{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"forces":   f,
			"warnings": warnings,
		})
	case "pretty", "":
		fmt.Fprintln(w, field(domain.CoefficientLift, coeff(f.CL)))
		fmt.Fprintln(w, field(domain.CoefficientDrag, coeff(f.CD)))
		fmt.Fprintln(w, field(domain.CoefficientMoment, coeff(f.CMz)))
		for _, warn := range warnings {
			fmt.Fprintln(w, styles.Warn.Render("warning: "+warn))
		}
		return nil
	default:
		return checkFormat(format)
	}
}
