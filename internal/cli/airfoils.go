package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
)

func airfoilsCmd() *cobra.Command {
	var workspace string
	var format string

	cmd := &cobra.Command{
		Use:   "airfoils",
		Short: "List airfoil coordinate pairs in the workspace",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			refs, err := ws.airfoils.ListAirfoils(ws.root)
			if err != nil {
				return err
			}
			return printAirfoils(os.Stdout, ws.root, refs, format)
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}

func printAirfoils(w io.Writer, root string, refs []domain.AirfoilRef, format string) error {
	if format == "json" {
		if refs == nil {
			refs = []domain.AirfoilRef{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(refs)
	}

	if len(refs) == 0 {
		fmt.Fprintln(w, "(no airfoils found)")
		return nil
	}

	fmt.Fprintf(w, "Workspace: %s\n\n", root)
	for _, r := range refs {
		up, _ := filepath.Rel(root, r.Upper)
		lo, _ := filepath.Rel(root, r.Lower)
		fmt.Fprintf(w, "- %s  (%s, %s)\n", styles.Title.Render(r.Name), up, lo)
	}
	return nil
}
