package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/designpanel/pkg/diagram"
	derrors "github.com/matzehuels/designpanel/pkg/errors"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

func (c *CLI) diagramCommand() *cobra.Command {
	var (
		format string
		output string
		merge  bool
	)

	cmd := &cobra.Command{
		Use:   "diagram",
		Short: "Draw the positioner state machine",
		Long: `Draw the positioner state machine as Graphviz DOT or SVG.

The four states combine idle/dragging with unselected/selected. Edges are
found by applying every input to every state, so the diagram always matches
the running code.`,
		Example: `  designpanel diagram | dot -Tpng > states.png
  designpanel diagram --format svg -o states.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dot := diagram.ToDOT(diagram.Build(), diagram.Options{MergeEdges: merge})

			var data []byte
			switch format {
			case formatDOT:
				data = []byte(dot)
			case formatSVG:
				svg, err := diagram.RenderSVG(cmd.Context(), dot)
				if err != nil {
					return err
				}
				data = svg
			default:
				return derrors.New(derrors.ErrCodeUnsupported, "unsupported format %q (want dot or svg)", format)
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess(cmd.ErrOrStderr(), "Wrote state diagram")
			printFile(cmd.ErrOrStderr(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&merge, "merge", false, "merge parallel edges into one")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{formatDOT, formatSVG}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
