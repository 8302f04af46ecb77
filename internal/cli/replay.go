package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	derrors "github.com/matzehuels/designpanel/pkg/errors"
	"github.com/matzehuels/designpanel/pkg/positioner"
	"github.com/matzehuels/designpanel/pkg/script"
)

func (c *CLI) replayCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "replay <script>...",
		Short: "Replay input scripts and check their expectations",
		Long: `Replay one or more TOML or YAML input scripts against a fresh panel.

Each script lists pointer and key steps and may state the expected final
position and selection. The panel invariant is checked after every event.
The command fails when an expectation does not hold or the invariant breaks.`,
		Example: `  designpanel replay examples/scripts/drag.toml
  designpanel replay --json examples/scripts/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return replay(ctx, cmd.OutOrStdout(), loggerFromContext(ctx), args, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print results with the render tree as JSON")

	return cmd
}

// replayReport is the JSON form of one replayed script.
type replayReport struct {
	Script   string          `json:"script"`
	Name     string          `json:"name,omitempty"`
	Events   int             `json:"events"`
	OK       bool            `json:"ok"`
	Failures []string        `json:"failures,omitempty"`
	Tree     positioner.Tree `json:"tree"`
}

func replay(ctx context.Context, w io.Writer, logger *log.Logger, paths []string, asJSON bool) error {
	prog := newProgress(logger)

	var reports []replayReport
	events, failed := 0, 0
	for _, path := range paths {
		s, err := script.Load(path)
		if err != nil {
			return err
		}
		logger.Debug("replaying", "script", path, "steps", len(s.Steps))

		res, err := script.Run(ctx, s, positioner.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		events += res.Events
		if !res.OK() {
			failed++
		}

		if asJSON {
			reports = append(reports, replayReport{
				Script:   path,
				Name:     res.Name,
				Events:   res.Events,
				OK:       res.OK(),
				Failures: res.Failures,
				Tree:     res.Tree,
			})
			continue
		}
		printResult(w, path, s.Expect != nil, res)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	}

	prog.done(fmt.Sprintf("Replayed %d events from %d scripts", events, len(paths)))
	if failed > 0 {
		return derrors.New(derrors.ErrCodeExpectation, "%d of %d scripts failed their expectations", failed, len(paths))
	}
	return nil
}

func printResult(w io.Writer, path string, hasExpect bool, res *script.Result) {
	title := path
	if res.Name != "" {
		title = res.Name
	}
	fmt.Fprintln(w, StyleTitle.Render(title))
	printKeyValue(w, "events", strconv.Itoa(res.Events))
	printKeyValue(w, "position", res.State.Position.String())
	printKeyValue(w, "dragging", strconv.FormatBool(res.State.IsDragging()))
	printKeyValue(w, "selected", strconv.FormatBool(res.State.IsEditing()))

	switch {
	case !hasExpect:
		printInfo(w, "no expectations")
	case res.OK():
		printSuccess(w, "expectations hold")
	default:
		for _, f := range res.Failures {
			printError(w, "%s", f)
		}
	}
	if res.Name != "" {
		printDetail(w, "%s", path)
	}
	fmt.Fprintln(w)
}
