package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/designpanel/pkg/config"
	derrors "github.com/matzehuels/designpanel/pkg/errors"
)

type runOptions struct {
	width   int
	height  int
	watch   bool
	logFile string
}

func (c *CLI) runCommand() *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drag and nudge the block in the terminal",
		Long: `Run the design panel as a terminal UI.

Drag the block with the mouse. Click it to select it, then nudge it one cell
at a time with the arrow keys. Click elsewhere or press esc to deselect.

Terminal cells are the unit. A config file sets the panel size; without one
the panel is 60x16 cells. With --watch, saving the config file remounts the
panel with the new settings.`,
		Example: `  designpanel run
  designpanel run --width 40 --height 12
  designpanel run -c panel.toml --watch --log-file panel.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPanel(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", defaultTermWidth, "panel width in cells")
	cmd.Flags().IntVar(&opts.height, "height", defaultTermHeight, "panel height in cells")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "remount when the config file changes")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file")

	return cmd
}

func (c *CLI) runPanel(cmd *cobra.Command, opts runOptions) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	path := c.configFilePath()
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Read(path); err != nil {
			return err
		}
		c.applyLogLevel(cfg)
	}
	if path == "" || cmd.Flags().Changed("width") {
		cfg.Panel.Width = opts.width
	}
	if path == "" || cmd.Flags().Changed("height") {
		cfg.Panel.Height = opts.height
	}
	if err := terminalConfig(cfg); err != nil {
		return err
	}

	logger, closeLog, err := c.fileLogger(opts.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	var reloads chan reloadMsg
	if opts.watch {
		if path == "" {
			return derrors.New(derrors.ErrCodeInvalidInput, "--watch needs a config file")
		}
		reloads = make(chan reloadMsg)
		go watchConfig(ctx, path, logger, reloads)
	}

	m, err := NewPanelModel(ctx, cfg, logger, reloads)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if fm, ok := final.(PanelModel); ok {
		fm.Close()
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// watchConfig forwards reloads of path until ctx is done, then closes out.
// Only the panel size applies to a running program; flags given at startup
// do not.
func watchConfig(ctx context.Context, path string, logger *log.Logger, out chan<- reloadMsg) {
	// The debounce timer may still be delivering when Watch returns.
	var mu sync.Mutex
	closed := false
	defer func() {
		mu.Lock()
		closed = true
		close(out)
		mu.Unlock()
	}()

	err := config.Watch(ctx, path, config.DefaultDebounce, func(cfg *config.Config, err error) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case out <- reloadMsg{cfg: cfg, err: err}:
		case <-ctx.Done():
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("config watch stopped", "path", path, "err", err)
	}
}

// fileLogger returns a logger writing to path, or a discarding logger when
// path is empty. The terminal UI owns stdout and stderr.
func (c *CLI) fileLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, derrors.Wrap(derrors.ErrCodeInvalidPath, err, "open log file %s", path)
	}
	return newLogger(f, c.Logger.GetLevel()), func() { f.Close() }, nil
}
