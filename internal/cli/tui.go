package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/designpanel/pkg/config"
	derrors "github.com/matzehuels/designpanel/pkg/errors"
	"github.com/matzehuels/designpanel/pkg/positioner"
)

// Panel styles
var (
	panelStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorDim)

	blockStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan).
			Foreground(colorWhite)
	blockDraggingStyle = blockStyle.BorderForeground(colorGreen).Bold(true)
	blockEditingStyle  = blockStyle.BorderForeground(colorYellow)

	statusStyle = lipgloss.NewStyle().Foreground(colorGray)
	errorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// The panel interior starts below the title line and inside the border.
const (
	panelOriginX = 1
	panelOriginY = 2
)

// Terminal panel size used when no config file sets one.
const (
	defaultTermWidth  = 60
	defaultTermHeight = 16
)

// =============================================================================
// Key Bindings
// =============================================================================

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Deselect key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Deselect, k.Help, k.Quit},
	}
}

var defaultKeys = keyMap{
	Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "nudge left")),
	Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "nudge right")),
	Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "nudge up")),
	Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "nudge down")),
	Deselect: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "deselect")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// arrow maps bindings to the key identifiers the positioner understands.
func (k keyMap) arrow(msg tea.KeyMsg) (string, bool) {
	switch {
	case key.Matches(msg, k.Left):
		return positioner.ArrowLeft, true
	case key.Matches(msg, k.Right):
		return positioner.ArrowRight, true
	case key.Matches(msg, k.Up):
		return positioner.ArrowUp, true
	case key.Matches(msg, k.Down):
		return positioner.ArrowDown, true
	}
	return "", false
}

// =============================================================================
// PanelModel - Interactive design panel
// =============================================================================

// reloadMsg carries a reread config file into the event loop.
type reloadMsg struct {
	cfg *config.Config
	err error
}

// PanelModel is the bubbletea model hosting one positioner. Terminal cells
// are the unit: the panel is cfg.Panel cells large and the block is measured
// from its rendered label.
type PanelModel struct {
	ctx     context.Context
	cfg     *config.Config
	logger  *log.Logger
	doc     *positioner.Document
	pos     *positioner.Positioner
	keys    keyMap
	help    help.Model
	reloads <-chan reloadMsg

	// Set by a left press, consumed by the release that follows.
	pressed      bool
	pressedBlock bool

	err error
}

// NewPanelModel mounts a positioner for cfg. Reloaded configs arriving on
// reloads remount it; reloads may be nil.
func NewPanelModel(ctx context.Context, cfg *config.Config, logger *log.Logger, reloads <-chan reloadMsg) (PanelModel, error) {
	m := PanelModel{
		ctx:     ctx,
		logger:  logger,
		doc:     positioner.NewDocument(),
		keys:    defaultKeys,
		help:    help.New(),
		reloads: reloads,
	}
	if err := m.mount(cfg); err != nil {
		return m, err
	}
	return m, nil
}

// mount replaces the positioner with a fresh one for cfg. The position
// starts over at the origin.
func (m *PanelModel) mount(cfg *config.Config) error {
	if m.pos != nil {
		m.pos.Detach()
	}
	pcfg := cfg.Positioner()
	if pcfg.Label == "" {
		pcfg.Label = positioner.DefaultLabel
	}
	block := positioner.NewHandle()
	m.pos = positioner.New(pcfg, blockMeasurer(block, pcfg.Label),
		positioner.WithHandle(block),
		positioner.WithLogger(m.logger),
	)
	m.cfg = cfg
	m.pressed, m.pressedBlock = false, false
	return m.pos.Attach(m.doc)
}

// Close detaches the positioner.
func (m PanelModel) Close() {
	m.pos.Detach()
}

func (m PanelModel) Init() tea.Cmd {
	return m.waitForReload()
}

func (m PanelModel) waitForReload() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	ch := m.reloads
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Deselect):
			m.dispatch(positioner.Click{On: positioner.Root})
		default:
			if arrow, ok := m.keys.arrow(msg); ok {
				m.dispatch(positioner.KeyDown{Key: arrow})
			}
		}
	case tea.MouseMsg:
		m = m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case reloadMsg:
		m = m.reload(msg)
		return m, m.waitForReload()
	}
	return m, nil
}

func (m PanelModel) handleMouse(msg tea.MouseMsg) PanelModel {
	at := positioner.Point{X: msg.X - panelOriginX, Y: msg.Y - panelOriginY}
	target := m.hit(at)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		m.pressed, m.pressedBlock = true, target == m.pos.Block()
		m.dispatch(positioner.PointerDown{Point: at, On: target})
	case tea.MouseActionMotion:
		m.dispatch(positioner.PointerMove{Point: at, On: target})
	case tea.MouseActionRelease:
		m.dispatch(positioner.PointerUp{Point: at, On: target})
		if !m.pressed {
			return m
		}
		// A click lands on the block only when press and release both did.
		click := positioner.Root
		if m.pressedBlock && target == m.pos.Block() {
			click = m.pos.Block()
		}
		m.pressed, m.pressedBlock = false, false
		m.dispatch(positioner.Click{Point: at, On: click})
	}
	return m
}

func (m PanelModel) reload(msg reloadMsg) PanelModel {
	err := msg.err
	if err == nil {
		err = terminalConfig(msg.cfg)
	}
	if err == nil {
		err = m.mount(msg.cfg)
	}
	m.err = err
	if err != nil {
		m.logger.Warn("config reload failed", "err", err)
		return m
	}
	m.logger.Info("remounted", "panel", msg.cfg.PanelSize())
	return m
}

func (m PanelModel) dispatch(ev positioner.Event) {
	m.doc.Dispatch(m.ctx, ev)
}

// hit returns the block when at lies on it, else the root.
func (m PanelModel) hit(at positioner.Point) positioner.Handle {
	pos := m.pos.State().Position
	size, _ := blockMeasurer(m.pos.Block(), m.pos.Config().Label).Measure(m.pos.Block())
	if at.X >= pos.Left && at.X < pos.Left+size.Width &&
		at.Y >= pos.Top && at.Y < pos.Top+size.Height {
		return m.pos.Block()
	}
	return positioner.Root
}

func (m PanelModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(m.renderPanel()))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m PanelModel) renderPanel() string {
	tree := m.pos.Tree()
	pos := m.pos.State().Position
	width, height := tree.Container.Width, tree.Container.Height

	blank := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = blank
	}

	style := blockStyle
	switch {
	case tree.Child.Dragging:
		style = blockDraggingStyle
	case tree.Child.Editing:
		style = blockEditingStyle
	}

	for i, line := range strings.Split(style.Render(tree.Child.Label), "\n") {
		row := pos.Top + i
		right := width - pos.Left - lipgloss.Width(line)
		if row < 0 || row >= height || pos.Left < 0 || right < 0 {
			continue
		}
		lines[row] = strings.Repeat(" ", pos.Left) + line + strings.Repeat(" ", right)
	}
	return strings.Join(lines, "\n")
}

func (m PanelModel) renderStatus() string {
	child := m.pos.Tree().Child
	parts := []string{fmt.Sprintf("top %s  left %s", child.Top, child.Left)}
	if child.Dragging {
		parts = append(parts, "dragging")
	}
	if child.Editing {
		parts = append(parts, "selected")
	}
	status := statusStyle.Render(strings.Join(parts, "  ·  "))
	if m.err != nil {
		status += "  " + errorStyle.Render(m.err.Error())
	}
	return status
}

// =============================================================================
// Measurement
// =============================================================================

// blockMeasurer measures the rendered block in cells. Every block style has
// the same padding and border, so the size does not depend on state.
func blockMeasurer(block positioner.Handle, label string) positioner.Measurer {
	return positioner.MeasurerFunc(func(h positioner.Handle) (positioner.Size, bool) {
		if h != block {
			return positioner.Size{}, false
		}
		return measureLabel(label), true
	})
}

func measureLabel(label string) positioner.Size {
	rendered := blockStyle.Render(label)
	return positioner.Size{Width: lipgloss.Width(rendered), Height: lipgloss.Height(rendered)}
}

// maxTermCells bounds each panel dimension of the terminal host.
const maxTermCells = 1000

// terminalConfig sets the block size to the rendered label and validates cfg.
func terminalConfig(cfg *config.Config) error {
	if cfg.Panel.Width > maxTermCells || cfg.Panel.Height > maxTermCells {
		return derrors.New(derrors.ErrCodeInvalidConfig, "terminal panel too large (max %dx%d cells), got %dx%d",
			maxTermCells, maxTermCells, cfg.Panel.Width, cfg.Panel.Height)
	}
	size := measureLabel(cfg.Block.Label)
	cfg.Block.Width, cfg.Block.Height = size.Width, size.Height
	return cfg.Validate()
}
