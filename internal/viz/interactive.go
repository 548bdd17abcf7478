package viz

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/rigid2d/internal/config"
	"github.com/san-kum/rigid2d/internal/scenario"
	"github.com/san-kum/rigid2d/internal/world"
)

var presetInfo = map[string]string{
	"drop":      "circle onto ground",
	"ledges":    "tilted ledges, spawner",
	"stack":     "box tower",
	"billiards": "zero-g break",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var solverModes = []world.SolverMode{world.SolverRotationFriction, world.SolverRotation, world.SolverBasic}

type model struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	paramNames    []string
	paramCursor   int
	width, height int
	err           string
	liveModel     Model
}

func NewInteractiveApp() *model {
	return &model{
		state:      stateMenu,
		presets:    config.ListPresets(),
		paramNames: []string{"iterations", "gravity", "dt", "solver", "spawner"},
		width:      80,
		height:     24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	default:
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.cfg = config.GetPreset(m.selected)
		m.state, m.paramCursor, m.err = stateConfig, 0, ""
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case "s", "enter":
		cmd := m.start()
		return m, cmd
	}
	return m, nil
}

// adjust nudges the selected parameter in direction dir.
func (m *model) adjust(dir int) {
	switch m.paramNames[m.paramCursor] {
	case "iterations":
		m.cfg.Iterations += dir
		if m.cfg.Iterations < world.MinIterations {
			m.cfg.Iterations = world.MinIterations
		}
		if m.cfg.Iterations > world.MaxIterations {
			m.cfg.Iterations = world.MaxIterations
		}
	case "gravity":
		m.cfg.Gravity.Y += float64(dir) * 0.5
	case "dt":
		m.cfg.Dt *= 1 + float64(dir)*0.25
	case "solver":
		mode, _ := world.ParseSolver(m.cfg.Solver)
		i := 0
		for j, s := range solverModes {
			if s == mode {
				i = j
			}
		}
		i = (i + dir + len(solverModes)) % len(solverModes)
		m.cfg.Solver = solverModes[i].String()
	case "spawner":
		m.cfg.Spawner.Enabled = !m.cfg.Spawner.Enabled
	}
}

func (m model) paramValue(name string) string {
	switch name {
	case "iterations":
		return fmt.Sprintf("%d", m.cfg.Iterations)
	case "gravity":
		return fmt.Sprintf("%.2f", m.cfg.Gravity.Y)
	case "dt":
		return fmt.Sprintf("%.4f", m.cfg.Dt)
	case "solver":
		mode, _ := world.ParseSolver(m.cfg.Solver)
		return mode.String()
	case "spawner":
		if m.cfg.Spawner.Enabled {
			return "on"
		}
		return "off"
	}
	return ""
}

func (m *model) start() tea.Cmd {
	if err := m.cfg.Validate(); err != nil {
		m.err = err.Error()
		return nil
	}
	scene, err := scenario.NewScene(m.cfg)
	if err != nil {
		m.err = err.Error()
		log.Printf("start %s: %v", m.selected, err)
		return nil
	}
	m.liveModel = NewModel(scene)
	m.state = stateSim
	return m.liveModel.Init()
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func (m model) viewMenu() string {
	t := CurrentTheme
	h, sub := lipgloss.NewStyle().Foreground(t.Accent).Bold(true), lipgloss.NewStyle().Foreground(t.Muted)
	var b strings.Builder
	b.WriteString("\n\n    " + h.Render("RIGID2D") + "\n    " + sub.Render("rigid body sandbox") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render("▸"),
				lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render(fmt.Sprintf("%-12s", name)),
				lipgloss.NewStyle().Foreground(t.Bodies).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", sub.Render(fmt.Sprintf("  %-12s", name)), sub.Render(desc)))
		}
	}
	b.WriteString("\n    " + keyHint("j/k", "navigate") + keyHint("enter", "select") + keyHint("q", "quit") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	t := CurrentTheme
	h, sub := lipgloss.NewStyle().Foreground(t.Accent).Bold(true), lipgloss.NewStyle().Foreground(t.Muted)
	var b strings.Builder
	b.WriteString("\n\n    " + h.Render(strings.ToUpper(m.selected)) + "\n    " + sub.Render(presetInfo[m.selected]) + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.paramNames {
		val := fmt.Sprintf("%18s", m.paramValue(name))
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n",
				lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render("▸"),
				lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render(fmt.Sprintf("%-10s", name)),
				lipgloss.NewStyle().Foreground(t.Bodies).Bold(true).Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", sub.Render(fmt.Sprintf("  %-10s", name)), sub.Render(val)))
		}
	}
	if m.err != "" {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(t.Error).Render(m.err) + "\n")
	}
	b.WriteString("\n    " + keyHint("j/k", "select") + keyHint("h/l", "adjust") + keyHint("s", "start") + keyHint("esc", "back") + "\n")
	return b.String()
}

func keyHint(key, action string) string {
	t := CurrentTheme
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render(key) +
		lipgloss.NewStyle().Foreground(t.Muted).Render(" "+action+"  ")
}

// RunInteractive opens the preset menu.
func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen()).Run()
	return err
}

// RunLive runs a single config directly in the live view.
func RunLive(cfg *config.Config) error {
	scene, err := scenario.NewScene(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(NewModel(scene), tea.WithAltScreen()).Run()
	return err
}
