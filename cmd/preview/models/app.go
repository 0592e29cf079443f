package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/gridgen/cmd/preview/components"
	"github.com/VoidMesh/gridgen/internal/pipeline"
	"github.com/VoidMesh/gridgen/internal/render"
)

// Runner executes pipeline definitions.
type Runner interface {
	Run(ctx context.Context, def *pipeline.Definition) (*pipeline.Layout, error)
}

// App previews every layer of one pipeline definition.
type App struct {
	runner Runner
	def    *pipeline.Definition

	// Current state
	layout    *pipeline.Layout
	current   int
	offset    int64
	width     int
	height    int
	isLoading bool
	elapsed   time.Duration
	errorMsg  string
}

type layoutLoadedMsg struct {
	layout  *pipeline.Layout
	elapsed time.Duration
}

type layoutErrorMsg string

// NewApp creates a preview for def.
func NewApp(runner Runner, def *pipeline.Definition) *App {
	return &App{
		runner: runner,
		def:    def,
	}
}

// Init runs the pipeline for the first time.
func (m *App) Init() tea.Cmd {
	log.Debug("Initializing preview", "pipeline", m.def.Name)
	m.isLoading = true
	return m.runCmd()
}

// Update handles messages and updates the application state
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, m.HandleKey(msg.String())

	case layoutLoadedMsg:
		m.layout = msg.layout
		m.elapsed = msg.elapsed
		m.isLoading = false
		m.errorMsg = ""
		if m.current >= len(m.layout.Layers) {
			m.current = 0
		}

	case layoutErrorMsg:
		m.isLoading = false
		m.errorMsg = string(msg)
	}

	return m, nil
}

// HandleKey applies a key binding and returns the follow-up command.
func (m *App) HandleKey(key string) tea.Cmd {
	switch key {
	case "ctrl+c", "q":
		return tea.Quit

	case "tab", "right", "l":
		m.step(1)

	case "shift+tab", "left", "h":
		m.step(-1)

	case "r":
		m.offset++
		m.isLoading = true
		return m.runCmd()
	}
	return nil
}

func (m *App) step(delta int) {
	if m.layout == nil || len(m.layout.Layers) == 0 {
		return
	}
	n := len(m.layout.Layers)
	m.current = ((m.current+delta)%n + n) % n
}

// SetSize updates the preview size
func (m *App) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Current returns the layer on screen, if any.
func (m *App) Current() (*pipeline.Layer, bool) {
	if m.layout == nil || m.current >= len(m.layout.Layers) {
		return nil, false
	}
	return &m.layout.Layers[m.current], true
}

// Seed is the pipeline seed of the current run.
func (m *App) Seed() int64 {
	return m.def.Seed + m.offset
}

// View renders the application
func (m *App) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	title := components.TitleStyle.Render(fmt.Sprintf("%s - seed %d", m.def.Name, m.Seed()))
	s.WriteString(title + "\n")
	s.WriteString(m.renderTabs() + "\n")

	mainContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderGrid(),
		m.renderInfoPanel(),
	)
	s.WriteString(mainContent + "\n")
	s.WriteString(m.renderStatusBar())

	return s.String()
}

func (m *App) renderTabs() string {
	if m.layout == nil {
		return ""
	}
	tabs := make([]string, len(m.layout.Layers))
	for i, layer := range m.layout.Layers {
		if i == m.current {
			tabs[i] = components.ActiveTabStyle.Render(layer.Name)
		} else {
			tabs[i] = components.TabStyle.Render(layer.Name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderGrid draws the current layer cropped to the terminal.
func (m *App) renderGrid() string {
	layer, ok := m.Current()
	if !ok {
		if m.isLoading {
			return components.BorderStyle.Render("Generating...")
		}
		if m.errorMsg != "" {
			return components.BorderStyle.Render(components.ErrorStyle.Render("Error: " + m.errorMsg))
		}
		return components.BorderStyle.Render("No layers")
	}

	maxW := max(m.width-components.InfoPanelStyle.GetWidth()-4, 1)
	maxH := max(m.height-6, 1)
	floor := lipgloss.NewStyle().Foreground(components.LayerColor(m.current))

	rows := render.Rows(layer.Cells, min(layer.Width, maxW), min(layer.Height, maxH))
	for i, row := range rows {
		rows[i] = styleRow(row, floor)
	}
	return components.BorderStyle.Render(strings.Join(rows, "\n"))
}

// styleRow renders runs of identical cells with one style call each.
func styleRow(row string, floor lipgloss.Style) string {
	var b strings.Builder
	cells := []rune(row)
	for start := 0; start < len(cells); {
		end := start
		for end < len(cells) && cells[end] == cells[start] {
			end++
		}
		n := end - start
		if cells[start] == render.Floor {
			b.WriteString(floor.Render(strings.Repeat(components.FloorSymbol, n)))
		} else {
			b.WriteString(components.EmptyCellStyle.Render(strings.Repeat(components.EmptySymbol, n)))
		}
		start = end
	}
	return b.String()
}

func (m *App) renderInfoPanel() string {
	var info strings.Builder

	info.WriteString(components.SubtitleStyle.Render("Layer") + "\n")
	if layer, ok := m.Current(); ok {
		info.WriteString(fmt.Sprintf("Name: %s\n", layer.Name))
		info.WriteString(fmt.Sprintf("Size: %dx%d\n", layer.Width, layer.Height))
		info.WriteString(fmt.Sprintf("Seed: %d\n", layer.Seed))
		info.WriteString(fmt.Sprintf("Cells: %d\n", layer.Cells.Len()))
		if layer.PathFound != nil {
			info.WriteString(fmt.Sprintf("Path found: %v\n", *layer.PathFound))
		}
		if !layer.Cells.IsEmpty() {
			bounds := layer.Cells.Bounds()
			info.WriteString(fmt.Sprintf("Bounds: %d,%d %dx%d\n", bounds.X, bounds.Y, bounds.W, bounds.H))
		}
	} else {
		info.WriteString("No layer\n")
	}

	info.WriteString("\n" + components.SubtitleStyle.Render("Controls") + "\n")
	info.WriteString("Tab/→: Next layer\n")
	info.WriteString("Shift+Tab/←: Previous\n")
	info.WriteString("r: Next seed  q: Quit\n")

	return components.InfoPanelStyle.Render(info.String())
}

func (m *App) renderStatusBar() string {
	var status []string

	if m.layout != nil {
		status = append(status, fmt.Sprintf("Layers: %d", len(m.layout.Layers)))
		status = append(status, fmt.Sprintf("Generated in %s", m.elapsed.Round(time.Millisecond)))
	}
	if m.isLoading {
		status = append(status, "Generating...")
	}
	if m.errorMsg != "" {
		status = append(status, fmt.Sprintf("Error: %s", m.errorMsg))
	}

	statusText := strings.Join(status, " • ")
	return components.StatusBarStyle.Width(m.width).Render(statusText)
}

// runCmd creates a command that runs the pipeline at the current seed.
func (m *App) runCmd() tea.Cmd {
	def := Reseed(m.def, m.offset)
	runner := m.runner
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		start := time.Now()
		layout, err := runner.Run(ctx, def)
		if err != nil {
			log.Error("Failed to run pipeline", "error", err, "seed", def.Seed)
			return layoutErrorMsg(err.Error())
		}
		return layoutLoadedMsg{layout: layout, elapsed: time.Since(start)}
	}
}

// Reseed copies def with the pipeline seed and every explicit layer seed
// shifted by offset, so layers that share a seed keep sharing it.
func Reseed(def *pipeline.Definition, offset int64) *pipeline.Definition {
	out := *def
	out.Seed += offset
	out.Layers = make([]pipeline.LayerSpec, len(def.Layers))
	for i, layer := range def.Layers {
		if layer.Seed != nil {
			seed := *layer.Seed + offset
			layer.Seed = &seed
		}
		out.Layers[i] = layer
	}
	return &out
}
