package tui

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mikeboe/guia-procesos/pkg/export"
	"github.com/mikeboe/guia-procesos/pkg/history"
	"github.com/mikeboe/guia-procesos/pkg/presentation"
	"github.com/mikeboe/guia-procesos/pkg/search"
)

var historyKeys = []string{"f1", "f2", "f3"}

// Model is the interactive query screen.
type Model struct {
	ctrl     *search.Controller
	exporter *export.Exporter
	dir      string

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	state   search.State
	loading bool
	ready   bool
	status  string
	width   int
	height  int
}

// NewModel creates the screen. Exported documents are written to dir.
func NewModel(ctrl *search.Controller, exporter *export.Exporter, dir string) Model {
	ti := textinput.New()
	ti.Placeholder = "Ej: Muro de contención en concreto reforzado..."
	ti.CharLimit = 200
	ti.Prompt = "› "
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = loadingStyle

	return Model{
		ctrl:     ctrl,
		exporter: exporter,
		dir:      dir,
		input:    ti,
		spinner:  s,
		state:    ctrl.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// header, input box, history row, status and help
		vpHeight := m.height - 9
		if vpHeight < 5 {
			vpHeight = 5
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.input.Width = m.width - 8
		m.refresh()

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if m.loading {
				return m, nil
			}
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			return m.begin(query, m.search(query))

		case "f1", "f2", "f3":
			if m.loading {
				return m, nil
			}
			index := indexOf(key)
			query, ok := m.state.History.At(index)
			if !ok {
				return m, nil
			}
			m.input.SetValue(query)
			return m.begin(query, m.rerun(index))

		case "ctrl+p":
			if m.loading {
				return m, nil
			}
			return m, m.export()
		}

	case SearchDoneMsg:
		m.loading = false
		m.state = msg.State
		if msg.Err != nil {
			m.status = msg.Err.Error()
		}
		cmds = append(cmds, m.input.Focus())
		m.refresh()
		m.viewport.GotoTop()

	case ExportDoneMsg:
		switch {
		case msg.Err != nil:
			m.status = "Error al exportar: " + msg.Err.Error()
		case !msg.Written:
			m.status = "La exportación a PDF no está disponible."
		default:
			m.status = "PDF guardado en " + msg.Path
		}

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Only keys reach the input, and only while it accepts queries
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// begin mirrors the controller's Loading state before the search command runs.
func (m Model) begin(query string, run tea.Cmd) (tea.Model, tea.Cmd) {
	m.loading = true
	m.status = ""
	m.state = m.state.Begin(query)
	m.input.Blur()
	m.refresh()
	return m, tea.Batch(run, m.spinner.Tick)
}

func (m Model) search(query string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		st, err := ctrl.RunSearch(context.Background(), query)
		return SearchDoneMsg{State: st, Err: err}
	}
}

func (m Model) rerun(index int) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		st, err := ctrl.RerunHistory(context.Background(), index)
		return SearchDoneMsg{State: st, Err: err}
	}
}

func (m Model) export() tea.Cmd {
	view, ok := presentation.BuildResult(m.state)
	if !ok {
		return nil
	}
	exporter, dir := m.exporter, m.dir
	return func() tea.Msg {
		var buf bytes.Buffer
		written, err := exporter.Export(&buf, view)
		if err != nil || !written {
			return ExportDoneMsg{Written: written, Err: err}
		}
		path := filepath.Join(dir, export.Filename(view.Query))
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return ExportDoneMsg{Err: fmt.Errorf("failed to write %s: %w", path, err)}
		}
		return ExportDoneMsg{Path: path, Written: true}
	}
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	if view, ok := presentation.BuildResult(m.state); ok {
		m.viewport.SetContent(presentation.RenderTerminal(view, m.viewport.Width-2))
		return
	}
	m.viewport.SetContent("")
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Guía de Procesos Constructivos") + " ")
	b.WriteString(subtitleStyle.Render("Normatividad colombiana (NSR-10, NTC)") + "\n")
	b.WriteString(inputStyle.Render(m.input.View()) + "\n")
	b.WriteString(renderHistory(m.state.History) + "\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " " + loadingStyle.Render(presentation.LoadingTitle) + "\n")
		b.WriteString(dimStyle.Render(presentation.LoadingDetail) + "\n")
	case m.state.Error != "":
		b.WriteString(errorStyle.Render(m.state.Error) + "\n")
	case m.state.Displayable():
		b.WriteString(m.viewport.View() + "\n")
	default:
		b.WriteString(dimStyle.Render(presentation.EmptyPrompt) + "\n")
		b.WriteString(dimStyle.Render(presentation.EmptyExample) + "\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(helpStyle.Render("enter buscar  f1-f3 historial  ctrl+p imprimir a PDF  ↑/↓ desplazar  esc salir"))

	return b.String()
}

func renderHistory(h history.List) string {
	if len(h) == 0 {
		return ""
	}
	parts := make([]string, 0, len(h))
	for i, q := range h {
		parts = append(parts, historyKeyStyle.Render(strings.ToUpper(historyKeys[i]))+" "+historyStyle.Render(q))
	}
	return dimStyle.Render(presentation.HistoryLabel) + " " + strings.Join(parts, "  ")
}

func indexOf(key string) int {
	for i, k := range historyKeys {
		if k == key {
			return i
		}
	}
	return -1
}
