package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	gpulayout "github.com/wippyai/gpu-layout"
	"github.com/wippyai/gpu-layout/codec"
	"github.com/wippyai/gpu-layout/shapes"
)

var (
	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type view int

const (
	viewLayout view = iota
	viewWGSL
	viewKernel
	viewHex
	viewRun
)

var viewNames = [...]string{
	viewLayout: "layout",
	viewWGSL:   "wgsl",
	viewKernel: "kernel",
	viewHex:    "hex",
	viewRun:    "run",
}

type interactiveModel struct {
	err      error
	value    any
	compiler *codec.Compiler
	filter   textinput.Model
	body     string
	entries  []shapes.Entry
	inputs   []textinput.Model
	selected int
	focusIdx int
	space    gpulayout.AddressSpace
	view     view
	picked   bool
	editing  bool
}

type renderedMsg struct {
	err  error
	body string
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "filter shapes"
	ti.Prompt = "/ "
	ti.Width = 30

	m := &interactiveModel{
		compiler: codec.NewCompiler(),
		filter:   ti,
	}
	m.applyFilter()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) applyFilter() {
	q := strings.ToLower(m.filter.Value())
	m.entries = m.entries[:0]
	for _, e := range shapes.Catalog() {
		if q == "" || strings.Contains(strings.ToLower(e.Name), q) {
			m.entries = append(m.entries, e)
		}
	}
	if m.selected >= len(m.entries) {
		m.selected = max(len(m.entries)-1, 0)
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filter.Focused() {
			switch msg.String() {
			case "enter", "esc":
				m.filter.Blur()
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		if m.editing {
			return m.updateEditor(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "/":
			m.picked = false
			return m, m.filter.Focus()

		case "up", "k":
			if !m.picked && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if !m.picked && m.selected < len(m.entries)-1 {
				m.selected++
			}

		case "enter":
			if !m.picked && len(m.entries) > 0 {
				m.picked = true
				m.space = m.entries[m.selected].Space
				m.value = m.entries[m.selected].Sample()
				m.view = viewLayout
				return m, m.renderCmd()
			}

		case "e":
			if m.picked {
				m.startEditing()
			}

		case "s":
			if m.picked {
				if m.space == gpulayout.Storage {
					m.space = gpulayout.Uniform
				} else {
					m.space = gpulayout.Storage
				}
				return m, m.renderCmd()
			}

		case "tab":
			if m.picked {
				m.view = (m.view + 1) % view(len(viewNames))
				return m, m.renderCmd()
			}

		case "esc":
			m.picked = false
			m.body = ""
			m.err = nil
		}

	case renderedMsg:
		m.body = msg.body
		m.err = msg.err
	}

	return m, nil
}

// startEditing opens one input per region, prefilled with the current value.
func (m *interactiveModel) startEditing() {
	lay, err := m.compiler.Layout(m.entries[m.selected].Type, m.space)
	if err != nil {
		m.err = err
		return
	}
	texts, err := regionTexts(lay, m.value)
	if err != nil {
		m.err = err
		return
	}

	m.inputs = make([]textinput.Model, len(texts))
	for i, text := range texts {
		ti := textinput.New()
		ti.Prompt = lay.Regions[i].Path + ": "
		ti.Placeholder = lay.Regions[i].WGSLType
		ti.Width = 48
		ti.SetValue(text)
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
	m.editing = len(m.inputs) > 0
	m.err = nil
}

func (m *interactiveModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.editing = false
		m.inputs = nil
		m.err = nil
		return m, nil

	case "tab", "down":
		m.inputs[m.focusIdx].Blur()
		m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
		return m, m.inputs[m.focusIdx].Focus()

	case "shift+tab", "up":
		m.inputs[m.focusIdx].Blur()
		m.focusIdx = (m.focusIdx + len(m.inputs) - 1) % len(m.inputs)
		return m, m.inputs[m.focusIdx].Focus()

	case "enter":
		lay, err := m.compiler.Layout(m.entries[m.selected].Type, m.space)
		if err != nil {
			m.err = err
			return m, nil
		}
		texts := make([]string, len(m.inputs))
		for i := range m.inputs {
			texts[i] = m.inputs[i].Value()
		}
		value, err := valueFromTexts(lay, texts)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.value = value
		m.editing = false
		m.inputs = nil
		m.err = nil
		return m, m.renderCmd()
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	return m, cmd
}

// renderCmd computes the current view off the update loop.
func (m *interactiveModel) renderCmd() tea.Cmd {
	entry, space, v, value := m.entries[m.selected], m.space, m.view, m.value
	compiler := m.compiler
	return func() tea.Msg {
		lay, err := compiler.Layout(entry.Type, space)
		if err != nil {
			return renderedMsg{err: err}
		}

		var body string
		switch v {
		case viewLayout:
			body = renderLayout(lay) + "\n\n" + renderRegions(lay)
		case viewWGSL:
			body, err = declarationsSection(lay)
		case viewKernel:
			body, err = kernelSection(lay, "increment", true)
		case viewHex:
			body, err = hexSection(value, space)
		case viewRun:
			body, err = runSection(context.Background(), value, lay)
		}
		return renderedMsg{body: body, err: err}
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("GPU Layout"))
	b.WriteString("\n\n")

	if !m.picked {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		for i, e := range m.entries {
			line := fmt.Sprintf("%-16s %-8s %s", e.Name, e.Space, e.Description)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + nameStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter inspect • / filter • q quit"))
		return b.String()
	}

	entry := m.entries[m.selected]
	tabs := make([]string, len(viewNames))
	for i, name := range viewNames {
		if view(i) == m.view {
			tabs[i] = selectedStyle.Render(" " + name + " ")
		} else {
			tabs[i] = " " + name + " "
		}
	}
	fmt.Fprintf(&b, "%s (%s)  %s\n\n", nameStyle.Render(entry.Name), m.space, strings.Join(tabs, ""))

	if m.editing {
		b.WriteString("Edit scalar values, one line per region:\n\n")
		for i := range m.inputs {
			b.WriteString(m.inputs[i].View())
			b.WriteString("\n")
		}
		if m.err != nil {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("tab next field • enter apply • esc cancel"))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else {
		b.WriteString(m.body)
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab next view • e edit values • s toggle space • esc back • q quit"))

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
