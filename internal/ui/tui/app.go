package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/memoform/internal/form"
)

const (
	fieldFib = iota
	fieldName
	fieldCount
)

var fieldLabels = [fieldCount]string{"Fib", "Name"}

type model struct {
	theme Theme
	deps  Deps
	log   *slog.Logger

	form   *form.Form
	inputs [fieldCount]textinput.Model
	focus  int

	width int
	toast string
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, m.log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	fib := textinput.New()
	fib.Placeholder = "e.g. 10"
	fib.CharLimit = 24
	fib.Prompt = "› "

	name := textinput.New()
	name.Placeholder = "your name"
	name.CharLimit = 128
	name.Prompt = "› "

	m := model{
		theme:  DefaultTheme(),
		deps:   deps,
		log:    log,
		form:   form.New(deps.Config, form.WithLogger(log)),
		inputs: [fieldCount]textinput.Model{fib, name},
	}
	m.inputs[fieldFib].Focus()
	return m
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 12
		if w < 10 {
			w = 10
		}
		for i := range m.inputs {
			m.inputs[i].Width = w
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down", "enter":
			return m.moveFocus(1)
		case "shift+tab", "up":
			return m.moveFocus(-1)
		}
		m.toast = ""
	}

	i := m.focus
	before := m.inputs[i].Value()

	var cmd tea.Cmd
	m.inputs[i], cmd = m.inputs[i].Update(msg)

	if after := m.inputs[i].Value(); after != before {
		m.onChange(i, after)
	}
	return m, cmd
}

func (m *model) onChange(field int, v string) {
	switch field {
	case fieldFib:
		m.form.OnFibonacciInputChange(v)
	case fieldName:
		m.form.OnNameInputChange(v)
	}
}

// resyncInputs puts the form's field text back into the inputs.
func (m *model) resyncInputs() {
	if m.form == nil {
		return
	}
	m.inputs[fieldFib].SetValue(m.form.FibonacciInput())
	m.inputs[fieldName].SetValue(m.form.NameInput())
}

func (m model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	return m, m.inputs[m.focus].Focus()
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("memoform") + "\n" +
		m.theme.Subtitle.Render("Fibonacci recomputed only when its input changes") + "\n"

	var workspaceBanner string
	if m.deps.WorkspaceRoot != "" {
		workspaceBanner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.deps.WorkspaceRoot)) + "\n"
	}

	var b strings.Builder
	b.WriteString(m.renderField(fieldFib, m.form.FibonacciDisplayValue()))
	if hint := userMessage(m.form.FibonacciResult().Err); hint != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Hint.Render(hint))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderField(fieldName, clampString(m.form.NameDisplayValue(), m.outputWidth())))

	help := m.theme.Help.Render("tab/↑/↓ switch field • esc quit")
	if m.deps.Debug {
		st := m.form.CacheStats()
		help += "\n" + m.theme.Help.Render(fmt.Sprintf("cache: %d computed / %d hits • max n=%d", st.Computations, st.Hits, m.form.Limit()))
		if m.deps.LogPath != "" {
			help += "\n" + m.theme.Help.Render(fmt.Sprintf("log: %s (since %s)", m.deps.LogPath, m.deps.LogSince.Format("15:04:05")))
		}
	}
	if m.toast != "" {
		help += "\n" + m.theme.Hint.Render(m.toast)
	}

	return wrap.Render(header + workspaceBanner + "\n" + m.theme.Card.Render(b.String()) + "\n" + help)
}

func (m model) renderField(i int, output string) string {
	return m.theme.Label.Render(fieldLabels[i]) + "\n" +
		m.inputs[i].View() + "\n" +
		m.theme.Output.Render(output)
}

func (m model) outputWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := m.width - 12
	if w < 10 {
		return 10
	}
	return w
}
