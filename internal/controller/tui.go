package controller

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	m "github.com/pyscaff/pyscaff/internal/model"
)

// keyMap defines keybindings for the interactive summary browser.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("^/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("v/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// Styles for the TUI.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tuiHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	tuiBorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// TUI is an interactive browser for saved run summaries.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// BrowseSummary displays a run summary. Short summaries print directly;
// longer ones open a scrollable viewport.
func (t *TUI) BrowseSummary(summary m.RunSummary) error {
	content := renderSummaryContent(summary)

	if t.fitsTerminal(content) {
		_, err := fmt.Fprint(t.output, content)
		return err
	}

	model := newSummaryModel(content)

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// fitsTerminal reports whether content fits the attached terminal without
// scrolling. Non-terminal outputs always fit so piped output stays plain.
func (t *TUI) fitsTerminal(content string) bool {
	f, ok := t.output.(*os.File)
	if !ok {
		return true
	}

	_, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return true
	}

	return strings.Count(content, "\n") < height-1
}

func renderSummaryContent(summary m.RunSummary) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(
		fmt.Sprintf("Run %s: %d scenario(s) across %d file(s)",
			summary.ID, summary.TotalScenarios(), len(summary.Files))))
	sb.WriteString("\n\n")
	sb.WriteString(statusStyle.Render(fmt.Sprintf("    root:     %s", summary.Root)))
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(fmt.Sprintf("    artifact: %s", summary.Artifact)))
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(fmt.Sprintf("    created:  %s", summary.CreatedAt.Format("2006-01-02 15:04:05"))))
	sb.WriteString("\n\n")

	if len(summary.Files) == 0 {
		sb.WriteString(statusStyle.Render("    No files were analyzed."))
		sb.WriteString("\n")

		return sb.String()
	}

	rows := make([][]string, 0, len(summary.Files))
	for _, file := range summary.Files {
		row := []string{string(file.File)}
		for _, kind := range m.ScenarioKinds {
			row = append(row, strconv.Itoa(file.Counts[kind]))
		}

		rows = append(rows, append(row, strconv.Itoa(file.Scenarios()), strconv.Itoa(file.Skipped)))
	}

	headers := []string{"FILE"}
	for _, kind := range m.ScenarioKinds {
		headers = append(headers, strings.ToUpper(string(kind)))
	}

	headers = append(headers, "TOTAL", "SKIPPED")

	skippedColumn := len(headers) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tuiBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tuiHeaderStyle
			}
			if col == skippedColumn && row >= 0 && row < len(rows) && rows[row][skippedColumn] != "0" {
				return skippedStyle
			}
			return lipgloss.NewStyle()
		}).
		Headers(headers...).
		Rows(rows...)

	sb.WriteString(t.String())
	sb.WriteString("\n")

	return sb.String()
}

// summaryModel is the Bubble Tea model for browsing a run summary.
type summaryModel struct {
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	ready    bool
	content  string
}

func newSummaryModel(content string) summaryModel {
	return summaryModel{
		help:    help.New(),
		keys:    defaultKeyMap,
		content: content,
	}
}

func (sm summaryModel) Init() tea.Cmd {
	return nil
}

func (sm summaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 0
		footerHeight := 2
		verticalMargin := headerHeight + footerHeight

		if !sm.ready {
			sm.viewport = viewport.New(msg.Width, msg.Height-verticalMargin)
			sm.viewport.SetContent(sm.content)
			sm.ready = true
		} else {
			sm.viewport.Width = msg.Width
			sm.viewport.Height = msg.Height - verticalMargin
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, sm.keys.Quit):
			return sm, tea.Quit
		case key.Matches(msg, sm.keys.Help):
			sm.help.ShowAll = !sm.help.ShowAll
		}
	}

	sm.viewport, cmd = sm.viewport.Update(msg)

	return sm, cmd
}

func (sm summaryModel) View() string {
	if !sm.ready {
		return "Initializing..."
	}

	footer := statusStyle.Render(
		fmt.Sprintf(" %3.f%% ", sm.viewport.ScrollPercent()*100)) +
		" " + sm.help.View(sm.keys)

	return sm.viewport.View() + "\n" + footer
}
