package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"podcaster/internal/core"
)

var (
	hostStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	guestStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	effectStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

// FormatLine renders one numbered script line as "N. [Speaker]: text".
// styled adds terminal colors.
func FormatLine(n int, line core.DialogueLine, styled bool) string {
	speaker := "[" + line.Speaker + "]"
	effect := ""
	if line.AudioEffect != "" {
		effect = " (" + line.AudioEffect + ")"
	}
	if styled {
		if line.Speaker == core.SpeakerGuest {
			speaker = guestStyle.Render(speaker)
		} else {
			speaker = hostStyle.Render(speaker)
		}
		if effect != "" {
			effect = effectStyle.Render(effect)
		}
	}
	return fmt.Sprintf("%d. %s: %s%s", n, speaker, line.Text, effect)
}

// FormatScript renders every line followed by a total.
func FormatScript(lines []core.DialogueLine, styled bool) string {
	var b strings.Builder
	for i, line := range lines {
		b.WriteString(FormatLine(i+1, line, styled))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nTotal lines: %d\n", len(lines))
	return b.String()
}

type section struct {
	title string
	body  string
}

// model browses a research brief and its script.
type model struct {
	brief       core.ResearchOutput
	lines       []core.DialogueLine
	sections    []section
	selectedIdx int // Index of the selected section
	width       int // Terminal width
	height      int // Terminal height
	quitting    bool
}

// NewModel returns the initial browser state for a brief and its script.
func NewModel(brief core.ResearchOutput, lines []core.DialogueLine) tea.Model {
	return newModel(brief, lines)
}

func newModel(brief core.ResearchOutput, lines []core.DialogueLine) model {
	m := model{brief: brief, lines: lines, width: 100, height: 30}

	m.sections = append(m.sections, section{title: "Overview", body: m.overview()})
	for _, seg := range brief.EpisodeOutline.Segments {
		m.sections = append(m.sections, section{title: seg.Title, body: segmentBody(seg)})
	}
	m.sections = append(m.sections,
		section{title: "Key facts", body: m.facts()},
		section{title: "Script", body: m.script()},
	)
	return m
}

func segmentBody(seg core.Segment) string {
	var b strings.Builder
	if seg.Purpose != "" {
		b.WriteString(seg.Purpose + "\n")
	}
	fmt.Fprintf(&b, "~%ds\n\n", seg.ApproxDurationSeconds)
	for _, bullet := range seg.Bullets {
		b.WriteString("• " + bullet + "\n")
	}
	return b.String()
}

func (m model) overview() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", m.brief.ShortSummary)
	fmt.Fprintf(&b, "Language: %s\nDuration: %d min\nTone: %s\n", m.brief.Language, m.brief.EstimatedDurationMinutes, m.brief.SuggestedTone)
	if len(m.brief.SuggestedHooks) > 0 {
		b.WriteString("\nHooks:\n")
		for _, hook := range m.brief.SuggestedHooks {
			b.WriteString("• " + hook + "\n")
		}
	}
	return b.String()
}

func (m model) facts() string {
	if len(m.brief.KeyFacts) == 0 {
		return "No key facts."
	}
	var b strings.Builder
	for _, f := range m.brief.KeyFacts {
		fmt.Fprintf(&b, "• %s (%.0f%%)", f.Fact, f.Confidence*100)
		if f.Source != "" {
			fmt.Fprintf(&b, " [%s]", f.Source)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) script() string {
	if len(m.lines) == 0 {
		return "No script generated."
	}
	var b strings.Builder
	for i, line := range m.lines {
		b.WriteString(FormatLine(i+1, line, true) + "\n")
	}
	return b.String()
}

// Init is the first command that will be run. We don't need any for now.
func (m model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model accordingly.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		case "down", "j":
			if m.selectedIdx < len(m.sections)-1 {
				m.selectedIdx++
			}
		}
	}

	return m, nil
}

// View renders the TUI.
func (m model) View() string {
	if m.quitting {
		return "Quitting...\n"
	}

	listWidth := max(20, m.width/3-4)
	detailWidth := max(20, m.width-listWidth-10)

	docStyle := lipgloss.NewStyle().Margin(1, 2)
	listStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(1).Width(listWidth)
	detailStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(1).Width(detailWidth)

	var list strings.Builder
	list.WriteString(titleStyle.Render(m.brief.Topic) + "\n\n")
	for i, s := range m.sections {
		cursor := " "
		if i == m.selectedIdx {
			cursor = ">"
		}
		fmt.Fprintf(&list, "%s %s\n", cursor, s.title)
	}

	current := m.sections[m.selectedIdx]
	detail := titleStyle.Render(current.title) + "\n\n" + current.body

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, listStyle.Render(list.String()), detailStyle.Render(detail))
	help := "\n\n[↑/k] Up | [↓/j] Down | [q] Quit"

	return docStyle.Render(mainContent + help)
}

// Run starts the browser and blocks until the user quits.
func Run(brief core.ResearchOutput, lines []core.DialogueLine) error {
	p := tea.NewProgram(NewModel(brief, lines), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
