package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/callsite/cabi/abi"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactively classify signatures",
	Long:  `Explore opens a prompt that classifies each signature as you enter it.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := resolveTarget()
		if err != nil {
			return err
		}
		classifier, err := abi.NewClassifier(target)
		if err != nil {
			return err
		}
		p := tea.NewProgram(newExploreModel(classifier), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

var (
	exploreTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#5F5FD7")).
				Padding(0, 1)

	exploreWrapperStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#98FB98"))

	exploreClassStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#87CEEB"))

	exploreMemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	exploreErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	exploreHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))
)

type exploreModel struct {
	classifier *abi.Classifier
	err        error
	report     *sigReport
	input      textinput.Model
}

func newExploreModel(classifier *abi.Classifier) *exploreModel {
	ti := textinput.New()
	ti.Placeholder = "float64(float64, int32*)"
	ti.Prompt = "signature: "
	ti.Width = 60
	ti.Focus()
	return &exploreModel{classifier: classifier, input: ti}
}

func (m *exploreModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			src := strings.TrimSpace(m.input.Value())
			if src == "" {
				return m, nil
			}
			m.report, m.err = buildReport(m.classifier, src)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *exploreModel) View() string {
	var b strings.Builder

	b.WriteString(exploreTitleStyle.Render("cabi explorer"))
	b.WriteString(" ")
	b.WriteString(exploreHelpStyle.Render(m.classifier.Target().Triple))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(exploreErrStyle.Render(m.err.Error()))
		b.WriteString("\n")
	case m.report != nil:
		m.renderReport(&b)
	}

	b.WriteString("\n")
	b.WriteString(exploreHelpStyle.Render("enter classify • esc quit"))
	return b.String()
}

func (m *exploreModel) renderReport(b *strings.Builder) {
	r := m.report
	fmt.Fprintf(b, "wrapper:     %s\n", exploreWrapperStyle.Render(r.wrapper.String()))
	fmt.Fprintf(b, "fingerprint: %s\n", exploreHelpStyle.Render(r.fp))
	for i, arg := range r.sig.Args {
		fmt.Fprintf(b, "arg %d: %-24s %s  %s\n",
			i, arg.String(), m.styleClasses(r.args[i]), argRouteLabel(r.plan.Args[i]))
	}
	if r.ret == nil {
		fmt.Fprintf(b, "ret:   %-24s %s\n", "void", exploreHelpStyle.Render("none"))
	} else {
		fmt.Fprintf(b, "ret:   %-24s %s  %s\n",
			r.sig.Ret.String(), m.styleClasses(*r.ret), retRouteLabel(r))
	}
}

func (m *exploreModel) styleClasses(tc abi.TypeClass) string {
	if tc.Memory {
		return exploreMemStyle.Render(classesLabel(tc))
	}
	return exploreClassStyle.Render(classesLabel(tc))
}
