package presentation

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mikeboe/guia-procesos/pkg/markup"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	queryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	heading1Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			MarginTop(1)

	heading2Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("45")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240"))

	emphasisStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	bulletStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("136")).
			Padding(0, 1)

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("38")).
			Underline(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// RenderTerminal draws the result panel for a terminal of the given width.
// The image itself cannot be shown, so only its status is printed.
func RenderTerminal(view ResultView, width int) string {
	if width <= 0 {
		width = 80
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Proceso Constructivo: ") + queryStyle.Render(view.Query) + "\n\n")

	for _, n := range view.Nodes {
		b.WriteString(wrap.Render(renderNode(n)) + "\n")
	}

	b.WriteString("\n" + heading2Style.Render(SectionIllustration) + "\n")
	switch {
	case view.ImageURL != "":
		b.WriteString(dimStyle.Render("(ilustración disponible en la exportación PDF)") + "\n")
	case view.ImageError != "":
		b.WriteString(warningStyle.Render(view.ImageError) + "\n")
	}

	if len(view.Sources) > 0 {
		b.WriteString("\n" + heading2Style.Render(SectionSources) + "\n")
		for _, s := range view.Sources {
			line := bulletStyle.Render("• ") + linkStyle.Render(s.Label)
			if s.Label != s.URL {
				line += " " + dimStyle.Render(s.URL)
			}
			b.WriteString(wrap.Render(line) + "\n")
		}
	}

	return b.String()
}

func renderNode(n markup.Node) string {
	switch n.Kind {
	case markup.Heading1:
		return heading1Style.Render(n.Text)
	case markup.Heading2:
		return heading2Style.Render(n.Text)
	case markup.Emphasis:
		return emphasisStyle.Render(n.Text)
	case markup.NumberedItem:
		if n.Body == "" {
			return labelStyle.Render(n.Label)
		}
		return labelStyle.Render(n.Label) + bodyStyle.Render(n.Body)
	case markup.Bullet:
		return "  " + bulletStyle.Render("•") + " " + bodyStyle.Render(n.Text)
	case markup.Blank:
		return ""
	default:
		return bodyStyle.Render(n.Text)
	}
}
