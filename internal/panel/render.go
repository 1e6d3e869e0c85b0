package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/simlab/internal/view"
)

// Width is the panel's outer width in terminal cells.
const Width = 30

type Styles struct {
	Box      lipgloss.Style
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	ReadOnly lipgloss.Style
	Button   lipgloss.Style
	Folder   lipgloss.Style
	Cursor   lipgloss.Style
}

func StylesFor(th view.Theme) Styles {
	fg := lipgloss.Color(view.Hex(th.Text))
	muted := lipgloss.Color(view.Hex(th.Muted))
	bg := lipgloss.Color(view.Hex(th.Background))
	accent := lipgloss.Color("#00ccff")
	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Background(bg).
			Padding(0, 1).
			Width(Width - 2),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(fg),
		Label:    lipgloss.NewStyle().Foreground(muted),
		Value:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		ReadOnly: lipgloss.NewStyle().Foreground(fg),
		Button:   lipgloss.NewStyle().Foreground(fg).Underline(true),
		Folder:   lipgloss.NewStyle().Foreground(fg).Bold(true),
		Cursor:   lipgloss.NewStyle().Reverse(true),
	}
}

// View renders the panel as a bordered lipgloss block.
func (p *Panel) View(st Styles) string {
	if p.Hidden {
		return ""
	}
	inner := Width - 4
	var b strings.Builder
	b.WriteString(st.Title.Render(p.Title))
	for _, r := range p.Rows() {
		b.WriteByte('\n')
		indent := strings.Repeat("  ", r.Depth)
		var line string
		switch it := r.Item.(type) {
		case *Binding:
			label := indent + r.Label
			vs := st.Value
			if it.ReadOnly {
				vs = st.ReadOnly
			}
			value := r.Value
			if c, ok := it.Swatch(); ok {
				value = lipgloss.NewStyle().Background(lipgloss.Color(view.Hex(c))).Render("  ") + " " + value
			}
			pad := inner - lipgloss.Width(label) - lipgloss.Width(value)
			if pad < 1 {
				pad = 1
			}
			line = st.Label.Render(label) + strings.Repeat(" ", pad) + vs.Render(value)
		case *Button:
			line = indent + st.Button.Render("["+r.Label+"]")
		case *Folder:
			line = st.Folder.Render(indent + r.Label)
		}
		if r.Selected {
			line = st.Cursor.Render(line)
		}
		b.WriteString(line)
	}
	return st.Box.Render(b.String())
}

// Lines renders rows as plain text for hosts that draw their own glyphs.
func (p *Panel) Lines() []string {
	if p.Hidden {
		return nil
	}
	out := []string{p.Title}
	for _, r := range p.Rows() {
		cur := "  "
		if r.Selected {
			cur = "> "
		}
		s := cur + strings.Repeat("  ", r.Depth) + r.Label
		if r.Value != "" {
			s += ": " + r.Value
		}
		if _, ok := r.Item.(*Button); ok {
			s = cur + strings.Repeat("  ", r.Depth) + "[" + r.Label + "]"
		}
		out = append(out, s)
	}
	return out
}
