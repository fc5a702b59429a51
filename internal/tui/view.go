package tui

import (
	"fmt"
	"strings"

	"github.com/erazemk/foodcourt/internal/notify"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	draft := m.form.Snapshot()
	var b strings.Builder

	b.WriteString(styleTitle.Render("Add menu item"))
	b.WriteString("\n\n")

	b.WriteString(m.label("Name", focusName) + "\n" + m.name.View() + "\n\n")
	b.WriteString(m.label("Description", focusDescription) + "\n" + m.description.View() + "\n\n")
	b.WriteString(m.label("Price", focusPrice) + "\n" + m.price.View() + "\n\n")

	category := draft.Category
	if m.focus == focusCategory {
		category = styleFocused.Render("‹ " + category + " ›")
	}
	b.WriteString(m.label("Category", focusCategory) + "\n" + category + "\n\n")

	b.WriteString(m.label("Image", focusImage) + "\n" + m.imagePath.View() + "\n")
	if p := m.form.Preview(); p != nil && draft.Image != nil {
		b.WriteString(styleInfo.Render(fmt.Sprintf("%s, preview %dx%d at %s",
			draft.Image.Filename, p.Size.X, p.Size.Y, p.Path)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.busy {
		b.WriteString(styleButtonBusy.Render(LabelUploading))
	} else {
		label := "Submit"
		if m.focus == focusSubmit {
			label = "▸ " + label
		}
		b.WriteString(styleButton.Render(label))
	}
	b.WriteString("\n\n")

	if m.toast != nil {
		b.WriteString(renderToast(*m.toast))
		b.WriteString("\n")
	}

	b.WriteString(styleHelp.Render("tab/shift+tab move • ←/→ category • ctrl+s submit • esc quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) label(text string, field int) string {
	if m.focus == field {
		return styleFocused.Render(text)
	}
	return styleLabel.Render(text)
}

func renderToast(t notify.Message) string {
	switch t.Severity {
	case notify.Error:
		return styleError.Render("✗ " + t.Text)
	case notify.Success:
		return styleSuccess.Render("✓ " + t.Text)
	default:
		return styleInfo.Render(t.Text)
	}
}
