package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
)

// =============================================================================
// browseModel - Interactive package browser
// =============================================================================

// browseModel is the bubbletea model for the interactive package browser.
// Tab cycles a language filter over the catalog; enter selects a package
// whose detail card is printed after the program exits.
type browseModel struct {
	packages []catalog.Package // full catalog, in catalog order
	filtered []catalog.Package
	langIdx  int // 0 = all languages, i > 0 = catalog.Languages[i-1]
	cursor   int
	offset   int
	height   int
	selected *catalog.Package
}

// newBrowseModel creates a browser over the given packages.
func newBrowseModel(pkgs []catalog.Package) browseModel {
	return browseModel{
		packages: pkgs,
		filtered: pkgs,
		height:   15,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "tab":
			m = m.cycleLanguage()
		case "enter":
			if len(m.filtered) > 0 {
				p := m.filtered[m.cursor]
				m.selected = &p
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// cycleLanguage advances the language filter and resets the viewport.
func (m browseModel) cycleLanguage() browseModel {
	m.langIdx = (m.langIdx + 1) % (len(catalog.Languages) + 1)
	if m.langIdx == 0 {
		m.filtered = m.packages
	} else {
		lang := catalog.Languages[m.langIdx-1]
		filtered := make([]catalog.Package, 0, len(m.packages))
		for _, p := range m.packages {
			if p.Language == lang {
				filtered = append(filtered, p)
			}
		}
		m.filtered = filtered
	}
	m.cursor = 0
	m.offset = 0
	return m
}

// filterLabel names the active language filter.
func (m browseModel) filterLabel() string {
	if m.langIdx == 0 {
		return "all"
	}
	return string(catalog.Languages[m.langIdx-1])
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("zk-kit Packages"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⇥ filter language  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		empty := "  No packages discovered"
		if m.langIdx > 0 {
			empty = fmt.Sprintf("  No %s packages", m.filterLabel())
		}
		b.WriteString(StyleDim.Render(empty))
		b.WriteString("\n")
		return b.String()
	}

	end := m.offset + m.height
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		p := m.filtered[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			p.Name,
			string(p.Language),
			string(p.Category),
			orDash(p.Version),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Package", "Language", "Category", "Version").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.offset+row == m.cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col == 4 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	filter := m.filterLabel()
	if m.langIdx > 0 {
		filter = StyleSuccess.Render(filter)
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.filtered))))
	b.WriteString(StyleDim.Render("  ·  filter: "))
	b.WriteString(filter)

	return b.String()
}
