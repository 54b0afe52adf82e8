package cli

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/paramgraph/pkg/paramgraph"
	"github.com/matzehuels/paramgraph/pkg/reader"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	listFilterStyle = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// RootListModel - Interactive root selection
// =============================================================================

// RootListModel is the bubbletea model for browsing the roots of a graph.
// The pane below the list shows the input fields of the root under the
// cursor. Typing "/" starts a substring filter.
type RootListModel struct {
	Reader    *reader.Reader
	Keys      []string
	Visible   []string
	Filter    string
	Filtering bool
	Cursor    int
	Offset    int
	Height    int
	Selected  string
}

// NewRootListModel creates a root list over all roots of r.
func NewRootListModel(r *reader.Reader) RootListModel {
	keys := r.RootKeys()
	return RootListModel{
		Reader:  r,
		Keys:    keys,
		Visible: keys,
		Height:  10,
	}
}

func (m RootListModel) Init() tea.Cmd {
	return nil
}

func (m RootListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "/":
			m.Filtering = true
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Visible) == 0 {
				return m, nil
			}
			m.Selected = m.Visible[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		// Leave room for the header and the field pane.
		m.Height = max(msg.Height/2-6, 3)
	}
	return m, nil
}

func (m RootListModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.Filtering = false
	case tea.KeyEsc:
		m.Filtering = false
		m.Filter = ""
	case tea.KeyBackspace:
		if m.Filter != "" {
			r := []rune(m.Filter)
			m.Filter = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		m.Filter += string(msg.Runes)
	default:
		return m, nil
	}
	m.applyFilter()
	return m, nil
}

// applyFilter recomputes Visible and resets the cursor.
func (m *RootListModel) applyFilter() {
	m.Cursor, m.Offset = 0, 0
	if m.Filter == "" {
		m.Visible = m.Keys
		return
	}
	needle := strings.ToLower(m.Filter)
	m.Visible = nil
	for _, k := range m.Keys {
		if strings.Contains(strings.ToLower(k), needle) {
			m.Visible = append(m.Visible, k)
		}
	}
}

func (m RootListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Roots"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  / filter  ⏎ select  q quit"))
	b.WriteString("\n")
	if m.Filtering || m.Filter != "" {
		b.WriteString(listFilterStyle.Render("/" + m.Filter))
		if m.Filtering {
			b.WriteString(listDimStyle.Render("▏"))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.Visible) == 0 {
		b.WriteString(listDimStyle.Render("  no matching roots"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Visible))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		key := m.Visible[i]
		entry, _ := m.Reader.Root(key)

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, key, m.inputCount(entry), m.outputCount(entry)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Root", "Args", "Selects").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Visible))))
	b.WriteString("\n\n")
	b.WriteString(m.fieldPane(m.Visible[m.Cursor]))

	return b.String()
}

// fieldPane lists the input fields of the root's argument node.
func (m RootListModel) fieldPane(key string) string {
	entry, _ := m.Reader.Root(key)
	node, ok := m.Reader.InputNode(entry.ArgsNodeID)
	if !ok || len(node.Edges) == 0 {
		return listDimStyle.Render("  " + key + " takes no parameterizable arguments")
	}

	rows := [][]string{}
	for _, field := range sortedFieldIDs(node.Edges) {
		e := node.Edges[field]
		name, _ := m.Reader.String(field)
		scalars, enum := "", ""
		if e.ScalarMask != 0 {
			scalars = e.ScalarMask.String()
		}
		if e.EnumNameIndex != nil {
			enum, _ = m.Reader.String(*e.EnumNameIndex)
			if values, ok := m.Reader.EnumValues(e); ok {
				enum += " (" + strconv.Itoa(len(values)) + ")"
			}
		}
		if _, ok := m.Reader.InputNode(e.ChildNodeID); ok {
			name += " {…}"
		}
		rows = append(rows, []string{name, e.Flags.String(), scalars, enum})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Field", "Flags", "Scalars", "Enum").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}

func (m RootListModel) inputCount(e paramgraph.RootEntry) string {
	if n, ok := m.Reader.InputNode(e.ArgsNodeID); ok {
		return strconv.Itoa(len(n.Edges))
	}
	return "—"
}

func (m RootListModel) outputCount(e paramgraph.RootEntry) string {
	if n, ok := m.Reader.OutputNode(e.OutputNodeID); ok {
		return strconv.Itoa(len(n.Edges))
	}
	return "—"
}

func sortedFieldIDs(m map[int]paramgraph.InputEdge) []int {
	return slices.Sorted(maps.Keys(m))
}
