package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxlayout/pkg/pipeline"
	"github.com/matzehuels/boxlayout/pkg/scene"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// inspectCommand creates the inspect command for browsing a layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "inspect [document|layout.json]",
		Short: "Browse the boxes of a layout interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.loadResult(cmd.Context(), args[0], noCache)
			if err != nil {
				return err
			}
			p := tea.NewProgram(newInspectModel(res), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// loadResult reads a layout.json file or lays out a document.
func (c *CLI) loadResult(ctx context.Context, input string, noCache bool) (*scene.Result, error) {
	if isResultFile(input) {
		return scene.ReadResultFile(input)
	}
	data, format, err := readDocument(input)
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", input, err)
	}
	runner, err := c.newRunner(noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()
	return runner.Layout(ctx, data, pipeline.Options{Format: format, Logger: c.Logger})
}

// =============================================================================
// inspectModel - Interactive box list
// =============================================================================

// inspectModel is the bubbletea model listing the boxes of a result.
type inspectModel struct {
	res    *scene.Result
	Cursor int
	Height int
	Offset int
}

func newInspectModel(res *scene.Result) inspectModel {
	return inspectModel{res: res, Height: 15}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.res.Boxes)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = len(m.res.Boxes) - 1
		case "p":
			m.Cursor = m.parentIndex()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m, nil
}

// parentIndex returns the row of the selected box's parent, or the
// cursor itself for the root.
func (m inspectModel) parentIndex() int {
	parent := m.res.Boxes[m.Cursor].Parent
	for i, b := range m.res.Boxes {
		if b.ID == parent {
			return i
		}
	}
	return m.Cursor
}

// Selected returns the box under the cursor.
func (m inspectModel) Selected() scene.BoxResult {
	return m.res.Boxes[m.Cursor]
}

func (m inspectModel) View() string {
	var b strings.Builder

	title := m.res.Name
	if title == "" {
		title = "layout"
	}
	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s  %dx%d", title, m.res.Width, m.res.Height)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  p parent  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.res.Boxes))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		bx := m.res.Boxes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		kind := bx.Kind
		if kind == "" {
			kind = "-"
		}
		rows = append(rows, []string{
			cursor,
			strings.Repeat("  ", bx.Depth) + bx.ID,
			kind,
			bx.Rect.String(),
			bx.Outer.String(),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Box", "Manager", "Rect", "Outer").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	sel := m.Selected()
	details := [][2]string{
		{"label", sel.DisplayLabel()},
		{"parent", sel.Parent},
		{"inner", sel.Inner.String()},
		{"color", sel.Color},
	}
	for _, d := range details {
		if d[1] == "" {
			continue
		}
		b.WriteString("  " + listDimStyle.Width(8).Render(d[0]) + StyleHighlight.Render(d[1]) + "\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.res.Boxes))))

	return b.String()
}
