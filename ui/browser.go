package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/montrey/jump/search"
	"github.com/montrey/jump/store"
)

// Styles used by the browser, bound to one lipgloss renderer.
type Styles struct {
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Match    lipgloss.Style
	Meta     lipgloss.Style
	Help     lipgloss.Style
}

// NewStyles builds the browser styles for output w.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Cursor:   r.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Selected: r.NewStyle().Bold(true),
		Match:    r.NewStyle().Foreground(lipgloss.Color("212")).Underline(true),
		Meta:     r.NewStyle().Foreground(lipgloss.Color("240")),
		Help:     r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// BrowserModel lists recorded directories, most recent first, and lets the
// user narrow the list by typing.
type BrowserModel struct {
	input    textinput.Model
	dirs     []store.Dir
	results  []search.FilterResult
	cursor   int
	offset   int
	width    int
	height   int
	styles   Styles
	selected string
}

// NewBrowserModel creates a browser over dirs, which should already be in
// display order.
func NewBrowserModel(dirs []store.Dir, styles Styles) BrowserModel {
	ti := textinput.New()
	ti.Placeholder = "Filter history..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	return BrowserModel{
		input:   ti,
		dirs:    dirs,
		results: search.Filter(dirs, ""),
		width:   80,
		height:  20,
		styles:  styles,
	}
}

// Selected returns the chosen path, or "" if the user quit.
func (m BrowserModel) Selected() string {
	return m.selected
}

func (m BrowserModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if len(m.results) > 0 {
				m.selected = m.results[m.cursor].Dir.Path
			}
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			m.clampScroll()
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			m.clampScroll()
			return m, nil
		}

		oldValue := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if newValue := m.input.Value(); newValue != oldValue {
			m.results = search.Filter(m.dirs, newValue)
			m.cursor = 0
			m.offset = 0
		}
		return m, cmd
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// listHeight is the number of rows left for entries under the input line
// and above the help line.
func (m BrowserModel) listHeight() int {
	return max(m.height-2, 1)
}

func (m *BrowserModel) clampScroll() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

func (m BrowserModel) View() string {
	var lines []string
	if len(m.results) == 0 {
		lines = append(lines, m.styles.Meta.Render("  (no matching directories)"))
	}

	end := min(m.offset+m.listHeight(), len(m.results))
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(m.results[i], i == m.cursor))
	}

	help := m.styles.Help.Render(fmt.Sprintf("%d/%d • ↑/↓: move • Enter: jump • Esc: quit", len(m.results), len(m.dirs)))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.input.View(),
		strings.Join(lines, "\n"),
		help,
	)
}

func (m BrowserModel) renderRow(r search.FilterResult, isCursor bool) string {
	prefix := "  "
	if isCursor {
		prefix = m.styles.Cursor.Render("> ")
	}

	meta := m.styles.Meta.Render(fmt.Sprintf("%5d  %s  ", r.Dir.AccessCount, formatVisit(r.Dir.LastAccessed)))
	return prefix + meta + m.highlight(r, isCursor)
}

// highlight renders the path with the characters matched by the filter
// picked out.
func (m BrowserModel) highlight(r search.FilterResult, isCursor bool) string {
	matched := make(map[int]bool, len(r.Matches))
	for _, i := range r.Matches {
		matched[i] = true
	}

	var b strings.Builder
	for i, c := range r.Dir.Path {
		switch {
		case matched[i]:
			b.WriteString(m.styles.Match.Render(string(c)))
		case isCursor:
			b.WriteString(m.styles.Selected.Render(string(c)))
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

func formatVisit(unix int64) string {
	if unix == 0 {
		return "never     "
	}
	return time.Unix(unix, 0).Format("2006-01-02")
}

// Browse runs the browser with input from in, drawing on out, and returns
// the chosen path ("" when the user quit without choosing).
func Browse(dirs []store.Dir, in io.Reader, out io.Writer) (string, error) {
	m := NewBrowserModel(dirs, NewStyles(out))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out))

	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("browser: %w", err)
	}
	if bm, ok := finalModel.(BrowserModel); ok {
		return bm.Selected(), nil
	}
	return "", nil
}
