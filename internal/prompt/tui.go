package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/cgc/internal/theme"
	"github.com/muesli/reflow/truncate"
)

const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyCtrlC = "ctrl+c"
)

// TUI runs bubbletea pickers.
type TUI struct {
	In    io.Reader
	Out   io.Writer
	Theme *theme.Theme
}

func (t *TUI) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if t.In != nil {
		opts = append(opts, tea.WithInput(t.In))
	}
	if t.Out != nil {
		opts = append(opts, tea.WithOutput(t.Out))
	}
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to run picker: %w", err)
	}
	return final, nil
}

// Select implements Prompter.
func (t *TUI) Select(ctx context.Context, title string, items []string, defaultIndex int) (int, error) {
	if len(items) == 0 {
		return -1, errNoItems
	}
	final, err := t.run(ctx, newSelectModel(title, items, defaultIndex, t.Theme))
	if err != nil {
		return -1, err
	}
	m, ok := final.(*selectModel)
	if !ok || m.cancelled || m.chosen < 0 {
		return -1, ErrCancelled
	}
	return m.chosen, nil
}

// Confirm implements Prompter.
func (t *TUI) Confirm(ctx context.Context, message string, defaultYes bool) (bool, error) {
	final, err := t.run(ctx, newConfirmModel(message, defaultYes, t.Theme))
	if err != nil {
		return false, err
	}
	m, ok := final.(*confirmModel)
	if !ok || m.cancelled {
		return false, ErrCancelled
	}
	return m.answer, nil
}

// selectModel is a filterable list. Typing narrows the list, arrows move.
type selectModel struct {
	title    string
	items    []string
	filtered []int
	cursor   int
	offset   int
	filter   textinput.Model
	width    int
	height   int
	styles   theme.Styles
	chosen   int
	done     bool

	cancelled bool
}

func newSelectModel(title string, items []string, defaultIndex int, thm *theme.Theme) *selectModel {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.CharLimit = 100
	ti.Prompt = "> "
	ti.Focus()

	m := &selectModel{
		title:  title,
		items:  items,
		filter: ti,
		width:  60,
		height: 16,
		styles: theme.NewStyles(thm),
		chosen: -1,
	}
	m.applyFilter()
	m.cursor = clampDefault(defaultIndex, len(items))
	m.scrollToCursor()
	return m
}

func (m *selectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *selectModel) maxVisible() int {
	// title, filter, footer and spacing
	if v := m.height - 5; v > 1 {
		return v
	}
	return 1
}

func (m *selectModel) scrollToCursor() {
	maxVisible := m.maxVisible()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+maxVisible {
		m.offset = m.cursor - maxVisible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filter.Width = msg.Width - 4
		m.scrollToCursor()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case keyEnter:
			if m.cursor >= 0 && m.cursor < len(m.filtered) {
				m.chosen = m.filtered[m.cursor]
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		case keyEsc, keyCtrlC:
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "up", "ctrl+k", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
				m.scrollToCursor()
			}
			return m, nil
		case "down", "ctrl+j", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				m.scrollToCursor()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *selectModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.filtered = m.filtered[:0]
	for i, item := range m.items {
		if query == "" || strings.Contains(strings.ToLower(item), query) {
			m.filtered = append(m.filtered, i)
		}
	}
	m.cursor = 0
	m.offset = 0
}

func (m *selectModel) View() string {
	if m.done {
		return ""
	}
	lineWidth := m.width - 4
	if lineWidth < 10 {
		lineWidth = 10
	}

	lines := []string{m.styles.Title.Render(m.title), m.filter.View(), ""}
	if len(m.filtered) == 0 {
		lines = append(lines, m.styles.Muted.Italic(true).Render("No matches."))
	}
	end := m.offset + m.maxVisible()
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	for i := m.offset; i < end; i++ {
		label := truncate.StringWithTail(m.items[m.filtered[i]], uint(lineWidth), "…") //nolint:gosec
		if i == m.cursor {
			lines = append(lines, m.styles.Selected.Render(label))
			continue
		}
		lines = append(lines, m.styles.Item.Render(label))
	}
	lines = append(lines, "", m.styles.Muted.Render("↑/↓ to move • type to filter • Enter to select • Esc to cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// confirmModel is a two button yes/no dialog.
type confirmModel struct {
	message   string
	answer    bool
	styles    theme.Styles
	done      bool
	cancelled bool
}

func newConfirmModel(message string, defaultYes bool, thm *theme.Theme) *confirmModel {
	return &confirmModel{message: message, answer: defaultYes, styles: theme.NewStyles(thm)}
}

func (m *confirmModel) Init() tea.Cmd {
	return nil
}

func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.answer = !m.answer
	case "y", "Y":
		m.answer = true
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.answer = false
		m.done = true
		return m, tea.Quit
	case keyEnter:
		m.done = true
		return m, tea.Quit
	case keyEsc, keyCtrlC, "q":
		m.cancelled = true
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *confirmModel) View() string {
	if m.done {
		return ""
	}
	yes, no := m.styles.Muted.Render("[Yes]"), m.styles.Muted.Render("[No]")
	if m.answer {
		yes = m.styles.Selected.Render("[Yes]")
	} else {
		no = m.styles.Selected.Render("[No]")
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Item.Render(m.message),
		"",
		yes+"  "+no,
	)
	return m.styles.Box.Render(body) + "\n"
}
