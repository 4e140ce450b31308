package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/today/internal/core"
	"github.com/valter-silva-au/today/pkg/models"
)

type screenMode int

const (
	modeList screenMode = iota
	modeInput
	modeConfirmClear
)

// taskScreenModel is the interactive screen. It owns its ViewController;
// all list state lives in the TaskStore behind it.
type taskScreenModel struct {
	view   *core.ViewController
	input  textinput.Model
	mode   screenMode
	cursor int
	title  string
	status string
	width  int
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("19")).
			Padding(0, 1)

	filterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	activeFilterStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("16")).
				Background(lipgloss.Color("214")).
				Padding(0, 1)

	rowStyle      = lipgloss.NewStyle().PaddingLeft(2)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	doneTaskStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newTaskScreenModel(view *core.ViewController, title string) taskScreenModel {
	ti := textinput.New()
	ti.Placeholder = "Write a task"
	ti.CharLimit = 256
	ti.Width = 40
	ti.Prompt = "+ "

	if title == "" {
		title = "Today's tasks"
	}
	return taskScreenModel{
		view:  view,
		input: ti,
		mode:  modeList,
		title: title,
	}
}

func (m taskScreenModel) Init() tea.Cmd {
	return nil
}

func (m taskScreenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeInput:
			return m.updateInput(msg)
		case modeConfirmClear:
			return m.updateConfirmClear(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m taskScreenModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "a", "i", "n":
		m.mode = modeInput
		cmd := m.input.Focus()
		return m, cmd
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case " ", "enter", "x":
		m.view.OnToggle(m.cursor)
		m.clampCursor()
	case "1":
		m.setFilter(models.FilterAll)
	case "2":
		m.setFilter(models.FilterCompleted)
	case "3":
		m.setFilter(models.FilterPending)
	case "tab":
		m.setFilter(nextFilter(m.view.Filter(), 1))
	case "shift+tab":
		m.setFilter(nextFilter(m.view.Filter(), -1))
	case "C":
		if m.view.Store().Len() > 0 {
			m.mode = modeConfirmClear
		}
	}
	return m, nil
}

func (m taskScreenModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	case "enter":
		if !m.view.OnAdd(m.input.Value()) {
			return m, nil
		}
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		m.status = "Added."
		m.clampCursor()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m taskScreenModel) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeList
	switch msg.String() {
	case "y", "Y":
		m.view.OnClearAll()
		m.cursor = 0
		m.status = "Cleared."
	default:
		m.status = "Kept."
	}
	return m, nil
}

func (m *taskScreenModel) setFilter(f models.Filter) {
	m.view.SetFilter(f)
	m.clampCursor()
}

// clampCursor keeps the cursor on a visible row after the view shrinks.
func (m *taskScreenModel) clampCursor() {
	n := len(m.view.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func nextFilter(current models.Filter, step int) models.Filter {
	all := models.Filters()
	for i, f := range all {
		if f == current {
			return all[(i+step+len(all))%len(all)]
		}
	}
	return models.FilterAll
}

func (m taskScreenModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.renderFilters())
	b.WriteString("\n\n")
	b.WriteString(m.renderTasks())
	b.WriteString("\n")

	switch m.mode {
	case modeInput:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter: add | esc: cancel"))
	case modeConfirmClear:
		b.WriteString(warnStyle.Render(fmt.Sprintf("Clear all %d task(s)? [y/N]", m.view.Store().Len())))
	default:
		if m.status != "" {
			b.WriteString(helpStyle.Render(m.status))
			b.WriteString("\n")
		}
		c := m.view.Store().Counts()
		b.WriteString(helpStyle.Render(fmt.Sprintf("%d pending, %d completed", c.Pending, c.Completed)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("a: add | space: toggle | 1/2/3 or tab: filter | C: clear all | q: quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m taskScreenModel) renderFilters() string {
	tabs := make([]string, 0, 3)
	for _, f := range models.Filters() {
		style := filterStyle
		if f == m.view.Filter() {
			style = activeFilterStyle
		}
		tabs = append(tabs, style.Render(f.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m taskScreenModel) renderTasks() string {
	var b strings.Builder
	i := 0
	for t := range m.view.VisibleTasks() {
		pointer := "  "
		if i == m.cursor && m.mode == modeList {
			pointer = cursorStyle.Render("> ")
		}
		text := t.Text
		if t.Done {
			text = doneTaskStyle.Render(text)
		}
		b.WriteString(rowStyle.Render(fmt.Sprintf("%s%s %s", pointer, checkbox(t.Done), text)))
		b.WriteString("\n")
		i++
	}
	if i == 0 {
		b.WriteString(rowStyle.Render(emptyStyle.Render("No tasks.")))
		b.WriteString("\n")
	}
	return b.String()
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive task screen",
	Long: `Open the interactive screen: the task list, the filter bar and an
entry field.

Keys:
  a        add a task (enter to submit, esc to cancel)
  j/k      move the cursor
  space    toggle the task under the cursor
  1 2 3    show All, Completed or Pending (tab cycles)
  C        clear all tasks (asks y/N)
  q        quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := newView()
		if err != nil {
			return err
		}

		// The alternate screen owns the terminal; send log output to a file.
		if Logger != nil && BasePath != "" {
			if f, err := os.OpenFile(filepath.Join(BasePath, "today.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); err == nil {
				Logger.SetOutput(f)
				defer func() {
					Logger.SetOutput(os.Stderr)
					_ = f.Close()
				}()
			}
		}

		title := ""
		if Config != nil {
			title = Config.UI.Title
		}
		p := tea.NewProgram(newTaskScreenModel(view, title), tea.WithAltScreen())
		_, err = p.Run()
		flushSaves(cmd)
		return err
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
