package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/tidydir/internal/cleaner"
	"github.com/fenilsonani/tidydir/internal/ui/styles"
	uiutils "github.com/fenilsonani/tidydir/internal/ui/utils"
	"github.com/fenilsonani/tidydir/pkg/utils"
)

// buttons in cursor order
var buttons = []struct {
	label       string
	decision    cleaner.Decision
	destructive bool
}{
	{"Yes", cleaner.DecisionYes, true},
	{"No", cleaner.DecisionNo, false},
	{"All", cleaner.DecisionAll, true},
	{"Skip all", cleaner.DecisionSkipAll, false},
}

// cursorNo is the default button, nothing is deleted by pressing enter
const cursorNo = 1

type decisionKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Yes     key.Binding
	No      key.Binding
	All     key.Binding
	SkipAll key.Binding
	Quit    key.Binding
}

func (k decisionKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No, k.All, k.SkipAll, k.Confirm}
}

func (k decisionKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Left, k.Right, k.Quit}}
}

func newDecisionKeyMap() decisionKeyMap {
	return decisionKeyMap{
		Left:    key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "previous")),
		Right:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next")),
		Confirm: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "choose")),
		Yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		No:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		All:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		SkipAll: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip all")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "esc", "q"), key.WithHelp("esc", "skip all")),
	}
}

// DecisionViewModel asks whether one empty folder or duplicate file
// should be deleted
type DecisionViewModel struct {
	request cleaner.Request
	size    int64
	cursor  int
	keys    decisionKeyMap
	help    help.Model
	width   int

	decision cleaner.Decision
	done     bool
}

// NewDecisionViewModel creates a new decision view model.
// size is shown for duplicates and ignored for folders.
func NewDecisionViewModel(req cleaner.Request, size int64, width int) *DecisionViewModel {
	if width == 0 {
		width = 80
	}

	h := help.New()
	h.Width = width

	return &DecisionViewModel{
		request: req,
		size:    size,
		cursor:  cursorNo,
		keys:    newDecisionKeyMap(),
		help:    h,
		width:   width,
	}
}

// Decision returns the chosen answer once the user picked one
func (m *DecisionViewModel) Decision() (cleaner.Decision, bool) {
	return m.decision, m.done
}

// Init initializes the decision view
func (m *DecisionViewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *DecisionViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.cursor = (m.cursor + len(buttons) - 1) % len(buttons)
		case key.Matches(msg, m.keys.Right):
			m.cursor = (m.cursor + 1) % len(buttons)
		case key.Matches(msg, m.keys.Confirm):
			return m.choose(buttons[m.cursor].decision)
		case key.Matches(msg, m.keys.Yes):
			return m.choose(cleaner.DecisionYes)
		case key.Matches(msg, m.keys.No):
			return m.choose(cleaner.DecisionNo)
		case key.Matches(msg, m.keys.All):
			return m.choose(cleaner.DecisionAll)
		case key.Matches(msg, m.keys.SkipAll), key.Matches(msg, m.keys.Quit):
			return m.choose(cleaner.DecisionSkipAll)
		}
	}

	return m, nil
}

func (m *DecisionViewModel) choose(d cleaner.Decision) (tea.Model, tea.Cmd) {
	m.decision = d
	m.done = true
	return m, tea.Quit
}

// View renders the decision view
func (m *DecisionViewModel) View() string {
	pathWidth := m.width - 14
	path := uiutils.TruncatePath(m.request.Path, pathWidth)

	if m.done {
		return fmt.Sprintf("%s %s\n", styles.DimStyle.Render(path), styles.BoldStyle.Render("→ "+m.decision.String()))
	}

	var b strings.Builder

	switch m.request.Kind {
	case cleaner.RequestDuplicate:
		b.WriteString(styles.TitleStyle.Render("Delete duplicate?"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			styles.CategoryStyle.Render("Duplicate:"),
			styles.FilePathStyle.Render(path),
			styles.FileSizeStyle.Render("("+utils.FormatBytes(m.size)+")")))
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			styles.CategoryStyle.Render("Original:"),
			styles.FilePathStyle.Render(uiutils.TruncatePath(m.request.Original, pathWidth))))
	default:
		b.WriteString(styles.TitleStyle.Render("Delete empty folder?"))
		b.WriteString("\n")
		b.WriteString("  " + styles.FilePathStyle.Render(path) + "\n")
	}
	b.WriteString("\n")

	rendered := make([]string, len(buttons))
	for i, btn := range buttons {
		rendered[i] = styles.Button("[ "+btn.label+" ]", i == m.cursor, btn.destructive)
	}
	b.WriteString(strings.Join(rendered, " "))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")

	return b.String()
}
