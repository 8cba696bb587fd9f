package cli

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/brianndofor/diffhtml/internal/diff"
)

type pickModel struct {
	sections []diff.FileSection
	chosen   map[int]bool
	list     list.Model
	search   textinput.Model
	query    string
	done     bool
	width    int
	height   int
}

type sectionItem struct {
	index   int
	section diff.FileSection
	chosen  bool
	added   int
	removed int
}

func (i sectionItem) Title() string {
	mark := "[ ]"
	if i.chosen {
		mark = "[x]"
	}
	return fmt.Sprintf("%s %s", mark, i.section.Name)
}

func (i sectionItem) Description() string {
	return fmt.Sprintf("+%d -%d  %s", i.added, i.removed, i.section.Header)
}

func (i sectionItem) FilterValue() string {
	return i.section.Name
}

// sectionNames adapts sections to fuzzy.Source.
type sectionNames []diff.FileSection

func (s sectionNames) String(i int) string { return s[i].Name }
func (s sectionNames) Len() int            { return len(s) }

func newPickModel(sections []diff.FileSection) pickModel {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	listModel := list.New([]list.Item{}, delegate, 0, 0)
	listModel.Title = "Files"
	listModel.SetShowStatusBar(false)
	listModel.SetShowHelp(false)
	listModel.SetFilteringEnabled(false)

	search := textinput.New()
	search.Placeholder = "type to filter"
	search.Prompt = "Filter: "
	search.Focus()

	m := pickModel{
		sections: sections,
		chosen:   make(map[int]bool),
		list:     listModel,
		search:   search,
	}
	m.applyFilter()
	return m
}

// applyFilter rebuilds the visible list. An empty query keeps diff order;
// otherwise items are ranked by fuzzy match score.
func (m *pickModel) applyFilter() {
	query := m.search.Value()
	var indexes []int
	if query == "" {
		for i := range m.sections {
			indexes = append(indexes, i)
		}
	} else {
		for _, match := range fuzzy.FindFrom(query, sectionNames(m.sections)) {
			indexes = append(indexes, match.Index)
		}
	}
	items := make([]list.Item, 0, len(indexes))
	for _, i := range indexes {
		items = append(items, m.item(i))
	}
	m.list.SetItems(items)
	if len(items) > 0 {
		m.list.Select(0)
	}
	m.query = query
}

func (m *pickModel) item(i int) sectionItem {
	added, removed := sectionStats(m.sections[i].Body)
	return sectionItem{index: i, section: m.sections[i], chosen: m.chosen[i], added: added, removed: removed}
}

func (m *pickModel) toggleSelected() {
	selected, ok := m.list.SelectedItem().(sectionItem)
	if !ok {
		return
	}
	m.chosen[selected.index] = !m.chosen[selected.index]
	m.list.SetItem(m.list.Index(), m.item(selected.index))
}

// result returns the chosen sections in diff order. With nothing toggled
// the highlighted section is used.
func (m pickModel) result() []diff.FileSection {
	if !m.done {
		return nil
	}
	var indexes []int
	for i, ok := range m.chosen {
		if ok {
			indexes = append(indexes, i)
		}
	}
	if len(indexes) == 0 {
		if selected, ok := m.list.SelectedItem().(sectionItem); ok {
			indexes = append(indexes, selected.index)
		}
	}
	sort.Ints(indexes)
	out := make([]diff.FileSection, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, m.sections[i])
	}
	return out
}

func (m pickModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		listHeight := msg.Height - headerHeight - footerHeight - 2
		if listHeight < 4 {
			listHeight = 4
		}
		m.list.SetSize(msg.Width, listHeight)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.toggleSelected()
			return m, nil
		case "enter":
			if len(m.list.Items()) == 0 && len(m.chosen) == 0 {
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.query {
		m.applyFilter()
	}
	// Typed characters belong to the filter, not to the list's letter keys.
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyRunes {
		return m, cmd
	}
	var listCmd tea.Cmd
	m.list, listCmd = m.list.Update(msg)
	return m, tea.Batch(cmd, listCmd)
}

func (m pickModel) View() string {
	content := m.list.View()
	if len(m.list.Items()) == 0 {
		content = "No files match your filter."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.search.View(), content, m.footerView())
}

func (m pickModel) headerView() string {
	chosen := 0
	for _, ok := range m.chosen {
		if ok {
			chosen++
		}
	}
	return lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("diffhtml: %d of %d files chosen", chosen, len(m.sections)))
}

func (m pickModel) footerView() string {
	return "Type to filter • ↑/↓ to move • Tab to toggle • Enter to render • Esc to cancel"
}

func runPickTUI(sections []diff.FileSection) ([]diff.FileSection, error) {
	model := newPickModel(sections)
	program := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		return nil, err
	}
	finalPick, ok := finalModel.(pickModel)
	if !ok {
		return nil, fmt.Errorf("unexpected TUI model")
	}
	return finalPick.result(), nil
}
