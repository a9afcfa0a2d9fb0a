package excuselist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/excusedex/internal/membership"
	"github.com/julianstephens/excusedex/internal/models"
)

type AddExcuseMsg struct{}

type DeleteExcuseMsg struct {
	ID int64
}

const sponsoredTitle = "── Sponsored ──"

type Item struct {
	Excuse    models.Excuse
	Sponsored bool
}

func (i Item) Title() string {
	if i.Sponsored {
		return sponsoredTitle
	}
	return fmt.Sprintf("#%d %s", i.Excuse.ID, i.Excuse.Task)
}

func (i Item) Description() string {
	if i.Sponsored {
		return "Premium members never see this row."
	}
	return fmt.Sprintf("%s | %s | %s",
		i.Excuse.Reason,
		models.CategoryLabel(i.Excuse.Category),
		strings.Repeat("★", i.Excuse.Score))
}

func (i Item) FilterValue() string { return i.Excuse.Task + " " + i.Excuse.Reason }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Excuses"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

// SetExcuses replaces the rows. Free users get a sponsored row at each ad slot.
func (m *Model) SetExcuses(excuses []models.Excuse, premium bool) {
	items := make([]list.Item, 0, len(excuses))
	for i, e := range excuses {
		items = append(items, Item{Excuse: e})
		if membership.IsAdSlot(i, premium) {
			items = append(items, Item{Sponsored: true})
		}
	}
	m.list.SetItems(items)
}

// Len returns the number of rows, sponsored rows included.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Lines renders every row on one line each, for compact views that do not
// need selection.
func (m Model) Lines() []string {
	items := m.list.Items()
	lines := make([]string, 0, len(items))
	for _, it := range items {
		i, ok := it.(Item)
		if !ok {
			continue
		}
		if i.Sponsored {
			lines = append(lines, sponsoredTitle)
			continue
		}
		lines = append(lines, i.Title()+"  "+i.Description())
	}
	return lines
}

// Selected returns the highlighted excuse. Sponsored rows select nothing.
func (m Model) Selected() (models.Excuse, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok || i.Sponsored {
		return models.Excuse{}, false
	}
	return i.Excuse, true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddExcuseMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteExcuseMsg{ID: e.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  Nothing logged for this day.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
