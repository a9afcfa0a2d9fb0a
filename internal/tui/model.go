package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/logger"
	"github.com/julianstephens/excusedex/internal/models"
	"github.com/julianstephens/excusedex/internal/storage"
	"github.com/julianstephens/excusedex/internal/tui/components/excuselist"
	"github.com/julianstephens/excusedex/internal/utils"
)

// Options wires the model to its environment. All fields are optional.
type Options struct {
	// Changes delivers one event per external store change. Nil disables live reload.
	Changes <-chan struct{}
	// Now defaults to time.Now.
	Now func() time.Time
	// Snapshot runs before delete-all.
	Snapshot func()
}

type ExcuseFormModel struct {
	Task     string
	Reason   string
	Category constants.Category
	Score    int
}

// storeChangedMsg is sent when the database changed outside this model.
type storeChangedMsg struct{}

type Model struct {
	store    storage.Provider
	changes  <-chan struct{}
	now      func() time.Time
	snapshot func()

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	excuseList    excuselist.Model
	form          *huh.Form
	excuseForm    *ExcuseFormModel

	prefs   models.Preferences
	excuses []models.Excuse
	day     time.Time // selected day on the Record tab
	month   time.Time // month shown on Calendar and Stats

	excuseToDeleteID int64
	status           string
	err              error
	quitting         bool
	width            int
	height           int
}

func NewModel(store storage.Provider, opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		store:      store,
		changes:    opts.Changes,
		now:        now,
		snapshot:   opts.Snapshot,
		state:      constants.StateRecord,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		excuseList: excuselist.New(0, 0),
	}

	m.reload()
	m.goToday()
	if m.prefs.FirstRun {
		m.state = constants.StateOnboarding
	}
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateRecord:
		keys = append(keys, m.keys.Left, m.keys.Right, m.keys.Add, m.keys.Delete)
	case constants.StateCalendar:
		keys = append(keys, m.keys.Left, m.keys.Right, m.keys.Up, m.keys.Down, m.keys.PrevMon, m.keys.NextMon, m.keys.Enter)
	case constants.StateStats:
		keys = append(keys, m.keys.Left, m.keys.Right, m.keys.Today)
	case constants.StateSettings:
		keys = append(keys, m.keys.Clear)
	case constants.StateOnboarding:
		keys = []key.Binding{m.keys.Enter, m.keys.Quit}
	case constants.StateConfirmDelete, constants.StateConfirmClear:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Left, m.keys.Right, m.keys.Up, m.keys.Down, m.keys.PrevMon, m.keys.NextMon, m.keys.Today, m.keys.Enter}
	actions := []key.Binding{m.keys.Add, m.keys.Delete, m.keys.Clear}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

// waitForChange blocks on the next store event. A closed channel ends the loop.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// reload re-reads preferences and every record, then refreshes the day list.
func (m *Model) reload() {
	prefs, err := m.store.GetPreferences()
	if err != nil {
		logger.Warn("Failed to load preferences", "error", err)
		m.err = err
		prefs = models.DefaultPreferences()
	}
	m.prefs = prefs

	all, err := m.store.GetAllExcuses()
	if err != nil {
		logger.Warn("Failed to load excuses", "error", err)
		m.err = err
		all = nil
	}
	m.excuses = all
	m.refreshDay()
}

// refreshDay fills the Record list from the loaded records, newest first.
func (m *Model) refreshDay() {
	date := m.day.Format(constants.DateFormat)
	var day []models.Excuse
	for _, e := range m.excuses {
		if e.Date == date {
			day = append(day, e)
		}
	}
	m.excuseList.SetExcuses(day, m.prefs.IsPremium)
}

// today returns the current date in the user's timezone.
func (m Model) today() time.Time {
	loc, err := utils.LoadLocation(m.prefs.Timezone)
	if err != nil {
		loc = time.Local
	}
	t := m.now().In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (m *Model) goToday() {
	m.day = m.today()
	m.month = utils.StartOfMonth(m.day)
	m.refreshDay()
}

func (m *Model) shiftDay(n int) {
	m.day = m.day.AddDate(0, 0, n)
	m.month = utils.StartOfMonth(m.day)
	m.refreshDay()
}

// selectMonth moves the selected day to the same day of an adjacent month,
// clamped to that month's length.
func (m *Model) selectMonth(n int) {
	month := utils.AddMonths(m.month, n)
	day := min(m.day.Day(), utils.DaysInMonth(month))
	m.day = time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.UTC)
	m.month = month
	m.refreshDay()
}

func (m *Model) shiftMonth(n int) {
	m.month = utils.AddMonths(m.month, n)
}
