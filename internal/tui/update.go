package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/logger"
	"github.com/julianstephens/excusedex/internal/membership"
	"github.com/julianstephens/excusedex/internal/models"
	"github.com/julianstephens/excusedex/internal/tui/components/excuselist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Store events and resizes apply in every state
	switch msg := msg.(type) {
	case storeChangedMsg:
		m.reload()
		return m, waitForChange(m.changes)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.excuseList.SetSize(msg.Width-4, msg.Height-8)
	}

	// Handle Add Excuse State
	if m.state == constants.StateAddExcuse {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = constants.StateRecord
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			m.saveExcuse()
			m.state = constants.StateRecord
		case huh.StateAborted:
			m.state = constants.StateRecord
		}
		return m, tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case excuselist.AddExcuseMsg:
		m.excuseForm = newExcuseFormModel()
		m.form = NewExcuseForm(m.excuseForm, m.day.Format(constants.DateFormat))
		m.state = constants.StateAddExcuse
		m.status = ""
		return m, m.form.Init()

	case excuselist.DeleteExcuseMsg:
		m.excuseToDeleteID = msg.ID
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.state {
		case constants.StateOnboarding:
			if key.Matches(msg, m.keys.Enter) {
				m.dismissOnboarding()
			}
			return m, nil
		case constants.StateConfirmDelete:
			return m.updateConfirmDelete(msg)
		case constants.StateConfirmClear:
			return m.updateConfirmClear(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % constants.NumMainTabs
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + constants.NumMainTabs) % constants.NumMainTabs
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateRecord:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, m.keys.Left):
				m.shiftDay(-1)
				return m, nil
			case key.Matches(msg, m.keys.Right):
				m.shiftDay(1)
				return m, nil
			case key.Matches(msg, m.keys.Today):
				m.goToday()
				return m, nil
			}
		}
		m.excuseList, cmd = m.excuseList.Update(msg)
		cmds = append(cmds, cmd)
	case constants.StateCalendar:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, m.keys.Left):
				m.shiftDay(-1)
			case key.Matches(msg, m.keys.Right):
				m.shiftDay(1)
			case key.Matches(msg, m.keys.Up):
				m.shiftDay(-7)
			case key.Matches(msg, m.keys.Down):
				m.shiftDay(7)
			case key.Matches(msg, m.keys.PrevMon):
				m.selectMonth(-1)
			case key.Matches(msg, m.keys.NextMon):
				m.selectMonth(1)
			case key.Matches(msg, m.keys.Today):
				m.goToday()
			case key.Matches(msg, m.keys.Enter):
				m.state = constants.StateRecord
			}
		}
	case constants.StateStats:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, m.keys.Left):
				m.shiftMonth(-1)
			case key.Matches(msg, m.keys.Right):
				m.shiftMonth(1)
			case key.Matches(msg, m.keys.Today):
				m.goToday()
			}
		}
	case constants.StateSettings:
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Clear) {
			m.previousState = m.state
			m.state = constants.StateConfirmClear
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		if err := m.store.DeleteExcuse(m.excuseToDeleteID); err != nil {
			m.status = fmt.Sprintf("Failed to delete excuse #%d: %v", m.excuseToDeleteID, err)
		} else {
			m.status = fmt.Sprintf("✓ Deleted excuse #%d", m.excuseToDeleteID)
			m.reload()
		}
		m.excuseToDeleteID = 0
		m.state = m.previousState
	case key.Matches(msg, m.keys.Cancel):
		m.excuseToDeleteID = 0
		m.state = m.previousState
	}
	return m, nil
}

func (m Model) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.clearAll()
		m.state = m.previousState
	case key.Matches(msg, m.keys.Cancel):
		m.state = m.previousState
	}
	return m, nil
}

func (m *Model) dismissOnboarding() {
	m.prefs.FirstRun = false
	if err := m.store.SavePreferences(m.prefs); err != nil {
		logger.Warn("Failed to save preferences", "error", err)
		m.err = err
	}
	m.state = constants.StateRecord
}

// saveExcuse stores the completed form for the selected day, then runs the
// ad and review gates.
func (m *Model) saveExcuse() {
	fm := m.excuseForm
	e := models.Excuse{
		Date:     m.day.Format(constants.DateFormat),
		Task:     fm.Task,
		Reason:   fm.Reason,
		Category: fm.Category,
		Score:    fm.Score,
	}.Normalize()
	if err := e.Validate(); err != nil {
		m.status = "Not saved: " + err.Error()
		return
	}

	id, err := m.store.AddExcuse(e)
	if err != nil {
		m.status = fmt.Sprintf("Failed to save excuse: %v", err)
		return
	}
	m.status = fmt.Sprintf("✓ Excuse #%d saved for %s", id, e.Date)

	prefs, showAd := membership.ShouldShowAd(m.prefs)
	if showAd {
		m.status += "  📺 Sponsored: go premium to skip ads."
	}
	if total, err := m.store.CountExcuses(); err == nil {
		var askReview bool
		prefs, askReview = membership.ShouldRequestReview(prefs, total)
		if askReview {
			m.status += fmt.Sprintf("  ⭐ %d excuses logged! Consider leaving a review.", total)
		}
	}
	if err := m.store.SavePreferences(prefs); err != nil {
		logger.Warn("Failed to save preferences after save", "error", err)
	}

	m.reload()
}

// clearAll snapshots, removes every record and resets the ad counter.
func (m *Model) clearAll() {
	if m.snapshot != nil {
		m.snapshot()
	}
	n, err := m.store.DeleteAllExcuses()
	if err != nil {
		m.status = fmt.Sprintf("Failed to clear excuses: %v", err)
		return
	}
	m.prefs.SaveCount = 0
	if err := m.store.SavePreferences(m.prefs); err != nil {
		logger.Warn("Failed to save preferences", "error", err)
	}
	m.status = fmt.Sprintf("✓ Deleted %d excuses", n)
	m.reload()
}
