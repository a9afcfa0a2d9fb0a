package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/excusedex/internal/achievements"
	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/membership"
	"github.com/julianstephens/excusedex/internal/report"
	"github.com/julianstephens/excusedex/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateOnboarding:
		content = m.viewOnboarding()
	case constants.StateRecord:
		content = m.viewRecord()
	case constants.StateCalendar:
		content = m.viewCalendar()
	case constants.StateStats:
		content = docStyle.Render(report.Stats(stats.Compute(m.excuses, m.month)))
	case constants.StateAchievements:
		content = docStyle.Render(report.Achievements(achievements.Evaluate(m.excuses), membership.AchievementsUnlocked(m.prefs)))
	case constants.StateSettings:
		content = m.viewSettings()
	case constants.StateAddExcuse:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirm(fmt.Sprintf("Delete excuse #%d?", m.excuseToDeleteID))
	case constants.StateConfirmClear:
		content = m.viewConfirm("Delete every excuse? A snapshot is taken first.")
	}

	parts := []string{m.viewTabs(), content}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	if m.err != nil {
		parts = append(parts, dangerStyle.Render("Error: "+m.err.Error()))
	}
	parts = append(parts, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range constants.TabTitles {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewRecord() string {
	header := headerStyle.Render(fmt.Sprintf("%s (%s)", m.day.Format(constants.DateFormat), m.day.Weekday()))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, m.excuseList.View()))
}

func (m Model) viewCalendar() string {
	counts := report.CountsByDate(m.excuses)
	total, days := 0, 0
	prefix := m.month.Format(constants.MonthFormat)
	for date, n := range counts {
		if strings.HasPrefix(date, prefix) {
			total += n
			days++
		}
	}
	selected := m.day.Format(constants.DateFormat)
	parts := []string{
		report.Calendar(m.month, counts, selected),
		fmt.Sprintf("%d excuses on %d days", total, days),
		"",
		headerStyle.Render(fmt.Sprintf("%s (%s)", selected, m.day.Weekday())),
	}
	if lines := m.excuseList.Lines(); len(lines) > 0 {
		parts = append(parts, lines...)
	} else {
		parts = append(parts, "No excuses on this day.")
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewSettings() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", headerStyle.Render("Settings"))
	fmt.Fprintf(&b, "Timezone:       %s\n", m.prefs.Timezone)
	reminder := "off"
	if m.prefs.AlarmEnabled {
		reminder = "daily at " + m.prefs.ReminderTime
	}
	fmt.Fprintf(&b, "Reminder:       %s\n", reminder)
	premium := "free"
	if m.prefs.IsPremium {
		premium = "premium (" + m.prefs.PremiumPlan + ")"
	}
	fmt.Fprintf(&b, "Membership:     %s\n", premium)
	fmt.Fprintf(&b, "Edits made:     %d\n", m.prefs.EditCount)
	fmt.Fprintf(&b, "Total excuses:  %d\n\n", len(m.excuses))
	fmt.Fprintf(&b, "%s\n", headerStyle.Render("Plans"))
	b.WriteString(report.Plans(membership.Plans(), m.prefs))
	b.WriteString("\nUse the CLI to change preferences: excusedex prefs, excusedex remind, excusedex premium.\n")
	return docStyle.Render(b.String())
}

func (m Model) viewOnboarding() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			headerStyle.Render("Welcome to the Excuse Encyclopedia"),
			"",
			"Didn't get it done today? Write down why.",
			"Every excuse is collected, counted and ranked.",
			"",
			"[enter] Start",
			"[q] Quit",
		),
	)
}

func (m Model) viewConfirm(prompt string) string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(prompt),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
