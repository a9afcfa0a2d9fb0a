// Package report renders calendars, statistics and the achievement gallery
// as plain terminal text shared by the CLI and the TUI.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/excusedex/internal/achievements"
	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/membership"
	"github.com/julianstephens/excusedex/internal/models"
	"github.com/julianstephens/excusedex/internal/stats"
	"github.com/julianstephens/excusedex/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	markedDayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	selectedDayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))

	unlockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

const (
	calendarCellWidth = 5
	barWidth          = 20
)

// CountsByDate groups records by date.
func CountsByDate(excuses []models.Excuse) map[string]int {
	counts := make(map[string]int)
	for _, e := range excuses {
		counts[e.Date]++
	}
	return counts
}

// Calendar renders a Sunday-first month grid. Days with records show their
// count, and selected (YYYY-MM-DD) is highlighted when it falls in the month.
func Calendar(month time.Time, counts map[string]int, selected string) string {
	first := utils.StartOfMonth(month)
	days := utils.DaysInMonth(first)

	var b strings.Builder
	b.WriteString(headerStyle.Render(first.Format("January 2006")))
	b.WriteString("\n")

	for _, wd := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		b.WriteString(mutedStyle.Render(pad(wd)))
	}
	b.WriteString("\n")

	offset := int(first.Weekday())
	b.WriteString(strings.Repeat(" ", offset*calendarCellWidth))
	for day := 1; day <= days; day++ {
		date := first.AddDate(0, 0, day-1)
		key := date.Format(constants.DateFormat)

		cell := fmt.Sprintf("%2d", day)
		if n := counts[key]; n > 0 {
			cell = fmt.Sprintf("%2d·%d", day, n)
		}
		cell = pad(cell)
		switch {
		case key == selected:
			cell = selectedDayStyle.Render(cell)
		case counts[key] > 0:
			cell = markedDayStyle.Render(cell)
		}
		b.WriteString(cell)

		if (offset+day)%7 == 0 && day != days {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

func pad(s string) string {
	width := lipgloss.Width(s)
	if width >= calendarCellWidth {
		return s
	}
	return s + strings.Repeat(" ", calendarCellWidth-width)
}

// Bar renders count as a proportional bar against max.
func Bar(count, max, width int) string {
	if max <= 0 || count <= 0 {
		return ""
	}
	n := count * width / max
	if n == 0 {
		n = 1
	}
	return barStyle.Render(strings.Repeat("█", n))
}

// Stats renders a monthly summary.
func Stats(s stats.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", headerStyle.Render("Statistics for "+s.MonthKey))
	fmt.Fprintf(&b, "Title:            %s\n", s.Title)
	fmt.Fprintf(&b, "This month:       %d excuses\n", s.MonthlyCount)
	fmt.Fprintf(&b, "Average candor:   %.1f / %d\n", s.MonthlyAverage, constants.MaxScore)
	fmt.Fprintf(&b, "Top category:     %s\n", topCategoryLabel(s.TopCategory))
	fmt.Fprintf(&b, "All time:         %d excuses\n", s.TotalCount)

	if len(s.Categories) > 0 {
		fmt.Fprintf(&b, "\n%s\n", headerStyle.Render("Categories"))
		for _, c := range s.Categories {
			fmt.Fprintf(&b, "  %-26s %3d  %5.1f%%  %s\n",
				models.CategoryLabel(c.Category), c.Count, c.Percentage*100, Bar(c.Count, s.MonthlyCount, barWidth))
		}
	}

	fmt.Fprintf(&b, "\n%s\n", headerStyle.Render("Six-month trend"))
	max := 0
	for _, t := range s.Trend {
		if t.Count > max {
			max = t.Count
		}
	}
	for _, t := range s.Trend {
		fmt.Fprintf(&b, "  %s %s %3d  %s\n", t.Label, mutedStyle.Render(t.Month), t.Count, Bar(t.Count, max, barWidth))
	}

	if len(s.Words) > 0 {
		fmt.Fprintf(&b, "\n%s\n", headerStyle.Render("Frequent words"))
		words := make([]string, 0, len(s.Words))
		for _, w := range s.Words {
			words = append(words, fmt.Sprintf("%s(%d)", w.Word, w.Count))
		}
		fmt.Fprintf(&b, "  %s\n", strings.Join(words, "  "))
	}
	return b.String()
}

func topCategoryLabel(top string) string {
	if top == constants.NoTopCategory {
		return top
	}
	return models.CategoryLabel(constants.Category(top))
}

// Achievements renders the gallery. Without premium only progress is shown.
func Achievements(list []models.Achievement, premium bool) string {
	unlocked, total := achievements.Progress(list)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headerStyle.Render(fmt.Sprintf("Achievements %d/%d", unlocked, total)))
	if !premium {
		fmt.Fprintf(&b, "%s\n", mutedStyle.Render("Achievement details are a premium feature. See 'excusedex premium plans'."))
		return b.String()
	}
	b.WriteString("\n")
	for _, a := range list {
		mark := mutedStyle.Render("✗")
		title := a.DisplayTitle()
		if a.Unlocked {
			mark = unlockedStyle.Render("✓")
			title = unlockedStyle.Render(title)
		}
		fmt.Fprintf(&b, "  %s %s\n    %s\n", mark, title, mutedStyle.Render(a.DisplayDescription()))
	}
	return b.String()
}

// Plans renders the subscription catalogue, marking the active plan.
func Plans(plans []membership.Plan, prefs models.Preferences) string {
	var b strings.Builder
	for _, p := range plans {
		marker := " "
		if prefs.IsPremium && prefs.PremiumPlan == p.ID {
			marker = "*"
		}
		line := fmt.Sprintf("%s %-8s %-11s %s / %s", marker, p.ID, p.Name, p.Price(), p.Period)
		if p.Discount != "" {
			line += "  (" + p.Discount + ")"
		}
		if p.Best {
			line += "  " + markedDayStyle.Render("BEST")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
