// Package stats computes the monthly summary shown on the stats screen.
// Compute is a pure function of the excuse list and the reference month.
package stats

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/julianstephens/excusedex/internal/achievements"
	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/models"
	"github.com/julianstephens/excusedex/internal/utils"
)

var wordSplitter = regexp.MustCompile(constants.WordSplitRegexp)

// CategoryStat is one slice of the monthly category breakdown.
type CategoryStat struct {
	Category   constants.Category `json:"category"`
	Count      int                `json:"count"`
	Percentage float64            `json:"percentage"` // fraction of the month, 0..1
}

// MonthlyTrend is one bar of the six-month trend chart.
type MonthlyTrend struct {
	Month string `json:"month"` // YYYY-MM
	Label string `json:"label"` // short month name
	Count int    `json:"count"`
}

// WordFrequency is one entry of the word cloud.
type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Summary holds every statistic for one reference month.
type Summary struct {
	MonthKey       string          `json:"month"`
	TotalCount     int             `json:"total_count"`
	MonthlyCount   int             `json:"monthly_count"`
	MonthlyAverage float64         `json:"monthly_average"`
	Categories     []CategoryStat  `json:"categories"`
	TopCategory    string          `json:"top_category"`
	Trend          []MonthlyTrend  `json:"trend"`
	Words          []WordFrequency `json:"words"`
	Title          string          `json:"title"`
}

// Compute summarizes excuses for the month containing ref.
func Compute(excuses []models.Excuse, ref time.Time) Summary {
	monthKey := utils.MonthKey(ref)
	monthly := inMonth(excuses, monthKey)

	s := Summary{
		MonthKey:       monthKey,
		TotalCount:     len(excuses),
		MonthlyCount:   len(monthly),
		MonthlyAverage: average(monthly),
		Categories:     categoryBreakdown(monthly),
		TopCategory:    constants.NoTopCategory,
		Trend:          trend(excuses, ref),
		Words:          topWords(monthly, constants.TopWordsLimit),
		Title:          achievements.TitleFor(len(monthly)),
	}
	if len(s.Categories) > 0 {
		s.TopCategory = string(s.Categories[0].Category)
	}
	return s
}

func inMonth(excuses []models.Excuse, monthKey string) []models.Excuse {
	var out []models.Excuse
	for _, e := range excuses {
		if strings.HasPrefix(e.Date, monthKey) {
			out = append(out, e)
		}
	}
	return out
}

func average(excuses []models.Excuse) float64 {
	if len(excuses) == 0 {
		return 0
	}
	sum := 0
	for _, e := range excuses {
		sum += e.Score
	}
	return float64(sum) / float64(len(excuses))
}

// categoryBreakdown groups by category in first-occurrence order, then sorts
// by count descending. Ties keep first-occurrence order.
func categoryBreakdown(monthly []models.Excuse) []CategoryStat {
	if len(monthly) == 0 {
		return nil
	}

	index := make(map[constants.Category]int)
	var out []CategoryStat
	for _, e := range monthly {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, CategoryStat{Category: e.Category})
		}
		out[i].Count++
	}

	total := float64(len(monthly))
	for i := range out {
		out[i].Percentage = float64(out[i].Count) / total
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// trend counts all excuses for each of the six months ending at ref, oldest first.
func trend(excuses []models.Excuse, ref time.Time) []MonthlyTrend {
	out := make([]MonthlyTrend, 0, constants.TrendMonths)
	for i := 0; i < constants.TrendMonths; i++ {
		month := utils.AddMonths(ref, i-(constants.TrendMonths-1))
		key := utils.MonthKey(month)
		out = append(out, MonthlyTrend{
			Month: key,
			Label: month.Format("Jan"),
			Count: len(inMonth(excuses, key)),
		})
	}
	return out
}

// Tokens splits text into normalized words, dropping short words and stopwords.
func Tokens(text string) []string {
	var out []string
	for _, raw := range wordSplitter.Split(text, -1) {
		word := norm.NFC.String(raw)
		if utf8.RuneCountInString(word) < constants.MinWordRuneLen {
			continue
		}
		if IsStopword(word) {
			continue
		}
		out = append(out, word)
	}
	return out
}

// IsStopword reports whether word is a filler word, ignoring case.
func IsStopword(word string) bool {
	_, ok := constants.Stopwords[strings.ToLower(word)]
	return ok
}

func topWords(monthly []models.Excuse, limit int) []WordFrequency {
	if len(monthly) == 0 {
		return nil
	}

	parts := make([]string, 0, len(monthly))
	for _, e := range monthly {
		parts = append(parts, e.Task+" "+e.Reason)
	}

	index := make(map[string]int)
	var out []WordFrequency
	for _, w := range Tokens(strings.Join(parts, " ")) {
		i, ok := index[w]
		if !ok {
			i = len(out)
			index[w] = i
			out = append(out, WordFrequency{Word: w})
		}
		out[i].Count++
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
