// Package achievements evaluates the gamified achievement table and the
// user title over the full list of excuses. Nothing here is persisted.
package achievements

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/models"
)

const (
	LongReasonRunes  = 100
	ShortReasonRunes = 5
	OneWayThreshold  = 10
	StreakThreshold  = 3
	JackpotThreshold = 777
	defaultUserTitle = "Excuse Newborn"
)

type rule struct {
	id          string
	title       string
	description string
	hidden      bool
	unlocked    func(f facts) bool
}

// facts are derived once per Evaluate call and shared by every rule.
type facts struct {
	excuses   []models.Excuse
	weekdays  map[time.Weekday]bool
	maxStreak int
	perCat    map[constants.Category]int
}

var rules = []rule{
	{
		id: "monday", title: "Terminal Case of Mondays",
		description: "Every week starts with an excuse.",
		unlocked:    func(f facts) bool { return f.weekdays[time.Monday] },
	},
	{
		id: "friday", title: "Friday Escape Artist",
		description: "Nobody can stop you at this hour.",
		unlocked:    func(f facts) bool { return f.weekdays[time.Friday] },
	},
	{
		id: "3days", title: "Three-Day Resolve Master",
		description: "Excuses three days in a row. Impressive persistence.",
		unlocked:    func(f facts) bool { return f.maxStreak >= StreakThreshold },
	},
	{
		id: "long_text", title: "Epic Storyteller",
		description: "Your excuse has a perfect plot arc. Are you a novelist?",
		unlocked: func(f facts) bool {
			return anyExcuse(f.excuses, func(e models.Excuse) bool {
				return utf8.RuneCountInString(e.Reason) >= LongReasonRunes
			})
		},
	},
	{
		id: "short_text", title: "Essence of Laziness",
		description: "No need for many words. Fair enough.",
		unlocked: func(f facts) bool {
			return anyExcuse(f.excuses, func(e models.Excuse) bool {
				return strings.TrimSpace(e.Reason) != "" && utf8.RuneCountInString(e.Reason) <= ShortReasonRunes
			})
		},
	},
	{
		id: "one_way", title: "Single-Minded Life",
		description: "You dig one well only. A true excuse craftsman.",
		unlocked: func(f facts) bool {
			for _, n := range f.perCat {
				if n >= OneWayThreshold {
					return true
				}
			}
			return false
		},
	},
	{
		id: "first_step", title: "First Dark Chapter",
		description: "The first page of the encyclopedia is written.",
		unlocked:    func(f facts) bool { return len(f.excuses) > 0 },
	},
	{
		id: "rain", title: "It Was the Rain",
		description: "Blaming the weather is a classic. Even the sky is on your side.",
		hidden:      true,
		unlocked: func(f facts) bool {
			return anyExcuse(f.excuses, func(e models.Excuse) bool {
				return mentions(e.Reason, "비", "날씨", "우산") || rainWords.MatchString(e.Reason)
			})
		},
	},
	{
		id: "tomorrow", title: "For Real Starting Tomorrow",
		description: "Diets and studying always start tomorrow.",
		hidden:      true,
		unlocked: func(f facts) bool {
			return anyExcuse(f.excuses, func(e models.Excuse) bool {
				return mentions(e.Reason, "내일") || tomorrowWords.MatchString(e.Reason)
			})
		},
	},
	{
		id: "jackpot", title: "777 Jackpot",
		description: "Keep making excuses and luck will find you.",
		hidden:      true,
		unlocked:    func(f facts) bool { return len(f.excuses) >= JackpotThreshold },
	},
}

// Evaluate runs the rule table in order over all excuses.
func Evaluate(excuses []models.Excuse) []models.Achievement {
	f := deriveFacts(excuses)

	out := make([]models.Achievement, 0, len(rules))
	for _, r := range rules {
		out = append(out, models.Achievement{
			ID:          r.id,
			Title:       r.title,
			Description: r.description,
			Hidden:      r.hidden,
			Unlocked:    r.unlocked(f),
		})
	}
	return out
}

// Progress returns the number of unlocked achievements and the total.
func Progress(list []models.Achievement) (unlocked, total int) {
	for _, a := range list {
		if a.Unlocked {
			unlocked++
		}
	}
	return unlocked, len(list)
}

// TitleFor maps a monthly excuse count to the user's title.
func TitleFor(monthlyCount int) string {
	switch {
	case monthlyCount >= 30:
		return "Legendary Excuse Artisan"
	case monthlyCount >= 20:
		return "Excuse Vending Machine"
	case monthlyCount >= 15:
		return "Excuses Like Breathing"
	case monthlyCount >= 10:
		return "Logic Creator"
	case monthlyCount >= 5:
		return "Improvisation Prospect"
	case monthlyCount >= 2:
		return "Cute Excuse Sprout"
	default:
		return defaultUserTitle
	}
}

func deriveFacts(excuses []models.Excuse) facts {
	f := facts{
		excuses:  excuses,
		weekdays: make(map[time.Weekday]bool),
		perCat:   make(map[constants.Category]int),
	}

	seen := make(map[time.Time]struct{})
	var days []time.Time
	for _, e := range excuses {
		f.perCat[e.Category]++

		// Unparsable dates take no part in the calendar rules
		d, err := e.Day()
		if err != nil {
			continue
		}
		f.weekdays[d.Weekday()] = true
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			days = append(days, d)
		}
	}

	f.maxStreak = longestRun(days)
	return f
}

// longestRun returns the length of the longest run of consecutive calendar
// days among distinct dates.
func longestRun(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
	}
	return best
}

func anyExcuse(excuses []models.Excuse, pred func(models.Excuse) bool) bool {
	for _, e := range excuses {
		if pred(e) {
			return true
		}
	}
	return false
}

// English keywords match whole words so "train" or "brain" do not count as
// rain. Korean keywords stay substrings since particles attach to the noun.
var (
	rainWords     = regexp.MustCompile(`(?i)\b(rain|rains|rainy|raining|rained|rainstorm|weather|umbrella|umbrellas)\b`)
	tomorrowWords = regexp.MustCompile(`(?i)\btomorrow\b`)
)

func mentions(text string, needles ...string) bool {
	lower := strings.ToLower(text)
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}
