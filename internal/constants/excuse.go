package constants

// Category is the fixed set of excuse categories
type Category string

const (
	CategoryHealth Category = "health"
	CategoryDaily  Category = "daily"
	CategoryGrowth Category = "growth"
	CategoryOther  Category = "other"

	DefaultCategory = CategoryOther

	MinScore     = 1
	MaxScore     = 5
	DefaultScore = 3

	// Stats constants
	TrendMonths     = 6
	TopWordsLimit   = 15
	MinWordRuneLen  = 2
	NoTopCategory   = "-"
	WordSplitRegexp = `[\s.,!?"'()]+`
)

// Categories lists every category in display order.
var Categories = []Category{CategoryHealth, CategoryDaily, CategoryGrowth, CategoryOther}

// CategoryLabels maps categories to their display names.
var CategoryLabels = map[Category]string{
	CategoryHealth: "Health & Life",
	CategoryDaily:  "Daily & Chores",
	CategoryGrowth: "Self-Improvement & Hobby",
	CategoryOther:  "Other",
}

// Stopwords are filler words excluded from word frequency counts. Lookups use
// the lower-cased token.
var Stopwords = map[string]struct{}{
	// Korean fillers ("too", "really", "just", "and", "so")
	"너무": {}, "진짜": {}, "그냥": {}, "하고": {}, "해서": {},
	"the": {}, "and": {}, "but": {}, "for": {}, "was": {}, "that": {},
	"this": {}, "too": {}, "just": {}, "really": {}, "so": {}, "to": {},
	"of": {}, "it": {}, "is": {}, "in": {}, "on": {}, "my": {}, "me": {},
}
