package models

// Achievement is a derived flag computed from rule predicates over all excuses.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Hidden      bool   `json:"hidden"`
	Unlocked    bool   `json:"unlocked"`
}

// DisplayTitle hides the title of locked hidden achievements.
func (a Achievement) DisplayTitle() string {
	if a.Hidden && !a.Unlocked {
		return "???"
	}
	return a.Title
}

// DisplayDescription hides the description of locked hidden achievements.
func (a Achievement) DisplayDescription() string {
	if a.Hidden && !a.Unlocked {
		return "A hidden achievement. Keep making excuses to find it."
	}
	return a.Description
}
