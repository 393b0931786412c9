package rubric

// RatingLevel is the qualitative judgment assigned to one item.
type RatingLevel string

const (
	Good    RatingLevel = "GOOD"
	Average RatingLevel = "AVERAGE"
	Weak    RatingLevel = "WEAK"
)

// Levels returns every valid rating level in display order.
func Levels() []RatingLevel {
	return []RatingLevel{Good, Average, Weak}
}

// Valid reports whether l is a member of the closed rating-level set.
func (l RatingLevel) Valid() bool {
	switch l {
	case Good, Average, Weak:
		return true
	}
	return false
}

// Criterion holds the scoring weight and descriptive text for one
// (item, rating level) pair. ScorePercent is the fraction of the item's
// MaxPoints awarded at this level, in [0, 1].
type Criterion struct {
	Label        string  `json:"label" yaml:"label"`
	Description  string  `json:"description" yaml:"description"`
	ScorePercent float64 `json:"scorePercent" yaml:"score_percent"`
}

// Item is the atomic scored unit. Criteria must contain an entry for all
// three rating levels; the checklist is informational only.
type Item struct {
	ID        string                    `json:"id" yaml:"id"`
	Code      string                    `json:"code" yaml:"code"`
	Name      string                    `json:"name" yaml:"name"`
	MaxPoints float64                   `json:"maxPoints" yaml:"max_points"`
	Unit      string                    `json:"unit" yaml:"unit"`
	Checklist []string                  `json:"checklist" yaml:"checklist"`
	Criteria  map[RatingLevel]Criterion `json:"criteria" yaml:"criteria"`
}

// Category is a named, ordered group of items.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Items []Item `json:"items" yaml:"items"`
}

// Rubric is the full ordered sequence of categories. It is loaded once at
// startup and treated as read-only for the lifetime of the process.
type Rubric []Category

// TotalMax returns the sum of MaxPoints across every item in the rubric.
func (r Rubric) TotalMax() float64 {
	var total float64
	for _, cat := range r {
		for _, item := range cat.Items {
			total += item.MaxPoints
		}
	}
	return total
}

// ItemCount returns the number of items across all categories.
func (r Rubric) ItemCount() int {
	n := 0
	for _, cat := range r {
		n += len(cat.Items)
	}
	return n
}
