package scoring

// Ranking tiers. Thresholds compare the absolute point total against the
// rubric's canonical 100-point scale, not the percentage.
const (
	RankExcellent = "Xuất Sắc"
	RankPass      = "Đạt Yêu Cầu"
	RankFail      = "Không Đạt"

	// RankNone is the placeholder for an all-zero, no-penalty state where no
	// rank is assigned.
	RankNone = "---"
)

// penaltyPoints is the flat deduction applied when any item anywhere in the
// rubric is rated WEAK. It is boolean, not cumulative.
const penaltyPoints = 30.0

// CategoryScore is one per-category subtotal within a result.
type CategoryScore struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Points       float64 `json:"points"`
	MaxPoints    float64 `json:"maxPoints"`
}

// Result is the computed output of a full evaluation. It has no independent
// persistence: it is a pure function of (rubric, ratings) and is recomputed
// whenever the ratings change.
type Result struct {
	TotalPoints    float64         `json:"totalPoints"`
	TotalMax       float64         `json:"totalMax"`
	Percent        float64         `json:"percent"`
	PenaltyApplied bool            `json:"penaltyApplied"`
	Breakdown      []CategoryScore `json:"breakdown"`
	Ranking        string          `json:"ranking"`
}
