package scoring

import (
	"fmt"
	"math"

	"kpireview/internal/rubric"
)

// UnknownCriterionError reports a rating level with no matching criterion on
// an item. It indicates a rubric/ratings mismatch and is a data error, not a
// user-facing condition; it should not occur once the rubric has passed
// validation.
type UnknownCriterionError struct {
	ItemID string
	Level  rubric.RatingLevel
}

func (e *UnknownCriterionError) Error() string {
	return fmt.Sprintf("criterion %s not found for item %s", e.Level, e.ItemID)
}

// round2 rounds to two decimal places, half away from zero at the second
// decimal. Rounding happens at three separate points (item, category, total)
// to absorb floating-point summation drift; collapsing them into one final
// pass changes results on large rubrics.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ScoreItem converts one rating level into the point value awarded for the
// item: MaxPoints scaled by the criterion's ScorePercent, rounded to two
// decimals. The level is checked defensively even though the enum is closed.
func ScoreItem(item rubric.Item, level rubric.RatingLevel) (float64, error) {
	criterion, ok := item.Criteria[level]
	if !ok {
		return 0, &UnknownCriterionError{ItemID: item.ID, Level: level}
	}
	return round2(item.MaxPoints * criterion.ScorePercent), nil
}

// ScoreCategory sums item scores for one category in item order. Unrated
// items (no entry, or no resolvable level) contribute nothing to points but
// their full MaxPoints to the denominator. Points get a second rounding pass
// after summation.
func ScoreCategory(cat rubric.Category, ratings Ratings) (CategoryScore, error) {
	cs := CategoryScore{CategoryID: cat.ID, CategoryName: cat.Name}
	for _, item := range cat.Items {
		if level, ok := ratings.resolveLevel(item); ok {
			points, err := ScoreItem(item, level)
			if err != nil {
				return CategoryScore{}, err
			}
			cs.Points += points
		}
		cs.MaxPoints += item.MaxPoints
	}
	cs.Points = round2(cs.Points)
	return cs, nil
}

// AnyWeak reports whether any item anywhere in the rubric resolves to a WEAK
// rating. The penalty predicate is global and boolean: one WEAK item triggers
// it exactly once no matter how many exist.
func AnyWeak(r rubric.Rubric, ratings Ratings) bool {
	for _, cat := range r {
		for _, item := range cat.Items {
			if level, ok := ratings.resolveLevel(item); ok && level == rubric.Weak {
				return true
			}
		}
	}
	return false
}

// ScoreTotal computes the full evaluation result for a rubric and a snapshot
// of ratings: per-category aggregation, the flat 30-point penalty when any
// item is WEAK, a floor clamp at zero, and the tiered ranking. It is a pure
// function; identical inputs yield identical results.
func ScoreTotal(r rubric.Rubric, ratings Ratings) (Result, error) {
	res := Result{
		Breakdown: make([]CategoryScore, 0, len(r)),
		Ranking:   RankNone,
	}

	for _, cat := range r {
		cs, err := ScoreCategory(cat, ratings)
		if err != nil {
			return Result{}, err
		}
		res.Breakdown = append(res.Breakdown, cs)
		res.TotalPoints += cs.Points
		res.TotalMax += cs.MaxPoints
	}

	res.PenaltyApplied = AnyWeak(r, ratings)
	if res.PenaltyApplied {
		res.TotalPoints -= penaltyPoints
	}
	if res.TotalPoints < 0 {
		res.TotalPoints = 0
	}
	res.TotalPoints = round2(res.TotalPoints)

	if res.TotalMax > 0 {
		res.Percent = math.Round(res.TotalPoints/res.TotalMax*10000) / 100
	}

	// A rank is assigned once anything has been scored, including the case
	// where the penalty drove the total back to zero.
	if res.TotalPoints > 0 || res.PenaltyApplied {
		switch {
		case res.TotalPoints >= 90:
			res.Ranking = RankExcellent
		case res.TotalPoints >= 70:
			res.Ranking = RankPass
		default:
			res.Ranking = RankFail
		}
	}

	return res, nil
}
