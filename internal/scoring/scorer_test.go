package scoring

import (
	"testing"

	"kpireview/internal/rubric"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCriteria(avgPercent float64) map[rubric.RatingLevel]rubric.Criterion {
	return map[rubric.RatingLevel]rubric.Criterion{
		rubric.Good:    {Label: "Tốt", Description: "đạt mục tiêu", ScorePercent: 1.0},
		rubric.Average: {Label: "Trung bình", Description: "đạt một phần", ScorePercent: avgPercent},
		rubric.Weak:    {Label: "Yếu", Description: "không đạt", ScorePercent: 0.0},
	}
}

// testRubric builds a two-category rubric with distinct ids and codes so
// tests can exercise the code fallback.
func testRubric() rubric.Rubric {
	return rubric.Rubric{
		{
			ID:   "cat_1",
			Name: "Vận hành",
			Items: []rubric.Item{
				{ID: "item_a", Code: "1.1", Name: "Sự cố", MaxPoints: 9, Criteria: testCriteria(0.7)},
				{ID: "item_b", Code: "1.2", Name: "Chất lượng", MaxPoints: 10, Criteria: testCriteria(0.7)},
			},
		},
		{
			ID:   "cat_2",
			Name: "An toàn",
			Items: []rubric.Item{
				{ID: "item_c", Code: "2.1", Name: "PCCC", MaxPoints: 9, Criteria: testCriteria(0.7)},
			},
		},
	}
}

func TestScoreItem(t *testing.T) {
	item := rubric.Item{ID: "item_a", Code: "1.1", MaxPoints: 9, Criteria: testCriteria(0.7)}

	tests := []struct {
		name     string
		level    rubric.RatingLevel
		expected float64
	}{
		{"good awards full points", rubric.Good, 9},
		{"average awards the scaled share", rubric.Average, 6.3},
		{"weak awards nothing", rubric.Weak, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := ScoreItem(item, tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, points)
		})
	}
}

func TestScoreItemRoundsAtSecondDecimal(t *testing.T) {
	item := rubric.Item{ID: "item_x", MaxPoints: 9.5, Criteria: testCriteria(0.333)}

	points, err := ScoreItem(item, rubric.Average)
	require.NoError(t, err)

	// 9.5 * 0.333 = 3.1635, rounded half up at the second decimal.
	assert.Equal(t, 3.16, points)
}

// A 19-point rubric produces a repeating fraction, so the percent pass has to
// actually round rather than pass an exact value through.
func TestScoreTotalPercentRounding(t *testing.T) {
	r := rubric.Rubric{{
		ID:   "cat_1",
		Name: "Vận hành",
		Items: []rubric.Item{
			{ID: "item_a", Code: "1.1", Name: "Sự cố", MaxPoints: 9, Criteria: testCriteria(0.7)},
			{ID: "item_b", Code: "1.2", Name: "Chất lượng", MaxPoints: 10, Criteria: testCriteria(0.7)},
		},
	}}

	res, err := ScoreTotal(r, Ratings{
		"item_a": SimpleRating(rubric.Good),
		"item_b": SimpleRating(rubric.Average),
	})
	require.NoError(t, err)

	// 9 + 7 = 16 of 19; 16/19 = 0.842105... rounds to 84.21.
	assert.Equal(t, 16.0, res.TotalPoints)
	assert.Equal(t, 19.0, res.TotalMax)
	assert.Equal(t, 84.21, res.Percent)
	assert.False(t, res.PenaltyApplied)
	assert.Equal(t, RankFail, res.Ranking)

	require.Len(t, res.Breakdown, 1)
	assert.Equal(t, 16.0, res.Breakdown[0].Points)
	assert.Equal(t, 19.0, res.Breakdown[0].MaxPoints)
}

func TestScoreItemUnknownCriterion(t *testing.T) {
	item := rubric.Item{
		ID:        "item_partial",
		MaxPoints: 9,
		Criteria: map[rubric.RatingLevel]rubric.Criterion{
			rubric.Good: {ScorePercent: 1.0},
		},
	}

	_, err := ScoreItem(item, rubric.Average)
	require.Error(t, err)

	var unknownErr *UnknownCriterionError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "item_partial", unknownErr.ItemID)
	assert.Equal(t, rubric.Average, unknownErr.Level)
}

func TestScoreCategory(t *testing.T) {
	r := testRubric()

	t.Run("sums rated items and counts unrated max", func(t *testing.T) {
		cs, err := ScoreCategory(r[0], Ratings{
			"item_a": SimpleRating(rubric.Good),
		})
		require.NoError(t, err)

		assert.Equal(t, 9.0, cs.Points)
		assert.Equal(t, 19.0, cs.MaxPoints)
		assert.Equal(t, "cat_1", cs.CategoryID)
	})

	t.Run("empty category scores zero over zero", func(t *testing.T) {
		cs, err := ScoreCategory(rubric.Category{ID: "cat_empty", Name: "trống"}, Ratings{})
		require.NoError(t, err)

		assert.Zero(t, cs.Points)
		assert.Zero(t, cs.MaxPoints)
	})

	t.Run("propagates unknown criterion", func(t *testing.T) {
		cat := rubric.Category{
			ID: "cat_bad",
			Items: []rubric.Item{{
				ID:        "item_bad",
				MaxPoints: 5,
				Criteria:  map[rubric.RatingLevel]rubric.Criterion{rubric.Good: {ScorePercent: 1}},
			}},
		}

		_, err := ScoreCategory(cat, Ratings{"item_bad": SimpleRating(rubric.Weak)})
		var unknownErr *UnknownCriterionError
		require.ErrorAs(t, err, &unknownErr)
	})
}

func TestScoreTotalAllGood(t *testing.T) {
	r := testRubric()

	res, err := ScoreTotal(r, Ratings{
		"item_a": SimpleRating(rubric.Good),
		"item_b": SimpleRating(rubric.Good),
		"item_c": SimpleRating(rubric.Good),
	})
	require.NoError(t, err)

	assert.Equal(t, 28.0, res.TotalPoints)
	assert.Equal(t, 28.0, res.TotalMax)
	assert.Equal(t, 100.0, res.Percent)
	assert.False(t, res.PenaltyApplied)
	assert.Len(t, res.Breakdown, 2)
}

func TestScoreTotalNoRatings(t *testing.T) {
	res, err := ScoreTotal(testRubric(), Ratings{})
	require.NoError(t, err)

	assert.Zero(t, res.TotalPoints)
	assert.Equal(t, 28.0, res.TotalMax)
	assert.Zero(t, res.Percent)
	assert.False(t, res.PenaltyApplied)
	assert.Equal(t, RankNone, res.Ranking)
}

func TestScoreTotalPenalty(t *testing.T) {
	r := testRubric()

	oneWeak := Ratings{
		"item_a": SimpleRating(rubric.Weak),
		"item_b": SimpleRating(rubric.Good),
		"item_c": SimpleRating(rubric.Good),
	}

	res, err := ScoreTotal(r, oneWeak)
	require.NoError(t, err)

	// 19 points earned, minus the flat deduction, clamped at zero.
	assert.True(t, res.PenaltyApplied)
	assert.Equal(t, 0.0, res.TotalPoints)
	assert.Equal(t, RankFail, res.Ranking)

	t.Run("two weak items deduct the same as one", func(t *testing.T) {
		twoWeak := Ratings{
			"item_a": SimpleRating(rubric.Weak),
			"item_b": SimpleRating(rubric.Weak),
			"item_c": SimpleRating(rubric.Good),
		}

		res2, err := ScoreTotal(r, twoWeak)
		require.NoError(t, err)

		assert.True(t, res2.PenaltyApplied)
		assert.Equal(t, res.TotalPoints, res2.TotalPoints)
	})

	t.Run("penalised zero still gets a rank", func(t *testing.T) {
		assert.NotEqual(t, RankNone, res.Ranking)
	})
}

func TestScoreTotalRankingThresholds(t *testing.T) {
	// Single 100-point item makes the absolute totals exact.
	oneItem := func(percent float64) rubric.Rubric {
		return rubric.Rubric{{
			ID:   "cat_1",
			Name: "Tổng hợp",
			Items: []rubric.Item{{
				ID:        "item_1",
				Code:      "1.1",
				MaxPoints: 100,
				Criteria: map[rubric.RatingLevel]rubric.Criterion{
					rubric.Good:    {ScorePercent: percent},
					rubric.Average: {ScorePercent: percent / 2},
					rubric.Weak:    {ScorePercent: 0},
				},
			}},
		}}
	}

	tests := []struct {
		name     string
		percent  float64
		expected string
	}{
		{"90.00 is excellent", 0.90, RankExcellent},
		{"89.99 is a pass", 0.8999, RankPass},
		{"70.00 is a pass", 0.70, RankPass},
		{"69.99 fails", 0.6999, RankFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ScoreTotal(oneItem(tt.percent), Ratings{"item_1": SimpleRating(rubric.Good)})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res.Ranking, "points=%v", res.TotalPoints)
		})
	}
}

func TestScoreTotalDefaultRubric(t *testing.T) {
	r := rubric.Default()

	allAt := func(level rubric.RatingLevel) Ratings {
		ratings := Ratings{}
		for _, cat := range r {
			for _, item := range cat.Items {
				ratings[item.ID] = SimpleRating(level)
			}
		}
		return ratings
	}

	t.Run("all good reaches the full 100", func(t *testing.T) {
		res, err := ScoreTotal(r, allAt(rubric.Good))
		require.NoError(t, err)

		assert.Equal(t, 100.0, res.TotalPoints)
		assert.Equal(t, 100.0, res.TotalMax)
		assert.Equal(t, 100.0, res.Percent)
		assert.Equal(t, RankExcellent, res.Ranking)
	})

	t.Run("all average lands exactly on the pass line", func(t *testing.T) {
		res, err := ScoreTotal(r, allAt(rubric.Average))
		require.NoError(t, err)

		assert.Equal(t, 70.0, res.TotalPoints)
		assert.Equal(t, 70.0, res.Percent)
		assert.Equal(t, RankPass, res.Ranking)
	})

	t.Run("all weak clamps at zero with the penalty", func(t *testing.T) {
		res, err := ScoreTotal(r, allAt(rubric.Weak))
		require.NoError(t, err)

		assert.Zero(t, res.TotalPoints)
		assert.Zero(t, res.Percent)
		assert.True(t, res.PenaltyApplied)
		assert.Equal(t, RankFail, res.Ranking)
	})

	t.Run("one weak among good drops below the pass line", func(t *testing.T) {
		ratings := allAt(rubric.Good)
		ratings["1.1"] = SimpleRating(rubric.Weak)

		res, err := ScoreTotal(r, ratings)
		require.NoError(t, err)

		// 91 earned, minus the flat 30.
		assert.Equal(t, 61.0, res.TotalPoints)
		assert.True(t, res.PenaltyApplied)
		assert.Equal(t, RankFail, res.Ranking)
	})

	t.Run("single rated item keeps the full denominator", func(t *testing.T) {
		res, err := ScoreTotal(r, Ratings{"1.2": SimpleRating(rubric.Good)})
		require.NoError(t, err)

		assert.Equal(t, 10.0, res.TotalPoints)
		assert.Equal(t, 100.0, res.TotalMax)
		assert.Equal(t, 10.0, res.Percent)
		assert.Equal(t, RankFail, res.Ranking)
	})
}

func TestScoreTotalIdempotent(t *testing.T) {
	r := testRubric()
	ratings := Ratings{
		"item_a": SimpleRating(rubric.Average),
		"item_b": SimpleRating(rubric.Good),
	}

	first, err := ScoreTotal(r, ratings)
	require.NoError(t, err)

	second, err := ScoreTotal(r, ratings)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScoreTotalIgnoresExtraneousKeys(t *testing.T) {
	res, err := ScoreTotal(testRubric(), Ratings{
		"item_a":  SimpleRating(rubric.Good),
		"no_such": SimpleRating(rubric.Weak),
	})
	require.NoError(t, err)

	// The stray WEAK entry matches no item, so no penalty fires.
	assert.False(t, res.PenaltyApplied)
	assert.Equal(t, 9.0, res.TotalPoints)
}

func TestRatingsCodeFallback(t *testing.T) {
	r := testRubric()

	byID, err := ScoreTotal(r, Ratings{"item_a": SimpleRating(rubric.Good)})
	require.NoError(t, err)

	byCode, err := ScoreTotal(r, Ratings{"1.1": SimpleRating(rubric.Good)})
	require.NoError(t, err)

	assert.Equal(t, byID.TotalPoints, byCode.TotalPoints)

	t.Run("id wins over code when both are present", func(t *testing.T) {
		res, err := ScoreTotal(r, Ratings{
			"item_a": SimpleRating(rubric.Good),
			"1.1":    SimpleRating(rubric.Weak),
		})
		require.NoError(t, err)

		assert.False(t, res.PenaltyApplied)
		assert.Equal(t, 9.0, res.TotalPoints)
	})
}

func TestAnyWeak(t *testing.T) {
	r := testRubric()

	assert.False(t, AnyWeak(r, Ratings{}))
	assert.False(t, AnyWeak(r, Ratings{"item_a": SimpleRating(rubric.Good)}))
	assert.True(t, AnyWeak(r, Ratings{"item_c": SimpleRating(rubric.Weak)}))

	// An invalid level never counts as weak.
	assert.False(t, AnyWeak(r, Ratings{"item_a": SimpleRating("BAD")}))
}

func TestInvalidLevelTreatedAsUnrated(t *testing.T) {
	res, err := ScoreTotal(testRubric(), Ratings{
		"item_a": SimpleRating("SOMETHING"),
		"item_b": SimpleRating(rubric.Good),
	})
	require.NoError(t, err)

	assert.Equal(t, 10.0, res.TotalPoints)
	assert.Equal(t, 28.0, res.TotalMax)
}
